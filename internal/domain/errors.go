package domain

import "errors"

// Domain errors.
var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrUnknownFallback   = errors.New("unknown fallback policy")
	ErrInvalidProfile    = errors.New("invalid translation profile")
	ErrEmptyGlossary     = errors.New("glossary has no usable entries")
)
