package document

import (
	"errors"
	"fmt"
)

// ErrMalformed is the sentinel matched by every MalformedError.
var ErrMalformed = errors.New("document: malformed")

// MalformedError reports a value that is not a well-formed document: a cycle,
// a duplicated mapping key or a leaf with no serialized form.
type MalformedError struct {
	Path   Path
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("document: malformed at %s: %s", e.Path, e.Reason)
}

func (e *MalformedError) Unwrap() error { return ErrMalformed }

func malformed(p Path, format string, args ...any) error {
	return &MalformedError{Path: p, Reason: fmt.Sprintf(format, args...)}
}
