package entities

import (
	"time"

	"github.com/google/uuid"
)

// Run is one translation of one document.
type Run struct {
	ID         uuid.UUID
	Document   string
	SourceLang string
	TargetLang string
	Leaves     int // string leaves the translator visited
	KeyPaths   int // dotted key paths of the source document, sequences counted once
	Exact      int
	Normalized int
	Fallback   int
	Fallbacks  []FallbackEntry
	StartedAt  time.Time
	FinishedAt time.Time
}

// FallbackEntry is a leaf that had no glossary entry.
type FallbackEntry struct {
	Path   string
	Source string
	Result string
}

// Translated is the number of leaves the run translated.
func (r *Run) Translated() int {
	return r.Exact + r.Normalized + r.Fallback
}

// Duration is how long the run took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
