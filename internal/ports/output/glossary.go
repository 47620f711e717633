package output

import (
	"context"

	"golang.org/x/text/language"

	"doctranslate/internal/domain/entities"
)

// Glossary supplies lookup entries for a language pair. Implementations
// return a fresh map the caller may keep.
type Glossary interface {
	Entries(ctx context.Context, source, target language.Tag) (map[string]string, error)
}

// GlossaryWriter stores glossary entries, replacing existing targets.
type GlossaryWriter interface {
	Upsert(ctx context.Context, entries []entities.GlossaryEntry) error
}
