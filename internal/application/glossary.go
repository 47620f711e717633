package application

import (
	"context"
	"fmt"
	"log"
	"sort"

	"golang.org/x/text/language"

	"doctranslate/internal/domain"
	"doctranslate/internal/domain/entities"
	"doctranslate/internal/ports/output"
	"doctranslate/pkg/translator"
)

// GlossaryService merges glossary sources into one lookup table.
type GlossaryService struct {
	sources []output.Glossary
}

// NewGlossaryService takes sources in increasing priority: entries of a later
// source override those of an earlier one.
func NewGlossaryService(sources ...output.Glossary) *GlossaryService {
	return &GlossaryService{sources: sources}
}

// Table returns the merged table for the language pair. Blank targets are
// dropped. An empty table is not an error; every leaf will fall back.
func (s *GlossaryService) Table(ctx context.Context, source, target language.Tag) (translator.MapTable, error) {
	tables := make([]map[string]string, 0, len(s.sources))
	for i, src := range s.sources {
		entries, err := src.Entries(ctx, source, target)
		if err != nil {
			return nil, fmt.Errorf("glossary source %d: %w", i, err)
		}
		tables = append(tables, entries)
	}

	table := translator.Merge(tables...)
	if len(table) == 0 {
		log.Printf("⚠️ glossary: no entries for %s → %s", source, target)
	} else {
		log.Printf("✅ glossary: %d entries for %s → %s", len(table), source, target)
	}
	return table, nil
}

// Import writes the merged table for the language pair to w and returns the
// number of entries written.
func (s *GlossaryService) Import(ctx context.Context, w output.GlossaryWriter, source, target language.Tag) (int, error) {
	table, err := s.Table(ctx, source, target)
	if err != nil {
		return 0, err
	}
	if len(table) == 0 {
		return 0, domain.ErrEmptyGlossary
	}

	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	src, tgt := baseLanguage(source), baseLanguage(target)
	entries := make([]entities.GlossaryEntry, len(keys))
	for i, k := range keys {
		entries[i] = entities.GlossaryEntry{
			SourceLang: src,
			TargetLang: tgt,
			Source:     k,
			Target:     table[k],
		}
	}
	if err := w.Upsert(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func baseLanguage(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
