package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/language"

	"doctranslate/internal/domain/entities"
	"doctranslate/internal/ports/output"
)

var _ output.Glossary = (*GlossaryRepository)(nil)

const (
	selectGlossaryEntries = `
SELECT source, target
FROM glossary_entries
WHERE source_lang = $1 AND target_lang = $2 AND btrim(target) <> ''`

	upsertGlossaryEntry = `
INSERT INTO glossary_entries (source_lang, target_lang, source, target)
VALUES ($1, $2, $3, $4)
ON CONFLICT (source_lang, target_lang, source)
DO UPDATE SET target = EXCLUDED.target, updated_at = now()`
)

// GlossaryRepository stores glossary entries in PostgreSQL.
type GlossaryRepository struct {
	pool *pgxpool.Pool
}

func NewGlossaryRepository(pool *pgxpool.Pool) *GlossaryRepository {
	return &GlossaryRepository{pool: pool}
}

func (r *GlossaryRepository) Entries(ctx context.Context, source, target language.Tag) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, selectGlossaryEntries, langKey(source), langKey(target))
	if err != nil {
		return nil, fmt.Errorf("get glossary entries: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var src, tgt string
		if err := rows.Scan(&src, &tgt); err != nil {
			return nil, fmt.Errorf("scan glossary entry: %w", err)
		}
		out[src] = tgt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get glossary entries: %w", err)
	}
	return out, nil
}

// Upsert inserts entries, replacing the target of existing source strings.
func (r *GlossaryRepository) Upsert(ctx context.Context, entries []entities.GlossaryEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(upsertGlossaryEntry, e.SourceLang, e.TargetLang, e.Source, e.Target)
	}
	if err := r.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert glossary entries: %w", err)
	}
	return nil
}
