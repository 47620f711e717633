package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"doctranslate/internal/domain/entities"
	"doctranslate/internal/ports/output"
)

var _ output.AuditRepository = (*AuditRepository)(nil)

const (
	insertRun = `
INSERT INTO translation_runs
    (id, document, source_lang, target_lang, leaves, exact_hits, normalized_hits, fallback_hits, started_at, finished_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	selectLastRun = `
SELECT id, document, source_lang, target_lang, leaves, exact_hits, normalized_hits, fallback_hits, started_at, finished_at
FROM translation_runs
WHERE document = $1
ORDER BY started_at DESC
LIMIT 1`
)

// AuditRepository records translation runs and the paths that fell back.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// RecordRun stores run and its fallbacks in one transaction.
func (r *AuditRepository) RecordRun(ctx context.Context, run *entities.Run) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin record run: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertRun,
		uuidToPgtype(run.ID),
		run.Document,
		run.SourceLang,
		run.TargetLang,
		int32(run.Leaves),
		int32(run.Exact),
		int32(run.Normalized),
		int32(run.Fallback),
		timeToPgtypeTimestamptz(run.StartedAt),
		timeToPgtypeTimestamptz(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if len(run.Fallbacks) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"fallback_paths"},
			[]string{"run_id", "path", "source", "result"},
			pgx.CopyFromRows(fallbackRows(run)),
		)
		if err != nil {
			return fmt.Errorf("copy fallback paths: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit record run: %w", err)
	}
	return nil
}

// LastRun returns the latest run recorded for document, or nil when there
// is none. Fallback paths are not loaded.
func (r *AuditRepository) LastRun(ctx context.Context, document string) (*entities.Run, error) {
	var s runSummary
	err := r.pool.QueryRow(ctx, selectLastRun, document).Scan(
		&s.ID, &s.Document, &s.SourceLang, &s.TargetLang,
		&s.Leaves, &s.Exact, &s.Normalized, &s.Fallback,
		&s.StartedAt, &s.FinishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last run: %w", err)
	}
	run := runToDomain(s)
	return &run, nil
}
