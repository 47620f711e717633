package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/text/language"

	"doctranslate/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// timeToPgtypeTimestamptz maps the zero time to NULL.
func timeToPgtypeTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func uuidToPgtype(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

// langKey is the column value for a language: its base, so "en-US" and
// "en" share entries.
func langKey(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

// fallbackRows flattens the fallbacks of run for CopyFrom into fallback_paths.
func fallbackRows(run *entities.Run) [][]any {
	rows := make([][]any, len(run.Fallbacks))
	id := uuidToPgtype(run.ID)
	for i, f := range run.Fallbacks {
		rows[i] = []any{id, f.Path, f.Source, f.Result}
	}
	return rows
}

// runSummary is a row of translation_runs read back for reporting.
type runSummary struct {
	ID         pgtype.UUID
	Document   string
	SourceLang string
	TargetLang string
	Leaves     int32
	Exact      int32
	Normalized int32
	Fallback   int32
	StartedAt  pgtype.Timestamptz
	FinishedAt pgtype.Timestamptz
}

func runToDomain(r runSummary) entities.Run {
	return entities.Run{
		ID:         uuid.UUID(r.ID.Bytes),
		Document:   r.Document,
		SourceLang: r.SourceLang,
		TargetLang: r.TargetLang,
		Leaves:     int(r.Leaves),
		Exact:      int(r.Exact),
		Normalized: int(r.Normalized),
		Fallback:   int(r.Fallback),
		StartedAt:  pgtypeTimestamptzToTime(r.StartedAt),
		FinishedAt: pgtypeTimestamptzToTime(r.FinishedAt),
	}
}
