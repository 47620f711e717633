package output

import (
	"context"

	"doctranslate/internal/domain/entities"
)

// AuditRepository keeps a record of translation runs and their fallbacks.
type AuditRepository interface {
	RecordRun(ctx context.Context, run *entities.Run) error
	// LastRun returns nil, nil when document has never been translated.
	LastRun(ctx context.Context, document string) (*entities.Run, error)
}
