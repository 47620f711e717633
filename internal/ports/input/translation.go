package input

import (
	"context"

	"doctranslate/internal/domain/entities"
)

type TranslationUseCase interface {
	TranslateDocument(ctx context.Context, name string) (*entities.Run, error)
	TranslateAll(ctx context.Context, names []string) ([]*entities.Run, error)
}
