package output

import (
	"context"

	"doctranslate/pkg/document"
)

// DocumentStore reads source documents and persists translated ones.
type DocumentStore interface {
	// List returns the names of the documents available for translation.
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (document.Value, error)
	Save(ctx context.Context, name string, doc document.Value) error
}
