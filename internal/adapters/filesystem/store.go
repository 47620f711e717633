package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"doctranslate/internal/domain"
	"doctranslate/internal/ports/output"
	"doctranslate/pkg/document"
)

var _ output.DocumentStore = (*Store)(nil)

// Store reads documents from src and writes translations under outDir,
// keeping the relative name and format of each document.
type Store struct {
	src     fs.FS
	outDir  string
	exclude map[string]bool
}

func NewStore(src fs.FS, outDir string) *Store {
	return &Store{src: src, outDir: outDir, exclude: map[string]bool{}}
}

// Exclude hides a directory of src from List, typically the output
// directory when it lives inside the source tree.
func (s *Store) Exclude(dir string) {
	s.exclude[path.Clean(filepath.ToSlash(dir))] = true
}

type codec struct {
	decode func(io.Reader) (document.Value, error)
	encode func(io.Writer, document.Value) error
}

var codecs = map[string]codec{
	".json": {
		decode: document.DecodeJSON,
		encode: func(w io.Writer, v document.Value) error { return document.EncodeJSON(w, v, "  ") },
	},
	".yaml": {decode: document.DecodeYAML, encode: document.EncodeYAML},
	".yml":  {decode: document.DecodeYAML, encode: document.EncodeYAML},
}

func codecFor(name string) (codec, error) {
	c, ok := codecs[strings.ToLower(path.Ext(name))]
	if !ok {
		return codec{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
	}
	return c, nil
}

// List returns every supported document under src in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	var names []string
	err := fs.WalkDir(s.src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && (strings.HasPrefix(d.Name(), ".") || s.exclude[p]) {
				return fs.SkipDir
			}
			return nil
		}
		if _, err := codecFor(p); err == nil {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return names, nil
}

func (s *Store) Load(ctx context.Context, name string) (document.Value, error) {
	if err := ctx.Err(); err != nil {
		return document.Value{}, err
	}
	c, err := codecFor(name)
	if err != nil {
		return document.Value{}, err
	}
	data, err := fs.ReadFile(s.src, name)
	if errors.Is(err, fs.ErrNotExist) {
		return document.Value{}, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, name)
	}
	if err != nil {
		return document.Value{}, fmt.Errorf("read %s: %w", name, err)
	}
	v, err := c.decode(bytes.NewReader(data))
	if err != nil {
		return document.Value{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}

// Save writes doc to outDir/name, creating directories as needed. The file
// is written to a temporary name first and renamed into place.
func (s *Store) Save(ctx context.Context, name string, doc document.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c, err := codecFor(name)
	if err != nil {
		return err
	}
	if !fs.ValidPath(name) {
		return fmt.Errorf("save %s: invalid document name", name)
	}

	var buf bytes.Buffer
	if err := c.encode(&buf, doc); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	dst := filepath.Join(s.outDir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
