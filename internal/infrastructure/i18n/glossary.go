package i18n

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"doctranslate/internal/ports/output"
)

// Ensure Glossary implements the output.Glossary port.
var _ output.Glossary = (*Glossary)(nil)

// Glossary reads lookup entries from go-i18n message files. Files live in a
// directory named after the source language and carry the target language
// in their name, e.g. it/food.en.toml. The message ID is the source string
// and its "other" form the translation.
type Glossary struct {
	fsys fs.FS
}

// NewGlossary builds a Glossary over fsys, usually os.DirFS(GLOSSARY_DIR).
func NewGlossary(fsys fs.FS) *Glossary {
	return &Glossary{fsys: fsys}
}

// Entries loads every message file for the source/target pair. Files are
// read in lexical order; a later file overrides an earlier one. Files that
// fail to parse are logged and skipped.
func (g *Glossary) Entries(ctx context.Context, source, target language.Tag) (map[string]string, error) {
	bundle := i18n.NewBundle(target)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	dir := baseName(source)
	out := make(map[string]string)
	err := fs.WalkDir(g.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isMessageFile(p) {
			return nil
		}

		mf, err := bundle.LoadMessageFileFS(g.fsys, p)
		if err != nil {
			log.Printf("i18n: failed to load %s: %v", p, err)
			return nil
		}
		if !sameLanguage(mf.Tag, target) {
			return nil
		}
		for _, m := range mf.Messages {
			if strings.TrimSpace(m.Other) == "" {
				continue
			}
			out[m.ID] = m.Other
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("⚠️ i18n: no glossary directory %q", dir)
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func isMessageFile(p string) bool {
	switch path.Ext(p) {
	case ".toml", ".json":
		return true
	}
	return false
}

func baseName(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}

func sameLanguage(a, b language.Tag) bool {
	return baseName(a) == baseName(b)
}
