package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"doctranslate/internal/domain"
	"doctranslate/internal/domain/entities"
	"doctranslate/pkg/document"
)

type memStore struct {
	mu    sync.Mutex
	docs  map[string]document.Value
	saved map[string]document.Value
}

func newMemStore(docs map[string]string) *memStore {
	s := &memStore{docs: map[string]document.Value{}, saved: map[string]document.Value{}}
	for name, raw := range docs {
		v, err := document.DecodeJSON(strings.NewReader(raw))
		if err != nil {
			panic(fmt.Sprintf("fixture %s: %v", name, err))
		}
		s.docs[name] = v
	}
	return s
}

func (s *memStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.docs))
	for n := range s.docs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memStore) Load(ctx context.Context, name string) (document.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.docs[name]
	if !ok {
		return document.Value{}, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, name)
	}
	return v, nil
}

func (s *memStore) Save(ctx context.Context, name string, doc document.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[name] = doc
	return nil
}

func (s *memStore) savedJSON(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.saved[name].MarshalJSON()
	if err != nil {
		return err.Error()
	}
	return string(b)
}

type fakeGlossary struct {
	entries map[string]string
	err     error
}

func (g fakeGlossary) Entries(ctx context.Context, source, target language.Tag) (map[string]string, error) {
	if g.err != nil {
		return nil, g.err
	}
	out := make(map[string]string, len(g.entries))
	for k, v := range g.entries {
		out[k] = v
	}
	return out, nil
}

type fakeWriter struct {
	entries []entities.GlossaryEntry
}

func (w *fakeWriter) Upsert(ctx context.Context, entries []entities.GlossaryEntry) error {
	w.entries = append(w.entries, entries...)
	return nil
}

type fakeAudit struct {
	mu   sync.Mutex
	runs []*entities.Run
	err  error
}

func (a *fakeAudit) RecordRun(ctx context.Context, run *entities.Run) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.runs = append(a.runs, run)
	return nil
}

func (a *fakeAudit) LastRun(ctx context.Context, name string) (*entities.Run, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := len(a.runs) - 1; i >= 0; i-- {
		if a.runs[i].Document == name {
			return a.runs[i], nil
		}
	}
	return nil, nil
}
