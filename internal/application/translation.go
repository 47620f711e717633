package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"doctranslate/internal/domain/entities"
	"doctranslate/internal/ports/input"
	"doctranslate/internal/ports/output"
	"doctranslate/pkg/document"
	"doctranslate/pkg/translator"
)

var _ input.TranslationUseCase = (*TranslationService)(nil)

type TranslationService struct {
	store      output.DocumentStore
	translator *translator.Translator
	audit      output.AuditRepository
	workers    int
	sourceLang string
	targetLang string
	now        func() time.Time
}

// NewTranslationService builds the service. audit may be nil, in which case
// runs are only logged.
func NewTranslationService(
	store output.DocumentStore,
	tr *translator.Translator,
	audit output.AuditRepository,
	workers int,
	source, target language.Tag,
) *TranslationService {
	if workers < 1 {
		workers = 1
	}
	return &TranslationService{
		store:      store,
		translator: tr,
		audit:      audit,
		workers:    workers,
		sourceLang: baseLanguage(source),
		targetLang: baseLanguage(target),
		now:        time.Now,
	}
}

// TranslateDocument loads, translates and saves one document, then records
// the run.
func (s *TranslationService) TranslateDocument(ctx context.Context, name string) (*entities.Run, error) {
	run := &entities.Run{
		ID:         uuid.New(),
		Document:   name,
		SourceLang: s.sourceLang,
		TargetLang: s.targetLang,
		StartedAt:  s.now(),
	}

	doc, err := s.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	res, err := s.translator.Translate(doc)
	if err != nil {
		return nil, fmt.Errorf("translate %s: %w", name, err)
	}
	if err := s.store.Save(ctx, name, res.Document); err != nil {
		return nil, err
	}

	run.Leaves = res.Stats.Visited
	run.KeyPaths = len(document.LeafPaths(doc))
	run.Exact = res.Stats.Exact
	run.Normalized = res.Stats.Normalized
	run.Fallback = res.Stats.Fallback
	run.Fallbacks = make([]entities.FallbackEntry, len(res.Fallbacks))
	for i, h := range res.Fallbacks {
		run.Fallbacks[i] = entities.FallbackEntry{
			Path:   h.Path.String(),
			Source: h.Source,
			Result: h.Result,
		}
	}
	run.FinishedAt = s.now()

	if err := s.record(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// TranslateAll translates names on a bounded pool of workers, or every
// document of the store when names is empty. A failed document does not
// stop the others; the runs that succeeded are returned with the joined
// errors.
func (s *TranslationService) TranslateAll(ctx context.Context, names []string) ([]*entities.Run, error) {
	if len(names) == 0 {
		var err error
		if names, err = s.store.List(ctx); err != nil {
			return nil, err
		}
	}

	runs := make([]*entities.Run, len(names))
	errs := make([]error, len(names))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			run, err := s.TranslateDocument(ctx, name)
			if err != nil {
				log.Printf("❌ %s: %v", name, err)
				errs[i] = fmt.Errorf("%s: %w", name, err)
				return nil
			}
			runs[i] = run
			return nil
		})
	}
	_ = g.Wait()

	out := make([]*entities.Run, 0, len(runs))
	for _, r := range runs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, errors.Join(errs...)
}

func (s *TranslationService) record(ctx context.Context, run *entities.Run) error {
	for _, f := range run.Fallbacks {
		log.Printf("⚠️ %s: no glossary entry at %s (%q → %q)", run.Document, f.Path, f.Source, f.Result)
	}
	log.Printf("✅ %s: %d/%d string leaves translated over %d key paths (exact=%d, normalized=%d, fallback=%d) in %s",
		run.Document, run.Translated(), run.Leaves, run.KeyPaths, run.Exact, run.Normalized, run.Fallback, run.Duration())

	if s.audit == nil {
		return nil
	}
	prev, err := s.audit.LastRun(ctx, run.Document)
	if err != nil {
		return fmt.Errorf("last run %s: %w", run.Document, err)
	}
	if prev != nil && prev.Fallback != run.Fallback {
		log.Printf("%s: fallbacks %d → %d since %s", run.Document, prev.Fallback, run.Fallback, prev.StartedAt.Format(time.RFC3339))
	}
	if err := s.audit.RecordRun(ctx, run); err != nil {
		return fmt.Errorf("record run %s: %w", run.Document, err)
	}
	return nil
}
