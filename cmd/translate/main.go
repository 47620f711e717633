package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"doctranslate/internal/adapters/filesystem"
	"doctranslate/internal/application"
	"doctranslate/internal/config"
	"doctranslate/internal/infrastructure/database"
	"doctranslate/internal/infrastructure/i18n"
	"doctranslate/internal/ports/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("❌ %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return err
	}
	log.Printf("✅ Profile %q loaded (%s → %s)", profile.Name, profile.SourceTag(), profile.TargetTag())

	var (
		sources []output.Glossary
		audit   output.AuditRepository
	)
	if cfg.GlossaryDir != "" {
		sources = append(sources, i18n.NewGlossary(os.DirFS(cfg.GlossaryDir)))
	}
	if cfg.DatabaseURL != "" {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return err
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()

		sources = append(sources, database.NewGlossaryRepository(pool))
		audit = database.NewAuditRepository(pool)
	}

	table, err := application.NewGlossaryService(sources...).Table(ctx, profile.SourceTag(), profile.TargetTag())
	if err != nil {
		return err
	}

	store := filesystem.NewStore(os.DirFS(cfg.SourceDir), cfg.OutputDir)
	if rel, err := filepath.Rel(cfg.SourceDir, cfg.OutputDir); err == nil && !strings.HasPrefix(rel, "..") {
		store.Exclude(rel)
	}

	svc := application.NewTranslationService(store, profile.Translator(table), audit, cfg.Workers, profile.SourceTag(), profile.TargetTag())
	runs, err := svc.TranslateAll(ctx, cfg.Documents)

	var fallbacks int
	for _, r := range runs {
		fallbacks += r.Fallback
	}
	log.Printf("✅ %d document(s) translated, %d leaves fell back", len(runs), fallbacks)
	return err
}
