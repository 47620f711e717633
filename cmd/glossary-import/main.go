package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"doctranslate/internal/application"
	"doctranslate/internal/config"
	"doctranslate/internal/infrastructure/database"
	"doctranslate/internal/infrastructure/i18n"
)

// glossary-import copies the glossary files of the configured profile's
// language pair into PostgreSQL.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadForImport()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("❌ %v", err)
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database initialization failed: %v", err)
	}
	defer pool.Close()

	files := application.NewGlossaryService(i18n.NewGlossary(os.DirFS(cfg.GlossaryDir)))
	n, err := files.Import(ctx, database.NewGlossaryRepository(pool), profile.SourceTag(), profile.TargetTag())
	if err != nil {
		log.Printf("❌ Glossary import failed: %v", err)
		pool.Close()
		os.Exit(1)
	}
	log.Printf("✅ %d glossary entries imported (%s → %s)", n, profile.SourceTag(), profile.TargetTag())
}
