package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultWorkers = 4

type Config struct {
	SourceDir   string
	OutputDir   string
	GlossaryDir string
	DatabaseURL string
	ProfilePath string
	Documents   []string
	Workers     int
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when the variables come from the environment (CI, containers).
	}
	return fromEnv(os.Getenv)
}

// LoadForImport reads the configuration of a glossary import, which needs
// GLOSSARY_DIR and DATABASE_URL but no document directories.
func LoadForImport() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when the variables come from the environment (CI, containers).
	}
	return importFromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	cfg, err := readEnv(getenv)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func importFromEnv(getenv func(string) string) (*Config, error) {
	cfg, err := readEnv(getenv)
	if err != nil {
		return nil, err
	}
	if cfg.GlossaryDir == "" {
		return nil, fmt.Errorf("config: GLOSSARY_DIR is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}
	if err := cfg.validateDatabase(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		SourceDir:   strings.TrimSpace(getenv("SOURCE_DIR")),
		OutputDir:   strings.TrimSpace(getenv("OUTPUT_DIR")),
		GlossaryDir: strings.TrimSpace(getenv("GLOSSARY_DIR")),
		DatabaseURL: strings.TrimSpace(getenv("DATABASE_URL")),
		ProfilePath: strings.TrimSpace(getenv("PROFILE")),
		Documents:   splitList(getenv("DOCUMENTS")),
	}

	if raw := strings.TrimSpace(getenv("WORKERS")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config: WORKERS invalid (%q): %w", raw, err)
		}
		cfg.Workers = n
	}
	return cfg, nil
}

// validate applies the rules on the loaded configuration.
func (c *Config) validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("config: SOURCE_DIR is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("config: OUTPUT_DIR is required")
	}
	if filepath.Clean(c.SourceDir) == filepath.Clean(c.OutputDir) {
		return fmt.Errorf("config: OUTPUT_DIR must differ from SOURCE_DIR (%q)", c.SourceDir)
	}

	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: WORKERS must be at least 1, got %d", c.Workers)
	}

	for _, d := range c.Documents {
		if filepath.IsAbs(d) || strings.HasPrefix(filepath.Clean(d), "..") {
			return fmt.Errorf("config: DOCUMENTS entry %q must be relative to SOURCE_DIR", d)
		}
	}

	return c.validateDatabase()
}

func (c *Config) validateDatabase() error {
	if c.DatabaseURL == "" {
		// No database: glossary files only, audit goes to the log.
		return nil
	}
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalid (%q): missing scheme or host", c.DatabaseURL)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
