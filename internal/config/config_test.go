package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := fromEnv(env(map[string]string{
		"SOURCE_DIR": "public/data",
		"OUTPUT_DIR": "public/data/en",
		"DOCUMENTS":  "reading.json, grammar/c1.json,,",
	}))
	require.NoError(t, err)

	assert.Equal(t, "public/data", cfg.SourceDir)
	assert.Equal(t, "public/data/en", cfg.OutputDir)
	assert.Equal(t, []string{"reading.json", "grammar/c1.json"}, cfg.Documents)
	assert.Equal(t, defaultWorkers, cfg.Workers)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestFromEnv_Errors(t *testing.T) {
	base := func() map[string]string {
		return map[string]string{"SOURCE_DIR": "in", "OUTPUT_DIR": "out"}
	}
	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{"missing source", func(m map[string]string) { delete(m, "SOURCE_DIR") }},
		{"missing output", func(m map[string]string) { m["OUTPUT_DIR"] = "  " }},
		{"same dirs", func(m map[string]string) { m["OUTPUT_DIR"] = "./in/" }},
		{"workers not a number", func(m map[string]string) { m["WORKERS"] = "many" }},
		{"workers negative", func(m map[string]string) { m["WORKERS"] = "-2" }},
		{"absolute document", func(m map[string]string) { m["DOCUMENTS"] = "/etc/passwd" }},
		{"escaping document", func(m map[string]string) { m["DOCUMENTS"] = "../x.json" }},
		{"database without host", func(m map[string]string) { m["DATABASE_URL"] = "postgres:///db" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := base()
			tt.mutate(vars)
			_, err := fromEnv(env(vars))
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_Database(t *testing.T) {
	cfg, err := fromEnv(env(map[string]string{
		"SOURCE_DIR":   "in",
		"OUTPUT_DIR":   "out",
		"DATABASE_URL": "postgres://localhost:5432/doctranslate?sslmode=disable",
		"WORKERS":      "8",
	}))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
}

func TestImportFromEnv(t *testing.T) {
	cfg, err := importFromEnv(env(map[string]string{
		"GLOSSARY_DIR": "glossary",
		"DATABASE_URL": "postgres://user:pw@localhost:5432/doctranslate",
	}))
	require.NoError(t, err)
	assert.Equal(t, "glossary", cfg.GlossaryDir)
	assert.Empty(t, cfg.SourceDir)

	_, err = importFromEnv(env(map[string]string{"DATABASE_URL": "postgres://localhost/db"}))
	assert.ErrorContains(t, err, "GLOSSARY_DIR")

	_, err = importFromEnv(env(map[string]string{"GLOSSARY_DIR": "glossary"}))
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, err = importFromEnv(env(map[string]string{"GLOSSARY_DIR": "glossary", "DATABASE_URL": "localhost"}))
	assert.Error(t, err)
}
