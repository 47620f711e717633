package i18n

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestGlossary_Entries(t *testing.T) {
	fsys := fstest.MapFS{
		"it/a_food.en.toml": {Data: []byte(`
"il cibo" = "food"
"la casa" = "house"
"vuoto" = ""
`)},
		"it/b_home.en.json": {Data: []byte(`{"la casa": "home", "il cane": "dog"}`)},
		"it/food.de.toml":   {Data: []byte(`"la casa" = "das Haus"`)},
		"it/broken.en.toml": {Data: []byte(`"unterminated = `)},
		"it/README.md":      {Data: []byte(`notes`)},
		"de/words.en.toml":  {Data: []byte(`"der hund" = "the dog"`)},
	}
	g := NewGlossary(fsys)

	got, err := g.Entries(context.Background(), language.Italian, language.English)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"il cibo": "food",
		"la casa": "home",
		"il cane": "dog",
	}, got)

	got, err = g.Entries(context.Background(), language.German, language.English)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"der hund": "the dog"}, got)
}

func TestGlossary_RegionalTarget(t *testing.T) {
	fsys := fstest.MapFS{
		"it/food.en.toml": {Data: []byte(`"il pane" = "bread"`)},
	}
	got, err := NewGlossary(fsys).Entries(context.Background(), language.MustParse("it-IT"), language.AmericanEnglish)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"il pane": "bread"}, got)
}

func TestGlossary_MissingDirectory(t *testing.T) {
	got, err := NewGlossary(fstest.MapFS{}).Entries(context.Background(), language.French, language.English)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGlossary_Canceled(t *testing.T) {
	fsys := fstest.MapFS{
		"it/food.en.toml": {Data: []byte(`"il pane" = "bread"`)},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGlossary(fsys).Entries(ctx, language.Italian, language.English)
	assert.ErrorIs(t, err, context.Canceled)
}
