package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"doctranslate/internal/domain"
	"doctranslate/pkg/document"
	"doctranslate/pkg/translator"
)

func TestLoadProfile_Embedded(t *testing.T) {
	for _, name := range []string{"", "content", "vocabulary"} {
		t.Run(name, func(t *testing.T) {
			p, err := LoadProfile(name)
			require.NoError(t, err)
			assert.Equal(t, language.English, p.TargetTag())
			assert.NotEmpty(t, p.Fields.Translate)
		})
	}

	_, err := LoadProfile("missing")
	assert.Error(t, err)
}

func TestLoadProfile_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
source = "it"
target = "en"
fallback = "normalized"

[fields]
translate = ["title"]
`), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Name)
	assert.Equal(t, translator.Recurse, p.Selector().Select("other", nil).Action)
	assert.Equal(t, translator.Translate, p.Selector().Select("title", nil).Action)
}

func TestParseProfile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"unknown key", "source = \"it\"\ntarget = \"en\"\ncolour = \"red\"\n"},
		{"bad source", "source = \"??\"\ntarget = \"en\"\n"},
		{"missing target", "source = \"it\"\n"},
		{"bad fallback", "source = \"it\"\ntarget = \"en\"\nfallback = \"guess\"\n"},
		{"bad default", "source = \"it\"\ntarget = \"en\"\n[fields]\ndefault = \"maybe\"\n"},
		{"conflicting rules", "source = \"it\"\ntarget = \"en\"\n[fields]\ntranslate = [\"a\"]\nkeep = [\"a\"]\n"},
		{"markers without marker language", "source = \"de\"\ntarget = \"en\"\n[fields.markers]\ngerman = \"italian\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProfile([]byte(tt.toml))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidProfile)
		})
	}
}

func TestParseProfile_UnknownFallback(t *testing.T) {
	_, err := ParseProfile([]byte("source = \"it\"\ntarget = \"en\"\nfallback = \"guess\"\n"))
	assert.ErrorIs(t, err, domain.ErrUnknownFallback)
}

func TestProfile_VocabularyTranslator(t *testing.T) {
	p, err := LoadProfile("vocabulary")
	require.NoError(t, err)

	tr := p.Translator(translator.MapTable{"die wohnung": "the apartment", "hund": "dog"})
	doc, err := document.DecodeJSON(strings.NewReader(`{"words":[
		{"german":"die Wohnung","italian":"l'appartamento"},
		{"german":"der Hund","italian":"il cane"},
		{"german":"die Größe","italian":"la taglia"},
		{"german":"das Mädchen","italian":"la ragazza","english":"the girl"}
	]}`))
	require.NoError(t, err)

	res, err := tr.Translate(doc)
	require.NoError(t, err)

	var got []string
	for _, w := range mustGet(t, res.Document, "words").Items() {
		s, _ := w.Map().GetString("german")
		got = append(got, s)
	}
	assert.Equal(t, []string{"the apartment", "the dog", "the groesse", "the girl"}, got)
	assert.Equal(t, 2, res.Stats.Fallback)

	last := mustGet(t, res.Document, "words").Items()[3].Map()
	italian, _ := last.GetString("italian")
	english, _ := last.GetString("english")
	assert.Equal(t, "la ragazza", italian)
	assert.Equal(t, "the girl", english)
}

func TestProfile_ContentTranslator(t *testing.T) {
	p, err := LoadProfile("content")
	require.NoError(t, err)

	tr := p.Translator(translator.MapTable{"Il cibo": "Food", "famiglia": "family"})
	doc, err := document.DecodeJSON(strings.NewReader(
		`{"id":"il-cibo","title":"Il cibo","levels":{"A1":{"texts":[{"title":"La famiglia","tedesco":"Die Familie","hints":["Grazie"]}]}}}`))
	require.NoError(t, err)

	res, err := tr.Translate(doc)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, document.EncodeJSON(&b, res.Document, ""))
	assert.Equal(t,
		`{"id":"il-cibo","title":"Food","levels":{"A1":{"texts":[{"title":"the family","tedesco":"Die Familie","hints":["Grazie"]}]}}}`+"\n",
		b.String())
}

func TestProfile_ContentTranslatesUnlistedFields(t *testing.T) {
	p, err := LoadProfile("content")
	require.NoError(t, err)
	assert.Equal(t, translator.Translate, p.Selector().Select("descrizione", nil).Action)
	assert.Equal(t, translator.Keep, p.Selector().Select("tedesco", nil).Action)

	tr := p.Translator(translator.MapTable{"Il cibo": "Food"})
	doc, err := document.DecodeJSON(strings.NewReader(`{"descrizione":"Il cibo","tedesco":"Il cibo"}`))
	require.NoError(t, err)

	res, err := tr.Translate(doc)
	require.NoError(t, err)
	got, _ := res.Document.Map().GetString("descrizione")
	kept, _ := res.Document.Map().GetString("tedesco")
	assert.Equal(t, "Food", got)
	assert.Equal(t, "Il cibo", kept)
}

func mustGet(t *testing.T, v document.Value, key string) document.Value {
	t.Helper()
	got, ok := v.Map().Get(key)
	require.True(t, ok, "missing %q", key)
	return got
}
