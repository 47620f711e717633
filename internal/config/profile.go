package config

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"doctranslate/internal/domain"
	"doctranslate/pkg/translator"
)

//go:embed profiles/*.toml
var profileFS embed.FS

// DefaultProfile is used when PROFILE is empty.
const DefaultProfile = "content"

// Profile describes one kind of translation: the languages involved, the
// fields to translate and how misses are handled.
type Profile struct {
	Name         string         `toml:"-"`
	Source       string         `toml:"source"`
	Marker       string         `toml:"marker"`
	Target       string         `toml:"target"`
	Fallback     string         `toml:"fallback"`
	PreferTarget bool           `toml:"prefer_target"`
	Articles     ArticlesConfig `toml:"articles"`
	Fields       FieldsConfig   `toml:"fields"`

	sourceTag language.Tag
	targetTag language.Tag
}

type ArticlesConfig struct {
	Target []string          `toml:"target"`
	Source map[string]string `toml:"source"`
	Marker map[string]string `toml:"marker"`
}

type FieldsConfig struct {
	Default       string            `toml:"default"`
	Translate     []string          `toml:"translate"`
	Recurse       []string          `toml:"recurse"`
	Keep          []string          `toml:"keep"`
	Markers       map[string]string `toml:"markers"`
	TargetMarkers map[string]string `toml:"target_markers"`
}

// LoadProfile returns the embedded profile called nameOrPath, or reads a
// TOML file when nameOrPath ends in .toml. An empty value selects
// DefaultProfile.
func LoadProfile(nameOrPath string) (*Profile, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultProfile
	}

	var (
		data []byte
		err  error
		name = nameOrPath
	)
	if strings.HasSuffix(nameOrPath, ".toml") {
		data, err = os.ReadFile(nameOrPath)
		name = strings.TrimSuffix(path.Base(nameOrPath), ".toml")
	} else {
		data, err = profileFS.ReadFile("profiles/" + nameOrPath + ".toml")
	}
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", nameOrPath, err)
	}

	p, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", nameOrPath, err)
	}
	p.Name = name
	return p, nil
}

// ParseProfile decodes and validates a TOML profile. Unknown keys are errors.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProfile, strict.String())
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidProfile, err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) validate() error {
	var err error
	if p.sourceTag, err = language.Parse(p.Source); err != nil {
		return fmt.Errorf("%w: source %q: %w", domain.ErrInvalidProfile, p.Source, err)
	}
	if p.targetTag, err = language.Parse(p.Target); err != nil {
		return fmt.Errorf("%w: target %q: %w", domain.ErrInvalidProfile, p.Target, err)
	}
	if p.Marker != "" {
		if _, err := language.Parse(p.Marker); err != nil {
			return fmt.Errorf("%w: marker %q: %w", domain.ErrInvalidProfile, p.Marker, err)
		}
	}
	if _, err := fallbackByName(p.Fallback); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidProfile, err)
	}
	if _, err := translator.ParseAction(p.Fields.Default); err != nil {
		return fmt.Errorf("%w: fields.default: %w", domain.ErrInvalidProfile, err)
	}
	if err := p.Selector().Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidProfile, err)
	}
	if len(p.Fields.Markers) > 0 && p.Marker == "" {
		return fmt.Errorf("%w: fields.markers needs a marker language", domain.ErrInvalidProfile)
	}
	return nil
}

// SourceTag is the language of the strings being translated.
func (p *Profile) SourceTag() language.Tag { return p.sourceTag }

// TargetTag is the language translations are produced in.
func (p *Profile) TargetTag() language.Tag { return p.targetTag }

// Selector builds the field rules of the profile.
func (p *Profile) Selector() translator.FieldRules {
	def, _ := translator.ParseAction(p.Fields.Default)
	return translator.FieldRules{
		Translate:     p.Fields.Translate,
		Recurse:       p.Fields.Recurse,
		Keep:          p.Fields.Keep,
		Markers:       p.Fields.Markers,
		TargetMarkers: p.Fields.TargetMarkers,
		Default:       def,
	}
}

// ArticleTables returns the article tables with lower-cased prefixes.
func (p *Profile) ArticleTables() translator.Articles {
	a := translator.Articles{
		Source: lowerKeys(p.Articles.Source),
		Marker: lowerKeys(p.Articles.Marker),
	}
	for _, t := range p.Articles.Target {
		a.Target = append(a.Target, strings.ToLower(t))
	}
	return a
}

// FallbackPolicy returns the configured fallback, wrapped so an existing
// target gloss wins when prefer_target is set.
func (p *Profile) FallbackPolicy() translator.Fallback {
	fb, _ := fallbackByName(p.Fallback)
	if p.PreferTarget {
		return translator.PreferTarget(fb)
	}
	return fb
}

// Translator assembles a translator for this profile around table.
func (p *Profile) Translator(table translator.Table) *translator.Translator {
	return translator.New(p.Selector(), table, p.FallbackPolicy(),
		translator.WithArticles(p.ArticleTables()),
		translator.WithSourceLanguage(p.sourceTag),
	)
}

func fallbackByName(name string) (translator.Fallback, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "verbatim":
		return translator.Verbatim, nil
	case "normalized":
		return translator.NormalizedForm, nil
	case "transliterate":
		return translator.Transliterated, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFallback, name)
	}
}

func lowerKeys(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}
