// Package translator rewrites selected string leaves of a document through a
// lookup table, falling back to a best-effort policy when no entry matches.
//
// Resolution of a string s, in order:
//
//  1. table[s], used as is;
//  2. s lower-cased, then lower-cased with its source article stripped; a
//     hit gets the article rule;
//  3. the Fallback, whose result also gets the article rule unless it
//     returned s unchanged.
//
// The article rule prefixes the target article implied by the marker field
// when one is present, or else by the stripped source article, unless the
// text already starts with a target article. A marker without an article
// means no article.
package translator

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"doctranslate/pkg/document"
)

// Hit records a leaf that was resolved by the fallback.
type Hit struct {
	Path   document.Path
	Source string
	Result string
}

// Stats counts leaves by how they were resolved. Visited is every string
// leaf the walk reached, translated or not; kept subtrees are not walked.
type Stats struct {
	Visited    int
	Exact      int
	Normalized int
	Fallback   int
}

// Total is the number of translated leaves.
func (s Stats) Total() int { return s.Exact + s.Normalized + s.Fallback }

// Result is the output of one translation.
type Result struct {
	Document  document.Value
	Fallbacks []Hit
	Stats     Stats
}

// Translator holds the policies of a translation. It keeps no state between
// calls and is safe for concurrent use.
type Translator struct {
	selector Selector
	table    Table
	fallback Fallback
	articles Articles
	source   language.Tag
}

// Option configures a Translator.
type Option func(*Translator)

// WithArticles sets the article tables used by normalization and the
// article rule.
func WithArticles(a Articles) Option {
	return func(t *Translator) { t.articles = a }
}

// WithSourceLanguage sets the language used to lower-case source strings.
func WithSourceLanguage(tag language.Tag) Option {
	return func(t *Translator) { t.source = tag }
}

// New builds a Translator. A nil selector translates every field, a nil
// table matches nothing and a nil fallback is Verbatim.
func New(selector Selector, table Table, fallback Fallback, opts ...Option) *Translator {
	if selector == nil {
		selector = FieldRules{Default: Translate}
	}
	if table == nil {
		table = MapTable(nil)
	}
	if fallback == nil {
		fallback = Verbatim
	}
	t := &Translator{
		selector: selector,
		table:    table,
		fallback: fallback,
		source:   language.Und,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Apply is a shorthand for New(selector, table, fallback).Translate(doc).
func Apply(doc document.Value, selector Selector, table Table, fallback Fallback) (*Result, error) {
	return New(selector, table, fallback).Translate(doc)
}

// Translate returns a translated copy of doc with the same shape. The root is
// walked as a translatable value: a string root and the strings of a root
// sequence are translated, mappings consult the selector per key. doc is
// never modified. A malformed doc yields a *document.MalformedError and no
// result.
func (t *Translator) Translate(doc document.Value) (*Result, error) {
	if err := document.Validate(doc); err != nil {
		return nil, err
	}
	w := &walk{
		t:     t,
		lower: cases.Lower(t.source),
		res:   &Result{},
	}

	out, err := w.apply(doc, nil, Decision{Action: Translate}, nil, -1)
	if err != nil {
		return nil, err
	}
	w.res.Document = out
	return w.res, nil
}

// walk is the per-call state. cases.Caser is not safe for concurrent use,
// so each call gets its own.
type walk struct {
	t     *Translator
	lower cases.Caser
	res   *Result
}

type markers struct {
	original string
	target   string
}

// apply handles v found at p under decision d. siblings is the mapping that
// holds the field and idx the element index when v sits in the field's
// sequence, -1 otherwise.
func (w *walk) apply(v document.Value, p document.Path, d Decision, siblings *document.Map, idx int) (document.Value, error) {
	if d.Action == Keep {
		return document.Clone(v)
	}
	switch v.Kind() {
	case document.KindMapping:
		return w.mapping(v.Map(), p)
	case document.KindSequence:
		items := v.Items()
		out := make([]document.Value, len(items))
		for i, item := range items {
			elemIdx := -1
			if idx < 0 && item.Kind() == document.KindString {
				elemIdx = i
			}
			c, err := w.apply(item, p.Index(i), d, siblings, elemIdx)
			if err != nil {
				return document.Value{}, err
			}
			out[i] = c
		}
		return document.Seq(out...), nil
	case document.KindString:
		w.res.Stats.Visited++
		if d.Action != Translate {
			return v, nil
		}
		s, _ := v.Str()
		mk := markers{
			original: siblingText(siblings, d.Marker, idx),
			target:   siblingText(siblings, d.TargetMarker, idx),
		}
		return document.String(w.translate(s, p, mk)), nil
	default:
		return v, nil
	}
}

func (w *walk) mapping(m *document.Map, p document.Path) (document.Value, error) {
	out := document.NewMap()
	for _, e := range m.Entries() {
		d := w.t.selector.Select(e.Key, p)
		c, err := w.apply(e.Value, p.Key(e.Key), d, m, -1)
		if err != nil {
			return document.Value{}, err
		}
		out.Set(e.Key, c)
	}
	return document.Object(out), nil
}

// siblingText reads a marker field. For a string in a sequence the element
// at the same index of a parallel sequence is used.
func siblingText(m *document.Map, key string, idx int) string {
	if m == nil || key == "" {
		return ""
	}
	v, ok := m.Get(key)
	if !ok {
		return ""
	}
	if s, ok := v.Str(); ok {
		return s
	}
	if items := v.Items(); idx >= 0 && idx < len(items) {
		s, _ := items[idx].Str()
		return s
	}
	return ""
}

func (w *walk) translate(s string, p document.Path, mk markers) string {
	t := w.t
	if v, ok := t.table.Lookup(s); ok {
		w.res.Stats.Exact++
		return v
	}

	lower := w.lower.String(strings.TrimSpace(s))
	core, article := t.articles.strip(lower)
	if len(t.articles.Marker) > 0 && strings.TrimSpace(mk.original) != "" {
		article = t.articles.markerArticle(mk.original)
	}

	v, ok := t.table.Lookup(lower)
	if !ok && core != lower {
		v, ok = t.table.Lookup(core)
	}
	if ok {
		w.res.Stats.Normalized++
		return t.articles.apply(v, article)
	}

	v = t.fallback.Fallback(Request{
		Source:   s,
		Core:     core,
		Original: mk.original,
		Target:   mk.target,
	})
	if v != s {
		v = t.articles.apply(v, article)
	}
	w.res.Stats.Fallback++
	w.res.Fallbacks = append(w.res.Fallbacks, Hit{Path: p, Source: s, Result: v})
	return v
}
