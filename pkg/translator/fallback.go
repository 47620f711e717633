package translator

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Request is what a Fallback gets when no lookup matched.
type Request struct {
	// Source is the leaf string as found in the document.
	Source string
	// Core is Source lower-cased with its source article removed.
	Core string
	// Original is the parallel original-language text, if the field has a
	// marker sibling.
	Original string
	// Target is text already present in the target-language sibling, if any.
	Target string
}

// Fallback produces a best-effort translation. Implementations must be total:
// every input yields a string and nothing panics.
type Fallback interface {
	Fallback(req Request) string
}

// FallbackFunc adapts a function to Fallback.
type FallbackFunc func(req Request) string

func (f FallbackFunc) Fallback(req Request) string { return f(req) }

// Verbatim leaves the source string untouched.
var Verbatim Fallback = FallbackFunc(func(req Request) string {
	return req.Source
})

// NormalizedForm uses the normalized source string itself.
var NormalizedForm Fallback = FallbackFunc(func(req Request) string {
	if req.Core == "" {
		return req.Source
	}
	return req.Core
})

// Transliterated spells the normalized source in ASCII: umlauts become
// digraphs, ß becomes ss, hyphens become spaces and any other diacritic is
// dropped.
var Transliterated Fallback = FallbackFunc(func(req Request) string {
	s := req.Core
	if s == "" {
		s = req.Source
	}
	return transliterate(s)
})

var digraphs = strings.NewReplacer(
	"ä", "ae", "ö", "oe", "ü", "ue",
	"Ä", "Ae", "Ö", "Oe", "Ü", "Ue",
	"ß", "ss", "ẞ", "SS",
	"-", " ",
)

func transliterate(s string) string {
	s = digraphs.Replace(norm.NFC.String(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// PreferTarget returns the text already in the target-language sibling when
// it is a real translation, i.e. non-empty and different from both the
// source and the original text. Otherwise next decides.
func PreferTarget(next Fallback) Fallback {
	if next == nil {
		next = Verbatim
	}
	return FallbackFunc(func(req Request) string {
		target := strings.TrimSpace(req.Target)
		if target != "" && target != strings.TrimSpace(req.Source) && target != strings.TrimSpace(req.Original) {
			return target
		}
		return next.Fallback(req)
	})
}
