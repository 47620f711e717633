package translator

import "strings"

// Articles describes the articles of the three languages involved. Prefixes
// are lower-case and carry their separator: "der ", "l'".
type Articles struct {
	// Source maps source language articles to the target article that
	// replaces them, e.g. "die " -> "the ".
	Source map[string]string
	// Marker maps articles of the marker language (the parallel field) to
	// the target article, e.g. "l'" -> "the ".
	Marker map[string]string
	// Target lists the prefixes that already count as a target article.
	Target []string
}

// strip removes the longest source article from a lower-cased string and
// returns the remainder with the target article it stands for. A string
// that is nothing but an article is left as is.
func (a Articles) strip(lower string) (core, article string) {
	p, target := longestPrefix(lower, a.Source)
	if p == "" {
		return lower, ""
	}
	rest := strings.TrimSpace(lower[len(p):])
	if rest == "" {
		return lower, ""
	}
	return rest, target
}

// markerArticle returns the target article implied by a marker text.
func (a Articles) markerArticle(marker string) string {
	if marker == "" {
		return ""
	}
	_, target := longestPrefix(strings.ToLower(strings.TrimSpace(marker)), a.Marker)
	return target
}

// carries reports whether s already starts with a target article.
func (a Articles) carries(s string) bool {
	lower := strings.ToLower(s)
	for _, p := range a.Target {
		if p != "" && strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// apply prefixes article unless s already carries one.
func (a Articles) apply(s, article string) string {
	if article == "" || s == "" || a.carries(s) || strings.HasPrefix(strings.ToLower(s), strings.ToLower(article)) {
		return s
	}
	return article + s
}

func longestPrefix(s string, forms map[string]string) (prefix, target string) {
	for p, t := range forms {
		if p == "" || len(p) <= len(prefix) {
			continue
		}
		if strings.HasPrefix(s, p) {
			prefix, target = p, t
		}
	}
	return prefix, target
}
