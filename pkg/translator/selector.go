package translator

import (
	"fmt"
	"strings"

	"doctranslate/pkg/document"
)

// Action is what the translator does with a mapping value.
type Action uint8

const (
	// Keep copies the value unchanged.
	Keep Action = iota
	// Recurse descends into mappings and sequences; string leaves found
	// directly under it are left alone.
	Recurse
	// Translate translates string leaves and strings inside sequences, and
	// descends into nested mappings.
	Translate
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Recurse:
		return "recurse"
	case Translate:
		return "translate"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ParseAction parses the names returned by Action.String.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep":
		return Keep, nil
	case "recurse", "":
		return Recurse, nil
	case "translate":
		return Translate, nil
	default:
		return Keep, fmt.Errorf("translator: unknown action %q", s)
	}
}

// Decision is a selector's verdict for one mapping key.
type Decision struct {
	Action Action
	// Marker names a sibling key holding the same entry in the original
	// language (e.g. the Italian text next to a German word). Its article
	// decides the article of the translation.
	Marker string
	// TargetMarker names a sibling key that may already hold target
	// language text for the entry.
	TargetMarker string
}

// Selector decides, for each key of each mapping, what to do with its value.
// parent is the path of the mapping that holds key.
type Selector interface {
	Select(key string, parent document.Path) Decision
}

// SelectorFunc adapts a function to Selector.
type SelectorFunc func(key string, parent document.Path) Decision

func (f SelectorFunc) Select(key string, parent document.Path) Decision {
	return f(key, parent)
}

// FieldRules is a Selector driven by key names and path patterns. An entry
// containing a dot is a pattern matched against the full path of the value
// (see document.Path.Match); any other entry matches the key anywhere.
// Patterns take precedence over names; Keep over Translate over Recurse.
type FieldRules struct {
	Translate []string
	Recurse   []string
	Keep      []string
	// Markers maps a translated key to its original-language sibling key.
	Markers map[string]string
	// TargetMarkers maps a translated key to its target-language sibling key.
	TargetMarkers map[string]string
	// Default applies to keys no rule mentions.
	Default Action
}

var _ Selector = FieldRules{}

func (r FieldRules) Select(key string, parent document.Path) Decision {
	return Decision{
		Action:       r.action(key, parent),
		Marker:       r.Markers[key],
		TargetMarker: r.TargetMarkers[key],
	}
}

func (r FieldRules) action(key string, parent document.Path) Action {
	full := parent.Key(key)
	ordered := []struct {
		names  []string
		action Action
	}{
		{r.Keep, Keep},
		{r.Translate, Translate},
		{r.Recurse, Recurse},
	}
	for _, o := range ordered {
		for _, n := range o.names {
			if isPattern(n) && full.Match(n) {
				return o.action
			}
		}
	}
	for _, o := range ordered {
		for _, n := range o.names {
			if !isPattern(n) && n == key {
				return o.action
			}
		}
	}
	return r.Default
}

// Validate reports a key listed under more than one action and markers that
// point a key at itself.
func (r FieldRules) Validate() error {
	seen := make(map[string]Action)
	lists := []struct {
		names  []string
		action Action
	}{
		{r.Keep, Keep},
		{r.Translate, Translate},
		{r.Recurse, Recurse},
	}
	for _, l := range lists {
		for _, n := range l.names {
			if strings.TrimSpace(n) == "" {
				return fmt.Errorf("translator: empty field rule under %s", l.action)
			}
			if prev, ok := seen[n]; ok && prev != l.action {
				return fmt.Errorf("translator: field %q listed as both %s and %s", n, prev, l.action)
			}
			seen[n] = l.action
		}
	}
	for k, m := range r.Markers {
		if k == m {
			return fmt.Errorf("translator: field %q is its own marker", k)
		}
	}
	for k, m := range r.TargetMarkers {
		if k == m {
			return fmt.Errorf("translator: field %q is its own target marker", k)
		}
	}
	return nil
}

func isPattern(s string) bool {
	return strings.Contains(s, ".")
}
