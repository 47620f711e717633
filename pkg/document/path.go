package document

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: a mapping key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path locates a node from the document root.
type Path []Segment

// Key returns a new path extended by a mapping key. p is never modified.
func (p Path) Key(key string) Path {
	return p.with(Segment{Key: key})
}

// Index returns a new path extended by a sequence index. p is never modified.
func (p Path) Index(i int) Path {
	return p.with(Segment{Index: i, IsIndex: true})
}

func (p Path) with(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Last returns the final segment.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// String renders p the way the original locale tooling printed key paths:
// keys joined with dots and indexes in brackets, e.g. "topics[0].content".
// The root is "$".
func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	for i, s := range p {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

// Match reports whether p matches a dotted pattern. Each dot separated part
// matches exactly one segment: "*" matches anything, a decimal matches that
// index, anything else must equal the key.
//
//	topics.*.content.regola
func (p Path) Match(pattern string) bool {
	parts := strings.Split(pattern, ".")
	if len(parts) != len(p) {
		return false
	}
	for i, part := range parts {
		if part == "*" {
			continue
		}
		s := p[i]
		if s.IsIndex {
			n, err := strconv.Atoi(part)
			if err != nil || n != s.Index {
				return false
			}
			continue
		}
		if part != s.Key {
			return false
		}
	}
	return true
}
