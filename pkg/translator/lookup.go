package translator

import "strings"

// Table resolves a source string to its translation by exact match.
type Table interface {
	Lookup(source string) (string, bool)
}

// MapTable is a Table backed by a map.
type MapTable map[string]string

func (t MapTable) Lookup(source string) (string, bool) {
	v, ok := t[source]
	return v, ok
}

// Merge combines tables in order. Blank values are skipped and a later
// value replaces an earlier one for the same source string.
func Merge(tables ...map[string]string) MapTable {
	n := 0
	for _, t := range tables {
		n += len(t)
	}
	out := make(MapTable, n)
	for _, t := range tables {
		for k, v := range t {
			if strings.TrimSpace(v) == "" {
				continue
			}
			out[k] = v
		}
	}
	return out
}
