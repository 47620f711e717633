package document

import "strconv"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a node of a Document: a string, number, bool or null leaf, an
// ordered sequence, or an ordered mapping. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	text string // string leaf, or the literal of a number
	seq  []Value
	m    *Map
}

// Null returns the null leaf.
func Null() Value { return Value{} }

// Bool returns a boolean leaf.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string leaf.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a number leaf holding lit verbatim. The literal is checked
// when the document is validated, not here.
func Number(lit string) Value { return Value{kind: KindNumber, text: lit} }

// Int returns a number leaf for i.
func Int(i int64) Value { return Number(strconv.FormatInt(i, 10)) }

// Float returns a number leaf for f. NaN and infinities produce a leaf that
// fails validation since they have no JSON form.
func Float(f float64) Value {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// Seq returns a sequence holding items. The slice is used as is.
func Seq(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindSequence, seq: items}
}

// Object returns a mapping backed by m. A nil m is an empty mapping.
func Object(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMapping, m: m}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null leaf.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string leaf, if v is one.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// BoolValue returns the boolean leaf, if v is one.
func (v Value) BoolValue() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Literal returns the number literal, if v is a number.
func (v Value) Literal() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.text, true
}

// Items returns the elements of a sequence, or nil for any other kind.
// Callers must not modify the returned slice.
func (v Value) Items() []Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Map returns the mapping held by v, or nil for any other kind.
func (v Value) Map() *Map {
	if v.kind != KindMapping {
		return nil
	}
	return v.m
}

// Entry is one key/value pair of a Map.
type Entry struct {
	Key   string
	Value Value
}

// Map is an insertion-ordered string-keyed mapping.
type Map struct {
	entries []Entry
	index   map[string]int
	dup     string
	hasDup  bool
}

// NewMap builds a Map from entries in order. A key given twice is kept as a
// duplicate and makes the mapping malformed.
func NewMap(entries ...Entry) *Map {
	m := &Map{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		m.Append(e.Key, e.Value)
	}
	return m
}

// Set inserts key or replaces its value in place, keeping its position.
func (m *Map) Set(key string, v Value) {
	m.init()
	if i, ok := m.index[key]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[key] = len(m.entries)
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

// Append adds key at the end without checking for an existing entry. A
// repeated key is recorded and reported by validation.
func (m *Map) Append(key string, v Value) {
	m.init()
	if _, ok := m.index[key]; ok {
		if !m.hasDup {
			m.dup, m.hasDup = key, true
		}
	} else {
		m.index[key] = len(m.entries)
	}
	m.entries = append(m.entries, Entry{Key: key, Value: v})
}

func (m *Map) init() {
	if m.index == nil {
		m.index = make(map[string]int)
	}
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.entries[i].Value, true
}

// GetString returns the string stored under key, if there is one.
func (m *Map) GetString(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	return v.Str()
}

// Len returns the number of entries, duplicates included.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the entries in insertion order. Callers must not modify
// the returned slice.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	return m.entries
}

// duplicate returns the first key appended twice.
func (m *Map) duplicate() (string, bool) {
	if m == nil {
		return "", false
	}
	return m.dup, m.hasDup
}
