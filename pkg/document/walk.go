package document

import (
	"encoding/json"
	"math"
	"strconv"
)

// Validate checks that v is a well-formed, acyclic document.
func Validate(v Value) error {
	_, err := clone(v, nil, newAncestors(), false)
	return err
}

// Clone returns a deep copy of v that shares no mutable state with it.
// It fails with a MalformedError exactly when Validate does.
func Clone(v Value) (Value, error) {
	return clone(v, nil, newAncestors(), true)
}

// ancestors tracks the containers on the current descent so that a value
// reachable from itself is reported instead of recursing forever.
type ancestors map[any]struct{}

type seqID struct {
	first *Value
	n     int
}

func newAncestors() ancestors { return make(ancestors) }

func (a ancestors) enter(v Value) (any, bool) {
	var id any
	switch v.kind {
	case KindMapping:
		id = v.m
	case KindSequence:
		if len(v.seq) == 0 {
			return nil, true
		}
		id = seqID{first: &v.seq[0], n: len(v.seq)}
	default:
		return nil, true
	}
	if _, ok := a[id]; ok {
		return id, false
	}
	a[id] = struct{}{}
	return id, true
}

func (a ancestors) leave(id any) {
	if id != nil {
		delete(a, id)
	}
}

func clone(v Value, p Path, anc ancestors, copyOut bool) (Value, error) {
	if err := checkLeaf(v, p); err != nil {
		return Value{}, err
	}
	id, ok := anc.enter(v)
	if !ok {
		return Value{}, malformed(p, "cycle through %s", v.kind)
	}
	defer anc.leave(id)

	switch v.kind {
	case KindSequence:
		var out []Value
		if copyOut {
			out = make([]Value, len(v.seq))
		}
		for i, item := range v.seq {
			c, err := clone(item, p.Index(i), anc, copyOut)
			if err != nil {
				return Value{}, err
			}
			if copyOut {
				out[i] = c
			}
		}
		if !copyOut {
			return v, nil
		}
		return Seq(out...), nil
	case KindMapping:
		if key, dup := v.m.duplicate(); dup {
			return Value{}, malformed(p, "duplicate key %q", key)
		}
		var out *Map
		if copyOut {
			out = NewMap()
		}
		for _, e := range v.m.Entries() {
			c, err := clone(e.Value, p.Key(e.Key), anc, copyOut)
			if err != nil {
				return Value{}, err
			}
			if copyOut {
				out.Set(e.Key, c)
			}
		}
		if !copyOut {
			return v, nil
		}
		return Object(out), nil
	default:
		return v, nil
	}
}

// checkLeaf reports values that have no serialized form.
func checkLeaf(v Value, p Path) error {
	switch v.kind {
	case KindNull, KindBool, KindString, KindSequence:
		return nil
	case KindMapping:
		if v.m == nil {
			return malformed(p, "nil mapping")
		}
		return nil
	case KindNumber:
		if !validNumber(v.text) {
			return malformed(p, "number %q has no JSON form", v.text)
		}
		return nil
	default:
		return malformed(p, "unknown %s", v.kind)
	}
}

func validNumber(lit string) bool {
	if lit == "" || !(lit[0] == '-' || (lit[0] >= '0' && lit[0] <= '9')) {
		return false
	}
	if !json.Valid([]byte(lit)) {
		return false
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// Out of float64 range is still a valid JSON literal.
		return true
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Equal reports whether a and b hold the same document, key order included.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber, KindString:
		return a.text == b.text
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		ae, be := a.m.Entries(), b.m.Entries()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if ae[i].Key != be[i].Key || !Equal(ae[i].Value, be[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// SameShape reports whether a and b have the same skeleton: the same kind at
// every node, the same mapping keys in the same order and the same sequence
// lengths. Leaf values are ignored.
func SameShape(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !SameShape(a.seq[i], b.seq[i]) {
				return false
			}
		}
	case KindMapping:
		ae, be := a.m.Entries(), b.m.Entries()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if ae[i].Key != be[i].Key || !SameShape(ae[i].Value, be[i].Value) {
				return false
			}
		}
	}
	return true
}

// LeafPaths lists the key path of every value that is not a mapping,
// descending mappings only. This is the key listing used when comparing
// locale files: a sequence is one leaf. v must be acyclic.
func LeafPaths(v Value) []Path {
	var out []Path
	var walk func(Value, Path)
	walk = func(v Value, p Path) {
		if v.kind != KindMapping {
			if len(p) > 0 {
				out = append(out, p)
			}
			return
		}
		for _, e := range v.m.Entries() {
			walk(e.Value, p.Key(e.Key))
		}
	}
	walk(v, nil)
	return out
}
