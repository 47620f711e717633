package document

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_SetKeepsPosition(t *testing.T) {
	m := NewMap(
		Entry{Key: "b", Value: String("1")},
		Entry{Key: "a", Value: String("2")},
	)
	m.Set("b", String("3"))
	m.Set("c", Null())

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	got, ok := m.GetString("b")
	require.True(t, ok)
	assert.Equal(t, "3", got)
	assert.Equal(t, 3, m.Len())
}

func TestMap_NilIsEmpty(t *testing.T) {
	var m *Map
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("x")
	assert.False(t, ok)
}

func TestPath_String(t *testing.T) {
	tests := []struct {
		path Path
		want string
	}{
		{nil, "$"},
		{Path{}.Key("title"), "title"},
		{Path{}.Key("topics").Index(0).Key("content"), "topics[0].content"},
		{Path{}.Index(2).Index(1), "[2][1]"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPath_KeyDoesNotAlias(t *testing.T) {
	base := Path{}.Key("a").Key("b")
	x := base.Key("x")
	y := base.Key("y")

	assert.Equal(t, "a.b.x", x.String())
	assert.Equal(t, "a.b.y", y.String())
	assert.Equal(t, "a.b", base.String())
}

func TestPath_Match(t *testing.T) {
	p := Path{}.Key("topics").Index(3).Key("content").Key("regola")

	assert.True(t, p.Match("topics.*.content.regola"))
	assert.True(t, p.Match("topics.3.content.regola"))
	assert.True(t, p.Match("*.*.*.*"))
	assert.False(t, p.Match("topics.2.content.regola"))
	assert.False(t, p.Match("topics.*.content"))
	assert.False(t, p.Match("topics.x.content.regola"))
}

func TestValidate(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		doc := Object(NewMap(
			Entry{Key: "n", Value: Int(3)},
			Entry{Key: "list", Value: Seq(String("a"), Bool(true), Null())},
		))
		assert.NoError(t, Validate(doc))
	})

	t.Run("duplicate key", func(t *testing.T) {
		m := NewMap()
		m.Append("k", String("1"))
		m.Append("k", String("2"))
		doc := Object(NewMap(Entry{Key: "outer", Value: Object(m)}))

		err := Validate(doc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))

		var me *MalformedError
		require.True(t, errors.As(err, &me))
		assert.Equal(t, "outer", me.Path.String())
	})

	t.Run("mapping cycle", func(t *testing.T) {
		m := NewMap()
		m.Set("self", Object(m))
		err := Validate(Object(m))
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("sequence cycle", func(t *testing.T) {
		items := make([]Value, 1)
		items[0] = Seq(items...)
		err := Validate(Seq(items...))
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("shared subtree is not a cycle", func(t *testing.T) {
		shared := Object(NewMap(Entry{Key: "x", Value: String("y")}))
		doc := Seq(shared, shared)
		assert.NoError(t, Validate(doc))
	})

	t.Run("non finite number", func(t *testing.T) {
		assert.ErrorIs(t, Validate(Float(math.NaN())), ErrMalformed)
		assert.ErrorIs(t, Validate(Float(math.Inf(1))), ErrMalformed)
		assert.ErrorIs(t, Validate(Number("0x10")), ErrMalformed)
		assert.NoError(t, Validate(Number("-1.5e10")))
	})
}

func TestClone_IsDeep(t *testing.T) {
	inner := NewMap(Entry{Key: "x", Value: String("y")})
	orig := Object(NewMap(Entry{Key: "inner", Value: Object(inner)}))

	c, err := Clone(orig)
	require.NoError(t, err)
	require.True(t, Equal(orig, c))

	c.Map().Set("added", Null())
	inner.Set("x", String("changed"))

	assert.Equal(t, []string{"inner"}, orig.Map().Keys())
	cInner, _ := c.Map().Get("inner")
	got, _ := cInner.Map().GetString("x")
	assert.Equal(t, "y", got)
}

func TestSameShape(t *testing.T) {
	a := Object(NewMap(
		Entry{Key: "t", Value: String("uno")},
		Entry{Key: "l", Value: Seq(String("a"), Int(1))},
	))
	b := Object(NewMap(
		Entry{Key: "t", Value: String("one")},
		Entry{Key: "l", Value: Seq(String("b"), Int(2))},
	))
	c := Object(NewMap(
		Entry{Key: "t", Value: String("one")},
		Entry{Key: "l", Value: Seq(String("b"))},
	))
	d := Object(NewMap(
		Entry{Key: "t", Value: Int(1)},
		Entry{Key: "l", Value: Seq(String("b"), Int(2))},
	))

	assert.True(t, SameShape(a, b))
	assert.False(t, Equal(a, b))
	assert.False(t, SameShape(a, c))
	assert.False(t, SameShape(a, d))
}

func TestLeafPaths(t *testing.T) {
	doc := Object(NewMap(
		Entry{Key: "nav", Value: Object(NewMap(
			Entry{Key: "home", Value: String("Casa")},
			Entry{Key: "back", Value: String("Indietro")},
		))},
		Entry{Key: "tags", Value: Seq(String("a"))},
	))

	var got []string
	for _, p := range LeafPaths(doc) {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{"nav.home", "nav.back", "tags"}, got)
}
