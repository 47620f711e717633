package document

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DecodeYAML reads the first YAML document from r. Mapping order is kept,
// aliases are expanded and scalars are mapped by their resolved tag; tags
// with no document equivalent (timestamps, binary) become strings.
func DecodeYAML(r io.Reader) (Value, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return Null(), nil
		}
		return Value{}, fmt.Errorf("yaml: %w", err)
	}
	return fromYAMLNode(&root, nil, map[*yaml.Node]struct{}{})
}

func fromYAMLNode(n *yaml.Node, p Path, active map[*yaml.Node]struct{}) (Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAMLNode(n.Content[0], p, active)
	case yaml.AliasNode:
		if _, ok := active[n.Alias]; ok {
			return Value{}, malformed(p, "recursive alias %q", n.Value)
		}
		active[n.Alias] = struct{}{}
		defer delete(active, n.Alias)
		return fromYAMLNode(n.Alias, p, active)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for i, c := range n.Content {
			item, err := fromYAMLNode(c, p.Index(i), active)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Seq(items...), nil
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			if kn.Kind != yaml.ScalarNode {
				return Value{}, malformed(p, "non-scalar key at line %d", kn.Line)
			}
			if kn.ShortTag() == "!!merge" {
				return Value{}, fmt.Errorf("yaml: at %s: merge keys are not supported", p)
			}
			if _, exists := m.Get(kn.Value); exists {
				return Value{}, malformed(p, "duplicate key %q", kn.Value)
			}
			item, err := fromYAMLNode(vn, p.Key(kn.Value), active)
			if err != nil {
				return Value{}, err
			}
			m.Set(kn.Value, item)
		}
		return Object(m), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n, p)
	}
	return Value{}, fmt.Errorf("yaml: at %s: unexpected node kind %d", p, n.Kind)
}

func fromYAMLScalar(n *yaml.Node, p Path) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("yaml: at %s: %w", p, err)
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return Value{}, fmt.Errorf("yaml: at %s: %w", p, err)
		}
		return Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("yaml: at %s: %w", p, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, malformed(p, "float %q has no JSON form", n.Value)
		}
		return Float(f), nil
	default:
		return String(n.Value), nil
	}
}

// EncodeYAML writes v as a YAML document with two space indentation.
func EncodeYAML(w io.Writer, v Value) error {
	if err := Validate(v); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return fmt.Errorf("yaml: %w", err)
	}
	return enc.Close()
}

func toYAMLNode(v Value) *yaml.Node {
	switch v.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		tag := "!!float"
		if _, err := strconv.ParseInt(v.text, 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.text}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.text}
	case KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.seq {
			n.Content = append(n.Content, toYAMLNode(item))
		}
		return n
	case KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range v.m.Entries() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
				toYAMLNode(e.Value),
			)
		}
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
