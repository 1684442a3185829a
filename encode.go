package ontic

import (
	"bytes"
	"fmt"
	"time"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/ontic/codec"
	eng "github.com/reoring/ontic/internal/engine"
	srcyaml "github.com/reoring/ontic/source/yaml"
)

// Encode renders v (a *SchemaType, *PropertySchema or *Object) in document
// form. JSON output is indented by two spaces.
func Encode(v any, f Format) ([]byte, error) {
	if f == FormatYAML {
		n, err := toNode(v)
		if err != nil {
			return nil, err
		}
		return yaml.Marshal(n)
	}
	var raw bytes.Buffer
	if err := appendJSON(&raw, v); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := j.Indent(&out, raw.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// ordered is implemented by the ordered containers of this package.
type ordered interface {
	Keys() []string
	Get(string) (any, bool)
}

type schemaView struct{ s *SchemaType }

func (v schemaView) Keys() []string { return v.s.Keys() }
func (v schemaView) Get(k string) (any, bool) {
	ps, ok := v.s.Get(k)
	if !ok || ps == nil {
		return nil, ok
	}
	return ps, true
}

func view(v any) (ordered, bool) {
	switch tv := v.(type) {
	case *SchemaType:
		return schemaView{tv}, tv != nil
	case *PropertySchema:
		return tv, tv != nil
	case *Object:
		return tv, tv != nil
	case *AttributeMap[any]:
		return tv, tv != nil
	}
	return nil, false
}

func appendJSON(buf *bytes.Buffer, v any) error {
	if m, ok := view(v); ok {
		buf.WriteByte('{')
		for i, k := range m.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := j.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			mv, _ := m.Get(k)
			if err := appendJSON(buf, mv); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		}
		buf.WriteByte('}')
		return nil
	}
	var (
		list   []any
		isList bool
	)
	switch tv := v.(type) {
	case Set:
		list, isList = tv, true
	case []any:
		list, isList = tv, true
	case time.Time:
		v = codec.FormatRFC3339(tv)
	}
	if isList {
		buf.WriteByte('[')
		for i, e := range list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := appendJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	}
	b, err := j.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func toNode(v any) (*yaml.Node, error) {
	if m, ok := view(v); ok {
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range m.Keys() {
			mv, _ := m.Get(k)
			c, err := toNode(mv)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, c)
		}
		return n, nil
	}
	var (
		list   []any
		isList bool
	)
	switch tv := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case Set:
		list, isList = tv, true
	case []any:
		list, isList = tv, true
	case Type:
		text, err := tv.MarshalText()
		if err != nil {
			return nil, err
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(text)}, nil
	case time.Time:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: codec.FormatRFC3339(tv)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: eng.FormatFloat(tv)}, nil
	}
	if isList {
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range list {
			c, err := toNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}

// MarshalJSON renders properties in schema order.
func (s *SchemaType) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return marshalJSON(s)
}

// MarshalJSON renders present keys in canonical order.
func (p *PropertySchema) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	return marshalJSON(p)
}

// MarshalJSON renders attributes in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return marshalJSON(o)
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := appendJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler.
func (s *SchemaType) MarshalYAML() (any, error) {
	if s == nil {
		return nil, nil
	}
	return toNode(s)
}

// MarshalYAML implements yaml.Marshaler.
func (p *PropertySchema) MarshalYAML() (any, error) {
	if p == nil {
		return nil, nil
	}
	return toNode(p)
}

// MarshalYAML implements yaml.Marshaler.
func (o *Object) MarshalYAML() (any, error) {
	if o == nil {
		return nil, nil
	}
	return toNode(o)
}

// UnmarshalJSON replaces s with the schema read from b.
func (s *SchemaType) UnmarshalJSON(b []byte) error {
	loaded, err := LoadSchemaJSON(b)
	if err != nil {
		return err
	}
	*s = *loaded
	return nil
}

// UnmarshalYAML replaces s with the schema read from n.
func (s *SchemaType) UnmarshalYAML(n *yaml.Node) error {
	tree, err := decodeNode(n)
	if err != nil {
		return err
	}
	loaded, err := schemaFromTree(tree)
	if err != nil {
		return fmt.Errorf("ontic: load schema: %w", err)
	}
	*s = *loaded
	return nil
}

// UnmarshalJSON replaces p with the property schema read from b.
func (p *PropertySchema) UnmarshalJSON(b []byte) error {
	tree, err := decodeDocument(b, FormatJSON, DefaultLoadOpt())
	if err != nil {
		return err
	}
	return p.fromTree(tree)
}

// UnmarshalYAML replaces p with the property schema read from n.
func (p *PropertySchema) UnmarshalYAML(n *yaml.Node) error {
	tree, err := decodeNode(n)
	if err != nil {
		return err
	}
	return p.fromTree(tree)
}

func (p *PropertySchema) fromTree(tree any) error {
	loaded, err := propertySchemaFromTree(tree)
	if err != nil {
		return fmt.Errorf("ontic: load property schema: %w", err)
	}
	*p = *loaded
	return nil
}

func decodeNode(n *yaml.Node) (any, error) {
	src, err := srcyaml.NewNode(n)
	if err != nil {
		return nil, toIssues(err)
	}
	tree, err := eng.DecodeTree(eng.WrapWithEnforcement(src, DefaultLoadOpt().enforce()))
	if err != nil {
		return nil, toIssues(err)
	}
	return fromTree(tree), nil
}
