package ontic

import (
	"sort"
	"strings"
)

// SchemaType describes the shape of an object type: an ordered mapping of
// property name to *PropertySchema.
type SchemaType struct {
	props AttributeMap[*PropertySchema]
}

// NewSchemaType returns an empty schema.
func NewSchemaType() *SchemaType { return &SchemaType{} }

// SchemaTypeFrom builds a schema from nil, another *SchemaType (deep copy), a
// map[string]any (properties sorted by name) or an ordered mapping (insertion
// order kept). Each property value may be a *PropertySchema (copied), a
// mapping or nil and is wrapped into a canonical *PropertySchema.
func SchemaTypeFrom(src any) (*SchemaType, error) {
	s := NewSchemaType()
	switch v := src.(type) {
	case nil:
		return s, nil
	case *SchemaType:
		if v == nil {
			return s, nil
		}
		return v.Clone(), nil
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := s.setRaw(name, v[name]); err != nil {
				return nil, err
			}
		}
		return s, nil
	case mapping:
		for _, name := range v.Keys() {
			raw, _ := v.Get(name)
			if err := s.setRaw(name, raw); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	return nil, argError("schema", "The schema must be a dict or SchemaType.")
}

// MustSchemaType is like SchemaTypeFrom but panics on error.
func MustSchemaType(src any) *SchemaType {
	s, err := SchemaTypeFrom(src)
	if err != nil {
		panic(err)
	}
	return s
}

// SchemaTypeOf asserts that v is a non-nil *SchemaType. It is the boundary
// check for callers holding untyped values.
func SchemaTypeOf(v any) (*SchemaType, error) {
	if v == nil {
		return nil, errSchemaMissing()
	}
	s, ok := v.(*SchemaType)
	if !ok {
		return nil, argError("candidate_schema", `"candidate_schema" must be of SchemaType.`)
	}
	if s == nil {
		return nil, errSchemaMissing()
	}
	return s, nil
}

func errSchemaMissing() *ArgumentError {
	return argError("candidate_schema", `"candidate_schema" must be provided.`)
}

func (s *SchemaType) setRaw(name string, raw any) error {
	if ps, ok := raw.(*PropertySchema); ok {
		s.props.Set(name, ps.Clone())
		return nil
	}
	ps, err := PropertySchemaFrom(raw)
	if err != nil {
		return argError("schema", "The value for property %q must be a mapping or PropertySchema.", name)
	}
	s.props.Set(name, ps)
	return nil
}

// Get returns the property schema registered under name.
func (s *SchemaType) Get(name string) (*PropertySchema, bool) { return s.props.Get(name) }

// Set registers a property schema. A nil schema is allowed; PerfectSchema
// replaces it with a canonical one.
func (s *SchemaType) Set(name string, ps *PropertySchema) { s.props.Set(name, ps) }

// Delete removes a property.
func (s *SchemaType) Delete(name string) bool { return s.props.Delete(name) }

// Has reports whether a property is declared.
func (s *SchemaType) Has(name string) bool { return s.props.Has(name) }

// Len returns the number of properties.
func (s *SchemaType) Len() int { return s.props.Len() }

// Keys returns property names in insertion order.
func (s *SchemaType) Keys() []string { return s.props.Keys() }

// Range visits properties in insertion order until fn returns false.
func (s *SchemaType) Range(fn func(name string, ps *PropertySchema) bool) { s.props.Range(fn) }

// Equal compares two schemas by contents.
func (s *SchemaType) Equal(o *SchemaType) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.props.Equal(&o.props, func(a, b *PropertySchema) bool { return a.Equal(b) })
}

// Clone returns a deep copy.
func (s *SchemaType) Clone() *SchemaType {
	if s == nil {
		return nil
	}
	c := NewSchemaType()
	c.props = *s.props.Clone(func(ps *PropertySchema) *PropertySchema { return ps.Clone() })
	return c
}

func (s *SchemaType) String() string {
	var b strings.Builder
	b.WriteByte('{')
	i := 0
	s.Range(func(name string, ps *PropertySchema) bool {
		if i > 0 {
			b.WriteString(", ")
		}
		i++
		b.WriteString(name)
		b.WriteString(": ")
		if ps == nil {
			b.WriteString(formatValue(nil))
		} else {
			b.WriteString(ps.String())
		}
		return true
	})
	b.WriteByte('}')
	return b.String()
}
