package ontic

import (
	"fmt"
	"strings"
)

// Recognized PropertySchema keys.
const (
	KeyType       = "type"
	KeyRequired   = "required"
	KeyDefault    = "default"
	KeyEnum       = "enum"
	KeyMin        = "min"
	KeyMax        = "max"
	KeyRegex      = "regex"
	KeyMemberType = "member_type"
	KeyMemberMin  = "member_min"
	KeyMemberMax  = "member_max"
)

type schemaKey int

const (
	kType schemaKey = iota
	kRequired
	kDefault
	kEnum
	kMin
	kMax
	kRegex
	kMemberType
	kMemberMin
	kMemberMax
	numSchemaKeys
)

// schemaKeyNames lists the keys in canonical order.
var schemaKeyNames = [numSchemaKeys]string{
	KeyType, KeyRequired, KeyDefault, KeyEnum, KeyMin, KeyMax,
	KeyRegex, KeyMemberType, KeyMemberMin, KeyMemberMax,
}

func lookupSchemaKey(name string) (schemaKey, bool) {
	for i, n := range schemaKeyNames {
		if n == name {
			return schemaKey(i), true
		}
	}
	return 0, false
}

// PropertySchemaKeys returns the recognized keys in canonical order.
func PropertySchemaKeys() []string {
	out := make([]string, numSchemaKeys)
	copy(out, schemaKeyNames[:])
	return out
}

// PropertySchema holds the constraints of a single property. Only the ten
// recognized keys can ever be present. Values are kept as given (after
// normalization) so that ValidateSchema can report ill-typed ones.
type PropertySchema struct {
	typ        any
	required   any
	def        any
	enum       any
	min        any
	max        any
	regex      any
	memberType any
	memberMin  any
	memberMax  any

	present [numSchemaKeys]bool
}

func (p *PropertySchema) slot(k schemaKey) *any {
	switch k {
	case kType:
		return &p.typ
	case kRequired:
		return &p.required
	case kDefault:
		return &p.def
	case kEnum:
		return &p.enum
	case kMin:
		return &p.min
	case kMax:
		return &p.max
	case kRegex:
		return &p.regex
	case kMemberType:
		return &p.memberType
	case kMemberMin:
		return &p.memberMin
	case kMemberMax:
		return &p.memberMax
	}
	panic(fmt.Sprintf("ontic: schema key %d out of range", k))
}

func keyDefault(k schemaKey) any {
	if k == kRequired {
		return false
	}
	return nil
}

// normalizeKeyValue converts loosely typed input into the canonical
// representation for a key: type names become tags and numeric bounds become
// float64. Anything else is returned unchanged.
func normalizeKeyValue(k schemaKey, v any) any {
	switch k {
	case kType, kMemberType:
		if s, ok := v.(string); ok {
			if t, ok := ParseType(s); ok {
				return t
			}
		}
	case kMin, kMax, kMemberMin, kMemberMax:
		if f, ok := toFloat(v); ok {
			return f
		}
	}
	return v
}

func (p *PropertySchema) put(k schemaKey, v any) {
	*p.slot(k) = normalizeKeyValue(k, v)
	p.present[k] = true
}

// NewPropertySchema returns the canonical schema: all ten keys present,
// required false and everything else absent.
func NewPropertySchema() *PropertySchema {
	p := &PropertySchema{}
	for k := schemaKey(0); k < numSchemaKeys; k++ {
		p.put(k, keyDefault(k))
	}
	return p
}

// PropertySchemaFrom builds a canonical PropertySchema from nil, another
// *PropertySchema (copied), a map[string]any or any ordered mapping of this
// package. Unrecognized keys are dropped.
func PropertySchemaFrom(src any) (*PropertySchema, error) {
	switch s := src.(type) {
	case nil:
		return NewPropertySchema(), nil
	case *PropertySchema:
		if s == nil {
			return NewPropertySchema(), nil
		}
		p := s.Clone()
		p.fill()
		return p, nil
	case map[string]any:
		p := NewPropertySchema()
		for k := schemaKey(0); k < numSchemaKeys; k++ {
			if v, ok := s[schemaKeyNames[k]]; ok {
				p.put(k, v)
			}
		}
		return p, nil
	case mapping:
		p := NewPropertySchema()
		for _, name := range s.Keys() {
			if k, ok := lookupSchemaKey(name); ok {
				v, _ := s.Get(name)
				p.put(k, v)
			}
		}
		return p, nil
	}
	return nil, argError("property_schema", "The property schema must be a mapping or PropertySchema, got %T.", src)
}

// MustPropertySchema is like PropertySchemaFrom but panics on error.
func MustPropertySchema(src any) *PropertySchema {
	p, err := PropertySchemaFrom(src)
	if err != nil {
		panic(err)
	}
	return p
}

// PropertySchemaOf asserts that v is a non-nil *PropertySchema. It is the
// boundary check for callers holding untyped values.
func PropertySchemaOf(v any) (*PropertySchema, error) {
	if v == nil {
		return nil, argError("candidate_property_schema", `"candidate_property_schema" must be provided.`)
	}
	p, ok := v.(*PropertySchema)
	if !ok {
		return nil, argError("candidate_property_schema", `"candidate_property_schema" must be PropertySchema type.`)
	}
	if p == nil {
		return nil, argError("candidate_property_schema", `"candidate_property_schema" must be provided.`)
	}
	return p, nil
}

// Get returns the value stored under a key and whether the key is present.
func (p *PropertySchema) Get(key string) (any, bool) {
	k, ok := lookupSchemaKey(key)
	if !ok || !p.present[k] {
		return nil, false
	}
	return *p.slot(k), true
}

// Set stores a value by key name, normalizing it like construction does.
func (p *PropertySchema) Set(key string, v any) error {
	k, ok := lookupSchemaKey(key)
	if !ok {
		return argError("key", "%q is not a recognized property schema key.", key)
	}
	p.put(k, v)
	return nil
}

// Delete removes a key, leaving the schema non-canonical until perfected.
func (p *PropertySchema) Delete(key string) bool {
	k, ok := lookupSchemaKey(key)
	if !ok || !p.present[k] {
		return false
	}
	*p.slot(k) = nil
	p.present[k] = false
	return true
}

// Has reports whether key is present.
func (p *PropertySchema) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Len returns the number of present keys.
func (p *PropertySchema) Len() int {
	n := 0
	for _, ok := range p.present {
		if ok {
			n++
		}
	}
	return n
}

// Keys returns the present keys in canonical order.
func (p *PropertySchema) Keys() []string {
	out := make([]string, 0, numSchemaKeys)
	for k, ok := range p.present {
		if ok {
			out = append(out, schemaKeyNames[k])
		}
	}
	return out
}

// ToMap returns the present keys and their values.
func (p *PropertySchema) ToMap() map[string]any {
	out := make(map[string]any, numSchemaKeys)
	for k, ok := range p.present {
		if ok {
			out[schemaKeyNames[k]] = *p.slot(schemaKey(k))
		}
	}
	return out
}

// Equal compares present keys and values.
func (p *PropertySchema) Equal(o *PropertySchema) bool {
	if p == nil || o == nil {
		return p == o
	}
	for k := schemaKey(0); k < numSchemaKeys; k++ {
		if p.present[k] != o.present[k] {
			return false
		}
		if p.present[k] && !equalValues(*p.slot(k), *o.slot(k)) {
			return false
		}
	}
	return true
}

// fill inserts every missing key with its default and normalizes present
// values again.
func (p *PropertySchema) fill() {
	for k := schemaKey(0); k < numSchemaKeys; k++ {
		if p.present[k] {
			p.put(k, *p.slot(k))
			continue
		}
		p.put(k, keyDefault(k))
	}
}

// Clone returns a copy; the enum set and default are deep-copied.
func (p *PropertySchema) Clone() *PropertySchema {
	if p == nil {
		return nil
	}
	c := *p
	if s, ok := c.enum.(Set); ok {
		c.enum = Set(s.Values())
	}
	c.def = copyValue(c.def)
	return &c
}

func (p *PropertySchema) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := p.Get(k)
		fmt.Fprintf(&b, "%s: %s", k, formatValue(v))
	}
	b.WriteByte('}')
	return b.String()
}

// ---- typed accessors ----

// Type returns the type tag, or 0 when absent or not a tag.
func (p *PropertySchema) Type() Type {
	t, _ := p.typ.(Type)
	return t
}

// SetType stores a type tag.
func (p *PropertySchema) SetType(t Type) *PropertySchema { p.put(kType, t); return p }

// Required reports whether the property must be present.
func (p *PropertySchema) Required() bool {
	b, _ := p.required.(bool)
	return b
}

// SetRequired stores the required flag.
func (p *PropertySchema) SetRequired(b bool) *PropertySchema { p.put(kRequired, b); return p }

// Default returns the default value (nil when absent).
func (p *PropertySchema) Default() any { return p.def }

// SetDefault stores the default value.
func (p *PropertySchema) SetDefault(v any) *PropertySchema { p.put(kDefault, v); return p }

// Enum returns the admissible values, or nil when absent.
func (p *PropertySchema) Enum() Set {
	s, _ := p.enum.(Set)
	return s
}

// SetEnum stores the admissible values.
func (p *PropertySchema) SetEnum(values ...any) *PropertySchema {
	p.put(kEnum, NewSet(values...))
	return p
}

// Min returns the lower bound.
func (p *PropertySchema) Min() (float64, bool) { return bound(p.min) }

// SetMin stores the lower bound.
func (p *PropertySchema) SetMin(v float64) *PropertySchema { p.put(kMin, v); return p }

// Max returns the upper bound.
func (p *PropertySchema) Max() (float64, bool) { return bound(p.max) }

// SetMax stores the upper bound.
func (p *PropertySchema) SetMax(v float64) *PropertySchema { p.put(kMax, v); return p }

// Regex returns the pattern, or "" when absent.
func (p *PropertySchema) Regex() string {
	s, _ := p.regex.(string)
	return s
}

// SetRegex stores the pattern.
func (p *PropertySchema) SetRegex(pattern string) *PropertySchema { p.put(kRegex, pattern); return p }

// MemberType returns the member type tag, or 0 when absent.
func (p *PropertySchema) MemberType() Type {
	t, _ := p.memberType.(Type)
	return t
}

// SetMemberType stores the member type tag.
func (p *PropertySchema) SetMemberType(t Type) *PropertySchema { p.put(kMemberType, t); return p }

// MemberMin returns the member lower bound.
func (p *PropertySchema) MemberMin() (float64, bool) { return bound(p.memberMin) }

// SetMemberMin stores the member lower bound.
func (p *PropertySchema) SetMemberMin(v float64) *PropertySchema { p.put(kMemberMin, v); return p }

// MemberMax returns the member upper bound.
func (p *PropertySchema) MemberMax() (float64, bool) { return bound(p.memberMax) }

// SetMemberMax stores the member upper bound.
func (p *PropertySchema) SetMemberMax(v float64) *PropertySchema { p.put(kMemberMax, v); return p }

func bound(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
