package ontic

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/reoring/ontic/codec"
	js "github.com/reoring/ontic/jsonschema"
)

// JSONSchema projects the schema onto JSON Schema. Length bounds of strings
// and collections map to minLength/minItems/minProperties, enums and
// defaults are carried over, and additional properties stay allowed since
// objects may hold them until perfected. Invalid schemas are rejected.
func (s *SchemaType) JSONSchema() (*js.Schema, error) {
	if s == nil {
		return nil, errSchemaMissing()
	}
	if _, err := ValidateSchema(s); err != nil {
		return nil, err
	}
	props := make(map[string]*js.Schema, s.Len())
	var req []string
	var err error
	s.Range(func(name string, ps *PropertySchema) bool {
		var p *js.Schema
		p, err = ps.JSONSchema()
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			return false
		}
		props[name] = p
		if ps.Required() {
			req = append(req, name)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(req)
	return &js.Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: true}, nil
}

// JSONSchema projects a single property. Complex numbers and type tags have
// no JSON form and yield an unconstrained schema.
func (p *PropertySchema) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{}
	t := p.Type()
	s.Type, s.Format = jsonType(t)
	if def := p.Default(); def != nil {
		s.Default = jsonValue(def)
	}
	for _, v := range p.Enum() {
		s.Enum = append(s.Enum, jsonValue(v))
	}
	if re := p.Regex(); re != "" {
		s.Pattern = "^(?:" + re + ")"
	}
	lo, hasLo := p.Min()
	hi, hasHi := p.Max()
	switch t {
	case TypeInt, TypeFloat, TypeNumber:
		if hasLo {
			s.Minimum = js.Float(lo)
		}
		if hasHi {
			s.Maximum = js.Float(hi)
		}
	case TypeStr:
		s.MinLength, s.MaxLength = lengthBounds(lo, hasLo, hi, hasHi)
	case TypeList, TypeSet:
		s.MinItems, s.MaxItems = lengthBounds(lo, hasLo, hi, hasHi)
		s.UniqueItems = t == TypeSet
		if mt := p.MemberType(); mt.Valid() {
			item := &js.Schema{}
			item.Type, item.Format = jsonType(mt)
			mlo, mhasLo := p.MemberMin()
			mhi, mhasHi := p.MemberMax()
			switch mt {
			case TypeInt, TypeFloat, TypeNumber:
				if mhasLo {
					item.Minimum = js.Float(mlo)
				}
				if mhasHi {
					item.Maximum = js.Float(mhi)
				}
			case TypeStr, TypeList, TypeSet, TypeDict:
				item.MinLength, item.MaxLength = lengthBounds(mlo, mhasLo, mhi, mhasHi)
				if mt != TypeStr {
					item.MinItems, item.MaxItems = item.MinLength, item.MaxLength
					item.MinLength, item.MaxLength = nil, nil
				}
			}
			s.Items = item
		}
	case TypeDict:
		s.MinProperties, s.MaxProperties = lengthBounds(lo, hasLo, hi, hasHi)
	}
	return s, nil
}

func jsonType(t Type) (typ, format string) {
	switch t {
	case TypeBool:
		return "boolean", ""
	case TypeInt:
		return "integer", ""
	case TypeFloat, TypeNumber:
		return "number", ""
	case TypeStr:
		return "string", ""
	case TypeDatetime:
		return "string", "date-time"
	case TypeList, TypeSet:
		return "array", ""
	case TypeDict:
		return "object", ""
	}
	return "", ""
}

func lengthBounds(lo float64, hasLo bool, hi float64, hasHi bool) (lower, upper *int) {
	if hasLo {
		lower = js.Int(int(math.Ceil(lo)))
	}
	if hasHi {
		upper = js.Int(int(math.Floor(hi)))
	}
	return lower, upper
}

// jsonValue converts defaults and enum members into plain JSON values.
func jsonValue(v any) any {
	switch tv := v.(type) {
	case time.Time:
		return codec.FormatRFC3339(tv)
	case Type:
		return tv.String()
	}
	return plain(v)
}
