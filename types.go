package ontic

import (
	"fmt"
	"reflect"
	"sort"
	"time"
	"unicode/utf8"
)

// Type is the tag stored in the "type" and "member_type" keys of a
// PropertySchema. The zero value is not a valid tag.
type Type uint8

const (
	TypeBool Type = iota + 1
	TypeInt
	TypeFloat
	TypeNumber // int or float
	TypeComplex
	TypeStr
	TypeDatetime // time.Time
	TypeList
	TypeSet
	TypeDict
	TypeType // a Type tag itself
)

var typeNames = [...]string{
	TypeBool:     "bool",
	TypeInt:      "int",
	TypeFloat:    "float",
	TypeNumber:   "number",
	TypeComplex:  "complex",
	TypeStr:      "str",
	TypeDatetime: "datetime",
	TypeList:     "list",
	TypeSet:      "set",
	TypeDict:     "dict",
	TypeType:     "type",
}

// typeByName maps accepted names, aliases included, to tags.
var typeByName = map[string]Type{
	"bool":     TypeBool,
	"boolean":  TypeBool,
	"int":      TypeInt,
	"integer":  TypeInt,
	"long":     TypeInt,
	"float":    TypeFloat,
	"number":   TypeNumber,
	"complex":  TypeComplex,
	"str":      TypeStr,
	"string":   TypeStr,
	"unicode":  TypeStr,
	"datetime": TypeDatetime,
	"list":     TypeList,
	"array":    TypeList,
	"set":      TypeSet,
	"dict":     TypeDict,
	"map":      TypeDict,
	"type":     TypeType,
}

// ParseType translates a type name into its tag.
func ParseType(name string) (Type, bool) {
	t, ok := typeByName[name]
	return t, ok
}

// Types returns every valid tag in declaration order.
func Types() []Type {
	out := make([]Type, 0, len(typeNames)-1)
	for t := TypeBool; t <= TypeType; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is a known tag.
func (t Type) Valid() bool { return t >= TypeBool && t <= TypeType }

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeNames[t]
}

// MarshalText renders the canonical type name.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("ontic: cannot marshal invalid type tag %d", uint8(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText accepts any name understood by ParseType.
func (t *Type) UnmarshalText(b []byte) error {
	v, ok := ParseType(string(b))
	if !ok {
		return fmt.Errorf("ontic: unknown type name %q", string(b))
	}
	*t = v
	return nil
}

// Collection reports whether values of t hold members.
func (t Type) Collection() bool { return t == TypeList || t == TypeSet || t == TypeDict }

// Accepts reports whether v is a value of type t. nil is never accepted.
func (t Type) Accepts(v any) bool {
	if v == nil {
		return false
	}
	switch t {
	case TypeBool:
		_, ok := v.(bool)
		return ok
	case TypeInt:
		return isInteger(v)
	case TypeFloat:
		return isFloat(v)
	case TypeNumber:
		return isInteger(v) || isFloat(v)
	case TypeComplex:
		k := reflect.TypeOf(v).Kind()
		return k == reflect.Complex64 || k == reflect.Complex128
	case TypeStr:
		_, ok := v.(string)
		return ok
	case TypeDatetime:
		switch tv := v.(type) {
		case time.Time:
			return true
		case *time.Time:
			return tv != nil
		}
		return false
	case TypeList:
		return isList(v)
	case TypeSet:
		_, ok := v.(Set)
		return ok
	case TypeDict:
		return isDict(v)
	case TypeType:
		tv, ok := v.(Type)
		return ok && tv.Valid()
	}
	return false
}

func isInteger(v any) bool {
	if _, ok := v.(Type); ok {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(v any) bool {
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Float32 || k == reflect.Float64
}

func isList(v any) bool {
	if _, ok := v.(Set); ok {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// mapping is implemented by the ordered containers of this package that
// behave like dictionaries.
type mapping interface {
	Keys() []string
	Get(key string) (any, bool)
}

func isDict(v any) bool {
	if _, ok := v.(mapping); ok {
		return true
	}
	return reflect.TypeOf(v).Kind() == reflect.Map
}

// toFloat widens any Go integer or float value to float64.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if _, ok := v.(Type); ok {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// length returns the rune count of a string or the size of a collection.
func length(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	switch tv := v.(type) {
	case string:
		return utf8.RuneCountInString(tv), true
	case Set:
		return len(tv), true
	case mapping:
		return len(tv.Keys()), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	}
	return 0, false
}

// members returns the elements of a list or set, or the values of a dict.
// Plain Go maps are visited in sorted key order.
func members(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	switch tv := v.(type) {
	case Set:
		return tv.Values(), true
	case mapping:
		keys := tv.Keys()
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			mv, _ := tv.Get(k)
			out = append(out, mv)
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = rv.MapIndex(k).Interface()
		}
		return out, true
	}
	return nil, false
}
