package ontic

import (
	"fmt"
	"reflect"
	"strings"
)

// Set is an insertion-ordered collection of distinct literal values. It is
// the value type of the "enum" key and of properties typed "set".
type Set []any

// NewSet builds a Set, dropping repeated values.
func NewSet(values ...any) Set {
	s := make(Set, 0, len(values))
	for _, v := range values {
		if !s.Contains(v) {
			s = append(s, v)
		}
	}
	return s
}

// Contains reports membership. Numbers compare by value across Go kinds.
func (s Set) Contains(v any) bool {
	for _, m := range s {
		if equalValues(m, v) {
			return true
		}
	}
	return false
}

// Values returns a copy of the members.
func (s Set) Values() []any {
	out := make([]any, len(s))
	copy(out, s)
	return out
}

// Equal reports whether both sets hold the same members, in any order.
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for _, v := range s {
		if !o.Contains(v) {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	switch av := a.(type) {
	case Set:
		bv, ok := b.(Set)
		return ok && av.Equal(bv)
	case *PropertySchema:
		bv, ok := b.(*PropertySchema)
		return ok && av.Equal(bv)
	case *AttributeMap[any]:
		bv, ok := b.(*AttributeMap[any])
		return ok && av.Equal(bv, equalValues)
	}
	return reflect.DeepEqual(a, b)
}
