package ontic

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// AttributeMap is an ordered name -> value container. Keys keep insertion
// order; re-setting an existing key keeps its position. The zero value is
// ready to use.
type AttributeMap[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

// NewAttributeMap returns an empty map.
func NewAttributeMap[V any]() *AttributeMap[V] {
	return &AttributeMap[V]{m: orderedmap.New[string, V]()}
}

func (a *AttributeMap[V]) store() *orderedmap.OrderedMap[string, V] {
	if a.m == nil {
		a.m = orderedmap.New[string, V]()
	}
	return a.m
}

// Get returns the value for key and whether it is present.
func (a *AttributeMap[V]) Get(key string) (V, bool) {
	if a == nil || a.m == nil {
		var zero V
		return zero, false
	}
	return a.m.Get(key)
}

// Set inserts or replaces the value for key.
func (a *AttributeMap[V]) Set(key string, v V) { a.store().Set(key, v) }

// Delete removes key and reports whether it was present.
func (a *AttributeMap[V]) Delete(key string) bool {
	if a == nil || a.m == nil {
		return false
	}
	_, ok := a.m.Delete(key)
	return ok
}

// Has reports whether key is present.
func (a *AttributeMap[V]) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Len returns the number of entries.
func (a *AttributeMap[V]) Len() int {
	if a == nil || a.m == nil {
		return 0
	}
	return a.m.Len()
}

// Keys returns the keys in insertion order.
func (a *AttributeMap[V]) Keys() []string {
	out := make([]string, 0, a.Len())
	a.Range(func(k string, _ V) bool {
		out = append(out, k)
		return true
	})
	return out
}

// Range calls fn for every entry in insertion order until fn returns false.
func (a *AttributeMap[V]) Range(fn func(key string, v V) bool) {
	if a == nil || a.m == nil {
		return
	}
	for p := a.m.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// Equal compares contents: same key set and eq-equal values. Order is not
// significant.
func (a *AttributeMap[V]) Equal(o *AttributeMap[V], eq func(x, y V) bool) bool {
	if a.Len() != o.Len() {
		return false
	}
	equal := true
	a.Range(func(k string, v V) bool {
		ov, ok := o.Get(k)
		if !ok || !eq(v, ov) {
			equal = false
		}
		return equal
	})
	return equal
}

// Clone copies the map; copyValue may be nil for a shallow copy.
func (a *AttributeMap[V]) Clone(copyValue func(V) V) *AttributeMap[V] {
	out := NewAttributeMap[V]()
	a.Range(func(k string, v V) bool {
		if copyValue != nil {
			v = copyValue(v)
		}
		out.Set(k, v)
		return true
	})
	return out
}

// ToMap flattens the entries into a plain Go map.
func (a *AttributeMap[V]) ToMap() map[string]V {
	out := make(map[string]V, a.Len())
	a.Range(func(k string, v V) bool {
		out[k] = v
		return true
	})
	return out
}
