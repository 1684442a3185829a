package ontic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/mohae/deepcopy"
)

// ObjectType is a named object type with a perfected schema.
type ObjectType struct {
	name   string
	schema *SchemaType
}

// CreateObjectType creates an object type. schema may be a *SchemaType or a
// mapping of property descriptions; it is copied and perfected.
func CreateObjectType(name string, schema any) (*ObjectType, error) {
	if name == "" {
		return nil, argError("name", `The string "name" argument is required.`)
	}
	if schema == nil {
		return nil, argError("schema", "The schema dictionary is required.")
	}
	if s, ok := schema.(*SchemaType); ok && s == nil {
		return nil, argError("schema", "The schema dictionary is required.")
	}
	s, err := SchemaTypeFrom(schema)
	if err != nil {
		return nil, err
	}
	if err := PerfectSchema(s); err != nil {
		return nil, err
	}
	return &ObjectType{name: name, schema: s}, nil
}

// Name returns the type name.
func (t *ObjectType) Name() string { return t.name }

// Schema returns the schema shared by every instance of the type.
func (t *ObjectType) Schema() *SchemaType { return t.schema }

// NewObject returns an empty instance.
func (t *ObjectType) NewObject() *Object { return &Object{typ: t} }

// New returns an instance holding values. Declared properties come first in
// schema order, undeclared ones follow sorted by name.
func (t *ObjectType) New(values map[string]any) *Object {
	o := t.NewObject()
	for _, name := range t.schema.Keys() {
		if v, ok := values[name]; ok {
			o.Set(name, v)
		}
	}
	var extra []string
	for name := range values {
		if !t.schema.Has(name) {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		o.Set(name, values[name])
	}
	return o
}

// Object is an instance of an ObjectType: an ordered attribute mapping. It
// may hold properties its schema does not declare until perfected.
type Object struct {
	typ   *ObjectType
	attrs AttributeMap[any]
}

// Type returns the object's type.
func (o *Object) Type() *ObjectType { return o.typ }

// Schema returns the schema of the object's type.
func (o *Object) Schema() *SchemaType { return o.typ.schema }

func (o *Object) Get(name string) (any, bool) { return o.attrs.Get(name) }
func (o *Object) Set(name string, v any)      { o.attrs.Set(name, v) }
func (o *Object) Delete(name string) bool     { return o.attrs.Delete(name) }
func (o *Object) Has(name string) bool        { return o.attrs.Has(name) }
func (o *Object) Len() int                    { return o.attrs.Len() }
func (o *Object) Keys() []string              { return o.attrs.Keys() }

// ToMap returns the attributes as a plain map; nested ordered containers are
// flattened too and sets become slices.
func (o *Object) ToMap() map[string]any {
	out, _ := plain(o).(map[string]any)
	return out
}

// Equal compares type and contents.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	return o.typ == other.typ && o.attrs.Equal(&other.attrs, equalValues)
}

// Clone returns a deep copy sharing the type.
func (o *Object) Clone() *Object {
	return &Object{typ: o.typ, attrs: *o.attrs.Clone(copyValue)}
}

func (o *Object) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		v, _ := o.Get(k)
		fmt.Fprintf(&b, "%s: %s", k, formatValue(v))
	}
	b.WriteByte('}')
	return b.String()
}

func errObjectMissing() *ArgumentError {
	return argError("the_object", `"the_object" must be provided.`)
}

// PerfectObject strips properties the schema does not declare, adds missing
// ones as nil and fills nil values with the schema default. Defaults of
// collection-typed properties are deep-copied so instances never share them.
func PerfectObject(o *Object) error {
	if o == nil || o.typ == nil {
		return errObjectMissing()
	}
	schema := o.Schema()
	for _, name := range o.Keys() {
		if !schema.Has(name) {
			o.Delete(name)
		}
	}
	schema.Range(func(name string, ps *PropertySchema) bool {
		v, ok := o.Get(name)
		if !ok {
			o.Set(name, nil)
		}
		if v != nil || ps == nil || ps.Default() == nil {
			return true
		}
		def := ps.Default()
		if ps.Type().Collection() {
			def = copyValue(def)
		}
		o.Set(name, def)
		return true
	})
	return nil
}

// ValidateObject checks every declared property of o against its schema and
// reports all violations in schema order. Result shape follows ValidateSchema.
func ValidateObject(o *Object, opts ...ValidateOpt) ([]string, error) {
	if o == nil || o.typ == nil {
		return nil, errObjectMissing()
	}
	var iss Issues
	o.Schema().Range(func(name string, ps *PropertySchema) bool {
		v, _ := o.Get(name)
		iss = append(iss, checkValue(Root().Field(name), name, ps, v)...)
		return true
	})
	return finish(iss, lastValidateOpt(opts))
}

// ValidateValue checks a single declared property of o.
func ValidateValue(name string, o *Object, opts ...ValidateOpt) ([]string, error) {
	if name == "" {
		return nil, argError("property_name", `"property_name" is not a valid string.`)
	}
	if o == nil || o.typ == nil {
		return nil, argError("ontic_object", `"ontic_object" is required, cannot be None.`)
	}
	ps, ok := o.Schema().Get(name)
	if !ok {
		return nil, argError("property_name", "%q is not a recognized property.", name)
	}
	v, _ := o.Get(name)
	return finish(checkValue(Root().Field(name), name, ps, v), lastValidateOpt(opts))
}

// Bind decodes o into out, a pointer to a struct or map. Struct fields are
// matched through `ontic:"name"` tags, falling back to field names.
func Bind(o *Object, out any) error {
	if o == nil || o.typ == nil {
		return errObjectMissing()
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "ontic",
		Result:  out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc("2006-01-02T15:04:05Z07:00"),
		),
	})
	if err != nil {
		return fmt.Errorf("ontic: bind %s: %w", o.typ.name, err)
	}
	if err := dec.Decode(o.ToMap()); err != nil {
		return fmt.Errorf("ontic: bind %s: %w", o.typ.name, err)
	}
	return nil
}

// copyValue deep-copies a value, including the ordered containers of this
// package whose state is unexported.
func copyValue(v any) any {
	switch tv := v.(type) {
	case nil:
		return nil
	case *AttributeMap[any]:
		return tv.Clone(copyValue)
	case *PropertySchema:
		return tv.Clone()
	case *Object:
		return tv.Clone()
	case Set:
		out := make(Set, len(tv))
		for i, m := range tv {
			out[i] = copyValue(m)
		}
		return out
	}
	return deepcopy.Copy(v)
}

// plain converts ordered containers into Go maps and sets into slices.
func plain(v any) any {
	switch tv := v.(type) {
	case *Object:
		out := make(map[string]any, tv.Len())
		tv.attrs.Range(func(k string, mv any) bool {
			out[k] = plain(mv)
			return true
		})
		return out
	case *AttributeMap[any]:
		out := make(map[string]any, tv.Len())
		tv.Range(func(k string, mv any) bool {
			out[k] = plain(mv)
			return true
		})
		return out
	case Set:
		out := make([]any, len(tv))
		for i, m := range tv {
			out[i] = plain(m)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, m := range tv {
			out[i] = plain(m)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, m := range tv {
			out[k] = plain(m)
		}
		return out
	}
	return v
}
