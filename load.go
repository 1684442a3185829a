package ontic

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reoring/ontic/codec"
	eng "github.com/reoring/ontic/internal/engine"
	srcjson "github.com/reoring/ontic/source/json"
	srcyaml "github.com/reoring/ontic/source/yaml"
)

// Format identifies a document syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// ParseFormat accepts "json", "yaml" and "yml".
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	}
	return 0, false
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness groups document-level strictness settings.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate mapping keys).
}

// LoadOpt configures document loading.
type LoadOpt struct {
	Strictness Strictness
	// MaxDepth caps container nesting; 0 means unlimited.
	MaxDepth int
	// OnWarn receives non-fatal issues such as duplicate keys under Warn.
	OnWarn func(Issue)
}

// DefaultLoadOpt rejects duplicate keys and limits nesting to 64 levels.
func DefaultLoadOpt() LoadOpt {
	return LoadOpt{Strictness: Strictness{OnDuplicateKey: Error}, MaxDepth: 64}
}

func lastLoadOpt(opts []LoadOpt) LoadOpt {
	if len(opts) == 0 {
		return DefaultLoadOpt()
	}
	return opts[len(opts)-1]
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func (o LoadOpt) enforce() eng.EnforceOptions {
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(o.Strictness.OnDuplicateKey),
		MaxDepth:    o.MaxDepth,
	}
	if o.OnWarn != nil {
		warn := o.OnWarn
		eo.IssueSink = func(si eng.SimpleIssue) {
			warn(Issue{Code: si.Code, Path: si.Path, Message: si.Message})
		}
	}
	return eo
}

// decodeDocument reads one document into a value tree whose objects are
// *AttributeMap[any] in document order.
func decodeDocument(data []byte, f Format, opt LoadOpt) (any, error) {
	var (
		tree any
		err  error
	)
	switch f {
	case FormatYAML:
		tree, err = srcyaml.Decode(data, opt.enforce())
	default:
		tree, err = srcjson.Decode(data, opt.enforce())
	}
	if err != nil {
		return nil, toIssues(err)
	}
	return fromTree(tree), nil
}

func toIssues(err error) Issues {
	var iss Issues
	if errors.As(err, &iss) {
		return iss
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: err.Error()})
}

func fromTree(v any) any {
	switch tv := v.(type) {
	case eng.Object:
		m := NewAttributeMap[any]()
		for _, mem := range tv {
			m.Set(mem.Key, fromTree(mem.Value))
		}
		return m
	case []any:
		for i, e := range tv {
			tv[i] = fromTree(e)
		}
		return tv
	}
	return v
}

// LoadSchema reads a schema document: a mapping of property name to a
// mapping of PropertySchema keys. Property order follows the document. Enum
// lists become sets and datetime defaults are parsed as RFC3339. The result
// is canonical but not validated.
func LoadSchema(data []byte, f Format, opts ...LoadOpt) (*SchemaType, error) {
	tree, err := decodeDocument(data, f, lastLoadOpt(opts))
	if err != nil {
		return nil, fmt.Errorf("ontic: load schema: %w", err)
	}
	s, err := schemaFromTree(tree)
	if err != nil {
		return nil, fmt.Errorf("ontic: load schema: %w", err)
	}
	return s, nil
}

func schemaFromTree(tree any) (*SchemaType, error) {
	if tree == nil {
		return NewSchemaType(), nil
	}
	doc, ok := tree.(*AttributeMap[any])
	if !ok {
		return nil, AppendIssues(nil, Root().Issue(CodeInvalidType, "schema document must be a mapping"))
	}
	var iss Issues
	doc.Range(func(name string, raw any) bool {
		if prop, ok := raw.(*AttributeMap[any]); ok {
			iss = append(iss, coercePropertyDocument(Root().Field(name), prop)...)
		}
		return true
	})
	if len(iss) > 0 {
		return nil, iss
	}
	return SchemaTypeFrom(doc)
}

func propertySchemaFromTree(tree any) (*PropertySchema, error) {
	if tree == nil {
		return NewPropertySchema(), nil
	}
	doc, ok := tree.(*AttributeMap[any])
	if !ok {
		return nil, AppendIssues(nil, Root().Issue(CodeInvalidType, "property schema document must be a mapping"))
	}
	if iss := coercePropertyDocument(Root(), doc); len(iss) > 0 {
		return nil, iss
	}
	return PropertySchemaFrom(doc)
}

// LoadSchemaJSON is LoadSchema for JSON input.
func LoadSchemaJSON(data []byte, opts ...LoadOpt) (*SchemaType, error) {
	return LoadSchema(data, FormatJSON, opts...)
}

// LoadSchemaYAML is LoadSchema for YAML input.
func LoadSchemaYAML(data []byte, opts ...LoadOpt) (*SchemaType, error) {
	return LoadSchema(data, FormatYAML, opts...)
}

func coercePropertyDocument(at PathRef, prop *AttributeMap[any]) Issues {
	if v, ok := prop.Get(KeyEnum); ok {
		if list, ok := v.([]any); ok {
			prop.Set(KeyEnum, NewSet(list...))
		}
	}
	def, ok := prop.Get(KeyDefault)
	if !ok || def == nil {
		return nil
	}
	ps, err := PropertySchemaFrom(prop)
	if err != nil {
		return nil
	}
	v, iss := coerceDocumentValue(at.Field(KeyDefault), ps, def)
	if len(iss) == 0 {
		prop.Set(KeyDefault, v)
	}
	return iss
}

// coerceDocumentValue maps a decoded scalar or list onto the Go value the
// property type expects: RFC3339 strings become time.Time, lists become
// sets and integers widen to float64 where floats are declared.
func coerceDocumentValue(at PathRef, ps *PropertySchema, v any) (any, Issues) {
	if ps == nil || v == nil {
		return v, nil
	}
	switch ps.Type() {
	case TypeDatetime:
		if s, ok := v.(string); ok {
			t, err := codec.ParseRFC3339(s)
			if err != nil {
				return v, AppendIssues(nil, at.Issue(CodeInvalidFormat, err.Error(), "format", "date-time"))
			}
			return t, nil
		}
	case TypeFloat:
		return codec.Widen(v), nil
	case TypeSet:
		if list, ok := v.([]any); ok {
			return NewSet(coerceMembers(ps, list)...), nil
		}
	case TypeList:
		if list, ok := v.([]any); ok {
			return coerceMembers(ps, list), nil
		}
	}
	return v, nil
}

func coerceMembers(ps *PropertySchema, list []any) []any {
	switch ps.MemberType() {
	case TypeDatetime:
		for i, m := range list {
			if s, ok := m.(string); ok {
				if t, err := codec.ParseRFC3339(s); err == nil {
					list[i] = t
				}
			}
		}
	case TypeFloat:
		for i, m := range list {
			list[i] = codec.Widen(m)
		}
	}
	return list
}

// LoadObject reads an instance document of ot. Values of declared
// properties are coerced as in LoadSchema; the object is neither perfected
// nor validated.
func LoadObject(ot *ObjectType, data []byte, f Format, opts ...LoadOpt) (*Object, error) {
	if ot == nil {
		return nil, argError("object_type", `"object_type" must be provided.`)
	}
	tree, err := decodeDocument(data, f, lastLoadOpt(opts))
	if err != nil {
		return nil, fmt.Errorf("ontic: load %s: %w", ot.name, err)
	}
	o := ot.NewObject()
	if tree == nil {
		return o, nil
	}
	doc, ok := tree.(*AttributeMap[any])
	if !ok {
		return nil, fmt.Errorf("ontic: load %s: %w", ot.name, AppendIssues(nil, Root().Issue(CodeInvalidType, "object document must be a mapping")))
	}
	var iss Issues
	doc.Range(func(name string, v any) bool {
		ps, _ := ot.schema.Get(name)
		cv, vi := coerceDocumentValue(Root().Field(name), ps, v)
		iss = append(iss, vi...)
		o.Set(name, cv)
		return true
	})
	if len(iss) > 0 {
		return nil, fmt.Errorf("ontic: load %s: %w", ot.name, iss)
	}
	return o, nil
}

// LoadObjectJSON is LoadObject for JSON input.
func LoadObjectJSON(ot *ObjectType, data []byte, opts ...LoadOpt) (*Object, error) {
	return LoadObject(ot, data, FormatJSON, opts...)
}

// LoadObjectYAML is LoadObject for YAML input.
func LoadObjectYAML(ot *ObjectType, data []byte, opts ...LoadOpt) (*Object, error) {
	return LoadObject(ot, data, FormatYAML, opts...)
}
