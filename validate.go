package ontic

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/reoring/ontic/i18n"
)

// metaSchema describes a PropertySchema itself. ValidateSchema checks every
// property schema against it with the same value checks used for objects.
var metaSchema = sync.OnceValue(func() *SchemaType {
	s := NewSchemaType()
	s.Set(KeyType, NewPropertySchema().SetType(TypeType))
	s.Set(KeyRequired, NewPropertySchema().SetType(TypeBool).SetDefault(false))
	s.Set(KeyDefault, NewPropertySchema())
	s.Set(KeyEnum, NewPropertySchema().SetType(TypeSet))
	s.Set(KeyMin, NewPropertySchema().SetType(TypeNumber))
	s.Set(KeyMax, NewPropertySchema().SetType(TypeNumber))
	s.Set(KeyRegex, NewPropertySchema().SetType(TypeStr))
	s.Set(KeyMemberType, NewPropertySchema().SetType(TypeType))
	s.Set(KeyMemberMin, NewPropertySchema().SetType(TypeNumber))
	s.Set(KeyMemberMax, NewPropertySchema().SetType(TypeNumber))
	return s
})

// MetaSchema returns a copy of the schema that every PropertySchema is
// validated against.
func MetaSchema() *SchemaType { return metaSchema().Clone() }

// ValidateSchema checks every property schema of candidate against the
// meta-schema and reports all violations in property then key order.
//
// By default a non-empty result is returned as a *ValidationError. With
// ValidateOpt{ReturnErrors: true} the messages are returned instead and the
// error is nil. A nil candidate is a precondition failure (*ArgumentError).
func ValidateSchema(candidate *SchemaType, opts ...ValidateOpt) ([]string, error) {
	if candidate == nil {
		return nil, errSchemaMissing()
	}
	return finish(checkSchema(candidate), lastValidateOpt(opts))
}

func checkSchema(s *SchemaType) Issues {
	meta := metaSchema()
	var iss Issues
	s.Range(func(name string, ps *PropertySchema) bool {
		at := Root().Field(name)
		if ps == nil {
			iss = append(iss, issue(at, CodeInvalidType, i18n.InvalidType, map[string]string{
				"name": name, "expected": "PropertySchema", "value": formatValue(nil),
			}))
			return true
		}
		for _, key := range ps.Keys() {
			kp, _ := meta.Get(key)
			v, _ := ps.Get(key)
			iss = append(iss, checkValue(at.Field(key), key, kp, v)...)
		}
		iss = append(iss, checkConsistency(at, ps)...)
		return true
	})
	return iss
}

// checkConsistency covers the meta rules a type check cannot express.
func checkConsistency(at PathRef, ps *PropertySchema) Issues {
	var iss Issues
	if pat, ok := ps.regex.(string); ok {
		if _, err := compilePattern(pat); err != nil {
			iss = append(iss, issue(at.Field(KeyRegex), CodeInvalidFormat, i18n.InvalidPattern, map[string]string{
				"name": KeyRegex, "value": pat,
			}))
		}
	}
	iss = append(iss, checkBoundOrder(at, KeyMin, KeyMax, ps.min, ps.max)...)
	iss = append(iss, checkBoundOrder(at, KeyMemberMin, KeyMemberMax, ps.memberMin, ps.memberMax)...)
	return iss
}

func checkBoundOrder(at PathRef, lowKey, highKey string, low, high any) Issues {
	lo, ok1 := low.(float64)
	hi, ok2 := high.(float64)
	if !ok1 || !ok2 || lo <= hi {
		return nil
	}
	return Issues{issue(at.Field(lowKey), CodeTooBig, i18n.BoundsInverted, map[string]string{
		"name": lowKey, "other": highKey, "value": formatValue(lo), "bound": formatValue(hi),
	})}
}

// checkValue validates one value against one property schema. A nil value
// means the property is absent.
func checkValue(at PathRef, name string, ps *PropertySchema, v any) Issues {
	if ps == nil {
		return nil
	}
	var iss Issues
	if v == nil {
		if ps.Required() {
			iss = append(iss, issue(at, CodeRequired, i18n.Required, map[string]string{"name": name}))
		}
		return iss
	}

	if t := ps.Type(); t != 0 && !t.Accepts(v) {
		return append(iss, issue(at, CodeInvalidType, i18n.InvalidType, map[string]string{
			"name": name, "expected": t.String(), "value": formatValue(v),
		}))
	}

	if enum := ps.Enum(); len(enum) > 0 && !enum.Contains(v) {
		iss = append(iss, issue(at, CodeInvalidEnum, i18n.InvalidEnum, map[string]string{
			"name": name, "value": formatValue(v), "enum": formatValue(enum),
		}))
	}

	lo, hasLo := ps.Min()
	hi, hasHi := ps.Max()
	iss = append(iss, checkBounds(at, name, v, lo, hasLo, hi, hasHi)...)

	if pat, ok := ps.regex.(string); ok {
		if s, ok := v.(string); ok {
			if re, err := compilePattern(pat); err == nil && !re.MatchString(s) {
				iss = append(iss, issue(at, CodePattern, i18n.Pattern, map[string]string{
					"name": name, "value": s, "pattern": pat,
				}))
			}
		}
	}

	iss = append(iss, checkMembers(at, name, ps, v)...)
	return iss
}

// checkBounds compares numbers by value and strings or collections by length.
func checkBounds(at PathRef, name string, v any, lo float64, hasLo bool, hi float64, hasHi bool) Issues {
	if !hasLo && !hasHi {
		return nil
	}
	var iss Issues
	if n, ok := toFloat(v); ok {
		if hasLo && n < lo {
			iss = append(iss, boundIssue(at, CodeTooSmall, i18n.TooSmall, name, v, lo))
		}
		if hasHi && n > hi {
			iss = append(iss, boundIssue(at, CodeTooBig, i18n.TooBig, name, v, hi))
		}
		return iss
	}
	if n, ok := length(v); ok {
		l := float64(n)
		if hasLo && l < lo {
			iss = append(iss, boundIssue(at, CodeTooShort, i18n.TooShort, name, v, lo))
		}
		if hasHi && l > hi {
			iss = append(iss, boundIssue(at, CodeTooLong, i18n.TooLong, name, v, hi))
		}
	}
	return iss
}

func boundIssue(at PathRef, code, id, name string, v any, bound float64) Issue {
	return issue(at, code, id, map[string]string{
		"name": name, "value": formatValue(v), "bound": formatValue(bound),
	})
}

func checkMembers(at PathRef, name string, ps *PropertySchema, v any) Issues {
	mt := ps.MemberType()
	lo, hasLo := ps.MemberMin()
	hi, hasHi := ps.MemberMax()
	if mt == 0 && !hasLo && !hasHi {
		return nil
	}
	ms, ok := members(v)
	if !ok {
		return nil
	}
	var iss Issues
	for _, m := range ms {
		if mt != 0 && !mt.Accepts(m) {
			iss = append(iss, issue(at, CodeInvalidType, i18n.InvalidMemberType, map[string]string{
				"name": name, "value": formatValue(m), "expected": mt.String(),
			}))
			continue
		}
		iss = append(iss, checkBounds(at, name, m, lo, hasLo, hi, hasHi)...)
	}
	return iss
}

func issue(at PathRef, code, id string, data map[string]string) Issue {
	params := make(map[string]any, len(data))
	for k, v := range data {
		params[k] = v
	}
	return Issue{Path: at.Pointer(), Code: code, Message: i18n.T(id, data), Params: params}
}

type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// patterns caches compiled regex values by source pattern.
var patterns sync.Map

// compilePattern anchors the pattern at the start of the value.
func compilePattern(pat string) (*regexp.Regexp, error) {
	if c, ok := patterns.Load(pat); ok {
		cp := c.(compiledPattern)
		return cp.re, cp.err
	}
	var cp compiledPattern
	if _, cp.err = regexp.Compile(pat); cp.err == nil {
		cp.re, cp.err = regexp.Compile(`^(?:` + pat + `)`)
	}
	patterns.Store(pat, cp)
	return cp.re, cp.err
}

// formatValue renders values inside messages: strings verbatim, floats in
// shortest form, absent values as <nil>.
func formatValue(v any) string {
	switch tv := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return tv
	case float64:
		return strconv.FormatFloat(tv, 'g', -1, 64)
	case fmt.Stringer:
		return tv.String()
	}
	return fmt.Sprintf("%v", v)
}
