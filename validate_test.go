package ontic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ontic"
	"github.com/reoring/ontic/i18n"
)

const undefinedRequired = `The value for "required" is not of type "bool": UNDEFINED`

func badRequiredSchema(t *testing.T) *ontic.SchemaType {
	t.Helper()
	s, err := ontic.SchemaTypeFrom(map[string]any{
		"some_attr": map[string]any{"required": "UNDEFINED"},
	})
	require.NoError(t, err)
	return s
}

func TestValidateSchema_RaisesAggregate(t *testing.T) {
	msgs, err := ontic.ValidateSchema(badRequiredSchema(t))
	require.Error(t, err)
	assert.Nil(t, msgs)

	ve, ok := ontic.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{undefinedRequired}, ve.ValidationErrors())
	assert.Equal(t, undefinedRequired, err.Error())

	iss := ve.Issues()
	require.Len(t, iss, 1)
	assert.Equal(t, "/some_attr/required", iss[0].Path)
	assert.Equal(t, ontic.CodeInvalidType, iss[0].Code)
	assert.Equal(t, "bool", iss[0].Params["expected"])
}

func TestValidateSchema_ReturnErrors(t *testing.T) {
	msgs, err := ontic.ValidateSchema(badRequiredSchema(t), ontic.ValidateOpt{ReturnErrors: true})
	require.NoError(t, err)
	assert.Equal(t, []string{undefinedRequired}, msgs)
}

func TestValidateSchema_LastOptWins(t *testing.T) {
	_, err := ontic.ValidateSchema(badRequiredSchema(t),
		ontic.ValidateOpt{ReturnErrors: true}, ontic.ValidateOpt{})
	assert.Error(t, err)
}

func TestValidateSchema_Empty(t *testing.T) {
	msgs, err := ontic.ValidateSchema(ontic.NewSchemaType())
	require.NoError(t, err)
	assert.Empty(t, msgs)

	msgs, err = ontic.ValidateSchema(ontic.NewSchemaType(), ontic.ValidateOpt{ReturnErrors: true})
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestValidateSchema_Valid(t *testing.T) {
	s := ontic.NewSchemaType()
	s.Set("count", ontic.NewPropertySchema().
		SetType(ontic.TypeInt).
		SetRequired(true).
		SetDefault(3).
		SetEnum(1, 2, 3).
		SetMin(1).
		SetMax(3))
	s.Set("tags", ontic.NewPropertySchema().
		SetType(ontic.TypeList).
		SetMemberType(ontic.TypeStr).
		SetMemberMin(1).
		SetRegex("[a-z]+"))
	_, err := ontic.ValidateSchema(s)
	assert.NoError(t, err)
}

func TestValidateSchema_DoesNotMutate(t *testing.T) {
	s := badRequiredSchema(t)
	s.Set("partial", &ontic.PropertySchema{})
	before := s.Clone()
	_, _ = ontic.ValidateSchema(s)
	assert.True(t, before.Equal(s))
	ps, _ := s.Get("partial")
	assert.Equal(t, 0, ps.Len())
}

func TestValidateSchema_AllViolationsInOrder(t *testing.T) {
	s := ontic.NewSchemaType()
	first := ontic.NewPropertySchema()
	require.NoError(t, first.Set(ontic.KeyType, "UNDEFINED"))
	require.NoError(t, first.Set(ontic.KeyMin, "x"))
	s.Set("first", first)
	second := ontic.NewPropertySchema()
	require.NoError(t, second.Set(ontic.KeyEnum, []any{1, 2}))
	s.Set("second", second)

	msgs, err := ontic.ValidateSchema(s, ontic.ValidateOpt{ReturnErrors: true})
	require.NoError(t, err)
	assert.Equal(t, []string{
		`The value for "type" is not of type "type": UNDEFINED`,
		`The value for "min" is not of type "number": x`,
		`The value for "enum" is not of type "set": [1 2]`,
	}, msgs)
}

func TestValidateSchema_Consistency(t *testing.T) {
	s := ontic.NewSchemaType()
	s.Set("bounds", ontic.NewPropertySchema().SetMin(5).SetMax(1))
	s.Set("pattern", ontic.NewPropertySchema().SetRegex("("))
	s.Set("missing", nil)

	_, err := ontic.ValidateSchema(s)
	ve, ok := ontic.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{
		`The value for "min" is greater than "max": 5 > 1`,
		`The value for "regex" is not a valid regex: (`,
		`The value for "missing" is not of type "PropertySchema": <nil>`,
	}, ve.ValidationErrors())

	iss := ve.Issues()
	assert.Equal(t, "/bounds/min", iss[0].Path)
	assert.Equal(t, ontic.CodeTooBig, iss[0].Code)
	assert.Equal(t, ontic.CodeInvalidFormat, iss[1].Code)
}

func TestValidateSchema_Nil(t *testing.T) {
	_, err := ontic.ValidateSchema(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ontic.ErrArgument))
	assert.Equal(t, `"candidate_schema" must be provided.`, err.Error())
	_, isVE := ontic.AsValidationError(err)
	assert.False(t, isVE)
}

func TestSchemaTypeOf(t *testing.T) {
	_, err := ontic.SchemaTypeOf(nil)
	assert.EqualError(t, err, `"candidate_schema" must be provided.`)

	_, err = ontic.SchemaTypeOf(map[string]any{})
	assert.EqualError(t, err, `"candidate_schema" must be of SchemaType.`)

	var typedNil *ontic.SchemaType
	_, err = ontic.SchemaTypeOf(typedNil)
	assert.EqualError(t, err, `"candidate_schema" must be provided.`)
}

func TestMetaSchema_IsACopy(t *testing.T) {
	m := ontic.MetaSchema()
	require.Equal(t, ontic.PropertySchemaKeys(), m.Keys())
	m.Delete(ontic.KeyRequired)

	_, err := ontic.ValidateSchema(badRequiredSchema(t))
	assert.Error(t, err)
	assert.Equal(t, 10, ontic.MetaSchema().Len())
}

func TestMetaSchema_ValidatesItself(t *testing.T) {
	_, err := ontic.ValidateSchema(ontic.MetaSchema())
	assert.NoError(t, err)
}

func TestValidateSchema_Translated(t *testing.T) {
	t.Cleanup(func() { i18n.SetLanguage("en") })
	i18n.SetLanguage("ja")

	msgs, err := ontic.ValidateSchema(badRequiredSchema(t), ontic.ValidateOpt{ReturnErrors: true})
	require.NoError(t, err)
	assert.Equal(t, []string{`"required" の値が型 "bool" ではありません: UNDEFINED`}, msgs)
}

func TestIssues_Error(t *testing.T) {
	iss := ontic.Issues{
		{Code: ontic.CodeRequired, Path: "/a"},
		{Code: ontic.CodeTooBig, Path: "/b"},
		{Code: ontic.CodeTooSmall, Path: "/c"},
		{Code: ontic.CodePattern, Path: "/d"},
	}
	assert.Equal(t, "required at /a; too_big at /b; too_small at /c; ... (total 4)", iss.Error())
	assert.Equal(t, "", ontic.Issues{}.Error())
}
