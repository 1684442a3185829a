package ontic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ontic"
)

func TestSchemaTypeFrom_MapSortsNames(t *testing.T) {
	s, err := ontic.SchemaTypeFrom(map[string]any{
		"b": map[string]any{"type": "int"},
		"a": nil,
		"c": ontic.NewPropertySchema(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())
	a, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, a.Len())
}

func TestSchemaTypeFrom_OrderedKeepsOrder(t *testing.T) {
	am := ontic.NewAttributeMap[any]()
	am.Set("zeta", map[string]any{"type": "str"})
	am.Set("alpha", map[string]any{"type": "int"})
	s, err := ontic.SchemaTypeFrom(am)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, s.Keys())
}

func TestSchemaTypeFrom_Errors(t *testing.T) {
	_, err := ontic.SchemaTypeFrom("nope")
	assert.EqualError(t, err, "The schema must be a dict or SchemaType.")

	_, err = ontic.SchemaTypeFrom(map[string]any{"a": 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ontic.ErrArgument))
	assert.Equal(t, `The value for property "a" must be a mapping or PropertySchema.`, err.Error())

	assert.Panics(t, func() { ontic.MustSchemaType(1) })
}

func TestSchemaTypeFrom_CopiesSchemaType(t *testing.T) {
	orig := ontic.NewSchemaType()
	orig.Set("a", ontic.NewPropertySchema().SetEnum("x"))
	cp, err := ontic.SchemaTypeFrom(orig)
	require.NoError(t, err)
	require.True(t, cp.Equal(orig))

	ps, _ := cp.Get("a")
	ps.SetRequired(true)
	assert.False(t, cp.Equal(orig))
}

func TestSchemaTypeFrom_CopiesPropertySchemas(t *testing.T) {
	ps := ontic.NewPropertySchema().SetType(ontic.TypeStr)
	s, err := ontic.SchemaTypeFrom(map[string]any{"a": ps})
	require.NoError(t, err)
	got, _ := s.Get("a")
	assert.NotSame(t, ps, got)
	assert.True(t, got.Equal(ps))

	ps.SetRegex("x")
	assert.Equal(t, "", got.Regex())
}

func TestSchemaType_CloneNil(t *testing.T) {
	var none *ontic.SchemaType
	assert.Nil(t, none.Clone())
}

func TestSchemaType_Basics(t *testing.T) {
	s := ontic.NewSchemaType()
	s.Set("a", nil)
	s.Set("b", ontic.NewPropertySchema())
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.True(t, s.Delete("a"))
	assert.False(t, s.Has("a"))
	assert.Contains(t, s.String(), "b: {type: <nil>")

	var none *ontic.SchemaType
	assert.True(t, none.Equal(nil))
	assert.False(t, s.Equal(nil))
}
