package ontic_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ontic"
)

func TestPerfectPropertySchema_FillsMissingKeys(t *testing.T) {
	ps := &ontic.PropertySchema{}
	require.Equal(t, 0, ps.Len())
	require.NoError(t, ontic.PerfectPropertySchema(ps))
	assert.Equal(t, ontic.PropertySchemaKeys(), ps.Keys())
	assert.True(t, ps.Equal(ontic.NewPropertySchema()))
}

func TestPerfectPropertySchema_KeepsValues(t *testing.T) {
	ps := ontic.NewPropertySchema().SetRequired(true).SetType(ontic.TypeStr)
	ps.Delete(ontic.KeyRegex)
	ps.Delete(ontic.KeyDefault)

	require.NoError(t, ontic.PerfectPropertySchema(ps))
	assert.Equal(t, 10, ps.Len())
	assert.True(t, ps.Required())
	assert.Equal(t, ontic.TypeStr, ps.Type())
}

func TestPerfectPropertySchema_RestoresRequiredDefault(t *testing.T) {
	ps := ontic.NewPropertySchema()
	ps.Delete(ontic.KeyRequired)
	require.NoError(t, ontic.PerfectPropertySchema(ps))
	v, ok := ps.Get(ontic.KeyRequired)
	require.True(t, ok)
	assert.Equal(t, false, v)
}

func TestPerfectPropertySchema_Idempotent(t *testing.T) {
	ps := ontic.MustPropertySchema(map[string]any{"type": "int", "max": 3})
	ps.Delete(ontic.KeyMemberMax)
	require.NoError(t, ontic.PerfectPropertySchema(ps))
	once := ps.Clone()
	require.NoError(t, ontic.PerfectPropertySchema(ps))
	assert.True(t, once.Equal(ps))
}

func TestPerfectPropertySchema_Nil(t *testing.T) {
	err := ontic.PerfectPropertySchema(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ontic.ErrArgument))
	assert.Equal(t, `"candidate_property_schema" must be provided.`, err.Error())
}

func TestPerfectSchema_EveryProperty(t *testing.T) {
	s := ontic.NewSchemaType()
	s.Set("some_attr", &ontic.PropertySchema{})
	s.Set("other_attr", nil)

	require.NoError(t, ontic.PerfectSchema(s))
	assert.Equal(t, []string{"some_attr", "other_attr"}, s.Keys())
	total := 0
	s.Range(func(_ string, ps *ontic.PropertySchema) bool {
		require.NotNil(t, ps)
		total += ps.Len()
		return true
	})
	assert.Equal(t, 20, total)
}

func TestPerfectSchema_Idempotent(t *testing.T) {
	s := ontic.MustSchemaType(map[string]any{
		"a": map[string]any{"type": "str"},
		"b": nil,
	})
	require.NoError(t, ontic.PerfectSchema(s))
	once := s.Clone()
	require.NoError(t, ontic.PerfectSchema(s))
	assert.True(t, once.Equal(s))
}

func TestPerfectSchema_Nil(t *testing.T) {
	err := ontic.PerfectSchema(nil)
	require.Error(t, err)
	assert.Equal(t, `"candidate_schema" must be provided.`, err.Error())
}

func TestPerfectSchema_Empty(t *testing.T) {
	s := ontic.NewSchemaType()
	require.NoError(t, ontic.PerfectSchema(s))
	assert.Equal(t, 0, s.Len())
}
