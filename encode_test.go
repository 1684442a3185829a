package ontic_test

import (
	"strings"
	"testing"
	"time"

	j "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/reoring/ontic"
)

func TestPropertySchema_MarshalJSON(t *testing.T) {
	ps := ontic.NewPropertySchema().SetType(ontic.TypeInt).SetMin(1).SetEnum(1, 2)
	b, err := j.Marshal(ps)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"int","required":false,"default":null,"enum":[1,2],"min":1,"max":null,"regex":null,"member_type":null,"member_min":null,"member_max":null}`, string(b))
	assert.True(t, strings.HasPrefix(string(b), `{"type":"int","required":false,`))
}

func TestSchemaType_JSONRoundTrip(t *testing.T) {
	s, err := ontic.LoadSchemaJSON([]byte(schemaJSON))
	require.NoError(t, err)
	require.NoError(t, ontic.PerfectSchema(s))

	b, err := j.Marshal(s)
	require.NoError(t, err)
	out := string(b)
	assert.Less(t, strings.Index(out, `"name"`), strings.Index(out, `"age"`))
	assert.Contains(t, out, `"default":"2020-01-02T03:04:05Z"`)
	assert.Contains(t, out, `"enum":["red","green"]`)

	var back ontic.SchemaType
	require.NoError(t, j.Unmarshal(b, &back))
	assert.True(t, back.Equal(s))
	assert.Equal(t, s.Keys(), back.Keys())
}

func TestSchemaType_YAMLRoundTrip(t *testing.T) {
	s, err := ontic.LoadSchemaYAML([]byte(schemaYAML))
	require.NoError(t, err)

	b, err := yaml.Marshal(s)
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.HasPrefix(out, "name:\n"))
	assert.Contains(t, out, "type: datetime")

	var back ontic.SchemaType
	require.NoError(t, yaml.Unmarshal(b, &back))
	assert.True(t, back.Equal(s))
	assert.Equal(t, s.Keys(), back.Keys())
}

func TestPropertySchema_Unmarshal(t *testing.T) {
	var ps ontic.PropertySchema
	require.NoError(t, j.Unmarshal([]byte(`{"type":"set","enum":["a"],"bogus":1}`), &ps))
	assert.Equal(t, 10, ps.Len())
	assert.Equal(t, ontic.TypeSet, ps.Type())
	assert.True(t, ps.Enum().Equal(ontic.NewSet("a")))

	var py ontic.PropertySchema
	require.NoError(t, yaml.Unmarshal([]byte("type: float\nmax: 2\n"), &py))
	hi, ok := py.Max()
	require.True(t, ok)
	assert.Equal(t, 2.0, hi)

	assert.Error(t, j.Unmarshal([]byte(`[1]`), &ps))
}

func TestEncode_Object(t *testing.T) {
	ot, err := ontic.CreateObjectType("Event", map[string]any{
		"at":     map[string]any{"type": "datetime"},
		"weight": map[string]any{"type": "float"},
		"tags":   map[string]any{"type": "set"},
	})
	require.NoError(t, err)
	o := ot.New(map[string]any{
		"at":     time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC),
		"weight": 70.0,
		"tags":   ontic.NewSet("a"),
	})

	b, err := ontic.Encode(o, ontic.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-05-06T07:08:09Z","weight":70,"tags":["a"]}`, string(b))

	y, err := ontic.Encode(o, ontic.FormatYAML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(y), `at: "2024-05-06T07:08:09Z"`+"\n"))
	assert.Contains(t, string(y), "weight: 70.0\n")
	assert.Contains(t, string(y), "- a\n")

	back, err := ontic.LoadObjectYAML(ot, y)
	require.NoError(t, err)
	assert.True(t, back.Equal(o))
}

func TestEncode_NilValues(t *testing.T) {
	var s *ontic.SchemaType
	b, err := j.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	sc := ontic.NewSchemaType()
	sc.Set("a", nil)
	b, err = ontic.Encode(sc, ontic.FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null}`, string(b))
}
