package json

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eng "github.com/reoring/ontic/internal/engine"
)

func TestDecode_KeepsKeyOrder(t *testing.T) {
	v, err := Decode([]byte(`{"z":1,"a":{"y":"s","b":[true,null,2.5]},"m":"k"}`), eng.EnforceOptions{})
	require.NoError(t, err)
	obj := v.(eng.Object)
	require.Len(t, obj, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{obj[0].Key, obj[1].Key, obj[2].Key})
	assert.Equal(t, int64(1), obj[0].Value)
	assert.Equal(t, "k", obj[2].Value)

	inner := obj[1].Value.(eng.Object)
	assert.Equal(t, "y", inner[0].Key)
	assert.Equal(t, "s", inner[0].Value)
	assert.Equal(t, []any{true, nil, 2.5}, inner[1].Value)
}

// String values that look like keys must not confuse the key tracking.
func TestDecode_StringValuesAfterContainers(t *testing.T) {
	v, err := Decode([]byte(`{"a":[],"b":"a","c":{},"d":"c"}`), eng.EnforceOptions{OnDuplicate: eng.DupError})
	require.NoError(t, err)
	obj := v.(eng.Object)
	require.Len(t, obj, 4)
	assert.Equal(t, "d", obj[3].Key)
	assert.Equal(t, "c", obj[3].Value)
}

func TestDecode_Duplicate(t *testing.T) {
	_, err := Decode([]byte(`{"a":{"x":1,"x":2}}`), eng.EnforceOptions{OnDuplicate: eng.DupError})
	var ie eng.IssueError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "duplicate_key", ie.Code)
	assert.Equal(t, "/a/x", ie.Path)
}

func TestDecode_Scalars(t *testing.T) {
	v, err := Decode([]byte(`3`), eng.EnforceOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), v)

	v, err = Decode([]byte(`null`), eng.EnforceOptions{})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestDecode_Syntax(t *testing.T) {
	_, err := Decode([]byte(`{"a":`), eng.EnforceOptions{})
	assert.Error(t, err)
}

func TestDecode_TrailingData(t *testing.T) {
	for _, doc := range []string{
		`{"a":1} {"b":2}`,
		`{"a":1} garbage`,
		`[1] 2`,
	} {
		_, err := Decode([]byte(doc), eng.EnforceOptions{})
		var ie eng.IssueError
		require.ErrorAs(t, err, &ie, doc)
		assert.Equal(t, "parse_error", ie.Code, doc)
	}

	v, err := Decode([]byte("{\"a\":1}\n\n"), eng.EnforceOptions{})
	require.NoError(t, err)
	assert.Len(t, v.(eng.Object), 1)
}
