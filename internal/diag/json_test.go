package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalDeterministicSortsKeys(t *testing.T) {
	out, err := MarshalDeterministic(map[string]any{"z": 1, "a": 2, "m": 3})
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"m":3,"z":1}`, string(out))
}

func TestMarshalDeterministicNestedAndArrays(t *testing.T) {
	out, err := MarshalDeterministic(map[string]any{
		"list": []any{3, 1, 2},
		"obj":  map[string]any{"b": 1, "a": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"list":[3,1,2],"obj":{"a":2,"b":1}}`, string(out))
}

func TestMarshalDeterministicIsStableAcrossCalls(t *testing.T) {
	v := map[string]any{"x": 1, "y": []any{"a", "b"}}
	a, err := MarshalDeterministic(v)
	require.NoError(t, err)
	b, err := MarshalDeterministic(v)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestMarshalDeterministicDoesNotEscapeHTML(t *testing.T) {
	out, err := MarshalDeterministic(map[string]any{"html": "<b>&x</b>"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<b>&x</b>")
}
