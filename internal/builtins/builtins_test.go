package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/value"
)

func call(t *testing.T, r *Registry, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	impl, ok := r.Impl(name)
	require.True(t, ok, "builtin %q not registered", name)
	return impl(args, nil)
}

func TestMathBuiltins(t *testing.T) {
	r := NewRegistry()

	got, err := call(t, r, "math.abs", value.Int(-7))
	require.NoError(t, err)
	assert.Equal(t, value.Int(7), got)

	got, err = call(t, r, "math.min", value.Int(3), value.Int(9))
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), got)

	got, err = call(t, r, "math.max", value.Int(3), value.Int(9))
	require.NoError(t, err)
	assert.Equal(t, value.Int(9), got)
}

func TestUnaryBuiltins(t *testing.T) {
	r := NewRegistry()

	got, err := call(t, r, "__negate", value.Int(5))
	require.NoError(t, err)
	assert.Equal(t, value.Int(-5), got)

	got, err = call(t, r, "__not", value.Bool(true))
	require.NoError(t, err)
	assert.Equal(t, value.Bool(false), got)
}

func TestAssertBuiltins(t *testing.T) {
	r := NewRegistry()

	_, err := call(t, r, "assert", value.Bool(true))
	assert.NoError(t, err)

	_, err = call(t, r, "assert", value.Bool(false))
	assert.Error(t, err)

	_, err = call(t, r, "test.assert_equal", value.Int(1), value.Int(1))
	assert.NoError(t, err)

	_, err = call(t, r, "test.assert_equal", value.Int(1), value.Int(2))
	assert.Error(t, err)
}

func TestStringBuiltins(t *testing.T) {
	r := NewRegistry()

	got, err := call(t, r, "str.concat", value.String("foo"), value.String("bar"))
	require.NoError(t, err)
	assert.Equal(t, value.String("foobar"), got)

	got, err = call(t, r, "str.contains", value.String("foobar"), value.String("oob"))
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), got)

	got, err = call(t, r, "str.to_upper", value.String("hi"))
	require.NoError(t, err)
	assert.Equal(t, value.String("HI"), got)
}

func TestListBuiltins(t *testing.T) {
	r := NewRegistry()
	xs := &value.List{Elems: []value.Value{value.Int(1), value.Int(2), value.Int(3)}}

	got, err := call(t, r, "len", xs)
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), got)

	got, err = call(t, r, "reverse", xs)
	require.NoError(t, err)
	assert.Equal(t, &value.List{Elems: []value.Value{value.Int(3), value.Int(2), value.Int(1)}}, got)

	got, err = call(t, r, "head", xs)
	require.NoError(t, err)
	assert.Equal(t, &value.Ctor{Name: "Some", Fields: map[string]value.Value{"value": value.Int(1)}}, got)
}

func TestRegistryLookupReportsEffects(t *testing.T) {
	r := NewRegistry()

	sig, ok := r.Lookup("math.abs")
	require.True(t, ok)
	assert.True(t, sig.Effects.Empty())

	sig, ok = r.Lookup("Log.debug")
	require.True(t, ok)
	assert.False(t, sig.Effects.Empty())
	assert.True(t, sig.Effects.Has("Log"))
}

func TestRegistryHasAndNames(t *testing.T) {
	r := NewRegistry()
	assert.True(t, r.Has("math.abs"))
	assert.False(t, r.Has("no.such.builtin"))
	assert.Contains(t, r.Names(), "math.abs")
}
