package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualScalars(t *testing.T) {
	assert.True(t, Equal(Int(3), Int(3)))
	assert.False(t, Equal(Int(3), Int(4)))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.True(t, Equal(String("hi"), String("hi")))
	assert.True(t, Equal(Unit{}, Unit{}))
	assert.False(t, Equal(Int(3), Bool(true)))
}

func TestEqualListsDeep(t *testing.T) {
	a := &List{Elems: []Value{Int(1), String("x")}}
	b := &List{Elems: []Value{Int(1), String("x")}}
	c := &List{Elems: []Value{Int(1), String("y")}}
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
}

func TestEqualCtorsStructural(t *testing.T) {
	a := &Ctor{Name: "Point", Fields: map[string]Value{"x": Int(1), "y": Int(2)}}
	b := &Ctor{Name: "Point", Fields: map[string]Value{"x": Int(1), "y": Int(2)}}
	c := &Ctor{Name: "Point", Fields: map[string]Value{"x": Int(1), "y": Int(3)}}
	d := &Ctor{Name: "Other", Fields: map[string]Value{"x": Int(1), "y": Int(2)}}
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.False(t, Equal(a, d))
}

func TestEqualActorRef(t *testing.T) {
	assert.True(t, Equal(ActorRef{ID: 1}, ActorRef{ID: 1}))
	assert.False(t, Equal(ActorRef{ID: 1}, ActorRef{ID: 2}))
}

func TestToJSONRoundTripsThroughFromJSON(t *testing.T) {
	v := &Ctor{Name: "Pair", Fields: map[string]Value{"a": Int(1), "b": Bool(true)}}

	// FromJSON expects the shapes encoding/json itself produces
	// (float64 for numbers), so round-trip through the real encoder
	// rather than handing ToJSON's output straight to FromJSON.
	raw, err := json.Marshal(ToJSON(v))
	require.NoError(t, err)
	var generic any
	require.NoError(t, json.Unmarshal(raw, &generic))

	back := FromJSON(generic)
	assert.True(t, Equal(v, back))
}

func TestToJSONScalarsAndList(t *testing.T) {
	assert.Equal(t, int64(5), ToJSON(Int(5)))
	assert.Equal(t, true, ToJSON(Bool(true)))
	assert.Equal(t, "hi", ToJSON(String("hi")))
	assert.Nil(t, ToJSON(Unit{}))

	list := &List{Elems: []Value{Int(1), Int(2)}}
	assert.Equal(t, []any{int64(1), int64(2)}, ToJSON(list))
}

func TestFromJSONScalarsAndNested(t *testing.T) {
	assert.Equal(t, Unit{}, FromJSON(nil))
	assert.Equal(t, Bool(true), FromJSON(true))
	assert.Equal(t, Int(7), FromJSON(float64(7)))
	assert.Equal(t, String("z"), FromJSON("z"))

	back := FromJSON([]any{float64(1), float64(2)})
	list, ok := back.(*List)
	assert.True(t, ok)
	assert.Len(t, list.Elems, 2)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "3", Int(3).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "hi", String("hi").String())
	assert.Equal(t, "()", Unit{}.String())
	assert.Equal(t, "ActorRef(5)", ActorRef{ID: 5}.String())
	assert.Equal(t, "<fn demo.f>", FuncRef{QName: "demo.f"}.String())
}
