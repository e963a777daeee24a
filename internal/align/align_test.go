package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlignAllPositional(t *testing.T) {
	res := Align([]string{"a", "b", "c"}, []Arg{{}, {}, {}})
	assert.Equal(t, []int{0, 1, 2}, res.SlotToArg)
	assert.Empty(t, res.Issues)
}

func TestAlignNamedOutOfOrder(t *testing.T) {
	res := Align([]string{"a", "b"}, []Arg{{Name: "b"}, {Name: "a"}})
	assert.Equal(t, 1, res.SlotToArg[0]) // a filled by arg index 1
	assert.Equal(t, 0, res.SlotToArg[1]) // b filled by arg index 0
	assert.Empty(t, res.Issues)
}

func TestAlignTooManyPositional(t *testing.T) {
	res := Align([]string{"a"}, []Arg{{}, {}})
	assert.Len(t, res.Issues, 1)
	assert.Equal(t, TooManyArguments, res.Issues[0].Kind)
}

func TestAlignUnknownNamedParameter(t *testing.T) {
	res := Align([]string{"a"}, []Arg{{Name: "bogus"}})
	assert.Len(t, res.Issues, 2) // UnknownParameter, then MissingParameter for "a"
	assert.Equal(t, UnknownParameter, res.Issues[0].Kind)
	assert.Equal(t, "bogus", res.Issues[0].Param)
}

func TestAlignDuplicateNamedParameter(t *testing.T) {
	res := Align([]string{"a"}, []Arg{{Name: "a"}, {Name: "a"}})
	assert.Len(t, res.Issues, 1)
	assert.Equal(t, DuplicateParameter, res.Issues[0].Kind)
	assert.Equal(t, 0, res.SlotToArg[0]) // first occurrence wins
}

func TestAlignPositionalAfterNamed(t *testing.T) {
	res := Align([]string{"a", "b"}, []Arg{{Name: "a"}, {}})
	found := false
	for _, iss := range res.Issues {
		if iss.Kind == PositionalAfterNamed {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAlignMissingParameterReported(t *testing.T) {
	res := Align([]string{"a", "b"}, []Arg{{Name: "a"}})
	assert.Len(t, res.Issues, 1)
	assert.Equal(t, MissingParameter, res.Issues[0].Kind)
	assert.Equal(t, "b", res.Issues[0].Param)
}

func TestIssueKindCodes(t *testing.T) {
	assert.Equal(t, "ARG001", TooManyArguments.Code())
	assert.Equal(t, "ARG002", UnknownParameter.Code())
	assert.Equal(t, "ARG003", DuplicateParameter.Code())
	assert.Equal(t, "ARG004", MissingParameter.Code())
	assert.Equal(t, "ARG005", PositionalAfterNamed.Code())
}
