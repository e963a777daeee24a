package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtBuildsDiagnosticWithPosition(t *testing.T) {
	pos := Pos{File: "demo.lx", Line: 3, Column: 5}
	d := At(TC001, pos, "type mismatch: %s vs %s", "Int", "Bool")
	assert.Equal(t, TC001, d.Code)
	assert.Equal(t, "type mismatch: Int vs Bool", d.Message)
	assert.Equal(t, "demo.lx", d.File)
	assert.Equal(t, 3, d.Line)
}

func TestNewBuildsDiagnosticWithoutPosition(t *testing.T) {
	d := New(TC002, "unbound variable %q", "x")
	assert.Equal(t, TC002, d.Code)
	assert.Empty(t, d.File)
}

func TestDiagnosticErrorFormatting(t *testing.T) {
	noPos := New(TC002, "unbound variable %q", "x")
	assert.Equal(t, `TC002: unbound variable "x"`, noPos.Error())

	fileOnly := &Diagnostic{Code: TC001, Message: "bad", File: "a.lx"}
	assert.Equal(t, "TC001: bad (a.lx)", fileOnly.Error())

	withLine := At(TC001, Pos{File: "a.lx", Line: 2, Column: 1}, "bad")
	assert.Equal(t, "TC001: bad (a.lx:2:1)", withLine.Error())
}

func TestPosStringOmitsLineWhenZero(t *testing.T) {
	assert.Equal(t, "a.lx", Pos{File: "a.lx"}.String())
	assert.Equal(t, "a.lx:4:2", Pos{File: "a.lx", Line: 4, Column: 2}.String())
}

func TestBagAccumulatesAndIgnoresNil(t *testing.T) {
	var b Bag
	assert.True(t, b.Empty())
	b.Add(nil)
	assert.True(t, b.Empty())
	b.Addf(TC003, Pos{}, "unknown %q", "f")
	assert.False(t, b.Empty())
	assert.Len(t, b.List(), 1)
	assert.Len(t, b.Errors(), 1)
}

func TestRegistryCoversEveryDeclaredCode(t *testing.T) {
	codes := []string{
		PAR001, PAR002,
		MOD001, MOD002,
		LDR001, LDR002, LDR003, LDR004, LDR005,
		RSV001,
		ARG001, ARG002, ARG003, ARG004, ARG005,
		TC001, TC002, TC003, TC004, TC005, TC006, TC007, TC008, TC009, TC010, TC011, TC012, TC013,
		EVA001, EVA002, EVA003, EVA004, EVA005, EVA006, EVA007,
		ACT001, ACT002, ACT003,
		PROP001, PROP002,
		SCH001, SCH002, SCH003,
	}
	for _, code := range codes {
		info, ok := Registry[code]
		assert.True(t, ok, "missing registry entry for %s", code)
		assert.Equal(t, code, info.Code)
	}
}
