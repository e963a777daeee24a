package types

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lx-lang/lx/internal/ast"
)

func TestUnifyFlexibleVarBindsToConstructor(t *testing.T) {
	fresh := NewFreshGen()
	s := NewSubstitution()
	a := fresh.Flexible()
	d := Unify(s, a, TInt(), "ctx", ast.Pos{})
	assert.Nil(t, d)
	assert.Equal(t, TInt(), s.Apply(a))
}

func TestUnifyConstructorArgsRecurse(t *testing.T) {
	s := NewSubstitution()
	fresh := NewFreshGen()
	v := fresh.Flexible()
	d := Unify(s, TList(v), TList(TInt()), "ctx", ast.Pos{})
	assert.Nil(t, d)
	assert.Equal(t, TInt(), s.Apply(v))
}

func TestUnifyConstructorNameMismatchFails(t *testing.T) {
	s := NewSubstitution()
	d := Unify(s, TInt(), TBool(), "ctx", ast.Pos{})
	assert.NotNil(t, d)
}

func TestUnifyRigidVarOnlyUnifiesWithItself(t *testing.T) {
	fresh := NewFreshGen()
	s := NewSubstitution()
	r := fresh.Rigid("T")

	assert.Nil(t, Unify(s, r, r, "ctx", ast.Pos{}))

	d := Unify(s, r, TInt(), "ctx", ast.Pos{})
	assert.NotNil(t, d)
	assert.Equal(t, "TC008", d.Code)
}

func TestUnifyTwoDistinctRigidVarsFails(t *testing.T) {
	fresh := NewFreshGen()
	s := NewSubstitution()
	a := fresh.Rigid("A")
	b := fresh.Rigid("B")
	d := Unify(s, a, b, "ctx", ast.Pos{})
	assert.NotNil(t, d)
}

func TestUnifyOccursCheckFails(t *testing.T) {
	fresh := NewFreshGen()
	s := NewSubstitution()
	v := fresh.Flexible()
	d := Unify(s, v, TList(v), "ctx", ast.Pos{})
	assert.NotNil(t, d)
	assert.Equal(t, "TC004", d.Code)
}

func TestUnifyFunctionArityMismatchFails(t *testing.T) {
	s := NewSubstitution()
	a := &Function{Params: []Type{TInt()}, Return: TBool()}
	b := &Function{Params: []Type{TInt(), TInt()}, Return: TBool()}
	d := Unify(s, a, b, "ctx", ast.Pos{})
	assert.NotNil(t, d)
}

func TestUnifyFunctionParamsAndReturnRecurse(t *testing.T) {
	fresh := NewFreshGen()
	s := NewSubstitution()
	pv := fresh.Flexible()
	rv := fresh.Flexible()
	a := &Function{Params: []Type{pv}, Return: rv}
	b := &Function{Params: []Type{TInt()}, Return: TBool()}
	assert.Nil(t, Unify(s, a, b, "ctx", ast.Pos{}))
	assert.Equal(t, TInt(), s.Apply(pv))
	assert.Equal(t, TBool(), s.Apply(rv))
}

func TestSubstitutionApplyAfterPathCompression(t *testing.T) {
	fresh := NewFreshGen()
	s := NewSubstitution()
	x := fresh.Flexible()
	y := fresh.Flexible()
	assert.Nil(t, Unify(s, x, y, "ctx", ast.Pos{}))
	assert.Nil(t, Unify(s, y, TString(), "ctx", ast.Pos{}))
	assert.Equal(t, TString(), s.Apply(x))
}
