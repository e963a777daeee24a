package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/ast"
)

// fakeAliasLookup resolves exactly one alias name, "Box", whose target
// is List<T> over its own rigid type parameter "T" — mirroring what
// typeLookup.LookupType builds for `type Box<T> = List<T>`.
type fakeAliasLookup struct {
	fresh *FreshGen
}

func (f *fakeAliasLookup) LookupType(name string) (arity int, isAlias bool, aliasTarget Type, aliasParams []string, ok bool) {
	if name != "Box" {
		return 0, false, nil, nil, false
	}
	rigidT := f.fresh.Rigid("T")
	target := TList(rigidT)
	return 1, true, target, []string{"T"}, true
}

func namedType(name string, args ...ast.TypeExpr) *ast.NamedTypeExpr {
	return &ast.NamedTypeExpr{Name: name, Args: args}
}

func TestConvertTypeExprScalarsAndArity(t *testing.T) {
	fresh := NewFreshGen()
	got, d := ConvertTypeExpr(namedType("Int"), Scope{}, fresh, nil)
	require.Nil(t, d)
	assert.Equal(t, TInt(), got)

	_, d = ConvertTypeExpr(namedType("Int", namedType("Bool")), Scope{}, fresh, nil)
	assert.NotNil(t, d)
}

func TestConvertTypeExprListAndOption(t *testing.T) {
	fresh := NewFreshGen()
	got, d := ConvertTypeExpr(namedType(List, namedType("String")), Scope{}, fresh, nil)
	require.Nil(t, d)
	assert.Equal(t, TList(TString()), got)

	got, d = ConvertTypeExpr(namedType(Option, namedType("Bool")), Scope{}, fresh, nil)
	require.Nil(t, d)
	assert.Equal(t, TOption(TBool()), got)
}

func TestConvertTypeExprUnknownNameErrors(t *testing.T) {
	fresh := NewFreshGen()
	_, d := ConvertTypeExpr(namedType("Mystery"), Scope{}, fresh, nil)
	assert.NotNil(t, d)
}

// TestConvertTypeExprAliasSubstitutesCallSiteArgs is the regression
// test for the alias-expansion bug: `Box<Int>` must unify with
// `List<Int>`, not `List<rigid_T>`.
func TestConvertTypeExprAliasSubstitutesCallSiteArgs(t *testing.T) {
	fresh := NewFreshGen()
	lookup := &fakeAliasLookup{fresh: fresh}

	got, d := ConvertTypeExpr(namedType("Box", namedType("Int")), Scope{}, fresh, lookup)
	require.Nil(t, d)

	s := NewSubstitution()
	unifyErr := Unify(s, got, TList(TInt()), "alias expansion", ast.Pos{})
	assert.Nil(t, unifyErr, "Box<Int> should expand to List<Int>, got %s", got)
}

func TestConvertTypeExprAliasArityMismatch(t *testing.T) {
	fresh := NewFreshGen()
	lookup := &fakeAliasLookup{fresh: fresh}
	_, d := ConvertTypeExpr(namedType("Box"), Scope{}, fresh, lookup)
	assert.NotNil(t, d)
}

func TestConvertTypeExprTypeVarBindsInScope(t *testing.T) {
	fresh := NewFreshGen()
	scope := Scope{}
	got, d := ConvertTypeExpr(&ast.TypeVarExpr{Name: "T"}, scope, fresh, nil)
	require.Nil(t, d)
	again, d := ConvertTypeExpr(&ast.TypeVarExpr{Name: "T"}, scope, fresh, nil)
	require.Nil(t, d)
	assert.Same(t, got, again)
}

func TestConvertTypeExprFunctionType(t *testing.T) {
	fresh := NewFreshGen()
	fe := &ast.FunctionTypeExpr{Params: []ast.TypeExpr{namedType("Int")}, Return: namedType("Bool")}
	got, d := ConvertTypeExpr(fe, Scope{}, fresh, nil)
	require.Nil(t, d)
	assert.Equal(t, &Function{Params: []Type{TInt()}, Return: TBool()}, got)
}
