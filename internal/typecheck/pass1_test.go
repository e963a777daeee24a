package typecheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/builtins"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/loader"
	"github.com/lx-lang/lx/internal/types"
)

func intParam(name string) ast.Param {
	return ast.Param{Name: name, Type: &ast.NamedTypeExpr{Name: "Int"}}
}

func TestCollectFnBuildsSignature(t *testing.T) {
	fn := &ast.FnDecl{
		Ident:      "add",
		Params:     []ast.Param{intParam("a"), intParam("b")},
		ReturnType: &ast.NamedTypeExpr{Name: "Int"},
	}
	mod := &ast.Module{Name: "demo", Decls: []ast.Decl{fn}}
	sym := loader.NewSymbolTable()

	c, bag := New([]*ast.Module{mod}, sym, builtins.NewRegistry())
	assert.True(t, bag.Empty())

	sig, ok := c.Functions["demo.add"]
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, sig.ParamNames)
	assert.True(t, sig.Pure)
	assert.Equal(t, types.TInt(), sig.Return)
}

func TestCollectFnRejectsUndeclaredEffect(t *testing.T) {
	fn := &ast.FnDecl{
		Ident:   "weird",
		Effects: []string{"Frobnicate"},
	}
	mod := &ast.Module{Name: "demo", Decls: []ast.Decl{fn}}
	sym := loader.NewSymbolTable()

	_, bag := New([]*ast.Module{mod}, sym, builtins.NewRegistry())
	require.False(t, bag.Empty())
	found := false
	for _, d := range bag.List() {
		if d.Code == diag.TC013 {
			found = true
		}
	}
	assert.True(t, found, "expected a TC013 diagnostic for the undeclared effect")
}

func TestCollectFnAcceptsBaselineEffect(t *testing.T) {
	fn := &ast.FnDecl{Ident: "logs", Effects: []string{"Log"}}
	mod := &ast.Module{Name: "demo", Decls: []ast.Decl{fn}}
	sym := loader.NewSymbolTable()

	_, bag := New([]*ast.Module{mod}, sym, builtins.NewRegistry())
	assert.True(t, bag.Empty())
}

func TestCollectFnAcceptsModuleDeclaredEffect(t *testing.T) {
	fn := &ast.FnDecl{Ident: "custom", Effects: []string{"Paint"}}
	mod := &ast.Module{Name: "demo", Decls: []ast.Decl{fn}}
	sym := loader.NewSymbolTable()
	sym.Effects["demo.Paint"] = &ast.EffectDecl{Ident: "Paint"}

	_, bag := New([]*ast.Module{mod}, sym, builtins.NewRegistry())
	assert.True(t, bag.Empty())
}

// TestAliasExpandsCallSiteTypeArgument is the regression test for the
// alias-substitution bug: a parametrized alias used as e.g. Box<Int>
// must check as List<Int>, not List<rigid_T>.
func TestAliasExpandsCallSiteTypeArgument(t *testing.T) {
	alias := &ast.AliasTypeDecl{
		Ident:      "Box",
		TypeParams: []string{"T"},
		Target:     &ast.NamedTypeExpr{Name: types.List, Args: []ast.TypeExpr{&ast.TypeVarExpr{Name: "T"}}},
	}
	fn := &ast.FnDecl{
		Ident:      "firstOf",
		Params:     []ast.Param{{Name: "xs", Type: &ast.NamedTypeExpr{Name: "Box", Args: []ast.TypeExpr{&ast.NamedTypeExpr{Name: "Int"}}}}},
		ReturnType: &ast.NamedTypeExpr{Name: types.List, Args: []ast.TypeExpr{&ast.NamedTypeExpr{Name: "Int"}}},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.VarRef{Name: "xs", Resolved: "xs"}},
		}},
	}
	mod := &ast.Module{Name: "demo", Decls: []ast.Decl{alias, fn}}
	sym := loader.NewSymbolTable()
	sym.Types["demo.Box"] = alias

	c, bag := New([]*ast.Module{mod}, sym, builtins.NewRegistry())
	require.True(t, bag.Empty())

	resultBag := c.Check([]*ast.Module{mod})
	assert.True(t, resultBag.Empty(), "Box<Int> should unify with List<Int>: %v", resultBag.List())
}
