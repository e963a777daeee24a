package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/ast"
)

func TestWalkResolvesVarRefInFnBody(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{"demo.helper": true, "demo.main": true}}
	ref := &ast.VarRef{Name: "helper"}
	fn := &ast.FnDecl{
		Ident: "main",
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.CallExpr{
				Callee: ref,
				Args:   nil,
			}},
		}},
	}
	mod := &ast.Module{Name: "demo", Decls: []ast.Decl{fn}}

	Walk([]*ast.Module{mod}, idx)

	assert.Equal(t, "demo.helper", ref.Resolved)
}

func TestWalkResolvesNestedExprInIfAndMatch(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{"demo.a": true, "demo.b": true}}
	refA := &ast.VarRef{Name: "a"}
	refB := &ast.VarRef{Name: "b"}

	ifExpr := &ast.IfExpr{
		Cond: refA,
		Then: &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Value: refB}}},
	}
	fn := &ast.FnDecl{
		Ident: "f",
		Body:  &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Value: ifExpr}}},
	}
	mod := &ast.Module{Name: "demo", Decls: []ast.Decl{fn}}

	Walk([]*ast.Module{mod}, idx)

	assert.Equal(t, "demo.a", refA.Resolved)
	assert.Equal(t, "demo.b", refB.Resolved)
}

func TestWalkResolvesContractRequiresAndEnsures(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{"demo.pre": true, "demo.post": true}}
	pre := &ast.VarRef{Name: "pre"}
	post := &ast.VarRef{Name: "post"}

	decl := &ast.FnContractDecl{
		FnName:   "f",
		Requires: []ast.Expr{pre},
		Ensures:  []ast.Expr{post},
	}
	mod := &ast.Module{Name: "demo", Decls: []ast.Decl{decl}}

	Walk([]*ast.Module{mod}, idx)

	assert.Equal(t, "demo.pre", pre.Resolved)
	assert.Equal(t, "demo.post", post.Resolved)
}

func TestWalkResolvesPatternSubsInMatchStmt(t *testing.T) {
	idx := fakeIndex{known: map[string]bool{"demo.inner": true}}
	innerRef := &ast.VarRef{Name: "inner"}
	scrutinee := &ast.VarRef{Name: "scrutinee"}

	matchStmt := &ast.MatchStmt{
		Scrutinee: scrutinee,
		Cases: []ast.MatchCase{{
			Pattern: &ast.CtorPattern{
				Ctor: "Some",
				Subs: []ast.SubPattern{{Field: "value", Pattern: &ast.BindPattern{Name: "x"}}},
			},
			Body: &ast.Block{Stmts: []ast.Stmt{&ast.ExprStmt{Value: innerRef}}},
		}},
	}
	fn := &ast.FnDecl{
		Ident: "f",
		Body:  &ast.Block{Stmts: []ast.Stmt{matchStmt}},
	}
	mod := &ast.Module{Name: "demo", Decls: []ast.Decl{fn}}

	require.NotPanics(t, func() { Walk([]*ast.Module{mod}, idx) })
	assert.Equal(t, "demo.inner", innerRef.Resolved)
}
