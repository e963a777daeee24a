package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/builtins"
	"github.com/lx-lang/lx/internal/value"
)

func newTestRuntime(functions map[string]*ast.FnDecl, contracts map[string]*ast.FnContractDecl, actors map[string]*ast.ActorDecl) *Runtime {
	return New(Config{
		Functions:  functions,
		Contracts:  contracts,
		ActorDecls: actors,
		Builtins:   builtins.NewRegistry(),
	})
}

func TestCallByNameUserFunction(t *testing.T) {
	fn := &ast.FnDecl{
		Ident:  "double",
		Params: []ast.Param{{Name: "n", Type: &ast.NamedTypeExpr{Name: "Int"}}},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{
				Op:    "*",
				Left:  &ast.VarRef{Name: "n", Resolved: "n"},
				Right: &ast.IntLit{Value: 2},
			}},
		}},
	}
	rt := newTestRuntime(map[string]*ast.FnDecl{"demo.double": fn}, nil, nil)

	result, err := rt.CallByName("demo.double", []value.Value{value.Int(21)})
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), result)
}

func TestCallByNameBuiltin(t *testing.T) {
	rt := newTestRuntime(nil, nil, nil)
	list := &value.List{Elems: []value.Value{value.Int(1), value.Int(2), value.Int(3)}}

	result, err := rt.CallByName("len", []value.Value{list})
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), result)
}

func TestCallByNameUnknownCalleeErrors(t *testing.T) {
	rt := newTestRuntime(nil, nil, nil)
	_, err := rt.CallByName("nothing.here", nil)
	assert.Error(t, err)
}

func TestContractRequiresFailureBlocksCall(t *testing.T) {
	fn := &ast.FnDecl{
		Ident:  "safeDiv",
		Params: []ast.Param{{Name: "n", Type: &ast.NamedTypeExpr{Name: "Int"}}},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.VarRef{Name: "n", Resolved: "n"}},
		}},
	}
	contract := &ast.FnContractDecl{
		FnName: "demo.safeDiv",
		Params: []string{"n"},
		Requires: []ast.Expr{
			&ast.BinaryExpr{
				Op:    ">",
				Left:  &ast.VarRef{Name: "n", Resolved: "n"},
				Right: &ast.IntLit{Value: 0},
			},
		},
	}
	rt := newTestRuntime(
		map[string]*ast.FnDecl{"demo.safeDiv": fn},
		map[string]*ast.FnContractDecl{"demo.safeDiv": contract},
		nil,
	)

	_, err := rt.CallByName("demo.safeDiv", []value.Value{value.Int(-1)})
	assert.Error(t, err)

	result, err := rt.CallByName("demo.safeDiv", []value.Value{value.Int(5)})
	require.NoError(t, err)
	assert.Equal(t, value.Int(5), result)
}

func TestContractEnsuresCanReferenceOld(t *testing.T) {
	fn := &ast.FnDecl{
		Ident:  "increment",
		Params: []ast.Param{{Name: "n", Type: &ast.NamedTypeExpr{Name: "Int"}}},
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{
				Op:    "+",
				Left:  &ast.VarRef{Name: "n", Resolved: "n"},
				Right: &ast.IntLit{Value: 1},
			}},
		}},
	}
	contract := &ast.FnContractDecl{
		FnName: "demo.increment",
		Params: []string{"n"},
		Ensures: []ast.Expr{
			&ast.BinaryExpr{
				Op:   ">",
				Left: &ast.VarRef{Name: "result", Resolved: "result"},
				Right: &ast.CallExpr{
					Callee: &ast.VarRef{Name: "old", Resolved: "old"},
					Args:   []ast.Arg{{Value: &ast.VarRef{Name: "n", Resolved: "n"}}},
				},
			},
		},
	}
	rt := newTestRuntime(
		map[string]*ast.FnDecl{"demo.increment": fn},
		map[string]*ast.FnContractDecl{"demo.increment": contract},
		nil,
	)

	result, err := rt.CallByName("demo.increment", []value.Value{value.Int(4)})
	require.NoError(t, err)
	assert.Equal(t, value.Int(5), result)
}

func TestActorSpawnAndDirectCall(t *testing.T) {
	decl := &ast.ActorDecl{
		Ident:      "Counter",
		InitParams: []ast.Param{{Name: "start", Type: &ast.NamedTypeExpr{Name: "Int"}}},
		StateFields: []ast.Field{
			{Name: "start", Type: &ast.NamedTypeExpr{Name: "Int"}},
		},
		Handlers: []ast.Handler{
			{
				MsgCtor: "Get",
				Body: &ast.Block{Stmts: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.VarRef{Name: "start", Resolved: "start"}},
				}},
			},
		},
	}
	rt := newTestRuntime(nil, nil, map[string]*ast.ActorDecl{"demo.Counter": decl})

	ref, err := rt.CallByName("Actor.spawn.demo.Counter", []value.Value{value.Int(10)})
	require.NoError(t, err)
	actorRef, ok := ref.(value.ActorRef)
	require.True(t, ok)

	result, err := rt.CallByName("Actor.Get", []value.Value{actorRef})
	require.NoError(t, err)
	assert.Equal(t, value.Int(10), result)
}
