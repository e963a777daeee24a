package testrunner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/builtins"
	"github.com/lx-lang/lx/internal/eval"
	"github.com/lx-lang/lx/internal/loader"
)

func newRuntime(sym *loader.SymbolTable) *eval.Runtime {
	return eval.New(eval.Config{
		Functions:  sym.Functions,
		Contracts:  sym.Contracts,
		ActorDecls: sym.Actors,
		Builtins:   builtins.NewRegistry(),
	})
}

func passingTest() *ast.TestDecl {
	return &ast.TestDecl{
		Ident: "passes",
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ExprStmt{Value: &ast.BoolLit{Value: true}},
		}},
	}
}

func failingTest() *ast.TestDecl {
	return &ast.TestDecl{
		Ident: "fails",
		Body: &ast.Block{Stmts: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.CallExpr{
				Callee: &ast.VarRef{Name: "nonexistent", Resolved: "nonexistent"},
			}},
		}},
	}
}

func TestRunReportsPassingAndFailingTests(t *testing.T) {
	sym := loader.NewSymbolTable()
	sym.Tests["demo.passes"] = passingTest()
	sym.Tests["demo.fails"] = failingTest()

	rt := newRuntime(sym)
	outcomes := Run(rt, sym, 1)

	require.Len(t, outcomes, 2)
	byName := map[string]Outcome{}
	for _, o := range outcomes {
		byName[o.Name] = o
	}

	assert.True(t, byName["passes"].Success)
	assert.Equal(t, "test", byName["passes"].Kind)

	assert.False(t, byName["fails"].Success)
	assert.NotEmpty(t, byName["fails"].Error)
}

func TestRunPropertySucceedsWithoutPredicate(t *testing.T) {
	sym := loader.NewSymbolTable()
	sym.Properties["demo.anyInt"] = &ast.PropertyDecl{
		Ident: "anyInt",
		Params: []ast.PropertyParam{
			{Name: "n", Type: &ast.NamedTypeExpr{Name: "Int"}},
		},
		Body:       &ast.Block{},
		Iterations: 5,
	}

	rt := newRuntime(sym)
	outcomes := Run(rt, sym, 42)

	require.Len(t, outcomes, 1)
	assert.Equal(t, "property", outcomes[0].Kind)
	assert.True(t, outcomes[0].Success)
}

func TestRunPropertyFailsWhenPredicateNeverSatisfied(t *testing.T) {
	sym := loader.NewSymbolTable()
	sym.Properties["demo.impossible"] = &ast.PropertyDecl{
		Ident: "impossible",
		Params: []ast.PropertyParam{
			{
				Name: "n",
				Type: &ast.NamedTypeExpr{Name: "Int"},
				// n == n + 1 is never true: the predicate can never be satisfied.
				Predicate: &ast.BinaryExpr{
					Op:   "==",
					Left: &ast.VarRef{Name: "n", Resolved: "n"},
					Right: &ast.BinaryExpr{
						Op:    "+",
						Left:  &ast.VarRef{Name: "n", Resolved: "n"},
						Right: &ast.IntLit{Value: 1},
					},
				},
			},
		},
		Body:       &ast.Block{},
		Iterations: 1,
	}

	rt := newRuntime(sym)
	outcomes := Run(rt, sym, 7)

	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Success)
	assert.Contains(t, outcomes[0].Error, "never satisfied its predicate")
}

func TestRunOrdersOutcomesByNameWithinKind(t *testing.T) {
	sym := loader.NewSymbolTable()
	sym.Tests["demo.zzz"] = &ast.TestDecl{Ident: "zzz", Body: &ast.Block{}}
	sym.Tests["demo.aaa"] = &ast.TestDecl{Ident: "aaa", Body: &ast.Block{}}

	rt := newRuntime(sym)
	outcomes := Run(rt, sym, 1)

	require.Len(t, outcomes, 2)
	assert.Equal(t, "aaa", outcomes[0].Name)
	assert.Equal(t, "zzz", outcomes[1].Name)
}
