package astbridge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/ast"
)

func writeModuleFixture(t *testing.T, doc map[string]any) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "mod.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecodeModuleWithFnDeclAndImports(t *testing.T) {
	path := writeModuleFixture(t, map[string]any{
		"name": "demo.math",
		"doc":  "arithmetic helpers",
		"imports": []any{
			map[string]any{"path": "demo.util", "alias": "u"},
		},
		"decls": []any{
			map[string]any{
				"kind":  "FnDecl",
				"ident": "add",
				"params": []any{
					map[string]any{"name": "a", "type": map[string]any{"kind": "NamedTypeExpr", "name": "Int"}},
					map[string]any{"name": "b", "type": map[string]any{"kind": "NamedTypeExpr", "name": "Int"}},
				},
				"returnType": map[string]any{"kind": "NamedTypeExpr", "name": "Int"},
				"body": map[string]any{
					"stmts": []any{
						map[string]any{
							"kind": "ReturnStmt",
							"value": map[string]any{
								"kind": "BinaryExpr",
								"op":   "+",
								"left": map[string]any{"kind": "VarRef", "name": "a"},
								"right": map[string]any{"kind": "VarRef", "name": "b"},
							},
						},
					},
				},
			},
		},
	})

	mod, err := Decode(path)
	require.NoError(t, err)

	assert.Equal(t, "demo.math", mod.Name)
	assert.Equal(t, "arithmetic helpers", mod.Doc)
	require.Len(t, mod.Imports, 1)
	assert.Equal(t, "demo.util", mod.Imports[0].Path)
	assert.Equal(t, "u", mod.Imports[0].Alias)

	require.Len(t, mod.Decls, 1)
	fn, ok := mod.Decls[0].(*ast.FnDecl)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Ident)
	require.Len(t, fn.Params, 2)
	require.NotNil(t, fn.Body)
	require.Len(t, fn.Body.Stmts, 1)

	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestDecodeRecordAndSumTypeDecl(t *testing.T) {
	path := writeModuleFixture(t, map[string]any{
		"name": "demo.shapes",
		"decls": []any{
			map[string]any{
				"kind":  "RecordTypeDecl",
				"ident": "Point",
				"fields": []any{
					map[string]any{"name": "x", "type": map[string]any{"kind": "NamedTypeExpr", "name": "Int"}},
					map[string]any{"name": "y", "type": map[string]any{"kind": "NamedTypeExpr", "name": "Int"}},
				},
			},
			map[string]any{
				"kind":  "SumTypeDecl",
				"ident": "Shape",
				"variants": []any{
					map[string]any{"name": "Circle", "fields": []any{
						map[string]any{"name": "r", "type": map[string]any{"kind": "NamedTypeExpr", "name": "Int"}},
					}},
					map[string]any{"name": "Origin"},
				},
			},
		},
	})

	mod, err := Decode(path)
	require.NoError(t, err)
	require.Len(t, mod.Decls, 2)

	rec, ok := mod.Decls[0].(*ast.RecordTypeDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", rec.Ident)
	assert.Len(t, rec.Fields, 2)

	sum, ok := mod.Decls[1].(*ast.SumTypeDecl)
	require.True(t, ok)
	assert.Equal(t, "Shape", sum.Ident)
	require.Len(t, sum.Variants, 2)
	assert.Equal(t, "Circle", sum.Variants[0].Name)
	assert.Empty(t, sum.Variants[1].Fields)
}

func TestDecodeUnknownDeclKindErrors(t *testing.T) {
	path := writeModuleFixture(t, map[string]any{
		"name":  "demo.bad",
		"decls": []any{map[string]any{"kind": "NotARealDecl"}},
	})

	_, err := Decode(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NotARealDecl")
}

func TestDecodeExprLineMatchExpr(t *testing.T) {
	line := `{"kind":"MatchExpr","scrutinee":{"kind":"VarRef","name":"x"},"cases":[` +
		`{"pattern":{"kind":"WildcardPattern"},"body":{"stmts":[` +
		`{"kind":"ExprStmt","value":{"kind":"IntLit","value":1}}]}}]}`

	expr, err := DecodeExprLine(line)
	require.NoError(t, err)

	m, ok := expr.(*ast.MatchExpr)
	require.True(t, ok)
	require.Len(t, m.Cases, 1)
	_, isWildcard := m.Cases[0].Pattern.(*ast.WildcardPattern)
	assert.True(t, isWildcard)
}

func TestDecodeExprLineInvalidJSON(t *testing.T) {
	_, err := DecodeExprLine("{not json")
	require.Error(t, err)
}

func TestDecodeExprLineCallExprNamedArg(t *testing.T) {
	line := `{"kind":"CallExpr","callee":{"kind":"VarRef","name":"f"},"args":[` +
		`{"name":"x","value":{"kind":"IntLit","value":5}}]}`
	expr, err := DecodeExprLine(line)
	require.NoError(t, err)

	call, ok := expr.(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	assert.Equal(t, "x", call.Args[0].Name)
	lit, ok := call.Args[0].Value.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(5), lit.Value)
}
