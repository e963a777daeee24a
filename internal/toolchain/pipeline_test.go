package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/actor"
	"github.com/lx-lang/lx/internal/astbridge"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/value"
)

// addModuleJSON is demo.math with a single pure function: fn add(a: Int, b: Int): Int { return a + b }
const addModuleJSON = `{
  "name": "demo.math",
  "decls": [
    {
      "kind": "FnDecl",
      "ident": "add",
      "params": [
        {"name": "a", "type": {"kind": "NamedTypeExpr", "name": "Int"}},
        {"name": "b", "type": {"kind": "NamedTypeExpr", "name": "Int"}}
      ],
      "returnType": {"kind": "NamedTypeExpr", "name": "Int"},
      "body": {
        "stmts": [
          {
            "kind": "ReturnStmt",
            "value": {
              "kind": "BinaryExpr",
              "op": "+",
              "left": {"kind": "VarRef", "name": "a"},
              "right": {"kind": "VarRef", "name": "b"}
            }
          }
        ]
      }
    }
  ]
}`

func writeEntry(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "math.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestBuildAndCallByName(t *testing.T) {
	entry := writeEntry(t, addModuleJSON)

	pl, bag := Build(entry, Options{
		Parse:     astbridge.Decode,
		EffEnv:    effects.Env{},
		Scheduler: actor.Immediate,
	})
	require.True(t, bag.Empty(), bag.List())
	require.NotNil(t, pl)

	result, err := pl.Runtime.CallByName("demo.math.add", []value.Value{value.Int(2), value.Int(3)})
	require.NoError(t, err)
	assert.Equal(t, value.Int(5), result)
}

func TestBuildReportsDiagnosticOnMissingEntry(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.json")

	pl, bag := Build(missing, Options{
		Parse:     astbridge.Decode,
		EffEnv:    effects.Env{},
		Scheduler: actor.Immediate,
	})
	assert.Nil(t, pl)
	assert.False(t, bag.Empty())
}
