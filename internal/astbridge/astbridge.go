// Package astbridge implements the JSON AST input bridge spec §6
// names as an alternative to source text: "implementations may accept
// a JSON-encoded AST as an alternative to source text (same Module
// shape)". Concrete grammar and lexing are an explicit Non-goal /
// external collaborator, so this package is the only supplied
// `loader.Parse` implementation — it never lexes or parses text, only
// decodes a pre-built tree.
//
// Grounded on no direct corpus precedent (the pack's lexers/parsers
// all produce an AST from source text, never from JSON); the decoder
// shape below — a "kind" discriminator per node plus a recursive
// dispatch table — follows the same tagged-union idiom internal/ast
// itself uses, just read back out of `map[string]any` instead of a Go
// type switch.
package astbridge

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
)

// Decode reads the JSON-encoded AST at path and builds an *ast.Module
// (the loader.Parse signature: spec §6's external parser hook).
func Decode(path string) (*ast.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON AST: %w", path, err)
	}
	return decodeModule(raw)
}

// DecodeExprLine decodes one JSON-encoded expression node — the unit
// `repl` (spec §A.4) reads per input line, since there is no concrete
// source grammar to parse a line of surface syntax with.
func DecodeExprLine(line string) (ast.Expr, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON expr: %w", err)
	}
	return decodeExpr(raw)
}

func decodeModule(m map[string]any) (*ast.Module, error) {
	mod := &ast.Module{
		Name: str(m, "name"),
		Doc:  str(m, "doc"),
		File: str(m, "file"),
	}
	for _, im := range arr(m, "imports") {
		io, ok := im.(map[string]any)
		if !ok {
			continue
		}
		mod.Imports = append(mod.Imports, ast.Import{
			Path:  str(io, "path"),
			Alias: str(io, "alias"),
			Pos:   decodePos(obj(io, "pos")),
		})
	}
	for _, d := range arr(m, "decls") {
		do, ok := d.(map[string]any)
		if !ok {
			continue
		}
		decl, err := decodeDecl(do)
		if err != nil {
			return nil, err
		}
		mod.Decls = append(mod.Decls, decl)
	}
	return mod, nil
}

func decodePos(m map[string]any) ast.Pos {
	if m == nil {
		return ast.Pos{}
	}
	return diag.Pos{
		File:   str(m, "file"),
		Line:   intOf(m, "line"),
		Column: intOf(m, "column"),
	}
}

// ---- generic map accessors ------------------------------------------

func str(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func intOf(m map[string]any, key string) int {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func boolOf(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	b, _ := m[key].(bool)
	return b
}

func arr(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	a, _ := m[key].([]any)
	return a
}

func obj(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	o, _ := m[key].(map[string]any)
	return o
}

func strs(m map[string]any, key string) []string {
	var out []string
	for _, v := range arr(m, key) {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func kindOf(m map[string]any) string {
	return str(m, "kind")
}
