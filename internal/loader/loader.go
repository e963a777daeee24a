// Package loader implements the multi-module loader (spec §4.1): DFS
// import traversal with cycle detection keyed by absolute file path,
// topologically ordered module emission, a global qualified-name
// symbol table, and schema-to-record synthesis.
//
// Grounded on the teacher's internal/module/loader.go (the more
// complete of its two loader implementations).
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
)

// Parse is the external parser hook: spec.md treats the concrete
// grammar as an opaque `source -> Module AST` function. Implementations
// supply this (e.g. internal/astbridge.Decode for the JSON AST bridge).
type Parse func(path string) (*ast.Module, error)

// Loader performs the DFS/topo-sort/symbol-table construction of
// spec §4.1.
type Loader struct {
	roots []string
	parse Parse

	bySym    *SymbolTable
	byPath   map[string]*ast.Module // absolute path -> parsed module
	order    []*ast.Module          // topological order, dependencies first
	onStack  map[string]bool        // absolute paths currently on the DFS stack
	visited  map[string]bool
	projectRoot string
}

// New creates a Loader that searches roots (in order) for imports and
// uses parse to turn a resolved file path into a Module AST.
func New(roots []string, parse Parse) *Loader {
	return &Loader{
		roots:   roots,
		parse:   parse,
		bySym:   NewSymbolTable(),
		byPath:  make(map[string]*ast.Module),
		onStack: make(map[string]bool),
		visited: make(map[string]bool),
	}
}

// Load starts the DFS from entryPath and returns modules in
// topological order (dependencies first) plus the populated symbol
// table, or the first fatal diagnostic encountered.
func (l *Loader) Load(entryPath string) ([]*ast.Module, *SymbolTable, *diag.Diagnostic) {
	l.projectRoot = findProjectRoot(entryPath)
	if d := l.visit(entryPath); d != nil {
		return nil, nil, d
	}
	if d := l.index(); d != nil {
		return nil, nil, d
	}
	l.synthesizeSchemaRecords()
	return l.order, l.bySym, nil
}

func (l *Loader) visit(path string) *diag.Diagnostic {
	abs, err := filepath.Abs(path)
	if err != nil {
		return diag.New(diag.LDR001, "cannot resolve path %q: %v", path, err)
	}
	if l.onStack[abs] {
		return diag.New(diag.LDR002, "circular import detected at %q", abs)
	}
	if l.visited[abs] {
		return nil // already fully loaded
	}

	if _, err := os.Stat(abs); err != nil {
		return diag.New(diag.LDR001, "module file not found: %q", abs)
	}

	l.onStack[abs] = true
	defer delete(l.onStack, abs)

	mod, err := l.parse(abs)
	if err != nil {
		return diag.New(diag.PAR001, "failed to parse %q: %v", abs, err)
	}
	mod.File = abs

	dir := filepath.Dir(abs)
	for _, imp := range mod.Imports {
		resolved, d := l.resolveImportPath(imp.Path, dir)
		if d != nil {
			return d
		}
		if d := l.visit(resolved); d != nil {
			return d
		}
	}

	l.visited[abs] = true
	l.byPath[abs] = mod
	l.order = append(l.order, mod)
	return nil
}

// resolveImportPath tries, in order: relative to the importing file's
// directory, each search root, the last path component relative to
// the importer's directory (sibling modules sharing a prefix), and a
// project-root-relative path (spec §4.1).
func (l *Loader) resolveImportPath(importPath, importerDir string) (string, *diag.Diagnostic) {
	rel := filepath.Join(importerDir, pathToFile(importPath))
	if fileExists(rel) {
		return rel, nil
	}

	for _, root := range l.roots {
		candidate := filepath.Join(root, pathToFile(importPath))
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	segments := strings.Split(importPath, ".")
	if len(segments) > 0 {
		last := segments[len(segments)-1]
		candidate := filepath.Join(importerDir, last+".lx")
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	if l.projectRoot != "" {
		candidate := filepath.Join(l.projectRoot, pathToFile(importPath))
		if fileExists(candidate) {
			return candidate, nil
		}
	}

	return "", diag.New(diag.LDR001, "cannot resolve import %q from %q", importPath, importerDir)
}

func pathToFile(modPath string) string {
	return filepath.Join(strings.Split(modPath, ".")...) + ".lx"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// findProjectRoot walks upward from start looking for an "lx.yaml"
// marker file, matching the style of the loader's root-relative
// import fallback (spec §4.1).
func findProjectRoot(start string) string {
	dir := filepath.Dir(start)
	for {
		if fileExists(filepath.Join(dir, "lx.yaml")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// index walks the loaded modules (already in DFS-post-order, i.e.
// dependencies-first) and populates the symbol table, rejecting
// duplicate qualified names within a kind (spec §4.1).
func (l *Loader) index() *diag.Diagnostic {
	for _, mod := range l.order {
		l.bySym.Modules[mod.Name] = mod
		for _, d := range mod.Decls {
			qname := mod.Name + "." + d.Name()
			if dup := l.indexDecl(mod, qname, d); dup != nil {
				return dup
			}
		}
	}
	return nil
}

func (l *Loader) indexDecl(mod *ast.Module, qname string, d ast.Decl) *diag.Diagnostic {
	dupErr := func(kind string) *diag.Diagnostic {
		return diag.At(diag.LDR003, d.Position(), "duplicate %s declaration %q", kind, qname)
	}
	switch v := d.(type) {
	case *ast.FnDecl:
		if _, ok := l.bySym.Functions[qname]; ok {
			return dupErr("function")
		}
		l.bySym.Functions[qname] = v
	case *ast.AliasTypeDecl, *ast.RecordTypeDecl, *ast.SumTypeDecl:
		if _, ok := l.bySym.Types[qname]; ok {
			return dupErr("type")
		}
		l.bySym.Types[qname] = d
	case *ast.EffectDecl:
		if _, ok := l.bySym.Effects[qname]; ok {
			return dupErr("effect")
		}
		l.bySym.Effects[qname] = v
	case *ast.SchemaDecl:
		if _, ok := l.bySym.Schemas[qname]; ok {
			return dupErr("schema")
		}
		l.bySym.Schemas[qname] = v
		versioned := fmt.Sprintf("%s@%d", qname, v.Version)
		l.bySym.Schemas[versioned] = v
	case *ast.ActorDecl:
		if _, ok := l.bySym.Actors[qname]; ok {
			return dupErr("actor")
		}
		l.bySym.Actors[qname] = v
	case *ast.FnContractDecl:
		l.bySym.Contracts[qname] = v // contracts key off the function they target, collisions are a checker concern
	case *ast.TestDecl:
		l.bySym.Tests[qname] = v
	case *ast.PropertyDecl:
		l.bySym.Properties[qname] = v
	}
	return nil
}

// synthesizeSchemaRecords builds a RecordTypeDecl for every versioned
// schema lacking a manually declared record of the same qualified
// name, wrapping `optional` fields as Option<T> (spec §4.1).
func (l *Loader) synthesizeSchemaRecords() {
	for qname, schema := range l.bySym.Schemas {
		if strings.Contains(qname, "@") {
			continue // only synthesize once per schema, from the bare name
		}
		if _, exists := l.bySym.Types[qname]; exists {
			continue
		}
		fields := make([]ast.Field, len(schema.Fields))
		for i, f := range schema.Fields {
			ft := f.Type
			if f.Optional {
				ft = &ast.OptionalTypeExpr{Elem: f.Type, Pos_: f.Pos}
			}
			fields[i] = ast.Field{Name: f.Name, Type: ft, Pos: f.Pos}
		}
		rec := &ast.RecordTypeDecl{
			Ident:  schema.Ident,
			Fields: fields,
			Doc:    schema.Doc,
			Pos_:   schema.Pos_,
		}
		l.bySym.SyntheticRecords[qname] = rec
		versionedName := fmt.Sprintf("%s@%d", qname, schema.Version)
		l.bySym.SyntheticRecords[versionedName] = rec
	}
}
