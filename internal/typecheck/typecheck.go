// Package typecheck implements the two-pass type checker (spec §4.5):
// Pass 1 collects every module's function/effect/type/schema/actor
// signatures (including synthetic actor signatures); Pass 2 checks
// bodies against those signatures. Errors accumulate; nothing throws,
// mirroring the teacher's accumulate-and-continue checker family.
package typecheck

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/builtins"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/loader"
	"github.com/lx-lang/lx/internal/types"
)

// FnSig is a checked function's signature: parameter types in
// declaration order (aligned with Decl.Params), the return type, and
// the function's declared effect set.
type FnSig struct {
	Decl       *ast.FnDecl // nil for synthetic actor signatures
	Params     []types.Type
	ParamNames []string
	Return     types.Type
	Effects    effects.Set
	TypeParams []string // rigid type-parameter labels, for re-instantiation
	Pure       bool      // true iff Effects is empty (spec §4.5 pure-argument builtins)
}

// Checker holds the whole-program signature tables built in Pass 1 and
// accumulates diagnostics during Pass 2.
type Checker struct {
	Sym      *loader.SymbolTable
	Builtins *builtins.Registry

	Functions map[string]*FnSig        // qualified name -> signature
	Variants  map[string]variantInfo   // ctor name -> owning sum type + field shape
	Records   map[string]recordInfo    // qualified type name -> field shape
	SumTypes  map[string]*ast.SumTypeDecl
	Actors    map[string]*ast.ActorDecl

	bag *diag.Bag
}

type variantInfo struct {
	SumQName   string
	SumDecl    *ast.SumTypeDecl
	Fields     []ast.Field
	TypeParams []string
}

type recordInfo struct {
	QName      string
	Fields     []ast.Field
	TypeParams []string
}

// New builds a Checker and runs Pass 1 over every loaded module.
func New(modules []*ast.Module, sym *loader.SymbolTable, reg *builtins.Registry) (*Checker, *diag.Bag) {
	c := &Checker{
		Sym:       sym,
		Builtins:  reg,
		Functions: make(map[string]*FnSig),
		Variants:  make(map[string]variantInfo),
		Records:   make(map[string]recordInfo),
		SumTypes:  make(map[string]*ast.SumTypeDecl),
		Actors:    make(map[string]*ast.ActorDecl),
		bag:       &diag.Bag{},
	}
	c.pass1(modules)
	return c, c.bag
}

// Check runs Pass 2 (body checking) over every module and returns the
// accumulated diagnostics.
func (c *Checker) Check(modules []*ast.Module) *diag.Bag {
	for _, mod := range modules {
		for _, d := range mod.Decls {
			c.checkDecl(mod, d)
		}
	}
	return c.bag
}

func (c *Checker) errf(pos ast.Pos, code, format string, args ...any) {
	c.bag.Add(diag.At(code, pos, format, args...))
}

// qualify returns mod.name + "." + ident, the loader's qualification
// convention (spec §4.1/§4.2).
func qualify(mod *ast.Module, ident string) string {
	return mod.Name + "." + ident
}

func (c *Checker) checkDecl(mod *ast.Module, d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FnDecl:
		c.checkFnBody(mod, decl)
	case *ast.ActorDecl:
		c.checkActorBody(mod, decl)
	case *ast.TestDecl:
		c.checkTest(mod, decl)
	case *ast.PropertyDecl:
		c.checkProperty(mod, decl)
	case *ast.FnContractDecl:
		c.checkContract(mod, decl)
	case *ast.SchemaDecl:
		c.checkSchema(mod, decl)
	}
	c.checkDocSpec(mod, d)
}

// lookupFn resolves an already-resolver-qualified function name in
// the checker's own table (user functions and synthetic actor
// signatures). Builtins are not consulted here; callers look those up
// separately through c.Builtins.
func (c *Checker) lookupFn(name string) (*FnSig, bool) {
	sig, ok := c.Functions[name]
	return sig, ok
}
