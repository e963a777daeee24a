package loader

import (
	"github.com/lx-lang/lx/internal/ast"
)

// SymbolTable indexes every module's declarations by fully qualified
// `module.name`, as built by the Loader (spec §4.1).
type SymbolTable struct {
	Types     map[string]ast.Decl // alias/record/sum, keyed by qualified name
	Functions map[string]*ast.FnDecl
	Effects   map[string]*ast.EffectDecl
	Schemas   map[string]*ast.SchemaDecl // indexed both as "Name" and "Name@version"
	Actors    map[string]*ast.ActorDecl
	Contracts map[string]*ast.FnContractDecl
	Tests     map[string]*ast.TestDecl
	Properties map[string]*ast.PropertyDecl

	// SyntheticRecords holds the record types synthesized from
	// schemas that have no manually declared record of the same
	// qualified name (spec §4.1).
	SyntheticRecords map[string]*ast.RecordTypeDecl

	// Modules maps a module's dotted name to its parsed form, for
	// the resolver's import-alias lookups (spec §4.2).
	Modules map[string]*ast.Module
}

// HasQualified implements resolve.ModuleIndex: it reports whether
// qualifiedName names a known function, type, effect, schema, actor or
// synthesized record. Contracts, tests and properties are not
// consulted.
func (st *SymbolTable) HasQualified(qualifiedName string) bool {
	if _, ok := st.Functions[qualifiedName]; ok {
		return true
	}
	if _, ok := st.Types[qualifiedName]; ok {
		return true
	}
	if _, ok := st.Effects[qualifiedName]; ok {
		return true
	}
	if _, ok := st.Schemas[qualifiedName]; ok {
		return true
	}
	if _, ok := st.Actors[qualifiedName]; ok {
		return true
	}
	if _, ok := st.SyntheticRecords[qualifiedName]; ok {
		return true
	}
	return false
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Types:            make(map[string]ast.Decl),
		Functions:        make(map[string]*ast.FnDecl),
		Effects:          make(map[string]*ast.EffectDecl),
		Schemas:          make(map[string]*ast.SchemaDecl),
		Actors:           make(map[string]*ast.ActorDecl),
		Contracts:        make(map[string]*ast.FnContractDecl),
		Tests:            make(map[string]*ast.TestDecl),
		Properties:       make(map[string]*ast.PropertyDecl),
		SyntheticRecords: make(map[string]*ast.RecordTypeDecl),
		Modules:          make(map[string]*ast.Module),
	}
}
