// Package resolve implements identifier resolution (spec §4.2): bare
// or dotted identifiers map to a fully qualified `module.name` under
// import/alias rules. Grounded on the teacher's
// internal/module/resolver.go.
package resolve

import (
	"strings"

	"github.com/lx-lang/lx/internal/ast"
)

// ModuleIndex is the subset of the loader's symbol table the resolver
// needs: whether a fully qualified name is known. Imports are passed
// to Resolve separately.
type ModuleIndex interface {
	// HasQualified reports whether qualifiedName names a known
	// declaration.
	HasQualified(qualifiedName string) bool
}

// Resolve maps identifier, used within currentModule, to a fully
// qualified name. If no match is found, the identifier is returned
// unchanged so the caller can report "unknown" (spec §4.2).
//
// Resolve is idempotent: resolving an already-qualified name that
// matches a known declaration returns it unchanged.
func Resolve(identifier, currentModule string, imports []ast.Import, idx ModuleIndex) string {
	if strings.Contains(identifier, ".") {
		return resolveDotted(identifier, imports, idx)
	}
	return resolveBare(identifier, currentModule, imports, idx)
}

func resolveDotted(identifier string, imports []ast.Import, idx ModuleIndex) string {
	head, rest := splitHead(identifier)

	for _, imp := range imports {
		if imp.Alias != "" && imp.Alias == head {
			candidate := imp.Path + "." + rest
			if idx.HasQualified(candidate) {
				return candidate
			}
		}
	}

	for _, imp := range imports {
		if imp.Alias != "" {
			continue
		}
		if lastSegment(imp.Path) == head {
			candidate := imp.Path + "." + rest
			if idx.HasQualified(candidate) {
				return candidate
			}
		}
	}

	// Already qualified, or no import matches; return unchanged
	// (idempotent: a name the symbol table already knows about is
	// left alone).
	return identifier
}

func resolveBare(identifier, currentModule string, imports []ast.Import, idx ModuleIndex) string {
	ownCandidate := currentModule + "." + identifier
	if idx.HasQualified(ownCandidate) {
		return ownCandidate
	}
	for _, imp := range imports {
		candidate := imp.Path + "." + identifier
		if idx.HasQualified(candidate) {
			return candidate
		}
	}
	return identifier
}

func splitHead(dotted string) (head, rest string) {
	i := strings.IndexByte(dotted, '.')
	if i < 0 {
		return dotted, ""
	}
	return dotted[:i], dotted[i+1:]
}

func lastSegment(dotted string) string {
	i := strings.LastIndexByte(dotted, '.')
	if i < 0 {
		return dotted
	}
	return dotted[i+1:]
}
