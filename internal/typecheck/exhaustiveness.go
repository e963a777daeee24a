package typecheck

import (
	"sort"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/types"
)

// checkExhaustiveness implements spec §4.5 "Match exhaustiveness": if
// no wildcard/bind pattern is present, every pattern must be a
// constructor pattern of one common sum type, and the covered
// constructor names must equal that sum type's full variant set.
func (bc *bodyChecker) checkExhaustiveness(scrutineeType types.Type, cases []ast.MatchCase, pos ast.Pos) {
	for _, mc := range cases {
		switch mc.Pattern.(type) {
		case *ast.WildcardPattern, *ast.BindPattern:
			return // catch-all present; exhaustive by construction
		}
	}

	covered := make(map[string]bool)
	var sumDecl *ast.SumTypeDecl
	for _, mc := range cases {
		cp, ok := mc.Pattern.(*ast.CtorPattern)
		if !ok {
			continue
		}
		covered[cp.Ctor] = true
		if vi, ok := bc.c.Variants[cp.Ctor]; ok && vi.SumDecl != nil {
			if sumDecl == nil {
				sumDecl = vi.SumDecl
			} else if sumDecl != vi.SumDecl {
				bc.c.errf(pos, diag.TC007, "match arms cover constructors from more than one sum type")
				return
			}
		}
	}

	if sumDecl == nil {
		// Scrutinee's declared sum type is unknown to us (e.g. an
		// actor Msg sum built only as a loose map); fall back to the
		// constructor-name set recorded against the scrutinee type.
		if con, ok := scrutineeType.(*types.Constructor); ok {
			if decl, ok := bc.c.SumTypes[con.Name]; ok {
				sumDecl = decl
			}
		}
	}
	if sumDecl == nil {
		return // nothing to check exhaustiveness against
	}

	var missing []string
	for _, v := range sumDecl.Variants {
		if !covered[v.Name] {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		bc.c.errf(pos, diag.TC007, "non-exhaustive match on %q: missing variant(s) %v", sumDecl.Ident, missing)
	}
}
