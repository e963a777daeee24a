package typecheck

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
)

// bodyChecker is the per-function-body inference session: its own
// fresh-variable generator and substitution (spec §9: "substitutions
// without mutation of Types" — each function body gets a clean slate),
// a lexical variable-type environment, the enclosing function's
// declared effects and expected return type.
type bodyChecker struct {
	c       *Checker
	mod     *ast.Module
	fresh   *types.FreshGen
	subst   *types.Substitution
	lookup  types.NamedTypeLookup
	locals  map[string]types.Type
	declEff effects.Set
	retType types.Type
}

func newBodyChecker(c *Checker, mod *ast.Module, declEff effects.Set, retType types.Type) *bodyChecker {
	return &bodyChecker{
		c:       c,
		mod:     mod,
		fresh:   types.NewFreshGen(),
		subst:   types.NewSubstitution(),
		lookup:  &typeLookup{c: c, mod: mod},
		locals:  make(map[string]types.Type),
		declEff: declEff,
		retType: retType,
	}
}

func (bc *bodyChecker) child() *bodyChecker {
	clone := &bodyChecker{
		c:       bc.c,
		mod:     bc.mod,
		fresh:   bc.fresh,
		subst:   bc.subst,
		lookup:  bc.lookup,
		locals:  make(map[string]types.Type, len(bc.locals)),
		declEff: bc.declEff,
		retType: bc.retType,
	}
	for k, v := range bc.locals {
		clone.locals[k] = v
	}
	return clone
}

func (bc *bodyChecker) unify(a, b types.Type, ctx string, pos ast.Pos) {
	if d := types.Unify(bc.subst, a, b, ctx, pos); d != nil {
		bc.c.bag.Add(d)
	}
}

// requireEffects reports any of needed not covered by the enclosing
// function's declared effects (spec §4.5 "Effect discipline").
func (bc *bodyChecker) requireEffects(needed effects.Set, pos ast.Pos, what string) {
	missing := effects.Missing(needed, bc.declEff)
	if len(missing) > 0 {
		bc.c.errf(pos, diag.TC006, "%s requires effect(s) %v not declared on the enclosing function", what, missing)
	}
}

// instantiate produces a fresh copy of t, replacing every rigid
// variable with a newly generated flexible variable (one per distinct
// rigid variable, tracked in renaming) — used when a polymorphic user function
// is called, so repeated calls don't share type-parameter identity
// (spec §4.5 "instantiate its type parameters freshly").
func instantiate(t types.Type, fresh *types.FreshGen, renaming map[types.VarID]types.Type) types.Type {
	switch v := t.(type) {
	case *types.TypeVar:
		if v.Rigid {
			if existing, ok := renaming[v.ID]; ok {
				return existing
			}
			fv := fresh.Flexible()
			renaming[v.ID] = fv
			return fv
		}
		return v
	case *types.Constructor:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = instantiate(a, fresh, renaming)
		}
		return &types.Constructor{Name: v.Name, Args: args}
	case *types.Function:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = instantiate(p, fresh, renaming)
		}
		return &types.Function{Params: params, Return: instantiate(v.Return, fresh, renaming)}
	default:
		return t
	}
}

func instantiateFn(sig *FnSig, fresh *types.FreshGen) ([]types.Type, types.Type) {
	renaming := make(map[types.VarID]types.Type)
	params := make([]types.Type, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = instantiate(p, fresh, renaming)
	}
	return params, instantiate(sig.Return, fresh, renaming)
}
