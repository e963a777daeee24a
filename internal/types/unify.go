package types

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
)

// Substitution maps flexible variable ids to the type they have been
// bound to. Unification mutates this single table; Type values
// themselves are never mutated in place (spec §9 "Substitutions
// without mutation of Types").
type Substitution struct {
	bindings map[VarID]Type
}

func NewSubstitution() *Substitution {
	return &Substitution{bindings: make(map[VarID]Type)}
}

func (s *Substitution) bind(id VarID, t Type) {
	s.bindings[id] = t
}

// Prune follows the substitution chain for a variable to its
// representative type, performing the union-find-style path
// compression the teacher's prune does: any intermediate variables
// visited along the way are re-pointed directly at the final result.
func (s *Substitution) Prune(t Type) Type {
	tv, ok := t.(*TypeVar)
	if !ok {
		return t
	}
	bound, ok := s.bindings[tv.ID]
	if !ok {
		return t
	}
	result := s.Prune(bound)
	if result != bound {
		s.bindings[tv.ID] = result // path compression
	}
	return result
}

// Apply fully substitutes a type, producing a new Type value (the
// input is never mutated).
func (s *Substitution) Apply(t Type) Type {
	t = s.Prune(t)
	switch v := t.(type) {
	case *TypeVar:
		return v
	case *Constructor:
		if len(v.Args) == 0 {
			return v
		}
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = s.Apply(a)
		}
		return &Constructor{Name: v.Name, Args: args}
	case *Function:
		params := make([]Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = s.Apply(p)
		}
		return &Function{Params: params, Return: s.Apply(v.Return)}
	default:
		return t
	}
}

func occursCheck(s *Substitution, id VarID, t Type) bool {
	t = s.Prune(t)
	switch v := t.(type) {
	case *TypeVar:
		return v.ID == id
	case *Constructor:
		for _, a := range v.Args {
			if occursCheck(s, id, a) {
				return true
			}
		}
		return false
	case *Function:
		for _, p := range v.Params {
			if occursCheck(s, id, p) {
				return true
			}
		}
		return occursCheck(s, id, v.Return)
	default:
		return false
	}
}

// Unify structurally unifies a and b under ctx (a short description
// used in error messages, e.g. "return type of median") and an
// optional source position. Constructor matches require equal head
// name and arity; Function matches require equal arity; var-to-var is
// compared by id; var-to-other runs an occurs check; a rigid variable
// never binds to anything but itself (spec §4.4).
func Unify(s *Substitution, a, b Type, ctx string, pos ast.Pos) *diag.Diagnostic {
	a = s.Prune(a)
	b = s.Prune(b)

	av, aIsVar := a.(*TypeVar)
	bv, bIsVar := b.(*TypeVar)

	switch {
	case aIsVar && bIsVar:
		if av.ID == bv.ID {
			return nil
		}
		if av.Rigid && bv.Rigid {
			return diag.At(diag.TC001, pos, "cannot unify distinct rigid type variables %s and %s (%s)", av, bv, ctx)
		}
		if av.Rigid {
			return bindVar(s, bv, av, ctx, pos)
		}
		return bindVar(s, av, bv, ctx, pos)

	case aIsVar:
		return bindVar(s, av, b, ctx, pos)

	case bIsVar:
		return bindVar(s, bv, a, ctx, pos)
	}

	ac, aIsCon := a.(*Constructor)
	bc, bIsCon := b.(*Constructor)
	if aIsCon && bIsCon {
		if ac.Name != bc.Name || len(ac.Args) != len(bc.Args) {
			return diag.At(diag.TC001, pos, "type mismatch: %s vs %s (%s)", a, b, ctx)
		}
		for i := range ac.Args {
			if d := Unify(s, ac.Args[i], bc.Args[i], ctx, pos); d != nil {
				return d
			}
		}
		return nil
	}

	af, aIsFn := a.(*Function)
	bf, bIsFn := b.(*Function)
	if aIsFn && bIsFn {
		if len(af.Params) != len(bf.Params) {
			return diag.At(diag.TC005, pos, "function arity mismatch: %d vs %d (%s)", len(af.Params), len(bf.Params), ctx)
		}
		for i := range af.Params {
			if d := Unify(s, af.Params[i], bf.Params[i], ctx, pos); d != nil {
				return d
			}
		}
		return Unify(s, af.Return, bf.Return, ctx, pos)
	}

	return diag.At(diag.TC001, pos, "type mismatch: %s vs %s (%s)", a, b, ctx)
}

func bindVar(s *Substitution, v *TypeVar, t Type, ctx string, pos ast.Pos) *diag.Diagnostic {
	if v.Rigid {
		if other, ok := t.(*TypeVar); ok && other.ID == v.ID {
			return nil
		}
		return diag.At(diag.TC008, pos, "rigid type variable %s cannot be unified with %s (%s)", v, t, ctx)
	}
	if occursCheck(s, v.ID, t) {
		return diag.At(diag.TC004, pos, "occurs check failed: %s occurs in %s (%s)", v, t, ctx)
	}
	s.bind(v.ID, t)
	return nil
}
