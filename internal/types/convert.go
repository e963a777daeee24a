package types

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
)

// Scope maps a type-parameter name in scope to its internal variable,
// used while converting AST type expressions to internal types
// (spec §4.4: "a scope that maps type parameter names to fresh
// (rigid at definition, flexible at use) variables").
type Scope map[string]Type

// NamedTypeLookup resolves a user-defined type name (already fully
// qualified by the resolver) to its arity and, for aliases, its
// expansion target plus the target's own rigid type-parameter names
// (so a call site can substitute its concrete type arguments in).
// Implemented by the type checker's typeLookup (internal/typecheck),
// which consults the loader's symbol table and its own Pass 1 tables.
type NamedTypeLookup interface {
	LookupType(qualifiedName string) (arity int, isAlias bool, aliasTarget Type, aliasParams []string, ok bool)
}

// ConvertTypeExpr maps an ast.TypeExpr to an internal Type. scope
// supplies the binding for any bare identifier matching an in-scope
// type parameter; fresh is used to manufacture new variables when a
// type parameter is used for the first time at this site; lookup
// resolves user-defined names. Builtin scalars are interned; List<T>
// and Option<T> are arity-checked; aliases are expanded in place.
func ConvertTypeExpr(te ast.TypeExpr, scope Scope, fresh *FreshGen, lookup NamedTypeLookup) (Type, *diag.Diagnostic) {
	switch t := te.(type) {
	case *ast.OptionalTypeExpr:
		elem, d := ConvertTypeExpr(t.Elem, scope, fresh, lookup)
		if d != nil {
			return nil, d
		}
		return TOption(elem), nil

	case *ast.TypeVarExpr:
		if existing, ok := scope[t.Name]; ok {
			return existing, nil
		}
		v := fresh.Flexible()
		scope[t.Name] = v
		return v, nil

	case *ast.FunctionTypeExpr:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			pt, d := ConvertTypeExpr(p, scope, fresh, lookup)
			if d != nil {
				return nil, d
			}
			params[i] = pt
		}
		ret, d := ConvertTypeExpr(t.Return, scope, fresh, lookup)
		if d != nil {
			return nil, d
		}
		return &Function{Params: params, Return: ret}, nil

	case *ast.NamedTypeExpr:
		return convertNamed(t, scope, fresh, lookup)

	default:
		return nil, diag.At(diag.TC001, te.Position(), "unrecognized type expression")
	}
}

func convertNamed(t *ast.NamedTypeExpr, scope Scope, fresh *FreshGen, lookup NamedTypeLookup) (Type, *diag.Diagnostic) {
	switch t.Name {
	case Int, Bool, String, Unit:
		if len(t.Args) != 0 {
			return nil, diag.At(diag.TC005, t.Pos_, "%s takes no type arguments", t.Name)
		}
		return &Constructor{Name: t.Name}, nil

	case List, Option:
		if len(t.Args) != 1 {
			return nil, diag.At(diag.TC005, t.Pos_, "%s<T> requires exactly one type argument", t.Name)
		}
		arg, d := ConvertTypeExpr(t.Args[0], scope, fresh, lookup)
		if d != nil {
			return nil, d
		}
		return &Constructor{Name: t.Name, Args: []Type{arg}}, nil

	case ActorRef:
		if len(t.Args) != 1 {
			return nil, diag.At(diag.TC005, t.Pos_, "ActorRef<Msg> requires exactly one type argument")
		}
		arg, d := ConvertTypeExpr(t.Args[0], scope, fresh, lookup)
		if d != nil {
			return nil, d
		}
		return &Constructor{Name: ActorRef, Args: []Type{arg}}, nil
	}

	// If the bare name matches an in-scope type parameter treat it as
	// a variable reference rather than a user type (spec §4.4).
	if bound, ok := scope[t.Name]; ok && len(t.Args) == 0 {
		return bound, nil
	}

	if lookup == nil {
		return nil, diag.At(diag.TC003, t.Pos_, "unknown type %q", t.Name)
	}
	arity, isAlias, target, aliasParams, ok := lookup.LookupType(t.Name)
	if !ok {
		return nil, diag.At(diag.TC003, t.Pos_, "unknown type %q", t.Name)
	}
	if arity != len(t.Args) {
		return nil, diag.At(diag.TC005, t.Pos_, "type %q expects %d argument(s), got %d", t.Name, arity, len(t.Args))
	}
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		at, d := ConvertTypeExpr(a, scope, fresh, lookup)
		if d != nil {
			return nil, d
		}
		args[i] = at
	}
	if isAlias {
		// Aliases are expanded, not wrapped (spec §4.4), but the target
		// was converted against the alias's own rigid placeholders —
		// substitute this call site's args in for them before handing
		// it back, the same substitute-and-recurse rule
		// internal/property/generate.go applies for property generation.
		subst := make(map[string]Type, len(aliasParams))
		for i, p := range aliasParams {
			if i < len(args) {
				subst[p] = args[i]
			}
		}
		return substituteRigid(target, subst), nil
	}
	return &Constructor{Name: t.Name, Args: args}, nil
}

// substituteRigid replaces every rigid type variable in t whose label
// is a key of subst with the mapped type, recursing through
// Constructor args and Function params/return.
func substituteRigid(t Type, subst map[string]Type) Type {
	switch v := t.(type) {
	case *TypeVar:
		if v.Rigid {
			if repl, ok := subst[v.Label]; ok {
				return repl
			}
		}
		return v
	case *Constructor:
		if len(v.Args) == 0 {
			return v
		}
		newArgs := make([]Type, len(v.Args))
		for i, a := range v.Args {
			newArgs[i] = substituteRigid(a, subst)
		}
		return &Constructor{Name: v.Name, Args: newArgs}
	case *Function:
		newParams := make([]Type, len(v.Params))
		for i, p := range v.Params {
			newParams[i] = substituteRigid(p, subst)
		}
		return &Function{Params: newParams, Return: substituteRigid(v.Return, subst)}
	default:
		return t
	}
}
