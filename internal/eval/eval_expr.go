package eval

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/value"
)

// EvalExpr evaluates one expression (spec §4.6 "Evaluation rules").
func (rt *Runtime) EvalExpr(env *Env, e ast.Expr) (value.Value, error) {
	switch expr := e.(type) {
	case *ast.IntLit:
		return value.Int(expr.Value), nil
	case *ast.BoolLit:
		return value.Bool(expr.Value), nil
	case *ast.StringLit:
		return value.String(expr.Value), nil

	case *ast.VarRef:
		return rt.evalVarRef(env, expr)

	case *ast.ListLit:
		elems := make([]value.Value, len(expr.Elems))
		for i, el := range expr.Elems {
			v, err := rt.EvalExpr(env, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &value.List{Elems: elems}, nil

	case *ast.BinaryExpr:
		return rt.evalBinary(env, expr)

	case *ast.CallExpr:
		return rt.evalCall(env, expr)

	case *ast.RecordLit:
		fields := make(map[string]value.Value, len(expr.Fields))
		for _, f := range expr.Fields {
			v, err := rt.EvalExpr(env, f.Value)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = v
		}
		return &value.Ctor{Name: expr.Ctor, Fields: fields}, nil

	case *ast.FieldAccessExpr:
		target, err := rt.EvalExpr(env, expr.Target)
		if err != nil {
			return nil, err
		}
		ctor, ok := target.(*value.Ctor)
		if !ok {
			return nil, diag.At(diag.EVA001, expr.Pos_, "field access on a non-record/variant value")
		}
		v, ok := ctor.Fields[expr.Field]
		if !ok {
			return nil, diag.At(diag.EVA001, expr.Pos_, "%q has no field %q", ctor.Name, expr.Field)
		}
		return v, nil

	case *ast.IndexExpr:
		target, err := rt.EvalExpr(env, expr.Target)
		if err != nil {
			return nil, err
		}
		idxV, err := rt.EvalExpr(env, expr.Index)
		if err != nil {
			return nil, err
		}
		list, ok := target.(*value.List)
		if !ok {
			return nil, diag.At(diag.EVA001, expr.Pos_, "index target is not a List")
		}
		idx, ok := idxV.(value.Int)
		if !ok {
			return nil, diag.At(diag.EVA001, expr.Pos_, "index is not an Int")
		}
		if int(idx) < 0 || int(idx) >= len(list.Elems) {
			return nil, diag.At(diag.EVA003, expr.Pos_, "index %d out of bounds for list of length %d", idx, len(list.Elems))
		}
		return list.Elems[idx], nil

	case *ast.IfExpr:
		return rt.evalIf(env, expr)

	case *ast.MatchExpr:
		return rt.evalMatchExpr(env, expr)

	case *ast.HoleExpr:
		return nil, diag.At(diag.EVA005, expr.Pos_, "unfilled hole evaluated")

	default:
		return nil, diag.At(diag.EVA007, e.Position(), "unrecognized expression at runtime")
	}
}

func resolvedName(vr *ast.VarRef) string {
	if vr.Resolved != "" {
		return vr.Resolved
	}
	return vr.Name
}

// evalVarRef resolves a bare/qualified identifier: a local binding
// first, then a known function/builtin name, which yields a callable
// value.FuncRef (spec §3 Invariants: "every identifier reaching the
// interpreter has been resolved to a fully qualified name by C3, or
// is a reserved builtin callee").
func (rt *Runtime) evalVarRef(env *Env, expr *ast.VarRef) (value.Value, error) {
	name := resolvedName(expr)
	if v, ok := env.Get(name); ok {
		return v, nil
	}
	if v, ok := env.Get(expr.Name); ok {
		return v, nil
	}
	if _, ok := rt.Functions[name]; ok {
		return value.FuncRef{QName: name}, nil
	}
	if rt.Builtins.Has(name) {
		return value.FuncRef{QName: name}, nil
	}
	return nil, diag.At(diag.EVA001, expr.Pos_, "unbound variable %q at runtime", expr.Name)
}

// evalBinary implements spec §4.6: left-to-right evaluation; no
// short-circuit for &&/||  (decided in DESIGN.md since spec.md leaves
// it an open question); integer division/modulo floor toward
// negative infinity, fatal on division by zero; equality is
// structural/deep via value.Equal.
func (rt *Runtime) evalBinary(env *Env, expr *ast.BinaryExpr) (value.Value, error) {
	lv, err := rt.EvalExpr(env, expr.Left)
	if err != nil {
		return nil, err
	}
	rv, err := rt.EvalExpr(env, expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op {
	case "==":
		return value.Bool(value.Equal(lv, rv)), nil
	case "!=":
		return value.Bool(!value.Equal(lv, rv)), nil
	}

	if expr.Op == "&&" || expr.Op == "||" {
		lb, lok := lv.(value.Bool)
		rb, rok := rv.(value.Bool)
		if !lok || !rok {
			return nil, diag.At(diag.EVA001, expr.Pos_, "logical operator requires Bool operands")
		}
		if expr.Op == "&&" {
			return value.Bool(bool(lb) && bool(rb)), nil
		}
		return value.Bool(bool(lb) || bool(rb)), nil
	}

	li, lok := lv.(value.Int)
	ri, rok := rv.(value.Int)
	if !lok || !rok {
		return nil, diag.At(diag.EVA001, expr.Pos_, "operator %q requires Int operands", expr.Op)
	}
	a, b := int64(li), int64(ri)
	switch expr.Op {
	case "+":
		return value.Int(a + b), nil
	case "-":
		return value.Int(a - b), nil
	case "*":
		return value.Int(a * b), nil
	case "/":
		if b == 0 {
			return nil, diag.At(diag.EVA006, expr.Pos_, "division by zero")
		}
		return value.Int(floorDiv(a, b)), nil
	case "%":
		if b == 0 {
			return nil, diag.At(diag.EVA006, expr.Pos_, "modulo by zero")
		}
		return value.Int(floorMod(a, b)), nil
	case "<":
		return value.Bool(a < b), nil
	case "<=":
		return value.Bool(a <= b), nil
	case ">":
		return value.Bool(a > b), nil
	case ">=":
		return value.Bool(a >= b), nil
	default:
		return nil, diag.At(diag.EVA007, expr.Pos_, "unknown operator %q", expr.Op)
	}
}

// floorDiv/floorMod implement floor (toward negative infinity)
// integer division, per spec §4.6 "integer division truncates toward
// negative infinity by floor semantics" — distinct from Go's native
// truncation-toward-zero `/`.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}

func (rt *Runtime) evalIf(env *Env, expr *ast.IfExpr) (value.Value, error) {
	cv, err := rt.EvalExpr(env, expr.Cond)
	if err != nil {
		return nil, err
	}
	cond, ok := cv.(value.Bool)
	if !ok {
		return nil, diag.At(diag.EVA001, expr.Pos_, "if condition is not Bool")
	}
	if bool(cond) {
		v, returned, err := rt.EvalBlock(env.Clone(), expr.Then)
		if err != nil {
			return nil, err
		}
		if returned {
			return nil, &returnSignal{value: v}
		}
		return v, nil
	}
	if expr.Else == nil {
		return value.Unit{}, nil
	}
	v, returned, err := rt.EvalBlock(env.Clone(), expr.Else)
	if err != nil {
		return nil, err
	}
	if returned {
		return nil, &returnSignal{value: v}
	}
	return v, nil
}

func (rt *Runtime) evalMatchExpr(env *Env, expr *ast.MatchExpr) (value.Value, error) {
	scrut, err := rt.EvalExpr(env, expr.Scrutinee)
	if err != nil {
		return nil, err
	}
	for _, mc := range expr.Cases {
		armEnv, ok := bindPattern(scrut, mc.Pattern, env)
		if !ok {
			continue
		}
		v, returned, err := rt.EvalBlock(armEnv, mc.Body)
		if err != nil {
			return nil, err
		}
		if returned {
			return nil, &returnSignal{value: v}
		}
		return v, nil
	}
	return nil, diag.At(diag.EVA002, expr.Pos_, "non-exhaustive match")
}

// bindPattern extends env with pat's bound variables against v,
// reporting false if v does not match (spec §4.6 "Match: the first
// matching arm wins").
func bindPattern(v value.Value, pat ast.Pattern, env *Env) (*Env, bool) {
	switch p := pat.(type) {
	case *ast.WildcardPattern:
		return env.Child(), true
	case *ast.BindPattern:
		e := env.Child()
		e.Set(p.Name, v)
		return e, true
	case *ast.CtorPattern:
		ctor, ok := v.(*value.Ctor)
		if !ok || ctor.Name != p.Ctor {
			return nil, false
		}
		e := env.Child()
		for _, sub := range p.Subs {
			fv, ok := ctor.Fields[sub.Field]
			if !ok {
				return nil, false
			}
			next, ok := bindPattern(fv, sub.Pattern, e)
			if !ok {
				return nil, false
			}
			e = next
		}
		return e, true
	default:
		return nil, false
	}
}
