package typecheck

import (
	"github.com/lx-lang/lx/internal/align"
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/builtins"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
)

func (bc *bodyChecker) checkExpr(e ast.Expr) types.Type {
	switch expr := e.(type) {
	case *ast.IntLit:
		return types.TInt()
	case *ast.BoolLit:
		return types.TBool()
	case *ast.StringLit:
		return types.TString()

	case *ast.VarRef:
		return bc.checkVarRef(expr)

	case *ast.ListLit:
		elemT := bc.fresh.Flexible()
		var t types.Type = elemT
		for _, el := range expr.Elems {
			et := bc.checkExpr(el)
			bc.unify(t, et, "list element", el.Position())
		}
		return types.TList(t)

	case *ast.BinaryExpr:
		return bc.checkBinary(expr)

	case *ast.CallExpr:
		return bc.checkCall(expr)

	case *ast.RecordLit:
		return bc.checkRecordLit(expr)

	case *ast.FieldAccessExpr:
		return bc.checkFieldAccess(expr)

	case *ast.IndexExpr:
		tt := bc.checkExpr(expr.Target)
		it := bc.checkExpr(expr.Index)
		bc.unify(it, types.TInt(), "index", expr.Pos_)
		elem := bc.fresh.Flexible()
		bc.unify(tt, types.TList(elem), "indexed value", expr.Pos_)
		return elem

	case *ast.IfExpr:
		ct := bc.checkExpr(expr.Cond)
		bc.unify(ct, types.TBool(), "if condition", expr.Pos_)
		thenBC := bc.child()
		tt := thenBC.checkBlock(expr.Then)
		if expr.Else == nil {
			return types.TUnit()
		}
		elseBC := bc.child()
		et := elseBC.checkBlock(expr.Else)
		bc.unify(tt, et, "if/else branches", expr.Pos_)
		return tt

	case *ast.MatchExpr:
		return bc.checkMatchArms(expr.Scrutinee, expr.Cases, expr.Pos_, true)

	case *ast.HoleExpr:
		bc.c.errf(expr.Pos_, diag.TC009, "unfilled hole")
		if expr.Type != nil {
			if t, d := types.ConvertTypeExpr(expr.Type, types.Scope{}, bc.fresh, bc.lookup); d == nil {
				return t
			}
		}
		return bc.fresh.Flexible()

	default:
		bc.c.errf(e.Position(), diag.TC001, "unrecognized expression")
		return bc.fresh.Flexible()
	}
}

func (bc *bodyChecker) checkVarRef(expr *ast.VarRef) types.Type {
	name := expr.Resolved
	if name == "" {
		name = expr.Name
	}
	if t, ok := bc.locals[name]; ok {
		return t
	}
	if t, ok := bc.locals[expr.Name]; ok {
		return t
	}
	if sig, ok := bc.c.lookupFn(name); ok {
		params, ret := instantiateFn(sig, bc.fresh)
		return &types.Function{Params: params, Return: ret}
	}
	if bsig, ok := bc.c.Builtins.Lookup(name); ok {
		fn := bsig.Instantiate(bc.fresh)
		return fn
	}
	bc.c.errf(expr.Pos_, diag.TC002, "unbound variable %q", expr.Name)
	return bc.fresh.Flexible()
}

func (bc *bodyChecker) checkBinary(expr *ast.BinaryExpr) types.Type {
	lt := bc.checkExpr(expr.Left)
	rt := bc.checkExpr(expr.Right)
	switch expr.Op {
	case "+", "-", "*", "/", "%":
		bc.unify(lt, types.TInt(), "arithmetic operand", expr.Pos_)
		bc.unify(rt, types.TInt(), "arithmetic operand", expr.Pos_)
		return types.TInt()
	case "<", "<=", ">", ">=":
		bc.unify(lt, types.TInt(), "comparison operand", expr.Pos_)
		bc.unify(rt, types.TInt(), "comparison operand", expr.Pos_)
		return types.TBool()
	case "&&", "||":
		bc.unify(lt, types.TBool(), "logical operand", expr.Pos_)
		bc.unify(rt, types.TBool(), "logical operand", expr.Pos_)
		return types.TBool()
	case "==", "!=":
		bc.unify(lt, rt, "equality operands", expr.Pos_)
		return types.TBool()
	default:
		bc.c.errf(expr.Pos_, diag.TC001, "unknown operator %q", expr.Op)
		return bc.fresh.Flexible()
	}
}

// checkCall implements spec §4.5's callee discriminator: actor send
// is resolved by callee shape, then a VarRef callee naming a builtin
// (checkBuiltinCall) or a function in the checker's table, user or
// synthetic actor signature (checkUserCall); otherwise the callee
// expression's own inferred function type is applied positionally.
func (bc *bodyChecker) checkCall(expr *ast.CallExpr) types.Type {
	if fa, ok := expr.Callee.(*ast.FieldAccessExpr); ok && fa.Field == "send" {
		return bc.checkActorSend(fa, expr)
	}

	if vr, ok := expr.Callee.(*ast.VarRef); ok {
		name := vr.Resolved
		if name == "" {
			name = vr.Name
		}
		if bsig, ok := bc.c.Builtins.Lookup(name); ok {
			return bc.checkBuiltinCall(bsig, expr)
		}
		if sig, ok := bc.c.lookupFn(name); ok {
			return bc.checkUserCall(sig, name, expr)
		}
	}

	// Fallback: infer the callee as a plain function value (e.g. a
	// higher-order parameter) and apply it positionally.
	ft := bc.checkExpr(expr.Callee)
	fn, ok := ft.(*types.Function)
	if !ok {
		bc.c.errf(expr.Pos_, diag.TC001, "callee is not a function")
		return bc.fresh.Flexible()
	}
	if len(expr.Args) != len(fn.Params) {
		bc.c.errf(expr.Pos_, diag.TC005, "expected %d argument(s), got %d", len(fn.Params), len(expr.Args))
	}
	for i, a := range expr.Args {
		if i >= len(fn.Params) {
			break
		}
		at := bc.checkExpr(a.Value)
		bc.unify(at, fn.Params[i], "call argument", a.Pos)
	}
	return fn.Return
}

// checkActorSend types `ref.send(msg)` (spec §4.6 discriminator tier
// 1, §4.7 "Send"): ref must be an ActorRef<M>, exactly one argument is
// supplied and must unify with M, the call requires Concurrent, and
// `send` always yields Unit.
func (bc *bodyChecker) checkActorSend(fa *ast.FieldAccessExpr, expr *ast.CallExpr) types.Type {
	targetT := bc.checkExpr(fa.Target)
	msgVar := bc.fresh.Flexible()
	bc.unify(targetT, types.TActorRef(msgVar), "actor send target", fa.Pos_)
	if len(expr.Args) != 1 {
		bc.c.errf(expr.Pos_, diag.TC005, "send expects exactly one message argument, got %d", len(expr.Args))
	}
	for _, a := range expr.Args {
		at := bc.checkExpr(a.Value)
		bc.unify(at, msgVar, "send message", a.Pos)
	}
	bc.requireEffects(effects.NewSet("Concurrent"), expr.Pos_, "actor send")
	return types.TUnit()
}

func (bc *bodyChecker) alignArgs(paramNames []string, args []ast.Arg, pos ast.Pos) align.Result {
	alignArgs := make([]align.Arg, len(args))
	for i, a := range args {
		alignArgs[i] = align.Arg{Name: a.Name}
	}
	res := align.Align(paramNames, alignArgs)
	for _, issue := range res.Issues {
		bc.c.errf(pos, issue.Kind.Code(), "call argument issue: %s", issueMessage(issue))
	}
	return res
}

func issueMessage(issue align.Issue) string {
	switch issue.Kind {
	case align.TooManyArguments:
		return "too many arguments"
	case align.UnknownParameter:
		return "unknown named parameter " + issue.Param
	case align.DuplicateParameter:
		return "duplicate named argument " + issue.Param
	case align.MissingParameter:
		return "missing required parameter " + issue.Param
	case align.PositionalAfterNamed:
		return "positional argument after named argument"
	default:
		return "call argument misuse"
	}
}

func (bc *bodyChecker) checkUserCall(sig *FnSig, name string, expr *ast.CallExpr) types.Type {
	res := bc.alignArgs(sig.ParamNames, expr.Args, expr.Pos_)
	params, ret := instantiateFn(sig, bc.fresh)
	for slot, argIdx := range res.SlotToArg {
		if argIdx < 0 || slot >= len(params) {
			continue
		}
		at := bc.checkExpr(expr.Args[argIdx].Value)
		bc.unify(at, params[slot], "argument to "+name, expr.Args[argIdx].Pos)
	}
	bc.requireEffects(sig.Effects, expr.Pos_, "call to "+name)
	return ret
}

// checkBuiltinCall instantiates a builtin's polymorphic signature
// fresh at this call site, aligns arguments via C6, and — for the
// enumerated pure-argument builtins (parallel_map/fold/for_each) —
// requires the function-reference argument to be a bare name of a
// declared pure function (spec §4.5).
func (bc *bodyChecker) checkBuiltinCall(sig builtins.Sig, expr *ast.CallExpr) types.Type {
	res := bc.alignArgs(sig.ParamNames, expr.Args, expr.Pos_)
	fn := sig.Instantiate(bc.fresh)
	for slot, argIdx := range res.SlotToArg {
		if argIdx < 0 || slot >= len(fn.Params) {
			continue
		}
		arg := expr.Args[argIdx]
		if sig.PureArgBuiltin && slot == len(fn.Params)-1 {
			bc.checkPureArgRef(arg.Value)
		}
		at := bc.checkExpr(arg.Value)
		bc.unify(at, fn.Params[slot], "argument to "+sig.Name, arg.Pos)
	}
	bc.requireEffects(sig.Effects, expr.Pos_, "call to "+sig.Name)
	return fn.Return
}

// checkPureArgRef enforces that a pure-argument builtin's function
// parameter is a bare reference to a declared function with an empty
// effect set (spec §4.5, §6 "Parallel").
func (bc *bodyChecker) checkPureArgRef(e ast.Expr) {
	vr, ok := e.(*ast.VarRef)
	if !ok {
		bc.c.errf(e.Position(), diag.TC012, "pure-argument builtin requires a bare function name")
		return
	}
	name := vr.Resolved
	if name == "" {
		name = vr.Name
	}
	sig, ok := bc.c.lookupFn(name)
	if !ok {
		bc.c.errf(e.Position(), diag.TC012, "pure-argument builtin requires a declared function, got %q", vr.Name)
		return
	}
	if !sig.Pure {
		bc.c.errf(e.Position(), diag.TC012, "function %q passed to a pure-argument builtin must have no declared effects", name)
	}
}
