package eval

import (
	"fmt"
	"strings"

	"github.com/lx-lang/lx/internal/align"
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/value"
)

// evalCall implements spec §4.5/§4.6's callee discriminator at runtime:
// actor send, actor spawn, actor direct-call, builtin by exact name,
// user function — in that priority order, mirroring the type
// checker's checkCall/checkActorSend.
func (rt *Runtime) evalCall(env *Env, expr *ast.CallExpr) (value.Value, error) {
	if fa, ok := expr.Callee.(*ast.FieldAccessExpr); ok && fa.Field == "send" {
		return rt.evalSend(env, fa, expr)
	}

	if vr, ok := expr.Callee.(*ast.VarRef); ok {
		name := resolvedName(vr)
		if name == "old" {
			return rt.evalOld(env, expr)
		}
		if paramNames, ok := rt.paramNamesFor(name); ok {
			args, err := rt.alignAndEval(env, paramNames, expr.Args, expr.Pos_)
			if err != nil {
				return nil, err
			}
			return rt.CallByName(name, args)
		}
	}

	// Fallback: the callee is an arbitrary expression (e.g. a local
	// bound to a higher-order parameter) that must evaluate to a
	// value.FuncRef.
	fnV, err := rt.EvalExpr(env, expr.Callee)
	if err != nil {
		return nil, err
	}
	ref, ok := fnV.(value.FuncRef)
	if !ok {
		return nil, diag.At(diag.EVA007, expr.Pos_, "callee is not callable at runtime")
	}
	paramNames, _ := rt.paramNamesFor(ref.QName)
	args, err := rt.alignAndEval(env, paramNames, expr.Args, expr.Pos_)
	if err != nil {
		return nil, err
	}
	return rt.CallByName(ref.QName, args)
}

// evalSend implements `<ref>.send(msg)` (spec §4.7 "Send"): it yields
// Unit when the registry accepts the message; any error from Send (an
// unknown or stopped actor, or, in Immediate mode, a handler failure
// that no supervisor absorbed) is returned as an ACT001 diagnostic.
func (rt *Runtime) evalSend(env *Env, fa *ast.FieldAccessExpr, expr *ast.CallExpr) (value.Value, error) {
	targetV, err := rt.EvalExpr(env, fa.Target)
	if err != nil {
		return nil, err
	}
	ref, ok := targetV.(value.ActorRef)
	if !ok {
		return nil, diag.At(diag.EVA007, fa.Pos_, "send target is not an actor reference")
	}
	if len(expr.Args) != 1 {
		return nil, diag.At(diag.EVA007, expr.Pos_, "send expects exactly one message argument")
	}
	msgV, err := rt.EvalExpr(env, expr.Args[0].Value)
	if err != nil {
		return nil, err
	}
	msg, ok := msgV.(*value.Ctor)
	if !ok {
		return nil, diag.At(diag.EVA007, expr.Pos_, "send message is not a constructor value")
	}
	if err := rt.actors.Send(ref.ID, msg); err != nil {
		return nil, diag.At(diag.ACT001, expr.Pos_, "%s", err.Error())
	}
	return value.Unit{}, nil
}

// evalOld evaluates `old(expr)` (contract ensures clauses) against the
// snapshot taken at function-call entry, found on env's own old chain
// (spec §9 Open Question: "old(expr) reads pre-call state").
func (rt *Runtime) evalOld(env *Env, expr *ast.CallExpr) (value.Value, error) {
	if len(expr.Args) != 1 {
		return nil, diag.At(diag.EVA007, expr.Pos_, "old() expects exactly one argument")
	}
	target := env.OldEnv()
	if target == nil {
		target = env
	}
	return rt.EvalExpr(target, expr.Args[0].Value)
}

// paramNamesFor returns the parameter-name list used for C6-style
// argument alignment at a call site to name, across every tier: user
// function, builtin, actor spawn, actor direct-call.
func (rt *Runtime) paramNamesFor(name string) ([]string, bool) {
	if fn, ok := rt.Functions[name]; ok {
		names := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			names[i] = p.Name
		}
		return names, true
	}
	if sig, ok := rt.Builtins.Lookup(name); ok {
		return sig.ParamNames, true
	}
	if qname, ok := strings.CutPrefix(name, "Actor.spawn."); ok {
		decl, ok := rt.ActorDecls[qname]
		if !ok {
			return nil, false
		}
		names := make([]string, len(decl.InitParams))
		for i, p := range decl.InitParams {
			names[i] = p.Name
		}
		return names, true
	}
	if msgCtor, ok := strings.CutPrefix(name, "Actor."); ok {
		handler, ok := rt.handlerByMsgCtor(msgCtor)
		if !ok {
			return nil, false
		}
		names := make([]string, 0, len(handler.Params)+1)
		names = append(names, "actor")
		for _, p := range handler.Params {
			names = append(names, p.Name)
		}
		return names, true
	}
	return nil, false
}

// handlerByMsgCtor finds any actor declaring a handler for msgCtor,
// used only to recover parameter names for alignment — the concrete
// actor instance is resolved again, from the first argument's id, at
// call time in callActorDirect.
func (rt *Runtime) handlerByMsgCtor(msgCtor string) (*ast.Handler, bool) {
	for _, decl := range rt.ActorDecls {
		for i := range decl.Handlers {
			if decl.Handlers[i].MsgCtor == msgCtor {
				return &decl.Handlers[i], true
			}
		}
	}
	return nil, false
}

// alignAndEval aligns expr.Args against paramNames (spec §4.3) and
// evaluates each into positional order.
func (rt *Runtime) alignAndEval(env *Env, paramNames []string, args []ast.Arg, pos ast.Pos) ([]value.Value, error) {
	alignArgs := make([]align.Arg, len(args))
	for i, a := range args {
		alignArgs[i] = align.Arg{Name: a.Name}
	}
	res := align.Align(paramNames, alignArgs)
	if len(res.Issues) > 0 {
		return nil, diag.At(diag.EVA007, pos, "call argument misuse")
	}
	out := make([]value.Value, len(paramNames))
	for slot, argIdx := range res.SlotToArg {
		if argIdx < 0 {
			out[slot] = value.Unit{}
			continue
		}
		v, err := rt.EvalExpr(env, args[argIdx].Value)
		if err != nil {
			return nil, err
		}
		out[slot] = v
	}
	return out, nil
}

// CallByName dispatches an already-aligned, already-evaluated call by
// fully qualified callee name — the seam builtins.Host.Call uses for
// higher-order callbacks (list.map, parallel_map, …) and the one
// evalCall itself funnels into after alignment.
func (rt *Runtime) CallByName(name string, args []value.Value) (value.Value, error) {
	if qname, ok := strings.CutPrefix(name, "Actor.spawn."); ok {
		return rt.spawnActor(qname, args)
	}
	if strings.HasPrefix(name, "Actor.") {
		return rt.callActorDirect(name, args)
	}
	if impl, ok := rt.Builtins.Impl(name); ok {
		return impl(args, rt)
	}
	if fn, ok := rt.Functions[name]; ok {
		return rt.callUserFn(name, fn, args)
	}
	return nil, fmt.Errorf("unknown callee %q at runtime", name)
}

// spawnActor implements Spawn (spec §4.7): init params are bound by
// position, and each state field is bound from a same-named init
// param if one exists, else a type-directed zero value — Lx's
// statement grammar has no assignment/mutation construct, so state
// fields are read-only context captured once at spawn, not mutable
// state across messages (decided in DESIGN.md).
func (rt *Runtime) spawnActor(qname string, args []value.Value) (value.Value, error) {
	decl, ok := rt.ActorDecls[qname]
	if !ok {
		return nil, fmt.Errorf("unknown actor %q", qname)
	}
	spawnEnv := NewEnv()
	initByName := make(map[string]value.Value, len(decl.InitParams))
	for i, p := range decl.InitParams {
		if i < len(args) {
			spawnEnv.Set(p.Name, args[i])
			initByName[p.Name] = args[i]
		}
	}
	for _, f := range decl.StateFields {
		if v, ok := initByName[f.Name]; ok {
			spawnEnv.Set(f.Name, v)
			continue
		}
		spawnEnv.Set(f.Name, defaultValue(f.Type))
	}
	id := rt.actors.Spawn()
	rt.actorQName[id] = qname
	rt.actorEnv[id] = spawnEnv
	return value.ActorRef{ID: id}, nil
}

// callActorDirect implements the `Actor.<Msg>(actorRef, …)` direct
// call form (spec §4.7 "Handler dispatch"): args[0] is the target
// actor reference, the rest are the message's fields in the handler's
// declared parameter order.
func (rt *Runtime) callActorDirect(name string, args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return nil, diag.At(diag.EVA007, ast.Pos{}, "actor call missing actor reference argument")
	}
	ref, ok := args[0].(value.ActorRef)
	if !ok {
		return nil, fmt.Errorf("first argument to %q is not an actor reference", name)
	}
	msgCtor := strings.TrimPrefix(name, "Actor.")
	decl, ok := rt.actorDeclFor(ref.ID)
	if !ok {
		return nil, fmt.Errorf("unknown actor %d", ref.ID)
	}
	var handler *ast.Handler
	for i := range decl.Handlers {
		if decl.Handlers[i].MsgCtor == msgCtor {
			handler = &decl.Handlers[i]
			break
		}
	}
	if handler == nil {
		return nil, fmt.Errorf("actor %q has no handler for message %q", decl.Ident, msgCtor)
	}
	fields := make(map[string]value.Value, len(handler.Params))
	for i, p := range handler.Params {
		if i+1 < len(args) {
			fields[p.Name] = args[i+1]
		}
	}
	msg := &value.Ctor{Name: msgCtor, Fields: fields}
	return rt.actors.Call(ref.ID, msg)
}

// callUserFn runs a user function call (spec §4.6): a fresh
// parameter-only environment, requires/ensures contract checking
// where declared, and call tracing when enabled.
func (rt *Runtime) callUserFn(name string, fn *ast.FnDecl, args []value.Value) (value.Value, error) {
	callEnv := NewEnv()
	for i, p := range fn.Params {
		if i < len(args) {
			callEnv.Set(p.Name, args[i])
		}
	}

	contract, hasContract := rt.Contracts[name]
	var preSnapshot *Env
	if hasContract {
		preSnapshot = callEnv.Clone()
		for _, req := range contract.Requires {
			ok, err := rt.evalContractBool(callEnv, req)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, diag.At(diag.EVA004, contract.Pos_, "requires clause failed for %q", name)
			}
		}
	}

	if rt.Trace {
		rt.depth++
		defer func() { rt.depth-- }()
	}

	result, returned, err := rt.EvalBlock(callEnv, fn.Body)
	if err != nil {
		return nil, err
	}
	if !returned {
		result = value.Unit{}
	}

	if hasContract {
		postEnv := callEnv.Clone()
		postEnv.Set("result", result)
		postEnv.old = preSnapshot
		for _, ens := range contract.Ensures {
			ok, err := rt.evalContractBool(postEnv, ens)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, diag.At(diag.EVA004, contract.Pos_, "ensures clause failed for %q", name)
			}
		}
	}

	if rt.Trace {
		rt.Sink.Trace(rt.depth, name, args, result)
	}
	return result, nil
}

func (rt *Runtime) evalContractBool(env *Env, e ast.Expr) (bool, error) {
	v, err := rt.EvalExpr(env, e)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return false, fmt.Errorf("contract clause did not evaluate to Bool")
	}
	return bool(b), nil
}

// defaultValue produces the type-directed zero value used when an
// actor state field has no matching init param (spec §4.7).
func defaultValue(te ast.TypeExpr) value.Value {
	named, ok := te.(*ast.NamedTypeExpr)
	if !ok {
		return value.Unit{}
	}
	switch named.Name {
	case "Int":
		return value.Int(0)
	case "Bool":
		return value.Bool(false)
	case "String":
		return value.String("")
	case "List":
		return &value.List{}
	case "Option":
		return &value.Ctor{Name: "None", Fields: map[string]value.Value{}}
	default:
		return value.Unit{}
	}
}
