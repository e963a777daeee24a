package typecheck

import (
	"strings"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
)

// checkFnBody builds the parameter environment from the already
// collected signature, then infers the body block, unifying any
// `return` with the declared return type (spec §4.5 "Function body
// checking").
func (c *Checker) checkFnBody(mod *ast.Module, fn *ast.FnDecl) {
	sig, ok := c.Functions[qualify(mod, fn.Ident)]
	if !ok || fn.Body == nil {
		return
	}
	bc := newBodyChecker(c, mod, sig.Effects, sig.Return)
	for i, name := range sig.ParamNames {
		bc.locals[name] = sig.Params[i]
	}
	bodyType := bc.checkBlock(fn.Body)
	// A trailing `return` was already unified with sig.Return by
	// checkStmt; only a body that does not end in one is checked here.
	endsInReturn := false
	if n := len(fn.Body.Stmts); n > 0 {
		_, endsInReturn = fn.Body.Stmts[n-1].(*ast.ReturnStmt)
	}
	if !endsInReturn {
		bc.unify(bodyType, sig.Return, "implicit return of "+fn.Ident, fn.Pos_)
	}
}

// checkActorBody validates handler shape against its message
// constructor and checks each handler body under a synthesized
// environment of init params + state fields + message fields (spec
// §4.5 "Actor handler validation").
func (c *Checker) checkActorBody(mod *ast.Module, decl *ast.ActorDecl) {
	for _, h := range decl.Handlers {
		sig, ok := c.Functions["Actor."+h.MsgCtor]
		if !ok {
			continue
		}
		if !effects.NewSet(h.Effects...).Has("Concurrent") {
			c.errf(h.Pos, diag.TC006, "actor handler %q must declare Concurrent", h.MsgCtor)
		}

		// Handler params are accepted either bound whole (form a) or
		// field-by-field (form b, the common case) — both already
		// type through sig.Params below, since collectActor built that
		// signature directly from h.Params.
		bc := newBodyChecker(c, mod, effects.NewSet(h.Effects...), sig.Return)
		for _, p := range decl.InitParams {
			if p.Type == nil {
				bc.locals[p.Name] = bc.fresh.Flexible()
				continue
			}
			t, d := types.ConvertTypeExpr(p.Type, types.Scope{}, bc.fresh, bc.lookup)
			if d != nil {
				c.bag.Add(d)
				t = bc.fresh.Flexible()
			}
			bc.locals[p.Name] = t
		}
		for _, f := range decl.StateFields {
			if f.Type == nil {
				bc.locals[f.Name] = bc.fresh.Flexible()
				continue
			}
			t, d := types.ConvertTypeExpr(f.Type, types.Scope{}, bc.fresh, bc.lookup)
			if d != nil {
				c.bag.Add(d)
				t = bc.fresh.Flexible()
			}
			bc.locals[f.Name] = t
		}
		for i, p := range h.Params {
			paramIdx := i + 1 // sig.Params[0] is the synthesized "actor" ref
			if paramIdx < len(sig.Params) {
				bc.locals[p.Name] = sig.Params[paramIdx]
			}
		}
		if h.Body != nil {
			bodyType := bc.checkBlock(h.Body)
			endsInReturn := false
			if n := len(h.Body.Stmts); n > 0 {
				_, endsInReturn = h.Body.Stmts[n-1].(*ast.ReturnStmt)
			}
			if !endsInReturn {
				bc.unify(bodyType, sig.Return, "actor handler "+h.MsgCtor, h.Pos)
			}
		}
	}
}

func (c *Checker) checkTest(mod *ast.Module, decl *ast.TestDecl) {
	bc := newBodyChecker(c, mod, effects.Baseline, types.TUnit())
	if decl.Body != nil {
		rt := bc.checkBlock(decl.Body)
		bc.unify(rt, types.TUnit(), "test body "+decl.Ident, decl.Pos_)
	}
}

// checkProperty types each parameter's optional predicate as Bool,
// binds parameters sequentially (later predicates may reference
// earlier bindings), and checks the body against an expected return
// type of Unit (spec §4.5 "Property validation").
func (c *Checker) checkProperty(mod *ast.Module, decl *ast.PropertyDecl) {
	bc := newBodyChecker(c, mod, effects.Baseline, types.TUnit())
	for _, p := range decl.Params {
		var pt types.Type
		if p.Type == nil {
			pt = bc.fresh.Flexible()
		} else {
			t, d := types.ConvertTypeExpr(p.Type, types.Scope{}, bc.fresh, bc.lookup)
			if d != nil {
				c.bag.Add(d)
				t = bc.fresh.Flexible()
			}
			pt = t
		}
		bc.locals[p.Name] = pt
		if p.Predicate != nil {
			predType := bc.checkExpr(p.Predicate)
			bc.unify(predType, types.TBool(), "property parameter predicate "+p.Name, p.Pos)
		}
	}
	if decl.Body != nil {
		rt := bc.checkBlock(decl.Body)
		bc.unify(rt, types.TUnit(), "property body "+decl.Ident, decl.Pos_)
	}
}

// checkContract validates parameter names/arity against the
// referenced function and checks that requires/ensures expressions
// reference only pure functions/scalar builtins, with `result`/`old`
// bound only where valid (spec §4.5 "Contract validation"). Grounded
// on CWBudde-go-dws's contract_pass.go, since the teacher carries no
// contract system of its own.
func (c *Checker) checkContract(mod *ast.Module, decl *ast.FnContractDecl) {
	qname := decl.FnName
	if !strings.Contains(qname, ".") {
		qname = qualify(mod, decl.FnName)
	}
	sig, ok := c.Functions[qname]
	if !ok {
		c.errf(decl.Pos_, diag.TC010, "contract references unknown function %q", decl.FnName)
		return
	}
	if len(decl.Params) != len(sig.ParamNames) {
		c.errf(decl.Pos_, diag.TC010, "contract parameter count (%d) does not match %q's arity (%d)", len(decl.Params), decl.FnName, len(sig.ParamNames))
	}
	for i, name := range decl.Params {
		if i < len(sig.ParamNames) && name != sig.ParamNames[i] {
			c.errf(decl.Pos_, diag.TC010, "contract parameter %d is %q, expected %q", i, name, sig.ParamNames[i])
		}
	}

	preBC := newBodyChecker(c, mod, effects.Set{}, types.TBool())
	for i, name := range decl.Params {
		if i < len(sig.Params) {
			preBC.locals[name] = sig.Params[i]
		}
	}
	for _, req := range decl.Requires {
		c.checkContractExpr(preBC, req, false)
	}

	postBC := newBodyChecker(c, mod, effects.Set{}, types.TBool())
	for i, name := range decl.Params {
		if i < len(sig.Params) {
			postBC.locals[name] = sig.Params[i]
		}
	}
	postBC.locals["result"] = sig.Return
	for _, ens := range decl.Ensures {
		// old(e) has the type of e; each clause gets its own variable.
		oldT := postBC.fresh.Flexible()
		postBC.locals["old"] = &types.Function{Params: []types.Type{oldT}, Return: oldT}
		c.checkContractExpr(postBC, ens, true)
	}
}

// checkContractExpr walks a contract expression rejecting HoleExpr and
// calls to any callee whose declared effect set is non-empty
// (spec §4.5).
func (c *Checker) checkContractExpr(bc *bodyChecker, e ast.Expr, allowOld bool) {
	t := bc.checkExpr(e)
	bc.unify(t, types.TBool(), "contract clause", e.Position())
	c.walkContractPurity(e, allowOld)
}

func (c *Checker) walkContractPurity(e ast.Expr, allowOld bool) {
	switch expr := e.(type) {
	case *ast.HoleExpr:
		c.errf(expr.Pos_, diag.TC010, "contract expressions may not contain holes")
	case *ast.CallExpr:
		if vr, ok := expr.Callee.(*ast.VarRef); ok {
			name := vr.Resolved
			if name == "" {
				name = vr.Name
			}
			if name == "old" {
				if !allowOld {
					c.errf(expr.Pos_, diag.TC010, "old() may only appear in an ensures clause")
				}
			} else if sig, ok := c.Functions[name]; ok && !sig.Pure {
				c.errf(expr.Pos_, diag.TC010, "contract clause calls effectful function %q", name)
			} else if sig, ok := c.Builtins.Lookup(name); ok && !sig.Effects.Empty() {
				c.errf(expr.Pos_, diag.TC010, "contract clause calls effectful builtin %q", name)
			}
		}
		for _, a := range expr.Args {
			c.walkContractPurity(a.Value, allowOld)
		}
	case *ast.BinaryExpr:
		c.walkContractPurity(expr.Left, allowOld)
		c.walkContractPurity(expr.Right, allowOld)
	case *ast.FieldAccessExpr:
		c.walkContractPurity(expr.Target, allowOld)
	case *ast.IndexExpr:
		c.walkContractPurity(expr.Target, allowOld)
		c.walkContractPurity(expr.Index, allowOld)
	}
}

// checkSchema validates the version is positive and every field type
// converts cleanly (spec §4.5 "Schema validation").
func (c *Checker) checkSchema(mod *ast.Module, decl *ast.SchemaDecl) {
	if decl.Version <= 0 {
		c.errf(decl.Pos_, diag.TC011, "schema %q version must be positive, got %d", decl.Ident, decl.Version)
	}
	fresh := types.NewFreshGen()
	lookup := &typeLookup{c: c, mod: mod}
	for _, f := range decl.Fields {
		if f.Type == nil {
			continue
		}
		if _, d := types.ConvertTypeExpr(f.Type, types.Scope{}, fresh, lookup); d != nil {
			c.bag.Add(d)
		}
	}
}
