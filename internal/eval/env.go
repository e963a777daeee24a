// Package eval is the tree-walking evaluator (spec §4.6): statement
// and expression evaluation, environment chains, call dispatch, call
// tracing, and the Runtime that wires together the builtin registry,
// the actor registry, and the async scheduler. Grounded on the
// teacher's internal/eval/eval_core.go dispatcher shape and
// internal/eval/env.go parent-pointer environment.
package eval

import (
	"fmt"

	"github.com/lx-lang/lx/internal/value"
)

// Env is an ordered lexical scope: a mapping name -> Value with a
// parent pointer (spec §3 "Environments during evaluation are ordered
// lexical scopes"). Function calls get a fresh Env with no parent
// (spec §4.6: "Function calls create a fresh environment containing
// only parameters" — Lx has no lexical closures over enclosing
// function scopes, only over the module's own top-level functions,
// which are resolved by qualified name rather than captured).
type Env struct {
	vars   map[string]value.Value
	parent *Env

	// old is a pre-call snapshot, set only on the post-env built for a
	// contract's ensures clause, giving old(expr) (spec §4.5) somewhere
	// to evaluate against.
	old *Env
}

// NewEnv creates a root environment with no parent.
func NewEnv() *Env {
	return &Env{vars: make(map[string]value.Value)}
}

// Child creates a new scope frame chained to e, for match arms and
// if/else branches (spec §4.6).
func (e *Env) Child() *Env {
	return &Env{vars: make(map[string]value.Value), parent: e}
}

// Clone makes a shallow copy of e's own bindings with the same parent
// — used for if-branches, which spec §4.6 says "evaluate in a clone
// of the caller's environment" rather than a nested child scope, so a
// branch cannot leak new bindings back into the caller but also
// doesn't need to walk a parent chain to see caller locals.
func (e *Env) Clone() *Env {
	vars := make(map[string]value.Value, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return &Env{vars: vars, parent: e.parent}
}

// Get looks up name, walking the parent chain.
func (e *Env) Get(name string) (value.Value, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name in e's own frame (shadowing any parent binding).
func (e *Env) Set(name string, v value.Value) {
	e.vars[name] = v
}

// OldEnv returns the pre-call snapshot set on this env (if any), for
// old() evaluation inside an ensures clause.
func (e *Env) OldEnv() *Env { return e.old }

// MustGet looks up name or returns a runtime "unbound variable" error
// (spec §7 EVA001 — "should not occur if type-checked").
func (e *Env) MustGet(name string) (value.Value, error) {
	if v, ok := e.Get(name); ok {
		return v, nil
	}
	return nil, fmt.Errorf("unbound variable %q at runtime", name)
}
