package eval

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/async"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/value"
)

// EvalBlock evaluates every statement in order (spec §4.6 "A block
// evaluates statements in order: if any statement returns,
// propagation stops; otherwise the block's value is the final
// statement's value, defaulting to Unit"). A `return` anywhere inside
// unwinds as a *returnSignal, which the caller (EvalBlock itself, one
// level up, or the function-call/async/handler boundary) converts
// back into a plain value.
func (rt *Runtime) EvalBlock(env *Env, block *ast.Block) (value.Value, bool, error) {
	var last value.Value = value.Unit{}
	for i, stmt := range block.Stmts {
		v, err := rt.evalStmt(env, stmt)
		if rs, ok := asReturn(err); ok {
			return rs.value, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		if _, isExpr := stmt.(*ast.ExprStmt); isExpr {
			last = v
		} else if i == len(block.Stmts)-1 {
			last = value.Unit{}
		}
	}
	return last, false, nil
}

// evalStmt evaluates one statement, returning its value (meaningful
// only for ExprStmt) and, via the *returnSignal sentinel, an early
// return to unwind toward.
func (rt *Runtime) evalStmt(env *Env, stmt ast.Stmt) (value.Value, error) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		v, err := rt.EvalExpr(env, s.Value)
		if err != nil {
			return nil, err
		}
		env.Set(s.Name, v)
		return value.Unit{}, nil

	case *ast.ReturnStmt:
		if s.Value == nil {
			return nil, &returnSignal{value: value.Unit{}}
		}
		v, err := rt.EvalExpr(env, s.Value)
		if err != nil {
			return nil, err
		}
		return nil, &returnSignal{value: v}

	case *ast.ExprStmt:
		return rt.EvalExpr(env, s.Value)

	case *ast.MatchStmt:
		return rt.evalMatchStmt(env, s)

	case *ast.AsyncGroupStmt:
		return rt.evalAsyncGroup(env, s)

	case *ast.AsyncStmt:
		return nil, diag.At(diag.SCH002, s.Pos_, "async block is not nested inside an async_group")

	default:
		return nil, diag.At(diag.EVA007, stmt.Position(), "unrecognized statement")
	}
}

func (rt *Runtime) evalMatchStmt(env *Env, s *ast.MatchStmt) (value.Value, error) {
	scrut, err := rt.EvalExpr(env, s.Scrutinee)
	if err != nil {
		return nil, err
	}
	for _, mc := range s.Cases {
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
		return value.Unit{}, nil
	}
	return nil, diag.At(diag.EVA002, s.Pos_, "non-exhaustive match")
}

// evalAsyncGroup runs the group's body synchronously, registering
// each nested AsyncStmt as a round-robin task against a shared
// reference to env (spec §4.8).
func (rt *Runtime) evalAsyncGroup(env *Env, s *ast.AsyncGroupStmt) (value.Value, error) {
	var tasks []*async.Task
	for _, stmt := range s.Body.Stmts {
		if a, ok := stmt.(*ast.AsyncStmt); ok {
			tasks = append(tasks, &async.Task{
				Index:     len(tasks),
				Env:       env,
				Remaining: append([]ast.Stmt(nil), a.Body.Stmts...),
			})
			continue
		}
		v, err := rt.evalStmt(env, stmt)
		if rs, ok := asReturn(err); ok {
			return nil, rs
		}
		if err != nil {
			return nil, err
		}
		_ = v
	}
	if err := async.Group(tasks, rt); err != nil {
		return nil, err
	}
	return value.Unit{}, nil
}

// RunOne implements async.StepRunner: it executes exactly one
// statement of a task against its (shared) environment.
func (rt *Runtime) RunOne(t *async.Task) ([]ast.Stmt, bool, error) {
	env, _ := t.Env.(*Env)
	stmt := t.Remaining[0]
	_, err := rt.evalStmt(env, stmt)
	if rs, ok := asReturn(err); ok {
		_ = rs
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return t.Remaining[1:], false, nil
}
