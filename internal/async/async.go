// Package async implements the round-robin, single-statement-per-turn
// cooperative scheduler for `async_group`/`async` (spec §4.8). Like
// internal/actor, this has no corpus precedent (confirmed via grep
// for async/scheduler across the retrieved pack); it is designed
// fresh as an explicit task-tuple loop, per spec §9 ("Async/actor as
// tasks and mailboxes... tasks are represented as tuples (environment
// reference, remaining statements, index, completion flag)").
package async

import (
	"fmt"

	"github.com/lx-lang/lx/internal/ast"
)

// Task is one registered `async { … }` body: a cursor over its
// remaining statements, run against a shared environment reference
// supplied by the caller. Env is opaque (`any`) here — it is the
// owning evaluator's *eval.Env — so this package never imports
// internal/eval, which would otherwise cycle back to async.
type Task struct {
	Index     int
	Env       any
	Remaining []ast.Stmt
	Done      bool
	Cancelled bool
}

// StepRunner executes exactly one statement of a task against its
// environment. err signals a task failure, which the scheduler
// propagates after cancelling every sibling (spec §4.8).
type StepRunner interface {
	// RunOne executes task.Remaining[0] against task.Env, returning
	// the task's new remaining-statement slice and whether a `return`
	// was hit inside the async body (always fatal per spec §4.8).
	RunOne(task *Task) (remaining []ast.Stmt, returned bool, err error)
}

// Group runs every registered task to completion in round-robin,
// single-statement-per-turn order (spec §4.8 "the group runs its
// registered tasks in a round-robin, single-step-per-turn loop until
// all complete"). A task failure cancels all siblings and re-raises.
func Group(tasks []*Task, runner StepRunner) error {
	pending := len(tasks)
	for pending > 0 {
		progressed := false
		for _, t := range tasks {
			if t.Done || t.Cancelled {
				continue
			}
			if len(t.Remaining) == 0 {
				t.Done = true
				pending--
				continue
			}
			progressed = true
			remaining, returned, err := runner.RunOne(t)
			if returned {
				cancelAll(tasks)
				return fmt.Errorf("return statement inside async block is not permitted")
			}
			if err != nil {
				cancelAll(tasks)
				return err
			}
			t.Remaining = remaining
			if len(t.Remaining) == 0 {
				t.Done = true
				pending--
			}
		}
		if !progressed && pending > 0 {
			// every remaining task is cancelled already; nothing left
			// to drive forward.
			break
		}
	}
	return nil
}

func cancelAll(tasks []*Task) {
	for _, t := range tasks {
		if !t.Done {
			t.Cancelled = true
			t.Done = true
		}
	}
}
