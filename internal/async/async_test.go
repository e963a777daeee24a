package async

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/ast"
)

// countingRunner consumes one statement per RunOne call, recording the
// order tasks were stepped in (to verify round-robin interleaving).
type countingRunner struct {
	order []int
}

func (r *countingRunner) RunOne(task *Task) ([]ast.Stmt, bool, error) {
	r.order = append(r.order, task.Index)
	return task.Remaining[1:], false, nil
}

func stmts(n int) []ast.Stmt {
	out := make([]ast.Stmt, n)
	for i := range out {
		out[i] = &ast.ExprStmt{}
	}
	return out
}

func TestGroupInterleavesRoundRobin(t *testing.T) {
	a := &Task{Index: 0, Remaining: stmts(2)}
	b := &Task{Index: 1, Remaining: stmts(1)}
	runner := &countingRunner{}

	err := Group([]*Task{a, b}, runner)
	require.NoError(t, err)
	assert.True(t, a.Done)
	assert.True(t, b.Done)
	assert.Equal(t, []int{0, 1, 0}, runner.order)
}

type returningRunner struct{}

func (returningRunner) RunOne(task *Task) ([]ast.Stmt, bool, error) {
	return nil, true, nil
}

func TestGroupPropagatesReturnAsErrorAndCancelsSiblings(t *testing.T) {
	a := &Task{Index: 0, Remaining: stmts(1)}
	b := &Task{Index: 1, Remaining: stmts(3)}

	err := Group([]*Task{a, b}, returningRunner{})
	require.Error(t, err)
	assert.True(t, b.Cancelled)
}

type failingRunner struct {
	failOn int
	calls  int
}

func (r *failingRunner) RunOne(task *Task) ([]ast.Stmt, bool, error) {
	r.calls++
	if task.Index == r.failOn {
		return nil, false, errors.New("boom")
	}
	return task.Remaining[1:], false, nil
}

func TestGroupCancelsAllSiblingsOnFailure(t *testing.T) {
	a := &Task{Index: 0, Remaining: stmts(1)}
	b := &Task{Index: 1, Remaining: stmts(3)}

	err := Group([]*Task{a, b}, &failingRunner{failOn: 0})
	require.Error(t, err)
	assert.Equal(t, "boom", err.Error())
	assert.True(t, a.Cancelled)
	assert.True(t, b.Cancelled)
}

func TestGroupEmptyTaskListNoError(t *testing.T) {
	err := Group(nil, &countingRunner{})
	assert.NoError(t, err)
}
