package actor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/value"
)

// scriptedDispatcher lets a test control which message constructors
// an actor "handles" and what each dispatch returns/errors with.
type scriptedDispatcher struct {
	handlers map[string]bool // ctor name -> handled
	failWith map[string]error
	dispatched []string
}

func (d *scriptedDispatcher) Dispatch(actorID int64, msg *value.Ctor) (value.Value, error) {
	d.dispatched = append(d.dispatched, fmt.Sprintf("%d:%s", actorID, msg.Name))
	if err, ok := d.failWith[msg.Name]; ok {
		return nil, err
	}
	return value.Unit{}, nil
}

func (d *scriptedDispatcher) HasHandler(actorID int64, msgCtor string) bool {
	return d.handlers[msgCtor]
}

func newScripted(handled ...string) *scriptedDispatcher {
	h := make(map[string]bool, len(handled))
	for _, n := range handled {
		h[n] = true
	}
	return &scriptedDispatcher{handlers: h, failWith: map[string]error{}}
}

func msg(name string) *value.Ctor {
	return &value.Ctor{Name: name, Fields: map[string]value.Value{}}
}

func TestSpawnBindsSupervisorFromCurrent(t *testing.T) {
	d := newScripted("Tick")
	r := NewRegistry(Deterministic, d)

	parent := r.Spawn()
	require.NoError(t, r.Send(parent, msg("Tick"))) // no-op in deterministic mode, just queues

	var child int64
	_ = r.withCurrent(parent, func() error {
		child = r.Spawn()
		return nil
	})
	assert.NotEqual(t, int64(0), child)
	require.NotNil(t, r.actors[child])
	assert.True(t, r.actors[child].hasParent)
	assert.Equal(t, parent, r.actors[child].parent)
}

func TestSendImmediateModeDrainsSynchronously(t *testing.T) {
	d := newScripted("Ping")
	r := NewRegistry(Immediate, d)
	id := r.Spawn()

	require.NoError(t, r.Send(id, msg("Ping")))
	assert.Contains(t, d.dispatched, fmt.Sprintf("%d:Ping", id))
}

func TestSendDeterministicModeQueuesUntilFlush(t *testing.T) {
	d := newScripted("Ping")
	r := NewRegistry(Deterministic, d)
	id := r.Spawn()

	require.NoError(t, r.Send(id, msg("Ping")))
	assert.Empty(t, d.dispatched)

	n, err := r.Flush()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Contains(t, d.dispatched, fmt.Sprintf("%d:Ping", id))
}

func TestSendToUnknownActorErrors(t *testing.T) {
	r := NewRegistry(Immediate, newScripted())
	err := r.Send(999, msg("Ping"))
	assert.Error(t, err)
}

func TestSendWithNoHandlerErrors(t *testing.T) {
	r := NewRegistry(Immediate, newScripted())
	id := r.Spawn()
	err := r.Send(id, msg("Unhandled"))
	assert.Error(t, err)
}

func TestSendToStoppedActorErrors(t *testing.T) {
	r := NewRegistry(Immediate, newScripted("Ping"))
	id := r.Spawn()
	require.True(t, r.Stop(id))
	err := r.Send(id, msg("Ping"))
	assert.Error(t, err)
}

func TestStepDrainsExactlyOne(t *testing.T) {
	d := newScripted("Ping")
	r := NewRegistry(Deterministic, d)
	id := r.Spawn()
	require.NoError(t, r.Send(id, msg("Ping")))
	require.NoError(t, r.Send(id, msg("Ping")))

	ok, err := r.Step()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, d.dispatched, 1)
}

func TestCallReturnsDispatchResultDirectly(t *testing.T) {
	d := newScripted("Get")
	r := NewRegistry(Immediate, d)
	id := r.Spawn()

	out, err := r.Call(id, msg("Get"))
	require.NoError(t, err)
	assert.Equal(t, value.Unit{}, out)
}

func TestFailRoutesToSupervisorWithHandler(t *testing.T) {
	d := newScripted("Crash", ChildFailedCtor)
	d.failWith["Crash"] = fmt.Errorf("boom")
	r := NewRegistry(Immediate, d)

	parent := r.Spawn()
	var child int64
	_ = r.withCurrent(parent, func() error {
		child = r.Spawn()
		return nil
	})

	err := r.Send(child, msg("Crash"))
	assert.NoError(t, err, "supervisor handles __child_failed, so Send itself should not surface the error")
	assert.True(t, r.IsStopped(child))
	found := false
	for _, d := range d.dispatched {
		if d == fmt.Sprintf("%d:%s", parent, ChildFailedCtor) {
			found = true
		}
	}
	assert.True(t, found, "expected __child_failed to be dispatched to the supervisor")
}

func TestFailPropagatesWithoutSupervisor(t *testing.T) {
	d := newScripted("Crash")
	d.failWith["Crash"] = fmt.Errorf("boom")
	r := NewRegistry(Immediate, d)
	id := r.Spawn()

	err := r.Send(id, msg("Crash"))
	assert.Error(t, err)
	assert.True(t, r.IsStopped(id))
}

func TestStopCascadesToDescendants(t *testing.T) {
	r := NewRegistry(Immediate, newScripted())
	parent := r.Spawn()
	var child int64
	_ = r.withCurrent(parent, func() error {
		child = r.Spawn()
		return nil
	})

	require.True(t, r.Stop(parent))
	assert.True(t, r.IsStopped(parent))
	assert.True(t, r.IsStopped(child))
}

func TestStopUnknownActorReturnsFalse(t *testing.T) {
	r := NewRegistry(Immediate, newScripted())
	assert.False(t, r.Stop(12345))
}
