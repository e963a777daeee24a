// Package actor implements spawn/send/handler-dispatch/supervision
// for Lx (spec §4.7). There is no corpus precedent for an actor
// runtime anywhere in the retrieved pack (confirmed via grep for
// actor/supervis/mailbox); this package is designed fresh, following
// the teacher's general structural idiom of an explicit registry
// struct keyed by a monotonic id, with no goroutines — the whole
// runtime is single-threaded cooperative (spec §5).
package actor

import (
	"fmt"

	"github.com/lx-lang/lx/internal/value"
)

// Mode selects how mailbox deliveries are drained (spec §4.7).
type Mode int

const (
	Immediate Mode = iota
	Deterministic
)

type status int

const (
	running status = iota
	stopped
)

type record struct {
	id       int64
	parent   int64
	hasParent bool
	children []int64
	mailbox  []*value.Ctor
	status   status
}

// Delivery is one pending message in the deterministic FIFO queue.
type Delivery struct {
	ActorID int64
	Msg     *value.Ctor
}

// Dispatcher runs one actor handler body against its owning
// evaluator; the actor package only manages ids, mailboxes, and the
// supervision tree, never AST evaluation itself — this keeps
// internal/actor free of an import cycle back to internal/eval.
type Dispatcher interface {
	// Dispatch evaluates the handler body for msg against actorID's
	// private environment, returning the handler's result value.
	Dispatch(actorID int64, msg *value.Ctor) (value.Value, error)
	// HasHandler reports whether actorID declares a handler for the
	// named message constructor (used to validate __child_failed
	// delivery and plain sends alike).
	HasHandler(actorID int64, msgCtor string) bool
}

// ChildFailedCtor names the synthetic supervision event (spec §4.7,
// payload shape decided in DESIGN.md: {child: ActorRef, reason: String}).
const ChildFailedCtor = "__child_failed"

// Registry owns every live actor and the supervision tree. It is the
// single process-global shared structure spec §5 names ("the
// process-global actor registry and pending-delivery queue").
type Registry struct {
	mode       Mode
	dispatcher Dispatcher
	nextID     int64
	actors     map[int64]*record
	pending    []Delivery // deterministic-mode queue only

	// current is the id of the actor whose handler is presently
	// executing, or 0 (no actor) at the top level; Spawn binds the
	// new actor's supervisor from this (spec §4.7 "binds the
	// caller's current actor (if any) as supervisor").
	current int64
}

func NewRegistry(mode Mode, d Dispatcher) *Registry {
	return &Registry{mode: mode, dispatcher: d, actors: make(map[int64]*record)}
}

// Current returns the id of the actor whose handler is presently
// running, and whether one is running at all.
func (r *Registry) Current() (int64, bool) {
	if r.current == 0 {
		return 0, false
	}
	return r.current, true
}

// Spawn allocates a new actor id, binds the current actor (if any) as
// its supervisor, and returns the id (spec §4.7 "Spawn").
func (r *Registry) Spawn() int64 {
	r.nextID++
	id := r.nextID
	rec := &record{id: id, status: running}
	if r.current != 0 {
		rec.parent = r.current
		rec.hasParent = true
		r.actors[r.current].children = append(r.actors[r.current].children, id)
	}
	r.actors[id] = rec
	return id
}

// withCurrent runs fn with current temporarily set to id, restoring
// the previous value afterward — used while dispatching a handler so
// a spawn performed inside it attaches the right supervisor.
func (r *Registry) withCurrent(id int64, fn func() error) error {
	prev := r.current
	r.current = id
	defer func() { r.current = prev }()
	return fn()
}

// Send enqueues msg on ref's mailbox (spec §4.7 "Send"). In Immediate
// mode the mailbox is drained synchronously before Send returns,
// matching "drained before the enclosing statement completes". In
// Deterministic mode the delivery is appended to the global pending
// queue instead, processed only by Flush/Step.
func (r *Registry) Send(id int64, msg *value.Ctor) error {
	rec, ok := r.actors[id]
	if !ok {
		return fmt.Errorf("send to unknown actor %d", id)
	}
	if rec.status == stopped {
		return fmt.Errorf("send to stopped actor %d", id)
	}
	if !r.dispatcher.HasHandler(id, msg.Name) {
		return fmt.Errorf("actor %d has no handler for message %q", id, msg.Name)
	}
	if r.mode == Immediate {
		rec.mailbox = append(rec.mailbox, msg)
		return r.drainActor(id)
	}
	r.pending = append(r.pending, Delivery{ActorID: id, Msg: msg})
	return nil
}

// drainActor processes every message currently queued for id,
// including ones a handler enqueues for id itself while running.
func (r *Registry) drainActor(id int64) error {
	for {
		rec, ok := r.actors[id]
		if !ok || len(rec.mailbox) == 0 {
			return nil
		}
		msg := rec.mailbox[0]
		rec.mailbox = rec.mailbox[1:]
		if err := r.deliver(id, msg); err != nil {
			return err
		}
	}
}

// deliver dispatches one message to id's handler, routing any failure
// to supervision (spec §4.7 "Supervision").
func (r *Registry) deliver(id int64, msg *value.Ctor) error {
	var result error
	withErr := r.withCurrent(id, func() error {
		_, err := r.dispatcher.Dispatch(id, msg)
		return err
	})
	if withErr != nil {
		result = r.fail(id, withErr)
	}
	return result
}

// fail stops the actor and, if it has a supervisor with a
// __child_failed handler, delivers that event and returns whatever
// error the delivery itself yields (nil when the supervisor handles it
// cleanly). Without such a supervisor the original failure propagates
// to the caller (ACT003).
func (r *Registry) fail(id int64, cause error) error {
	r.stopOne(id)
	rec := r.actors[id]
	if rec == nil || !rec.hasParent {
		return cause
	}
	supervisor := rec.parent
	if !r.dispatcher.HasHandler(supervisor, ChildFailedCtor) {
		return cause
	}
	payload := &value.Ctor{Name: ChildFailedCtor, Fields: map[string]value.Value{
		"child":  value.ActorRef{ID: id},
		"reason": value.String(cause.Error()),
	}}
	return r.Send(supervisor, payload)
}

// Call invokes a handler directly (the `Actor.<Msg>(actorRef, …)`
// call form, spec §4.7 "Handler dispatch": "the handler's return
// value is what a direct Actor.Msg(actorRef, …) call returns").
func (r *Registry) Call(id int64, msg *value.Ctor) (value.Value, error) {
	rec, ok := r.actors[id]
	if !ok || rec.status == stopped {
		return nil, fmt.Errorf("call to stopped or unknown actor %d", id)
	}
	var out value.Value
	var callErr error
	_ = r.withCurrent(id, func() error {
		out, callErr = r.dispatcher.Dispatch(id, msg)
		return callErr
	})
	if callErr != nil {
		if failErr := r.fail(id, callErr); failErr != nil {
			return nil, failErr
		}
		return nil, nil
	}
	return out, nil
}

// Flush drains every pending delivery (deterministic mode), returning
// the count drained (spec §4.7 "Concurrent.flush()").
func (r *Registry) Flush() (int, error) {
	n := 0
	for len(r.pending) > 0 {
		ok, err := r.Step()
		if err != nil {
			return n, err
		}
		if !ok {
			break
		}
		n++
	}
	return n, nil
}

// Step drains exactly one pending delivery, reporting whether one was
// drained (spec §4.7 "Concurrent.step()").
func (r *Registry) Step() (bool, error) {
	if len(r.pending) == 0 {
		return false, nil
	}
	d := r.pending[0]
	r.pending = r.pending[1:]
	if _, ok := r.actors[d.ActorID]; !ok {
		return true, nil
	}
	if r.actors[d.ActorID].status == stopped {
		return true, nil
	}
	return true, r.deliver(d.ActorID, d.Msg)
}

// Stop stops id and every descendant, deterministically and
// recursively (spec §4.7 "Concurrent.stop(ref)"). Reports whether id
// was a known actor.
func (r *Registry) Stop(id int64) bool {
	_, ok := r.actors[id]
	if !ok {
		return false
	}
	r.stopOne(id)
	return true
}

func (r *Registry) stopOne(id int64) {
	rec, ok := r.actors[id]
	if !ok || rec.status == stopped {
		return
	}
	rec.status = stopped
	children := append([]int64(nil), rec.children...)
	for _, c := range children {
		r.stopOne(c)
	}
}

// IsStopped reports whether id names a stopped (or unknown) actor.
func (r *Registry) IsStopped(id int64) bool {
	rec, ok := r.actors[id]
	return !ok || rec.status == stopped
}
