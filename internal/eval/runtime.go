package eval

import (
	"fmt"

	"github.com/lx-lang/lx/internal/actor"
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/builtins"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/logging"
	"github.com/lx-lang/lx/internal/value"
)

// Runtime is the evaluator's top-level state bundle: the declaration
// tables a call needs to dispatch by qualified name, the builtin
// registry, the actor registry, the deterministic-execution
// environment, and the logging sink — all explicit fields threaded
// through evaluation, matching spec §9 "No hidden globals... the only
// process-global used is the structured-log collector, which is part
// of Runtime."
type Runtime struct {
	Functions  map[string]*ast.FnDecl
	Contracts  map[string]*ast.FnContractDecl
	ActorDecls map[string]*ast.ActorDecl

	Builtins *builtins.Registry
	EffEnv   effects.Env
	Sink     logging.Sink
	Trace    bool

	depth int

	actors     *actor.Registry
	actorQName map[int64]string
	actorEnv   map[int64]*Env
}

// Config bundles Runtime's construction-time dependencies.
type Config struct {
	Functions  map[string]*ast.FnDecl
	Contracts  map[string]*ast.FnContractDecl
	ActorDecls map[string]*ast.ActorDecl
	Builtins   *builtins.Registry
	EffEnv     effects.Env
	Sink       logging.Sink
	Trace      bool
	Scheduler  actor.Mode
}

func New(cfg Config) *Runtime {
	rt := &Runtime{
		Functions:  cfg.Functions,
		Contracts:  cfg.Contracts,
		ActorDecls: cfg.ActorDecls,
		Builtins:   cfg.Builtins,
		EffEnv:     cfg.EffEnv,
		Sink:       cfg.Sink,
		Trace:      cfg.Trace,
		actorQName: make(map[int64]string),
		actorEnv:   make(map[int64]*Env),
	}
	rt.actors = actor.NewRegistry(cfg.Scheduler, rt)
	return rt
}

// ---- builtins.Host -------------------------------------------------

func (rt *Runtime) Call(fn value.Value, args []value.Value) (value.Value, error) {
	ref, ok := fn.(value.FuncRef)
	if !ok {
		return nil, fmt.Errorf("value %s is not callable", fn.String())
	}
	return rt.CallByName(ref.QName, args)
}

func (rt *Runtime) Env() *effects.Env { return &rt.EffEnv }

func (rt *Runtime) Log(level, label string, payload value.Value) {
	if rt.Sink != nil {
		rt.Sink.Log(level, label, payload)
	}
}

func (rt *Runtime) ConcurrentFlush() (int, error) { return rt.actors.Flush() }
func (rt *Runtime) ConcurrentStep() (bool, error) { return rt.actors.Step() }

func (rt *Runtime) ConcurrentStop(ref value.Value) bool {
	ar, ok := ref.(value.ActorRef)
	if !ok {
		return false
	}
	return rt.actors.Stop(ar.ID)
}

// ---- actor.Dispatcher ------------------------------------------------

// HasHandler reports whether the actor at id declares a handler for
// msgCtor.
func (rt *Runtime) HasHandler(id int64, msgCtor string) bool {
	decl, ok := rt.actorDeclFor(id)
	if !ok {
		return false
	}
	for _, h := range decl.Handlers {
		if h.MsgCtor == msgCtor {
			return true
		}
	}
	return false
}

// Dispatch runs the handler body for msg against id's private
// environment (spec §4.7 "Handler dispatch").
func (rt *Runtime) Dispatch(id int64, msg *value.Ctor) (value.Value, error) {
	decl, ok := rt.actorDeclFor(id)
	if !ok {
		return nil, fmt.Errorf("unknown actor %d", id)
	}
	var handler *ast.Handler
	for i := range decl.Handlers {
		if decl.Handlers[i].MsgCtor == msg.Name {
			handler = &decl.Handlers[i]
			break
		}
	}
	if handler == nil {
		return nil, fmt.Errorf("actor %q has no handler for message %q", decl.Ident, msg.Name)
	}
	base, ok := rt.actorEnv[id]
	if !ok {
		return nil, fmt.Errorf("actor %d has no recorded environment", id)
	}
	env := base.Clone()
	for _, p := range handler.Params {
		if v, ok := msg.Fields[p.Name]; ok {
			env.Set(p.Name, v)
		} else {
			env.Set(p.Name, msg)
		}
	}
	v, returned, err := rt.EvalBlock(env, handler.Body)
	if err != nil {
		return nil, err
	}
	if !returned {
		return value.Unit{}, nil
	}
	return v, nil
}

func (rt *Runtime) actorDeclFor(id int64) (*ast.ActorDecl, bool) {
	qname, ok := rt.actorQName[id]
	if !ok {
		return nil, false
	}
	decl, ok := rt.ActorDecls[qname]
	return decl, ok
}
