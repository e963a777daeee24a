// Package builtins is the enumerated catalog of spec §6: name, arity,
// parameter names (for C6 alignment), effect set, and a polymorphic
// type-scheme constructor, plus the Go implementation the interpreter
// dispatches to. Grounded on the teacher's builtin-registration
// pattern (internal/builtins, internal/eval/builtins_*.go).
package builtins

import (
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// Sig is a builtin's type-checking metadata.
type Sig struct {
	Name       string
	ParamNames []string
	Effects    effects.Set
	// Instantiate builds a fresh Function type for one call site
	// (spec §4.5: "use its polymorphic instantiation (fresh vars
	// each call)").
	Instantiate func(fresh *types.FreshGen) *types.Function
	// PureArgBuiltin marks parallel_map/parallel_fold/parallel_for_each:
	// their function-reference argument must be a bare name of a
	// declared pure function (spec §4.5).
	PureArgBuiltin bool
}

// Host is the interpreter-side capability a builtin needs beyond its
// own arguments: calling a function value back (for map/filter/fold
// and the parallel_* family), reading the deterministic execution
// environment, writing a structured log record, and driving the
// actor scheduler's builtin ops (Concurrent.flush/step/stop, spec
// §4.7).
type Host interface {
	Call(fn value.Value, args []value.Value) (value.Value, error)
	Env() *effects.Env
	Log(level, label string, payload value.Value)
	ConcurrentFlush() (int, error)
	ConcurrentStep() (bool, error)
	ConcurrentStop(ref value.Value) bool
}

// Impl is a builtin's runtime behavior: given already-evaluated
// argument values (in parameter order) and the calling Host, return a
// result value or an error.
type Impl func(args []value.Value, host Host) (value.Value, error)

// Entry bundles a builtin's type-checking signature with its runtime
// implementation.
type Entry struct {
	Sig  Sig
	Impl Impl
}

// Registry is the full catalog, keyed by exact callee name (spec §6:
// "Builtin by exact callee name").
type Registry struct {
	entries map[string]*Entry
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]*Entry)}
	r.registerLists()
	r.registerStrings()
	r.registerMath()
	r.registerJSON()
	r.registerLogging()
	r.registerConcurrency()
	r.registerParallel()
	r.registerUnary()
	r.registerAsserts()
	r.registerIO()
	return r
}

func (r *Registry) register(e *Entry) {
	r.entries[e.Sig.Name] = e
}

func (r *Registry) Lookup(name string) (Sig, bool) {
	e, ok := r.entries[name]
	if !ok {
		return Sig{}, false
	}
	return e.Sig, true
}

func (r *Registry) Impl(name string) (Impl, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.Impl, true
}

func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns every registered builtin name, for diagnostics and
// documentation generation.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.entries))
	for n := range r.entries {
		out = append(out, n)
	}
	return out
}
