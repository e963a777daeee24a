// Package toolchain wires loader -> resolver -> type checker ->
// interpreter into the single `Pipeline` spec §A.4 names, shared by
// every cmd/lx subcommand so `check`/`test`/`run`/`repl` all build the
// program state identically.
package toolchain

import (
	"github.com/lx-lang/lx/internal/actor"
	"github.com/lx-lang/lx/internal/builtins"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/eval"
	"github.com/lx-lang/lx/internal/loader"
	"github.com/lx-lang/lx/internal/logging"
	"github.com/lx-lang/lx/internal/resolve"
	"github.com/lx-lang/lx/internal/typecheck"
)

// Pipeline bundles the loaded program and every phase's output, ready
// for `internal/testrunner` or direct `run <qualifiedFn>` dispatch.
type Pipeline struct {
	Sym      *loader.SymbolTable
	Builtins *builtins.Registry
	Checker  *typecheck.Checker
	Runtime  *eval.Runtime
}

// Options configures the interpreter's ambient behavior; everything
// else is fixed by the loaded program.
type Options struct {
	Roots     []string
	EffEnv    effects.Env
	Sink      logging.Sink
	Trace     bool
	Scheduler actor.Mode
	Parse     loader.Parse
}

// Build runs loader -> resolver -> type checker over entryPath and
// returns the diagnostics bag (non-empty on any failure) plus the
// Pipeline ready for evaluation. A non-empty bag means the caller
// must not proceed to evaluation (spec §6 "non-zero on any diagnostic
// failure").
func Build(entryPath string, opts Options) (*Pipeline, *diag.Bag) {
	ld := loader.New(opts.Roots, opts.Parse)
	modules, sym, d := ld.Load(entryPath)
	if d != nil {
		bag := &diag.Bag{}
		bag.Add(d)
		return nil, bag
	}

	resolve.Walk(modules, sym)

	reg := builtins.NewRegistry()
	checker, bag := typecheck.New(modules, sym, reg)
	if !bag.Empty() {
		return nil, bag
	}
	bag = checker.Check(modules)
	if !bag.Empty() {
		return nil, bag
	}

	rt := eval.New(eval.Config{
		Functions:  sym.Functions,
		Contracts:  sym.Contracts,
		ActorDecls: sym.Actors,
		Builtins:   reg,
		EffEnv:     opts.EffEnv,
		Sink:       opts.Sink,
		Trace:      opts.Trace,
		Scheduler:  opts.Scheduler,
	})

	return &Pipeline{Sym: sym, Builtins: reg, Checker: checker, Runtime: rt}, &diag.Bag{}
}
