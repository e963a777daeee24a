// Package testrunner collects and runs TestDecl/PropertyDecl from the
// primary module (spec §4.10): tests run sequentially in an empty
// environment, a failure does not stop the remaining tests, and each
// property iterates its typed generator with per-parameter predicate
// retry before running its body.
//
// Grounded on the teacher's outcome-list reporting shape (name/
// success/error), adapted here to the two declaration kinds spec.md
// names; testrunner itself has no direct corpus precedent for the
// property-iteration loop, which is designed fresh against §4.9/§4.10.
package testrunner

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/eval"
	"github.com/lx-lang/lx/internal/loader"
	"github.com/lx-lang/lx/internal/property"
	"github.com/lx-lang/lx/internal/value"
)

// maxPredicateAttempts bounds the per-parameter rejection-sampling
// retry spec §4.9 calls "a fixed maximum attempts".
const maxPredicateAttempts = 100

const defaultIterations = 50

// Outcome is one TestDecl/PropertyDecl result (spec §4.10: "{kind,
// name, success, error?}").
type Outcome struct {
	Kind    string // "test" | "property"
	Name    string
	Success bool
	Error   string
}

// Run executes every test then every property, both in name-sorted
// order for a reproducible report, and returns their outcomes.
func Run(rt *eval.Runtime, sym *loader.SymbolTable, seed uint32) []Outcome {
	var outcomes []Outcome

	testNames := sortedKeys(sym.Tests)
	for _, name := range testNames {
		outcomes = append(outcomes, runTest(rt, sym.Tests[name]))
	}

	propNames := sortedKeys(sym.Properties)
	gen := property.NewGenerator(sym, property.NewRNG(seed))
	for _, name := range propNames {
		outcomes = append(outcomes, runProperty(rt, gen, sym.Properties[name]))
	}

	return outcomes
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runTest(rt *eval.Runtime, decl *ast.TestDecl) Outcome {
	env := eval.NewEnv()
	_, _, err := rt.EvalBlock(env, decl.Body)
	if err != nil {
		return Outcome{Kind: "test", Name: decl.Ident, Success: false, Error: err.Error()}
	}
	return Outcome{Kind: "test", Name: decl.Ident, Success: true}
}

// runProperty runs decl.Iterations (default 50) rounds: each round
// binds every parameter sequentially, retrying a parameter's
// generated value against its predicate up to maxPredicateAttempts,
// then evaluates the body. The first failing round is reported with
// its 1-based iteration number and a JSON snapshot of the bindings
// collected so far (spec §4.9 "On failure").
func runProperty(rt *eval.Runtime, gen *property.Generator, decl *ast.PropertyDecl) Outcome {
	n := decl.Iterations
	if n == 0 {
		n = defaultIterations
	}

	for iter := 1; iter <= n; iter++ {
		env := eval.NewEnv()
		bindings := make(map[string]value.Value, len(decl.Params))

		ok, failParam, err := bindParams(rt, gen, decl.Params, env, bindings)
		if err != nil {
			return propertyFailure(decl.Ident, iter, bindings, err)
		}
		if !ok {
			return propertyFailure(decl.Ident, iter, bindings,
				fmt.Errorf("parameter %q never satisfied its predicate after %d attempts", failParam, maxPredicateAttempts))
		}

		if decl.Body == nil {
			continue
		}
		if _, _, err := rt.EvalBlock(env, decl.Body); err != nil {
			return propertyFailure(decl.Ident, iter, bindings, err)
		}
	}

	return Outcome{Kind: "property", Name: decl.Ident, Success: true}
}

// bindParams binds decl.Params in order, so a later predicate may
// reference an earlier binding (spec §4.9 "bound sequentially").
func bindParams(rt *eval.Runtime, gen *property.Generator, params []ast.PropertyParam, env *eval.Env, bindings map[string]value.Value) (bool, string, error) {
	for _, p := range params {
		v, ok, err := generateSatisfying(rt, gen, p, env)
		if err != nil {
			return false, p.Name, err
		}
		if !ok {
			return false, p.Name, nil
		}
		env.Set(p.Name, v)
		bindings[p.Name] = v
	}
	return true, "", nil
}

func generateSatisfying(rt *eval.Runtime, gen *property.Generator, p ast.PropertyParam, env *eval.Env) (value.Value, bool, error) {
	for attempt := 0; attempt < maxPredicateAttempts; attempt++ {
		v := gen.Generate(p.Type, 0)
		if p.Predicate == nil {
			return v, true, nil
		}
		trial := env.Child()
		trial.Set(p.Name, v)
		result, err := rt.EvalExpr(trial, p.Predicate)
		if err != nil {
			return nil, false, err
		}
		b, ok := result.(value.Bool)
		if ok && bool(b) {
			return v, true, nil
		}
	}
	return nil, false, nil
}

func propertyFailure(name string, iter int, bindings map[string]value.Value, cause error) Outcome {
	snapshot := make(map[string]any, len(bindings))
	for k, v := range bindings {
		snapshot[k] = value.ToJSON(v)
	}
	snapshotJSON, _ := json.Marshal(snapshot)
	return Outcome{
		Kind:    "property",
		Name:    name,
		Success: false,
		Error:   fmt.Sprintf("iteration %d: %s (bindings: %s)", iter, cause.Error(), snapshotJSON),
	}
}
