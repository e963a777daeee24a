// Package effects implements Lx's static effect discipline: a plain
// set of declared effect names, checked once by the type checker
// (spec §4.5), never consulted again at evaluation time. This is
// deliberately simpler than a runtime capability-grant model — see
// DESIGN.md for why the teacher's EffContext.Grant/RequireCap runtime
// check has no place here.
package effects

import "sort"

// Baseline is the set of effects every module may use without
// declaring an EffectDecl for them (spec §4.5: "baseline {Concurrent,
// Log, Io}").
var Baseline = NewSet("Concurrent", "Log", "Io")

// Set is an unordered collection of effect names.
type Set map[string]struct{}

func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s Set) Add(name string) {
	s[name] = struct{}{}
}

func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range other {
		out[n] = struct{}{}
	}
	return out
}

// Sorted returns the set's members in deterministic order, for stable
// diagnostic messages.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func (s Set) Empty() bool { return len(s) == 0 }

// Missing returns the elements of required that are absent from
// declared, sorted for stable reporting. An empty result means
// declared is a superset of required — the effect-subset rule spec.md
// requires at every call site (spec §4.5 "Effect discipline").
func Missing(required, declared Set) []string {
	var missing []string
	for name := range required {
		if !declared.Has(name) {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
