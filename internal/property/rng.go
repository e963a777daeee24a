// Package property implements the typed random generator and
// predicate-retry loop of spec §4.9: per-type generation rules, a
// depth cap with type-directed defaults beyond it, and a deterministic
// xorshift32 RNG used whenever a seed is supplied.
//
// There is no corpus precedent for a property-based generator in the
// retrieved pack; this package is designed fresh, grounded only on
// the teacher's naming for a property/binder AST shape
// (ast.PropertyDecl/ast.PropertyParam here) and its small, side-effect
// free helper-function style elsewhere in the tree.
package property

// RNG is a deterministic xorshift32 generator (spec §4.9, §9 "Seeded
// RNG"). Not stdlib math/rand: that generator's algorithm is
// unspecified and may change across Go versions, which would break
// the "same seed reproduces the same generation" guarantee.
type RNG struct {
	state uint32
}

// NewRNG seeds an RNG. xorshift32 is undefined at a zero state, so a
// zero seed is nudged to a fixed non-zero constant.
func NewRNG(seed uint32) *RNG {
	if seed == 0 {
		seed = 0x9e3779b9
	}
	return &RNG{state: seed}
}

// Next returns the next raw 32-bit xorshift output.
func (r *RNG) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a uniform value in [0, n). Panics if n <= 0, matching
// stdlib math/rand's contract.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("property.RNG.Intn: n must be positive")
	}
	return int(r.Next() % uint32(n))
}

// IntRange returns a uniform value in [lo, hi] inclusive.
func (r *RNG) IntRange(lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

// Float64 returns a uniform value in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()) / float64(1<<32)
}

// Bool returns a fair coin flip.
func (r *RNG) Bool() bool {
	return r.Next()&1 == 0
}
