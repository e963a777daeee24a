package types

// FreshGen hands out unique type-variable ids within one type-checking
// session, mirroring the teacher's fresh-variable counter.
type FreshGen struct {
	next VarID
}

func NewFreshGen() *FreshGen { return &FreshGen{} }

// Flexible returns a new unification variable, free to bind to
// anything.
func (g *FreshGen) Flexible() *TypeVar {
	g.next++
	return &TypeVar{ID: g.next, Rigid: false}
}

// Rigid returns a new type-parameter variable, named for diagnostics,
// unifiable only with itself (spec §4.4).
func (g *FreshGen) Rigid(label string) *TypeVar {
	g.next++
	return &TypeVar{ID: g.next, Rigid: true, Label: label}
}
