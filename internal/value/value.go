// Package value defines Lx's closed runtime-value union (spec §3):
// Int, Bool, String, Unit, List, Ctor, and ActorRef. Kept as its own
// leaf package (rather than nested in eval) so both internal/eval and
// internal/builtins can depend on it without an import cycle.
//
// Grounded on the teacher's internal/eval/value.go closed Value union.
package value

import (
	"fmt"
	"sort"
	"strings"
)

// Value is implemented by every runtime value kind.
type Value interface {
	valueNode()
	String() string
}

type Int int64

func (Int) valueNode()        {}
func (v Int) String() string  { return fmt.Sprintf("%d", int64(v)) }

type Bool bool

func (Bool) valueNode()       {}
func (v Bool) String() string { return fmt.Sprintf("%t", bool(v)) }

type String string

func (String) valueNode()       {}
func (v String) String() string { return string(v) }

type Unit struct{}

func (Unit) valueNode()        {}
func (Unit) String() string    { return "()" }

type List struct {
	Elems []Value
}

func (*List) valueNode() {}
func (l *List) String() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Ctor is a constructor value: a record or sum-type-variant instance,
// named and carrying a field map (spec §3).
type Ctor struct {
	Name   string
	Fields map[string]Value
}

func (*Ctor) valueNode() {}
func (c *Ctor) String() string {
	keys := make([]string, 0, len(c.Fields))
	for k := range c.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, c.Fields[k].String())
	}
	return fmt.Sprintf("%s { %s }", c.Name, strings.Join(parts, ", "))
}

// ActorRef names an actor by id; it does not own the actor (spec §3,
// GLOSSARY "Actor ref").
type ActorRef struct {
	ID int64
}

func (ActorRef) valueNode()       {}
func (r ActorRef) String() string { return fmt.Sprintf("ActorRef(%d)", r.ID) }

// FuncRef is a reference to a callable by fully qualified name — a
// user function or a builtin. Lx has no lambda literal (spec §3's
// expression grammar omits one), so the only way a function reaches a
// value position (e.g. the `f` argument to list.map or parallel_map)
// is by naming one; FuncRef is what a VarRef to such a name evaluates
// to. Not enumerated in spec §3's closed runtime-value list, which
// only anticipates first-order data — added because Host.Call (the
// seam the higher-order list/parallel builtins use to invoke their
// function argument) needs some value.Value to carry that reference
// through.
type FuncRef struct {
	QName string
}

func (FuncRef) valueNode()       {}
func (f FuncRef) String() string { return fmt.Sprintf("<fn %s>", f.QName) }

// Equal implements the structural, deep equality rule of spec §4.6
// ("Equality is structural and deep across Int/Bool/String/Unit/
// List/Ctor").
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Unit:
		_, ok := b.(Unit)
		return ok
	case *List:
		bv, ok := b.(*List)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !Equal(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case *Ctor:
		bv, ok := b.(*Ctor)
		if !ok || av.Name != bv.Name || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for k, v := range av.Fields {
			other, ok := bv.Fields[k]
			if !ok || !Equal(v, other) {
				return false
			}
		}
		return true
	case ActorRef:
		bv, ok := b.(ActorRef)
		return ok && av.ID == bv.ID
	default:
		return false
	}
}

// ToJSON converts a Value into the generic JSON-shape used by
// json.encode and schema codecs (spec §6): Int -> number, Bool ->
// boolean, String -> string, Unit -> null, List -> array, Ctor ->
// single-key object `{ CtorName: { field: value, … } }`.
func ToJSON(v Value) any {
	switch vv := v.(type) {
	case Int:
		return int64(vv)
	case Bool:
		return bool(vv)
	case String:
		return string(vv)
	case Unit:
		return nil
	case *List:
		out := make([]any, len(vv.Elems))
		for i, e := range vv.Elems {
			out[i] = ToJSON(e)
		}
		return out
	case *Ctor:
		fields := make(map[string]any, len(vv.Fields))
		for k, fv := range vv.Fields {
			fields[k] = ToJSON(fv)
		}
		return map[string]any{vv.Name: fields}
	case ActorRef:
		return map[string]any{"ActorRef": map[string]any{"id": vv.ID}}
	default:
		return nil
	}
}

// FromJSON is the inverse of ToJSON, used by json.decode. It takes no
// target type: null decodes as Unit, a number as Int (truncated), and
// an object as a Ctor named by its first key with that key's object
// as fields (an empty object decodes as Unit).
func FromJSON(data any) Value {
	switch d := data.(type) {
	case nil:
		return Unit{}
	case bool:
		return Bool(d)
	case float64:
		return Int(int64(d))
	case string:
		return String(d)
	case []any:
		elems := make([]Value, len(d))
		for i, e := range d {
			elems[i] = FromJSON(e)
		}
		return &List{Elems: elems}
	case map[string]any:
		for name, fields := range d {
			fieldMap, _ := fields.(map[string]any)
			vfields := make(map[string]Value, len(fieldMap))
			for k, fv := range fieldMap {
				vfields[k] = FromJSON(fv)
			}
			return &Ctor{Name: name, Fields: vfields}
		}
		return Unit{}
	default:
		return Unit{}
	}
}
