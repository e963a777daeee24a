package builtins

import (
	"fmt"

	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

func asList(v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, fmt.Errorf("expected List, got %T", v)
	}
	return l, nil
}

// registerLists registers the pure list builtins of spec §6:
// len, append, concat, head, tail, take, drop, reverse, contains,
// find, map, filter, fold, flat_map, zip, enumerate.
func (r *Registry) registerLists() {
	pure := effects.NewSet()

	listOfFresh := func(fresh *types.FreshGen) types.Type { return types.TList(fresh.Flexible()) }

	r.register(&Entry{
		Sig: Sig{Name: "len", ParamNames: []string{"xs"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{listOfFresh(fresh)}, Return: types.TInt()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			return value.Int(len(l.Elems)), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "append", ParamNames: []string{"xs", "x"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				e := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TList(e), e}, Return: types.TList(e)}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			out := append(append([]value.Value{}, l.Elems...), args[1])
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "concat", ParamNames: []string{"xs", "ys"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				e := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TList(e), types.TList(e)}, Return: types.TList(e)}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			a, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			b, err := asList(args[1])
			if err != nil {
				return nil, err
			}
			out := append(append([]value.Value{}, a.Elems...), b.Elems...)
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "head", ParamNames: []string{"xs"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				e := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TList(e)}, Return: types.TOption(e)}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			if len(l.Elems) == 0 {
				return noneValue(), nil
			}
			return someValue(l.Elems[0]), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "tail", ParamNames: []string{"xs"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				e := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TList(e)}, Return: types.TList(e)}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			if len(l.Elems) == 0 {
				return &value.List{}, nil
			}
			return &value.List{Elems: append([]value.Value{}, l.Elems[1:]...)}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "take", ParamNames: []string{"xs", "n"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				e := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TList(e), types.TInt()}, Return: types.TList(e)}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			n := int(args[1].(value.Int))
			if n < 0 {
				n = 0
			}
			if n > len(l.Elems) {
				n = len(l.Elems)
			}
			return &value.List{Elems: append([]value.Value{}, l.Elems[:n]...)}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "drop", ParamNames: []string{"xs", "n"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				e := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TList(e), types.TInt()}, Return: types.TList(e)}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			n := int(args[1].(value.Int))
			if n < 0 {
				n = 0
			}
			if n > len(l.Elems) {
				n = len(l.Elems)
			}
			return &value.List{Elems: append([]value.Value{}, l.Elems[n:]...)}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "reverse", ParamNames: []string{"xs"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				e := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TList(e)}, Return: types.TList(e)}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			out := make([]value.Value, len(l.Elems))
			for i, e := range l.Elems {
				out[len(l.Elems)-1-i] = e
			}
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "contains", ParamNames: []string{"xs", "x"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				e := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TList(e), e}, Return: types.TBool()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			for _, e := range l.Elems {
				if value.Equal(e, args[1]) {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "enumerate", ParamNames: []string{"xs"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				e := fresh.Flexible()
				pair := types.TList(e) // simplified pairing as a 2-element list [index, value]
				_ = pair
				return &types.Function{Params: []types.Type{types.TList(e)}, Return: types.TList(types.TList(e))}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			out := make([]value.Value, len(l.Elems))
			for i, e := range l.Elems {
				out[i] = &value.List{Elems: []value.Value{value.Int(i), e}}
			}
			return &value.List{Elems: out}, nil
		},
	})

	// map/filter/fold/flat_map/find take function-valued arguments
	// (value.FuncRef); the builtins package cannot invoke those on its
	// own, so it calls back through Host.Call, which the interpreter
	// implements (eval.Runtime.Call in internal/eval/runtime.go).
	r.registerHigherOrderLists()
}

func someValue(v value.Value) value.Value {
	return &value.Ctor{Name: "Some", Fields: map[string]value.Value{"value": v}}
}

func noneValue() value.Value {
	return &value.Ctor{Name: "None", Fields: map[string]value.Value{}}
}
