package builtins

import (
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// registerHigherOrderLists registers map, filter, fold, flat_map,
// zip, and find — the list builtins that invoke a function-value
// argument through Host.Call.
func (r *Registry) registerHigherOrderLists() {
	pure := effects.NewSet()

	r.register(&Entry{
		Sig: Sig{Name: "map", ParamNames: []string{"xs", "f"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a, b := fresh.Flexible(), fresh.Flexible()
				fn := &types.Function{Params: []types.Type{a}, Return: b}
				return &types.Function{Params: []types.Type{types.TList(a), fn}, Return: types.TList(b)}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			out := make([]value.Value, len(l.Elems))
			for i, e := range l.Elems {
				r, err := host.Call(args[1], []value.Value{e})
				if err != nil {
					return nil, err
				}
				out[i] = r
			}
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "filter", ParamNames: []string{"xs", "pred"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a := fresh.Flexible()
				fn := &types.Function{Params: []types.Type{a}, Return: types.TBool()}
				return &types.Function{Params: []types.Type{types.TList(a), fn}, Return: types.TList(a)}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			var out []value.Value
			for _, e := range l.Elems {
				r, err := host.Call(args[1], []value.Value{e})
				if err != nil {
					return nil, err
				}
				if b, ok := r.(value.Bool); ok && bool(b) {
					out = append(out, e)
				}
			}
			if out == nil {
				out = []value.Value{}
			}
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "fold", ParamNames: []string{"xs", "init", "f"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a, acc := fresh.Flexible(), fresh.Flexible()
				fn := &types.Function{Params: []types.Type{acc, a}, Return: acc}
				return &types.Function{Params: []types.Type{types.TList(a), acc, fn}, Return: acc}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			acc := args[1]
			for _, e := range l.Elems {
				acc, err = host.Call(args[2], []value.Value{acc, e})
				if err != nil {
					return nil, err
				}
			}
			return acc, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "flat_map", ParamNames: []string{"xs", "f"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a, b := fresh.Flexible(), fresh.Flexible()
				fn := &types.Function{Params: []types.Type{a}, Return: types.TList(b)}
				return &types.Function{Params: []types.Type{types.TList(a), fn}, Return: types.TList(b)}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			var out []value.Value
			for _, e := range l.Elems {
				r, err := host.Call(args[1], []value.Value{e})
				if err != nil {
					return nil, err
				}
				sub, err := asList(r)
				if err != nil {
					return nil, err
				}
				out = append(out, sub.Elems...)
			}
			if out == nil {
				out = []value.Value{}
			}
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "zip", ParamNames: []string{"xs", "ys"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a, b := fresh.Flexible(), fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TList(a), types.TList(b)}, Return: types.TList(types.TList(a))}
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
			n := len(a.Elems)
			if len(b.Elems) < n {
				n = len(b.Elems)
			}
			out := make([]value.Value, n)
			for i := 0; i < n; i++ {
				out[i] = &value.List{Elems: []value.Value{a.Elems[i], b.Elems[i]}}
			}
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "find", ParamNames: []string{"xs", "pred"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a := fresh.Flexible()
				fn := &types.Function{Params: []types.Type{a}, Return: types.TBool()}
				return &types.Function{Params: []types.Type{types.TList(a), fn}, Return: types.TOption(a)}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			for _, e := range l.Elems {
				r, err := host.Call(args[1], []value.Value{e})
				if err != nil {
					return nil, err
				}
				if b, ok := r.(value.Bool); ok && bool(b) {
					return someValue(e), nil
				}
			}
			return noneValue(), nil
		},
	})
}
