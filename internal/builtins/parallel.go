package builtins

import (
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// registerParallel registers parallel_map/parallel_fold/
// parallel_for_each (spec §6): pure, but constrained to pure function
// arguments, so the implementation is free to parallelize under
// identical observable semantics (spec §5). This implementation
// evaluates sequentially, which is always a valid specialization of
// that freedom.
func (r *Registry) registerParallel() {
	pure := effects.NewSet()

	r.register(&Entry{
		Sig: Sig{Name: "parallel_map", ParamNames: []string{"xs", "f"}, Effects: pure, PureArgBuiltin: true,
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
		Sig: Sig{Name: "parallel_fold", ParamNames: []string{"xs", "init", "f"}, Effects: pure, PureArgBuiltin: true,
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
		Sig: Sig{Name: "parallel_for_each", ParamNames: []string{"xs", "f"}, Effects: pure, PureArgBuiltin: true,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a := fresh.Flexible()
				fn := &types.Function{Params: []types.Type{a}, Return: types.TUnit()}
				return &types.Function{Params: []types.Type{types.TList(a), fn}, Return: types.TUnit()}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			for _, e := range l.Elems {
				if _, err := host.Call(args[1], []value.Value{e}); err != nil {
					return nil, err
				}
			}
			return value.Unit{}, nil
		},
	})
}
