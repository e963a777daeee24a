package builtins

import (
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// registerUnary registers the two unary operators the AST desugars
// to builtin calls (spec §6): __negate (Int -> Int) and __not
// (Bool -> Bool).
func (r *Registry) registerUnary() {
	pure := effects.NewSet()

	r.register(&Entry{
		Sig: Sig{Name: "__negate", ParamNames: []string{"x"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TInt()}, Return: types.TInt()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			n, ok := args[0].(value.Int)
			if !ok {
				return nil, typeMismatch("__negate", "Int", args[0])
			}
			return -n, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "__not", ParamNames: []string{"x"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TBool()}, Return: types.TBool()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			b, ok := args[0].(value.Bool)
			if !ok {
				return nil, typeMismatch("__not", "Bool", args[0])
			}
			return !b, nil
		},
	})
}
