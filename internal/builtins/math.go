package builtins

import (
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// registerMath registers abs, min, max (spec §6).
func (r *Registry) registerMath() {
	pure := effects.NewSet()
	binIntFn := func(fresh *types.FreshGen) *types.Function {
		return &types.Function{Params: []types.Type{types.TInt(), types.TInt()}, Return: types.TInt()}
	}
	unaryIntFn := func(fresh *types.FreshGen) *types.Function {
		return &types.Function{Params: []types.Type{types.TInt()}, Return: types.TInt()}
	}

	r.register(&Entry{
		Sig: Sig{Name: "math.abs", ParamNames: []string{"x"}, Effects: pure, Instantiate: unaryIntFn},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			x := int64(args[0].(value.Int))
			if x < 0 {
				x = -x
			}
			return value.Int(x), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "math.min", ParamNames: []string{"a", "b"}, Effects: pure, Instantiate: binIntFn},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			a, b := int64(args[0].(value.Int)), int64(args[1].(value.Int))
			if a < b {
				return value.Int(a), nil
			}
			return value.Int(b), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "math.max", ParamNames: []string{"a", "b"}, Effects: pure, Instantiate: binIntFn},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			a, b := int64(args[0].(value.Int)), int64(args[1].(value.Int))
			if a > b {
				return value.Int(a), nil
			}
			return value.Int(b), nil
		},
	})
}
