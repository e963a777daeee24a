package builtins

import (
	"fmt"

	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// registerAsserts registers assert/test.assert_equal (spec §6, §4.10):
// both fail the enclosing test/property by returning a Go error the
// interpreter turns into an EVA diagnostic, rather than panicking.
func (r *Registry) registerAsserts() {
	pure := effects.NewSet()

	r.register(&Entry{
		Sig: Sig{Name: "assert", ParamNames: []string{"cond"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TBool()}, Return: types.TUnit()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			b, ok := args[0].(value.Bool)
			if !ok {
				return nil, typeMismatch("assert", "Bool", args[0])
			}
			if !bool(b) {
				return nil, fmt.Errorf("assertion failed")
			}
			return value.Unit{}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "test.assert_equal", ParamNames: []string{"actual", "expected"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a := fresh.Flexible()
				return &types.Function{Params: []types.Type{a, a}, Return: types.TUnit()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			if !value.Equal(args[0], args[1]) {
				return nil, fmt.Errorf("assert_equal failed: %s != %s", args[0].String(), args[1].String())
			}
			return value.Unit{}, nil
		},
	})
}

func typeMismatch(builtin, want string, got value.Value) error {
	return fmt.Errorf("%s: expected %s, got %T", builtin, want, got)
}
