package builtins

import (
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// registerConcurrency registers Concurrent.flush/step/stop (spec §6,
// §4.7), effect Concurrent.
func (r *Registry) registerConcurrency() {
	conc := effects.NewSet("Concurrent")

	r.register(&Entry{
		Sig: Sig{Name: "Concurrent.flush", ParamNames: nil, Effects: conc,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: nil, Return: types.TInt()}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			n, err := host.ConcurrentFlush()
			if err != nil {
				return nil, err
			}
			return value.Int(n), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "Concurrent.step", ParamNames: nil, Effects: conc,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: nil, Return: types.TBool()}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			drained, err := host.ConcurrentStep()
			if err != nil {
				return nil, err
			}
			return value.Bool(drained), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "Concurrent.stop", ParamNames: []string{"ref"}, Effects: conc,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				m := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TActorRef(m)}, Return: types.TBool()}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			return value.Bool(host.ConcurrentStop(args[0])), nil
		},
	})
}
