package builtins

import (
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// registerLogging registers Log.debug/Log.trace (spec §6), effect
// Log. Both append a structured record through Host.Log, whose
// concrete sink (JSON collector vs. colored text line) is chosen by
// internal/logging (see SPEC_FULL.md §A.2).
func (r *Registry) registerLogging() {
	logEff := effects.NewSet("Log")
	fn := func(fresh *types.FreshGen) *types.Function {
		a := fresh.Flexible()
		return &types.Function{Params: []types.Type{types.TString(), a}, Return: types.TUnit()}
	}

	r.register(&Entry{
		Sig: Sig{Name: "Log.debug", ParamNames: []string{"label", "payload"}, Effects: logEff, Instantiate: fn},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			label, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			host.Log("debug", label, args[1])
			return value.Unit{}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "Log.trace", ParamNames: []string{"label", "payload"}, Effects: logEff, Instantiate: fn},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			label, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			host.Log("trace", label, args[1])
			return value.Unit{}, nil
		},
	})
}
