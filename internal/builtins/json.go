package builtins

import (
	"encoding/json"
	"fmt"

	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// registerJSON registers json.encode/decode (spec §6), using the
// sorted-key deterministic marshal shared with diagnostic output so
// encode(v) is reproducible across runs.
func (r *Registry) registerJSON() {
	pure := effects.NewSet()

	r.register(&Entry{
		Sig: Sig{Name: "json.encode", ParamNames: []string{"v"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a := fresh.Flexible()
				return &types.Function{Params: []types.Type{a}, Return: types.TString()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			data, err := diag.MarshalDeterministic(value.ToJSON(args[0]))
			if err != nil {
				return nil, fmt.Errorf("json.encode: %w", err)
			}
			return value.String(string(data)), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "json.decode", ParamNames: []string{"s"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				a := fresh.Flexible()
				return &types.Function{Params: []types.Type{types.TString()}, Return: a}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			s, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			var generic any
			if err := json.Unmarshal([]byte(s), &generic); err != nil {
				return nil, fmt.Errorf("json.decode: %w", err)
			}
			return value.FromJSON(generic), nil
		},
	})
}
