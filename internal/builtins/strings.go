package builtins

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

func asString(v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", fmt.Errorf("expected String, got %T", v)
	}
	return string(s), nil
}

// localeTag turns the effect environment's LANG-derived locale into a
// golang.org/x/text language.Tag, defaulting to Und (undetermined,
// locale-neutral) casing rules — this is what gives
// golang.org/x/text/cases a real call site instead of sitting unused
// in the dependency graph (see SPEC_FULL.md §B).
func localeTag(env *effects.Env) language.Tag {
	if env == nil || env.Locale == "" || env.Locale == "C" {
		return language.Und
	}
	tag, err := language.Parse(strings.ReplaceAll(env.Locale, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// registerStrings registers the pure string builtins of spec §6:
// concat, split, join, contains, starts_with, ends_with, trim,
// to_upper, to_lower, replace, index_of, len, slice, at.
func (r *Registry) registerStrings() {
	pure := effects.NewSet()
	strFn := func(n int, ret types.Type) func(*types.FreshGen) *types.Function {
		return func(fresh *types.FreshGen) *types.Function {
			params := make([]types.Type, n)
			for i := range params {
				params[i] = types.TString()
			}
			return &types.Function{Params: params, Return: ret}
		}
	}

	r.register(&Entry{
		Sig:  Sig{Name: "str.concat", ParamNames: []string{"a", "b"}, Effects: pure, Instantiate: strFn(2, types.TString())},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			a, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			b, err := asString(args[1])
			if err != nil {
				return nil, err
			}
			return value.String(a + b), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "str.split", ParamNames: []string{"s", "sep"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TString(), types.TString()}, Return: types.TList(types.TString())}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			s, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			sep, err := asString(args[1])
			if err != nil {
				return nil, err
			}
			parts := strings.Split(s, sep)
			out := make([]value.Value, len(parts))
			for i, p := range parts {
				out[i] = value.String(p)
			}
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "str.join", ParamNames: []string{"xs", "sep"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TList(types.TString()), types.TString()}, Return: types.TString()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			l, err := asList(args[0])
			if err != nil {
				return nil, err
			}
			sep, err := asString(args[1])
			if err != nil {
				return nil, err
			}
			parts := make([]string, len(l.Elems))
			for i, e := range l.Elems {
				s, err := asString(e)
				if err != nil {
					return nil, err
				}
				parts[i] = s
			}
			return value.String(strings.Join(parts, sep)), nil
		},
	})

	r.register(&Entry{
		Sig:  Sig{Name: "str.contains", ParamNames: []string{"s", "sub"}, Effects: pure, Instantiate: strFn(2, types.TBool())},
		Impl: strPred(strings.Contains),
	})
	r.register(&Entry{
		Sig:  Sig{Name: "str.starts_with", ParamNames: []string{"s", "prefix"}, Effects: pure, Instantiate: strFn(2, types.TBool())},
		Impl: strPred(strings.HasPrefix),
	})
	r.register(&Entry{
		Sig:  Sig{Name: "str.ends_with", ParamNames: []string{"s", "suffix"}, Effects: pure, Instantiate: strFn(2, types.TBool())},
		Impl: strPred(strings.HasSuffix),
	})

	r.register(&Entry{
		Sig: Sig{Name: "str.trim", ParamNames: []string{"s"}, Effects: pure, Instantiate: strFn(1, types.TString())},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			s, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			return value.String(strings.TrimSpace(s)), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "str.to_upper", ParamNames: []string{"s"}, Effects: pure, Instantiate: strFn(1, types.TString())},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			s, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			var env *effects.Env
			if host != nil {
				env = host.Env()
			}
			return value.String(cases.Upper(localeTag(env)).String(s)), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "str.to_lower", ParamNames: []string{"s"}, Effects: pure, Instantiate: strFn(1, types.TString())},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			s, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			var env *effects.Env
			if host != nil {
				env = host.Env()
			}
			return value.String(cases.Lower(localeTag(env)).String(s)), nil
		},
	})

	r.register(&Entry{
		Sig:  Sig{Name: "str.replace", ParamNames: []string{"s", "old", "new"}, Effects: pure, Instantiate: strFn(3, types.TString())},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			s, _ := asString(args[0])
			old, _ := asString(args[1])
			nw, _ := asString(args[2])
			return value.String(strings.ReplaceAll(s, old, nw)), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "str.index_of", ParamNames: []string{"s", "sub"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TString(), types.TString()}, Return: types.TInt()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			s, _ := asString(args[0])
			sub, _ := asString(args[1])
			return value.Int(strings.Index(s, sub)), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "str.len", ParamNames: []string{"s"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TString()}, Return: types.TInt()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			s, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			return value.Int(len(s)), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "str.slice", ParamNames: []string{"s", "start", "end"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TString(), types.TInt(), types.TInt()}, Return: types.TString()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			s, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			start := int(args[1].(value.Int))
			end := int(args[2].(value.Int))
			if start < 0 {
				start = 0
			}
			if end > len(s) {
				end = len(s)
			}
			if start > end {
				return nil, fmt.Errorf("str.slice: start %d > end %d", start, end)
			}
			return value.String(s[start:end]), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "str.at", ParamNames: []string{"s", "i"}, Effects: pure,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TString(), types.TInt()}, Return: types.TString()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			s, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			i := int(args[1].(value.Int))
			if i < 0 || i >= len(s) {
				return nil, fmt.Errorf("str.at: index %d out of bounds", i)
			}
			return value.String(s[i : i+1]), nil
		},
	})
}

func strPred(f func(s, sub string) bool) Impl {
	return func(args []value.Value, _ Host) (value.Value, error) {
		a, err := asString(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asString(args[1])
		if err != nil {
			return nil, err
		}
		return value.Bool(f(a, b)), nil
	}
}
