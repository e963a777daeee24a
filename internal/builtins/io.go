package builtins

import (
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
	"github.com/lx-lang/lx/internal/value"
)

// registerIO registers the Io-effect catalog of spec §6: io.*, sys.*,
// time.*, random.*, http.*, tcp.*. spec.md treats their behavior as
// out-of-scope detail once type-checked, but SPEC_FULL.md §B.6 wires
// real implementations against the host so `run` can actually execute
// programs that use them, not just check them.
func (r *Registry) registerIO() {
	ioEff := effects.NewSet("Io")

	strToStr := func(fresh *types.FreshGen) *types.Function {
		return &types.Function{Params: []types.Type{types.TString()}, Return: types.TString()}
	}
	strToBool := func(fresh *types.FreshGen) *types.Function {
		return &types.Function{Params: []types.Type{types.TString()}, Return: types.TBool()}
	}
	strToUnit := func(fresh *types.FreshGen) *types.Function {
		return &types.Function{Params: []types.Type{types.TString()}, Return: types.TUnit()}
	}

	r.register(&Entry{
		Sig: Sig{Name: "io.read_file", ParamNames: []string{"path"}, Effects: ioEff, Instantiate: strToStr},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			path, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("io.read_file: %w", err)
			}
			return value.String(data), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "io.write_file", ParamNames: []string{"path", "contents"}, Effects: ioEff,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TString(), types.TString()}, Return: types.TUnit()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			path, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			contents, err := asString(args[1])
			if err != nil {
				return nil, err
			}
			if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
				return nil, fmt.Errorf("io.write_file: %w", err)
			}
			return value.Unit{}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "io.append_file", ParamNames: []string{"path", "contents"}, Effects: ioEff,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TString(), types.TString()}, Return: types.TUnit()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			path, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			contents, err := asString(args[1])
			if err != nil {
				return nil, err
			}
			f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, fmt.Errorf("io.append_file: %w", err)
			}
			defer f.Close()
			if _, err := f.WriteString(contents); err != nil {
				return nil, fmt.Errorf("io.append_file: %w", err)
			}
			return value.Unit{}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "io.delete_file", ParamNames: []string{"path"}, Effects: ioEff, Instantiate: strToUnit},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			path, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			if err := os.Remove(path); err != nil {
				return nil, fmt.Errorf("io.delete_file: %w", err)
			}
			return value.Unit{}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "io.file_exists", ParamNames: []string{"path"}, Effects: ioEff, Instantiate: strToBool},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			path, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			_, err = os.Stat(path)
			return value.Bool(err == nil), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "io.read_lines", ParamNames: []string{"path"}, Effects: ioEff,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TString()}, Return: types.TList(types.TString())}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			path, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("io.read_lines: %w", err)
			}
			lines := splitLines(string(data))
			out := make([]value.Value, len(lines))
			for i, l := range lines {
				out[i] = value.String(l)
			}
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "sys.args", ParamNames: nil, Effects: ioEff,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: nil, Return: types.TList(types.TString())}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			var raw []string
			if host != nil && host.Env() != nil {
				raw = host.Env().Args
			}
			out := make([]value.Value, len(raw))
			for i, a := range raw {
				out[i] = value.String(a)
			}
			return &value.List{Elems: out}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "sys.env", ParamNames: []string{"name"}, Effects: ioEff,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TString()}, Return: types.TOption(types.TString())}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			name, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			v, ok := os.LookupEnv(name)
			if !ok {
				return noneValue(), nil
			}
			return someValue(value.String(v)), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "sys.cwd", ParamNames: nil, Effects: ioEff,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: nil, Return: types.TString()}
			}},
		Impl: func(args []value.Value, _ Host) (value.Value, error) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("sys.cwd: %w", err)
			}
			return value.String(wd), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "time.now_unix_ms", ParamNames: nil, Effects: ioEff,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: nil, Return: types.TInt()}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			if host != nil && host.Env() != nil && host.Env().FixedClockMS != 0 {
				return value.Int(host.Env().FixedClockMS), nil
			}
			return value.Int(time.Now().UnixMilli()), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "time.sleep_ms", ParamNames: []string{"ms"}, Effects: ioEff,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TInt()}, Return: types.TUnit()}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			if host != nil && host.Env() != nil && host.Env().Sandbox {
				return value.Unit{}, nil
			}
			ms, ok := args[0].(value.Int)
			if !ok {
				return nil, typeMismatch("time.sleep_ms", "Int", args[0])
			}
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return value.Unit{}, nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "random.int", ParamNames: []string{"lo", "hi"}, Effects: ioEff,
			Instantiate: func(fresh *types.FreshGen) *types.Function {
				return &types.Function{Params: []types.Type{types.TInt(), types.TInt()}, Return: types.TInt()}
			}},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			lo, ok1 := args[0].(value.Int)
			hi, ok2 := args[1].(value.Int)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("random.int: expected Int bounds")
			}
			if hi <= lo {
				return nil, fmt.Errorf("random.int: hi (%d) must be > lo (%d)", hi, lo)
			}
			var seed int64
			if host != nil && host.Env() != nil {
				seed = host.Env().Seed
			}
			rng := rand.New(rand.NewSource(seed))
			return value.Int(int64(lo) + rng.Int63n(int64(hi-lo))), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "http.get", ParamNames: []string{"url"}, Effects: ioEff, Instantiate: strToStr},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			if host != nil && host.Env() != nil && host.Env().Sandbox {
				return nil, fmt.Errorf("http.get: network access disabled in sandboxed execution")
			}
			url, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			resp, err := http.Get(url)
			if err != nil {
				return nil, fmt.Errorf("http.get: %w", err)
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("http.get: %w", err)
			}
			return value.String(body), nil
		},
	})

	r.register(&Entry{
		Sig: Sig{Name: "tcp.dial", ParamNames: []string{"address"}, Effects: ioEff, Instantiate: strToBool},
		Impl: func(args []value.Value, host Host) (value.Value, error) {
			if host != nil && host.Env() != nil && host.Env().Sandbox {
				return nil, fmt.Errorf("tcp.dial: network access disabled in sandboxed execution")
			}
			addr, err := asString(args[0])
			if err != nil {
				return nil, err
			}
			conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
			if err != nil {
				return value.Bool(false), nil
			}
			conn.Close()
			return value.Bool(true), nil
		},
	})
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			end := i
			if end > start && s[end-1] == '\r' {
				end--
			}
			lines = append(lines, s[start:end])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
