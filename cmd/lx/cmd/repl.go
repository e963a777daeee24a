package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/lx-lang/lx/internal/astbridge"
	"github.com/lx-lang/lx/internal/eval"
	"github.com/lx-lang/lx/internal/toolchain"
	"github.com/lx-lang/lx/internal/value"
)

var replCmd = &cobra.Command{
	Use:   "repl <entry-module>",
	Short: "Load a module and evaluate one JSON-encoded expression per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

var replBold = color.New(color.Bold).SprintFunc()
var replDim = color.New(color.Faint).SprintFunc()

// runRepl loads entry once, then reads one JSON-encoded expression node
// per input line (internal/astbridge.DecodeExprLine) and evaluates it
// against the loaded module's functions/builtins — there is no
// concrete source grammar for a line of surface syntax to parse with
// (spec.md's "Deliberately out of scope"), so the JSON AST bridge
// doubles as the repl's line format.
func runRepl(cmd *cobra.Command, args []string) error {
	entryPath := args[0]
	opts, err := loadOptions(cmd, entryPath, nil)
	if err != nil {
		return err
	}
	pl, bag := toolchain.Build(entryPath, opts)
	if err := reportBag(cmd, bag); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", replBold("lx repl"), filepath.Base(entryPath))
	fmt.Fprintln(out, replDim("one JSON expr node per line; Ctrl-D to exit"))

	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	env := eval.NewEnv()
	for {
		input, err := line.Prompt("lx> ")
		if err == io.EOF {
			fmt.Fprintln(out, replDim("goodbye"))
			return nil
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, errorColor(err.Error()))
			continue
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		result, err := evalReplLine(pl.Runtime, env, input)
		if err != nil {
			fmt.Fprintln(out, errorColor(err.Error()))
			continue
		}
		fmt.Fprintln(out, result.String())
	}
}

func evalReplLine(rt *eval.Runtime, env *eval.Env, line string) (value.Value, error) {
	expr, err := astbridge.DecodeExprLine(line)
	if err != nil {
		return nil, err
	}
	return rt.EvalExpr(env, expr)
}
