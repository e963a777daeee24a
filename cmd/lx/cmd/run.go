package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lx-lang/lx/internal/toolchain"
	"github.com/lx-lang/lx/internal/value"
)

var runCmd = &cobra.Command{
	Use:   "run <entry-module> <qualifiedFn> [args...]",
	Short: "Type-check, then invoke one qualified function",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	entryPath, qualifiedFn, rest := args[0], args[1], args[2:]

	opts, err := loadOptions(cmd, entryPath, rest)
	if err != nil {
		return err
	}
	pl, bag := toolchain.Build(entryPath, opts)
	if err := reportBag(cmd, bag); err != nil {
		return err
	}

	callArgs := make([]value.Value, len(rest))
	for i, a := range rest {
		callArgs[i] = parseArg(a)
	}

	result, err := pl.Runtime.CallByName(qualifiedFn, callArgs)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.String())
	return nil
}

// parseArg converts one CLI argument into a runtime value: an integer
// literal, "true"/"false", or else a bare string, the simplest
// convention the CLI can apply without a concrete argument grammar.
func parseArg(s string) value.Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.Int(n)
	}
	if s == "true" {
		return value.Bool(true)
	}
	if s == "false" {
		return value.Bool(false)
	}
	return value.String(s)
}
