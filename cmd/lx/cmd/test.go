package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lx-lang/lx/internal/testrunner"
	"github.com/lx-lang/lx/internal/toolchain"
)

var testCmd = &cobra.Command{
	Use:   "test <entry-module>",
	Short: "Type-check, then run every test and property",
	Args:  cobra.ExactArgs(1),
	RunE:  runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd, args[0], args[1:])
	if err != nil {
		return err
	}
	pl, bag := toolchain.Build(args[0], opts)
	if err := reportBag(cmd, bag); err != nil {
		return err
	}

	outcomes := testrunner.Run(pl.Runtime, pl.Sym, uint32(opts.EffEnv.Seed))
	failed := 0
	for _, o := range outcomes {
		if !o.Success {
			failed++
		}
	}

	if formatFl == "json" {
		data, _ := json.Marshal(outcomes)
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		for _, o := range outcomes {
			if o.Success {
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s %s\n", o.Kind, o.Name)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s: %s\n", errorColor("FAIL"), o.Kind, o.Name, o.Error)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d test(s)/propert(y/ies) failed", failed, len(outcomes))
	}
	return nil
}
