package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/toolchain"
)

var checkCmd = &cobra.Command{
	Use:   "check <entry-module>",
	Short: "Type-check a module and its imports without running it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(cmd, args[0], args[1:])
	if err != nil {
		return err
	}
	_, bag := toolchain.Build(args[0], opts)
	return reportBag(cmd, bag)
}

// reportBag prints a diagnostic bag in the requested --format and
// returns a non-nil error iff it is non-empty (spec §6 "non-zero on
// any diagnostic error").
func reportBag(cmd *cobra.Command, bag *diag.Bag) error {
	if bag == nil || bag.Empty() {
		return nil
	}
	if formatFl == "json" {
		data, _ := json.Marshal(bag.List())
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		for _, d := range bag.List() {
			fmt.Fprintln(cmd.OutOrStdout(), errorColor(d.Error()))
		}
	}
	return fmt.Errorf("%d diagnostic(s)", len(bag.List()))
}
