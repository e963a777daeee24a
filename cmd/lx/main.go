// Command lx is the Lx toolchain CLI: check/test/run/repl over the
// loader -> resolver -> type checker -> interpreter pipeline
// (internal/toolchain), grounded on the teacher's cmd/ailang/main.go
// entry point but rebuilt over a cobra command tree per SPEC_FULL.md §A.4.
package main

import (
	"fmt"
	"os"

	"github.com/lx-lang/lx/cmd/lx/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
