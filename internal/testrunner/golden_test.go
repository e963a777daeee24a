package testrunner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/loader"
	"github.com/lx-lang/lx/testutil"
)

// TestRunOutcomesMatchGolden pins the JSON shape Run reports for a
// single passing test, so a field rename in Outcome is caught here
// rather than downstream in a CLI consumer. The golden comparison
// ignores object key order, so reordering Outcome's fields passes.
func TestRunOutcomesMatchGolden(t *testing.T) {
	sym := loader.NewSymbolTable()
	sym.Tests["demo.passes"] = passingTest()

	rt := newRuntime(sym)
	outcomes := Run(rt, sym, 1)

	actual, err := json.Marshal(outcomes)
	require.NoError(t, err)

	testutil.AssertGoldenJSON(t, "testrunner", "outcomes", actual)
}
