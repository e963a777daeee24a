package eval

import "github.com/lx-lang/lx/internal/value"

// returnSignal is a private control-flow error used to unwind a
// `return` statement out of nested blocks/expressions back to the
// nearest function call (or async-task/handler boundary), matching
// spec §4.6's "a statement yields either a value or an early return"
// without threading a second return value through every evaluator
// method.
type returnSignal struct{ value value.Value }

func (r *returnSignal) Error() string { return "return outside of a function call" }

func asReturn(err error) (*returnSignal, bool) {
	rs, ok := err.(*returnSignal)
	return rs, ok
}
