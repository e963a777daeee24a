// Package align implements call-argument alignment (spec §4.3): given
// a parameter list and a call's positional/named arguments, produce
// an ordered parameter-slot -> argument mapping plus a list of
// misuse issues. align is pure and never evaluates anything; callers
// (the type checker, the interpreter) decide whether issues are fatal.
package align

import "github.com/lx-lang/lx/internal/diag"

// IssueKind enumerates the five misuse shapes spec.md names.
type IssueKind int

const (
	TooManyArguments IssueKind = iota
	UnknownParameter
	DuplicateParameter
	MissingParameter
	PositionalAfterNamed
)

type Issue struct {
	Kind  IssueKind
	Param string // parameter name, when applicable
	Index int    // argument index, when applicable
}

// Code returns the diag error code for this issue kind.
func (k IssueKind) Code() string {
	switch k {
	case TooManyArguments:
		return diag.ARG001
	case UnknownParameter:
		return diag.ARG002
	case DuplicateParameter:
		return diag.ARG003
	case MissingParameter:
		return diag.ARG004
	case PositionalAfterNamed:
		return diag.ARG005
	default:
		return diag.ARG001
	}
}

// Arg is one call argument as seen by align: Name == "" means
// positional.
type Arg struct {
	Name string
}

// Result maps each parameter's slot index to the argument index that
// fills it, or -1 if unfilled.
type Result struct {
	SlotToArg []int
	Issues    []Issue
}

// Align performs the alignment algorithm of spec §4.3:
//   - Positional arguments consume slots in declaration order.
//   - The first named argument locks named mode; a later positional
//     argument is then an error (PositionalAfterNamed).
//   - An unknown name does not consume a slot.
//   - A duplicate (same slot) is an error; the second occurrence is
//     dropped (does not overwrite the first binding).
//   - Any parameter with no filled slot at the end is MissingParameter.
func Align(params []string, args []Arg) Result {
	slotOf := make(map[string]int, len(params))
	for i, p := range params {
		slotOf[p] = i
	}

	res := Result{SlotToArg: make([]int, len(params))}
	for i := range res.SlotToArg {
		res.SlotToArg[i] = -1
	}

	namedMode := false
	nextPositional := 0

	for argIdx, a := range args {
		if a.Name == "" {
			if namedMode {
				res.Issues = append(res.Issues, Issue{Kind: PositionalAfterNamed, Index: argIdx})
				continue
			}
			if nextPositional >= len(params) {
				res.Issues = append(res.Issues, Issue{Kind: TooManyArguments, Index: argIdx})
				continue
			}
			res.SlotToArg[nextPositional] = argIdx
			nextPositional++
			continue
		}

		namedMode = true
		slot, ok := slotOf[a.Name]
		if !ok {
			res.Issues = append(res.Issues, Issue{Kind: UnknownParameter, Param: a.Name, Index: argIdx})
			continue
		}
		if res.SlotToArg[slot] != -1 {
			res.Issues = append(res.Issues, Issue{Kind: DuplicateParameter, Param: a.Name, Index: argIdx})
			continue
		}
		res.SlotToArg[slot] = argIdx
	}

	for i, filled := range res.SlotToArg {
		if filled == -1 {
			res.Issues = append(res.Issues, Issue{Kind: MissingParameter, Param: params[i], Index: i})
		}
	}

	return res
}
