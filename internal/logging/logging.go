// Package logging backs Log.debug/Log.trace and call tracing (spec
// §4.6 "Logging"): either a structured JSON record or a colored text
// line, matching the teacher's fatih/color-based console output
// (internal/repl/repl.go, cmd/ailang/main.go).
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/lx-lang/lx/internal/value"
)

// Record is the structured log record shape of spec §6: `{ kind:
// "log", ts, level, label, payload }`.
type Record struct {
	Kind    string `json:"kind"`
	TS      string `json:"ts"`
	Level   string `json:"level"`
	Label   string `json:"label"`
	Payload any    `json:"payload"`
}

// Sink receives log records and call-trace lines.
type Sink interface {
	Log(level, label string, payload value.Value)
	Trace(depth int, fnName string, args []value.Value, result value.Value)
}

// TextSink writes colored human-readable lines (the default, matching
// the teacher's console presentation).
type TextSink struct {
	Out io.Writer

	debugColor func(a ...any) string
	traceColor func(a ...any) string
	callColor  func(a ...any) string
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{
		Out:        w,
		debugColor: color.New(color.FgCyan).SprintFunc(),
		traceColor: color.New(color.FgYellow).SprintFunc(),
		callColor:  color.New(color.FgGreen).SprintFunc(),
	}
}

func (s *TextSink) Log(level, label string, payload value.Value) {
	var colored func(a ...any) string
	if level == "trace" {
		colored = s.traceColor
	} else {
		colored = s.debugColor
	}
	fmt.Fprintf(s.Out, "[%s] %s: %s\n", colored(level), label, payload.String())
}

func (s *TextSink) Trace(depth int, fnName string, args []value.Value, result value.Value) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	argStrs := make([]string, len(args))
	for i, a := range args {
		argStrs[i] = a.String()
	}
	fmt.Fprintf(s.Out, "%s%s %s(%v) -> %s\n", indent, s.callColor("call"), fnName, argStrs, result.String())
}

// JSONSink writes one Record per line (spec §6's `--format=json`).
type JSONSink struct {
	Out   io.Writer
	Clock func() string // overridable for deterministic tests
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{Out: w, Clock: func() string { return time.Now().UTC().Format(time.RFC3339Nano) }}
}

func (s *JSONSink) Log(level, label string, payload value.Value) {
	rec := Record{Kind: "log", TS: s.Clock(), Level: level, Label: label, Payload: value.ToJSON(payload)}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	fmt.Fprintln(s.Out, string(data))
}

func (s *JSONSink) Trace(depth int, fnName string, args []value.Value, result value.Value) {
	argsJSON := make([]any, len(args))
	for i, a := range args {
		argsJSON[i] = value.ToJSON(a)
	}
	rec := map[string]any{
		"kind":   "trace",
		"ts":     s.Clock(),
		"depth":  depth,
		"fn":     fnName,
		"args":   argsJSON,
		"result": value.ToJSON(result),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	fmt.Fprintln(s.Out, string(data))
}
