// Package diag provides the shared diagnostic type and error-code
// taxonomy used across every phase of the toolchain: loading,
// resolution, type checking, and evaluation.
package diag

import "fmt"

// Pos is a source location. Zero value means "no location known".
type Pos struct {
	File   string
	Line   int
	Column int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Diagnostic is a single structured error or warning. It carries a
// stable code from the registry in codes.go, a human message, and an
// optional location, and implements the error interface so it can be
// threaded through normal Go control flow.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

func (d *Diagnostic) Error() string {
	if d.File == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	if d.Line == 0 {
		return fmt.Sprintf("%s: %s (%s)", d.Code, d.Message, d.File)
	}
	return fmt.Sprintf("%s: %s (%s:%d:%d)", d.Code, d.Message, d.File, d.Line, d.Column)
}

// New builds a Diagnostic with no location.
func New(code, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)}
}

// At builds a Diagnostic at a given position.
func At(code string, pos Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		File:    pos.File,
		Line:    pos.Line,
		Column:  pos.Column,
	}
}

// Bag accumulates diagnostics without aborting, mirroring the type
// checker's "collect everything, report together" discipline (spec
// §4.5, §7).
type Bag struct {
	items []*Diagnostic
}

func (b *Bag) Add(d *Diagnostic) {
	if d != nil {
		b.items = append(b.items, d)
	}
}

func (b *Bag) Addf(code string, pos Pos, format string, args ...any) {
	b.Add(At(code, pos, format, args...))
}

func (b *Bag) Empty() bool { return len(b.items) == 0 }

func (b *Bag) List() []*Diagnostic { return b.items }

func (b *Bag) Errors() []error {
	errs := make([]error, len(b.items))
	for i, d := range b.items {
		errs[i] = d
	}
	return errs
}
