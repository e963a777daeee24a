package typecheck

import (
	"strings"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
)

// checkDocSpec implements spec §4.5 "Doc-spec validation": a doc
// comment beginning with `spec:` (case-insensitive) carries a
// key-value block whose `param:` entries must name exactly the
// declaration's parameter/field list.
func (c *Checker) checkDocSpec(mod *ast.Module, d ast.Decl) {
	doc, names, qname := docAndParamNames(mod, d)
	if doc == "" {
		return
	}
	trimmed := strings.TrimSpace(doc)
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "spec:") {
		return
	}

	declared := make(map[string]bool)
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		lowerLine := strings.ToLower(line)
		if !strings.HasPrefix(lowerLine, "param:") {
			continue
		}
		rest := strings.TrimSpace(line[len("param:"):])
		kv := strings.SplitN(rest, "=", 2)
		name := strings.TrimSpace(kv[0])
		if name == "" {
			c.errf(d.Position(), diag.TC011, "%s: malformed doc-spec param entry %q", qname, line)
			continue
		}
		declared[name] = true
		if !contains(names, name) {
			c.errf(d.Position(), diag.TC011, "%s: doc-spec references unknown parameter/field %q", qname, name)
		}
	}
	for _, name := range names {
		if !declared[name] {
			c.errf(d.Position(), diag.TC011, "%s: doc-spec is missing parameter/field %q", qname, name)
		}
	}
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}

// docAndParamNames extracts a declaration's doc comment and the list
// of names ("spec:" should enumerate) — function parameters, or
// record/variant field names.
func docAndParamNames(mod *ast.Module, d ast.Decl) (doc string, names []string, qname string) {
	qname = qualify(mod, d.Name())
	switch decl := d.(type) {
	case *ast.FnDecl:
		doc = decl.Doc
		for _, p := range decl.Params {
			names = append(names, p.Name)
		}
	case *ast.RecordTypeDecl:
		doc = decl.Doc
		for _, f := range decl.Fields {
			names = append(names, f.Name)
		}
	case *ast.SumTypeDecl:
		doc = decl.Doc
	case *ast.AliasTypeDecl:
		doc = decl.Doc
	case *ast.ActorDecl:
		doc = decl.Doc
		for _, p := range decl.InitParams {
			names = append(names, p.Name)
		}
	case *ast.SchemaDecl:
		doc = decl.Doc
		for _, f := range decl.Fields {
			names = append(names, f.Name)
		}
	}
	return doc, names, qname
}
