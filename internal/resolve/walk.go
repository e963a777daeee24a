package resolve

import "github.com/lx-lang/lx/internal/ast"

// Walk resolves every VarRef in every module against idx, setting
// VarRef.Resolved in place (spec §4.2). This is the driver the pure
// Resolve function needs: it must run once, after loading and before
// type checking, over every declaration's body/contracts/tests/
// properties/actor handlers.
func Walk(modules []*ast.Module, idx ModuleIndex) {
	for _, mod := range modules {
		w := &walker{module: mod.Name, imports: mod.Imports, idx: idx}
		for _, d := range mod.Decls {
			w.decl(d)
		}
	}
}

type walker struct {
	module  string
	imports []ast.Import
	idx     ModuleIndex
}

func (w *walker) decl(d ast.Decl) {
	switch decl := d.(type) {
	case *ast.FnDecl:
		w.block(decl.Body)
	case *ast.FnContractDecl:
		for _, e := range decl.Requires {
			w.expr(e)
		}
		for _, e := range decl.Ensures {
			w.expr(e)
		}
	case *ast.TestDecl:
		w.block(decl.Body)
	case *ast.PropertyDecl:
		for _, p := range decl.Params {
			if p.Predicate != nil {
				w.expr(p.Predicate)
			}
		}
		w.block(decl.Body)
	case *ast.ActorDecl:
		for _, h := range decl.Handlers {
			w.block(h.Body)
		}
	}
}

func (w *walker) block(b *ast.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		w.stmt(s)
	}
}

func (w *walker) stmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.LetStmt:
		w.expr(st.Value)
	case *ast.ReturnStmt:
		if st.Value != nil {
			w.expr(st.Value)
		}
	case *ast.ExprStmt:
		w.expr(st.Value)
	case *ast.MatchStmt:
		w.expr(st.Scrutinee)
		for _, c := range st.Cases {
			w.pattern(c.Pattern)
			w.block(c.Body)
		}
	case *ast.AsyncGroupStmt:
		w.block(st.Body)
	case *ast.AsyncStmt:
		w.block(st.Body)
	}
}

func (w *walker) expr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.VarRef:
		ex.Resolved = Resolve(ex.Name, w.module, w.imports, w.idx)
	case *ast.ListLit:
		for _, el := range ex.Elems {
			w.expr(el)
		}
	case *ast.BinaryExpr:
		w.expr(ex.Left)
		w.expr(ex.Right)
	case *ast.CallExpr:
		w.expr(ex.Callee)
		for _, a := range ex.Args {
			w.expr(a.Value)
		}
	case *ast.RecordLit:
		for _, f := range ex.Fields {
			w.expr(f.Value)
		}
	case *ast.FieldAccessExpr:
		w.expr(ex.Target)
	case *ast.IndexExpr:
		w.expr(ex.Target)
		w.expr(ex.Index)
	case *ast.IfExpr:
		w.expr(ex.Cond)
		w.block(ex.Then)
		w.block(ex.Else)
	case *ast.MatchExpr:
		w.expr(ex.Scrutinee)
		for _, c := range ex.Cases {
			w.pattern(c.Pattern)
			w.block(c.Body)
		}
	}
}

func (w *walker) pattern(p ast.Pattern) {
	ctor, ok := p.(*ast.CtorPattern)
	if !ok {
		return
	}
	for _, s := range ctor.Subs {
		w.pattern(s.Pattern)
	}
}
