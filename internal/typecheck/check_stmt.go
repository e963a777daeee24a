package typecheck

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
)

// checkBlock infers a block's type: the type of its last
// expression-statement, or Unit if the block is empty or its last
// statement is not an expression (spec §4.5/§4.6).
func (bc *bodyChecker) checkBlock(b *ast.Block) types.Type {
	var last types.Type = types.TUnit()
	for i, stmt := range b.Stmts {
		t := bc.checkStmt(stmt)
		if i == len(b.Stmts)-1 {
			if _, ok := stmt.(*ast.ExprStmt); ok {
				last = t
			} else {
				last = types.TUnit()
			}
		}
	}
	return last
}

func (bc *bodyChecker) checkStmt(s ast.Stmt) types.Type {
	switch stmt := s.(type) {
	case *ast.LetStmt:
		vt := bc.checkExpr(stmt.Value)
		if stmt.Type != nil {
			annotated, d := types.ConvertTypeExpr(stmt.Type, types.Scope{}, bc.fresh, bc.lookup)
			if d != nil {
				bc.c.bag.Add(d)
			} else {
				bc.unify(vt, annotated, "let "+stmt.Name, stmt.Pos_)
				vt = annotated
			}
		}
		bc.locals[stmt.Name] = vt
		return types.TUnit()

	case *ast.ReturnStmt:
		var rt types.Type = types.TUnit()
		if stmt.Value != nil {
			rt = bc.checkExpr(stmt.Value)
		}
		bc.unify(rt, bc.retType, "return", stmt.Pos_)
		return types.TUnit()

	case *ast.ExprStmt:
		return bc.checkExpr(stmt.Value)

	case *ast.MatchStmt:
		bc.checkMatchArms(stmt.Scrutinee, stmt.Cases, stmt.Pos_, false)
		return types.TUnit()

	case *ast.AsyncGroupStmt:
		bc.requireEffects(effects.NewSet("Concurrent"), stmt.Pos_, "async_group")
		bc.checkBlock(stmt.Body)
		return types.TUnit()

	case *ast.AsyncStmt:
		bc.requireEffects(effects.NewSet("Concurrent"), stmt.Pos_, "async")
		bc.checkBlock(stmt.Body)
		return types.TUnit()

	default:
		bc.c.errf(s.Position(), diag.TC001, "unrecognized statement")
		return types.TUnit()
	}
}

// checkMatchArms is shared by match-expression and match-statement
// checking: it binds every pattern's variables against the scrutinee
// type, checks exhaustiveness, and, when wantUnify is set, returns the
// unified arm-body type (otherwise Unit).
func (bc *bodyChecker) checkMatchArms(scrutinee ast.Expr, cases []ast.MatchCase, pos ast.Pos, wantUnify bool) types.Type {
	st := bc.checkExpr(scrutinee)
	bc.checkExhaustiveness(st, cases, pos)

	var result types.Type
	for _, mc := range cases {
		armBC := bc.child()
		armBC.bindPattern(mc.Pattern, st)
		bt := armBC.checkBlock(mc.Body)
		if wantUnify {
			if result == nil {
				result = bt
			} else {
				bc.unify(result, bt, "match arm", mc.Pos)
			}
		}
	}
	if result == nil {
		result = types.TUnit()
	}
	return result
}

// bindPattern extends the environment with the variables a pattern
// binds against scrutineeType, per spec §4.5/§4.6 pattern shapes.
func (bc *bodyChecker) bindPattern(p ast.Pattern, scrutineeType types.Type) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		// binds nothing
	case *ast.BindPattern:
		bc.locals[pat.Name] = scrutineeType
	case *ast.CtorPattern:
		vi, ok := bc.c.Variants[pat.Ctor]
		if !ok {
			bc.c.errf(pat.Pos_, diag.TC003, "unknown constructor %q in pattern", pat.Ctor)
			return
		}
		fieldTypes := bc.variantFieldTypes(vi, scrutineeType)
		for _, sub := range pat.Subs {
			ft, ok := fieldTypes[sub.Field]
			if !ok {
				bc.c.errf(sub.Pos, diag.TC003, "constructor %q has no field %q", pat.Ctor, sub.Field)
				ft = bc.fresh.Flexible()
			}
			bc.bindPattern(sub.Pattern, ft)
		}
	}
}

// variantFieldTypes converts a variant's declared field types into
// internal types, substituting the sum type's own type parameters
// with whatever the scrutinee's Constructor type carries as Args.
func (bc *bodyChecker) variantFieldTypes(vi variantInfo, scrutineeType types.Type) map[string]types.Type {
	scope := types.Scope{}
	if con, ok := types.Type(scrutineeType).(*types.Constructor); ok && vi.SumDecl != nil {
		for i, tp := range vi.SumDecl.TypeParams {
			if i < len(con.Args) {
				scope[tp] = con.Args[i]
			}
		}
	}
	out := make(map[string]types.Type, len(vi.Fields))
	for _, f := range vi.Fields {
		if f.Type == nil {
			out[f.Name] = bc.fresh.Flexible()
			continue
		}
		t, d := types.ConvertTypeExpr(f.Type, scope, bc.fresh, bc.lookup)
		if d != nil {
			bc.c.bag.Add(d)
			t = bc.fresh.Flexible()
		}
		out[f.Name] = t
	}
	return out
}
