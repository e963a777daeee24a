package typecheck

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/types"
)

// checkRecordLit resolves Ctor as either a sum-type variant or a
// plain record type, then checks every declared field is supplied
// exactly once with a matching type (spec §4.5 "Record construction").
func (bc *bodyChecker) checkRecordLit(expr *ast.RecordLit) types.Type {
	if vi, ok := bc.c.Variants[expr.Ctor]; ok {
		fresh := bc.fresh
		var conType types.Type
		if vi.SumDecl != nil {
			args := make([]types.Type, len(vi.SumDecl.TypeParams))
			for i := range args {
				args[i] = fresh.Flexible()
			}
			conType = &types.Constructor{Name: vi.SumQName, Args: args}
		} else {
			conType = &types.Constructor{Name: vi.SumQName}
		}
		fieldTypes := bc.variantFieldTypes(vi, conType)
		bc.checkFieldsExact(vi.Fields, fieldTypes, expr.Fields, expr.Ctor, expr.Pos_)
		return conType
	}

	if rec, ok := bc.c.Records[expr.Ctor]; ok {
		fieldTypes := bc.recordFieldTypes(rec)
		bc.checkFieldsExact(rec.Fields, fieldTypes, expr.Fields, expr.Ctor, expr.Pos_)
		args := make([]types.Type, len(rec.TypeParams))
		for i := range args {
			args[i] = bc.fresh.Flexible()
		}
		return &types.Constructor{Name: rec.QName, Args: args}
	}

	bc.c.errf(expr.Pos_, diag.TC003, "unknown constructor %q", expr.Ctor)
	for _, f := range expr.Fields {
		bc.checkExpr(f.Value)
	}
	return bc.fresh.Flexible()
}

func (bc *bodyChecker) recordFieldTypes(rec recordInfo) map[string]types.Type {
	out := make(map[string]types.Type, len(rec.Fields))
	for _, f := range rec.Fields {
		if f.Type == nil {
			out[f.Name] = bc.fresh.Flexible()
			continue
		}
		t, d := types.ConvertTypeExpr(f.Type, types.Scope{}, bc.fresh, bc.lookup)
		if d != nil {
			bc.c.bag.Add(d)
			t = bc.fresh.Flexible()
		}
		out[f.Name] = t
	}
	return out
}

// checkFieldsExact verifies every declared field in declared appears
// exactly once among supplied, with a type matching fieldTypes.
func (bc *bodyChecker) checkFieldsExact(declared []ast.Field, fieldTypes map[string]types.Type, supplied []ast.FieldInit, ctorName string, pos ast.Pos) {
	seen := make(map[string]bool, len(supplied))
	for _, fi := range supplied {
		ft, ok := fieldTypes[fi.Name]
		vt := bc.checkExpr(fi.Value)
		if !ok {
			bc.c.errf(fi.Pos, diag.TC003, "%q has no field %q", ctorName, fi.Name)
			continue
		}
		if seen[fi.Name] {
			bc.c.errf(fi.Pos, diag.TC011, "field %q supplied more than once in %q construction", fi.Name, ctorName)
			continue
		}
		seen[fi.Name] = true
		bc.unify(vt, ft, "field "+fi.Name+" of "+ctorName, fi.Pos)
	}
	for _, f := range declared {
		if !seen[f.Name] {
			bc.c.errf(pos, diag.TC011, "missing field %q in %q construction", f.Name, ctorName)
		}
	}
}

// checkFieldAccess requires the target to resolve to a known record
// or variant constructor type, yielding the field's type with the
// constructor's own type arguments substituted in (spec §4.5).
func (bc *bodyChecker) checkFieldAccess(expr *ast.FieldAccessExpr) types.Type {
	tt := bc.checkExpr(expr.Target)
	pruned := bc.subst.Prune(tt)
	con, ok := pruned.(*types.Constructor)
	if !ok {
		bc.c.errf(expr.Pos_, diag.TC001, "field access on a non-record/variant type")
		return bc.fresh.Flexible()
	}
	if rec, ok := bc.recordByQName(con.Name); ok {
		ft := bc.fieldTypeWithArgs(rec.Fields, rec.TypeParams, con.Args, expr.Field)
		if ft == nil {
			bc.c.errf(expr.Pos_, diag.TC003, "%q has no field %q", con.Name, expr.Field)
			return bc.fresh.Flexible()
		}
		return ft
	}
	if vi, ok := bc.variantByQName(con.Name); ok {
		ft := bc.fieldTypeWithArgs(vi.Fields, vi.TypeParams, con.Args, expr.Field)
		if ft == nil {
			bc.c.errf(expr.Pos_, diag.TC003, "%q has no field %q", con.Name, expr.Field)
			return bc.fresh.Flexible()
		}
		return ft
	}
	bc.c.errf(expr.Pos_, diag.TC003, "unknown record/variant type %q", con.Name)
	return bc.fresh.Flexible()
}

func (bc *bodyChecker) recordByQName(name string) (recordInfo, bool) {
	r, ok := bc.c.Records[name]
	return r, ok
}

func (bc *bodyChecker) variantByQName(sumQName string) (variantInfo, bool) {
	for _, vi := range bc.c.Variants {
		if vi.SumQName == sumQName {
			return vi, true
		}
	}
	return variantInfo{}, false
}

func (bc *bodyChecker) fieldTypeWithArgs(fields []ast.Field, typeParams []string, args []types.Type, name string) types.Type {
	scope := types.Scope{}
	for i, tp := range typeParams {
		if i < len(args) {
			scope[tp] = args[i]
		}
	}
	for _, f := range fields {
		if f.Name != name {
			continue
		}
		if f.Type == nil {
			return bc.fresh.Flexible()
		}
		t, d := types.ConvertTypeExpr(f.Type, scope, bc.fresh, bc.lookup)
		if d != nil {
			bc.c.bag.Add(d)
			return bc.fresh.Flexible()
		}
		return t
	}
	return nil
}
