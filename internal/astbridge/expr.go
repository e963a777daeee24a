package astbridge

import (
	"fmt"

	"github.com/lx-lang/lx/internal/ast"
)

func decodeExprs(raw []any) ([]ast.Expr, error) {
	out := make([]ast.Expr, 0, len(raw))
	for _, e := range raw {
		eo, ok := e.(map[string]any)
		if !ok {
			continue
		}
		expr, err := decodeExpr(eo)
		if err != nil {
			return nil, err
		}
		out = append(out, expr)
	}
	return out, nil
}

func decodeExpr(m map[string]any) (ast.Expr, error) {
	pos := decodePos(obj(m, "pos"))
	switch kindOf(m) {
	case "IntLit":
		return &ast.IntLit{Value: int64(intOf(m, "value")), Pos_: pos}, nil
	case "BoolLit":
		return &ast.BoolLit{Value: boolOf(m, "value"), Pos_: pos}, nil
	case "StringLit":
		return &ast.StringLit{Value: str(m, "value"), Pos_: pos}, nil
	case "VarRef":
		return &ast.VarRef{Name: str(m, "name"), Resolved: str(m, "resolved"), Pos_: pos}, nil
	case "ListLit":
		elems, err := decodeExprs(arr(m, "elems"))
		if err != nil {
			return nil, err
		}
		return &ast.ListLit{Elems: elems, Pos_: pos}, nil
	case "BinaryExpr":
		left, err := decodeExpr(obj(m, "left"))
		if err != nil {
			return nil, err
		}
		right, err := decodeExpr(obj(m, "right"))
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: str(m, "op"), Left: left, Right: right, Pos_: pos}, nil
	case "CallExpr":
		callee, err := decodeExpr(obj(m, "callee"))
		if err != nil {
			return nil, err
		}
		args, err := decodeArgs(arr(m, "args"))
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Callee: callee, Args: args, Pos_: pos}, nil
	case "RecordLit":
		var fields []ast.FieldInit
		for _, f := range arr(m, "fields") {
			fo, ok := f.(map[string]any)
			if !ok {
				continue
			}
			v, err := decodeExpr(obj(fo, "value"))
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.FieldInit{Name: str(fo, "name"), Value: v, Pos: decodePos(obj(fo, "pos"))})
		}
		return &ast.RecordLit{Ctor: str(m, "ctor"), Fields: fields, Pos_: pos}, nil
	case "FieldAccessExpr":
		target, err := decodeExpr(obj(m, "target"))
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccessExpr{Target: target, Field: str(m, "field"), Pos_: pos}, nil
	case "IndexExpr":
		target, err := decodeExpr(obj(m, "target"))
		if err != nil {
			return nil, err
		}
		index, err := decodeExpr(obj(m, "index"))
		if err != nil {
			return nil, err
		}
		return &ast.IndexExpr{Target: target, Index: index, Pos_: pos}, nil
	case "IfExpr":
		cond, err := decodeExpr(obj(m, "cond"))
		if err != nil {
			return nil, err
		}
		then, err := decodeBlock(obj(m, "then"))
		if err != nil {
			return nil, err
		}
		elseBlk, err := decodeBlockOpt(obj(m, "else"))
		if err != nil {
			return nil, err
		}
		return &ast.IfExpr{Cond: cond, Then: then, Else: elseBlk, Pos_: pos}, nil
	case "MatchExpr":
		scrut, err := decodeExpr(obj(m, "scrutinee"))
		if err != nil {
			return nil, err
		}
		cases, err := decodeMatchCases(arr(m, "cases"))
		if err != nil {
			return nil, err
		}
		return &ast.MatchExpr{Scrutinee: scrut, Cases: cases, Pos_: pos}, nil
	case "HoleExpr":
		te, err := decodeTypeExprOpt(obj(m, "type"))
		if err != nil {
			return nil, err
		}
		return &ast.HoleExpr{Type: te, Pos_: pos}, nil
	default:
		return nil, fmt.Errorf("astbridge: unknown expr kind %q", kindOf(m))
	}
}

func decodeArgs(raw []any) ([]ast.Arg, error) {
	out := make([]ast.Arg, 0, len(raw))
	for _, a := range raw {
		ao, ok := a.(map[string]any)
		if !ok {
			continue
		}
		v, err := decodeExpr(obj(ao, "value"))
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Arg{Name: str(ao, "name"), Value: v, Pos: decodePos(obj(ao, "pos"))})
	}
	return out, nil
}

func decodeMatchCases(raw []any) ([]ast.MatchCase, error) {
	out := make([]ast.MatchCase, 0, len(raw))
	for _, c := range raw {
		co, ok := c.(map[string]any)
		if !ok {
			continue
		}
		pat, err := decodePattern(obj(co, "pattern"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(obj(co, "body"))
		if err != nil {
			return nil, err
		}
		out = append(out, ast.MatchCase{Pattern: pat, Body: body, Pos: decodePos(obj(co, "pos"))})
	}
	return out, nil
}

func decodePattern(m map[string]any) (ast.Pattern, error) {
	if m == nil {
		return nil, fmt.Errorf("astbridge: missing pattern")
	}
	pos := decodePos(obj(m, "pos"))
	switch kindOf(m) {
	case "WildcardPattern":
		return &ast.WildcardPattern{Pos_: pos}, nil
	case "BindPattern":
		return &ast.BindPattern{Name: str(m, "name"), Pos_: pos}, nil
	case "CtorPattern":
		var subs []ast.SubPattern
		for _, s := range arr(m, "subs") {
			so, ok := s.(map[string]any)
			if !ok {
				continue
			}
			sp, err := decodePattern(obj(so, "pattern"))
			if err != nil {
				return nil, err
			}
			subs = append(subs, ast.SubPattern{Field: str(so, "field"), Pattern: sp, Pos: decodePos(obj(so, "pos"))})
		}
		return &ast.CtorPattern{Ctor: str(m, "ctor"), Subs: subs, Pos_: pos}, nil
	default:
		return nil, fmt.Errorf("astbridge: unknown pattern kind %q", kindOf(m))
	}
}
