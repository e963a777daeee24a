package astbridge

import (
	"fmt"

	"github.com/lx-lang/lx/internal/ast"
)

func decodeBlockOpt(m map[string]any) (*ast.Block, error) {
	if m == nil {
		return nil, nil
	}
	return decodeBlock(m)
}

func decodeBlock(m map[string]any) (*ast.Block, error) {
	if m == nil {
		return nil, fmt.Errorf("astbridge: missing block")
	}
	var stmts []ast.Stmt
	for _, s := range arr(m, "stmts") {
		so, ok := s.(map[string]any)
		if !ok {
			continue
		}
		stmt, err := decodeStmt(so)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return &ast.Block{Stmts: stmts, Pos_: decodePos(obj(m, "pos"))}, nil
}

func decodeStmt(m map[string]any) (ast.Stmt, error) {
	pos := decodePos(obj(m, "pos"))
	switch kindOf(m) {
	case "LetStmt":
		te, err := decodeTypeExprOpt(obj(m, "type"))
		if err != nil {
			return nil, err
		}
		v, err := decodeExpr(obj(m, "value"))
		if err != nil {
			return nil, err
		}
		return &ast.LetStmt{Name: str(m, "name"), Type: te, Value: v, Pos_: pos}, nil
	case "ReturnStmt":
		var v ast.Expr
		if vm := obj(m, "value"); vm != nil {
			var err error
			v, err = decodeExpr(vm)
			if err != nil {
				return nil, err
			}
		}
		return &ast.ReturnStmt{Value: v, Pos_: pos}, nil
	case "ExprStmt":
		v, err := decodeExpr(obj(m, "value"))
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Value: v, Pos_: pos}, nil
	case "MatchStmt":
		scrut, err := decodeExpr(obj(m, "scrutinee"))
		if err != nil {
			return nil, err
		}
		cases, err := decodeMatchCases(arr(m, "cases"))
		if err != nil {
			return nil, err
		}
		return &ast.MatchStmt{Scrutinee: scrut, Cases: cases, Pos_: pos}, nil
	case "AsyncGroupStmt":
		body, err := decodeBlock(obj(m, "body"))
		if err != nil {
			return nil, err
		}
		return &ast.AsyncGroupStmt{Body: body, Pos_: pos}, nil
	case "AsyncStmt":
		body, err := decodeBlock(obj(m, "body"))
		if err != nil {
			return nil, err
		}
		return &ast.AsyncStmt{Body: body, Pos_: pos}, nil
	default:
		return nil, fmt.Errorf("astbridge: unknown stmt kind %q", kindOf(m))
	}
}
