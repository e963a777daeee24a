package astbridge

import (
	"fmt"

	"github.com/lx-lang/lx/internal/ast"
)

func decodeTypeExprOpt(m map[string]any) (ast.TypeExpr, error) {
	if m == nil {
		return nil, nil
	}
	return decodeTypeExpr(m)
}

func decodeTypeExpr(m map[string]any) (ast.TypeExpr, error) {
	if m == nil {
		return nil, fmt.Errorf("astbridge: missing type expr")
	}
	pos := decodePos(obj(m, "pos"))
	switch kindOf(m) {
	case "NamedTypeExpr":
		var args []ast.TypeExpr
		for _, a := range arr(m, "args") {
			ao, ok := a.(map[string]any)
			if !ok {
				continue
			}
			te, err := decodeTypeExpr(ao)
			if err != nil {
				return nil, err
			}
			args = append(args, te)
		}
		return &ast.NamedTypeExpr{Name: str(m, "name"), Args: args, Pos_: pos}, nil
	case "FunctionTypeExpr":
		var params []ast.TypeExpr
		for _, p := range arr(m, "params") {
			po, ok := p.(map[string]any)
			if !ok {
				continue
			}
			te, err := decodeTypeExpr(po)
			if err != nil {
				return nil, err
			}
			params = append(params, te)
		}
		ret, err := decodeTypeExpr(obj(m, "return"))
		if err != nil {
			return nil, err
		}
		return &ast.FunctionTypeExpr{Params: params, Return: ret, Pos_: pos}, nil
	case "OptionalTypeExpr":
		elem, err := decodeTypeExpr(obj(m, "elem"))
		if err != nil {
			return nil, err
		}
		return &ast.OptionalTypeExpr{Elem: elem, Pos_: pos}, nil
	case "TypeVarExpr":
		return &ast.TypeVarExpr{Name: str(m, "name"), Pos_: pos}, nil
	default:
		return nil, fmt.Errorf("astbridge: unknown type expr kind %q", kindOf(m))
	}
}
