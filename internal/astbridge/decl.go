package astbridge

import (
	"fmt"

	"github.com/lx-lang/lx/internal/ast"
)

// decodeDecl dispatches on the "kind" discriminator, matching the Go
// type name of the ast.Decl it builds.
func decodeDecl(m map[string]any) (ast.Decl, error) {
	switch kindOf(m) {
	case "FnDecl":
		return decodeFnDecl(m)
	case "AliasTypeDecl":
		return decodeAliasTypeDecl(m)
	case "RecordTypeDecl":
		return decodeRecordTypeDecl(m)
	case "SumTypeDecl":
		return decodeSumTypeDecl(m)
	case "EffectDecl":
		return &ast.EffectDecl{Ident: str(m, "ident"), Pos_: decodePos(obj(m, "pos"))}, nil
	case "SchemaDecl":
		return decodeSchemaDecl(m)
	case "FnContractDecl":
		return decodeFnContractDecl(m)
	case "TestDecl":
		return decodeTestDecl(m)
	case "PropertyDecl":
		return decodePropertyDecl(m)
	case "ActorDecl":
		return decodeActorDecl(m)
	default:
		return nil, fmt.Errorf("astbridge: unknown decl kind %q", kindOf(m))
	}
}

func decodeParams(raw []any) ([]ast.Param, error) {
	out := make([]ast.Param, 0, len(raw))
	for _, p := range raw {
		po, ok := p.(map[string]any)
		if !ok {
			continue
		}
		te, err := decodeTypeExprOpt(obj(po, "type"))
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Param{Name: str(po, "name"), Type: te, Pos: decodePos(obj(po, "pos"))})
	}
	return out, nil
}

func decodeFields(raw []any) ([]ast.Field, error) {
	out := make([]ast.Field, 0, len(raw))
	for _, f := range raw {
		fo, ok := f.(map[string]any)
		if !ok {
			continue
		}
		te, err := decodeTypeExprOpt(obj(fo, "type"))
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Field{Name: str(fo, "name"), Type: te, Pos: decodePos(obj(fo, "pos"))})
	}
	return out, nil
}

func decodeFnDecl(m map[string]any) (*ast.FnDecl, error) {
	params, err := decodeParams(arr(m, "params"))
	if err != nil {
		return nil, err
	}
	ret, err := decodeTypeExprOpt(obj(m, "returnType"))
	if err != nil {
		return nil, err
	}
	body, err := decodeBlockOpt(obj(m, "body"))
	if err != nil {
		return nil, err
	}
	return &ast.FnDecl{
		Ident:      str(m, "ident"),
		TypeParams: strs(m, "typeParams"),
		Params:     params,
		ReturnType: ret,
		Effects:    strs(m, "effects"),
		Body:       body,
		Doc:        str(m, "doc"),
		Pos_:       decodePos(obj(m, "pos")),
	}, nil
}

func decodeAliasTypeDecl(m map[string]any) (*ast.AliasTypeDecl, error) {
	target, err := decodeTypeExpr(obj(m, "target"))
	if err != nil {
		return nil, err
	}
	return &ast.AliasTypeDecl{
		Ident:      str(m, "ident"),
		TypeParams: strs(m, "typeParams"),
		Target:     target,
		Doc:        str(m, "doc"),
		Pos_:       decodePos(obj(m, "pos")),
	}, nil
}

func decodeRecordTypeDecl(m map[string]any) (*ast.RecordTypeDecl, error) {
	fields, err := decodeFields(arr(m, "fields"))
	if err != nil {
		return nil, err
	}
	return &ast.RecordTypeDecl{
		Ident:      str(m, "ident"),
		TypeParams: strs(m, "typeParams"),
		Fields:     fields,
		Doc:        str(m, "doc"),
		Pos_:       decodePos(obj(m, "pos")),
	}, nil
}

func decodeSumTypeDecl(m map[string]any) (*ast.SumTypeDecl, error) {
	var variants []ast.Variant
	for _, v := range arr(m, "variants") {
		vo, ok := v.(map[string]any)
		if !ok {
			continue
		}
		fields, err := decodeFields(arr(vo, "fields"))
		if err != nil {
			return nil, err
		}
		variants = append(variants, ast.Variant{Name: str(vo, "name"), Fields: fields, Pos: decodePos(obj(vo, "pos"))})
	}
	return &ast.SumTypeDecl{
		Ident:      str(m, "ident"),
		TypeParams: strs(m, "typeParams"),
		Variants:   variants,
		Doc:        str(m, "doc"),
		Pos_:       decodePos(obj(m, "pos")),
	}, nil
}

func decodeSchemaDecl(m map[string]any) (*ast.SchemaDecl, error) {
	var fields []ast.SchemaField
	for _, f := range arr(m, "fields") {
		fo, ok := f.(map[string]any)
		if !ok {
			continue
		}
		te, err := decodeTypeExprOpt(obj(fo, "type"))
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.SchemaField{
			Name: str(fo, "name"), Type: te, Optional: boolOf(fo, "optional"), Pos: decodePos(obj(fo, "pos")),
		})
	}
	return &ast.SchemaDecl{
		Ident:   str(m, "ident"),
		Version: intOf(m, "version"),
		Fields:  fields,
		Doc:     str(m, "doc"),
		Pos_:    decodePos(obj(m, "pos")),
	}, nil
}

func decodeFnContractDecl(m map[string]any) (*ast.FnContractDecl, error) {
	requires, err := decodeExprs(arr(m, "requires"))
	if err != nil {
		return nil, err
	}
	ensures, err := decodeExprs(arr(m, "ensures"))
	if err != nil {
		return nil, err
	}
	return &ast.FnContractDecl{
		FnName:   str(m, "fnName"),
		Params:   strs(m, "params"),
		Requires: requires,
		Ensures:  ensures,
		Pos_:     decodePos(obj(m, "pos")),
	}, nil
}

func decodeTestDecl(m map[string]any) (*ast.TestDecl, error) {
	body, err := decodeBlockOpt(obj(m, "body"))
	if err != nil {
		return nil, err
	}
	return &ast.TestDecl{Ident: str(m, "ident"), Body: body, Pos_: decodePos(obj(m, "pos"))}, nil
}

func decodePropertyDecl(m map[string]any) (*ast.PropertyDecl, error) {
	var params []ast.PropertyParam
	for _, p := range arr(m, "params") {
		po, ok := p.(map[string]any)
		if !ok {
			continue
		}
		te, err := decodeTypeExprOpt(obj(po, "type"))
		if err != nil {
			return nil, err
		}
		var pred ast.Expr
		if pm := obj(po, "predicate"); pm != nil {
			pred, err = decodeExpr(pm)
			if err != nil {
				return nil, err
			}
		}
		params = append(params, ast.PropertyParam{
			Name: str(po, "name"), Type: te, Predicate: pred, Pos: decodePos(obj(po, "pos")),
		})
	}
	body, err := decodeBlockOpt(obj(m, "body"))
	if err != nil {
		return nil, err
	}
	return &ast.PropertyDecl{
		Ident:      str(m, "ident"),
		Params:     params,
		Body:       body,
		Iterations: intOf(m, "iterations"),
		Pos_:       decodePos(obj(m, "pos")),
	}, nil
}

func decodeActorDecl(m map[string]any) (*ast.ActorDecl, error) {
	initParams, err := decodeParams(arr(m, "initParams"))
	if err != nil {
		return nil, err
	}
	stateFields, err := decodeFields(arr(m, "stateFields"))
	if err != nil {
		return nil, err
	}
	var handlers []ast.Handler
	for _, h := range arr(m, "handlers") {
		ho, ok := h.(map[string]any)
		if !ok {
			continue
		}
		params, err := decodeParams(arr(ho, "params"))
		if err != nil {
			return nil, err
		}
		ret, err := decodeTypeExprOpt(obj(ho, "returnType"))
		if err != nil {
			return nil, err
		}
		body, err := decodeBlockOpt(obj(ho, "body"))
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, ast.Handler{
			MsgCtor:    str(ho, "msgCtor"),
			Params:     params,
			ReturnType: ret,
			Effects:    strs(ho, "effects"),
			Body:       body,
			Pos:        decodePos(obj(ho, "pos")),
		})
	}
	return &ast.ActorDecl{
		Ident:       str(m, "ident"),
		InitParams:  initParams,
		StateFields: stateFields,
		Handlers:    handlers,
		Doc:         str(m, "doc"),
		Pos_:        decodePos(obj(m, "pos")),
	}, nil
}
