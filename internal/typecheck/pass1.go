package typecheck

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/diag"
	"github.com/lx-lang/lx/internal/effects"
	"github.com/lx-lang/lx/internal/types"
)

// pass1 collects function/record/variant/actor signatures for every
// module, including synthetic actor signatures (spec §4.5):
//   Actor.spawn(params) -> ActorRef<MsgUnion> [Concurrent]
//   Actor.<MsgName>(actor: ActorRef<MsgUnion>, …fields) -> ReturnType [effects]
func (c *Checker) pass1(modules []*ast.Module) {
	for _, mod := range modules {
		for _, d := range mod.Decls {
			switch decl := d.(type) {
			case *ast.RecordTypeDecl:
				c.collectRecord(mod, decl.Ident, decl.TypeParams, decl.Fields)
			case *ast.SumTypeDecl:
				c.collectSum(mod, decl)
			case *ast.ActorDecl:
				c.collectActor(mod, decl)
			}
		}
		for qname, rec := range c.Sym.SyntheticRecords {
			if _, seen := c.Records[qname]; !seen {
				c.collectRecord(mod, rec.Ident, nil, rec.Fields)
			}
		}
	}

	// Function signatures are collected in a second inner loop so that
	// return/param type conversion can see every record/sum/actor type
	// already registered above, regardless of declaration order within
	// or across modules.
	for _, mod := range modules {
		for _, d := range mod.Decls {
			if fn, ok := d.(*ast.FnDecl); ok {
				c.collectFn(mod, fn)
			}
		}
	}
}

func (c *Checker) collectRecord(mod *ast.Module, ident string, typeParams []string, fields []ast.Field) {
	qname := qualify(mod, ident)
	c.Records[qname] = recordInfo{QName: qname, Fields: fields, TypeParams: typeParams}
}

func (c *Checker) collectSum(mod *ast.Module, decl *ast.SumTypeDecl) {
	qname := qualify(mod, decl.Ident)
	c.SumTypes[qname] = decl
	for _, v := range decl.Variants {
		c.Variants[v.Name] = variantInfo{SumQName: qname, SumDecl: decl, Fields: v.Fields, TypeParams: decl.TypeParams}
	}
}

// collectFn builds a FnSig from a FnDecl's annotated parameter/return
// types, treating the function's own TypeParams as rigid (spec §4.4:
// "rigid (definition-site) type variables").
func (c *Checker) collectFn(mod *ast.Module, fn *ast.FnDecl) {
	fresh := types.NewFreshGen()
	scope := make(types.Scope, len(fn.TypeParams))
	for _, tp := range fn.TypeParams {
		scope[tp] = fresh.Rigid(tp)
	}
	lookup := &typeLookup{c: c, mod: mod}

	params := make([]types.Type, len(fn.Params))
	paramNames := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		paramNames[i] = p.Name
		if p.Type == nil {
			params[i] = fresh.Flexible()
			continue
		}
		t, d := types.ConvertTypeExpr(p.Type, scope, fresh, lookup)
		if d != nil {
			c.bag.Add(d)
			t = fresh.Flexible()
		}
		params[i] = t
	}

	var ret types.Type
	if fn.ReturnType == nil {
		ret = types.TUnit()
	} else {
		t, d := types.ConvertTypeExpr(fn.ReturnType, scope, fresh, lookup)
		if d != nil {
			c.bag.Add(d)
			t = fresh.Flexible()
		}
		ret = t
	}

	effSet := effects.NewSet(fn.Effects...)
	for _, name := range effSet.Sorted() {
		if effects.Baseline.Has(name) {
			continue
		}
		if _, ok := c.Sym.Effects[qualify(mod, name)]; ok {
			continue
		}
		c.errf(fn.Pos_, diag.TC013, "function %q declares undeclared effect %q", fn.Ident, name)
	}
	c.Functions[qualify(mod, fn.Ident)] = &FnSig{
		Decl:       fn,
		Params:     params,
		ParamNames: paramNames,
		Return:     ret,
		Effects:    effSet,
		TypeParams: fn.TypeParams,
		Pure:       effSet.Empty(),
	}
}

// collectActor registers the actor's declared type plus one synthetic
// FnSig per handler, and a synthetic Actor.spawn signature (spec
// §4.5).
func (c *Checker) collectActor(mod *ast.Module, decl *ast.ActorDecl) {
	qname := qualify(mod, decl.Ident)
	c.Actors[qname] = decl

	msgType := &types.Constructor{Name: qname + ".Msg"}
	actorRefType := types.TActorRef(msgType)

	fresh := types.NewFreshGen()
	lookup := &typeLookup{c: c, mod: mod}
	spawnParams := make([]types.Type, len(decl.InitParams))
	for i, p := range decl.InitParams {
		if p.Type == nil {
			spawnParams[i] = fresh.Flexible()
			continue
		}
		t, d := types.ConvertTypeExpr(p.Type, types.Scope{}, fresh, lookup)
		if d != nil {
			c.bag.Add(d)
			t = fresh.Flexible()
		}
		spawnParams[i] = t
	}
	c.Functions["Actor.spawn."+qname] = &FnSig{
		Params:  spawnParams,
		Return:  actorRefType,
		Effects: effects.NewSet("Concurrent"),
	}

	// Register the sum of message-shaped variants so handler parameter
	// binding (spec §4.5 "Actor handler validation") can check field
	// sets against it.
	variants := make([]ast.Variant, len(decl.Handlers))
	for i, h := range decl.Handlers {
		fields := make([]ast.Field, len(h.Params))
		for j, p := range h.Params {
			fields[j] = ast.Field{Name: p.Name, Type: p.Type, Pos: p.Pos}
		}
		variants[i] = ast.Variant{Name: h.MsgCtor, Fields: fields, Pos: h.Pos}
		c.Variants[h.MsgCtor] = variantInfo{SumQName: qname + ".Msg", Fields: fields}

		hfresh := types.NewFreshGen()
		hParams := make([]types.Type, 0, len(h.Params)+1)
		hParamNames := make([]string, 0, len(h.Params)+1)
		hParams = append(hParams, actorRefType)
		hParamNames = append(hParamNames, "actor")
		for _, p := range h.Params {
			var t types.Type
			if p.Type == nil {
				t = hfresh.Flexible()
			} else {
				converted, d := types.ConvertTypeExpr(p.Type, types.Scope{}, hfresh, lookup)
				if d != nil {
					c.bag.Add(d)
					converted = hfresh.Flexible()
				}
				t = converted
			}
			hParams = append(hParams, t)
			hParamNames = append(hParamNames, p.Name)
		}
		var hRet types.Type = types.TUnit()
		if h.ReturnType != nil {
			t, d := types.ConvertTypeExpr(h.ReturnType, types.Scope{}, hfresh, lookup)
			if d != nil {
				c.bag.Add(d)
				t = hfresh.Flexible()
			}
			hRet = t
		}
		c.Functions["Actor."+h.MsgCtor] = &FnSig{
			Params:     hParams,
			ParamNames: hParamNames,
			Return:     hRet,
			Effects:    effects.NewSet(h.Effects...),
		}
	}
	c.SumTypes[qname+".Msg"] = &ast.SumTypeDecl{Ident: qname + ".Msg", Variants: variants, Pos_: decl.Pos_}
}

// typeLookup adapts the loader's symbol table (plus this checker's
// own record/actor tables, for types registered only during Pass 1
// itself) to types.NamedTypeLookup.
type typeLookup struct {
	c   *Checker
	mod *ast.Module
}

func (l *typeLookup) LookupType(qualifiedName string) (arity int, isAlias bool, aliasTarget types.Type, aliasParams []string, ok bool) {
	if rec, ok := l.c.Records[qualifiedName]; ok {
		return len(rec.TypeParams), false, nil, nil, true
	}
	if sumDecl, ok := l.c.SumTypes[qualifiedName]; ok {
		return len(sumDecl.TypeParams), false, nil, nil, true
	}
	if decl, ok := l.c.Sym.Types[qualifiedName]; ok {
		if alias, isA := decl.(*ast.AliasTypeDecl); isA {
			fresh := types.NewFreshGen()
			scope := make(types.Scope, len(alias.TypeParams))
			for _, tp := range alias.TypeParams {
				scope[tp] = fresh.Rigid(tp)
			}
			target, d := types.ConvertTypeExpr(alias.Target, scope, fresh, l)
			if d != nil {
				return 0, false, nil, nil, false
			}
			return len(alias.TypeParams), true, target, alias.TypeParams, true
		}
		return 0, false, nil, nil, true
	}
	return 0, false, nil, nil, false
}
