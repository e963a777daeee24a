package property

import (
	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/loader"
	"github.com/lx-lang/lx/internal/value"
)

// DefaultMaxDepth is the compile-time depth cap spec §4.9 recommends.
const DefaultMaxDepth = 4

const lowercase = "abcdefghijklmnopqrstuvwxyz"

// Generator produces typed random values against a module's symbol
// table, for every type shape spec §4.9 names.
type Generator struct {
	Sym      *loader.SymbolTable
	RNG      *RNG
	MaxDepth int
}

func NewGenerator(sym *loader.SymbolTable, rng *RNG) *Generator {
	return &Generator{Sym: sym, RNG: rng, MaxDepth: DefaultMaxDepth}
}

// Generate produces one value of type te at the given recursion depth.
func (g *Generator) Generate(te ast.TypeExpr, depth int) value.Value {
	switch t := te.(type) {
	case *ast.OptionalTypeExpr:
		return g.genOption(t.Elem, depth)

	case *ast.NamedTypeExpr:
		switch t.Name {
		case "Int":
			return value.Int(g.RNG.IntRange(-20, 20))
		case "Bool":
			return value.Bool(g.RNG.Bool())
		case "String":
			return value.String(g.genString())
		case "Unit":
			return value.Unit{}
		case "List":
			elem := elemOf(t)
			return g.genList(elem, depth)
		case "Option":
			return g.genOption(elemOf(t), depth)
		case "ActorRef":
			// Not meaningfully generatable; spec §4.9 has no rule for it
			// since property parameters are data, not actor references.
			return value.Unit{}
		default:
			return g.genNamed(t, depth)
		}

	default:
		return value.Unit{}
	}
}

func elemOf(t *ast.NamedTypeExpr) ast.TypeExpr {
	if len(t.Args) == 0 {
		return &ast.NamedTypeExpr{Name: "Unit"}
	}
	return t.Args[0]
}

func (g *Generator) genString() string {
	n := g.RNG.Intn(6)
	out := make([]byte, n)
	for i := range out {
		out[i] = lowercase[g.RNG.Intn(len(lowercase))]
	}
	return string(out)
}

// genList: length uniform in [0,3] below the depth cap, capped at 0
// at the limit (spec §4.9).
func (g *Generator) genList(elem ast.TypeExpr, depth int) value.Value {
	if depth >= g.MaxDepth {
		return &value.List{}
	}
	n := g.RNG.IntRange(0, 3)
	elems := make([]value.Value, n)
	for i := range elems {
		elems[i] = g.Generate(elem, depth+1)
	}
	return &value.List{Elems: elems}
}

// genOption: None with probability ~0.3, or at the depth cap; else
// Some of T (spec §4.9).
func (g *Generator) genOption(elem ast.TypeExpr, depth int) value.Value {
	if depth >= g.MaxDepth || g.RNG.Float64() < 0.3 {
		return &value.Ctor{Name: "None", Fields: map[string]value.Value{}}
	}
	return &value.Ctor{Name: "Some", Fields: map[string]value.Value{"value": g.Generate(elem, depth+1)}}
}

// genNamed resolves a user-defined Record/Sum/Alias by qualified name
// and dispatches to the matching generation rule.
func (g *Generator) genNamed(t *ast.NamedTypeExpr, depth int) value.Value {
	if rec, ok := g.Sym.SyntheticRecords[t.Name]; ok {
		return g.genRecord(t.Name, rec.Fields, depth)
	}
	decl, ok := g.Sym.Types[t.Name]
	if !ok {
		return value.Unit{}
	}
	switch d := decl.(type) {
	case *ast.RecordTypeDecl:
		return g.genRecord(t.Name, substituteFields(d.Fields, d.TypeParams, t.Args), depth)
	case *ast.SumTypeDecl:
		return g.genSum(d, t.Args, depth)
	case *ast.AliasTypeDecl:
		return g.Generate(substituteTypeExpr(d.Target, d.TypeParams, t.Args), depth)
	default:
		return value.Unit{}
	}
}

// genRecord generates every field recursively (spec §4.9 "Record:
// recursively over all fields").
func (g *Generator) genRecord(name string, fields []ast.Field, depth int) value.Value {
	out := make(map[string]value.Value, len(fields))
	for _, f := range fields {
		out[f.Name] = g.Generate(f.Type, depth+1)
	}
	return &value.Ctor{Name: name, Fields: out}
}

// genSum: uniformly random variant below the depth cap; at the cap,
// prefer a zero-field variant if any, else variant 0 (spec §4.9).
func (g *Generator) genSum(decl *ast.SumTypeDecl, args []ast.TypeExpr, depth int) value.Value {
	variants := decl.Variants
	if len(variants) == 0 {
		return value.Unit{}
	}
	idx := 0
	if depth >= g.MaxDepth {
		idx = zeroFieldVariant(variants)
	} else {
		idx = g.RNG.Intn(len(variants))
	}
	v := variants[idx]
	out := make(map[string]value.Value, len(v.Fields))
	for _, f := range substituteFields(v.Fields, decl.TypeParams, args) {
		out[f.Name] = g.Generate(f.Type, depth+1)
	}
	return &value.Ctor{Name: v.Name, Fields: out}
}

func zeroFieldVariant(variants []ast.Variant) int {
	for i, v := range variants {
		if len(v.Fields) == 0 {
			return i
		}
	}
	return 0
}

// substituteFields/substituteTypeExpr implement alias/generic
// substitution (spec §4.9 "Alias: substitute type arguments and
// recurse"): replace each TypeVarExpr naming a declared type
// parameter with the corresponding argument from the use site.
func substituteFields(fields []ast.Field, params []string, args []ast.TypeExpr) []ast.Field {
	if len(params) == 0 || len(args) == 0 {
		return fields
	}
	out := make([]ast.Field, len(fields))
	for i, f := range fields {
		out[i] = ast.Field{Name: f.Name, Type: substituteTypeExpr(f.Type, params, args), Pos: f.Pos}
	}
	return out
}

func substituteTypeExpr(te ast.TypeExpr, params []string, args []ast.TypeExpr) ast.TypeExpr {
	if te == nil || len(params) == 0 || len(args) == 0 {
		return te
	}
	switch t := te.(type) {
	case *ast.TypeVarExpr:
		for i, p := range params {
			if p == t.Name && i < len(args) {
				return args[i]
			}
		}
		return t
	case *ast.NamedTypeExpr:
		newArgs := make([]ast.TypeExpr, len(t.Args))
		for i, a := range t.Args {
			newArgs[i] = substituteTypeExpr(a, params, args)
		}
		return &ast.NamedTypeExpr{Name: t.Name, Args: newArgs, Pos_: t.Pos_}
	case *ast.OptionalTypeExpr:
		return &ast.OptionalTypeExpr{Elem: substituteTypeExpr(t.Elem, params, args), Pos_: t.Pos_}
	case *ast.FunctionTypeExpr:
		newParams := make([]ast.TypeExpr, len(t.Params))
		for i, p := range t.Params {
			newParams[i] = substituteTypeExpr(p, params, args)
		}
		return &ast.FunctionTypeExpr{Params: newParams, Return: substituteTypeExpr(t.Return, params, args), Pos_: t.Pos_}
	default:
		return te
	}
}
