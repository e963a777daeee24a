package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lx-lang/lx/internal/ast"
	"github.com/lx-lang/lx/internal/loader"
	"github.com/lx-lang/lx/internal/value"
)

func newGen(seed uint32) *Generator {
	return NewGenerator(loader.NewSymbolTable(), NewRNG(seed))
}

func TestGenerateInt(t *testing.T) {
	g := newGen(1)
	for i := 0; i < 50; i++ {
		v := g.Generate(&ast.NamedTypeExpr{Name: "Int"}, 0)
		iv, ok := v.(value.Int)
		require.True(t, ok)
		assert.GreaterOrEqual(t, int64(iv), int64(-20))
		assert.LessOrEqual(t, int64(iv), int64(20))
	}
}

func TestGenerateBool(t *testing.T) {
	g := newGen(2)
	v := g.Generate(&ast.NamedTypeExpr{Name: "Bool"}, 0)
	_, ok := v.(value.Bool)
	assert.True(t, ok)
}

func TestGenerateString(t *testing.T) {
	g := newGen(3)
	for i := 0; i < 50; i++ {
		v := g.Generate(&ast.NamedTypeExpr{Name: "String"}, 0)
		s, ok := v.(value.String)
		require.True(t, ok)
		assert.Less(t, len(string(s)), 6)
		for _, r := range string(s) {
			assert.True(t, r >= 'a' && r <= 'z')
		}
	}
}

func TestGenerateListRespectsDepthCap(t *testing.T) {
	g := newGen(4)
	elem := &ast.NamedTypeExpr{Name: "Int"}
	v := g.Generate(&ast.NamedTypeExpr{Name: "List", Args: []ast.TypeExpr{elem}}, g.MaxDepth)
	lst, ok := v.(*value.List)
	require.True(t, ok)
	assert.Empty(t, lst.Elems)
}

func TestGenerateOptionAtDepthCapIsNone(t *testing.T) {
	g := newGen(5)
	inner := &ast.NamedTypeExpr{Name: "Int"}
	v := g.Generate(&ast.NamedTypeExpr{Name: "Option", Args: []ast.TypeExpr{inner}}, g.MaxDepth)
	ctor, ok := v.(*value.Ctor)
	require.True(t, ok)
	assert.Equal(t, "None", ctor.Name)
}

func TestGenerateRecord(t *testing.T) {
	sym := loader.NewSymbolTable()
	decl := &ast.RecordTypeDecl{
		Ident: "demo.Point",
		Fields: []ast.Field{
			{Name: "x", Type: &ast.NamedTypeExpr{Name: "Int"}},
			{Name: "y", Type: &ast.NamedTypeExpr{Name: "Int"}},
		},
	}
	sym.Types["demo.Point"] = decl
	g := NewGenerator(sym, NewRNG(6))

	v := g.Generate(&ast.NamedTypeExpr{Name: "demo.Point"}, 0)
	ctor, ok := v.(*value.Ctor)
	require.True(t, ok)
	assert.Equal(t, "demo.Point", ctor.Name)
	assert.Contains(t, ctor.Fields, "x")
	assert.Contains(t, ctor.Fields, "y")
}

func TestGenerateSumPrefersZeroFieldVariantAtCap(t *testing.T) {
	sym := loader.NewSymbolTable()
	decl := &ast.SumTypeDecl{
		Ident: "demo.Shape",
		Variants: []ast.Variant{
			{Name: "Circle", Fields: []ast.Field{{Name: "r", Type: &ast.NamedTypeExpr{Name: "Int"}}}},
			{Name: "Point", Fields: nil},
		},
	}
	sym.Types["demo.Shape"] = decl
	g := NewGenerator(sym, NewRNG(7))

	v := g.Generate(&ast.NamedTypeExpr{Name: "demo.Shape"}, g.MaxDepth)
	ctor, ok := v.(*value.Ctor)
	require.True(t, ok)
	assert.Equal(t, "Point", ctor.Name)
}

func TestGenerateUnknownNamedTypeIsUnit(t *testing.T) {
	g := newGen(8)
	v := g.Generate(&ast.NamedTypeExpr{Name: "demo.Nope"}, 0)
	assert.Equal(t, value.Unit{}, v)
}
