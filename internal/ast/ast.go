// Package ast defines the shared tagged-union syntax tree for Lx
// modules: declarations, expressions, statements, patterns, and type
// expressions. Every node is a plain struct; "polymorphism" is a Go
// type switch over a closed set of node kinds, never an open subclass
// hierarchy (see DESIGN.md).
package ast

import "github.com/lx-lang/lx/internal/diag"

// Pos locates a node in its source file.
type Pos = diag.Pos

// Module is the root of one source file after parsing.
type Module struct {
	Name    string // dotted module path, e.g. "math.stats"
	Doc     string
	Imports []Import
	Decls   []Decl
	File    string
}

// Import names an imported module and an optional local alias.
type Import struct {
	Path  string
	Alias string
	Pos   Pos
}

// ---- Top-level declarations -----------------------------------------

// Decl is implemented by every top-level declaration kind.
type Decl interface {
	declNode()
	Name() string
	Position() Pos
}

type Param struct {
	Name string
	Type TypeExpr // may be nil if inferred (rare at top level)
	Pos  Pos
}

type FnDecl struct {
	Ident        string
	TypeParams   []string
	Params       []Param
	ReturnType   TypeExpr
	Effects      []string
	Body         *Block
	Doc          string
	Pos_         Pos
}

func (*FnDecl) declNode()        {}
func (d *FnDecl) Name() string   { return d.Ident }
func (d *FnDecl) Position() Pos  { return d.Pos_ }

// Field is a named, typed record/variant field.
type Field struct {
	Name string
	Type TypeExpr
	Pos  Pos
}

type AliasTypeDecl struct {
	Ident      string
	TypeParams []string
	Target     TypeExpr
	Doc        string
	Pos_       Pos
}

func (*AliasTypeDecl) declNode()       {}
func (d *AliasTypeDecl) Name() string  { return d.Ident }
func (d *AliasTypeDecl) Position() Pos { return d.Pos_ }

type RecordTypeDecl struct {
	Ident      string
	TypeParams []string
	Fields     []Field
	Doc        string
	Pos_       Pos
}

func (*RecordTypeDecl) declNode()       {}
func (d *RecordTypeDecl) Name() string  { return d.Ident }
func (d *RecordTypeDecl) Position() Pos { return d.Pos_ }

// Variant is one constructor of a SumTypeDecl.
type Variant struct {
	Name   string
	Fields []Field
	Pos    Pos
}

type SumTypeDecl struct {
	Ident      string
	TypeParams []string
	Variants   []Variant
	Doc        string
	Pos_       Pos
}

func (*SumTypeDecl) declNode()       {}
func (d *SumTypeDecl) Name() string  { return d.Ident }
func (d *SumTypeDecl) Position() Pos { return d.Pos_ }

type EffectDecl struct {
	Ident string
	Pos_  Pos
}

func (*EffectDecl) declNode()       {}
func (d *EffectDecl) Name() string  { return d.Ident }
func (d *EffectDecl) Position() Pos { return d.Pos_ }

// SchemaField is a versioned-schema field, which may be optional.
type SchemaField struct {
	Name     string
	Type     TypeExpr
	Optional bool
	Pos      Pos
}

type SchemaDecl struct {
	Ident   string
	Version int
	Fields  []SchemaField
	Doc     string
	Pos_    Pos
}

func (*SchemaDecl) declNode()       {}
func (d *SchemaDecl) Name() string  { return d.Ident }
func (d *SchemaDecl) Position() Pos { return d.Pos_ }

type FnContractDecl struct {
	FnName   string // qualified or bare name of the FnDecl this contracts
	Params   []string
	Requires []Expr
	Ensures  []Expr
	Pos_     Pos
}

func (*FnContractDecl) declNode()       {}
func (d *FnContractDecl) Name() string  { return d.FnName }
func (d *FnContractDecl) Position() Pos { return d.Pos_ }

type TestDecl struct {
	Ident string
	Body  *Block
	Pos_  Pos
}

func (*TestDecl) declNode()       {}
func (d *TestDecl) Name() string  { return d.Ident }
func (d *TestDecl) Position() Pos { return d.Pos_ }

// PropertyParam is a property-test parameter with an optional typed
// predicate expression (checked to be Bool by the type checker).
type PropertyParam struct {
	Name      string
	Type      TypeExpr
	Predicate Expr // nil if none
	Pos       Pos
}

type PropertyDecl struct {
	Ident      string
	Params     []PropertyParam
	Body       *Block
	Iterations int // 0 means "use default" (50)
	Pos_       Pos
}

func (*PropertyDecl) declNode()       {}
func (d *PropertyDecl) Name() string  { return d.Ident }
func (d *PropertyDecl) Position() Pos { return d.Pos_ }

// Handler is one actor message handler.
type Handler struct {
	MsgCtor    string
	Params     []Param
	ReturnType TypeExpr
	Effects    []string
	Body       *Block
	Pos        Pos
}

type ActorDecl struct {
	Ident       string
	InitParams  []Param
	StateFields []Field
	Handlers    []Handler
	Doc         string
	Pos_        Pos
}

func (*ActorDecl) declNode()       {}
func (d *ActorDecl) Name() string  { return d.Ident }
func (d *ActorDecl) Position() Pos { return d.Pos_ }

// ---- Type expressions -------------------------------------------------

// TypeExpr is the surface syntax for a type annotation, distinct from
// the internal types.Type the checker works with (see internal/types).
type TypeExpr interface {
	typeExprNode()
	Position() Pos
}

type NamedTypeExpr struct {
	Name string
	Args []TypeExpr
	Pos_ Pos
}

func (*NamedTypeExpr) typeExprNode()    {}
func (t *NamedTypeExpr) Position() Pos  { return t.Pos_ }

type FunctionTypeExpr struct {
	Params []TypeExpr
	Return TypeExpr
	Pos_   Pos
}

func (*FunctionTypeExpr) typeExprNode()   {}
func (t *FunctionTypeExpr) Position() Pos { return t.Pos_ }

// OptionalTypeExpr is the `T?` sugar for Option<T>.
type OptionalTypeExpr struct {
	Elem TypeExpr
	Pos_ Pos
}

func (*OptionalTypeExpr) typeExprNode()   {}
func (t *OptionalTypeExpr) Position() Pos { return t.Pos_ }

type TypeVarExpr struct {
	Name string
	Pos_ Pos
}

func (*TypeVarExpr) typeExprNode()   {}
func (t *TypeVarExpr) Position() Pos { return t.Pos_ }
