// Package typedast is the checker's output: the same program shape as
// internal/ast, but every expression node carries its deduced
// types.Type and every struct literal records whether it was
// constructed as a managed allocation, so the emitter can choose
// between a stack layout and a heap handle without re-deriving either
// fact (spec.md §6).
package typedast

import (
	"github.com/ash-lang/ashc/internal/ast"
	"github.com/ash-lang/ashc/internal/types"
)

// Program is the fully checked translation unit.
type Program struct {
	Structs   []*ast.StructDef
	Resources []*Resource
	Funcs     []*Func
}

// Resource is a checked resource declaration: the declaration is
// unchanged from internal/ast, with its cleanup block (if any)
// re-emitted as a typed block (spec.md §6: "the list of resources, each
// with its cleanup block re-emitted as a typed block (or absent)").
type Resource struct {
	Decl    *ast.ResourceDef
	Cleanup *Block // nil if the resource declares no cleanup block
}

// Func is a checked function: the declaration is unchanged from
// internal/ast, only the body is replaced with its typed form.
type Func struct {
	Decl *ast.FuncDef
	Body *Block
}

// Block is a typed statement sequence.
type Block struct {
	Stmts []Stmt
}

// Stmt is the typed statement sum. Each case also exists as untyped
// ast.Stmt; the checker rebuilds it here with resolved types attached
// to every nested expression.
type Stmt interface{ stmt() }

// NestedBlockStmt is a bare `{ ... }` block appearing as a statement in
// its own right, introducing its own scope (spec.md §4.4 "Block").
type NestedBlockStmt struct {
	Block *Block
}

func (*NestedBlockStmt) stmt() {}

type LetStmt struct {
	Name string
	Type types.Type
	Init Expr
}

type AssignStmt struct {
	Target Expr
	Value  Expr
}

type ExprStmt struct {
	Expr Expr
}

type ReturnStmt struct {
	Expr Expr // nil for a bare return in a unit-returning function
}

func (*LetStmt) stmt()    {}
func (*AssignStmt) stmt() {}
func (*ExprStmt) stmt()   {}
func (*ReturnStmt) stmt() {}

// Expr is the typed expression sum. Every case carries its deduced
// Type so the emitter never needs to re-run inference.
type Expr interface {
	expr()
	ExprType() types.Type
}

type IntLit struct {
	Value int64
	Type  types.Type
}

type BoolLit struct {
	Value bool
	Type  types.Type
}

// VarRef is a checked use of a bound name.
type VarRef struct {
	Name string
	Type types.Type
}

type BinaryExpr struct {
	Op          ast.BinaryOp
	Left, Right Expr
	Type        types.Type
}

// FieldInit is one field of a checked struct literal.
type FieldInit struct {
	Name  string
	Value Expr
}

// StructLit is a checked struct or resource literal construction.
// Managed is true when this literal allocates on the managed heap,
// either because the source wrote `managed` directly or because it
// sits inside an enclosing managed literal (spec.md §5's propagation
// rule) — both collapse to the same bit here, since the emitter only
// needs to know where the allocation ends up, not why.
type StructLit struct {
	TypeName string
	Managed  bool
	Fields   []FieldInit
	Type     types.Type
}

// FieldAccessExpr is a checked field read. ObjectManaged records whether
// the access is against a managed receiver, so the emitter can pick `.`
// or the managed accessor form. Whether the field's own value was lifted
// to Managed(_) by the propagation rule is reflected only in Type; no
// separate flag records the field's raw declared type.
type FieldAccessExpr struct {
	Object        Expr
	Field         string
	ObjectManaged bool
	Type          types.Type
}

type CallExpr struct {
	Callee string
	Args   []Expr
	Type   types.Type
}

type PrintlnExpr struct {
	Format string
	Args   []Expr
	Type   types.Type
}

func (*IntLit) expr()          {}
func (*BoolLit) expr()         {}
func (*VarRef) expr()          {}
func (*BinaryExpr) expr()      {}
func (*StructLit) expr()       {}
func (*FieldAccessExpr) expr() {}
func (*CallExpr) expr()        {}
func (*PrintlnExpr) expr()     {}

func (e *IntLit) ExprType() types.Type          { return e.Type }
func (e *BoolLit) ExprType() types.Type         { return e.Type }
func (e *VarRef) ExprType() types.Type          { return e.Type }
func (e *BinaryExpr) ExprType() types.Type      { return e.Type }
func (e *StructLit) ExprType() types.Type       { return e.Type }
func (e *FieldAccessExpr) ExprType() types.Type { return e.Type }
func (e *CallExpr) ExprType() types.Type        { return e.Type }
func (e *PrintlnExpr) ExprType() types.Type     { return e.Type }
