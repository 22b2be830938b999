// Package ast defines the tagged node hierarchy for the source language:
// expression and statement variants, each owning its start token and its
// children outright (no back-edges, no cycles).
package ast

import (
	"fmt"

	"github.com/conchlang/conch/internal/token"
)

// Position is an alias for token.Position.
type Position = token.Position

// Node is the root interface every AST entity satisfies.
type Node interface {
	Pos() Position
	StartToken() token.Token
	String() string
}

// base carries the start token every node owns, for diagnostics and for
// Pos(). Embedding it keeps every concrete node's Pos()/StartToken() one
// line instead of a hand-written method per type.
type base struct {
	tok token.Token
}

func (b base) Pos() Position            { return b.tok.Pos() }
func (b base) StartToken() token.Token  { return b.tok }

// Expr is satisfied by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is satisfied by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr is satisfied by every type-expression node (the "Type
// expression" variant family).
type TypeExpr interface {
	Node
	typeNode()
	Nullable() bool
}

// File is the root of a parsed compilation unit: an ordered statement list.
type File struct {
	base
	Stmts []Stmt
}

func NewFile(tok token.Token, stmts []Stmt) *File {
	return &File{base: base{tok}, Stmts: stmts}
}
func (f *File) String() string { return fmt.Sprintf("File{Stmts: %d}", len(f.Stmts)) }

// ---- Expressions --------------------------------------------------------

// Identifier is a bare name reference.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(tok token.Token) *Identifier { return &Identifier{base{tok}, tok.Literal} }
func (i *Identifier) exprNode()                 {}
func (i *Identifier) String() string            { return fmt.Sprintf("Identifier(%s)", i.Name) }

// IntLiteral is a signed, unsigned, or size integer literal, tagged by its
// originating token kind so the analyzer knows which of the three integer
// families it belongs to.
type IntLiteral struct {
	base
	Kind  token.Kind
	Value int64
}

func NewIntLiteral(tok token.Token, value int64) *IntLiteral {
	return &IntLiteral{base{tok}, tok.Kind, value}
}
func (n *IntLiteral) exprNode() {}
func (n *IntLiteral) String() string {
	return fmt.Sprintf("IntLiteral(%s, %d)", n.Kind, n.Value)
}

// ByteLiteral is a character literal promoted to its single-byte value.
type ByteLiteral struct {
	base
	Value byte
}

func NewByteLiteral(tok token.Token, value byte) *ByteLiteral { return &ByteLiteral{base{tok}, value} }
func (n *ByteLiteral) exprNode()                              {}
func (n *ByteLiteral) String() string                         { return fmt.Sprintf("ByteLiteral(%d)", n.Value) }

// FloatLiteral is an f64 literal.
type FloatLiteral struct {
	base
	Value float64
}

func NewFloatLiteral(tok token.Token, value float64) *FloatLiteral {
	return &FloatLiteral{base{tok}, value}
}
func (n *FloatLiteral) exprNode()      {}
func (n *FloatLiteral) String() string { return fmt.Sprintf("FloatLiteral(%v)", n.Value) }

// BoolLiteral is `true`/`false`.
type BoolLiteral struct {
	base
	Value bool
}

func NewBoolLiteral(tok token.Token, value bool) *BoolLiteral { return &BoolLiteral{base{tok}, value} }
func (n *BoolLiteral) exprNode()                              {}
func (n *BoolLiteral) String() string                         { return fmt.Sprintf("BoolLiteral(%v)", n.Value) }

// StringLiteral holds the promoted (quote-stripped) string value.
type StringLiteral struct {
	base
	Value string
}

func NewStringLiteral(tok token.Token, value string) *StringLiteral {
	return &StringLiteral{base{tok}, value}
}
func (n *StringLiteral) exprNode()      {}
func (n *StringLiteral) String() string { return fmt.Sprintf("StringLiteral(%q)", n.Value) }

// NilLiteral is the `nil` literal.
type NilLiteral struct{ base }

func NewNilLiteral(tok token.Token) *NilLiteral { return &NilLiteral{base{tok}} }
func (n *NilLiteral) exprNode()                 {}
func (n *NilLiteral) String() string            { return "NilLiteral" }

// ContinueLiteral is `continue` used in expression position (a loop-control
// expression).
type ContinueLiteral struct{ base }

func NewContinueLiteral(tok token.Token) *ContinueLiteral { return &ContinueLiteral{base{tok}} }
func (n *ContinueLiteral) exprNode()                      {}
func (n *ContinueLiteral) String() string                 { return "ContinueLiteral" }

// PrefixExpr is a unary operator applied to a single operand: `!`, `~`, `-`,
// or `typeof`.
type PrefixExpr struct {
	base
	Op      token.Kind
	Operand Expr
}

func NewPrefixExpr(tok token.Token, op token.Kind, operand Expr) *PrefixExpr {
	return &PrefixExpr{base{tok}, op, operand}
}
func (n *PrefixExpr) exprNode()      {}
func (n *PrefixExpr) String() string { return fmt.Sprintf("PrefixExpr(%s)", n.Op) }

// InfixExpr is a binary operator with left/right operands, covering
// arithmetic, bitwise, comparison, logical, range, membership, and
// null-coalescing families.
type InfixExpr struct {
	base
	Left  Expr
	Op    token.Kind
	Right Expr
}

func NewInfixExpr(tok token.Token, left Expr, op token.Kind, right Expr) *InfixExpr {
	return &InfixExpr{base{tok}, left, op, right}
}
func (n *InfixExpr) exprNode()      {}
func (n *InfixExpr) String() string { return fmt.Sprintf("InfixExpr(%s)", n.Op) }

// AssignmentExpr is `lhs <op>= rhs` for op in {"", +, -, *, /, %, &, |, ^, <<, >>, ~}.
type AssignmentExpr struct {
	base
	LHS Expr
	Op  token.Kind
	RHS Expr
}

func NewAssignmentExpr(tok token.Token, lhs Expr, op token.Kind, rhs Expr) *AssignmentExpr {
	return &AssignmentExpr{base{tok}, lhs, op, rhs}
}
func (n *AssignmentExpr) exprNode()      {}
func (n *AssignmentExpr) String() string { return fmt.Sprintf("AssignmentExpr(%s)", n.Op) }

// CallArg is a single call argument, optionally passed by reference.
type CallArg struct {
	IsRef bool
	Expr  Expr
}

// CallExpr is a function/method invocation with an ordered argument list and
// an optional explicit generic argument list introduced by `with <...>`.
type CallExpr struct {
	base
	Callee   Expr
	Args     []CallArg
	Generics []TypeExpr
}

func NewCallExpr(tok token.Token, callee Expr, args []CallArg, generics []TypeExpr) *CallExpr {
	return &CallExpr{base{tok}, callee, args, generics}
}
func (n *CallExpr) exprNode()      {}
func (n *CallExpr) String() string { return fmt.Sprintf("CallExpr(args=%d)", len(n.Args)) }

// IndexExpr is `array[index]`.
type IndexExpr struct {
	base
	Array Expr
	Index Expr
}

func NewIndexExpr(tok token.Token, array, index Expr) *IndexExpr {
	return &IndexExpr{base{tok}, array, index}
}
func (n *IndexExpr) exprNode()      {}
func (n *IndexExpr) String() string { return "IndexExpr" }

// NamespaceExpr is `outer::inner` scope resolution.
type NamespaceExpr struct {
	base
	Outer Expr
	Inner *Identifier
}

func NewNamespaceExpr(tok token.Token, outer Expr, inner *Identifier) *NamespaceExpr {
	return &NamespaceExpr{base{tok}, outer, inner}
}
func (n *NamespaceExpr) exprNode()      {}
func (n *NamespaceExpr) String() string { return fmt.Sprintf("NamespaceExpr(::%s)", n.Inner.Name) }

// IfExpr is `if (cond) consequence [else alternate]`. Both branches are
// statements (typically blocks) so If can appear either as a statement or,
// via its trailing expression, in tail (value-producing) position.
type IfExpr struct {
	base
	Cond        Expr
	Consequence Stmt
	Alternate   Stmt
}

func NewIfExpr(tok token.Token, cond Expr, cons, alt Stmt) *IfExpr {
	return &IfExpr{base{tok}, cond, cons, alt}
}
func (n *IfExpr) exprNode()      {}
func (n *IfExpr) String() string { return "IfExpr" }

// MatchArm is one `pattern => dispatch` arm.
type MatchArm struct {
	Pattern  Expr
	Dispatch Stmt
}

// MatchExpr is `match scrutinee { arm, ... } [else dispatch]`.
type MatchExpr struct {
	base
	Scrutinee Expr
	Arms      []MatchArm
	CatchAll  Stmt
}

func NewMatchExpr(tok token.Token, scrutinee Expr, arms []MatchArm, catchAll Stmt) *MatchExpr {
	return &MatchExpr{base{tok}, scrutinee, arms, catchAll}
}
func (n *MatchExpr) exprNode()      {}
func (n *MatchExpr) String() string { return fmt.Sprintf("MatchExpr(arms=%d)", len(n.Arms)) }

// ForCapture is one `[ref] identifier` capture binding in a for-loop header,
// or the `_` discard capture.
type ForCapture struct {
	IsRef      bool
	Identifier string
	Discard    bool
}

// ForExpr is `for (iter, ...) [: (cap, ...)] block [else dispatch]`.
type ForExpr struct {
	base
	Iterables []Expr
	Captures  []ForCapture
	Body      *BlockStmt
	Else      Stmt
}

func NewForExpr(tok token.Token, iterables []Expr, captures []ForCapture, body *BlockStmt, elseStmt Stmt) *ForExpr {
	return &ForExpr{base{tok}, iterables, captures, body, elseStmt}
}
func (n *ForExpr) exprNode()      {}
func (n *ForExpr) String() string { return "ForExpr" }

// WhileExpr is `while (cond) [: (cont)] block [else dispatch]`.
type WhileExpr struct {
	base
	Cond         Expr
	Continuation Expr
	Body         *BlockStmt
	Else         Stmt
}

func NewWhileExpr(tok token.Token, cond, cont Expr, body *BlockStmt, elseStmt Stmt) *WhileExpr {
	return &WhileExpr{base{tok}, cond, cont, body, elseStmt}
}
func (n *WhileExpr) exprNode()      {}
func (n *WhileExpr) String() string { return "WhileExpr" }

// DoWhileExpr is `do block while (cond)`.
type DoWhileExpr struct {
	base
	Body *BlockStmt
	Cond Expr
}

func NewDoWhileExpr(tok token.Token, body *BlockStmt, cond Expr) *DoWhileExpr {
	return &DoWhileExpr{base{tok}, body, cond}
}
func (n *DoWhileExpr) exprNode()      {}
func (n *DoWhileExpr) String() string { return "DoWhileExpr" }

// LoopExpr is `loop block`, an infinite loop.
type LoopExpr struct {
	base
	Body *BlockStmt
}

func NewLoopExpr(tok token.Token, body *BlockStmt) *LoopExpr { return &LoopExpr{base{tok}, body} }
func (n *LoopExpr) exprNode()                                {}
func (n *LoopExpr) String() string                           { return "LoopExpr" }

// FuncParam is `identifier: type [= default]` in a function parameter list.
type FuncParam struct {
	Name    string
	Type    TypeExpr
	Default Expr
}

// FunctionLiteral is a function value: generics, parameters, explicit return
// type, and a body block. A bodiless FunctionLiteral (Body == nil) is used
// by the parser to represent a function *type* sharing the same shape.
type FunctionLiteral struct {
	base
	Generics   []string
	Params     []FuncParam
	ReturnType TypeExpr
	Body       *BlockStmt
}

func NewFunctionLiteral(tok token.Token, generics []string, params []FuncParam, ret TypeExpr, body *BlockStmt) *FunctionLiteral {
	return &FunctionLiteral{base{tok}, generics, params, ret, body}
}
func (n *FunctionLiteral) exprNode() {}
func (n *FunctionLiteral) String() string {
	return fmt.Sprintf("FunctionLiteral(params=%d)", len(n.Params))
}

// StructMember is `identifier: type [= default]` in a struct literal body.
type StructMember struct {
	Name    string
	Type    TypeExpr
	Default Expr
}

// StructLiteral is `[packed] struct [<generics>] { member, ... }`.
type StructLiteral struct {
	base
	Generics []string
	Members  []StructMember
	Packed   bool
}

func NewStructLiteral(tok token.Token, generics []string, members []StructMember, packed bool) *StructLiteral {
	return &StructLiteral{base{tok}, generics, members, packed}
}
func (n *StructLiteral) exprNode() {}
func (n *StructLiteral) String() string {
	return fmt.Sprintf("StructLiteral(members=%d,packed=%v)", len(n.Members), n.Packed)
}

// EnumVariant is `identifier [= expr]` in an enum literal body.
type EnumVariant struct {
	Name  string
	Value Expr
}

// EnumLiteral is `enum { variant, ... }`.
type EnumLiteral struct {
	base
	Variants []EnumVariant
}

func NewEnumLiteral(tok token.Token, variants []EnumVariant) *EnumLiteral {
	return &EnumLiteral{base{tok}, variants}
}
func (n *EnumLiteral) exprNode() {}
func (n *EnumLiteral) String() string {
	return fmt.Sprintf("EnumLiteral(variants=%d)", len(n.Variants))
}

// ArrayLiteral is `[size]{ item, ... }`; InferredSize is set when size was `_`.
type ArrayLiteral struct {
	base
	InferredSize bool
	Size         Expr
	Items        []Expr
}

func NewArrayLiteral(tok token.Token, inferredSize bool, size Expr, items []Expr) *ArrayLiteral {
	return &ArrayLiteral{base{tok}, inferredSize, size, items}
}
func (n *ArrayLiteral) exprNode() {}
func (n *ArrayLiteral) String() string {
	return fmt.Sprintf("ArrayLiteral(items=%d)", len(n.Items))
}

// ---- Type expressions ----------------------------------------------------

// PrimitiveType is one of the primitive keyword types (int/uint/size/byte/
// float/string/bool/void).
type PrimitiveType struct {
	base
	Kind     token.Kind
	nullable bool
}

func NewPrimitiveType(tok token.Token, kind token.Kind, nullable bool) *PrimitiveType {
	return &PrimitiveType{base{tok}, kind, nullable}
}
func (n *PrimitiveType) typeNode()       {}
func (n *PrimitiveType) Nullable() bool  { return n.nullable }
func (n *PrimitiveType) String() string  { return fmt.Sprintf("PrimitiveType(%s)", n.Kind) }

// NamedType is a (possibly generic, possibly nullable) identifier type.
type NamedType struct {
	base
	Name     string
	Generics []TypeExpr
	nullable bool
}

func NewNamedType(tok token.Token, name string, generics []TypeExpr, nullable bool) *NamedType {
	return &NamedType{base{tok}, name, generics, nullable}
}
func (n *NamedType) typeNode()      {}
func (n *NamedType) Nullable() bool { return n.nullable }
func (n *NamedType) String() string { return fmt.Sprintf("NamedType(%s)", n.Name) }

// FunctionType is a function signature without a body: parameters + return
// type.
type FunctionType struct {
	base
	Generics   []string
	Params     []FuncParam
	ReturnType TypeExpr
	nullable   bool
}

func NewFunctionType(tok token.Token, generics []string, params []FuncParam, ret TypeExpr, nullable bool) *FunctionType {
	return &FunctionType{base{tok}, generics, params, ret, nullable}
}
func (n *FunctionType) typeNode()      {}
func (n *FunctionType) Nullable() bool { return n.nullable }
func (n *FunctionType) String() string { return "FunctionType" }

// ArrayDim is one dimension of an array type: a fixed size, or a range
// (`..`/`..=`) with its inclusive flag.
type ArrayDim struct {
	Size      Expr
	IsRange   bool
	Inclusive bool
}

// ArrayType is `[dim, ...]inner`.
type ArrayType struct {
	base
	Dims     []ArrayDim
	Inner    TypeExpr
	nullable bool
}

func NewArrayType(tok token.Token, dims []ArrayDim, inner TypeExpr, nullable bool) *ArrayType {
	return &ArrayType{base{tok}, dims, inner, nullable}
}
func (n *ArrayType) typeNode()      {}
func (n *ArrayType) Nullable() bool { return n.nullable }
func (n *ArrayType) String() string { return fmt.Sprintf("ArrayType(dims=%d)", len(n.Dims)) }

// TypeofType is a `typeof expr` reference used in type position.
type TypeofType struct {
	base
	Expr     Expr
	nullable bool
}

func NewTypeofType(tok token.Token, expr Expr, nullable bool) *TypeofType {
	return &TypeofType{base{tok}, expr, nullable}
}
func (n *TypeofType) typeNode()      {}
func (n *TypeofType) Nullable() bool { return n.nullable }
func (n *TypeofType) String() string { return "TypeofType" }

// ImplicitType is the `:=` walrus form: no explicit type, inferred from the
// initializer.
type ImplicitType struct{ base }

func NewImplicitType(tok token.Token) *ImplicitType { return &ImplicitType{base{tok}} }
func (n *ImplicitType) typeNode()                   {}
func (n *ImplicitType) Nullable() bool              { return false }
func (n *ImplicitType) String() string              { return "ImplicitType" }

// StructTypeExpr wraps a StructLiteral used in type position (e.g. as a
// declaration's explicit type expression).
type StructTypeExpr struct {
	base
	Literal  *StructLiteral
	nullable bool
}

func NewStructTypeExpr(lit *StructLiteral, nullable bool) *StructTypeExpr {
	return &StructTypeExpr{base{lit.tok}, lit, nullable}
}
func (n *StructTypeExpr) typeNode()      {}
func (n *StructTypeExpr) Nullable() bool { return n.nullable }
func (n *StructTypeExpr) String() string { return "StructTypeExpr" }

// EnumTypeExpr wraps an EnumLiteral used in type position.
type EnumTypeExpr struct {
	base
	Literal  *EnumLiteral
	nullable bool
}

func NewEnumTypeExpr(lit *EnumLiteral, nullable bool) *EnumTypeExpr {
	return &EnumTypeExpr{base{lit.tok}, lit, nullable}
}
func (n *EnumTypeExpr) typeNode()      {}
func (n *EnumTypeExpr) Nullable() bool { return n.nullable }
func (n *EnumTypeExpr) String() string { return "EnumTypeExpr" }

// ---- Statements -----------------------------------------------------------

// BlockStmt is `{ stmt* }`. It can also surface as a value-producing tail
// position (see the block typing rule) when its last statement is an
// expression statement without a trailing semicolon.
type BlockStmt struct {
	base
	Stmts []Stmt
}

func NewBlockStmt(tok token.Token, stmts []Stmt) *BlockStmt { return &BlockStmt{base{tok}, stmts} }
func (n *BlockStmt) stmtNode()                              {}
func (n *BlockStmt) String() string                         { return fmt.Sprintf("BlockStmt(%d)", len(n.Stmts)) }

// DeclModifier is a bit in a Declaration's modifier set.
type DeclModifier uint16

const (
	ModVariable DeclModifier = 1 << iota
	ModConstant
	ModComptime
	ModPrivate
	ModExtern
	ModExport
	ModStatic
)

// DeclStmt is `<modifiers> name [: type] [= init];`.
type DeclStmt struct {
	base
	Name      string
	Type      TypeExpr
	Init      Expr
	Modifiers DeclModifier
}

func NewDeclStmt(tok token.Token, name string, typ TypeExpr, init Expr, mods DeclModifier) *DeclStmt {
	return &DeclStmt{base{tok}, name, typ, init, mods}
}
func (n *DeclStmt) stmtNode()      {}
func (n *DeclStmt) String() string { return fmt.Sprintf("DeclStmt(%s)", n.Name) }

// TypeDeclStmt is `type Name = <value>`.
type TypeDeclStmt struct {
	base
	Name           string
	Value          TypeExpr
	PrimitiveAlias bool
}

func NewTypeDeclStmt(tok token.Token, name string, value TypeExpr, primitiveAlias bool) *TypeDeclStmt {
	return &TypeDeclStmt{base{tok}, name, value, primitiveAlias}
}
func (n *TypeDeclStmt) stmtNode()      {}
func (n *TypeDeclStmt) String() string { return fmt.Sprintf("TypeDeclStmt(%s)", n.Name) }

// JumpKind distinguishes return/break/continue.
type JumpKind int

const (
	JumpReturn JumpKind = iota
	JumpBreak
	JumpContinue
)

// JumpStmt is `return [expr];`, `break [expr];`, or `continue;`.
type JumpStmt struct {
	base
	Kind  JumpKind
	Value Expr
}

func NewJumpStmt(tok token.Token, kind JumpKind, value Expr) *JumpStmt {
	return &JumpStmt{base{tok}, kind, value}
}
func (n *JumpStmt) stmtNode()      {}
func (n *JumpStmt) String() string { return fmt.Sprintf("JumpStmt(%d)", n.Kind) }

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	base
	Expr         Expr
	HasSemicolon bool
}

func NewExprStmt(tok token.Token, expr Expr, hasSemi bool) *ExprStmt {
	return &ExprStmt{base{tok}, expr, hasSemi}
}
func (n *ExprStmt) stmtNode()      {}
func (n *ExprStmt) String() string { return "ExprStmt" }

// DiscardStmt is `_ = expr;`.
type DiscardStmt struct {
	base
	Value Expr
}

func NewDiscardStmt(tok token.Token, value Expr) *DiscardStmt { return &DiscardStmt{base{tok}, value} }
func (n *DiscardStmt) stmtNode()                              {}
func (n *DiscardStmt) String() string                         { return "DiscardStmt" }

// ImportStmt is either a standard import (bare identifier) or a user import
// (string literal, required alias).
type ImportStmt struct {
	base
	IsUser bool
	Name   string // standard import identifier
	Path   string // user import string literal (promoted)
	Alias  string
}

func NewImportStmt(tok token.Token, isUser bool, name, path, alias string) *ImportStmt {
	return &ImportStmt{base{tok}, isUser, name, path, alias}
}
func (n *ImportStmt) stmtNode()      {}
func (n *ImportStmt) String() string { return fmt.Sprintf("ImportStmt(user=%v)", n.IsUser) }

// ImplStmt is `impl Name [<generics>] { member* }`.
type ImplStmt struct {
	base
	Target   string
	Generics []string
	Body     *BlockStmt
}

func NewImplStmt(tok token.Token, target string, generics []string, body *BlockStmt) *ImplStmt {
	return &ImplStmt{base{tok}, target, generics, body}
}
func (n *ImplStmt) stmtNode()      {}
func (n *ImplStmt) String() string { return fmt.Sprintf("ImplStmt(%s)", n.Target) }
