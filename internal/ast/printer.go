// Reconstruction: a textual rendering of the AST used only by tests and the
// REPL. A second round-trip parse of the output must reproduce a
// structurally-equal AST.
package ast

import (
	"fmt"
	"strings"

	"github.com/conchlang/conch/internal/token"
)

// Printer reconstructs source text from an AST. GroupExpressions, when set,
// wraps every prefix/infix expression in parentheses (used by
// operator-precedence round-trip tests).
type Printer struct {
	GroupExpressions bool
}

// Reconstruct renders a file's statement list back to source text.
func Reconstruct(f *File, groupExpressions bool) string {
	p := &Printer{GroupExpressions: groupExpressions}
	var sb strings.Builder
	for i, s := range f.Stmts {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(p.stmt(s))
	}
	return sb.String()
}

func (p *Printer) stmt(s Stmt) string {
	switch n := s.(type) {
	case *BlockStmt:
		var sb strings.Builder
		sb.WriteString("{ ")
		for _, st := range n.Stmts {
			sb.WriteString(p.stmt(st))
			sb.WriteString(" ")
		}
		sb.WriteString("}")
		return sb.String()
	case *DeclStmt:
		return p.declStmt(n)
	case *TypeDeclStmt:
		return fmt.Sprintf("type %s = %s;", n.Name, p.typeExpr(n.Value))
	case *JumpStmt:
		kw := map[JumpKind]string{JumpReturn: "return", JumpBreak: "break", JumpContinue: "continue"}[n.Kind]
		if n.Value != nil {
			return fmt.Sprintf("%s %s;", kw, p.expr(n.Value))
		}
		return kw + ";"
	case *ExprStmt:
		if n.HasSemicolon {
			return p.expr(n.Expr) + ";"
		}
		return p.expr(n.Expr)
	case *DiscardStmt:
		return fmt.Sprintf("_ = %s;", p.expr(n.Value))
	case *ImportStmt:
		if n.IsUser {
			return fmt.Sprintf("import %q as %s;", n.Path, n.Alias)
		}
		return fmt.Sprintf("import %s;", n.Name)
	case *ImplStmt:
		return fmt.Sprintf("impl %s %s", n.Target, p.stmt(n.Body))
	default:
		return ""
	}
}

func (p *Printer) declStmt(n *DeclStmt) string {
	var mods []string
	if n.Modifiers&ModVariable != 0 {
		mods = append(mods, "var")
	}
	if n.Modifiers&ModConstant != 0 {
		mods = append(mods, "const")
	}
	if n.Modifiers&ModComptime != 0 {
		mods = append(mods, "comptime")
	}
	if n.Modifiers&ModPrivate != 0 {
		mods = append(mods, "private")
	}
	if n.Modifiers&ModExtern != 0 {
		mods = append(mods, "extern")
	}
	if n.Modifiers&ModExport != 0 {
		mods = append(mods, "export")
	}
	if n.Modifiers&ModStatic != 0 {
		mods = append(mods, "static")
	}
	_, implicit := n.Type.(*ImplicitType)

	var sb strings.Builder
	sb.WriteString(strings.Join(mods, " "))
	sb.WriteString(" ")
	sb.WriteString(n.Name)
	if !implicit && n.Type != nil {
		sb.WriteString(": ")
		sb.WriteString(p.typeExpr(n.Type))
	}
	if n.Init != nil {
		if implicit {
			sb.WriteString(" := ")
		} else {
			sb.WriteString(" = ")
		}
		sb.WriteString(p.expr(n.Init))
	}
	sb.WriteString(";")
	return sb.String()
}

func (p *Printer) expr(e Expr) string {
	if e == nil {
		return ""
	}
	switch n := e.(type) {
	case *Identifier:
		return n.Name
	case *IntLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *ByteLiteral:
		return fmt.Sprintf("%d", n.Value)
	case *FloatLiteral:
		return fmt.Sprintf("%v", n.Value)
	case *BoolLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *NilLiteral:
		return "nil"
	case *ContinueLiteral:
		return "continue"
	case *PrefixExpr:
		op := opSpelling(n.Op)
		if n.Op == token.TYPEOF {
			op += " "
		}
		s := fmt.Sprintf("%s%s", op, p.expr(n.Operand))
		if p.GroupExpressions {
			return "(" + s + ")"
		}
		return s
	case *InfixExpr:
		s := fmt.Sprintf("%s %s %s", p.expr(n.Left), opSpelling(n.Op), p.expr(n.Right))
		if p.GroupExpressions {
			return "(" + s + ")"
		}
		return s
	case *AssignmentExpr:
		return fmt.Sprintf("%s %s %s", p.expr(n.LHS), opSpelling(n.Op), p.expr(n.RHS))
	case *CallExpr:
		var args []string
		for _, a := range n.Args {
			prefix := ""
			if a.IsRef {
				prefix = "ref "
			}
			args = append(args, prefix+p.expr(a.Expr))
		}
		return fmt.Sprintf("%s(%s)", p.expr(n.Callee), strings.Join(args, ", "))
	case *IndexExpr:
		return fmt.Sprintf("%s[%s]", p.expr(n.Array), p.expr(n.Index))
	case *NamespaceExpr:
		return fmt.Sprintf("%s::%s", p.expr(n.Outer), n.Inner.Name)
	case *IfExpr:
		s := fmt.Sprintf("if (%s) %s", p.expr(n.Cond), p.stmt(n.Consequence))
		if n.Alternate != nil {
			s += " else " + p.stmt(n.Alternate)
		}
		return s
	case *MatchExpr:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("match %s { ", p.expr(n.Scrutinee)))
		for _, a := range n.Arms {
			sb.WriteString(fmt.Sprintf("%s => %s, ", p.expr(a.Pattern), p.stmt(a.Dispatch)))
		}
		sb.WriteString("}")
		if n.CatchAll != nil {
			sb.WriteString(" else " + p.stmt(n.CatchAll))
		}
		return sb.String()
	case *ForExpr:
		var iters []string
		for _, it := range n.Iterables {
			iters = append(iters, p.expr(it))
		}
		s := fmt.Sprintf("for (%s)", strings.Join(iters, ", "))
		if len(n.Captures) > 0 {
			var caps []string
			for _, c := range n.Captures {
				switch {
				case c.Discard:
					caps = append(caps, "_")
				case c.IsRef:
					caps = append(caps, "ref "+c.Identifier)
				default:
					caps = append(caps, c.Identifier)
				}
			}
			s += fmt.Sprintf(" : (%s)", strings.Join(caps, ", "))
		}
		s += " " + p.stmt(n.Body)
		if n.Else != nil {
			s += " else " + p.stmt(n.Else)
		}
		return s
	case *WhileExpr:
		s := fmt.Sprintf("while (%s)", p.expr(n.Cond))
		if n.Continuation != nil {
			s += fmt.Sprintf(" : (%s)", p.expr(n.Continuation))
		}
		s += " " + p.stmt(n.Body)
		if n.Else != nil {
			s += " else " + p.stmt(n.Else)
		}
		return s
	case *DoWhileExpr:
		return fmt.Sprintf("do %s while (%s)", p.stmt(n.Body), p.expr(n.Cond))
	case *LoopExpr:
		return "loop " + p.stmt(n.Body)
	case *FunctionLiteral:
		var params []string
		for _, pm := range n.Params {
			params = append(params, fmt.Sprintf("%s: %s", pm.Name, p.typeExpr(pm.Type)))
		}
		ret := ""
		if n.ReturnType != nil {
			ret = " -> " + p.typeExpr(n.ReturnType)
		}
		s := fmt.Sprintf("fn(%s)%s", strings.Join(params, ", "), ret)
		if n.Body != nil {
			s += " " + p.stmt(n.Body)
		}
		return s
	case *StructLiteral:
		var members []string
		for _, m := range n.Members {
			members = append(members, fmt.Sprintf("%s: %s", m.Name, p.typeExpr(m.Type)))
		}
		prefix := ""
		if n.Packed {
			prefix = "packed "
		}
		return fmt.Sprintf("%sstruct { %s }", prefix, strings.Join(members, ", "))
	case *EnumLiteral:
		var variants []string
		for _, v := range n.Variants {
			if v.Value != nil {
				variants = append(variants, fmt.Sprintf("%s = %s", v.Name, p.expr(v.Value)))
			} else {
				variants = append(variants, v.Name)
			}
		}
		return fmt.Sprintf("enum { %s }", strings.Join(variants, ", "))
	case *ArrayLiteral:
		var items []string
		for _, it := range n.Items {
			items = append(items, p.expr(it))
		}
		size := "_"
		if !n.InferredSize && n.Size != nil {
			size = p.expr(n.Size)
		}
		return fmt.Sprintf("[%s]{ %s }", size, strings.Join(items, ", "))
	default:
		return ""
	}
}

func (p *Printer) typeExpr(t TypeExpr) string {
	if t == nil {
		return ""
	}
	switch n := t.(type) {
	case *ImplicitType:
		return ""
	case *PrimitiveType:
		suffix := ""
		if n.nullable {
			suffix = "?"
		}
		return opSpelling(n.Kind) + suffix
	case *NamedType:
		suffix := ""
		if n.nullable {
			suffix = "?"
		}
		return n.Name + suffix
	case *FunctionType:
		var params []string
		for _, pm := range n.Params {
			params = append(params, fmt.Sprintf("%s: %s", pm.Name, p.typeExpr(pm.Type)))
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), p.typeExpr(n.ReturnType))
	case *ArrayType:
		var dims []string
		for _, d := range n.Dims {
			switch {
			case d.IsRange && d.Inclusive:
				dims = append(dims, "..=")
			case d.IsRange:
				dims = append(dims, "..")
			default:
				dims = append(dims, p.expr(d.Size))
			}
		}
		return fmt.Sprintf("[%s]%s", strings.Join(dims, ", "), p.typeExpr(n.Inner))
	case *TypeofType:
		return "typeof " + p.expr(n.Expr)
	case *StructTypeExpr:
		return p.expr(n.Literal)
	case *EnumTypeExpr:
		return p.expr(n.Literal)
	default:
		return ""
	}
}

var opSpellings = map[token.Kind]string{
	token.PLUS: "+", token.MINUS: "-", token.STAR: "*", token.STAR_STAR: "**",
	token.SLASH: "/", token.PERCENT: "%", token.BANG: "!", token.NOT: "~",
	token.AND: "&", token.OR: "|", token.XOR: "^", token.SHL: "<<", token.SHR: ">>",
	token.LT: "<", token.LTEQ: "<=", token.GT: ">", token.GTEQ: ">=",
	token.EQ: "==", token.NEQ: "!=",
	token.BOOLEAN_AND: "&&", token.BOOLEAN_OR: "||",
	token.DOT_DOT: "..", token.DOT_DOT_EQ: "..=",
	token.IS: "is", token.IN: "in", token.ORELSE: "orelse", token.TYPEOF: "typeof",
	token.ASSIGN: "=", token.PLUS_ASSIGN: "+=", token.MINUS_ASSIGN: "-=",
	token.STAR_ASSIGN: "*=", token.SLASH_ASSIGN: "/=", token.PERCENT_ASSIGN: "%=",
	token.AND_ASSIGN: "&=", token.OR_ASSIGN: "|=", token.XOR_ASSIGN: "^=",
	token.SHL_ASSIGN: "<<=", token.SHR_ASSIGN: ">>=", token.NOT_ASSIGN: "~=",
	token.INT_TYPE: "int", token.UINT_TYPE: "uint", token.SIZE_TYPE: "size", token.BYTE_TYPE: "byte",
	token.FLOAT_TYPE: "float", token.STRING_TYPE: "string", token.BOOL_TYPE: "bool", token.VOID_TYPE: "void",
}

func opSpelling(k token.Kind) string {
	if s, ok := opSpellings[k]; ok {
		return s
	}
	return k.String()
}
