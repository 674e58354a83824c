package formatter

import (
	"fmt"
	"strings"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/lexer"
)

// Format renders a contract AST back to canonical source code.
// Declarations keep their source order; reordering them would change
// the meaning under declaration-before-use.
func Format(contract *ast.Contract) string {
	f := &formatter{}
	f.formatContract(contract)
	return f.sb.String()
}

type formatter struct {
	sb     strings.Builder
	indent int
}

func (f *formatter) emit(s string) {
	f.sb.WriteString(s)
}

func (f *formatter) emitLinef(format string, args ...any) {
	f.sb.WriteString(f.indentStr())
	f.sb.WriteString(fmt.Sprintf(format, args...))
	f.sb.WriteString("\n")
}

func (f *formatter) emitLine(s string) {
	if s == "" {
		f.sb.WriteString("\n")
		return
	}
	f.sb.WriteString(f.indentStr())
	f.sb.WriteString(s)
	f.sb.WriteString("\n")
}

func (f *formatter) incIndent() { f.indent++ }
func (f *formatter) decIndent() { f.indent-- }

func (f *formatter) indentStr() string {
	return strings.Repeat("    ", f.indent)
}

func (f *formatter) blankLine() {
	f.sb.WriteString("\n")
}

func (f *formatter) formatContract(c *ast.Contract) {
	f.emitLinef("contract %s;", c.Name)

	prevWasFunc := false
	first := true
	for _, decl := range c.Decls {
		switch d := decl.(type) {
		case *ast.VarDecl:
			if first || prevWasFunc {
				f.blankLine()
			}
			f.formatVarDecl(d)
			prevWasFunc = false
		case *ast.FuncDecl:
			f.blankLine()
			f.formatFuncDecl(d)
			prevWasFunc = true
		}
		first = false
	}
}

func (f *formatter) formatVarDecl(v *ast.VarDecl) {
	f.emitLinef("%s: %s;", v.Name, v.Type.Name)
}

func (f *formatter) formatFuncDecl(fn *ast.FuncDecl) {
	for _, d := range fn.Decorators {
		f.emitLinef("@%s", d.Name)
	}

	f.emit(f.indentStr())
	f.emit("def " + fn.Name + "(")
	for i, p := range fn.Params {
		if i > 0 {
			f.emit(", ")
		}
		f.emit(p.Name + ": " + p.Type.Name)
	}
	f.emit(")")
	if fn.ReturnType != nil {
		f.emit(" returns " + fn.ReturnType.Name)
	}
	f.emit(" {\n")
	f.incIndent()
	f.formatBlock(fn.Body)
	f.decIndent()
	f.emitLine("}")
}

func (f *formatter) formatBlock(b *ast.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		f.formatStmt(stmt)
	}
}

func (f *formatter) formatStmt(s ast.Statement) {
	switch stmt := s.(type) {
	case *ast.LetStmt:
		if stmt.Type != nil {
			f.emitLinef("let %s: %s = %s;", stmt.Name, stmt.Type.Name, f.formatExpr(stmt.Value))
		} else {
			f.emitLinef("let %s = %s;", stmt.Name, f.formatExpr(stmt.Value))
		}

	case *ast.AssignStmt:
		f.emitLinef("%s = %s;", stmt.Target.Name, f.formatExpr(stmt.Value))

	case *ast.ReturnStmt:
		if stmt.Value != nil {
			f.emitLinef("return %s;", f.formatExpr(stmt.Value))
		} else {
			f.emitLine("return;")
		}

	case *ast.IfStmt:
		f.formatIfStmt(stmt, false)

	case *ast.ExprStmt:
		f.emitLinef("%s;", f.formatExpr(stmt.Expr))

	case *ast.Block:
		f.formatBlock(stmt)
	}
}

func (f *formatter) formatIfStmt(stmt *ast.IfStmt, isElseIf bool) {
	if isElseIf {
		f.emit(fmt.Sprintf(" else if %s {\n", f.formatExpr(stmt.Condition)))
	} else {
		f.emitLinef("if %s {", f.formatExpr(stmt.Condition))
	}
	f.incIndent()
	f.formatBlock(stmt.Then)
	f.decIndent()
	switch e := stmt.Else.(type) {
	case *ast.IfStmt:
		f.emit(f.indentStr() + "}")
		f.formatIfStmt(e, true)
	case *ast.Block:
		f.emitLine("} else {")
		f.incIndent()
		f.formatBlock(e)
		f.decIndent()
		f.emitLine("}")
	default:
		f.emitLine("}")
	}
}

func (f *formatter) formatExpr(e ast.Expression) string {
	return f.formatExprPrec(e, 0)
}

// formatExprPrec formats an expression, wrapping in parens if needed based on parent precedence.
func (f *formatter) formatExprPrec(e ast.Expression, parentPrec int) string {
	switch expr := e.(type) {
	case *ast.BinaryExpr:
		prec := precedence(expr.Op)
		left := f.formatExprPrec(expr.Left, prec)
		right := f.formatExprPrec(expr.Right, prec+1) // +1 for left-associativity
		result := fmt.Sprintf("%s %s %s", left, operatorString(expr.Op), right)
		if prec < parentPrec {
			return "(" + result + ")"
		}
		return result

	case *ast.UnaryExpr:
		operand := f.formatExprPrec(expr.Operand, 10) // unary binds tight
		if expr.Op == lexer.NOT {
			return "not " + operand
		}
		return "-" + operand

	case *ast.CallExpr:
		args := make([]string, len(expr.Args))
		for i, arg := range expr.Args {
			args[i] = f.formatExpr(arg)
		}
		return fmt.Sprintf("%s(%s)", expr.Function, strings.Join(args, ", "))

	case *ast.ConvertExpr:
		return fmt.Sprintf("%s(%s)", expr.Target.Name, f.formatExpr(expr.Value))

	case *ast.Identifier:
		return expr.Name

	case *ast.IntLit:
		return expr.Value

	case *ast.DecimalLit:
		return expr.Value

	case *ast.HexLit:
		return expr.Value

	case *ast.BoolLit:
		if expr.Value {
			return "true"
		}
		return "false"

	default:
		return "<unknown>"
	}
}

// Precedence levels (higher binds tighter):
//
//	1: or
//	2: and
//	3: == !=
//	4: < > <= >=
//	5: + -
//	6: * / %
func precedence(op lexer.TokenType) int {
	switch op {
	case lexer.OR:
		return 1
	case lexer.AND:
		return 2
	case lexer.EQ, lexer.NEQ:
		return 3
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		return 4
	case lexer.PLUS, lexer.MINUS:
		return 5
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return 6
	default:
		return 0
	}
}

func operatorString(op lexer.TokenType) string {
	switch op {
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.STAR:
		return "*"
	case lexer.SLASH:
		return "/"
	case lexer.PERCENT:
		return "%"
	case lexer.EQ:
		return "=="
	case lexer.NEQ:
		return "!="
	case lexer.LT:
		return "<"
	case lexer.GT:
		return ">"
	case lexer.LEQ:
		return "<="
	case lexer.GEQ:
		return ">="
	case lexer.AND:
		return "and"
	case lexer.OR:
		return "or"
	default:
		return "?"
	}
}
