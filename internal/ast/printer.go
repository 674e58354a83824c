package ast

import (
	"fmt"
	"strings"

	"github.com/covenant-lang/covenant/internal/lexer"
)

// Print returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := node.(type) {
	case *Contract:
		sb.WriteString(fmt.Sprintf("%sContract: %s\n", prefix, n.Name))
		for _, d := range n.Decls {
			printNode(sb, d, indent+1)
		}

	case *VarDecl:
		sb.WriteString(fmt.Sprintf("%sStateVar: %s: %s\n", prefix, n.Name, n.Type.Name))

	case *FuncDecl:
		decorators := make([]string, 0, len(n.Decorators))
		for _, d := range n.Decorators {
			decorators = append(decorators, "@"+d.Name)
		}
		label := n.Name
		if len(decorators) > 0 {
			label += " (" + strings.Join(decorators, " ") + ")"
		}
		sb.WriteString(fmt.Sprintf("%sFunction: %s\n", prefix, label))

		if len(n.Params) > 0 {
			sb.WriteString(fmt.Sprintf("%s  Params:\n", prefix))
			for _, p := range n.Params {
				printNode(sb, p, indent+2)
			}
		} else {
			sb.WriteString(fmt.Sprintf("%s  Params: none\n", prefix))
		}

		if n.ReturnType != nil {
			sb.WriteString(fmt.Sprintf("%s  Returns: %s\n", prefix, n.ReturnType.Name))
		}

		if n.Body != nil {
			sb.WriteString(fmt.Sprintf("%s  Body:\n", prefix))
			for _, stmt := range n.Body.Statements {
				printNode(sb, stmt, indent+2)
			}
		}

	case *Param:
		sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, n.Name, n.Type.Name))

	case *Block:
		sb.WriteString(prefix + "Block\n")
		for _, stmt := range n.Statements {
			printNode(sb, stmt, indent+1)
		}

	case *LetStmt:
		typeName := "<inferred>"
		if n.Type != nil {
			typeName = n.Type.Name
		}
		sb.WriteString(fmt.Sprintf("%sLet: %s: %s\n", prefix, n.Name, typeName))
		printNode(sb, n.Value, indent+1)

	case *AssignStmt:
		sb.WriteString(fmt.Sprintf("%sAssign: %s\n", prefix, n.Target.Name))
		printNode(sb, n.Value, indent+1)

	case *ReturnStmt:
		sb.WriteString(prefix + "Return\n")
		if n.Value != nil {
			printNode(sb, n.Value, indent+1)
		}

	case *IfStmt:
		sb.WriteString(prefix + "If\n")
		sb.WriteString(fmt.Sprintf("%s  Condition:\n", prefix))
		printNode(sb, n.Condition, indent+2)
		sb.WriteString(fmt.Sprintf("%s  Then:\n", prefix))
		for _, stmt := range n.Then.Statements {
			printNode(sb, stmt, indent+2)
		}
		if n.Else != nil {
			sb.WriteString(fmt.Sprintf("%s  Else:\n", prefix))
			printNode(sb, n.Else, indent+2)
		}

	case *ExprStmt:
		sb.WriteString(prefix + "ExprStmt\n")
		printNode(sb, n.Expr, indent+1)

	case *BinaryExpr:
		sb.WriteString(fmt.Sprintf("%sBinary: %s\n", prefix, opSymbol(n.Op)))
		printNode(sb, n.Left, indent+1)
		printNode(sb, n.Right, indent+1)

	case *UnaryExpr:
		sb.WriteString(fmt.Sprintf("%sUnary: %s\n", prefix, opSymbol(n.Op)))
		printNode(sb, n.Operand, indent+1)

	case *CallExpr:
		sb.WriteString(fmt.Sprintf("%sCall: %s\n", prefix, n.Function))
		for _, arg := range n.Args {
			printNode(sb, arg, indent+1)
		}

	case *ConvertExpr:
		sb.WriteString(fmt.Sprintf("%sConvert: -> %s\n", prefix, n.Target.Name))
		printNode(sb, n.Value, indent+1)

	case *Identifier:
		sb.WriteString(fmt.Sprintf("%sIdent: %s\n", prefix, n.Name))

	case *IntLit:
		sb.WriteString(fmt.Sprintf("%sInt: %s\n", prefix, n.Value))

	case *DecimalLit:
		sb.WriteString(fmt.Sprintf("%sDecimal: %s\n", prefix, n.Value))

	case *HexLit:
		sb.WriteString(fmt.Sprintf("%sHex: %s\n", prefix, n.Value))

	case *BoolLit:
		sb.WriteString(fmt.Sprintf("%sBool: %t\n", prefix, n.Value))

	default:
		sb.WriteString(fmt.Sprintf("%s<unknown node %T>\n", prefix, n))
	}
}

// opSymbol returns the source-level spelling of an operator token
func opSymbol(op lexer.TokenType) string {
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
	case lexer.NOT:
		return "not"
	default:
		return op.String()
	}
}
