package ir

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/checker"
	"github.com/covenant-lang/covenant/internal/lexer"
)

// Lower translates a checked AST into the typed intermediate form.
// It must only be called after checking reported no errors: lowering
// trusts the type table and conversion table completely.
func Lower(contract *ast.Contract, res *checker.CheckResult) *Contract {
	l := &lowerer{
		res:       res,
		stateVars: make(map[string]bool),
	}

	out := &Contract{Name: contract.Name}

	for _, sv := range res.StateVars {
		l.stateVars[sv.Name] = true
		out.StateVars = append(out.StateVars, &StateVar{
			Name: sv.Name,
			Type: sv.Type,
			Slot: sv.Slot,
		})
	}

	for _, fn := range contract.Functions() {
		out.Functions = append(out.Functions, l.lowerFunction(fn))
	}

	return out
}

type lowerer struct {
	res       *checker.CheckResult
	stateVars map[string]bool
	locals    []map[string]bool
}

func (l *lowerer) pushLocals() { l.locals = append(l.locals, make(map[string]bool)) }
func (l *lowerer) popLocals()  { l.locals = l.locals[:len(l.locals)-1] }

func (l *lowerer) defineLocal(name string) {
	l.locals[len(l.locals)-1][name] = true
}

// isState reports whether name refers to storage rather than a local
// that shadows it
func (l *lowerer) isState(name string) bool {
	for i := len(l.locals) - 1; i >= 0; i-- {
		if l.locals[i][name] {
			return false
		}
	}
	return l.stateVars[name]
}

// typeOf returns the checker's resolved type for an expression
func (l *lowerer) typeOf(expr ast.Expression) *checker.Type {
	return l.res.ExprTypes[expr]
}

func (l *lowerer) lowerFunction(fn *ast.FuncDecl) *Function {
	info := l.res.Functions[fn.Name]

	out := &Function{
		Name:       fn.Name,
		Visibility: info.Visibility,
		Constant:   info.Constant,
		Payable:    info.Payable,
		ReturnType: info.ReturnType,
	}

	l.pushLocals()
	for _, p := range info.Params {
		out.Params = append(out.Params, Param{Name: p.Name, Type: p.Type})
		l.defineLocal(p.Name)
	}
	if fn.Body != nil {
		out.Body = l.lowerStatements(fn.Body.Statements)
	}
	l.popLocals()

	return out
}

func (l *lowerer) lowerBlock(block *ast.Block) []Stmt {
	l.pushLocals()
	stmts := l.lowerStatements(block.Statements)
	l.popLocals()
	return stmts
}

func (l *lowerer) lowerStatements(stmts []ast.Statement) []Stmt {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		if lowered := l.lowerStatement(s); lowered != nil {
			out = append(out, lowered)
		}
	}
	return out
}

func (l *lowerer) lowerStatement(stmt ast.Statement) Stmt {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		value := l.lowerExpression(s.Value)
		l.defineLocal(s.Name)
		return &Let{Name: s.Name, Type: value.ExprType(), Value: value}

	case *ast.AssignStmt:
		return &Assign{
			Target: s.Target.Name,
			State:  l.isState(s.Target.Name),
			Value:  l.lowerExpression(s.Value),
		}

	case *ast.ReturnStmt:
		r := &Return{}
		if s.Value != nil {
			r.Value = l.lowerExpression(s.Value)
		}
		return r

	case *ast.IfStmt:
		out := &If{Cond: l.lowerExpression(s.Condition)}
		out.Then = l.lowerBlock(s.Then)
		switch e := s.Else.(type) {
		case *ast.Block:
			out.Else = l.lowerBlock(e)
		case *ast.IfStmt:
			out.Else = []Stmt{l.lowerStatement(e)}
		}
		return out

	case *ast.ExprStmt:
		return &ExprStmt{Expr: l.lowerExpression(s.Expr)}

	default:
		return nil
	}
}

func (l *lowerer) lowerExpression(expr ast.Expression) Expr {
	line, col := expr.Pos()

	switch e := expr.(type) {
	case *ast.BinaryExpr:
		return &Binary{
			Op:     e.Op,
			Left:   l.lowerExpression(e.Left),
			Right:  l.lowerExpression(e.Right),
			Type:   l.typeOf(e),
			Line:   line,
			Column: col,
		}

	case *ast.UnaryExpr:
		operand := l.lowerExpression(e.Operand)
		if e.Op == lexer.MINUS {
			// negated literals fold to signed constants
			switch c := operand.(type) {
			case *IntConst:
				return &IntConst{Value: new(big.Int).Neg(c.Value), Type: l.typeOf(e), Line: line, Column: col}
			case *DecConst:
				return &DecConst{Value: new(big.Rat).Neg(c.Value), Type: l.typeOf(e), Line: line, Column: col}
			}
		}
		return &Unary{
			Op:      e.Op,
			Operand: operand,
			Type:    l.typeOf(e),
			Line:    line,
			Column:  col,
		}

	case *ast.CallExpr:
		call := &Call{
			Function: e.Function,
			Type:     l.typeOf(e),
			Line:     line,
			Column:   col,
		}
		for _, arg := range e.Args {
			call.Args = append(call.Args, l.lowerExpression(arg))
		}
		return call

	case *ast.ConvertExpr:
		return l.lowerConvert(e)

	case *ast.Identifier:
		return &Load{
			Name:   e.Name,
			State:  l.isState(e.Name),
			Type:   l.typeOf(e),
			Line:   line,
			Column: col,
		}

	case *ast.IntLit:
		v, _ := new(big.Int).SetString(e.Value, 10)
		t := l.typeOf(e)
		if t != nil && t.Equal(checker.TypeDecimal) {
			return &DecConst{Value: new(big.Rat).SetInt(v), Type: t, Line: line, Column: col}
		}
		return &IntConst{Value: v, Type: t, Line: line, Column: col}

	case *ast.DecimalLit:
		v, _ := new(big.Rat).SetString(e.Value)
		return &DecConst{Value: v, Type: l.typeOf(e), Line: line, Column: col}

	case *ast.HexLit:
		return &BytesConst{Value: decodeHex(e.Value), Type: l.typeOf(e), Line: line, Column: col}

	case *ast.BoolLit:
		return &BoolConst{Value: e.Value, Type: l.typeOf(e), Line: line, Column: col}

	default:
		return nil
	}
}

// lowerConvert lowers an explicit conversion. Constant numeric sources
// were range-checked at compile time and fold directly to a constant of
// the target type; runtime sources keep a Convert node annotated with
// the registry's clamp or reinterpretation.
func (l *lowerer) lowerConvert(e *ast.ConvertExpr) Expr {
	line, col := e.Pos()
	value := l.lowerExpression(e.Value)
	target := l.typeOf(e)
	entry := l.res.Conversions[e]

	if entry != nil && !entry.Reinterpret {
		switch c := value.(type) {
		case *IntConst:
			if target.Equal(checker.TypeDecimal) {
				return &DecConst{Value: new(big.Rat).SetInt(c.Value), Type: target, Line: line, Column: col}
			}
			return &IntConst{Value: c.Value, Type: target, Line: line, Column: col}
		case *DecConst:
			if target.Equal(checker.TypeDecimal) {
				return &DecConst{Value: c.Value, Type: target, Line: line, Column: col}
			}
			// checked to be integral during checking
			return &IntConst{Value: new(big.Int).Set(c.Value.Num()), Type: target, Line: line, Column: col}
		}
	}

	out := &Convert{Value: value, Type: target, Line: line, Column: col}
	if src := value.ExprType(); entry != nil && src != nil && !src.Equal(target) {
		if entry.Reinterpret {
			out.Reinterpret = true
		} else {
			out.Clamp = &Clamp{Min: entry.Min, Max: entry.Max}
		}
	}
	return out
}

// decodeHex decodes a 0x-prefixed hex literal into bytes, left-padding
// an odd digit count
func decodeHex(lit string) []byte {
	digits := strings.TrimPrefix(strings.TrimPrefix(lit, "0x"), "0X")
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil
	}
	return b
}
