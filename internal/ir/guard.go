package ir

import (
	"math/big"

	"github.com/covenant-lang/covenant/internal/checker"
	"github.com/covenant-lang/covenant/internal/diagnostic"
	"github.com/covenant-lang/covenant/internal/lexer"
)

// Rewrite attaches overflow and division guards to every arithmetic
// node in the contract. Guards are unconditional: no range analysis is
// performed on runtime operands. The pass is idempotent; a node that
// already carries a guard is left untouched, so running it twice yields
// the same contract.
//
// Arithmetic over constant operands is evaluated here. A constant
// result outside the operand type's bounds is a compile-time
// ArithmeticOverflowError, and a constant zero divisor is a
// compile-time DivisionByZeroError.
func Rewrite(c *Contract) *diagnostic.Diagnostics {
	r := &rewriter{diag: diagnostic.New()}
	for _, fn := range c.Functions {
		r.rewriteStmts(fn.Body)
	}
	return r.diag
}

type rewriter struct {
	diag *diagnostic.Diagnostics
}

func (r *rewriter) rewriteStmts(stmts []Stmt) {
	for _, s := range stmts {
		r.rewriteStmt(s)
	}
}

func (r *rewriter) rewriteStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *Let:
		r.rewriteExpr(s.Value)
	case *Assign:
		r.rewriteExpr(s.Value)
	case *Return:
		if s.Value != nil {
			r.rewriteExpr(s.Value)
		}
	case *If:
		r.rewriteExpr(s.Cond)
		r.rewriteStmts(s.Then)
		r.rewriteStmts(s.Else)
	case *ExprStmt:
		r.rewriteExpr(s.Expr)
	}
}

func (r *rewriter) rewriteExpr(expr Expr) {
	switch e := expr.(type) {
	case *Binary:
		r.rewriteExpr(e.Left)
		r.rewriteExpr(e.Right)
		if isArithmetic(e.Op) && e.Type != nil && e.Type.Numeric {
			r.checkConstArithmetic(e)
			if e.Guard == nil {
				e.Guard = &Guard{
					Min:          e.Type.Min,
					Max:          e.Type.Max,
					CheckDivZero: e.Op == lexer.SLASH || e.Op == lexer.PERCENT,
				}
			}
		}
	case *Unary:
		r.rewriteExpr(e.Operand)
	case *Call:
		for _, arg := range e.Args {
			r.rewriteExpr(arg)
		}
	case *Convert:
		r.rewriteExpr(e.Value)
	}
}

// checkConstArithmetic faults on arithmetic whose constant result can
// be decided at compile time
func (r *rewriter) checkConstArithmetic(e *Binary) {
	right, rightConst := constValue(e.Right)

	if rightConst && (e.Op == lexer.SLASH || e.Op == lexer.PERCENT) && right.Sign() == 0 {
		r.diag.Errorf(diagnostic.DivisionByZeroError, e.Line, e.Column,
			"division by constant zero")
		return
	}

	left, leftConst := constValue(e.Left)
	if !leftConst || !rightConst {
		return
	}

	result, ok := foldArithmetic(e.Op, left, right, e.Type)
	if !ok {
		return
	}
	if !e.Type.InRange(result) {
		r.diag.Errorf(diagnostic.ArithmeticOverflowError, e.Line, e.Column,
			"constant expression overflows %s", e.Type)
	}
}

// constValue extracts the exact value of a constant numeric expression
func constValue(e Expr) (*big.Rat, bool) {
	switch c := e.(type) {
	case *IntConst:
		return new(big.Rat).SetInt(c.Value), true
	case *DecConst:
		return c.Value, true
	}
	return nil, false
}

// foldArithmetic computes the exact result of op over constant
// operands. Integer division truncates toward zero, matching the
// emitted runtime semantics.
func foldArithmetic(op lexer.TokenType, left, right *big.Rat, t *checker.Type) (*big.Rat, bool) {
	switch op {
	case lexer.PLUS:
		return new(big.Rat).Add(left, right), true
	case lexer.MINUS:
		return new(big.Rat).Sub(left, right), true
	case lexer.STAR:
		return new(big.Rat).Mul(left, right), true
	case lexer.SLASH:
		if right.Sign() == 0 {
			return nil, false
		}
		q := new(big.Rat).Quo(left, right)
		if t.Equal(checker.TypeDecimal) {
			return q, true
		}
		return truncate(q), true
	case lexer.PERCENT:
		if right.Sign() == 0 || !left.IsInt() || !right.IsInt() {
			return nil, false
		}
		rem := new(big.Int).Rem(left.Num(), right.Num())
		return new(big.Rat).SetInt(rem), true
	default:
		return nil, false
	}
}

// truncate drops the fractional part of q, rounding toward zero
func truncate(q *big.Rat) *big.Rat {
	i := new(big.Int).Quo(q.Num(), q.Denom())
	return new(big.Rat).SetInt(i)
}

// isArithmetic reports whether op is an overflow-capable operator
func isArithmetic(op lexer.TokenType) bool {
	switch op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return true
	}
	return false
}
