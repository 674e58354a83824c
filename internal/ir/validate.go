package ir

import (
	"fmt"

	"github.com/covenant-lang/covenant/internal/lexer"
)

// Validate checks the structural invariants the rest of the toolchain
// relies on: every expression is typed, every arithmetic node over a
// numeric type carries exactly one guard, every division guard checks
// the divisor, and every representation-changing conversion of a
// runtime value is annotated. It returns the first violation found.
func Validate(c *Contract) error {
	for _, sv := range c.StateVars {
		if sv.Type == nil {
			return fmt.Errorf("state variable %s has no type", sv.Name)
		}
	}
	for _, fn := range c.Functions {
		if fn.ReturnType == nil {
			return fmt.Errorf("function %s has no return type", fn.Name)
		}
		for _, p := range fn.Params {
			if p.Type == nil {
				return fmt.Errorf("function %s parameter %s has no type", fn.Name, p.Name)
			}
		}
		if err := validateStmts(fn.Name, fn.Body); err != nil {
			return err
		}
	}
	return nil
}

func validateStmts(fn string, stmts []Stmt) error {
	for _, s := range stmts {
		if err := validateStmt(fn, s); err != nil {
			return err
		}
	}
	return nil
}

func validateStmt(fn string, stmt Stmt) error {
	switch s := stmt.(type) {
	case *Let:
		return validateExpr(fn, s.Value)
	case *Assign:
		return validateExpr(fn, s.Value)
	case *Return:
		if s.Value != nil {
			return validateExpr(fn, s.Value)
		}
	case *If:
		if err := validateExpr(fn, s.Cond); err != nil {
			return err
		}
		if err := validateStmts(fn, s.Then); err != nil {
			return err
		}
		return validateStmts(fn, s.Else)
	case *ExprStmt:
		return validateExpr(fn, s.Expr)
	}
	return nil
}

func validateExpr(fn string, expr Expr) error {
	if expr == nil {
		return fmt.Errorf("function %s contains a nil expression", fn)
	}
	if expr.ExprType() == nil {
		line, col := expr.Pos()
		return fmt.Errorf("function %s has an untyped expression at %d:%d", fn, line, col)
	}

	switch e := expr.(type) {
	case *Binary:
		if err := validateExpr(fn, e.Left); err != nil {
			return err
		}
		if err := validateExpr(fn, e.Right); err != nil {
			return err
		}
		arith := isArithmetic(e.Op) && e.Type.Numeric
		switch {
		case arith && e.Guard == nil:
			return fmt.Errorf("function %s: unguarded %s arithmetic at %d:%d",
				fn, e.Type, e.Line, e.Column)
		case arith && (e.Op == lexer.SLASH || e.Op == lexer.PERCENT) && !e.Guard.CheckDivZero:
			return fmt.Errorf("function %s: division at %d:%d does not check its divisor",
				fn, e.Line, e.Column)
		case !arith && e.Guard != nil:
			return fmt.Errorf("function %s: guard on non-arithmetic node at %d:%d",
				fn, e.Line, e.Column)
		case arith && e.Guard.CheckDivZero && e.Op != lexer.SLASH && e.Op != lexer.PERCENT:
			return fmt.Errorf("function %s: divisor check on non-division node at %d:%d",
				fn, e.Line, e.Column)
		}
		if arith && (e.Guard.Min == nil || e.Guard.Max == nil) {
			return fmt.Errorf("function %s: guard without bounds at %d:%d", fn, e.Line, e.Column)
		}
		return nil

	case *Unary:
		return validateExpr(fn, e.Operand)

	case *Call:
		for _, arg := range e.Args {
			if err := validateExpr(fn, arg); err != nil {
				return err
			}
		}
		return nil

	case *Convert:
		if err := validateExpr(fn, e.Value); err != nil {
			return err
		}
		if e.Clamp != nil && e.Reinterpret {
			return fmt.Errorf("function %s: conversion at %d:%d both clamps and reinterprets",
				fn, e.Line, e.Column)
		}
		src := e.Value.ExprType()
		if src != nil && !src.Equal(e.Type) && e.Clamp == nil && !e.Reinterpret && !IsConst(e.Value) {
			return fmt.Errorf("function %s: unannotated conversion from %s to %s at %d:%d",
				fn, src, e.Type, e.Line, e.Column)
		}
		if e.Clamp != nil && (e.Clamp.Min == nil || e.Clamp.Max == nil) {
			return fmt.Errorf("function %s: clamp without bounds at %d:%d", fn, e.Line, e.Column)
		}
		return nil
	}
	return nil
}
