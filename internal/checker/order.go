package checker

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diagnostic"
)

// orderValidator enforces declaration-before-use over the contract's
// ordered declaration sequence. It is a pure pass: no symbol or type
// information survives it.
type orderValidator struct {
	diag     *diagnostic.Diagnostics
	declared map[string]int // symbol name -> declaration index
	locals   []map[string]bool
	current  int // index of the declaration being validated
}

// ValidateOrder fails with OrderError for every use site whose symbol is
// not declared strictly earlier in the unit. A function body counts as
// part of its own declaration, so direct recursion is permitted; mutual
// recursion is not unless the callee is declared first.
func ValidateOrder(contract *ast.Contract) *diagnostic.Diagnostics {
	v := &orderValidator{
		diag:     diagnostic.New(),
		declared: make(map[string]int),
	}

	// Record every declaration index up front so a forward reference can
	// be told apart from a symbol that does not exist at all. Symbols
	// that are never declared are left to the type checker.
	for i, decl := range contract.Decls {
		name := decl.DeclName()
		if prev, exists := v.declared[name]; exists {
			line, col := decl.Pos()
			v.diag.Errorf(diagnostic.OrderError, line, col,
				"'%s' already declared at position %d of the contract", name, prev+1)
			continue
		}
		v.declared[name] = i
	}

	for i, decl := range contract.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		v.current = i
		v.pushLocals()
		for _, p := range fn.Params {
			v.defineLocal(p.Name)
		}
		if fn.Body != nil {
			v.validateBlock(fn.Body)
		}
		v.popLocals()
	}

	return v.diag
}

func (v *orderValidator) pushLocals() {
	v.locals = append(v.locals, make(map[string]bool))
}

func (v *orderValidator) popLocals() {
	v.locals = v.locals[:len(v.locals)-1]
}

func (v *orderValidator) defineLocal(name string) {
	v.locals[len(v.locals)-1][name] = true
}

func (v *orderValidator) isLocal(name string) bool {
	for i := len(v.locals) - 1; i >= 0; i-- {
		if v.locals[i][name] {
			return true
		}
	}
	return false
}

// checkUse validates a single use site against the declaration order
func (v *orderValidator) checkUse(name string, line, col int) {
	if v.isLocal(name) {
		return
	}
	declIndex, exists := v.declared[name]
	if !exists {
		return // undeclared entirely; the type checker reports it
	}
	if declIndex > v.current {
		v.diag.Errorf(diagnostic.OrderError, line, col,
			"'%s' used before its declaration", name)
	}
}

func (v *orderValidator) validateBlock(block *ast.Block) {
	v.pushLocals()
	for _, stmt := range block.Statements {
		v.validateStatement(stmt)
	}
	v.popLocals()
}

func (v *orderValidator) validateStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		v.validateExpression(s.Value)
		v.defineLocal(s.Name)
	case *ast.AssignStmt:
		line, col := s.Target.Pos()
		v.checkUse(s.Target.Name, line, col)
		v.validateExpression(s.Value)
	case *ast.ReturnStmt:
		if s.Value != nil {
			v.validateExpression(s.Value)
		}
	case *ast.IfStmt:
		v.validateExpression(s.Condition)
		v.validateBlock(s.Then)
		if s.Else != nil {
			v.validateStatement(s.Else)
		}
	case *ast.ExprStmt:
		v.validateExpression(s.Expr)
	case *ast.Block:
		v.validateBlock(s)
	}
}

func (v *orderValidator) validateExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		v.validateExpression(e.Left)
		v.validateExpression(e.Right)
	case *ast.UnaryExpr:
		v.validateExpression(e.Operand)
	case *ast.CallExpr:
		line, col := e.Pos()
		v.checkUse(e.Function, line, col)
		for _, arg := range e.Args {
			v.validateExpression(arg)
		}
	case *ast.ConvertExpr:
		v.validateExpression(e.Value)
	case *ast.Identifier:
		line, col := e.Pos()
		v.checkUse(e.Name, line, col)
	}
}
