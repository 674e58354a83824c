package linter

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/checker"
	"github.com/covenant-lang/covenant/internal/diagnostic"
)

// Lint reports style and dead-code warnings for a contract that already
// passed the error-level passes. Warnings never block compilation.
//
// Checks:
//   - state variables that are never read or written
//   - private functions that are never called
//   - non-constant functions that neither mutate state nor call a
//     non-constant function (candidates for @constant)
func Lint(contract *ast.Contract, decorations map[string]*checker.Decorations) *diagnostic.Diagnostics {
	l := &linter{
		contract:    contract,
		decorations: decorations,
		diag:        diagnostic.New(),
		varUsed:     make(map[string]bool),
		called:      make(map[string]bool),
		stateVars:   make(map[string]bool),
	}
	l.run()
	return l.diag
}

type linter struct {
	contract    *ast.Contract
	decorations map[string]*checker.Decorations
	diag        *diagnostic.Diagnostics

	stateVars map[string]bool
	varUsed   map[string]bool // state variable read or written anywhere
	called    map[string]bool // function invoked anywhere
}

func (l *linter) run() {
	for _, sv := range l.contract.StateVars() {
		l.stateVars[sv.Name] = true
	}

	for _, fn := range l.contract.Functions() {
		if fn.Body != nil {
			l.scanBlock(fn.Body)
		}
	}

	for _, sv := range l.contract.StateVars() {
		if !l.varUsed[sv.Name] {
			line, col := sv.Pos()
			l.diag.Warningf(line, col, "state variable '%s' is never used", sv.Name)
		}
	}

	for _, fn := range l.contract.Functions() {
		d := l.decorations[fn.Name]
		if d == nil {
			continue
		}
		line, col := fn.Pos()
		if d.Visibility == checker.VisPrivate && !l.called[fn.Name] {
			l.diag.Warningf(line, col, "private function '%s' is never called", fn.Name)
		}
		if !d.Constant && l.isPure(fn) {
			l.diag.WarningWithHint(line, col,
				"function '"+fn.Name+"' does not modify state",
				"mark it @constant")
		}
	}
}

// isPure reports whether fn neither assigns state nor calls a function
// that may
func (l *linter) isPure(fn *ast.FuncDecl) bool {
	if fn.Body == nil {
		return true
	}
	p := &purityScan{linter: l, pure: true}
	p.scanStmts(fn.Body.Statements)
	return p.pure
}

// scanBlock records every state variable and function use in a block
func (l *linter) scanBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		l.scanStmt(stmt)
	}
}

func (l *linter) scanStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		l.scanExpr(s.Value)
	case *ast.AssignStmt:
		if l.stateVars[s.Target.Name] {
			l.varUsed[s.Target.Name] = true
		}
		l.scanExpr(s.Value)
	case *ast.ReturnStmt:
		if s.Value != nil {
			l.scanExpr(s.Value)
		}
	case *ast.IfStmt:
		l.scanExpr(s.Condition)
		l.scanBlock(s.Then)
		if s.Else != nil {
			l.scanStmt(s.Else)
		}
	case *ast.ExprStmt:
		l.scanExpr(s.Expr)
	case *ast.Block:
		l.scanBlock(s)
	}
}

func (l *linter) scanExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		l.scanExpr(e.Left)
		l.scanExpr(e.Right)
	case *ast.UnaryExpr:
		l.scanExpr(e.Operand)
	case *ast.CallExpr:
		l.called[e.Function] = true
		for _, arg := range e.Args {
			l.scanExpr(arg)
		}
	case *ast.ConvertExpr:
		l.scanExpr(e.Value)
	case *ast.Identifier:
		if l.stateVars[e.Name] {
			l.varUsed[e.Name] = true
		}
	}
}

// purityScan walks a body looking for state mutation. Shadowing locals
// are ignored on purpose: assigning a local that shadows a state
// variable is still pure, but tracking shadows here buys little, so a
// shadowed assignment conservatively counts as impure.
type purityScan struct {
	linter *linter
	pure   bool
}

func (p *purityScan) scanStmts(stmts []ast.Statement) {
	for _, stmt := range stmts {
		p.scanStmt(stmt)
	}
}

func (p *purityScan) scanStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		p.scanExpr(s.Value)
	case *ast.AssignStmt:
		if p.linter.stateVars[s.Target.Name] {
			p.pure = false
		}
		p.scanExpr(s.Value)
	case *ast.ReturnStmt:
		if s.Value != nil {
			p.scanExpr(s.Value)
		}
	case *ast.IfStmt:
		p.scanExpr(s.Condition)
		p.scanStmts(s.Then.Statements)
		if s.Else != nil {
			p.scanStmt(s.Else)
		}
	case *ast.ExprStmt:
		p.scanExpr(s.Expr)
	case *ast.Block:
		p.scanStmts(s.Statements)
	}
}

func (p *purityScan) scanExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		p.scanExpr(e.Left)
		p.scanExpr(e.Right)
	case *ast.UnaryExpr:
		p.scanExpr(e.Operand)
	case *ast.CallExpr:
		if d, ok := p.linter.decorations[e.Function]; ok && !d.Constant {
			p.pure = false
		}
		for _, arg := range e.Args {
			p.scanExpr(arg)
		}
	case *ast.ConvertExpr:
		p.scanExpr(e.Value)
	}
}
