package checker

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diagnostic"
)

// Visibility classifies who may invoke a function
type Visibility int

const (
	VisPublic Visibility = iota
	VisPrivate
)

// String returns the source-level decorator name
func (v Visibility) String() string {
	if v == VisPublic {
		return "public"
	}
	return "private"
}

// Decorations is the resolved decorator set of one function
type Decorations struct {
	Visibility Visibility
	Constant   bool
	Payable    bool
}

// knownDecorators is the closed decorator vocabulary
var knownDecorators = map[string]bool{
	"public":   true,
	"private":  true,
	"constant": true,
	"payable":  true,
}

// ResolveDecorators validates every function's decorator set and checks
// that constant functions contain no state-mutating statement.
//
// Rules: exactly one of public/private; at most one of constant/payable.
// Any violation is a DecoratorConflictError. A constant function that
// assigns a state variable, or calls a non-constant function, fails with
// StateMutationError at the offending statement.
func ResolveDecorators(contract *ast.Contract) (map[string]*Decorations, *diagnostic.Diagnostics) {
	diag := diagnostic.New()
	decorations := make(map[string]*Decorations)

	for _, fn := range contract.Functions() {
		decorations[fn.Name] = resolveFunction(fn, diag)
	}

	// Constant purity needs every function classified first: a call from
	// a constant function into a non-constant one is itself a mutation.
	stateVars := make(map[string]bool)
	for _, sv := range contract.StateVars() {
		stateVars[sv.Name] = true
	}
	for _, fn := range contract.Functions() {
		if decorations[fn.Name].Constant {
			checkConstantBody(fn, stateVars, decorations, diag)
		}
	}

	return decorations, diag
}

// resolveFunction classifies one function's decorators
func resolveFunction(fn *ast.FuncDecl, diag *diagnostic.Diagnostics) *Decorations {
	var public, private, constant, payable int
	line, col := fn.Pos()

	for _, d := range fn.Decorators {
		if !knownDecorators[d.Name] {
			diag.Errorf(diagnostic.DecoratorConflictError, d.Line, d.Column,
				"unknown decorator '@%s' on function '%s'", d.Name, fn.Name)
			continue
		}
		switch d.Name {
		case "public":
			public++
		case "private":
			private++
		case "constant":
			constant++
		case "payable":
			payable++
		}
		if public > 1 || private > 1 || constant > 1 || payable > 1 {
			diag.Errorf(diagnostic.DecoratorConflictError, d.Line, d.Column,
				"duplicate decorator '@%s' on function '%s'", d.Name, fn.Name)
		}
	}

	switch {
	case public == 0 && private == 0:
		diag.Errorf(diagnostic.DecoratorConflictError, line, col,
			"function '%s' must be decorated @public or @private", fn.Name)
	case public >= 1 && private >= 1:
		diag.Errorf(diagnostic.DecoratorConflictError, line, col,
			"function '%s' cannot be both @public and @private", fn.Name)
	}

	if constant >= 1 && payable >= 1 {
		diag.Errorf(diagnostic.DecoratorConflictError, line, col,
			"function '%s' cannot be both @constant and @payable", fn.Name)
	}

	d := &Decorations{
		Constant: constant >= 1,
		Payable:  payable >= 1,
	}
	if private >= 1 && public == 0 {
		d.Visibility = VisPrivate
	}
	return d
}

// constantWalker scans a constant function body for state mutations
type constantWalker struct {
	fn          *ast.FuncDecl
	stateVars   map[string]bool
	decorations map[string]*Decorations
	diag        *diagnostic.Diagnostics
	locals      []map[string]bool
}

func checkConstantBody(fn *ast.FuncDecl, stateVars map[string]bool, decorations map[string]*Decorations, diag *diagnostic.Diagnostics) {
	if fn.Body == nil {
		return
	}
	w := &constantWalker{
		fn:          fn,
		stateVars:   stateVars,
		decorations: decorations,
		diag:        diag,
	}
	w.push()
	for _, p := range fn.Params {
		w.define(p.Name)
	}
	w.walkBlock(fn.Body)
	w.pop()
}

func (w *constantWalker) push() { w.locals = append(w.locals, make(map[string]bool)) }
func (w *constantWalker) pop()  { w.locals = w.locals[:len(w.locals)-1] }

func (w *constantWalker) define(name string) {
	w.locals[len(w.locals)-1][name] = true
}

func (w *constantWalker) isLocal(name string) bool {
	for i := len(w.locals) - 1; i >= 0; i-- {
		if w.locals[i][name] {
			return true
		}
	}
	return false
}

func (w *constantWalker) walkBlock(block *ast.Block) {
	w.push()
	for _, stmt := range block.Statements {
		w.walkStatement(stmt)
	}
	w.pop()
}

func (w *constantWalker) walkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		w.walkExpression(s.Value)
		w.define(s.Name)
	case *ast.AssignStmt:
		if w.stateVars[s.Target.Name] && !w.isLocal(s.Target.Name) {
			line, col := s.Pos()
			w.diag.Errorf(diagnostic.StateMutationError, line, col,
				"constant function '%s' assigns state variable '%s'", w.fn.Name, s.Target.Name)
		}
		w.walkExpression(s.Value)
	case *ast.ReturnStmt:
		if s.Value != nil {
			w.walkExpression(s.Value)
		}
	case *ast.IfStmt:
		w.walkExpression(s.Condition)
		w.walkBlock(s.Then)
		if s.Else != nil {
			w.walkStatement(s.Else)
		}
	case *ast.ExprStmt:
		w.walkExpression(s.Expr)
	case *ast.Block:
		w.walkBlock(s)
	}
}

func (w *constantWalker) walkExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		w.walkExpression(e.Left)
		w.walkExpression(e.Right)
	case *ast.UnaryExpr:
		w.walkExpression(e.Operand)
	case *ast.CallExpr:
		if callee, ok := w.decorations[e.Function]; ok && !callee.Constant {
			line, col := e.Pos()
			w.diag.Errorf(diagnostic.StateMutationError, line, col,
				"constant function '%s' calls non-constant function '%s'", w.fn.Name, e.Function)
		}
		for _, arg := range e.Args {
			w.walkExpression(arg)
		}
	case *ast.ConvertExpr:
		w.walkExpression(e.Value)
	}
}
