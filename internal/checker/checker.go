package checker

import (
	"math/big"
	"strings"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diagnostic"
	"github.com/covenant-lang/covenant/internal/lexer"
)

// ParamInfo holds information about a parameter
type ParamInfo struct {
	Name string
	Type *Type
}

// FuncInfo holds the resolved signature and decorations of a function
type FuncInfo struct {
	Name       string
	Visibility Visibility
	Constant   bool
	Payable    bool
	Params     []ParamInfo
	ReturnType *Type // TypeVoid when the function returns nothing
	DeclIndex  int
}

// StateVarInfo holds information about a state variable. Slot is the
// variable's position among state variables, in declaration order.
type StateVarInfo struct {
	Name string
	Type *Type
	Slot int
}

// Checker performs type and conversion checking on the AST. It assumes
// the ordering validator and decorator resolver have already run.
type Checker struct {
	contract    *ast.Contract
	diag        *diagnostic.Diagnostics
	registry    *Registry
	decorations map[string]*Decorations

	stateVars  map[string]*StateVarInfo
	stateOrder []*StateVarInfo
	functions  map[string]*FuncInfo
	scope      *Scope

	exprTypes   map[ast.Expression]*Type
	conversions map[*ast.ConvertExpr]*ConversionEntry
	currentFunc *FuncInfo
}

// CheckResult holds the results of checking for use by later pipeline stages
type CheckResult struct {
	Diagnostics *diagnostic.Diagnostics
	ExprTypes   map[ast.Expression]*Type
	Conversions map[*ast.ConvertExpr]*ConversionEntry
	StateVars   []*StateVarInfo
	Functions   map[string]*FuncInfo
}

// CheckWithResult performs type and conversion checking and returns
// results for downstream stages. The registry may be shared across
// invocations; it is never mutated.
func CheckWithResult(contract *ast.Contract, decorations map[string]*Decorations, registry *Registry) *CheckResult {
	if registry == nil {
		registry = DefaultRegistry()
	}
	c := &Checker{
		contract:    contract,
		diag:        diagnostic.New(),
		registry:    registry,
		decorations: decorations,
		stateVars:   make(map[string]*StateVarInfo),
		functions:   make(map[string]*FuncInfo),
		scope:       NewScope(nil),
		exprTypes:   make(map[ast.Expression]*Type),
		conversions: make(map[*ast.ConvertExpr]*ConversionEntry),
	}

	c.registerStateVars()
	c.registerFunctions()
	c.checkFunctions()

	return &CheckResult{
		Diagnostics: c.diag,
		ExprTypes:   c.exprTypes,
		Conversions: c.conversions,
		StateVars:   c.stateOrder,
		Functions:   c.functions,
	}
}

// Check performs type and conversion checking on a contract
func Check(contract *ast.Contract, decorations map[string]*Decorations, registry *Registry) *diagnostic.Diagnostics {
	return CheckWithResult(contract, decorations, registry).Diagnostics
}

// registerStateVars registers all state variables in the global scope
func (c *Checker) registerStateVars() {
	for i, decl := range c.contract.Decls {
		sv, ok := decl.(*ast.VarDecl)
		if !ok {
			continue
		}
		svType := ByName(sv.Type.Name)
		if svType == nil {
			line, col := sv.Type.Pos()
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col, "unknown type '%s'", sv.Type.Name)
			svType = TypeInt128 // fallback
		}
		info := &StateVarInfo{
			Name: sv.Name,
			Type: svType,
			Slot: len(c.stateOrder),
		}
		c.stateVars[sv.Name] = info
		c.stateOrder = append(c.stateOrder, info)

		c.scope.Define(sv.Name, &Symbol{
			Name:      sv.Name,
			Type:      svType,
			Kind:      SymState,
			DeclIndex: i,
		})
	}
}

// registerFunctions registers all function signatures in the global scope
func (c *Checker) registerFunctions() {
	for i, decl := range c.contract.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}

		params := make([]ParamInfo, 0, len(fn.Params))
		for _, p := range fn.Params {
			pType := ByName(p.Type.Name)
			if pType == nil {
				line, col := p.Type.Pos()
				c.diag.Errorf(diagnostic.TypeMismatchError, line, col, "unknown type '%s'", p.Type.Name)
				pType = TypeInt128 // fallback
			}
			params = append(params, ParamInfo{Name: p.Name, Type: pType})
		}

		returnType := TypeVoid
		if fn.ReturnType != nil {
			returnType = ByName(fn.ReturnType.Name)
			if returnType == nil {
				line, col := fn.ReturnType.Pos()
				c.diag.Errorf(diagnostic.TypeMismatchError, line, col, "unknown type '%s'", fn.ReturnType.Name)
				returnType = TypeVoid // fallback
			}
		}

		info := &FuncInfo{
			Name:       fn.Name,
			Params:     params,
			ReturnType: returnType,
			DeclIndex:  i,
		}
		if d, ok := c.decorations[fn.Name]; ok {
			info.Visibility = d.Visibility
			info.Constant = d.Constant
			info.Payable = d.Payable
		}
		c.functions[fn.Name] = info

		c.scope.Define(fn.Name, &Symbol{
			Name:      fn.Name,
			Type:      returnType,
			Kind:      SymFunction,
			DeclIndex: i,
		})
	}
}

// checkFunctions checks all function bodies
func (c *Checker) checkFunctions() {
	for _, fn := range c.contract.Functions() {
		c.checkFunction(fn)
	}
}

// checkFunction checks a single function body
func (c *Checker) checkFunction(fn *ast.FuncDecl) {
	funcScope := NewScope(c.scope)
	c.currentFunc = c.functions[fn.Name]

	for _, p := range fn.Params {
		pType := ByName(p.Type.Name)
		if pType != nil {
			funcScope.Define(p.Name, &Symbol{
				Name:      p.Name,
				Type:      pType,
				Kind:      SymParam,
				DeclIndex: -1,
			})
		}
	}

	if fn.Body != nil {
		c.checkBlock(fn.Body, funcScope)
	}

	c.currentFunc = nil
}

// checkBlock checks a block of statements
func (c *Checker) checkBlock(block *ast.Block, scope *Scope) {
	for _, stmt := range block.Statements {
		c.checkStatement(stmt, scope)
	}
}

// checkStatement checks a statement
func (c *Checker) checkStatement(stmt ast.Statement, scope *Scope) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		c.checkLetStmt(s, scope)
	case *ast.AssignStmt:
		c.checkAssignStmt(s, scope)
	case *ast.ReturnStmt:
		c.checkReturnStmt(s, scope)
	case *ast.IfStmt:
		c.checkIfStmt(s, scope)
	case *ast.ExprStmt:
		c.checkExpression(s.Expr, scope, nil)
	case *ast.Block:
		blockScope := NewScope(scope)
		c.checkBlock(s, blockScope)
	}
}

// checkLetStmt checks a local variable binding
func (c *Checker) checkLetStmt(stmt *ast.LetStmt, scope *Scope) {
	if scope.ResolveLocal(stmt.Name) != nil {
		line, col := stmt.Pos()
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"variable '%s' already defined in this scope", stmt.Name)
		return
	}

	var declaredType *Type
	if stmt.Type != nil {
		declaredType = ByName(stmt.Type.Name)
		if declaredType == nil {
			line, col := stmt.Type.Pos()
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col, "unknown type '%s'", stmt.Type.Name)
			return
		}
	}

	valueType := c.checkExpression(stmt.Value, scope, declaredType)

	if valueType != nil && valueType.Equal(TypeVoid) {
		line, col := stmt.Pos()
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"cannot bind '%s' to an expression with no value", stmt.Name)
		return
	}
	if declaredType != nil && valueType != nil && !valueType.Equal(declaredType) {
		line, col := stmt.Pos()
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"type mismatch: cannot assign %s to %s without an explicit conversion", valueType, declaredType)
	}

	varType := declaredType
	if varType == nil {
		varType = valueType
	}

	if varType != nil {
		scope.Define(stmt.Name, &Symbol{
			Name:      stmt.Name,
			Type:      varType,
			Kind:      SymLocal,
			DeclIndex: -1,
		})
	}
}

// checkAssignStmt checks an assignment statement
func (c *Checker) checkAssignStmt(stmt *ast.AssignStmt, scope *Scope) {
	line, col := stmt.Pos()

	sym := scope.Resolve(stmt.Target.Name)
	if sym == nil {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"undeclared variable '%s'", stmt.Target.Name)
		c.checkExpression(stmt.Value, scope, nil)
		return
	}
	if sym.Kind == SymFunction {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"cannot assign to function '%s'", stmt.Target.Name)
		return
	}
	c.exprTypes[stmt.Target] = sym.Type

	valueType := c.checkExpression(stmt.Value, scope, sym.Type)
	if valueType != nil && !valueType.Equal(sym.Type) {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"type mismatch: cannot assign %s to %s without an explicit conversion", valueType, sym.Type)
	}
}

// checkReturnStmt checks a return statement against the enclosing signature
func (c *Checker) checkReturnStmt(stmt *ast.ReturnStmt, scope *Scope) {
	line, col := stmt.Pos()

	if c.currentFunc == nil {
		return
	}
	wants := c.currentFunc.ReturnType

	if stmt.Value == nil {
		if !wants.Equal(TypeVoid) {
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
				"function '%s' must return a value of type %s", c.currentFunc.Name, wants)
		}
		return
	}

	if wants.Equal(TypeVoid) {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"function '%s' does not return a value", c.currentFunc.Name)
		c.checkExpression(stmt.Value, scope, nil)
		return
	}

	valueType := c.checkExpression(stmt.Value, scope, wants)
	if valueType != nil && !valueType.Equal(wants) {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"type mismatch: function '%s' returns %s, got %s", c.currentFunc.Name, wants, valueType)
	}
}

// checkIfStmt checks an if statement
func (c *Checker) checkIfStmt(stmt *ast.IfStmt, scope *Scope) {
	condType := c.checkExpression(stmt.Condition, scope, TypeBool)
	if condType != nil && !condType.Equal(TypeBool) {
		line, col := stmt.Pos()
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"if condition must be bool, got %s", condType)
	}

	thenScope := NewScope(scope)
	c.checkBlock(stmt.Then, thenScope)

	if stmt.Else != nil {
		elseScope := NewScope(scope)
		c.checkStatement(stmt.Else, elseScope)
	}
}

// storeExprType stores the type of an expression for later use by lowering
func (c *Checker) storeExprType(expr ast.Expression, t *Type) *Type {
	if t != nil {
		c.exprTypes[expr] = t
	}
	return t
}

// checkExpression checks an expression and returns its type. The
// expected type only steers untyped literals; it never performs an
// implicit conversion between declared types.
func (c *Checker) checkExpression(expr ast.Expression, scope *Scope, expected *Type) *Type {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		return c.storeExprType(expr, c.checkBinaryExpr(e, scope, expected))
	case *ast.UnaryExpr:
		return c.storeExprType(expr, c.checkUnaryExpr(e, scope, expected))
	case *ast.CallExpr:
		return c.storeExprType(expr, c.checkCallExpr(e, scope))
	case *ast.ConvertExpr:
		return c.storeExprType(expr, c.checkConvertExpr(e, scope))
	case *ast.Identifier:
		return c.storeExprType(expr, c.checkIdentifier(e, scope))
	case *ast.IntLit:
		return c.storeExprType(expr, c.checkIntLit(e, expected))
	case *ast.DecimalLit:
		return c.storeExprType(expr, c.checkDecimalLit(e))
	case *ast.HexLit:
		return c.storeExprType(expr, c.checkHexLit(e, expected))
	case *ast.BoolLit:
		return c.storeExprType(expr, TypeBool)
	default:
		return nil
	}
}

// checkIntLit types an integer literal. An untyped integer literal
// adopts the expected numeric type when there is one, int128 otherwise,
// and must lie within that type's bounds.
func (c *Checker) checkIntLit(e *ast.IntLit, expected *Type) *Type {
	line, col := e.Pos()

	v, ok := new(big.Int).SetString(e.Value, 10)
	if !ok {
		c.diag.Errorf(diagnostic.ParseError, line, col, "malformed integer literal '%s'", e.Value)
		return nil
	}

	target := TypeInt128
	if expected != nil && expected.Numeric {
		target = expected
	}

	if !target.InRange(ratFromInt(v)) {
		c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
			"literal %s out of range for %s", e.Value, target)
	}
	return target
}

// checkDecimalLit types a fixed-point decimal literal
func (c *Checker) checkDecimalLit(e *ast.DecimalLit) *Type {
	line, col := e.Pos()

	v, ok := new(big.Rat).SetString(e.Value)
	if !ok {
		c.diag.Errorf(diagnostic.ParseError, line, col, "malformed decimal literal '%s'", e.Value)
		return nil
	}

	if i := strings.IndexByte(e.Value, '.'); i >= 0 && len(e.Value)-i-1 > DecimalPlaces {
		c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
			"decimal literal '%s' exceeds %d fractional digits", e.Value, DecimalPlaces)
	}
	if !TypeDecimal.InRange(v) {
		c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
			"literal %s out of range for decimal", e.Value)
	}
	return TypeDecimal
}

// checkHexLit types a hexadecimal literal as bytes32, or address when
// the context expects one and the width fits exactly.
func (c *Checker) checkHexLit(e *ast.HexLit, expected *Type) *Type {
	line, col := e.Pos()

	digits := strings.TrimPrefix(strings.TrimPrefix(e.Value, "0x"), "0X")
	byteLen := (len(digits) + 1) / 2

	if expected != nil && expected.Equal(TypeAddress) {
		if byteLen != TypeAddress.Size {
			c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
				"address literal must be exactly %d bytes, got %d", TypeAddress.Size, byteLen)
		}
		return TypeAddress
	}

	if byteLen > TypeBytes32.Size {
		c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
			"hex literal is %d bytes, larger than bytes32", byteLen)
	}
	return TypeBytes32
}

// checkBinaryExpr checks a binary expression. Both operands must have
// the identical declared type; there is no implicit widening.
func (c *Checker) checkBinaryExpr(expr *ast.BinaryExpr, scope *Scope, expected *Type) *Type {
	line, col := expr.Pos()

	switch expr.Op {
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT:
		operandHint := expected
		if operandHint != nil && !operandHint.Numeric {
			operandHint = nil
		}
		leftType := c.checkExpression(expr.Left, scope, operandHint)
		if leftType != nil {
			operandHint = leftType
		}
		rightType := c.checkExpression(expr.Right, scope, operandHint)
		if leftType == nil || rightType == nil {
			return nil
		}
		if !leftType.Numeric || !rightType.Numeric {
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
				"operator '%s' not defined for %s and %s", opName(expr.Op), leftType, rightType)
			return nil
		}
		if !leftType.Equal(rightType) {
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
				"operator '%s' requires matching types, got %s and %s", opName(expr.Op), leftType, rightType)
			return nil
		}
		return leftType

	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		leftType := c.checkExpression(expr.Left, scope, nil)
		rightType := c.checkExpression(expr.Right, scope, leftType)
		if leftType == nil || rightType == nil {
			return nil
		}
		if !leftType.Numeric || !leftType.Equal(rightType) {
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
				"operator '%s' not defined for %s and %s", opName(expr.Op), leftType, rightType)
			return nil
		}
		return TypeBool

	case lexer.EQ, lexer.NEQ:
		leftType := c.checkExpression(expr.Left, scope, nil)
		rightType := c.checkExpression(expr.Right, scope, leftType)
		if leftType == nil || rightType == nil {
			return nil
		}
		if !leftType.Equal(rightType) || leftType.Equal(TypeBytes) || leftType.Equal(TypeVoid) {
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
				"operator '%s' not defined for %s and %s", opName(expr.Op), leftType, rightType)
			return nil
		}
		return TypeBool

	case lexer.AND, lexer.OR:
		leftType := c.checkExpression(expr.Left, scope, TypeBool)
		rightType := c.checkExpression(expr.Right, scope, TypeBool)
		if leftType == nil || rightType == nil {
			return nil
		}
		if !leftType.Equal(TypeBool) || !rightType.Equal(TypeBool) {
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
				"operator '%s' requires bool operands, got %s and %s", opName(expr.Op), leftType, rightType)
			return nil
		}
		return TypeBool

	default:
		c.diag.Errorf(diagnostic.ParseError, line, col, "unknown binary operator")
		return nil
	}
}

// checkUnaryExpr checks a unary expression
func (c *Checker) checkUnaryExpr(expr *ast.UnaryExpr, scope *Scope, expected *Type) *Type {
	line, col := expr.Pos()

	switch expr.Op {
	case lexer.MINUS:
		operandHint := expected
		if operandHint != nil && !operandHint.Numeric {
			operandHint = nil
		}
		if t := c.checkNegatedLiteral(expr, operandHint); t != nil {
			return t
		}
		operandType := c.checkExpression(expr.Operand, scope, operandHint)
		if operandType == nil {
			return nil
		}
		if !operandType.Equal(TypeInt128) && !operandType.Equal(TypeDecimal) {
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
				"unary '-' not defined for %s", operandType)
			return nil
		}
		return operandType

	case lexer.NOT:
		operandType := c.checkExpression(expr.Operand, scope, TypeBool)
		if operandType == nil {
			return nil
		}
		if !operandType.Equal(TypeBool) {
			c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
				"unary 'not' requires a bool operand, got %s", operandType)
			return nil
		}
		return TypeBool

	default:
		c.diag.Errorf(diagnostic.ParseError, line, col, "unknown unary operator")
		return nil
	}
}

// checkNegatedLiteral types a numeric literal directly under a leading
// minus as one signed literal. The range check runs on the negated
// value, so a magnitude of 2^127 is accepted where -2^127 is the lower
// bound. Returns nil when the operand is not such a literal and the
// general unary path applies.
func (c *Checker) checkNegatedLiteral(expr *ast.UnaryExpr, hint *Type) *Type {
	line, col := expr.Pos()

	switch lit := expr.Operand.(type) {
	case *ast.IntLit:
		target := TypeInt128
		if hint != nil {
			target = hint
		}
		if !target.Equal(TypeInt128) && !target.Equal(TypeDecimal) {
			return nil
		}
		// malformed literals fall through to the general path,
		// which reports them
		v, ok := new(big.Int).SetString(lit.Value, 10)
		if !ok {
			return nil
		}
		if !target.InRange(new(big.Rat).Neg(ratFromInt(v))) {
			c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
				"literal -%s out of range for %s", lit.Value, target)
		}
		c.storeExprType(lit, target)
		return target

	case *ast.DecimalLit:
		v, ok := new(big.Rat).SetString(lit.Value)
		if !ok {
			return nil
		}
		if i := strings.IndexByte(lit.Value, '.'); i >= 0 && len(lit.Value)-i-1 > DecimalPlaces {
			c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
				"decimal literal '%s' exceeds %d fractional digits", lit.Value, DecimalPlaces)
		}
		if !TypeDecimal.InRange(new(big.Rat).Neg(v)) {
			c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
				"literal -%s out of range for decimal", lit.Value)
		}
		c.storeExprType(lit, TypeDecimal)
		return TypeDecimal
	}
	return nil
}

// checkCallExpr checks a function call
func (c *Checker) checkCallExpr(expr *ast.CallExpr, scope *Scope) *Type {
	line, col := expr.Pos()

	fn, exists := c.functions[expr.Function]
	if !exists {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"unknown function '%s'", expr.Function)
		for _, arg := range expr.Args {
			c.checkExpression(arg, scope, nil)
		}
		return nil
	}

	if len(expr.Args) != len(fn.Params) {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"function '%s' expects %d arguments, got %d",
			expr.Function, len(fn.Params), len(expr.Args))
		return fn.ReturnType
	}

	for i, arg := range expr.Args {
		argType := c.checkExpression(arg, scope, fn.Params[i].Type)
		if argType != nil && !argType.Equal(fn.Params[i].Type) {
			argLine, argCol := arg.Pos()
			c.diag.Errorf(diagnostic.TypeMismatchError, argLine, argCol,
				"argument %d to '%s': expected %s, got %s without an explicit conversion",
				i+1, expr.Function, fn.Params[i].Type, argType)
		}
	}

	return fn.ReturnType
}

// checkConvertExpr checks an explicit conversion through the registry.
// Literal sources must satisfy the target bounds at compile time
// (LiteralRangeError); runtime sources get a clamp recorded instead.
func (c *Checker) checkConvertExpr(expr *ast.ConvertExpr, scope *Scope) *Type {
	line, col := expr.Pos()

	entry, ok := c.registry.Lookup(expr.Target.Name)
	if !ok {
		c.diag.Errorf(diagnostic.UnknownConversionError, line, col,
			"no conversion to type '%s'", expr.Target.Name)
		c.checkExpression(expr.Value, scope, nil)
		return ByName(expr.Target.Name)
	}

	if v, isLit := literalValue(expr.Value); isLit && !entry.Reinterpret {
		// Literal overflow is a compile-time fault, never a clamp
		if v.Cmp(entry.Min) < 0 || v.Cmp(entry.Max) > 0 {
			c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
				"literal %s out of range for conversion to %s", v.RatString(), entry.Target)
			return entry.Target
		}
		if !v.IsInt() && !entry.Target.Equal(TypeDecimal) {
			c.diag.Errorf(diagnostic.LiteralRangeError, line, col,
				"fractional literal cannot convert to %s without losing precision", entry.Target)
			return entry.Target
		}
		// The literal is typed against the target so its own range
		// check does not fire with a narrower default
		hint := entry.Target
		if !hint.Numeric {
			hint = nil
		}
		c.checkExpression(expr.Value, scope, hint)
		c.conversions[expr] = entry
		return entry.Target
	}

	srcType := c.checkExpression(expr.Value, scope, nil)
	if srcType == nil {
		return entry.Target
	}
	if !srcType.Equal(entry.Target) && !entry.Accepts(srcType) {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"cannot convert %s to %s", srcType, entry.Target)
		return entry.Target
	}

	c.conversions[expr] = entry
	return entry.Target
}

// checkIdentifier checks an identifier use
func (c *Checker) checkIdentifier(expr *ast.Identifier, scope *Scope) *Type {
	line, col := expr.Pos()

	sym := scope.Resolve(expr.Name)
	if sym == nil {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"undeclared variable '%s'", expr.Name)
		return nil
	}
	if sym.Kind == SymFunction {
		c.diag.Errorf(diagnostic.TypeMismatchError, line, col,
			"function '%s' used as a value", expr.Name)
		return nil
	}
	return sym.Type
}

// literalValue extracts the exact numeric value of a literal expression,
// looking through a single leading unary minus.
func literalValue(expr ast.Expression) (*big.Rat, bool) {
	switch e := expr.(type) {
	case *ast.IntLit:
		if v, ok := new(big.Int).SetString(e.Value, 10); ok {
			return ratFromInt(v), true
		}
	case *ast.DecimalLit:
		if v, ok := new(big.Rat).SetString(e.Value); ok {
			return v, true
		}
	case *ast.UnaryExpr:
		if e.Op == lexer.MINUS {
			if v, ok := literalValue(e.Operand); ok {
				return new(big.Rat).Neg(v), true
			}
		}
	}
	return nil, false
}

// opName returns the source spelling of an operator token
func opName(op lexer.TokenType) string {
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
		return op.String()
	}
}
