package parser

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diagnostic"
	"github.com/covenant-lang/covenant/internal/lexer"
)

// New creates a new parser
func New(source string) *Parser {
	l := lexer.New(source)
	tokens := l.Tokenize()
	return &Parser{
		tokens: tokens,
		pos:    0,
		diags:  diagnostic.New(),
	}
}

// Diagnostics returns the parser's diagnostics
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Parse parses the token stream into a Contract AST
func (p *Parser) Parse() *ast.Contract {
	contract := p.parseContractDecl()

	for !p.check(lexer.EOF) {
		switch {
		case p.check(lexer.AT) || p.check(lexer.DEF):
			contract.Decls = append(contract.Decls, p.parseFuncDecl())
		case p.check(lexer.IDENT):
			contract.Decls = append(contract.Decls, p.parseVarDecl())
		default:
			p.diags.Errorf(diagnostic.ParseError, p.current().Line, p.current().Column,
				"unexpected token %s at top level", p.current().Type)
			startPos := p.pos
			p.synchronize()
			if p.pos == startPos {
				p.advance() // ensure forward progress to avoid infinite loop
			}
		}
	}
	return contract
}

// parseContractDecl parses: contract <name>;
func (p *Parser) parseContractDecl() *ast.Contract {
	tok := p.expect(lexer.CONTRACT)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.SEMICOLON)

	return &ast.Contract{
		Name:   name.Literal,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseVarDecl parses a state variable declaration: <name>: <type>;
func (p *Parser) parseVarDecl() *ast.VarDecl {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	varType := p.parseTypeRef()
	p.expect(lexer.SEMICOLON)

	return &ast.VarDecl{
		Name:   name.Literal,
		Type:   varType,
		Line:   name.Line,
		Column: name.Column,
	}
}

// parseFuncDecl parses: [@decorator ...] def <name>(<params>) [returns <type>] { ... }
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	tok := p.current()

	var decorators []*ast.Decorator
	for p.check(lexer.AT) {
		decorators = append(decorators, p.parseDecorator())
	}

	p.expect(lexer.DEF)
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	params := p.parseParamList()
	p.expect(lexer.RPAREN)

	var retType *ast.TypeRef
	if p.match(lexer.RETURNS) {
		retType = p.parseTypeRef()
	}

	body := p.parseBlock()

	return &ast.FuncDecl{
		Name:       name.Literal,
		Decorators: decorators,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Line:       tok.Line,
		Column:     tok.Column,
	}
}

// parseDecorator parses: @<name>
func (p *Parser) parseDecorator() *ast.Decorator {
	tok := p.expect(lexer.AT)
	name := p.expect(lexer.IDENT)

	return &ast.Decorator{
		Name:   name.Literal,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseParamList parses a comma-separated list of name: type pairs
func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param

	if p.check(lexer.RPAREN) {
		return params
	}

	params = append(params, p.parseParam())
	for p.match(lexer.COMMA) {
		params = append(params, p.parseParam())
	}
	return params
}

// parseParam parses: <name>: <type>
func (p *Parser) parseParam() *ast.Param {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.COLON)
	paramType := p.parseTypeRef()

	return &ast.Param{
		Name:   name.Literal,
		Type:   paramType,
		Line:   name.Line,
		Column: name.Column,
	}
}

// parseTypeRef parses a type name
func (p *Parser) parseTypeRef() *ast.TypeRef {
	tok := p.current()
	if !lexer.IsTypeToken(tok.Type) {
		p.diags.Errorf(diagnostic.ParseError, tok.Line, tok.Column,
			"expected type name, got %s", tok.Type)
		p.advance()
		return &ast.TypeRef{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
	}
	p.advance()
	return &ast.TypeRef{
		Name:   tok.Literal,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseBlock parses: { <statements> }
func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(lexer.LBRACE)
	block := &ast.Block{
		Line:   tok.Line,
		Column: tok.Column,
	}

	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		startPos := p.pos
		block.Statements = append(block.Statements, p.parseStatement())
		if p.pos == startPos {
			p.advance() // ensure forward progress
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

// parseStatement parses a single statement
func (p *Parser) parseStatement() ast.Statement {
	switch p.current().Type {
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.IDENT:
		// Assignment or expression statement; disambiguate on the next token
		if p.peek().Type == lexer.ASSIGN {
			return p.parseAssignStmt()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseLetStmt parses: let <name> [: <type>] = <expr>;
func (p *Parser) parseLetStmt() ast.Statement {
	tok := p.expect(lexer.LET)
	name := p.expect(lexer.IDENT)

	var letType *ast.TypeRef
	if p.match(lexer.COLON) {
		letType = p.parseTypeRef()
	}

	p.expect(lexer.ASSIGN)
	value := p.parseExpression()
	p.expect(lexer.SEMICOLON)

	return &ast.LetStmt{
		Name:   name.Literal,
		Type:   letType,
		Value:  value,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseAssignStmt parses: <name> = <expr>;
func (p *Parser) parseAssignStmt() ast.Statement {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.ASSIGN)
	value := p.parseExpression()
	p.expect(lexer.SEMICOLON)

	return &ast.AssignStmt{
		Target: &ast.Identifier{Name: name.Literal, Line: name.Line, Column: name.Column},
		Value:  value,
		Line:   name.Line,
		Column: name.Column,
	}
}

// parseReturnStmt parses: return [<expr>];
func (p *Parser) parseReturnStmt() ast.Statement {
	tok := p.expect(lexer.RETURN)

	var value ast.Expression
	if !p.check(lexer.SEMICOLON) {
		value = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)

	return &ast.ReturnStmt{
		Value:  value,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// parseIfStmt parses: if <expr> { ... } [else { ... } | else if ...]
func (p *Parser) parseIfStmt() ast.Statement {
	tok := p.expect(lexer.IF)
	condition := p.parseExpression()
	then := p.parseBlock()

	var elseStmt ast.Statement
	if p.match(lexer.ELSE) {
		if p.check(lexer.IF) {
			elseStmt = p.parseIfStmt()
		} else {
			elseStmt = p.parseBlock()
		}
	}

	return &ast.IfStmt{
		Condition: condition,
		Then:      then,
		Else:      elseStmt,
		Line:      tok.Line,
		Column:    tok.Column,
	}
}

// parseExprStmt parses: <expr>;
func (p *Parser) parseExprStmt() ast.Statement {
	tok := p.current()
	expr := p.parseExpression()
	p.expect(lexer.SEMICOLON)

	return &ast.ExprStmt{
		Expr:   expr,
		Line:   tok.Line,
		Column: tok.Column,
	}
}

// Expression parsing, lowest precedence first:
// or < and < equality < comparison < additive < multiplicative < unary

func (p *Parser) parseExpression() ast.Expression {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.check(lexer.OR) {
		op := p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Left: left, Op: op.Type, Right: right, Line: op.Line, Column: op.Column}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(lexer.AND) {
		op := p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Left: left, Op: op.Type, Right: right, Line: op.Line, Column: op.Column}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.check(lexer.EQ) || p.check(lexer.NEQ) {
		op := p.advance()
		right := p.parseComparison()
		left = &ast.BinaryExpr{Left: left, Op: op.Type, Right: right, Line: op.Line, Column: op.Column}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for p.check(lexer.LT) || p.check(lexer.GT) || p.check(lexer.LEQ) || p.check(lexer.GEQ) {
		op := p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Left: left, Op: op.Type, Right: right, Line: op.Line, Column: op.Column}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Left: left, Op: op.Type, Right: right, Line: op.Line, Column: op.Column}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.check(lexer.STAR) || p.check(lexer.SLASH) || p.check(lexer.PERCENT) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Left: left, Op: op.Type, Right: right, Line: op.Line, Column: op.Column}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.check(lexer.MINUS) || p.check(lexer.NOT) {
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: op.Type, Operand: operand, Line: op.Line, Column: op.Column}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current()

	switch {
	case tok.Type == lexer.INT_LIT:
		p.advance()
		return &ast.IntLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}

	case tok.Type == lexer.DECIMAL_LIT:
		p.advance()
		return &ast.DecimalLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}

	case tok.Type == lexer.HEX_LIT:
		p.advance()
		return &ast.HexLit{Value: tok.Literal, Line: tok.Line, Column: tok.Column}

	case tok.Type == lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Line: tok.Line, Column: tok.Column}

	case tok.Type == lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Line: tok.Line, Column: tok.Column}

	case lexer.IsTypeToken(tok.Type):
		// Explicit conversion: <type>(<expr>)
		return p.parseConvertExpr()

	case tok.Type == lexer.IDENT:
		if p.peek().Type == lexer.LPAREN {
			return p.parseCallExpr()
		}
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Line: tok.Line, Column: tok.Column}

	case tok.Type == lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN)
		return expr

	default:
		p.diags.Errorf(diagnostic.ParseError, tok.Line, tok.Column,
			"unexpected token %s in expression", tok.Type)
		p.advance()
		return &ast.Identifier{Name: tok.Literal, Line: tok.Line, Column: tok.Column}
	}
}

// parseConvertExpr parses an explicit conversion: <type>(<expr>)
func (p *Parser) parseConvertExpr() ast.Expression {
	typeRef := p.parseTypeRef()
	p.expect(lexer.LPAREN)
	value := p.parseExpression()
	p.expect(lexer.RPAREN)

	return &ast.ConvertExpr{
		Target: typeRef,
		Value:  value,
		Line:   typeRef.Line,
		Column: typeRef.Column,
	}
}

// parseCallExpr parses: <name>(<args>)
func (p *Parser) parseCallExpr() ast.Expression {
	name := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)

	var args []ast.Expression
	if !p.check(lexer.RPAREN) {
		args = append(args, p.parseExpression())
		for p.match(lexer.COMMA) {
			args = append(args, p.parseExpression())
		}
	}
	p.expect(lexer.RPAREN)

	return &ast.CallExpr{
		Function: name.Literal,
		Args:     args,
		Line:     name.Line,
		Column:   name.Column,
	}
}
