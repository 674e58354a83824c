package ast

import "github.com/covenant-lang/covenant/internal/lexer"

// Node is the base interface for all AST nodes
type Node interface {
	Pos() (line, col int)
}

// Statement nodes
type Statement interface {
	Node
	stmtNode()
}

// Expression nodes
type Expression interface {
	Node
	exprNode()
}

// Decl is a top-level declaration: a state variable or a function.
// Declaration order is significant; the ordering validator rejects any
// use of a symbol declared later in the sequence.
type Decl interface {
	Node
	DeclName() string
	declNode()
}

// Contract represents one compilation unit
type Contract struct {
	Name   string
	Decls  []Decl // state variables and functions, in source order
	Line   int
	Column int
}

func (c *Contract) Pos() (int, int) { return c.Line, c.Column }

// VarDecl represents a state variable declaration: name: type;
type VarDecl struct {
	Name   string
	Type   *TypeRef
	Line   int
	Column int
}

func (v *VarDecl) Pos() (int, int)  { return v.Line, v.Column }
func (v *VarDecl) DeclName() string { return v.Name }
func (v *VarDecl) declNode()        {}

// FuncDecl represents a function declaration with its decorators
type FuncDecl struct {
	Name       string
	Decorators []*Decorator
	Params     []*Param
	ReturnType *TypeRef // nil for no return value
	Body       *Block
	Line       int
	Column     int
}

func (f *FuncDecl) Pos() (int, int)  { return f.Line, f.Column }
func (f *FuncDecl) DeclName() string { return f.Name }
func (f *FuncDecl) declNode()        {}

// Decorator represents a @name line preceding a function declaration
type Decorator struct {
	Name   string // "public", "private", "constant", "payable"
	Line   int
	Column int
}

func (d *Decorator) Pos() (int, int) { return d.Line, d.Column }

// Param represents a function parameter
type Param struct {
	Name   string
	Type   *TypeRef
	Line   int
	Column int
}

func (p *Param) Pos() (int, int) { return p.Line, p.Column }

// TypeRef represents a reference to one of the declared types
type TypeRef struct {
	Name   string
	Line   int
	Column int
}

func (t *TypeRef) Pos() (int, int) { return t.Line, t.Column }

// Block represents a block of statements
type Block struct {
	Statements []Statement
	Line       int
	Column     int
}

func (b *Block) Pos() (int, int) { return b.Line, b.Column }
func (b *Block) stmtNode()       {}

// LetStmt represents a local variable binding
type LetStmt struct {
	Name   string
	Type   *TypeRef // nil when the type is inferred from the value
	Value  Expression
	Line   int
	Column int
}

func (l *LetStmt) Pos() (int, int) { return l.Line, l.Column }
func (l *LetStmt) stmtNode()       {}

// AssignStmt represents an assignment statement
type AssignStmt struct {
	Target *Identifier
	Value  Expression
	Line   int
	Column int
}

func (a *AssignStmt) Pos() (int, int) { return a.Line, a.Column }
func (a *AssignStmt) stmtNode()       {}

// ReturnStmt represents a return statement
type ReturnStmt struct {
	Value  Expression // nil for bare return
	Line   int
	Column int
}

func (r *ReturnStmt) Pos() (int, int) { return r.Line, r.Column }
func (r *ReturnStmt) stmtNode()       {}

// IfStmt represents an if statement
type IfStmt struct {
	Condition Expression
	Then      *Block
	Else      Statement // *Block, *IfStmt, or nil
	Line      int
	Column    int
}

func (i *IfStmt) Pos() (int, int) { return i.Line, i.Column }
func (i *IfStmt) stmtNode()       {}

// ExprStmt represents an expression statement
type ExprStmt struct {
	Expr   Expression
	Line   int
	Column int
}

func (e *ExprStmt) Pos() (int, int) { return e.Line, e.Column }
func (e *ExprStmt) stmtNode()       {}

// BinaryExpr represents a binary expression
type BinaryExpr struct {
	Left   Expression
	Op     lexer.TokenType
	Right  Expression
	Line   int
	Column int
}

func (b *BinaryExpr) Pos() (int, int) { return b.Line, b.Column }
func (b *BinaryExpr) exprNode()       {}

// UnaryExpr represents a unary expression
type UnaryExpr struct {
	Op      lexer.TokenType
	Operand Expression
	Line    int
	Column  int
}

func (u *UnaryExpr) Pos() (int, int) { return u.Line, u.Column }
func (u *UnaryExpr) exprNode()       {}

// CallExpr represents a function call
type CallExpr struct {
	Function string
	Args     []Expression
	Line     int
	Column   int
}

func (c *CallExpr) Pos() (int, int) { return c.Line, c.Column }
func (c *CallExpr) exprNode()       {}

// ConvertExpr represents an explicit type conversion: uint256(x)
type ConvertExpr struct {
	Target *TypeRef
	Value  Expression
	Line   int
	Column int
}

func (c *ConvertExpr) Pos() (int, int) { return c.Line, c.Column }
func (c *ConvertExpr) exprNode()       {}

// Identifier represents an identifier
type Identifier struct {
	Name   string
	Line   int
	Column int
}

func (i *Identifier) Pos() (int, int) { return i.Line, i.Column }
func (i *Identifier) exprNode()       {}

// IntLit represents an integer literal
type IntLit struct {
	Value  string
	Line   int
	Column int
}

func (i *IntLit) Pos() (int, int) { return i.Line, i.Column }
func (i *IntLit) exprNode()       {}

// DecimalLit represents a fixed-point decimal literal
type DecimalLit struct {
	Value  string
	Line   int
	Column int
}

func (d *DecimalLit) Pos() (int, int) { return d.Line, d.Column }
func (d *DecimalLit) exprNode()       {}

// HexLit represents a hexadecimal literal (0x...)
type HexLit struct {
	Value  string // including the 0x prefix
	Line   int
	Column int
}

func (h *HexLit) Pos() (int, int) { return h.Line, h.Column }
func (h *HexLit) exprNode()       {}

// BoolLit represents a boolean literal
type BoolLit struct {
	Value  bool
	Line   int
	Column int
}

func (b *BoolLit) Pos() (int, int) { return b.Line, b.Column }
func (b *BoolLit) exprNode()       {}

// Functions returns the function declarations in declaration order
func (c *Contract) Functions() []*FuncDecl {
	var fns []*FuncDecl
	for _, d := range c.Decls {
		if fn, ok := d.(*FuncDecl); ok {
			fns = append(fns, fn)
		}
	}
	return fns
}

// StateVars returns the state variable declarations in declaration order
func (c *Contract) StateVars() []*VarDecl {
	var vars []*VarDecl
	for _, d := range c.Decls {
		if v, ok := d.(*VarDecl); ok {
			vars = append(vars, v)
		}
	}
	return vars
}
