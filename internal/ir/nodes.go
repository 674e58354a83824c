package ir

import (
	"math/big"

	"github.com/covenant-lang/covenant/internal/checker"
	"github.com/covenant-lang/covenant/internal/lexer"
)

// Contract is the typed intermediate form of one compilation unit.
// Every expression carries its resolved type, every arithmetic node can
// carry a guard, and every conversion carries its clamp or
// reinterpretation marker. Later passes mutate guards in place.
type Contract struct {
	Name      string
	StateVars []*StateVar
	Functions []*Function
}

// StateVar is a contract storage slot
type StateVar struct {
	Name string
	Type *checker.Type
	Slot int
}

// Function is a lowered function body with its resolved decorations
type Function struct {
	Name       string
	Visibility checker.Visibility
	Constant   bool
	Payable    bool
	Params     []Param
	ReturnType *checker.Type // checker.TypeVoid when nothing is returned
	Body       []Stmt
}

// Param is a lowered function parameter
type Param struct {
	Name string
	Type *checker.Type
}

// Stmt is a lowered statement
type Stmt interface {
	stmtNode()
}

// Let binds a new local variable
type Let struct {
	Name  string
	Type  *checker.Type
	Value Expr
}

// Assign stores a value into a local variable or a state slot
type Assign struct {
	Target string
	State  bool // true when Target names a state variable
	Value  Expr
}

// Return exits the function, with an optional value
type Return struct {
	Value Expr // nil for a bare return
}

// If branches on a bool condition
type If struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// ExprStmt evaluates an expression for its effects
type ExprStmt struct {
	Expr Expr
}

func (*Let) stmtNode()      {}
func (*Assign) stmtNode()   {}
func (*Return) stmtNode()   {}
func (*If) stmtNode()       {}
func (*ExprStmt) stmtNode() {}

// Expr is a lowered expression. Every expression knows its type.
type Expr interface {
	ExprType() *checker.Type
	Pos() (line, col int)
	exprNode()
}

// Guard is the runtime range check attached to an arithmetic node. The
// emitted code faults when the mathematical result falls outside
// [Min, Max], and additionally when the divisor is zero if CheckDivZero
// is set.
type Guard struct {
	Min          *big.Rat
	Max          *big.Rat
	CheckDivZero bool
}

// Clamp is the saturation annotation attached to a numeric conversion
// of a runtime value. The emitted code pins the source value to
// [Min, Max] before the representation change.
type Clamp struct {
	Min *big.Rat
	Max *big.Rat
}

// Binary is an arithmetic, comparison, or logical operation
type Binary struct {
	Op     lexer.TokenType
	Left   Expr
	Right  Expr
	Type   *checker.Type
	Guard  *Guard // set by the guard rewriter on arithmetic nodes
	Line   int
	Column int
}

// Unary is a negation or logical not
type Unary struct {
	Op      lexer.TokenType
	Operand Expr
	Type    *checker.Type
	Line    int
	Column  int
}

// Call invokes another contract function
type Call struct {
	Function string
	Args     []Expr
	Type     *checker.Type
	Line     int
	Column   int
}

// Convert changes the type of a runtime value. Exactly one of Clamp or
// Reinterpret is set; a conversion whose source already has the target
// type carries neither.
type Convert struct {
	Value       Expr
	Type        *checker.Type
	Clamp       *Clamp
	Reinterpret bool
	Line        int
	Column      int
}

// Load reads a local variable, parameter, or state slot
type Load struct {
	Name   string
	State  bool // true when Name is a state variable
	Type   *checker.Type
	Line   int
	Column int
}

// IntConst is an integer constant with its exact value
type IntConst struct {
	Value  *big.Int
	Type   *checker.Type
	Line   int
	Column int
}

// DecConst is a fixed-point decimal constant with its exact value
type DecConst struct {
	Value  *big.Rat
	Type   *checker.Type
	Line   int
	Column int
}

// BytesConst is a bytes32 or address constant
type BytesConst struct {
	Value  []byte
	Type   *checker.Type
	Line   int
	Column int
}

// BoolConst is a boolean constant
type BoolConst struct {
	Value  bool
	Type   *checker.Type
	Line   int
	Column int
}

func (b *Binary) ExprType() *checker.Type     { return b.Type }
func (u *Unary) ExprType() *checker.Type      { return u.Type }
func (c *Call) ExprType() *checker.Type       { return c.Type }
func (c *Convert) ExprType() *checker.Type    { return c.Type }
func (l *Load) ExprType() *checker.Type       { return l.Type }
func (i *IntConst) ExprType() *checker.Type   { return i.Type }
func (d *DecConst) ExprType() *checker.Type   { return d.Type }
func (b *BytesConst) ExprType() *checker.Type { return b.Type }
func (b *BoolConst) ExprType() *checker.Type  { return b.Type }

func (b *Binary) Pos() (int, int)     { return b.Line, b.Column }
func (u *Unary) Pos() (int, int)      { return u.Line, u.Column }
func (c *Call) Pos() (int, int)       { return c.Line, c.Column }
func (c *Convert) Pos() (int, int)    { return c.Line, c.Column }
func (l *Load) Pos() (int, int)       { return l.Line, l.Column }
func (i *IntConst) Pos() (int, int)   { return i.Line, i.Column }
func (d *DecConst) Pos() (int, int)   { return d.Line, d.Column }
func (b *BytesConst) Pos() (int, int) { return b.Line, b.Column }
func (b *BoolConst) Pos() (int, int)  { return b.Line, b.Column }

func (*Binary) exprNode()     {}
func (*Unary) exprNode()      {}
func (*Call) exprNode()       {}
func (*Convert) exprNode()    {}
func (*Load) exprNode()       {}
func (*IntConst) exprNode()   {}
func (*DecConst) exprNode()   {}
func (*BytesConst) exprNode() {}
func (*BoolConst) exprNode()  {}

// IsConst reports whether e is a compile-time constant
func IsConst(e Expr) bool {
	switch e.(type) {
	case *IntConst, *DecConst, *BytesConst, *BoolConst:
		return true
	}
	return false
}
