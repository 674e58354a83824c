package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT       // x, supply, myVariable
	INT_LIT     // 123
	DECIMAL_LIT // 123.45
	HEX_LIT     // 0xdeadbeef

	// Keywords
	CONTRACT
	DEF
	RETURNS
	LET
	IF
	ELSE
	RETURN
	TRUE
	FALSE
	AND
	OR
	NOT

	// Type keywords
	INT128_TYPE
	UINT256_TYPE
	DECIMAL_TYPE
	BYTES32_TYPE
	BYTES_TYPE
	BOOL_TYPE
	ADDRESS_TYPE

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	EQ      // ==
	NEQ     // !=
	LT      // <
	GT      // >
	LEQ     // <=
	GEQ     // >=
	ASSIGN  // =

	// Delimiters
	AT        // @
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	COLON     // :
	SEMICOLON // ;
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	switch t {
	case ILLEGAL:
		return "ILLEGAL"
	case EOF:
		return "EOF"
	case IDENT:
		return "IDENT"
	case INT_LIT:
		return "INT_LIT"
	case DECIMAL_LIT:
		return "DECIMAL_LIT"
	case HEX_LIT:
		return "HEX_LIT"
	case CONTRACT:
		return "CONTRACT"
	case DEF:
		return "DEF"
	case RETURNS:
		return "RETURNS"
	case LET:
		return "LET"
	case IF:
		return "IF"
	case ELSE:
		return "ELSE"
	case RETURN:
		return "RETURN"
	case TRUE:
		return "TRUE"
	case FALSE:
		return "FALSE"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOT:
		return "NOT"
	case INT128_TYPE:
		return "INT128_TYPE"
	case UINT256_TYPE:
		return "UINT256_TYPE"
	case DECIMAL_TYPE:
		return "DECIMAL_TYPE"
	case BYTES32_TYPE:
		return "BYTES32_TYPE"
	case BYTES_TYPE:
		return "BYTES_TYPE"
	case BOOL_TYPE:
		return "BOOL_TYPE"
	case ADDRESS_TYPE:
		return "ADDRESS_TYPE"
	case PLUS:
		return "PLUS"
	case MINUS:
		return "MINUS"
	case STAR:
		return "STAR"
	case SLASH:
		return "SLASH"
	case PERCENT:
		return "PERCENT"
	case EQ:
		return "EQ"
	case NEQ:
		return "NEQ"
	case LT:
		return "LT"
	case GT:
		return "GT"
	case LEQ:
		return "LEQ"
	case GEQ:
		return "GEQ"
	case ASSIGN:
		return "ASSIGN"
	case AT:
		return "AT"
	case LPAREN:
		return "LPAREN"
	case RPAREN:
		return "RPAREN"
	case LBRACE:
		return "LBRACE"
	case RBRACE:
		return "RBRACE"
	case COMMA:
		return "COMMA"
	case COLON:
		return "COLON"
	case SEMICOLON:
		return "SEMICOLON"
	default:
		return fmt.Sprintf("TokenType(%d)", t)
	}
}

// keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"contract": CONTRACT,
	"def":      DEF,
	"returns":  RETURNS,
	"let":      LET,
	"if":       IF,
	"else":     ELSE,
	"return":   RETURN,
	"true":     TRUE,
	"false":    FALSE,
	"and":      AND,
	"or":       OR,
	"not":      NOT,
	"int128":   INT128_TYPE,
	"uint256":  UINT256_TYPE,
	"decimal":  DECIMAL_TYPE,
	"bytes32":  BYTES32_TYPE,
	"bytes":    BYTES_TYPE,
	"bool":     BOOL_TYPE,
	"address":  ADDRESS_TYPE,
}

// typeTokens is the set of tokens naming a declared type
var typeTokens = map[TokenType]bool{
	INT128_TYPE:  true,
	UINT256_TYPE: true,
	DECIMAL_TYPE: true,
	BYTES32_TYPE: true,
	BYTES_TYPE:   true,
	BOOL_TYPE:    true,
	ADDRESS_TYPE: true,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsTypeToken reports whether tt names one of the declared types
func IsTypeToken(tt TokenType) bool {
	return typeTokens[tt]
}
