package lexer

import (
	"testing"
)

func TestNextToken_Operators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TokenType
	}{
		{
			name:     "arithmetic operators",
			input:    "+ - * / %",
			expected: []TokenType{PLUS, MINUS, STAR, SLASH, PERCENT, EOF},
		},
		{
			name:     "comparison operators",
			input:    "== != < > <= >=",
			expected: []TokenType{EQ, NEQ, LT, GT, LEQ, GEQ, EOF},
		},
		{
			name:     "assignment operator",
			input:    "=",
			expected: []TokenType{ASSIGN, EOF},
		},
		{
			name:     "logical keywords",
			input:    "and or not",
			expected: []TokenType{AND, OR, NOT, EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			for i, expectedType := range tt.expected {
				tok := l.NextToken()
				if tok.Type != expectedType {
					t.Errorf("token[%d] - wrong type. expected=%q, got=%q",
						i, expectedType, tok.Type)
				}
			}
		})
	}
}

func TestNextToken_Delimiters(t *testing.T) {
	input := "@ ( ) { } , : ;"
	expected := []TokenType{
		AT, LPAREN, RPAREN, LBRACE, RBRACE, COMMA, COLON, SEMICOLON, EOF,
	}

	l := New(input)
	for i, expectedType := range expected {
		tok := l.NextToken()
		if tok.Type != expectedType {
			t.Errorf("token[%d] - wrong type. expected=%q, got=%q",
				i, expectedType, tok.Type)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := "contract def returns let if else return true false"
	expected := []TokenType{
		CONTRACT, DEF, RETURNS, LET, IF, ELSE, RETURN, TRUE, FALSE, EOF,
	}

	l := New(input)
	for i, expectedType := range expected {
		tok := l.NextToken()
		if tok.Type != expectedType {
			t.Errorf("token[%d] - wrong type. expected=%q, got=%q",
				i, expectedType, tok.Type)
		}
	}
}

func TestNextToken_TypeKeywords(t *testing.T) {
	input := "int128 uint256 decimal bytes32 bytes bool address"
	expected := []TokenType{
		INT128_TYPE, UINT256_TYPE, DECIMAL_TYPE, BYTES32_TYPE,
		BYTES_TYPE, BOOL_TYPE, ADDRESS_TYPE, EOF,
	}

	l := New(input)
	for i, expectedType := range expected {
		tok := l.NextToken()
		if tok.Type != expectedType {
			t.Errorf("token[%d] - wrong type. expected=%q, got=%q",
				i, expectedType, tok.Type)
		}
		if !IsTypeToken(tok.Type) && tok.Type != EOF {
			t.Errorf("token[%d] %q should be a type token", i, tok.Type)
		}
	}
}

func TestNextToken_Literals(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		expType TokenType
		expLit  string
	}{
		{"integer", "42", INT_LIT, "42"},
		{"large integer", "340282366920938463463374607431768211456", INT_LIT, "340282366920938463463374607431768211456"},
		{"decimal", "3.25", DECIMAL_LIT, "3.25"},
		{"hex", "0xdeadbeef", HEX_LIT, "0xdeadbeef"},
		{"identifier", "totalSupply", IDENT, "totalSupply"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.input)
			tok := l.NextToken()
			if tok.Type != tt.expType {
				t.Errorf("wrong type. expected=%q, got=%q", tt.expType, tok.Type)
			}
			if tok.Literal != tt.expLit {
				t.Errorf("wrong literal. expected=%q, got=%q", tt.expLit, tok.Literal)
			}
		})
	}
}

func TestNextToken_Comments(t *testing.T) {
	input := "supply # the total supply\nowner"

	l := New(input)
	tok := l.NextToken()
	if tok.Type != IDENT || tok.Literal != "supply" {
		t.Fatalf("expected IDENT 'supply', got %q %q", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "owner" {
		t.Fatalf("comment not skipped: got %q %q", tok.Type, tok.Literal)
	}
	if tok.Line != 2 {
		t.Errorf("expected line 2, got %d", tok.Line)
	}
}

func TestNextToken_Positions(t *testing.T) {
	input := "contract Token;\nsupply: uint256;"

	l := New(input)
	checks := []struct {
		expType TokenType
		line    int
		column  int
	}{
		{CONTRACT, 1, 1},
		{IDENT, 1, 10},
		{SEMICOLON, 1, 15},
		{IDENT, 2, 1},
		{COLON, 2, 7},
		{UINT256_TYPE, 2, 9},
		{SEMICOLON, 2, 16},
	}

	for i, c := range checks {
		tok := l.NextToken()
		if tok.Type != c.expType {
			t.Fatalf("token[%d] - wrong type. expected=%q, got=%q", i, c.expType, tok.Type)
		}
		if tok.Line != c.line || tok.Column != c.column {
			t.Errorf("token[%d] %q - wrong position. expected=%d:%d, got=%d:%d",
				i, tok.Type, c.line, c.column, tok.Line, tok.Column)
		}
	}
}

func TestTokenize_FullContract(t *testing.T) {
	input := `contract Token;

supply: uint256;

@public
@constant
def totalSupply() returns uint256 {
    return supply;
}`

	tokens := New(input).Tokenize()
	if len(tokens) == 0 {
		t.Fatal("no tokens produced")
	}
	last := tokens[len(tokens)-1]
	if last.Type != EOF {
		t.Errorf("last token should be EOF, got %q", last.Type)
	}
	for _, tok := range tokens {
		if tok.Type == ILLEGAL {
			t.Errorf("unexpected ILLEGAL token %q at %d:%d", tok.Literal, tok.Line, tok.Column)
		}
	}
}

func TestNextToken_Illegal(t *testing.T) {
	l := New("$")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Errorf("expected ILLEGAL, got %q", tok.Type)
	}
}
