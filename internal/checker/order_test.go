package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diagnostic"
	"github.com/covenant-lang/covenant/internal/parser"
)

func parseContract(t *testing.T, source string) *ast.Contract {
	t.Helper()
	p := parser.New(source)
	contract := p.Parse()
	require.False(t, p.Diagnostics().HasErrors(),
		"unexpected parse errors: %s", p.Diagnostics().Format("test"))
	return contract
}

func kinds(diags *diagnostic.Diagnostics) []diagnostic.Kind {
	var ks []diagnostic.Kind
	for _, d := range diags.Errors() {
		ks = append(ks, d.Kind)
	}
	return ks
}

func TestValidateOrder_DeclarationBeforeUse(t *testing.T) {
	source := `contract T;
theBool: bool;

@public
def lowerFunction() returns bool {
    return theBool;
}

@public
def topFunction() returns bool {
    return lowerFunction();
}`

	diags := ValidateOrder(parseContract(t, source))
	assert.False(t, diags.HasErrors(), "got: %s", diags.Format("test"))
}

func TestValidateOrder_ForwardFunctionReference(t *testing.T) {
	source := `contract T;
theBool: bool;

@public
def topFunction() returns bool {
    return lowerFunction();
}

@public
def lowerFunction() returns bool {
    return theBool;
}`

	diags := ValidateOrder(parseContract(t, source))
	require.True(t, diags.HasErrors())
	first := diags.First()
	assert.Equal(t, diagnostic.OrderError, first.Kind)
	assert.Contains(t, first.Message, "lowerFunction")
	assert.Contains(t, first.Message, "used before its declaration")
}

func TestValidateOrder_ForwardStateVarReference(t *testing.T) {
	source := `contract T;

@public
def readIt() returns uint256 {
    return supply;
}

supply: uint256;`

	diags := ValidateOrder(parseContract(t, source))
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.OrderError, diags.First().Kind)
	assert.Contains(t, diags.First().Message, "supply")
}

func TestValidateOrder_SelfRecursionAllowed(t *testing.T) {
	source := `contract T;

@public
def countdown(n: uint256) returns uint256 {
    if n == 0 {
        return 0;
    }
    return countdown(n - 1);
}`

	diags := ValidateOrder(parseContract(t, source))
	assert.False(t, diags.HasErrors(), "direct recursion must pass: %s", diags.Format("test"))
}

func TestValidateOrder_MutualRecursionNeedsCalleeFirst(t *testing.T) {
	source := `contract T;

@public
def even(n: uint256) returns bool {
    if n == 0 {
        return true;
    }
    return odd(n - 1);
}

@public
def odd(n: uint256) returns bool {
    if n == 0 {
        return false;
    }
    return even(n - 1);
}`

	diags := ValidateOrder(parseContract(t, source))
	// even -> odd is a forward reference; odd -> even is not
	require.Equal(t, 1, diags.ErrorCount(), "got: %s", diags.Format("test"))
	assert.Equal(t, diagnostic.OrderError, diags.First().Kind)
	assert.Contains(t, diags.First().Message, "odd")
}

func TestValidateOrder_DuplicateDeclaration(t *testing.T) {
	source := `contract T;
supply: uint256;
supply: bool;`

	diags := ValidateOrder(parseContract(t, source))
	require.True(t, diags.HasErrors())
	assert.Equal(t, diagnostic.OrderError, diags.First().Kind)
	assert.Contains(t, diags.First().Message, "already declared")
}

func TestValidateOrder_LocalsDoNotTriggerOrderErrors(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
def f(x: uint256) returns uint256 {
    let supply = x;
    let y = supply + 1;
    return y;
}`

	diags := ValidateOrder(parseContract(t, source))
	assert.False(t, diags.HasErrors(), "got: %s", diags.Format("test"))
}

func TestValidateOrder_UndeclaredSymbolIsNotAnOrderError(t *testing.T) {
	// Symbols that exist nowhere belong to the type checker
	source := `contract T;

@public
def f() returns uint256 {
    return missing;
}`

	diags := ValidateOrder(parseContract(t, source))
	assert.False(t, diags.HasErrors(), "got: %s", diags.Format("test"))
}

func TestValidateOrder_BlockScopesPopCorrectly(t *testing.T) {
	// A local declared inside an if block must not leak into the
	// ordering state of the following statements.
	source := `contract T;
flag: bool;
supply: uint256;

@public
def f() returns uint256 {
    if flag {
        let supply = 1;
        return supply;
    }
    return supply;
}`

	diags := ValidateOrder(parseContract(t, source))
	assert.False(t, diags.HasErrors(), "got: %s", diags.Format("test"))
}
