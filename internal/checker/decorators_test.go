package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenant-lang/covenant/internal/diagnostic"
)

func TestResolveDecorators_Valid(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
@constant
def totalSupply() returns uint256 {
    return supply;
}

@private
@payable
def receive() {
    supply = supply + 1;
}`

	decorations, diags := ResolveDecorators(parseContract(t, source))
	require.False(t, diags.HasErrors(), "got: %s", diags.Format("test"))

	total := decorations["totalSupply"]
	require.NotNil(t, total)
	assert.Equal(t, VisPublic, total.Visibility)
	assert.True(t, total.Constant)
	assert.False(t, total.Payable)

	recv := decorations["receive"]
	require.NotNil(t, recv)
	assert.Equal(t, VisPrivate, recv.Visibility)
	assert.False(t, recv.Constant)
	assert.True(t, recv.Payable)
}

func TestResolveDecorators_Conflicts(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{
			name: "missing visibility",
			source: `contract T;
def f() {
    return;
}`,
			message: "must be decorated @public or @private",
		},
		{
			name: "public and private",
			source: `contract T;
@public
@private
def f() {
    return;
}`,
			message: "cannot be both @public and @private",
		},
		{
			name: "duplicate decorator",
			source: `contract T;
@public
@public
def f() {
    return;
}`,
			message: "duplicate decorator",
		},
		{
			name: "constant and payable",
			source: `contract T;
@public
@constant
@payable
def f() {
    return;
}`,
			message: "cannot be both @constant and @payable",
		},
		{
			name: "unknown decorator",
			source: `contract T;
@public
@idempotent
def f() {
    return;
}`,
			message: "unknown decorator '@idempotent'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := ResolveDecorators(parseContract(t, tt.source))
			require.True(t, diags.HasErrors())
			first := diags.First()
			assert.Equal(t, diagnostic.DecoratorConflictError, first.Kind)
			assert.Contains(t, first.Message, tt.message)
		})
	}
}

func TestResolveDecorators_ConstantAssignsState(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
@constant
def breakIt() {
    supply = 1;
}`

	_, diags := ResolveDecorators(parseContract(t, source))
	require.True(t, diags.HasErrors())
	first := diags.First()
	assert.Equal(t, diagnostic.StateMutationError, first.Kind)
	assert.Contains(t, first.Message, "breakIt")
	assert.Contains(t, first.Message, "supply")
}

func TestResolveDecorators_ConstantCallsNonConstant(t *testing.T) {
	source := `contract T;
supply: uint256;

@private
def bump() {
    supply = supply + 1;
}

@public
@constant
def sneaky() returns uint256 {
    bump();
    return supply;
}`

	_, diags := ResolveDecorators(parseContract(t, source))
	require.True(t, diags.HasErrors())
	first := diags.First()
	assert.Equal(t, diagnostic.StateMutationError, first.Kind)
	assert.Contains(t, first.Message, "calls non-constant function 'bump'")
}

func TestResolveDecorators_ConstantCallsConstant(t *testing.T) {
	source := `contract T;
supply: uint256;

@private
@constant
def read() returns uint256 {
    return supply;
}

@public
@constant
def readTwice() returns uint256 {
    return read() + read();
}`

	_, diags := ResolveDecorators(parseContract(t, source))
	assert.False(t, diags.HasErrors(), "got: %s", diags.Format("test"))
}

func TestResolveDecorators_ConstantMayAssignShadowingLocal(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
@constant
def f() returns uint256 {
    let supply = 1;
    supply = 2;
    return supply;
}`

	_, diags := ResolveDecorators(parseContract(t, source))
	assert.False(t, diags.HasErrors(), "a local shadowing a state variable is not state: %s", diags.Format("test"))
}

func TestResolveDecorators_ConstantAssignsPlainLocal(t *testing.T) {
	source := `contract T;

@public
@constant
def f() returns uint256 {
    let x = 1;
    x = x + 1;
    return x;
}`

	_, diags := ResolveDecorators(parseContract(t, source))
	assert.False(t, diags.HasErrors(), "got: %s", diags.Format("test"))
}
