package ir

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenant-lang/covenant/internal/checker"
	"github.com/covenant-lang/covenant/internal/parser"
)

func lowerSource(t *testing.T, source string) *Contract {
	t.Helper()
	p := parser.New(source)
	contract := p.Parse()
	require.False(t, p.Diagnostics().HasErrors(),
		"parse errors: %s", p.Diagnostics().Format("test"))

	decorations, diags := checker.ResolveDecorators(contract)
	require.False(t, diags.HasErrors(), "decorator errors: %s", diags.Format("test"))

	res := checker.CheckWithResult(contract, decorations, nil)
	require.False(t, res.Diagnostics.HasErrors(),
		"check errors: %s", res.Diagnostics.Format("test"))

	return Lower(contract, res)
}

func TestLower_ContractShape(t *testing.T) {
	source := `contract Token;
name: bytes32;
supply: uint256;

@public
@constant
def totalSupply() returns uint256 {
    return supply;
}

@private
def bump(amount: uint256) {
    supply = supply + amount;
}`

	mod := lowerSource(t, source)
	assert.Equal(t, "Token", mod.Name)

	require.Len(t, mod.StateVars, 2)
	assert.Equal(t, "name", mod.StateVars[0].Name)
	assert.Equal(t, 0, mod.StateVars[0].Slot)
	assert.Equal(t, "supply", mod.StateVars[1].Name)
	assert.Equal(t, 1, mod.StateVars[1].Slot)

	require.Len(t, mod.Functions, 2)
	total := mod.Functions[0]
	assert.Equal(t, "totalSupply", total.Name)
	assert.Equal(t, checker.VisPublic, total.Visibility)
	assert.True(t, total.Constant)
	assert.Equal(t, checker.TypeUint256, total.ReturnType)

	bump := mod.Functions[1]
	assert.Equal(t, checker.VisPrivate, bump.Visibility)
	require.Len(t, bump.Params, 1)
	assert.Equal(t, checker.TypeUint256, bump.Params[0].Type)
}

func TestLower_StateAndLocalLoads(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
def f() returns uint256 {
    let supply = 3;
    return supply;
}

@public
def g() returns uint256 {
    return supply;
}`

	mod := lowerSource(t, source)

	fRet := mod.Functions[0].Body[1].(*Return)
	fLoad := fRet.Value.(*Load)
	assert.False(t, fLoad.State, "a shadowing local reads the local, not storage")

	gRet := mod.Functions[1].Body[0].(*Return)
	gLoad := gRet.Value.(*Load)
	assert.True(t, gLoad.State)
}

func TestLower_AssignTargets(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
def f(x: uint256) {
    let local = x;
    local = local + 1;
    supply = local;
}`

	mod := lowerSource(t, source)
	body := mod.Functions[0].Body
	require.Len(t, body, 3)

	localAssign := body[1].(*Assign)
	assert.False(t, localAssign.State)
	stateAssign := body[2].(*Assign)
	assert.True(t, stateAssign.State)
	assert.Equal(t, "supply", stateAssign.Target)
}

func TestLower_Literals(t *testing.T) {
	source := `contract T;

@public
def f() returns uint256 {
    return 42;
}

@public
def g() returns decimal {
    return 3.25;
}

@public
def h() returns bytes32 {
    return 0xdeadbeef;
}`

	mod := lowerSource(t, source)

	intConst := mod.Functions[0].Body[0].(*Return).Value.(*IntConst)
	assert.Equal(t, 0, intConst.Value.Cmp(big.NewInt(42)))
	assert.Equal(t, checker.TypeUint256, intConst.Type)

	decConst := mod.Functions[1].Body[0].(*Return).Value.(*DecConst)
	want, _ := new(big.Rat).SetString("3.25")
	assert.Equal(t, 0, decConst.Value.Cmp(want))

	bytesConst := mod.Functions[2].Body[0].(*Return).Value.(*BytesConst)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, bytesConst.Value)
	assert.Equal(t, checker.TypeBytes32, bytesConst.Type)
}

func TestLower_NegatedLiteralsFoldToSignedConstants(t *testing.T) {
	source := `contract T;

@public
def f() returns int128 {
    return -5;
}

@public
def g() returns decimal {
    return -2.5;
}

@public
def h() returns int128 {
    return int128(-170141183460469231731687303715884105728);
}`

	mod := lowerSource(t, source)

	intConst := mod.Functions[0].Body[0].(*Return).Value.(*IntConst)
	assert.Equal(t, 0, intConst.Value.Cmp(big.NewInt(-5)))
	assert.Equal(t, checker.TypeInt128, intConst.Type)

	decConst := mod.Functions[1].Body[0].(*Return).Value.(*DecConst)
	want, _ := new(big.Rat).SetString("-2.5")
	assert.Equal(t, 0, decConst.Value.Cmp(want))

	minConst := mod.Functions[2].Body[0].(*Return).Value.(*IntConst)
	assert.Equal(t, 0, minConst.Value.Cmp(checker.TypeInt128.Min.Num()),
		"the conversion of the signed minimum folds to a constant")
	assert.Equal(t, checker.TypeInt128, minConst.Type)
}

func TestLower_IntLiteralInDecimalContext(t *testing.T) {
	source := `contract T;
rate: decimal;

@public
def f() {
    rate = 3;
}`

	mod := lowerSource(t, source)
	assign := mod.Functions[0].Body[0].(*Assign)
	dec, ok := assign.Value.(*DecConst)
	require.True(t, ok, "integer literal in decimal context lowers to a decimal constant, got %T", assign.Value)
	assert.Equal(t, 0, dec.Value.Cmp(new(big.Rat).SetInt64(3)))
}

func TestLower_RuntimeConversionCarriesClamp(t *testing.T) {
	source := `contract T;

@public
def f(x: int128) returns uint256 {
    return uint256(x);
}`

	mod := lowerSource(t, source)
	conv := mod.Functions[0].Body[0].(*Return).Value.(*Convert)
	assert.False(t, conv.Reinterpret)
	require.NotNil(t, conv.Clamp)
	assert.Equal(t, 0, conv.Clamp.Min.Cmp(checker.TypeUint256.Min))
	assert.Equal(t, 0, conv.Clamp.Max.Cmp(checker.TypeUint256.Max))
}

func TestLower_ReinterpretConversion(t *testing.T) {
	source := `contract T;

@public
def f(x: uint256) returns bytes32 {
    return bytes32(x);
}`

	mod := lowerSource(t, source)
	conv := mod.Functions[0].Body[0].(*Return).Value.(*Convert)
	assert.True(t, conv.Reinterpret)
	assert.Nil(t, conv.Clamp)
}

func TestLower_ConstantConversionFolds(t *testing.T) {
	source := `contract T;

@public
def f() returns uint256 {
    return uint256(42);
}

@public
def g() returns decimal {
    return decimal(7);
}`

	mod := lowerSource(t, source)

	folded := mod.Functions[0].Body[0].(*Return).Value
	ic, ok := folded.(*IntConst)
	require.True(t, ok, "constant conversion should fold, got %T", folded)
	assert.Equal(t, checker.TypeUint256, ic.Type)
	assert.Equal(t, 0, ic.Value.Cmp(big.NewInt(42)))

	dc, ok := mod.Functions[1].Body[0].(*Return).Value.(*DecConst)
	require.True(t, ok)
	assert.Equal(t, checker.TypeDecimal, dc.Type)
	assert.Equal(t, 0, dc.Value.Cmp(new(big.Rat).SetInt64(7)))
}

func TestLower_IfElseChains(t *testing.T) {
	source := `contract T;
tier: uint256;

@public
def classify(x: uint256) {
    if x > 100 {
        tier = 2;
    } else if x > 10 {
        tier = 1;
    } else {
        tier = 0;
    }
}`

	mod := lowerSource(t, source)
	outer := mod.Functions[0].Body[0].(*If)
	require.Len(t, outer.Then, 1)
	require.Len(t, outer.Else, 1)

	inner, ok := outer.Else[0].(*If)
	require.True(t, ok, "else-if lowers to a nested If")
	require.Len(t, inner.Then, 1)
	require.Len(t, inner.Else, 1)
}

func TestLower_CallExpr(t *testing.T) {
	source := `contract T;

@private
def helper(x: uint256) returns uint256 {
    return x;
}

@public
def f() returns uint256 {
    return helper(9);
}`

	mod := lowerSource(t, source)
	call := mod.Functions[1].Body[0].(*Return).Value.(*Call)
	assert.Equal(t, "helper", call.Function)
	require.Len(t, call.Args, 1)
	assert.Equal(t, checker.TypeUint256, call.Type)
}
