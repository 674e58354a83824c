package linter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covenant-lang/covenant/internal/checker"
	"github.com/covenant-lang/covenant/internal/parser"
)

func lintSource(t *testing.T, source string) []string {
	t.Helper()
	p := parser.New(source)
	contract := p.Parse()
	require.False(t, p.Diagnostics().HasErrors(),
		"parse errors: %s", p.Diagnostics().Format("test"))

	decorations, diags := checker.ResolveDecorators(contract)
	require.False(t, diags.HasErrors(), "decorator errors: %s", diags.Format("test"))

	var messages []string
	for _, d := range Lint(contract, decorations).All() {
		messages = append(messages, d.Message)
	}
	return messages
}

func assertWarned(t *testing.T, messages []string, substr string) {
	t.Helper()
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a warning containing %q, got %v", substr, messages)
}

func assertNotWarned(t *testing.T, messages []string, substr string) {
	t.Helper()
	for _, m := range messages {
		if strings.Contains(m, substr) {
			t.Errorf("unexpected warning %q", m)
		}
	}
}

func TestLint_UnusedStateVariable(t *testing.T) {
	source := `contract T;
used: uint256;
unused: bool;

@public
def f() returns uint256 {
    return used;
}`

	messages := lintSource(t, source)
	assertWarned(t, messages, "state variable 'unused' is never used")
	assertNotWarned(t, messages, "'used'")
}

func TestLint_AssignedStateVariableCountsAsUsed(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
def f(x: uint256) {
    supply = x;
}`

	messages := lintSource(t, source)
	assertNotWarned(t, messages, "never used")
}

func TestLint_UncalledPrivateFunction(t *testing.T) {
	source := `contract T;
supply: uint256;

@private
def orphan() returns uint256 {
    return supply;
}

@private
def helper() returns uint256 {
    return supply;
}

@public
def f() returns uint256 {
    return helper();
}`

	messages := lintSource(t, source)
	assertWarned(t, messages, "private function 'orphan' is never called")
	assertNotWarned(t, messages, "'helper' is never called")
}

func TestLint_PublicFunctionsNeverFlaggedUncalled(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
def entry() returns uint256 {
    return supply;
}`

	messages := lintSource(t, source)
	assertNotWarned(t, messages, "never called")
}

func TestLint_ConstantCandidate(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
def readOnly() returns uint256 {
    return supply + 1;
}

@public
def writer(x: uint256) {
    supply = x;
}

@public
@constant
def alreadyConstant() returns uint256 {
    return supply;
}`

	messages := lintSource(t, source)
	assertWarned(t, messages, "function 'readOnly' does not modify state")
	assertNotWarned(t, messages, "'writer' does not modify state")
	assertNotWarned(t, messages, "'alreadyConstant' does not modify state")
}

func TestLint_CallerOfWriterIsNotACandidate(t *testing.T) {
	source := `contract T;
supply: uint256;

@private
def bump() {
    supply = supply + 1;
}

@public
def f() {
    bump();
}`

	messages := lintSource(t, source)
	assertNotWarned(t, messages, "'f' does not modify state")
	assertNotWarned(t, messages, "'bump' does not modify state")
}

func TestLint_CleanContract(t *testing.T) {
	source := `contract T;
supply: uint256;

@public
@constant
def total() returns uint256 {
    return supply;
}

@public
def mint(x: uint256) {
    supply = supply + x;
}`

	messages := lintSource(t, source)
	assert.Empty(t, messages)
}

func TestLint_WarningsOnly(t *testing.T) {
	source := `contract T;
dead: bool;

@public
def f() returns uint256 {
    return 1;
}`

	p := parser.New(source)
	contract := p.Parse()
	require.False(t, p.Diagnostics().HasErrors())
	decorations, _ := checker.ResolveDecorators(contract)

	diags := Lint(contract, decorations)
	assert.False(t, diags.HasErrors(), "lint findings must never be errors")
	assert.Greater(t, diags.Count(), 0)
}
