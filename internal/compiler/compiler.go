package compiler

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/checker"
	"github.com/covenant-lang/covenant/internal/diagnostic"
	"github.com/covenant-lang/covenant/internal/ir"
	"github.com/covenant-lang/covenant/internal/parser"
)

// Result holds the output of one pipeline invocation. When Diagnostics
// has errors, IR is nil and Contract holds whatever the front end
// managed to build.
type Result struct {
	Contract    *ast.Contract
	Decorations map[string]*checker.Decorations
	Check       *checker.CheckResult
	IR          *ir.Contract
	Diagnostics *diagnostic.Diagnostics
}

// Options configures a pipeline invocation
type Options struct {
	// Registry is the conversion table to check against. Nil selects
	// the built-in table. A shared registry is safe across concurrent
	// invocations as long as it is never mutated.
	Registry *checker.Registry
}

// Compile runs the full pipeline over one compilation unit: parse,
// ordering validation, decorator resolution, type and conversion
// checking, lowering, guard rewriting, and IR validation. Passes run
// in fixed order and the pipeline stops at the first pass that
// reports an error, so each pass may assume its predecessors held.
func Compile(source string) *Result {
	return CompileWithOptions(source, Options{})
}

// CompileWithOptions runs the pipeline with explicit options
func CompileWithOptions(source string, opts Options) *Result {
	res := &Result{Diagnostics: diagnostic.New()}

	p := parser.New(source)
	res.Contract = p.Parse()
	res.Diagnostics.Merge(p.Diagnostics())
	if res.Diagnostics.HasErrors() || res.Contract == nil {
		return res
	}

	res.Diagnostics.Merge(checker.ValidateOrder(res.Contract))
	if res.Diagnostics.HasErrors() {
		return res
	}

	decorations, decoDiag := checker.ResolveDecorators(res.Contract)
	res.Decorations = decorations
	res.Diagnostics.Merge(decoDiag)
	if res.Diagnostics.HasErrors() {
		return res
	}

	res.Check = checker.CheckWithResult(res.Contract, decorations, opts.Registry)
	res.Diagnostics.Merge(res.Check.Diagnostics)
	if res.Diagnostics.HasErrors() {
		return res
	}

	mod := ir.Lower(res.Contract, res.Check)
	res.Diagnostics.Merge(ir.Rewrite(mod))
	if res.Diagnostics.HasErrors() {
		return res
	}

	if err := ir.Validate(mod); err != nil {
		// A validation failure is a compiler defect, not a source fault
		res.Diagnostics.Errorf(diagnostic.KindNone, 0, 0, "internal error: %v", err)
		return res
	}

	res.IR = mod
	return res
}

// Check runs the pipeline for diagnostics only
func Check(source string) *diagnostic.Diagnostics {
	return Compile(source).Diagnostics
}
