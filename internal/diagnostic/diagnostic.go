package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic message
type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Kind classifies a compile-time fault. Every error-level diagnostic
// carries exactly one kind; warnings and infos use KindNone.
type Kind int

const (
	KindNone Kind = iota
	ParseError
	OrderError
	DecoratorConflictError
	StateMutationError
	TypeMismatchError
	LiteralRangeError
	UnknownConversionError
	ArithmeticOverflowError
	DivisionByZeroError
)

// String returns the string representation of the fault kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case ParseError:
		return "ParseError"
	case OrderError:
		return "OrderError"
	case DecoratorConflictError:
		return "DecoratorConflictError"
	case StateMutationError:
		return "StateMutationError"
	case TypeMismatchError:
		return "TypeMismatchError"
	case LiteralRangeError:
		return "LiteralRangeError"
	case UnknownConversionError:
		return "UnknownConversionError"
	case ArithmeticOverflowError:
		return "ArithmeticOverflowError"
	case DivisionByZeroError:
		return "DivisionByZeroError"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Diagnostic represents a single compiler error, warning, or info message
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Line     int
	Column   int
	Hint     string // optional suggestion
}

// Diagnostics manages a collection of diagnostic messages.
// Insertion order is preserved so the first-found fault is always
// reported first.
type Diagnostics struct {
	items []Diagnostic
}

// New creates a new empty Diagnostics collection
func New() *Diagnostics {
	return &Diagnostics{
		items: make([]Diagnostic, 0),
	}
}

// Errorf adds an error diagnostic of the given kind with formatted message
func (d *Diagnostics) Errorf(kind Kind, line, col int, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{
		Severity: Error,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// Warningf adds a warning diagnostic with formatted message
func (d *Diagnostics) Warningf(line, col int, format string, args ...interface{}) {
	d.items = append(d.items, Diagnostic{
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
		Column:   col,
	})
}

// WarningWithHint adds a warning diagnostic with an optional hint
func (d *Diagnostics) WarningWithHint(line, col int, msg, hint string) {
	d.items = append(d.items, Diagnostic{
		Severity: Warning,
		Message:  msg,
		Line:     line,
		Column:   col,
		Hint:     hint,
	})
}

// HasErrors returns true if there are any error-level diagnostics
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.items {
		if item.Severity == Error {
			return true
		}
	}
	return false
}

// First returns the first error-level diagnostic, or nil if there is none
func (d *Diagnostics) First() *Diagnostic {
	for i := range d.items {
		if d.items[i].Severity == Error {
			return &d.items[i]
		}
	}
	return nil
}

// Errors returns only the error-level diagnostics
func (d *Diagnostics) Errors() []Diagnostic {
	errors := make([]Diagnostic, 0)
	for _, item := range d.items {
		if item.Severity == Error {
			errors = append(errors, item)
		}
	}
	return errors
}

// All returns all diagnostics regardless of severity
func (d *Diagnostics) All() []Diagnostic {
	return d.items
}

// Count returns the total number of diagnostics
func (d *Diagnostics) Count() int {
	return len(d.items)
}

// ErrorCount returns the number of error-level diagnostics
func (d *Diagnostics) ErrorCount() int {
	count := 0
	for _, item := range d.items {
		if item.Severity == Error {
			count++
		}
	}
	return count
}

// Merge appends all diagnostics from other, preserving order
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.items = append(d.items, other.items...)
}

// Format returns human-readable messages.
// Output format:
//
//	OrderError[filename:3:10]: 'topFunction' used before its declaration
//	  hint: move the declaration above this line
//	warning[filename:5:1]: state variable 'owner' is never read
func (d *Diagnostics) Format(filename string) string {
	if len(d.items) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, item := range d.items {
		label := item.Severity.String()
		if item.Severity == Error && item.Kind != KindNone {
			label = item.Kind.String()
		}

		builder.WriteString(fmt.Sprintf("%s[%s:%d:%d]: %s",
			label,
			filename,
			item.Line,
			item.Column,
			item.Message,
		))

		if item.Hint != "" {
			builder.WriteString(fmt.Sprintf("\n  hint: %s", item.Hint))
		}

		if i < len(d.items)-1 {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// Clear removes all diagnostics from the collection
func (d *Diagnostics) Clear() {
	d.items = make([]Diagnostic, 0)
}
