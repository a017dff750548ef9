// Package filter compiles expr-language expressions used to narrow list
// output client-side. Filtering happens after the response is received;
// the remote service never sees the expression.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// CompilationError indicates a filter expression could not be compiled
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// Filter is a compiled boolean expression evaluated per list entry.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into an executable filter. Entry fields
// are referenced as undefined variables (e.g. 'Name startsWith "assets"'),
// so compilation only validates syntax and the helper function signatures.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Match evaluates the filter against one entry's fields. Entries that
// cause evaluation errors (e.g. type mismatches on absent fields) are
// excluded rather than failing the whole listing.
func (f *Filter) Match(fields map[string]any) bool {
	env := make(map[string]any, len(fields)+4)
	for name, value := range fields {
		env[name] = value
	}
	for name, fn := range helperFunctions() {
		env[name] = fn
	}

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false
	}
	return result.(bool)
}

// Expression returns the original expression text.
func (f *Filter) Expression() string {
	return f.expression
}

func helperFunctions() map[string]any {
	return map[string]any{
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"parseTime": func(value string) time.Time {
			t, err := time.Parse(time.RFC3339, value)
			if err != nil {
				return time.Time{}
			}
			return t
		},
		"kb": func(n int) int { return n * 1024 },
		"mb": func(n int) int { return n * 1024 * 1024 },
	}
}
