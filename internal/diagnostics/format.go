// Package diagnostics renders structured binding errors into the host's
// TypeError text. The wording and punctuation follow CPython exactly, down
// to was/were agreement and the comma rules of the parameter list.
package diagnostics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/funcall/internal/call"
	"github.com/funvibe/funcall/internal/sig"
)

// TypeError is the rendered form of a binding failure, the host-exception
// equivalent a call trampoline raises.
type TypeError struct {
	Message string
	Cause   error
}

func (e *TypeError) Error() string {
	return "TypeError: " + e.Message
}

func (e *TypeError) Unwrap() error { return e.Cause }

// AsTypeError renders a binder error against the spec it was produced for.
// Errors outside the binding taxonomy pass through unchanged.
func AsTypeError(spec *sig.Spec, err error) error {
	var tooMany *call.TooManyPositionalError
	var multiple *call.MultipleValuesError
	var unexpected *call.UnexpectedKeywordError
	var posOnly *call.PositionalOnlyKeywordError
	var missing *call.MissingRequiredError

	switch {
	case errors.As(err, &tooMany):
		return &TypeError{Message: tooManyPositional(spec, tooMany), Cause: err}
	case errors.As(err, &multiple):
		return &TypeError{Message: fmt.Sprintf(
			"%s got multiple values for argument '%s'", spec.FullName(), multiple.Name), Cause: err}
	case errors.As(err, &unexpected):
		return &TypeError{Message: fmt.Sprintf(
			"%s got an unexpected keyword argument '%s'", spec.FullName(), unexpected.Name), Cause: err}
	case errors.As(err, &posOnly):
		return &TypeError{Message: fmt.Sprintf(
			"%s got some positional-only arguments passed as keyword arguments: %s",
			spec.FullName(), parameterList(posOnly.Names)), Cause: err}
	case errors.As(err, &missing):
		return &TypeError{Message: missingRequired(spec, missing), Cause: err}
	default:
		return err
	}
}

func tooManyPositional(spec *sig.Spec, e *call.TooManyPositionalError) string {
	was := "were"
	if e.Given == 1 {
		was = "was"
	}
	if spec.RequiredPositional != len(spec.Positional) {
		return fmt.Sprintf("%s takes from %d to %d positional arguments but %d %s given",
			spec.FullName(), spec.RequiredPositional, e.Max, e.Given, was)
	}
	return fmt.Sprintf("%s takes %d positional arguments but %d %s given",
		spec.FullName(), e.Max, e.Given, was)
}

func missingRequired(spec *sig.Spec, e *call.MissingRequiredError) string {
	arguments := "arguments"
	if len(e.Names) == 1 {
		arguments = "argument"
	}
	return fmt.Sprintf("%s missing %d required %s %s: %s",
		spec.FullName(), len(e.Names), e.Kind, arguments, parameterList(e.Names))
}

// parameterList renders quoted names the way CPython does: "'a'",
// "'a' and 'b'", "'a', 'b', and 'c'".
func parameterList(names []string) string {
	var b strings.Builder
	for i, name := range names {
		if i != 0 {
			if len(names) > 2 {
				b.WriteByte(',')
			}
			if i == len(names)-1 {
				b.WriteString(" and ")
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\'')
		b.WriteString(name)
		b.WriteByte('\'')
	}
	return b.String()
}

// ExtractionError wraps a per-argument conversion failure with the argument
// name, keeping the cause chained.
func ExtractionError(name string, cause error) error {
	return &TypeError{
		Message: fmt.Sprintf("argument '%s': %v", name, cause),
		Cause:   cause,
	}
}
