package call

import "fmt"

// Binding errors are structured values; the presentation layer
// (internal/diagnostics) renders them into host TypeError text. All of them
// are terminal for the current call.

// TooManyPositionalError: more positional values than declared parameters
// and no varargs collector.
type TooManyPositionalError struct {
	Given int
	Max   int
}

func (e *TooManyPositionalError) Error() string {
	return fmt.Sprintf("too many positional arguments: %d given, at most %d accepted", e.Given, e.Max)
}

// MultipleValuesError: a parameter received both a positional and a keyword
// value.
type MultipleValuesError struct {
	Name string
}

func (e *MultipleValuesError) Error() string {
	return fmt.Sprintf("multiple values for argument '%s'", e.Name)
}

// UnexpectedKeywordError: a keyword name matched no declared parameter and
// there is no varkwargs collector.
type UnexpectedKeywordError struct {
	Name string
}

func (e *UnexpectedKeywordError) Error() string {
	return fmt.Sprintf("unexpected keyword argument '%s'", e.Name)
}

// PositionalOnlyKeywordError: positional-only parameters were supplied by
// name and there is no varkwargs collector to absorb them. Collected over
// the whole keyword phase, in supply order.
type PositionalOnlyKeywordError struct {
	Names []string
}

func (e *PositionalOnlyKeywordError) Error() string {
	return fmt.Sprintf("positional-only arguments passed as keyword arguments: %v", e.Names)
}

// Missing-argument groups, mirroring how the host splits its diagnostics.
const (
	MissingPositional = "positional"
	MissingKeyword    = "keyword"
)

// MissingRequiredError: required parameters received no value. Names holds
// every missing name of the group, in declaration order, never just the
// first.
type MissingRequiredError struct {
	Kind  string // MissingPositional or MissingKeyword
	Names []string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("missing %d required %s argument(s): %v", len(e.Names), e.Kind, e.Names)
}
