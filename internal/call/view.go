// Package call implements the argument binder: it resolves one dynamic
// invocation against a sig.Spec into a fixed slot array ready for the
// extractor stage.
package call

import (
	"github.com/funvibe/funcall/internal/object"
)

// Keyword is one supplied keyword argument. Supply order is preserved so
// duplicate diagnostics report the first conflicting name.
type Keyword struct {
	Name  string
	Value object.Object
}

// View is a uniform borrow over one invocation, whichever low-level calling
// convention produced it: an indexable positional sequence plus an ordered
// (name, value) keyword sequence. A View is owned by a single call and must
// not outlive it.
type View struct {
	positional []object.Object

	// tuple+dict shape
	keywords []Keyword

	// vectorcall shape: kwValues[i] pairs with kwNames[i]
	kwNames  []string
	kwValues []object.Object
}

// TupleDict wraps the classic convention: a positional tuple plus an
// optional keyword mapping. A nil kwargs means no keywords.
func TupleDict(args []object.Object, kwargs []Keyword) *View {
	return &View{positional: args, keywords: kwargs}
}

// Vectorcall wraps the flattened convention: one contiguous stack of values
// whose trailing len(kwnames) entries pair positionally with kwnames. When
// offset is set, stack[0] is a reserved receiver slot and is skipped; the
// convention keeps that slot so a receiver can be prepended without
// reallocating.
func Vectorcall(stack []object.Object, kwnames []string, offset bool) *View {
	if offset && len(stack) > 0 {
		stack = stack[1:]
	}
	split := len(stack) - len(kwnames)
	return &View{
		positional: stack[:split],
		kwNames:    kwnames,
		kwValues:   stack[split:],
	}
}

// NumPositional returns the number of positional arguments supplied.
func (v *View) NumPositional() int { return len(v.positional) }

// Positional returns the i-th positional argument.
func (v *View) Positional(i int) object.Object { return v.positional[i] }

// NumKeywords returns the number of keyword arguments supplied.
func (v *View) NumKeywords() int {
	if v.kwNames != nil {
		return len(v.kwNames)
	}
	return len(v.keywords)
}

// Keyword returns the i-th keyword argument in supply order.
func (v *View) Keyword(i int) (string, object.Object) {
	if v.kwNames != nil {
		return v.kwNames[i], v.kwValues[i]
	}
	kw := v.keywords[i]
	return kw.Name, kw.Value
}
