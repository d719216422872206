// Package funcall is the public embedding API: declare a callable's
// signature, hand over a Go function, and invoke it with dynamic arguments
// under the host language's calling conventions and error semantics.
package funcall

import (
	"github.com/funvibe/funcall/internal/call"
	"github.com/funvibe/funcall/internal/object"
	"github.com/funvibe/funcall/internal/registry"
	"github.com/funvibe/funcall/internal/sig"
)

// Object is a dynamic value.
type Object = object.Object

// Kw is one supplied keyword argument.
type Kw = call.Keyword

// Param declares one parameter; see sig.Param.
type Param = sig.Param

// Parameter kinds, re-exported for declarations.
const (
	PositionalOnly = sig.PositionalOnly
	Positional     = sig.Positional
	KeywordOnly    = sig.KeywordOnly
	Varargs        = sig.Varargs
	Varkwargs      = sig.Varkwargs
)

// Value constructors for the common dynamic kinds.

func Int(v int64) Object     { return &object.Integer{Value: v} }
func Float(v float64) Object { return &object.Float{Value: v} }
func Str(v string) Object    { return &object.String{Value: v} }
func Bool(v bool) Object {
	if v {
		return object.TRUE
	}
	return object.FALSE
}
func Nil() Object { return object.NilValue }
func List(elems ...Object) Object {
	return &object.List{Elements: elems}
}

// Func is a registered native callable.
type Func struct {
	inner *registry.Function
}

// NewFunc compiles the declared parameter list, validates the Go function
// against it and wraps both as a callable. Defaults maps parameter names to
// their default values; optional parameters get a nil default implicitly.
func NewFunc(owner, name string, params []Param, defaults map[string]Object, fn interface{}) (*Func, error) {
	spec, err := sig.Build(owner, name, params)
	if err != nil {
		return nil, err
	}

	dm := make(call.DefaultMap, len(defaults))
	for k, v := range defaults {
		dm[k] = v
	}
	for _, p := range params {
		if p.Optional {
			if _, ok := dm[p.Name]; !ok {
				dm[p.Name] = object.NilValue
			}
		}
	}

	inner, err := registry.New(spec, dm, fn)
	if err != nil {
		return nil, err
	}
	return &Func{inner: inner}, nil
}

// MustFunc is NewFunc for static declarations; it panics on a malformed
// signature, which is a programming error.
func MustFunc(owner, name string, params []Param, defaults map[string]Object, fn interface{}) *Func {
	f, err := NewFunc(owner, name, params, defaults, fn)
	if err != nil {
		panic(err)
	}
	return f
}

// Register publishes the callable in the process-wide registry.
func (f *Func) Register() *Func {
	registry.Register(f.inner)
	return f
}

// Lookup finds a registered callable by full name ("name()" or
// "Owner.name()").
func Lookup(fullName string) *Func {
	if inner := registry.Lookup(fullName); inner != nil {
		return &Func{inner: inner}
	}
	return nil
}

// Call invokes the callable with positional arguments only.
func (f *Func) Call(args ...Object) (Object, error) {
	return f.inner.CallTupleDict(args, nil)
}

// CallKw invokes the callable with positional and keyword arguments via
// the tuple+mapping convention.
func (f *Func) CallKw(args []Object, kwargs []Kw) (Object, error) {
	return f.inner.CallTupleDict(args, kwargs)
}

// CallVector invokes the callable via the flattened convention: stack holds
// the positional values followed by the keyword values pairing with
// kwnames.
func (f *Func) CallVector(stack []Object, kwnames []string) (Object, error) {
	return f.inner.CallVectorcall(stack, kwnames, false)
}

// Describe renders the declared signature in source form.
func (f *Func) Describe() string {
	return f.inner.Spec.Describe()
}
