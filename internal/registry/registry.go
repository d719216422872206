// Package registry wires native Go functions into the dynamic call
// protocol: it keeps the process-wide table of registered callables and
// implements the call trampolines for both low-level conventions.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/funvibe/funcall/internal/call"
	"github.com/funvibe/funcall/internal/diagnostics"
	"github.com/funvibe/funcall/internal/object"
	"github.com/funvibe/funcall/internal/sig"
)

// Function is one registered native callable: its parameter contract, its
// default table, and the Go function the bound slots are fed into.
type Function struct {
	Spec     *sig.Spec
	Defaults call.DefaultResolver

	fn     reflect.Value
	fnType reflect.Type
	// number of Go parameters fed from slots; varargs/varkwargs collectors
	// come after them
	slotParams int
	hasErrOut  bool
	hasValOut  bool
}

// funcRegistry is the global table of registered callables.
//
// Thread-safe: registration happens at startup; reads happen from any
// goroutine dispatching calls.
var funcRegistry = struct {
	mu       sync.RWMutex
	registry map[string]*Function
}{
	registry: make(map[string]*Function),
}

// New validates that fn's Go signature matches spec and wraps it as a
// callable Function.
//
// The Go function takes one parameter per declared slot, in slot order
// (positional parameters first, keyword-only after). A varargs collector
// adds a trailing slice parameter, a varkwargs collector a trailing
// *object.Record. Results may be (T, error), (T), (error) or nothing.
func New(spec *sig.Spec, defaults call.DefaultResolver, fn interface{}) (*Function, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%s: native target is not a function", spec.FullName())
	}
	t := v.Type()

	wantIn := spec.NumSlots()
	if spec.HasVarargs {
		wantIn++
	}
	if spec.HasVarkwargs {
		wantIn++
	}
	if t.NumIn() != wantIn {
		return nil, fmt.Errorf("%s: native function takes %d parameters, signature declares %d",
			spec.FullName(), t.NumIn(), wantIn)
	}
	if spec.HasVarkwargs {
		kwType := t.In(t.NumIn() - 1)
		if kwType != reflect.TypeOf((*object.Record)(nil)) {
			return nil, fmt.Errorf("%s: varkwargs parameter must be *object.Record, got %s",
				spec.FullName(), kwType)
		}
	}
	if spec.HasVarargs {
		idx := spec.NumSlots()
		if t.In(idx).Kind() != reflect.Slice {
			return nil, fmt.Errorf("%s: varargs parameter must be a slice, got %s",
				spec.FullName(), t.In(idx))
		}
	}

	f := &Function{
		Spec:       spec,
		Defaults:   defaults,
		fn:         v,
		fnType:     t,
		slotParams: spec.NumSlots(),
	}
	if f.Defaults == nil {
		f.Defaults = call.NoDefaults
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errType {
			f.hasErrOut = true
		} else {
			f.hasValOut = true
		}
	case 2:
		if t.Out(1) != errType {
			return nil, fmt.Errorf("%s: second result must be error, got %s",
				spec.FullName(), t.Out(1))
		}
		f.hasValOut = true
		f.hasErrOut = true
	default:
		return nil, fmt.Errorf("%s: native function returns %d values, at most 2 supported",
			spec.FullName(), t.NumOut())
	}
	return f, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Register adds a callable to the global table under its full name.
// Safe to call from init() functions; later registrations replace earlier
// ones.
func Register(f *Function) {
	funcRegistry.mu.Lock()
	defer funcRegistry.mu.Unlock()
	funcRegistry.registry[f.Spec.FullName()] = f
}

// Lookup returns the callable registered under the given full name
// ("name()" or "Owner.name()"), or nil.
func Lookup(fullName string) *Function {
	funcRegistry.mu.RLock()
	defer funcRegistry.mu.RUnlock()
	return funcRegistry.registry[fullName]
}

// Names returns the registered full names, sorted.
func Names() []string {
	funcRegistry.mu.RLock()
	defer funcRegistry.mu.RUnlock()
	names := make([]string, 0, len(funcRegistry.registry))
	for name := range funcRegistry.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear empties the registry. Used for testing.
func Clear() {
	funcRegistry.mu.Lock()
	defer funcRegistry.mu.Unlock()
	funcRegistry.registry = make(map[string]*Function)
}

// CallTupleDict dispatches via the classic tuple+mapping convention.
func (f *Function) CallTupleDict(args []object.Object, kwargs []call.Keyword) (object.Object, error) {
	return f.invoke(call.TupleDict(args, kwargs))
}

// CallVectorcall dispatches via the flattened stack+kwnames convention.
func (f *Function) CallVectorcall(stack []object.Object, kwnames []string, offset bool) (object.Object, error) {
	return f.invoke(call.Vectorcall(stack, kwnames, offset))
}

func (f *Function) invoke(view *call.View) (object.Object, error) {
	bound, err := call.Bind(f.Spec, view, f.Defaults)
	if err != nil {
		return nil, diagnostics.AsTypeError(f.Spec, err)
	}

	in := make([]reflect.Value, 0, f.fnType.NumIn())
	for i := 0; i < f.slotParams; i++ {
		gv, err := FromObject(bound.Slots[i], f.fnType.In(i))
		if err != nil {
			return nil, diagnostics.ExtractionError(f.Spec.SlotName(i), err)
		}
		in = append(in, gv)
	}
	next := f.slotParams
	if f.Spec.HasVarargs {
		sliceType := f.fnType.In(next)
		varargs := reflect.MakeSlice(sliceType, 0, len(bound.Extra))
		for _, extra := range bound.Extra {
			gv, err := FromObject(extra, sliceType.Elem())
			if err != nil {
				return nil, diagnostics.ExtractionError("*args", err)
			}
			varargs = reflect.Append(varargs, gv)
		}
		in = append(in, varargs)
		next++
	}
	if f.Spec.HasVarkwargs {
		rec := object.NewRecord()
		for _, kw := range bound.ExtraKw {
			rec.Set(kw.Name, kw.Value)
		}
		in = append(in, reflect.ValueOf(rec))
	}

	out := f.fn.Call(in)

	if f.hasErrOut {
		errv := out[len(out)-1]
		if !errv.IsNil() {
			return nil, errv.Interface().(error)
		}
	}
	if f.hasValOut {
		return ToObject(out[0].Interface())
	}
	return object.NilValue, nil
}
