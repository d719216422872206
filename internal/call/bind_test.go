package call

import (
	"errors"
	"reflect"
	"testing"

	"github.com/funvibe/funcall/internal/object"
	"github.com/funvibe/funcall/internal/sig"
)

func intObj(v int64) object.Object  { return &object.Integer{Value: v} }
func strObj(v string) object.Object { return &object.String{Value: v} }

// abcSpec is f(a, b="B", c="C") — one required positional, two defaulted.
func abcSpec() *sig.Spec {
	return &sig.Spec{
		Name:               "f",
		Positional:         []string{"a", "b", "c"},
		RequiredPositional: 1,
	}
}

func abcDefaults() DefaultMap {
	return DefaultMap{"b": strObj("B"), "c": strObj("C")}
}

func TestBindDefaultsFillEmptySlots(t *testing.T) {
	bound, err := Bind(abcSpec(), TupleDict([]object.Object{intObj(1)}, nil), abcDefaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []object.Object{intObj(1), strObj("B"), strObj("C")}
	if !reflect.DeepEqual(bound.Slots, want) {
		t.Errorf("slots = %v, want %v", bound.Slots, want)
	}
	if bound.Extra != nil || bound.ExtraKw != nil {
		t.Errorf("collectors populated without varargs/varkwargs: %v %v", bound.Extra, bound.ExtraKw)
	}
}

func TestBindMultipleValues(t *testing.T) {
	_, err := Bind(abcSpec(),
		TupleDict([]object.Object{intObj(1), intObj(2)}, []Keyword{{Name: "b", Value: intObj(3)}}),
		abcDefaults())
	var mv *MultipleValuesError
	if !errors.As(err, &mv) {
		t.Fatalf("error = %v, want MultipleValuesError", err)
	}
	if mv.Name != "b" {
		t.Errorf("name = %q, want %q", mv.Name, "b")
	}
}

func TestBindMissingKeywordOnly(t *testing.T) {
	spec := abcSpec()
	spec.KeywordOnly = []sig.KeywordParam{{Name: "d", Required: true}}

	_, err := Bind(spec, TupleDict([]object.Object{intObj(1)}, nil), abcDefaults())
	var missing *MissingRequiredError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingRequiredError", err)
	}
	if missing.Kind != MissingKeyword {
		t.Errorf("kind = %q, want %q", missing.Kind, MissingKeyword)
	}
	if !reflect.DeepEqual(missing.Names, []string{"d"}) {
		t.Errorf("names = %v, want [d]", missing.Names)
	}
}

func TestBindVarargsOverflow(t *testing.T) {
	spec := abcSpec()
	spec.HasVarargs = true

	args := []object.Object{intObj(1), intObj(2), intObj(3), intObj(4)}
	bound, err := Bind(spec, TupleDict(args, nil), abcDefaults())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(bound.Slots, args[:3]) {
		t.Errorf("slots = %v, want %v", bound.Slots, args[:3])
	}
	if !reflect.DeepEqual(bound.Extra, []object.Object{intObj(4)}) {
		t.Errorf("extra = %v, want [4]", bound.Extra)
	}
}

func TestBindTooManyPositional(t *testing.T) {
	args := []object.Object{intObj(1), intObj(2), intObj(3), intObj(4)}
	_, err := Bind(abcSpec(), TupleDict(args, nil), abcDefaults())
	var tooMany *TooManyPositionalError
	if !errors.As(err, &tooMany) {
		t.Fatalf("error = %v, want TooManyPositionalError", err)
	}
	if tooMany.Given != 4 || tooMany.Max != 3 {
		t.Errorf("got {given:%d max:%d}, want {given:4 max:3}", tooMany.Given, tooMany.Max)
	}
}

func TestBindRequiredCheckIndependentOfVarkwargs(t *testing.T) {
	spec := abcSpec()
	spec.HasVarkwargs = true

	_, err := Bind(spec, TupleDict(nil, []Keyword{{Name: "z", Value: intObj(9)}}), abcDefaults())
	var missing *MissingRequiredError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want MissingRequiredError", err)
	}
	if missing.Kind != MissingPositional || !reflect.DeepEqual(missing.Names, []string{"a"}) {
		t.Errorf("got {kind:%s names:%v}, want {kind:positional names:[a]}", missing.Kind, missing.Names)
	}
}

func TestBindMissingReportsAllNamesInOrder(t *testing.T) {
	spec := &sig.Spec{
		Name:               "g",
		Positional:         []string{"a", "b", "c"},
		RequiredPositional: 3,
	}

	tests := []struct {
		args []object.Object
		kw   []Keyword
		want []string
	}{
		{nil, nil, []string{"a", "b", "c"}},
		{[]object.Object{intObj(1)}, nil, []string{"b", "c"}},
		{[]object.Object{intObj(1)}, []Keyword{{Name: "c", Value: intObj(3)}}, []string{"b"}},
	}
	for _, tt := range tests {
		_, err := Bind(spec, TupleDict(tt.args, tt.kw), NoDefaults)
		var missing *MissingRequiredError
		if !errors.As(err, &missing) {
			t.Fatalf("args %v: error = %v, want MissingRequiredError", tt.args, err)
		}
		if !reflect.DeepEqual(missing.Names, tt.want) {
			t.Errorf("args %v: missing = %v, want %v", tt.args, missing.Names, tt.want)
		}
	}
}

func TestBindUnexpectedKeyword(t *testing.T) {
	_, err := Bind(abcSpec(),
		TupleDict([]object.Object{intObj(1)}, []Keyword{{Name: "zap", Value: intObj(0)}}),
		abcDefaults())
	var unexpected *UnexpectedKeywordError
	if !errors.As(err, &unexpected) {
		t.Fatalf("error = %v, want UnexpectedKeywordError", err)
	}
	if unexpected.Name != "zap" {
		t.Errorf("name = %q, want %q", unexpected.Name, "zap")
	}
}

func TestBindPositionalOnlyByKeyword(t *testing.T) {
	spec := &sig.Spec{
		Name:               "h",
		Positional:         []string{"x", "y"},
		PositionalOnly:     1,
		RequiredPositional: 2,
	}

	// Without varkwargs the collision is a dedicated error naming every
	// offending parameter.
	_, err := Bind(spec,
		TupleDict([]object.Object{intObj(1), intObj(2)}, []Keyword{{Name: "x", Value: intObj(3)}}),
		NoDefaults)
	var posOnly *PositionalOnlyKeywordError
	if !errors.As(err, &posOnly) {
		t.Fatalf("error = %v, want PositionalOnlyKeywordError", err)
	}
	if !reflect.DeepEqual(posOnly.Names, []string{"x"}) {
		t.Errorf("names = %v, want [x]", posOnly.Names)
	}

	// With varkwargs the same call succeeds and the keyword lands in the
	// collector, not in slot x.
	spec.HasVarkwargs = true
	bound, err := Bind(spec,
		TupleDict([]object.Object{intObj(1), intObj(2)}, []Keyword{{Name: "x", Value: intObj(3)}}),
		NoDefaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(bound.Slots, []object.Object{intObj(1), intObj(2)}) {
		t.Errorf("slots = %v, want [1 2]", bound.Slots)
	}
	if !reflect.DeepEqual(bound.ExtraKw, []Keyword{{Name: "x", Value: intObj(3)}}) {
		t.Errorf("extraKw = %v, want [{x 3}]", bound.ExtraKw)
	}
}

func TestBindCollectorsNeverOverflow(t *testing.T) {
	spec := &sig.Spec{
		Name:         "sink",
		Positional:   []string{"a"},
		HasVarargs:   true,
		HasVarkwargs: true,
	}

	bound, err := Bind(spec,
		TupleDict(
			[]object.Object{intObj(1), intObj(2), intObj(3)},
			[]Keyword{{Name: "p", Value: intObj(4)}, {Name: "q", Value: intObj(5)}},
		),
		NoDefaults)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(bound.Extra, []object.Object{intObj(2), intObj(3)}) {
		t.Errorf("extra = %v", bound.Extra)
	}
	if len(bound.ExtraKw) != 2 || bound.ExtraKw[0].Name != "p" || bound.ExtraKw[1].Name != "q" {
		t.Errorf("extraKw = %v, want supply order [p q]", bound.ExtraKw)
	}
}

// countingResolver records which parameters were resolved.
type countingResolver struct {
	inner    DefaultResolver
	resolved []string
}

func (r *countingResolver) Resolve(name string) (object.Object, error) {
	r.resolved = append(r.resolved, name)
	return r.inner.Resolve(name)
}

func TestBindDefaultsAreLazy(t *testing.T) {
	resolver := &countingResolver{inner: abcDefaults()}
	_, err := Bind(abcSpec(),
		TupleDict([]object.Object{intObj(1)}, []Keyword{{Name: "c", Value: intObj(7)}}),
		resolver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(resolver.resolved, []string{"b"}) {
		t.Errorf("resolved = %v, want only [b]: supplied arguments must never pay default cost", resolver.resolved)
	}
}

func TestBindIsPure(t *testing.T) {
	view := TupleDict([]object.Object{intObj(1)}, []Keyword{{Name: "c", Value: intObj(7)}})
	first, err1 := Bind(abcSpec(), view, abcDefaults())
	second, err2 := Bind(abcSpec(), view, abcDefaults())
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first.Slots, second.Slots) {
		t.Errorf("repeated bind differs: %v vs %v", first.Slots, second.Slots)
	}
}
