package call

import (
	"github.com/funvibe/funcall/internal/object"
	"github.com/funvibe/funcall/internal/sig"
)

// Bound is the result of a successful bind: one value per declared
// parameter plus the overflow collectors. Slot i < len(spec.Positional)
// holds positional parameter i; the keyword-only parameters follow.
type Bound struct {
	Spec  *sig.Spec
	Slots []object.Object

	// Extra holds positional arguments beyond the declared list; only
	// populated when the spec has a varargs collector.
	Extra []object.Object

	// ExtraKw holds keywords that matched no declared name, in supply
	// order; only populated when the spec has a varkwargs collector.
	ExtraKw []Keyword
}

// Slot returns the bound value for a parameter name.
func (b *Bound) Slot(name string) (object.Object, bool) {
	for i := 0; i < b.Spec.NumSlots(); i++ {
		if b.Spec.SlotName(i) == name {
			return b.Slots[i], true
		}
	}
	return nil, false
}

// Bind resolves one invocation against spec. It is a pure single-pass
// function of (spec, view): no I/O, no locks, no backtracking. On error no
// partially-bound result escapes.
//
// The keyword scan compares names against each declared parameter in turn,
// the same way CPython maps keyword names; parameter lists are short enough
// that a lookup table would not pay for itself.
func Bind(spec *sig.Spec, view *View, defaults DefaultResolver) (*Bound, error) {
	numPos := len(spec.Positional)
	b := &Bound{
		Spec:  spec,
		Slots: make([]object.Object, spec.NumSlots()),
	}

	// Positional phase.
	given := view.NumPositional()
	if given > numPos && !spec.HasVarargs {
		return nil, &TooManyPositionalError{Given: given, Max: numPos}
	}
	for i := 0; i < given; i++ {
		if i < numPos {
			b.Slots[i] = view.Positional(i)
		} else {
			b.Extra = append(b.Extra, view.Positional(i))
		}
	}

	// Keyword phase, in supply order.
	var posOnlyByName []string
	for i, n := 0, view.NumKeywords(); i < n; i++ {
		name, value := view.Keyword(i)

		if j, ok := findKeywordOnly(spec, name); ok {
			if b.Slots[numPos+j] != nil {
				return nil, &MultipleValuesError{Name: name}
			}
			b.Slots[numPos+j] = value
			continue
		}

		if j, ok := findPositional(spec, name); ok {
			if j < spec.PositionalOnly {
				// A keyword colliding with a positional-only name is not a
				// reference to that parameter; it lands in **kwargs when
				// one exists, otherwise it is a dedicated error collected
				// across the whole phase.
				if spec.HasVarkwargs {
					b.ExtraKw = append(b.ExtraKw, Keyword{Name: name, Value: value})
				} else {
					posOnlyByName = append(posOnlyByName, name)
				}
				continue
			}
			if b.Slots[j] != nil {
				return nil, &MultipleValuesError{Name: name}
			}
			b.Slots[j] = value
			continue
		}

		if spec.HasVarkwargs {
			b.ExtraKw = append(b.ExtraKw, Keyword{Name: name, Value: value})
			continue
		}
		return nil, &UnexpectedKeywordError{Name: name}
	}
	if len(posOnlyByName) > 0 {
		return nil, &PositionalOnlyKeywordError{Names: posOnlyByName}
	}

	// Required phase: exhaustive per group, so the diagnostic names every
	// missing parameter at once.
	if given < spec.RequiredPositional {
		var missing []string
		for i := 0; i < spec.RequiredPositional; i++ {
			if b.Slots[i] == nil {
				missing = append(missing, spec.Positional[i])
			}
		}
		if len(missing) > 0 {
			return nil, &MissingRequiredError{Kind: MissingPositional, Names: missing}
		}
	}
	var missingKw []string
	for j, kw := range spec.KeywordOnly {
		if kw.Required && b.Slots[numPos+j] == nil {
			missingKw = append(missingKw, kw.Name)
		}
	}
	if len(missingKw) > 0 {
		return nil, &MissingRequiredError{Kind: MissingKeyword, Names: missingKw}
	}

	// Default phase: only now, so unsupplied slots are the only ones that
	// pay default-construction cost.
	for i, v := range b.Slots {
		if v == nil {
			val, err := defaults.Resolve(spec.SlotName(i))
			if err != nil {
				return nil, err
			}
			b.Slots[i] = val
		}
	}

	return b, nil
}

func findKeywordOnly(spec *sig.Spec, name string) (int, bool) {
	for i, kw := range spec.KeywordOnly {
		if kw.Name == name {
			return i, true
		}
	}
	return 0, false
}

func findPositional(spec *sig.Spec, name string) (int, bool) {
	for i, param := range spec.Positional {
		if param == name {
			return i, true
		}
	}
	return 0, false
}
