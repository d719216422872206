// Package sig describes callable signatures for the binder.
//
// A Spec is the runtime descriptor a host registration step (codegen, a
// YAML signature file, or a hand-written literal) emits once per callable.
// It is immutable after construction and safe to share across goroutines.
package sig

import (
	"fmt"
	"strings"
)

// KeywordParam is one keyword-only parameter.
type KeywordParam struct {
	Name     string
	Required bool
}

// Spec is the parameter contract of one callable.
//
// Positional holds every name that can be supplied by position, in
// declaration order; keyword-only names are not in it. PositionalOnly and
// RequiredPositional are prefix lengths of Positional.
type Spec struct {
	OwnerName          string // enclosing type, empty for free functions
	Name               string
	Positional         []string
	PositionalOnly     int
	RequiredPositional int
	KeywordOnly        []KeywordParam
	HasVarargs         bool
	HasVarkwargs       bool
}

// FullName renders the callable the way error messages refer to it:
// "Owner.name()" or "name()".
func (s *Spec) FullName() string {
	if s.OwnerName != "" {
		return s.OwnerName + "." + s.Name + "()"
	}
	return s.Name + "()"
}

// NumSlots is the size of the bound-argument array: one slot per declared
// parameter, positional first, keyword-only after.
func (s *Spec) NumSlots() int {
	return len(s.Positional) + len(s.KeywordOnly)
}

// SlotName maps a slot index back to its parameter name.
func (s *Spec) SlotName(i int) string {
	if i < len(s.Positional) {
		return s.Positional[i]
	}
	return s.KeywordOnly[i-len(s.Positional)].Name
}

// SlotRequired reports whether the parameter at slot i must be supplied.
func (s *Spec) SlotRequired(i int) bool {
	if i < len(s.Positional) {
		return i < s.RequiredPositional
	}
	return s.KeywordOnly[i-len(s.Positional)].Required
}

// SpecError reports a malformed signature. It is only produced at
// construction time, never on the call path.
type SpecError struct {
	Func string
	Msg  string
}

func (e *SpecError) Error() string {
	return fmt.Sprintf("invalid signature for %s: %s", e.Func, e.Msg)
}

func specErrorf(s *Spec, format string, a ...interface{}) *SpecError {
	return &SpecError{Func: s.FullName(), Msg: fmt.Sprintf(format, a...)}
}

// Validate checks the structural invariants on a hand-built Spec. Specs
// produced by Build are already validated.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return &SpecError{Func: "()", Msg: "callable name is empty"}
	}
	if s.PositionalOnly < 0 || s.PositionalOnly > len(s.Positional) {
		return specErrorf(s, "positional-only count %d out of range [0, %d]",
			s.PositionalOnly, len(s.Positional))
	}
	if s.RequiredPositional < 0 || s.RequiredPositional > len(s.Positional) {
		return specErrorf(s, "required count %d out of range [0, %d]",
			s.RequiredPositional, len(s.Positional))
	}
	if s.PositionalOnly > s.RequiredPositional {
		// A positional-only parameter with a default would sit past the
		// required prefix; declaration order forbids that shape here.
		return specErrorf(s, "positional-only count %d exceeds required count %d",
			s.PositionalOnly, s.RequiredPositional)
	}
	seen := make(map[string]bool, s.NumSlots())
	for _, name := range s.Positional {
		if name == "" {
			return specErrorf(s, "empty parameter name")
		}
		if seen[name] {
			return specErrorf(s, "duplicate parameter '%s'", name)
		}
		seen[name] = true
	}
	for _, kw := range s.KeywordOnly {
		if kw.Name == "" {
			return specErrorf(s, "empty parameter name")
		}
		if seen[kw.Name] {
			return specErrorf(s, "duplicate parameter '%s'", kw.Name)
		}
		seen[kw.Name] = true
	}
	return nil
}

// ParamKind distinguishes the declaration-order groups of a signature.
type ParamKind int

const (
	PositionalOnly ParamKind = iota // before the / marker
	Positional                      // ordinary: by position or by name
	KeywordOnly                     // after the * marker
	Varargs                         // *args collector
	Varkwargs                       // **kwargs collector
)

func (k ParamKind) String() string {
	switch k {
	case PositionalOnly:
		return "positional-only"
	case Positional:
		return "positional"
	case KeywordOnly:
		return "keyword-only"
	case Varargs:
		return "varargs"
	case Varkwargs:
		return "varkwargs"
	default:
		return "unknown"
	}
}

// Param is one declared parameter in source order, the shape a registration
// step emits before it is compiled into a Spec.
type Param struct {
	Name       string
	Kind       ParamKind
	HasDefault bool
	// Optional marks nullable parameters with no explicit default; they
	// bind like defaulted parameters and resolve to nil when unsupplied.
	Optional bool
}

// Build compiles a declaration-ordered parameter list into a Spec,
// enforcing the ordering rules a source-level signature obeys.
func Build(owner, name string, params []Param) (*Spec, error) {
	s := &Spec{OwnerName: owner, Name: name}

	// Highest group seen so far; groups may only advance.
	stage := PositionalOnly
	sawDefault := false

	for _, p := range params {
		switch p.Kind {
		case Varargs:
			if s.HasVarargs {
				return nil, specErrorf(s, "multiple varargs collectors")
			}
			if stage >= KeywordOnly {
				return nil, specErrorf(s, "varargs collector after keyword-only parameters")
			}
			s.HasVarargs = true
			stage = KeywordOnly // everything after *args is keyword-only
			continue
		case Varkwargs:
			if s.HasVarkwargs {
				return nil, specErrorf(s, "multiple varkwargs collectors")
			}
			s.HasVarkwargs = true
			stage = Varkwargs
			continue
		}

		if s.HasVarkwargs {
			return nil, specErrorf(s, "parameter '%s' after varkwargs collector", p.Name)
		}

		switch p.Kind {
		case PositionalOnly, Positional:
			if p.Kind < stage {
				return nil, specErrorf(s, "%s parameter '%s' after %s parameters",
					p.Kind, p.Name, stage)
			}
			stage = p.Kind
			hasDefault := p.HasDefault || p.Optional
			if hasDefault {
				sawDefault = true
			} else {
				if sawDefault {
					return nil, specErrorf(s,
						"non-default argument '%s' follows default argument", p.Name)
				}
				s.RequiredPositional++
			}
			s.Positional = append(s.Positional, p.Name)
			if p.Kind == PositionalOnly {
				s.PositionalOnly = len(s.Positional)
			}
		case KeywordOnly:
			if stage < KeywordOnly {
				// A bare keyword-only parameter implies the * marker.
				stage = KeywordOnly
			}
			s.KeywordOnly = append(s.KeywordOnly, KeywordParam{
				Name:     p.Name,
				Required: !p.HasDefault && !p.Optional,
			})
		default:
			return nil, specErrorf(s, "parameter '%s' has unknown kind", p.Name)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Describe renders the signature in source form, e.g.
// "f(a, b, /, c, *args, d, **kwargs)".
func (s *Spec) Describe() string {
	var parts []string
	for i, name := range s.Positional {
		parts = append(parts, name)
		if i == s.PositionalOnly-1 {
			parts = append(parts, "/")
		}
	}
	if s.HasVarargs {
		parts = append(parts, "*args")
	} else if len(s.KeywordOnly) > 0 {
		parts = append(parts, "*")
	}
	for _, kw := range s.KeywordOnly {
		parts = append(parts, kw.Name)
	}
	if s.HasVarkwargs {
		parts = append(parts, "**kwargs")
	}
	name := s.Name
	if s.OwnerName != "" {
		name = s.OwnerName + "." + name
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
