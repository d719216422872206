package sig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSimple(t *testing.T) {
	spec, err := Build("", "f", []Param{
		{Name: "a"},
		{Name: "b", HasDefault: true},
		{Name: "c", HasDefault: true},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, spec.Positional)
	assert.Equal(t, 1, spec.RequiredPositional)
	assert.Equal(t, 0, spec.PositionalOnly)
	assert.False(t, spec.HasVarargs)
	assert.False(t, spec.HasVarkwargs)
	assert.Equal(t, "f()", spec.FullName())
}

func TestBuildFullShape(t *testing.T) {
	spec, err := Build("Math", "clamp", []Param{
		{Name: "x", Kind: PositionalOnly},
		{Name: "lo"},
		{Name: "hi", HasDefault: true},
		{Name: "args", Kind: Varargs},
		{Name: "scale", Kind: KeywordOnly},
		{Name: "mode", Kind: KeywordOnly, HasDefault: true},
		{Name: "opts", Kind: Varkwargs},
	})
	require.NoError(t, err)

	assert.Equal(t, "Math.clamp()", spec.FullName())
	assert.Equal(t, []string{"x", "lo", "hi"}, spec.Positional)
	assert.Equal(t, 1, spec.PositionalOnly)
	assert.Equal(t, 2, spec.RequiredPositional)
	assert.Equal(t, []KeywordParam{{Name: "scale", Required: true}, {Name: "mode"}}, spec.KeywordOnly)
	assert.True(t, spec.HasVarargs)
	assert.True(t, spec.HasVarkwargs)
	assert.Equal(t, 5, spec.NumSlots())
	assert.Equal(t, "Math.clamp(x, /, lo, hi, *args, scale, mode, **kwargs)", spec.Describe())
}

func TestBuildVarargsResetsDefaultRule(t *testing.T) {
	// A required keyword-only parameter after defaulted positionals is
	// legal; the collector separates the groups.
	spec, err := Build("", "f", []Param{
		{Name: "a", HasDefault: true},
		{Name: "args", Kind: Varargs},
		{Name: "b", Kind: KeywordOnly},
	})
	require.NoError(t, err)
	assert.True(t, spec.KeywordOnly[0].Required)
}

func TestBuildRejectsMalformedSignatures(t *testing.T) {
	tests := []struct {
		name   string
		params []Param
		msg    string
	}{
		{
			"non-default after default",
			[]Param{{Name: "a", HasDefault: true}, {Name: "b"}},
			"non-default argument 'b' follows default argument",
		},
		{
			"duplicate names",
			[]Param{{Name: "a"}, {Name: "a"}},
			"duplicate parameter 'a'",
		},
		{
			"duplicate across groups",
			[]Param{{Name: "a"}, {Name: "a", Kind: KeywordOnly}},
			"duplicate parameter 'a'",
		},
		{
			"positional-only after ordinary",
			[]Param{{Name: "a"}, {Name: "b", Kind: PositionalOnly}},
			"positional-only parameter 'b' after positional parameters",
		},
		{
			"two varargs",
			[]Param{{Name: "a", Kind: Varargs}, {Name: "b", Kind: Varargs}},
			"multiple varargs collectors",
		},
		{
			"varargs after keyword-only",
			[]Param{{Name: "a", Kind: KeywordOnly}, {Name: "b", Kind: Varargs}},
			"varargs collector after keyword-only parameters",
		},
		{
			"parameter after varkwargs",
			[]Param{{Name: "kw", Kind: Varkwargs}, {Name: "a"}},
			"parameter 'a' after varkwargs collector",
		},
		{
			"optional counts as defaulted",
			[]Param{{Name: "a", Optional: true}, {Name: "b"}},
			"non-default argument 'b' follows default argument",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build("", "f", tt.params)
			require.Error(t, err)
			var specErr *SpecError
			require.ErrorAs(t, err, &specErr)
			assert.Contains(t, specErr.Error(), tt.msg)
		})
	}
}

func TestValidateHandBuiltSpec(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		ok   bool
	}{
		{"valid", Spec{Name: "f", Positional: []string{"a", "b"}, RequiredPositional: 1}, true},
		{"required out of range", Spec{Name: "f", Positional: []string{"a"}, RequiredPositional: 2}, false},
		{"positional-only past required", Spec{Name: "f", Positional: []string{"a"}, PositionalOnly: 1}, false},
		{"duplicate", Spec{Name: "f", Positional: []string{"a"}, KeywordOnly: []KeywordParam{{Name: "a"}}}, false},
		{"unnamed", Spec{Positional: []string{"a"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSlotHelpers(t *testing.T) {
	spec, err := Build("", "f", []Param{
		{Name: "a"},
		{Name: "b", HasDefault: true},
		{Name: "c", Kind: KeywordOnly},
	})
	require.NoError(t, err)

	assert.Equal(t, "a", spec.SlotName(0))
	assert.Equal(t, "c", spec.SlotName(2))
	assert.True(t, spec.SlotRequired(0))
	assert.False(t, spec.SlotRequired(1))
	assert.True(t, spec.SlotRequired(2))
}
