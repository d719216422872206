// Package sigfile loads callable signatures from declarative YAML files.
//
// A signature file is the out-of-band equivalent of the registration step a
// codegen pass performs: it names each callable, lists its parameters in
// declaration order, and attaches default literals. Example:
//
//	functions:
//	  - name: clamp
//	    owner: Math
//	    params:
//	      - name: x
//	      - name: lo
//	        default: 0
//	      - name: hi
//	        default: 10
//	      - name: scale
//	        kind: keyword-only
//	        optional: true
//	      - name: opts
//	        kind: varkwargs
package sigfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/funcall/internal/call"
	"github.com/funvibe/funcall/internal/object"
	"github.com/funvibe/funcall/internal/registry"
	"github.com/funvibe/funcall/internal/sig"
)

// Config represents the top-level signature file.
type Config struct {
	Functions []FuncDecl `yaml:"functions"`
}

// FuncDecl declares one callable.
type FuncDecl struct {
	// Name is the callable name as it appears in error messages.
	Name string `yaml:"name"`

	// Owner is the enclosing type, if any (e.g. "Math" renders errors as
	// "Math.clamp() ...").
	Owner string `yaml:"owner,omitempty"`

	// Params lists parameters in declaration order.
	Params []ParamDecl `yaml:"params"`
}

// ParamDecl declares one parameter.
type ParamDecl struct {
	Name string `yaml:"name"`

	// Kind is one of "positional" (default), "positional-only",
	// "keyword-only", "varargs", "varkwargs".
	Kind string `yaml:"kind,omitempty"`

	// Default is the default literal (scalar, list or mapping). Its
	// presence makes the parameter optional.
	Default *yaml.Node `yaml:"default,omitempty"`

	// Optional marks a nullable parameter with no explicit default; it
	// resolves to nil when the caller leaves it out.
	Optional bool `yaml:"optional,omitempty"`
}

// Declared is one compiled declaration: the validated spec plus its default
// table, ready to bind against.
type Declared struct {
	Spec     *sig.Spec
	Defaults call.DefaultMap
}

// Load reads and compiles a signature file.
func Load(path string) ([]Declared, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading signature file: %w", err)
	}
	decls, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return decls, nil
}

// Parse compiles signature declarations from YAML bytes.
func Parse(data []byte) ([]Declared, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing signature file: %w", err)
	}
	if len(cfg.Functions) == 0 {
		return nil, fmt.Errorf("signature file declares no functions")
	}

	decls := make([]Declared, 0, len(cfg.Functions))
	for _, fn := range cfg.Functions {
		decl, err := compile(fn)
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

func compile(fn FuncDecl) (Declared, error) {
	if fn.Name == "" {
		return Declared{}, fmt.Errorf("function declaration without a name")
	}

	params := make([]sig.Param, 0, len(fn.Params))
	defaults := make(call.DefaultMap)
	for _, p := range fn.Params {
		kind, err := parseKind(p.Kind)
		if err != nil {
			return Declared{}, fmt.Errorf("function '%s', parameter '%s': %w", fn.Name, p.Name, err)
		}
		if kind == sig.Varargs || kind == sig.Varkwargs {
			if p.Default != nil || p.Optional {
				return Declared{}, fmt.Errorf(
					"function '%s': collector '%s' cannot carry a default", fn.Name, p.Name)
			}
			params = append(params, sig.Param{Name: p.Name, Kind: kind})
			continue
		}

		param := sig.Param{Name: p.Name, Kind: kind, Optional: p.Optional}
		if p.Default != nil {
			val, err := literalToObject(p.Default)
			if err != nil {
				return Declared{}, fmt.Errorf(
					"function '%s', parameter '%s': bad default: %w", fn.Name, p.Name, err)
			}
			param.HasDefault = true
			defaults[p.Name] = val
		} else if p.Optional {
			defaults[p.Name] = object.NilValue
		}
		params = append(params, param)
	}

	spec, err := sig.Build(fn.Owner, fn.Name, params)
	if err != nil {
		return Declared{}, err
	}
	return Declared{Spec: spec, Defaults: defaults}, nil
}

func parseKind(kind string) (sig.ParamKind, error) {
	switch kind {
	case "", "positional":
		return sig.Positional, nil
	case "positional-only":
		return sig.PositionalOnly, nil
	case "keyword-only":
		return sig.KeywordOnly, nil
	case "varargs":
		return sig.Varargs, nil
	case "varkwargs":
		return sig.Varkwargs, nil
	default:
		return 0, fmt.Errorf("unknown kind '%s'", kind)
	}
}

// literalToObject decodes a YAML default literal into a dynamic value.
func literalToObject(node *yaml.Node) (object.Object, error) {
	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return object.NilValue, nil
	}
	return registry.ToObject(raw)
}
