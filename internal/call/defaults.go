package call

import (
	"fmt"

	"github.com/funvibe/funcall/internal/object"
)

// DefaultResolver supplies a parameter's default value. Bind invokes it
// lazily, after all positional and keyword matching, at most once per empty
// slot — a default is never constructed for an argument the caller
// supplied.
type DefaultResolver interface {
	Resolve(name string) (object.Object, error)
}

// DefaultMap resolves defaults from a name → value table. Optional
// parameters with no declared default are entered as object.NilValue so
// they resolve to the empty value rather than failing.
type DefaultMap map[string]object.Object

func (m DefaultMap) Resolve(name string) (object.Object, error) {
	if v, ok := m[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("no default value declared for parameter '%s'", name)
}

// DefaultFunc adapts a plain function as a DefaultResolver, for defaults
// that must be built fresh per call.
type DefaultFunc func(name string) (object.Object, error)

func (f DefaultFunc) Resolve(name string) (object.Object, error) {
	return f(name)
}

// NoDefaults is the resolver for fully-required signatures; reaching it
// means the spec and the resolver disagree.
var NoDefaults DefaultResolver = DefaultMap(nil)
