package object

import (
	"fmt"
	"hash/fnv"
	"strings"
)

type ObjectType string

const (
	INTEGER_OBJ = "INTEGER"
	FLOAT_OBJ   = "FLOAT"
	BOOLEAN_OBJ = "BOOLEAN"
	STRING_OBJ  = "STRING"
	NIL_OBJ     = "NIL"
	LIST_OBJ    = "LIST"
	RECORD_OBJ  = "RECORD"
)

// Object is a dynamic value crossing the host boundary. The binder moves
// these references around without inspecting their contents; only the
// extractor stage looks inside.
type Object interface {
	Type() ObjectType
	Inspect() string
	Hash() uint32
}

// Helper for hashing strings
func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }
func (i *Integer) Hash() uint32     { return uint32(i.Value) ^ uint32(i.Value>>32) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return fmt.Sprintf("%g", f.Value) }
func (f *Float) Hash() uint32     { return hashString(f.Inspect()) }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

type String struct {
	Value string
}

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return fmt.Sprintf("%q", s.Value) }
func (s *String) Hash() uint32     { return hashString(s.Value) }

// Nil is the host's "absent" value. It doubles as the empty Option when an
// optional parameter is left unsupplied.
type Nil struct{}

func (n *Nil) Type() ObjectType { return NIL_OBJ }
func (n *Nil) Inspect() string  { return "nil" }
func (n *Nil) Hash() uint32     { return 0 }

// NilValue is shared; Nil carries no state.
var NilValue = &Nil{}

type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) Hash() uint32 {
	h := fnv.New32a()
	for _, el := range l.Elements {
		fmt.Fprintf(h, "%d,", el.Hash())
	}
	return h.Sum32()
}

// Record is an ordered set of named fields. The registry uses it for
// collected **kwargs so the original supply order survives.
type Record struct {
	Names  []string
	Fields map[string]Object
}

func NewRecord() *Record {
	return &Record{Fields: make(map[string]Object)}
}

// Set adds or replaces a field, keeping first-seen order.
func (r *Record) Set(name string, val Object) {
	if _, ok := r.Fields[name]; !ok {
		r.Names = append(r.Names, name)
	}
	r.Fields[name] = val
}

func (r *Record) Get(name string) (Object, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

func (r *Record) Type() ObjectType { return RECORD_OBJ }
func (r *Record) Inspect() string {
	parts := make([]string, len(r.Names))
	for i, name := range r.Names {
		parts[i] = fmt.Sprintf("%s: %s", name, r.Fields[name].Inspect())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (r *Record) Hash() uint32 {
	h := fnv.New32a()
	for _, name := range r.Names {
		fmt.Fprintf(h, "%s=%d,", name, r.Fields[name].Hash())
	}
	return h.Sum32()
}
