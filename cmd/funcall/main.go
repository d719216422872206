package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/funcall/internal/call"
	"github.com/funvibe/funcall/internal/diagnostics"
	"github.com/funvibe/funcall/internal/object"
	"github.com/funvibe/funcall/internal/sigfile"
)

var (
	styleErr  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleOk   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleName = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

// useColor is decided once at startup from the output terminal.
var useColor = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

func paint(style lipgloss.Style, s string) string {
	if !useColor {
		return s
	}
	return style.Render(s)
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  funcall check <signatures.yaml>
  funcall describe <signatures.yaml>
  funcall call [-vectorcall] <signatures.yaml> <name> [arg ...] [name=value ...]

Literals: integers, floats, true/false, nil; anything else is a string.`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "check":
		if len(os.Args) != 3 {
			usage()
		}
		runCheck(os.Args[2])
	case "describe":
		if len(os.Args) != 3 {
			usage()
		}
		runDescribe(os.Args[2])
	case "call":
		args := os.Args[2:]
		vector := false
		if len(args) > 0 && args[0] == "-vectorcall" {
			vector = true
			args = args[1:]
		}
		if len(args) < 2 {
			usage()
		}
		runCall(args[0], args[1], args[2:], vector)
	default:
		usage()
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, paint(styleErr, err.Error()))
	os.Exit(1)
}

func runCheck(path string) {
	decls, err := sigfile.Load(path)
	if err != nil {
		fail(err)
	}
	fmt.Printf("%s: %d signature(s) %s\n", path, len(decls), paint(styleOk, "OK"))
}

func runDescribe(path string) {
	decls, err := sigfile.Load(path)
	if err != nil {
		fail(err)
	}
	for _, decl := range decls {
		fmt.Println(paint(styleName, decl.Spec.Describe()))
	}
}

func runCall(path, name string, rawArgs []string, vector bool) {
	decls, err := sigfile.Load(path)
	if err != nil {
		fail(err)
	}
	var decl *sigfile.Declared
	for i := range decls {
		if decls[i].Spec.FullName() == name || decls[i].Spec.Name == name {
			decl = &decls[i]
			break
		}
	}
	if decl == nil {
		fail(fmt.Errorf("no signature named '%s' in %s", name, path))
	}

	positional, keywords := splitArgs(rawArgs)

	var view *call.View
	if vector {
		// Rebuild the flattened shape the way a vectorcall site lays out
		// its stack: positional values, then keyword values, plus the
		// reserved leading slot.
		stack := make([]object.Object, 0, len(positional)+len(keywords)+1)
		stack = append(stack, object.NilValue) // reserved receiver slot
		stack = append(stack, positional...)
		kwnames := make([]string, 0, len(keywords))
		for _, kw := range keywords {
			stack = append(stack, kw.Value)
			kwnames = append(kwnames, kw.Name)
		}
		view = call.Vectorcall(stack, kwnames, true)
	} else {
		view = call.TupleDict(positional, keywords)
	}

	bound, err := call.Bind(decl.Spec, view, decl.Defaults)
	if err != nil {
		fail(diagnostics.AsTypeError(decl.Spec, err))
	}

	fmt.Println(paint(styleName, decl.Spec.Describe()))
	for i := 0; i < decl.Spec.NumSlots(); i++ {
		fmt.Printf("  %s = %s\n", decl.Spec.SlotName(i), bound.Slots[i].Inspect())
	}
	if decl.Spec.HasVarargs {
		extras := make([]string, len(bound.Extra))
		for i, e := range bound.Extra {
			extras[i] = e.Inspect()
		}
		fmt.Printf("  *args = [%s]\n", strings.Join(extras, ", "))
	}
	if decl.Spec.HasVarkwargs {
		extras := make([]string, len(bound.ExtraKw))
		for i, kw := range bound.ExtraKw {
			extras[i] = fmt.Sprintf("%s: %s", kw.Name, kw.Value.Inspect())
		}
		fmt.Printf("  **kwargs = {%s}\n", strings.Join(extras, ", "))
	}
}

// splitArgs separates "name=value" keyword arguments from positional
// literals, preserving supply order within each group.
func splitArgs(raw []string) ([]object.Object, []call.Keyword) {
	var positional []object.Object
	var keywords []call.Keyword
	for _, arg := range raw {
		if idx := strings.Index(arg, "="); idx > 0 {
			keywords = append(keywords, call.Keyword{
				Name:  arg[:idx],
				Value: parseLiteral(arg[idx+1:]),
			})
			continue
		}
		positional = append(positional, parseLiteral(arg))
	}
	return positional, keywords
}

func parseLiteral(s string) object.Object {
	switch s {
	case "true":
		return object.TRUE
	case "false":
		return object.FALSE
	case "nil":
		return object.NilValue
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &object.Integer{Value: n}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return &object.Float{Value: f}
	}
	return &object.String{Value: s}
}
