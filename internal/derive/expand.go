package derive

import (
	"fmt"
	"strings"

	"gencompose/internal/diag"
	"gencompose/internal/gotree"
)

// errorTypeName names the generated error type, e.g. ParseColorError.
func errorTypeName(enum string) string {
	return "Parse" + enum + "Error"
}

// receiverName derives a one-letter receiver from the type name.
func receiverName(enum string) string {
	return strings.ToLower(enum[:1])
}

// ErrorTypeExpand generates the error type returned by the parse
// function for unrecognized input.
type ErrorTypeExpand struct {
	Type string
}

func (e ErrorTypeExpand) Expand(f *gotree.File, _ *diag.Collector) (Fragment, bool) {
	enum, ok := enumOf(f, e.Type)
	if !ok {
		return Fragment{}, false
	}

	errName := errorTypeName(enum.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "// %s is returned by Parse%s for unrecognized input.\n", errName, enum.Name)
	fmt.Fprintf(&b, "type %s struct {\n\tValue string\n}\n\n", errName)
	fmt.Fprintf(&b, "func (e *%s) Error() string {\n", errName)
	fmt.Fprintf(&b, "\treturn fmt.Sprintf(\"unexpected value for %s: %%q\", e.Value)\n}\n", enum.Name)

	return Fragment{Imports: []string{"fmt"}, Source: b.String()}, true
}

// StringExpand generates the String method mapping each variant to its
// declared name.
type StringExpand struct {
	Type string
}

func (e StringExpand) Expand(f *gotree.File, _ *diag.Collector) (Fragment, bool) {
	enum, ok := enumOf(f, e.Type)
	if !ok {
		return Fragment{}, false
	}

	recv := receiverName(enum.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "// String returns the declared name of the %s value.\n", enum.Name)
	fmt.Fprintf(&b, "func (%s %s) String() string {\n\tswitch %s {\n", recv, enum.Name, recv)
	for _, v := range enum.Variants {
		fmt.Fprintf(&b, "\tcase %s:\n\t\treturn %q\n", v.Name, v.Name)
	}
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\treturn fmt.Sprintf(\"%s(%%d)\", int64(%s))\n}\n", enum.Name, recv)

	return Fragment{Imports: []string{"fmt"}, Source: b.String()}, true
}

// ParseExpand generates the Parse function mapping variant names back to
// values, one case per variant in declaration order.
type ParseExpand struct {
	Type string
}

func (e ParseExpand) Expand(f *gotree.File, _ *diag.Collector) (Fragment, bool) {
	enum, ok := enumOf(f, e.Type)
	if !ok {
		return Fragment{}, false
	}

	errName := errorTypeName(enum.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "// Parse%s converts a variant name into its %s value.\n", enum.Name, enum.Name)
	fmt.Fprintf(&b, "func Parse%s(s string) (%s, error) {\n\tswitch s {\n", enum.Name, enum.Name)
	for _, v := range enum.Variants {
		fmt.Fprintf(&b, "\tcase %q:\n\t\treturn %s, nil\n", v.Name, v.Name)
	}
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\treturn 0, &%s{Value: s}\n}\n", errName)

	return Fragment{Source: b.String()}, true
}
