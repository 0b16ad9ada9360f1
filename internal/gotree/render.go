package gotree

import (
	"fmt"
	"go/format"
	"sort"
	"strings"
)

// Header is written at the top of every rendered file.
const Header = "// Code generated by gencompose. DO NOT EDIT."

// Render assembles generated declarations into one gofmt-ed source file:
// header, package clause, deduplicated sorted imports, then the chunks in
// the order they were produced.
func Render(pkg string, imports []string, chunks []string) ([]byte, error) {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n\npackage ")
	b.WriteString(pkg)
	b.WriteString("\n\n")

	if paths := dedupImports(imports); len(paths) > 0 {
		b.WriteString("import (\n")
		for _, p := range paths {
			fmt.Fprintf(&b, "\t%q\n", p)
		}
		b.WriteString(")\n\n")
	}

	for _, chunk := range chunks {
		b.WriteString(strings.TrimRight(chunk, "\n"))
		b.WriteString("\n\n")
	}

	out, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("rendered output does not parse: %w", err)
	}
	return out, nil
}

func dedupImports(imports []string) []string {
	seen := make(map[string]bool, len(imports))
	out := make([]string, 0, len(imports))
	for _, p := range imports {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
