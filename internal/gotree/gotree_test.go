package gotree

import (
	"strings"
	"testing"

	"gencompose/internal/diag"
	"gencompose/internal/source"
)

const validSrc = `package paint

type Color int

const (
	Red Color = iota
	Green
	Blue
)
`

func TestParseSourceValid(t *testing.T) {
	fs := source.NewFileSet()
	f, d := ParseSource(fs, "color.go", []byte(validSrc))
	if d != nil {
		t.Fatalf("ParseSource reported %v on valid input", d)
	}
	if f.AST.Name.Name != "paint" {
		t.Errorf("package name = %q, want paint", f.AST.Name.Name)
	}

	sp := f.Span(f.AST.Name)
	start := int(sp.Start)
	end := int(sp.End)
	if got := validSrc[start:end]; got != "paint" {
		t.Errorf("Span covers %q, want the package identifier", got)
	}
}

func TestParseSourceMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "truncated declaration", src: "package broken\n\ntype Color\n"},
		{name: "garbage", src: "this is not go\n"},
		{name: "unclosed const block", src: "package broken\n\nconst (\n\tA = iota\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := source.NewFileSet()
			f, d := ParseSource(fs, "broken.go", []byte(tt.src))
			if f != nil {
				t.Fatal("malformed input must not yield a tree")
			}
			if d == nil {
				t.Fatal("malformed input must yield a diagnostic")
			}
			if d.Severity != diag.SevError || d.Code != diag.ParseFailed {
				t.Errorf("diagnostic = %v %v, want ERROR ParseFailed", d.Severity, d.Code)
			}
		})
	}
}

func TestRender(t *testing.T) {
	chunk := "func Answer() int {\nreturn 42\n}\n"
	out, err := Render("paint", []string{"fmt", "strings", "fmt"}, []string{chunk})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	text := string(out)
	if !strings.HasPrefix(text, Header) {
		t.Errorf("output must start with the generated-code header, got %q", text[:40])
	}
	if !strings.Contains(text, "package paint") {
		t.Error("output must contain the package clause")
	}
	// imports deduplicated and sorted
	if strings.Count(text, `"fmt"`) != 1 {
		t.Errorf("duplicate import not removed:\n%s", text)
	}
	if strings.Index(text, `"fmt"`) > strings.Index(text, `"strings"`) {
		t.Errorf("imports not sorted:\n%s", text)
	}
	// gofmt applied: the chunk body gets indented
	if !strings.Contains(text, "\treturn 42") {
		t.Errorf("output not formatted:\n%s", text)
	}
}

func TestRenderNoImports(t *testing.T) {
	out, err := Render("paint", nil, []string{"var x = 1\n"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(string(out), "import") {
		t.Errorf("no import block expected:\n%s", out)
	}
}

func TestRenderRejectsBrokenChunk(t *testing.T) {
	_, err := Render("paint", nil, []string{"func broken( {"})
	if err == nil {
		t.Fatal("Render must fail on output that does not parse")
	}
}
