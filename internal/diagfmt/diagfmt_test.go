package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gencompose/internal/diag"
	"gencompose/internal/source"
)

func setupFile(t *testing.T) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.go", []byte("val x = bad + 1\nnext line\n"))
	return fs, id
}

func TestPrettyPlain(t *testing.T) {
	fs, id := setupFile(t)
	d := diag.NewError(diag.LintNotAnEnum, source.Span{File: id, Start: 8, End: 11}, "expected an integer enum")

	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeAuto})

	want := "input.go:1:9: ERROR LNT2001: expected an integer enum\n" +
		"    val x = bad + 1\n" +
		"            ^~~\n"
	if buf.String() != want {
		t.Errorf("Pretty output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrettyShowsNotes(t *testing.T) {
	fs, id := setupFile(t)
	d := diag.NewError(diag.LintExplicitValue, source.Span{File: id, Start: 8, End: 11}, "explicit value").
		WithNote(source.Span{File: id, Start: 16, End: 20}, "declared here")

	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{PathMode: PathModeAuto, ShowNotes: true})

	out := buf.String()
	if !strings.Contains(out, "note: input.go:2:1: declared here") {
		t.Errorf("notes missing from output:\n%s", out)
	}
}

func TestPrettyTruncatesAtMax(t *testing.T) {
	fs, id := setupFile(t)
	sp := source.Span{File: id, Start: 0, End: 3}
	diags := []diag.Diagnostic{
		diag.NewError(diag.UnknownCode, sp, "one"),
		diag.NewError(diag.UnknownCode, sp, "two"),
		diag.NewError(diag.UnknownCode, sp, "three"),
	}

	var buf bytes.Buffer
	Pretty(&buf, diags, fs, PrettyOpts{PathMode: PathModeAuto, Max: 2})

	out := buf.String()
	if strings.Contains(out, "three") {
		t.Errorf("third diagnostic should be truncated:\n%s", out)
	}
	if !strings.Contains(out, "... and 1 more diagnostics") {
		t.Errorf("truncation footer missing:\n%s", out)
	}
}

func TestShort(t *testing.T) {
	fs, id := setupFile(t)
	diags := []diag.Diagnostic{
		diag.NewError(diag.LintNoVariants, source.Span{File: id, Start: 0, End: 3}, "first"),
		diag.NewWarning(diag.UnknownCode, source.Span{File: id, Start: 4, End: 5}, "second"),
	}

	var buf bytes.Buffer
	Short(&buf, diags, fs, PrettyOpts{PathMode: PathModeAuto})

	want := "input.go:1:1: ERROR LNT2002: first\n" +
		"input.go:1:5: WARNING E0000: second\n"
	if buf.String() != want {
		t.Errorf("Short output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestJSON(t *testing.T) {
	fs, id := setupFile(t)
	d := diag.NewError(diag.LintNotAnEnum, source.Span{File: id, Start: 8, End: 11}, "expected an integer enum").
		WithNote(source.Span{File: id, Start: 16, End: 20}, "declared here")

	var buf bytes.Buffer
	err := JSON(&buf, []diag.Diagnostic{d}, fs, JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
		PathMode:         PathModeAuto,
	})
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d, want 1/1", out.Count, len(out.Diagnostics))
	}

	dj := out.Diagnostics[0]
	if dj.Severity != "ERROR" || dj.Code != "LNT2001" {
		t.Errorf("severity/code = %s/%s, want ERROR/LNT2001", dj.Severity, dj.Code)
	}
	if dj.Location.File != "input.go" || dj.Location.StartByte != 8 || dj.Location.EndByte != 11 {
		t.Errorf("location = %+v", dj.Location)
	}
	if dj.Location.StartLine != 1 || dj.Location.StartCol != 9 {
		t.Errorf("position = %d:%d, want 1:9", dj.Location.StartLine, dj.Location.StartCol)
	}
	if len(dj.Notes) != 1 || dj.Notes[0].Message != "declared here" {
		t.Errorf("notes = %+v", dj.Notes)
	}
}

func TestDisplayPathModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("sub/dir/file.go", []byte("x"))
	f := fs.Get(id)

	if got := displayPath(f, fs, PathModeBasename); got != "file.go" {
		t.Errorf("basename = %q, want file.go", got)
	}
	if got := displayPath(f, fs, PathModeAuto); got != "sub/dir/file.go" {
		t.Errorf("auto = %q, want sub/dir/file.go", got)
	}
}
