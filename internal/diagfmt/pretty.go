package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"gencompose/internal/diag"
	"gencompose/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgBlue)
)

// Pretty formats diagnostics in a human-readable way, in the order they
// were recorded. For each diagnostic it prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the offending source line with a ^~~~ underline sized to
// the span, then the notes in the same shape.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	shown := diags
	if opts.Max > 0 && len(diags) > opts.Max {
		shown = diags[:opts.Max]
	}

	for _, d := range shown {
		writeHeading(w, d, fs, opts)
		writeContext(w, d.Primary, fs)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				pos := fs.Position(n.Span)
				path := displayPath(fs.Get(n.Span.File), fs, opts.PathMode)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
					label(noteColor, "note:", opts.Color), path, pos.Line, pos.Col, n.Msg)
			}
		}
	}

	if rest := len(diags) - len(shown); rest > 0 {
		fmt.Fprintf(w, "... and %d more diagnostics\n", rest)
	}
}

// Short prints one line per diagnostic, no context.
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range shownSlice(diags, opts.Max) {
		writeHeading(w, d, fs, opts)
	}
}

func shownSlice(diags []diag.Diagnostic, max int) []diag.Diagnostic {
	if max > 0 && len(diags) > max {
		return diags[:max]
	}
	return diags
}

func writeHeading(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	pos := fs.Position(d.Primary)
	path := displayPath(fs.Get(d.Primary.File), fs, opts.PathMode)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, pos.Line, pos.Col,
		label(severityColor(d.Severity), d.Severity.String(), opts.Color),
		d.Code.ID(), d.Message)
}

// writeContext prints the source line of the primary span with an
// underline. Multi-line spans are underlined only on their first line.
func writeContext(w io.Writer, sp source.Span, fs *source.FileSet) {
	pos := fs.Position(sp)
	line := fs.Line(sp.File, pos.Line)
	if line == nil {
		return
	}
	fmt.Fprintf(w, "    %s\n", expandTabs(string(line)))

	prefix := line
	if int(pos.Col-1) < len(line) {
		prefix = line[:pos.Col-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(expandTabs(string(prefix))))

	span := int(sp.Len())
	rest := len(line) - int(pos.Col-1)
	if span > rest {
		span = rest
	}
	underline := "^"
	if span > 1 {
		marked := string(line[pos.Col-1 : int(pos.Col-1)+span])
		width := runewidth.StringWidth(expandTabs(marked))
		if width > 1 {
			underline += strings.Repeat("~", width-1)
		}
	}
	fmt.Fprintf(w, "    %s%s\n", pad, underline)
}

// expandTabs keeps underline math aligned with the printed line.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func label(c *color.Color, text string, colored bool) string {
	if !colored {
		return text
	}
	return c.Sprint(text)
}
