// Package gotree adapts Go source files to the pipeline's tree contract:
// parse raw source text into an immutable syntax tree and resolve AST
// nodes into diagnostic spans.
package gotree

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	"fortio.org/safecast"

	"gencompose/internal/diag"
	"gencompose/internal/source"
)

// File is one parsed Go source file — the tree processed by one run.
// It is never mutated after Parse.
type File struct {
	Path string
	ID   source.FileID
	AST  *ast.File
	fset *token.FileSet
	tok  *token.File
}

// Parse parses a file already registered in fs. A failed parse is
// described by a single diagnostic: the first parser error is the primary
// span, the remaining ones become notes.
func Parse(fs *source.FileSet, id source.FileID) (*File, *diag.Diagnostic) {
	f := fs.Get(id)

	fset := token.NewFileSet()
	astFile, err := parser.ParseFile(fset, f.Path, f.Content, parser.ParseComments)
	if err != nil {
		d := parseDiagnostic(id, err)
		return nil, &d
	}

	return &File{
		Path: f.Path,
		ID:   id,
		AST:  astFile,
		fset: fset,
		tok:  fset.File(astFile.Pos()),
	}, nil
}

// ParseSource registers src as a virtual file in fs and parses it.
func ParseSource(fs *source.FileSet, name string, src []byte) (*File, *diag.Diagnostic) {
	id := fs.AddVirtual(name, src)
	return Parse(fs, id)
}

// Span resolves an AST node into a byte span inside the file.
func (f *File) Span(n ast.Node) source.Span {
	return source.Span{
		File:  f.ID,
		Start: f.offset(n.Pos()),
		End:   f.offset(n.End()),
	}
}

// PosSpan resolves a single position into an empty span.
func (f *File) PosSpan(pos token.Pos) source.Span {
	off := f.offset(pos)
	return source.Span{File: f.ID, Start: off, End: off}
}

func (f *File) offset(pos token.Pos) uint32 {
	off, err := safecast.Conv[uint32](f.tok.Offset(pos))
	if err != nil {
		panic(fmt.Errorf("offset overflow: %w", err))
	}
	return off
}

// parseDiagnostic folds the parser's error list into one diagnostic.
func parseDiagnostic(id source.FileID, err error) diag.Diagnostic {
	list, ok := err.(scanner.ErrorList)
	if !ok || len(list) == 0 {
		return diag.NewError(diag.ParseFailed, source.Span{File: id}, err.Error())
	}

	first := list[0]
	off, convErr := safecast.Conv[uint32](first.Pos.Offset)
	if convErr != nil {
		off = 0
	}
	d := diag.NewError(diag.ParseFailed, source.Span{File: id, Start: off, End: off}, first.Msg)
	for _, e := range list[1:] {
		noteOff, convErr := safecast.Conv[uint32](e.Pos.Offset)
		if convErr != nil {
			continue
		}
		d = d.WithNote(source.Span{File: id, Start: noteOff, End: noteOff}, e.Msg)
	}
	return d
}
