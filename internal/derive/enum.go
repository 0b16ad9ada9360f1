package derive

import (
	"go/ast"
	"go/token"

	"gencompose/internal/gotree"
)

// Variant is one named enum constant.
type Variant struct {
	Name string
	Node *ast.Ident
}

// Enum is the extracted model of an integer enum: a named integer type
// plus the const variants declared for it, in declaration order.
type Enum struct {
	Name     string
	Spec     *ast.TypeSpec
	Variants []Variant
}

var intKinds = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
}

// typeSpecOf finds the type declaration for name in the file.
func typeSpecOf(f *gotree.File, name string) *ast.TypeSpec {
	for _, decl := range f.AST.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if ok && ts.Name.Name == name {
				return ts
			}
		}
	}
	return nil
}

// isIntType reports whether the type expression is a predeclared integer.
func isIntType(expr ast.Expr) bool {
	id, ok := expr.(*ast.Ident)
	return ok && intKinds[id.Name]
}

// constBlocksOf returns every const declaration whose first spec is typed
// with the enum's name. Specs after the first continue the block's iota.
func constBlocksOf(f *gotree.File, name string) []*ast.GenDecl {
	var blocks []*ast.GenDecl
	for _, decl := range f.AST.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.CONST || len(gen.Specs) == 0 {
			continue
		}
		first, ok := gen.Specs[0].(*ast.ValueSpec)
		if !ok || first.Type == nil {
			continue
		}
		if id, ok := first.Type.(*ast.Ident); ok && id.Name == name {
			blocks = append(blocks, gen)
		}
	}
	return blocks
}

// enumOf extracts the validated enum model. It reports ok=false when the
// file does not contain a well-formed enum declaration for name; expand
// stages treat that as "nothing to contribute" since the lint has already
// surfaced the problem in any run that reaches them.
func enumOf(f *gotree.File, name string) (*Enum, bool) {
	spec := typeSpecOf(f, name)
	if spec == nil || !isIntType(spec.Type) {
		return nil, false
	}

	e := &Enum{Name: name, Spec: spec}
	for _, block := range constBlocksOf(f, name) {
		for i, s := range block.Specs {
			vs, ok := s.(*ast.ValueSpec)
			if !ok || len(vs.Names) != 1 {
				return nil, false
			}
			if i == 0 && !isIotaInit(vs) {
				return nil, false
			}
			if i > 0 && (vs.Type != nil || len(vs.Values) != 0) {
				return nil, false
			}
			ident := vs.Names[0]
			if ident.Name == "_" {
				continue
			}
			e.Variants = append(e.Variants, Variant{Name: ident.Name, Node: ident})
		}
	}
	if len(e.Variants) == 0 {
		return nil, false
	}
	return e, true
}

// isIotaInit matches the canonical opening spec `Name Type = iota`.
func isIotaInit(vs *ast.ValueSpec) bool {
	if len(vs.Values) != 1 {
		return false
	}
	id, ok := vs.Values[0].(*ast.Ident)
	return ok && id.Name == "iota"
}
