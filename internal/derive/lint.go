package derive

import (
	"go/ast"

	"gencompose/internal/diag"
	"gencompose/internal/gotree"
)

// EnumLint validates that Type is declared as an integer enum the expand
// stages can work with: a named integer type plus at least one const
// block of bare iota variants. Every violation becomes its own
// diagnostic, so a single run surfaces all problems at once.
type EnumLint struct {
	Type string
}

func (l EnumLint) Lint(f *gotree.File, c *diag.Collector) {
	spec := typeSpecOf(f, l.Type)
	if spec == nil {
		c.Errorf(diag.LintTypeNotFound, f.Span(f.AST.Name),
			"type %s is not declared in this file", l.Type)
		return
	}
	if !isIntType(spec.Type) {
		c.Errorf(diag.LintNotAnEnum, f.Span(spec),
			"expected an integer enum, %s has underlying type %s", l.Type, typeLabel(spec.Type))
		return
	}

	blocks := constBlocksOf(f, l.Type)
	if len(blocks) == 0 {
		c.Errorf(diag.LintNoVariants, f.Span(spec),
			"no const block declares variants for %s", l.Type)
		return
	}

	variants := 0
	for _, block := range blocks {
		for i, s := range block.Specs {
			vs, ok := s.(*ast.ValueSpec)
			if !ok {
				continue
			}
			if len(vs.Names) != 1 {
				c.Errorf(diag.LintBadVariant, f.Span(vs),
					"variants of %s must be declared one per line", l.Type)
				continue
			}
			if i == 0 {
				if !isIotaInit(vs) {
					c.Errorf(diag.LintExplicitValue, f.Span(vs),
						"first variant of %s must be `%s %s = iota`", l.Type, vs.Names[0].Name, l.Type)
					continue
				}
			} else if vs.Type != nil || len(vs.Values) != 0 {
				c.Errorf(diag.LintExplicitValue, f.Span(vs),
					"variant %s must not carry an explicit value", vs.Names[0].Name)
				continue
			}
			if vs.Names[0].Name != "_" {
				variants++
			}
		}
	}
	if variants == 0 {
		c.Errorf(diag.LintNoVariants, f.Span(spec),
			"every variant of %s is blank", l.Type)
	}
}

func typeLabel(expr ast.Expr) string {
	if id, ok := expr.(*ast.Ident); ok {
		return id.Name
	}
	return "a non-identifier type"
}
