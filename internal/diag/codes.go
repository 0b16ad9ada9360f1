package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind with a stable numeric value.
type Code uint16

const (
	// UnknownCode is the fallback for unclassified diagnostics.
	UnknownCode Code = 0

	// Parse errors (input could not be turned into a tree)
	ParseFailed Code = 1000

	// Lint findings
	LintTypeNotFound  Code = 2000
	LintNotAnEnum     Code = 2001
	LintNoVariants    Code = 2002
	LintBadVariant    Code = 2003
	LintExplicitValue Code = 2004
)

var codeDescription = map[Code]string{
	UnknownCode:       "unknown diagnostic",
	ParseFailed:       "source failed to parse",
	LintTypeNotFound:  "target type not declared in file",
	LintNotAnEnum:     "target type is not an integer enum",
	LintNoVariants:    "enum has no const variants",
	LintBadVariant:    "enum variant must be a bare identifier",
	LintExplicitValue: "enum variant must not carry an explicit value",
}

// ID returns the stable string form of the code, grouped by range.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("PAR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LNT%04d", ic)
	}
	return "E0000"
}

// Title returns a short description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return c.ID()
}
