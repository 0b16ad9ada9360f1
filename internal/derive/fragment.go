// Package derive ships the built-in stage set: lint an integer enum
// declaration and expand parse/string helpers for it.
package derive

// Fragment is one unit of generated output: a chunk of Go declarations
// plus the import paths they need. Fragments are merged by the driver in
// the order the expand stages produced them.
type Fragment struct {
	Imports []string
	Source  string
}
