package diagfmt

import (
	"path/filepath"

	"gencompose/internal/source"
)

// displayPath formats a file path according to the path mode.
func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeRelative:
		if rel, err := filepath.Rel(fs.BaseDir(), f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		if rel, err := filepath.Rel(fs.BaseDir(), f.Path); err == nil && !isUpward(rel) {
			return filepath.ToSlash(rel)
		}
		return f.Path
	}
}

func isUpward(rel string) bool {
	return rel == ".." || len(rel) >= 3 && rel[:3] == "../"
}
