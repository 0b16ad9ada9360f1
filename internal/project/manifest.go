// Package project loads the gencompose.toml manifest that describes a
// directory of generation targets.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file gencompose looks for when given a directory.
const ManifestName = "gencompose.toml"

// DefaultSuffix is appended to the input base name for generated files.
const DefaultSuffix = "_gen.go"

// Manifest is a loaded and validated gencompose.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the TOML structure.
type Config struct {
	Package  PackageConfig  `toml:"package"`
	Generate GenerateConfig `toml:"generate"`
	Targets  []Target       `toml:"target"`
}

// PackageConfig names the project.
type PackageConfig struct {
	Name string `toml:"name"`
}

// GenerateConfig holds output settings.
type GenerateConfig struct {
	Suffix string `toml:"suffix"`
}

// Target is one file/type-list pair to generate for.
type Target struct {
	File  string   `toml:"file"`
	Types []string `toml:"types"`
}

// Find walks up from startDir looking for a manifest.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and parses the manifest reachable from startDir. The second
// result reports whether a manifest exists at all.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one manifest file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if len(cfg.Targets) == 0 {
		return Config{}, fmt.Errorf("%s: no [[target]] sections", path)
	}
	for i, t := range cfg.Targets {
		if strings.TrimSpace(t.File) == "" {
			return Config{}, fmt.Errorf("%s: target %d: missing file", path, i+1)
		}
		if len(t.Types) == 0 {
			return Config{}, fmt.Errorf("%s: target %d (%s): no types", path, i+1, t.File)
		}
	}
	if cfg.Generate.Suffix == "" {
		cfg.Generate.Suffix = DefaultSuffix
	}
	return cfg, nil
}

// Suffix returns the configured output suffix.
func (m *Manifest) Suffix() string {
	return m.Config.Generate.Suffix
}
