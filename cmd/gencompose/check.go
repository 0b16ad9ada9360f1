package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gencompose/internal/compose"
	"gencompose/internal/derive"
	"gencompose/internal/diag"
	"gencompose/internal/diagfmt"
	"gencompose/internal/gotree"
	"gencompose/internal/project"
	"gencompose/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.go|directory>",
	Short: "Run lint stages only, never writing output",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringSlice("type", nil, "enum type to check (repeatable; required for single files)")
	checkCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json|short)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	type job struct {
		path  string
		types []string
	}
	var jobs []job
	if info.IsDir() {
		manifest, ok, err := project.Load(path)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no %s found in or above %q", project.ManifestName, path)
		}
		for _, t := range manifest.Config.Targets {
			jobs = append(jobs, job{path: filepath.Join(manifest.Root, t.File), types: t.Types})
		}
	} else {
		types, err := cmd.Flags().GetStringSlice("type")
		if err != nil {
			return fmt.Errorf("failed to get type flag: %w", err)
		}
		if len(types) == 0 {
			return fmt.Errorf("at least one --type is required for a single file")
		}
		jobs = append(jobs, job{path: path, types: types})
	}

	failed := 0
	for _, j := range jobs {
		diags, files, err := checkFile(j.path, j.types)
		if err != nil {
			return err
		}
		if len(diags) == 0 {
			continue
		}
		failed++
		if err := renderCheckDiags(cmd, diags, files); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files reported diagnostics", failed, len(jobs))
	}
	return nil
}

// checkFile runs the validation half of the pipeline: parse plus every
// lint, no expansion.
func checkFile(path string, types []string) ([]diag.Diagnostic, *source.FileSet, error) {
	files := source.NewFileSet()
	files.SetBaseDir(filepath.Dir(path))
	id, err := files.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	collector := diag.NewCollector()
	ctx := compose.NewParse(collector, files.Get(id).Content,
		func([]byte) (*gotree.File, *diag.Diagnostic) {
			return gotree.Parse(files, id)
		})
	for _, typ := range types {
		ctx.RunLint(derive.EnumLint{Type: typ})
	}

	if err := collector.Finish(); err != nil {
		var derr *diag.Error
		if !errors.As(err, &derr) {
			return nil, nil, err
		}
		return derr.Diagnostics(), files, nil
	}
	return nil, files, nil
}

func renderCheckDiags(cmd *cobra.Command, diags []diag.Diagnostic, files *source.FileSet) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, _ := cmd.Flags().GetBool("with-notes")
	maxDiags, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	colored := resolveColor(cmd, os.Stderr)

	switch format {
	case "json":
		return diagfmt.JSON(os.Stderr, diags, files, diagfmt.JSONOpts{
			IncludePositions: true, IncludeNotes: withNotes, Max: maxDiags,
		})
	case "short":
		diagfmt.Short(os.Stderr, diags, files, diagfmt.PrettyOpts{Color: colored, Max: maxDiags})
	case "pretty":
		diagfmt.Pretty(os.Stderr, diags, files, diagfmt.PrettyOpts{
			Color: colored, ShowNotes: withNotes, Max: maxDiags,
		})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
