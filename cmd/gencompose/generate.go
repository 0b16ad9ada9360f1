package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gencompose/internal/diagfmt"
	"gencompose/internal/driver"
	"gencompose/internal/project"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] <file.go|directory>",
	Short: "Run lint and expand stages and write the derived code",
	Long: `Run the full pipeline over a single Go file (with --type) or over every
target of the gencompose.toml manifest found in a directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSlice("type", nil, "enum type to derive for (repeatable; required for single files)")
	generateCmd.Flags().String("format", "pretty", "diagnostic output format (pretty|json|short)")
	generateCmd.Flags().String("suffix", "", "output file suffix (default "+project.DefaultSuffix+")")
	generateCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	generateCmd.Flags().Bool("cache", false, "enable the persistent disk cache for rendered outputs")
	generateCmd.Flags().Bool("dry-run", false, "run the pipeline but do not write files")
	generateCmd.Flags().Bool("no-ui", false, "disable the interactive progress display")
	generateCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	var cache *driver.DiskCache
	if enabled, _ := cmd.Flags().GetBool("cache"); enabled {
		cache, err = driver.OpenDiskCache("gencompose")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if info.IsDir() {
		return generateDir(cmd, path, cache, dryRun)
	}
	return generateFile(cmd, path, cache, dryRun)
}

func generateFile(cmd *cobra.Command, path string, cache *driver.DiskCache, dryRun bool) error {
	types, err := cmd.Flags().GetStringSlice("type")
	if err != nil {
		return fmt.Errorf("failed to get type flag: %w", err)
	}
	if len(types) == 0 {
		return fmt.Errorf("at least one --type is required for a single file")
	}
	suffix, _ := cmd.Flags().GetString("suffix")

	res, err := driver.Generate(&driver.Request{
		Path:   path,
		Types:  types,
		Suffix: suffix,
		DryRun: dryRun,
		Cache:  cache,
	})
	if err != nil {
		return err
	}
	return reportResults(cmd, []*driver.Result{res})
}

func generateDir(cmd *cobra.Command, path string, cache *driver.DiskCache, dryRun bool) error {
	manifest, ok, err := project.Load(path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no %s found in or above %q", project.ManifestName, path)
	}
	if suffix, _ := cmd.Flags().GetString("suffix"); suffix != "" {
		manifest.Config.Generate.Suffix = suffix
	}
	jobs, _ := cmd.Flags().GetInt("jobs")

	req := &driver.DirRequest{
		Manifest: manifest,
		Jobs:     jobs,
		DryRun:   dryRun,
		Cache:    cache,
	}

	var res *driver.DirResult
	if useProgressUI(cmd) {
		res, err = runDirWithUI(context.Background(), manifest.Config.Package.Name, req)
	} else {
		res, err = driver.GenerateDir(context.Background(), req)
	}
	if err != nil {
		return err
	}
	return reportResults(cmd, res.Results)
}

func useProgressUI(cmd *cobra.Command) bool {
	if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
		return false
	}
	if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); quiet {
		return false
	}
	return isTerminal(os.Stdout)
}

// reportResults renders the diagnostics of every failed run and decides
// the process outcome.
func reportResults(cmd *cobra.Command, results []*driver.Result) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	withNotes, _ := cmd.Flags().GetBool("with-notes")
	maxDiags, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	colored := resolveColor(cmd, os.Stderr)

	failed := 0
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Clean() {
			if !quiet && res.Written {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", res.OutPath)
			}
			continue
		}
		failed++
		switch format {
		case "json":
			opts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: withNotes, Max: maxDiags}
			if err := diagfmt.JSON(os.Stderr, res.Diags, res.Files, opts); err != nil {
				return fmt.Errorf("failed to encode diagnostics: %w", err)
			}
		case "short":
			diagfmt.Short(os.Stderr, res.Diags, res.Files, diagfmt.PrettyOpts{Color: colored, Max: maxDiags})
		case "pretty":
			opts := diagfmt.PrettyOpts{Color: colored, ShowNotes: withNotes, Max: maxDiags}
			diagfmt.Pretty(os.Stderr, res.Diags, res.Files, opts)
		default:
			return fmt.Errorf("unknown format %q", format)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files reported diagnostics", failed, len(results))
	}
	return nil
}
