// Package driver runs the lint/expand pipeline over concrete files and
// turns run outcomes into artifacts on disk.
package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gencompose/internal/compose"
	"gencompose/internal/derive"
	"gencompose/internal/diag"
	"gencompose/internal/gotree"
	"gencompose/internal/source"
)

// Request configures one generation run over one file.
type Request struct {
	Path     string   // input Go file
	Types    []string // enum types to derive for
	Suffix   string   // output suffix, e.g. "_gen.go"
	DryRun   bool     // render but do not write
	Cache    *DiskCache
	Progress ProgressSink
}

// Result captures the artifacts of one run. Diagnostics are the failure
// outcome in recording order; Output is only set for clean runs.
type Result struct {
	Path      string
	OutPath   string
	Output    []byte
	Diags     []diag.Diagnostic
	Files     *source.FileSet
	FromCache bool
	Written   bool
}

// Clean reports whether the run recorded no diagnostics.
func (r *Result) Clean() bool {
	return len(r.Diags) == 0
}

// Generate executes one full run: load, parse, lint every requested type,
// expand while clean, render, and write the generated file. The returned
// error covers operational failures only (IO, rendering); semantic
// problems travel inside Result.Diags.
func Generate(req *Request) (*Result, error) {
	if req == nil || req.Path == "" {
		return nil, fmt.Errorf("missing generate request path")
	}
	suffix := req.Suffix
	if suffix == "" {
		suffix = "_gen.go"
	}

	res := &Result{
		Path:    req.Path,
		OutPath: outputPath(req.Path, suffix),
		Files:   source.NewFileSet(),
	}
	res.Files.SetBaseDir(filepath.Dir(req.Path))

	emit(req.Progress, req.Path, StageParse, StatusWorking, nil)
	id, err := res.Files.Load(req.Path)
	if err != nil {
		emit(req.Progress, req.Path, StageParse, StatusError, err)
		return nil, fmt.Errorf("failed to load %s: %w", req.Path, err)
	}
	file := res.Files.Get(id)

	if req.Cache != nil {
		key := cacheKey(file.Hash, req.Types, suffix)
		var payload Payload
		if ok, err := req.Cache.Get(key, &payload); err == nil && ok {
			res.Output = payload.Output
			res.FromCache = true
			emit(req.Progress, req.Path, StageRender, StatusDone, nil)
			return res, writeOutput(req, res)
		}
	}

	collector := diag.NewCollector()
	ctx := compose.NewParse(collector, file.Content,
		func([]byte) (*gotree.File, *diag.Diagnostic) {
			return gotree.Parse(res.Files, id)
		})
	emit(req.Progress, req.Path, StageParse, StatusDone, nil)

	emit(req.Progress, req.Path, StageLint, StatusWorking, nil)
	for _, typ := range req.Types {
		ctx.RunLint(derive.EnumLint{Type: typ})
	}
	emit(req.Progress, req.Path, StageLint, StatusDone, nil)

	if collector.Clean() {
		emit(req.Progress, req.Path, StageExpand, StatusWorking, nil)
	} else {
		emit(req.Progress, req.Path, StageExpand, StatusSkipped, nil)
	}
	for _, typ := range req.Types {
		compose.Run(ctx, derive.ErrorTypeExpand{Type: typ})
		compose.Run(ctx, derive.StringExpand{Type: typ})
		compose.Run(ctx, derive.ParseExpand{Type: typ})
	}

	if err := collector.Finish(); err != nil {
		var derr *diag.Error
		if !errors.As(err, &derr) {
			return nil, err
		}
		res.Diags = derr.Diagnostics()
		emit(req.Progress, req.Path, StageRender, StatusSkipped, nil)
		return res, nil
	}

	emit(req.Progress, req.Path, StageRender, StatusWorking, nil)
	tree, _ := ctx.Input()
	fragments := compose.Outputs[gotree.File, derive.Fragment](ctx)
	var imports []string
	chunks := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		imports = append(imports, frag.Imports...)
		chunks = append(chunks, frag.Source)
	}
	out, err := gotree.Render(tree.AST.Name.Name, imports, chunks)
	if err != nil {
		emit(req.Progress, req.Path, StageRender, StatusError, err)
		return nil, fmt.Errorf("%s: %w", req.Path, err)
	}
	res.Output = out
	emit(req.Progress, req.Path, StageRender, StatusDone, nil)

	if req.Cache != nil {
		key := cacheKey(file.Hash, req.Types, suffix)
		if err := req.Cache.Put(key, &Payload{Schema: cacheSchemaVersion, Output: out}); err != nil {
			// cache trouble never fails the run
			fmt.Fprintf(os.Stderr, "gencompose: cache write failed: %v\n", err)
		}
	}

	return res, writeOutput(req, res)
}

func writeOutput(req *Request, res *Result) error {
	if req.DryRun || len(res.Output) == 0 {
		return nil
	}
	emit(req.Progress, req.Path, StageWrite, StatusWorking, nil)
	if err := os.WriteFile(res.OutPath, res.Output, 0o644); err != nil {
		emit(req.Progress, req.Path, StageWrite, StatusError, err)
		return fmt.Errorf("failed to write %s: %w", res.OutPath, err)
	}
	res.Written = true
	emit(req.Progress, req.Path, StageWrite, StatusDone, nil)
	return nil
}

func outputPath(path, suffix string) string {
	return strings.TrimSuffix(path, ".go") + suffix
}
