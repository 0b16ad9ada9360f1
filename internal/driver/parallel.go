package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"gencompose/internal/project"
)

// DirRequest configures a manifest-driven run over many files.
type DirRequest struct {
	Manifest *project.Manifest
	Jobs     int // 0 = GOMAXPROCS
	DryRun   bool
	Cache    *DiskCache
	Progress ProgressSink
}

// DirResult aggregates per-file results in manifest target order,
// regardless of completion order.
type DirResult struct {
	Results []*Result
}

// Clean reports whether every file ran without diagnostics.
func (r *DirResult) Clean() bool {
	for _, res := range r.Results {
		if res != nil && !res.Clean() {
			return false
		}
	}
	return true
}

// FilePaths lists the absolute input paths of a manifest, target order.
func FilePaths(m *project.Manifest) []string {
	paths := make([]string, 0, len(m.Config.Targets))
	for _, t := range m.Config.Targets {
		paths = append(paths, filepath.Join(m.Root, t.File))
	}
	return paths
}

// GenerateDir runs every manifest target, bounded-parallel. Each file
// gets its own collector and context; runs never share state, so the
// per-run ordering guarantees hold unchanged.
func GenerateDir(ctx context.Context, req *DirRequest) (*DirResult, error) {
	if req == nil || req.Manifest == nil {
		return nil, fmt.Errorf("missing manifest")
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	targets := req.Manifest.Config.Targets
	for _, path := range FilePaths(req.Manifest) {
		emit(req.Progress, path, StageParse, StatusQueued, nil)
	}

	out := &DirResult{Results: make([]*Result, len(targets))}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Generate(&Request{
				Path:     filepath.Join(req.Manifest.Root, target.File),
				Types:    target.Types,
				Suffix:   req.Manifest.Suffix(),
				DryRun:   req.DryRun,
				Cache:    req.Cache,
				Progress: req.Progress,
			})
			if err != nil {
				return err
			}
			out.Results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}
