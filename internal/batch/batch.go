// Package batch evaluates many artifact documents concurrently.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"riskaction/internal/artifact"
	"riskaction/internal/logging"
	"riskaction/internal/postaction"
)

// DefaultParallel is the worker count used when none is configured.
const DefaultParallel = 4

// Result is the response for one input file.
type Result struct {
	File   string                       `json:"file"`
	Values []artifact.FieldValueBinding `json:"values"`
}

// Config controls a batch run.
type Config struct {
	Files    []string
	Parallel int
}

// Run evaluates every file with p, at most cfg.Parallel at a time. Results
// keep the order of cfg.Files. The first failure cancels the remaining work
// and is returned with the file name.
func Run(ctx context.Context, p *postaction.Pipeline, cfg Config) ([]Result, error) {
	parallel := cfg.Parallel
	if parallel <= 0 {
		parallel = DefaultParallel
	}
	logger := logging.New("batch")
	logger.Info("batch started", "files", len(cfg.Files), "parallel", parallel)

	results := make([]Result, len(cfg.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, file := range cfg.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bindings, err := evaluateFile(p, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			resp := postaction.NewResponse(bindings)
			results[i] = Result{File: file, Values: resp.Values}
			logger.Debug("file evaluated", "file", file, "bindings", len(bindings))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func evaluateFile(p *postaction.Pipeline, path string) ([]artifact.FieldValueBinding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	a, err := artifact.Decode(f)
	if err != nil {
		return nil, err
	}
	return p.Evaluate(a)
}

// Write emits one JSON line per result.
func Write(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write result for %s: %w", r.File, err)
		}
	}
	return nil
}
