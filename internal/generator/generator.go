// Package generator converts tag-annotated doc comments into the normalized,
// keyed documentation model: raw docsets are classified, expanded, merged
// into flat records, then assembled into typed nodes with fully-qualified
// names, accumulated signatures, and bound-method links.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/conc/pool"

	"github.com/example/jsdoc-gen/internal/parser"
)

// Options configures a generator.
type Options struct {
	// GlobalNS is the namespace prefix for files without an owning class.
	GlobalNS string
	// Logger receives warnings and per-file progress. Nil falls back to
	// slog.Default.
	Logger *slog.Logger
}

// ProcessFile runs the full pipeline for one file's source text:
// classify -> expand -> merge -> assemble. It holds no state outside its own
// frame, so concurrent calls for different files are safe.
func ProcessFile(ctx context.Context, path string, src []byte, opts Options) (*FileDoc, error) {
	p, err := parser.ForFile(path)
	if err != nil {
		return nil, err
	}

	raw, err := p.ParseSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	sets := Merge(Expand(Classify(raw)))
	return Assemble(sets, AssembleOptions{
		File:     path,
		GlobalNS: opts.GlobalNS,
		Logger:   opts.Logger,
	})
}

// Generator runs the pipeline over many files and merges the results.
type Generator struct {
	opts Options
	log  *slog.Logger
}

// New creates a Generator.
func New(opts Options) *Generator {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Generator{opts: opts, log: log}
}

// Run expands the source patterns, processes every matched file, and merges
// the per-file maps into one Result. Files are processed concurrently but
// merged in sorted path order, so output is deterministic. Per-file failures
// do not stop the run; they are joined into the returned error alongside the
// partial Result.
func (g *Generator) Run(ctx context.Context, patterns []string, concurrency int) (*Result, error) {
	paths, err := expandPatterns(patterns)
	if err != nil {
		return nil, err
	}
	if concurrency < 1 {
		concurrency = 1
	}

	type outcome struct {
		doc *FileDoc
		err error
	}
	outs := make([]outcome, len(paths))

	p := pool.New().WithMaxGoroutines(concurrency)
	for i, path := range paths {
		i, path := i, path
		p.Go(func() {
			src, err := os.ReadFile(path)
			if err != nil {
				outs[i] = outcome{err: fmt.Errorf("read %s: %w", path, err)}
				return
			}
			doc, err := ProcessFile(ctx, path, src, g.opts)
			outs[i] = outcome{doc: doc, err: err}
		})
	}
	p.Wait()

	result := &Result{
		Files:    []string{},
		Nodes:    make(map[string]*Node),
		Sections: make(map[string]*Node),
	}
	var errs []error
	for i, out := range outs {
		if out.err != nil {
			g.log.Error("file failed", "file", paths[i], "error", out.err)
			errs = append(errs, out.err)
			continue
		}
		g.mergeFile(result, out.doc)
	}

	return result, errors.Join(errs...)
}

// mergeFile folds one file's map into the run result. Earlier files win key
// collisions; a collision is a warning, never a silent overwrite.
func (g *Generator) mergeFile(result *Result, doc *FileDoc) {
	result.Files = append(result.Files, doc.File)
	result.Warnings = append(result.Warnings, doc.Warnings...)

	for key, node := range doc.Nodes {
		if _, exists := result.Nodes[key]; exists {
			w := Warning{
				File:    doc.File,
				Line:    node.Line,
				Code:    WarnDuplicateKey,
				Message: fmt.Sprintf("node key %q already defined by an earlier file", key),
			}
			result.Warnings = append(result.Warnings, w)
			g.log.Warn(w.Message, "file", doc.File, "line", node.Line)
			continue
		}
		result.Nodes[key] = node
	}
	for id, node := range doc.Sections {
		if _, exists := result.Sections[id]; !exists {
			result.Sections[id] = node
		}
	}
}

// expandPatterns resolves doublestar globs into a sorted, de-duplicated list
// of supported source files.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad source pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] && parser.Supported(m) {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no supported source files matched %v", patterns)
	}
	sort.Strings(paths)
	return paths, nil
}
