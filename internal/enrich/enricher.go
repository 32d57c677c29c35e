// Package enrich adds dependency edges to a base hierarchy graph by
// fetching a bounded sample of file contents, extracting imports and
// resolving them against the known repository paths. Enrichment is
// best-effort: individual fetch or parse failures never abort the batch,
// the affected file simply contributes no edges.
package enrich

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/repograph/repograph/internal/graph"
	"github.com/repograph/repograph/internal/imports"
)

// ContentSource supplies the text of one repository file. Implemented by
// githost.RepoFiles for remote repositories and walker.DirSource for local
// directories.
type ContentSource interface {
	FetchFile(ctx context.Context, path string) ([]byte, error)
}

// ProgressFunc reports enrichment progress.
type ProgressFunc func(done, total int, path string)

// Options bounds the enrichment fan-out. SelectLimit caps how many files
// are considered for parsing; FetchLimit caps how many are actually
// fetched and must be the stricter of the two.
type Options struct {
	SelectLimit int
	FetchLimit  int
	Concurrency int
}

// DefaultOptions returns the standard enrichment bounds.
func DefaultOptions() Options {
	return Options{SelectLimit: 200, FetchLimit: 60, Concurrency: 5}
}

// Result summarizes one enrichment run.
type Result struct {
	FilesSampled int
	FilesFetched int
	FilesFailed  int
	EdgesAdded   int
	Errors       []error
}

// Enrich runs the full enrichment pass over g in place. Resolved pairs are
// merged through graph.AddDependencyEdges, so the final edge set does not
// depend on fetch completion order.
func Enrich(ctx context.Context, g *graph.Graph, src ContentSource, opts Options, onProgress ProgressFunc) *Result {
	if opts.SelectLimit <= 0 || opts.FetchLimit <= 0 {
		o := DefaultOptions()
		if opts.SelectLimit <= 0 {
			opts.SelectLimit = o.SelectLimit
		}
		if opts.FetchLimit <= 0 {
			opts.FetchLimit = o.FetchLimit
		}
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	sample := selectFiles(g, opts)
	result := &Result{FilesSampled: len(sample)}
	if len(sample) == 0 {
		return result
	}

	known := make(map[string]bool)
	for _, p := range g.FilePaths() {
		known[p] = true
	}

	// Fan out fetches with per-request isolation; pairs land in a slot per
	// file so the collected order matches the sample order.
	pairsByFile := make([][]graph.DependencyPair, len(sample))
	var mu sync.Mutex
	var done int64

	sem := make(chan struct{}, opts.Concurrency)
	var wg sync.WaitGroup
	for i, path := range sample {
		select {
		case <-ctx.Done():
			mu.Lock()
			result.FilesFailed++
			result.Errors = append(result.Errors, ctx.Err())
			mu.Unlock()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			content, err := src.FetchFile(ctx, path)
			count := atomic.AddInt64(&done, 1)
			if onProgress != nil {
				onProgress(int(count), len(sample), path)
			}
			if err != nil {
				mu.Lock()
				result.FilesFailed++
				result.Errors = append(result.Errors, fmt.Errorf("fetch %s: %w", path, err))
				mu.Unlock()
				return
			}

			var pairs []graph.DependencyPair
			for _, dep := range imports.ParseImports(path, string(content)) {
				if target, ok := imports.Resolve(path, dep.Target, known); ok {
					pairs = append(pairs, graph.DependencyPair{Source: path, Target: target})
				}
			}
			pairsByFile[i] = pairs

			mu.Lock()
			result.FilesFetched++
			mu.Unlock()
		}(i, path)
	}
	wg.Wait()

	var all []graph.DependencyPair
	for _, pairs := range pairsByFile {
		all = append(all, pairs...)
	}
	result.EdgesAdded = graph.AddDependencyEdges(g, all)
	return result
}

// selectFiles picks the files worth fetching: parseable extensions only,
// in node order, capped first at SelectLimit candidates and then at the
// stricter FetchLimit actually fetched.
func selectFiles(g *graph.Graph, opts Options) []string {
	var candidates []string
	for _, n := range g.Nodes {
		if n.Kind != graph.NodeFile || !imports.Parseable(n.Extension) {
			continue
		}
		candidates = append(candidates, n.Path)
		if len(candidates) >= opts.SelectLimit {
			break
		}
	}
	if len(candidates) > opts.FetchLimit {
		candidates = candidates[:opts.FetchLimit]
	}
	return candidates
}
