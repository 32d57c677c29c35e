package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/repograph/repograph/internal/config"
	"github.com/repograph/repograph/internal/enrich"
	"github.com/repograph/repograph/internal/githost"
	"github.com/repograph/repograph/internal/graph"
	"github.com/repograph/repograph/internal/progress"
	"github.com/repograph/repograph/internal/walker"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildTarget builds the graph for a CLI target. A target naming an
// existing local directory is walked on disk; anything else must be an
// owner/repo slug fetched from the GitHub API.
func buildTarget(ctx context.Context, cfg *config.Config, target, ref string, withDeps bool) (*graph.Graph, error) {
	var (
		entries []graph.Entry
		src     enrich.ContentSource
		err     error
	)

	if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
		entries, err = walker.Walk(walker.Config{
			RootDir: target,
			Include: cfg.Include,
			Exclude: cfg.Exclude,
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", target, err)
		}
		src = &walker.DirSource{Root: target}
	} else {
		owner, repo, ok := strings.Cut(target, "/")
		if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
			return nil, fmt.Errorf("target %q is neither a directory nor an owner/repo slug", target)
		}
		client := githost.NewClient(cfg.APIBaseURL, cfg.GitHubToken)
		if ref == "" {
			ref, err = client.DefaultBranch(ctx, owner, repo)
			if err != nil {
				return nil, fmt.Errorf("resolving default branch: %w", err)
			}
		}
		tree, err := client.ListTree(ctx, owner, repo, ref)
		if err != nil {
			return nil, fmt.Errorf("listing repository tree: %w", err)
		}
		if tree.Truncated {
			fmt.Fprintln(os.Stderr, "Warning: repository listing was truncated by the API")
		}
		entries = tree.Entries
		src = &githost.RepoFiles{Client: client, Owner: owner, Repo: repo, Ref: ref}
	}

	g := graph.Build(entries)

	if withDeps {
		reporter := progress.NewReporter()
		var started sync.Once
		onProgress := func(done, total int, path string) {
			started.Do(func() { reporter.Start(total) })
			reporter.Update(done, path)
		}

		result := enrich.Enrich(ctx, g, src, enrich.Options{
			SelectLimit: cfg.SelectLimit,
			FetchLimit:  cfg.FetchLimit,
			Concurrency: cfg.MaxConcurrency,
		}, onProgress)
		reporter.Finish()

		if verbose {
			fmt.Fprintf(os.Stderr, "Fetched %d of %d sampled files, %d dependency edges added\n",
				result.FilesFetched, result.FilesSampled, result.EdgesAdded)
		}
		if result.FilesFailed > 0 {
			fmt.Fprintf(os.Stderr, "Warning: %d files could not be fetched\n", result.FilesFailed)
		}
	}

	g.ComputeStats()
	return g, nil
}
