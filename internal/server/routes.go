package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/repograph/repograph/internal/analyze"
	"github.com/repograph/repograph/internal/enrich"
	"github.com/repograph/repograph/internal/githost"
	"github.com/repograph/repograph/internal/graph"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, githost.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, githost.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// graphResponse is the payload of the graph endpoint.
type graphResponse struct {
	Owner     string       `json:"owner"`
	Repo      string       `json:"repo"`
	Ref       string       `json:"ref"`
	Truncated bool         `json:"truncated,omitempty"`
	Graph     *graph.Graph `json:"graph"`
}

// buildGraph produces the enriched graph for one repository, reusing a
// cached snapshot when fresh. A failed tree fetch aborts the build; all
// enrichment failures are absorbed and simply yield fewer edges.
func (s *Server) buildGraph(ctx context.Context, owner, repo, ref string, onProgress enrich.ProgressFunc) (*graphResponse, error) {
	if ref == "" {
		branch, err := s.gh.DefaultBranch(ctx, owner, repo)
		if err != nil {
			return nil, err
		}
		ref = branch
	}

	if s.cache != nil {
		g, ok, err := s.cache.Get(owner, repo, ref, s.cfg.CacheTTL)
		if err != nil {
			log.Printf("server: cache lookup %s/%s@%s: %v", owner, repo, ref, err)
		} else if ok {
			return &graphResponse{Owner: owner, Repo: repo, Ref: ref, Graph: g}, nil
		}
	}

	tree, err := s.gh.ListTree(ctx, owner, repo, ref)
	if err != nil {
		return nil, err
	}

	g := graph.Build(tree.Entries)
	src := &githost.RepoFiles{Client: s.gh, Owner: owner, Repo: repo, Ref: ref}
	result := enrich.Enrich(ctx, g, src, s.cfg.Enrich, onProgress)
	if result.FilesFailed > 0 {
		log.Printf("server: %s/%s@%s: %d of %d sampled files failed during enrichment",
			owner, repo, ref, result.FilesFailed, result.FilesSampled)
	}
	g.ComputeStats()

	if s.cache != nil {
		if _, err := s.cache.Put(owner, repo, ref, g); err != nil {
			log.Printf("server: cache store %s/%s@%s: %v", owner, repo, ref, err)
		}
	}

	return &graphResponse{Owner: owner, Repo: repo, Ref: ref, Truncated: tree.Truncated, Graph: g}, nil
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	ref := r.URL.Query().Get("ref")

	resp, err := s.buildGraph(r.Context(), owner, repo, ref, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModules(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	ref := r.URL.Query().Get("ref")

	resp, err := s.buildGraph(r.Context(), owner, repo, ref, nil)
	if err != nil {
		writeError(w, err)
		return
	}

	summaries := graph.GroupByModule(resp.Graph.Nodes)
	writeJSON(w, http.StatusOK, map[string]any{
		"owner":   owner,
		"repo":    repo,
		"ref":     resp.Ref,
		"modules": summaries,
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	ref := r.URL.Query().Get("ref")
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "path query parameter is required"})
		return
	}

	if ref == "" {
		branch, err := s.gh.DefaultBranch(r.Context(), owner, repo)
		if err != nil {
			writeError(w, err)
			return
		}
		ref = branch
	}

	content, err := s.gh.FetchFile(r.Context(), owner, repo, ref, path)
	if err != nil {
		writeError(w, err)
		return
	}

	var fa analyze.FileAnalysis
	if s.analyzer != nil {
		fa = s.analyzer.Analyze(r.Context(), path, string(content))
	} else {
		fa = analyze.Heuristic(path, string(content))
	}
	writeJSON(w, http.StatusOK, fa)
}
