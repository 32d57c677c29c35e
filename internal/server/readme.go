package server

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/repograph/repograph/internal/githost"
)

var readmeCandidates = []string{"README.md", "readme.md", "docs/README.md"}

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
	),
)

// handleReadme fetches the repository README and returns it rendered as
// HTML. Candidate paths are tried in order; a repo with none returns 404.
func (s *Server) handleReadme(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	ref := r.URL.Query().Get("ref")

	if ref == "" {
		branch, err := s.gh.DefaultBranch(r.Context(), owner, repo)
		if err != nil {
			writeError(w, err)
			return
		}
		ref = branch
	}

	var content []byte
	found := false
	for _, candidate := range readmeCandidates {
		data, err := s.gh.FetchFile(r.Context(), owner, repo, ref, candidate)
		if err == nil {
			content = data
			found = true
			break
		}
		if !errors.Is(err, githost.ErrNotFound) {
			writeError(w, err)
			return
		}
	}
	if !found {
		writeError(w, githost.ErrNotFound)
		return
	}

	var buf bytes.Buffer
	if err := markdown.Convert(content, &buf); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
