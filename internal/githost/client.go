// Package githost fetches repository trees and file contents from the
// GitHub REST API. Tree retrieval is all-or-nothing; file fetches fail
// per-file and callers are expected to tolerate individual failures.
package githost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/repograph/repograph/internal/graph"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

var (
	// ErrNotFound means the repository, ref or file does not exist or is
	// not accessible with the configured credentials.
	ErrNotFound = errors.New("githost: not found")

	// ErrRateLimited means the API rate limit is exhausted.
	ErrRateLimited = errors.New("githost: rate limited")
)

// Tree is a full recursive repository listing. Truncated is set when the
// API cut the listing short (very large repositories); the entries that
// were returned are still usable.
type Tree struct {
	Entries   []graph.Entry
	Truncated bool
}

// Client talks to the GitHub REST API v3.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates a Client. An empty baseURL selects the public API; an
// empty token makes unauthenticated requests (subject to low rate limits).
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type treeResponse struct {
	Truncated bool        `json:"truncated"`
	Tree      []treeEntry `json:"tree"`
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // blob, tree, commit
	Size int64  `json:"size"`
}

type repoResponse struct {
	DefaultBranch string `json:"default_branch"`
}

// DefaultBranch returns the repository's default branch name.
func (c *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
	body, err := c.get(ctx, endpoint, "application/vnd.github+json")
	if err != nil {
		return "", err
	}
	var r repoResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return "", fmt.Errorf("githost: decode repo response: %w", err)
	}
	if r.DefaultBranch == "" {
		return "", fmt.Errorf("githost: repo response missing default branch")
	}
	return r.DefaultBranch, nil
}

// ListTree fetches the full recursive tree for a ref.
func (c *Client) ListTree(ctx context.Context, owner, repo, ref string) (*Tree, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
		c.baseURL, owner, repo, url.PathEscape(ref))
	body, err := c.get(ctx, endpoint, "application/vnd.github+json")
	if err != nil {
		return nil, err
	}

	var r treeResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("githost: decode tree response: %w", err)
	}

	tree := &Tree{Truncated: r.Truncated}
	for _, e := range r.Tree {
		tree.Entries = append(tree.Entries, graph.Entry{
			Path: e.Path,
			Kind: graph.EntryKind(e.Type),
			Size: e.Size,
		})
	}
	return tree, nil
}

// FetchFile returns the raw content of one file at the given ref.
func (c *Client) FetchFile(ctx context.Context, owner, repo, ref, path string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s?ref=%s",
		c.baseURL, owner, repo, escapePath(path), url.QueryEscape(ref))
	return c.get(ctx, endpoint, "application/vnd.github.raw+json")
}

func (c *Client) get(ctx context.Context, endpoint, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("githost: create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("githost: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("githost: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("githost: unexpected status %d: %s", resp.StatusCode, snippet(body))
	}
}

// escapePath escapes each path segment while keeping separators intact.
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
