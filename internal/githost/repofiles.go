package githost

import "context"

// RepoFiles binds a Client to one owner/repo/ref so it can serve as a
// per-repository content source for dependency enrichment.
type RepoFiles struct {
	Client *Client
	Owner  string
	Repo   string
	Ref    string
}

// FetchFile returns the content of path at the bound ref.
func (r *RepoFiles) FetchFile(ctx context.Context, path string) ([]byte, error) {
	return r.Client.FetchFile(ctx, r.Owner, r.Repo, r.Ref, path)
}
