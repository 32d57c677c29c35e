// Package store caches built graph snapshots in SQLite, keyed by
// owner/repo/ref, so repeated requests for the same repository skip the
// tree fetch and enrichment entirely while the snapshot is fresh.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/repograph/repograph/internal/graph"
)

// Store wraps a SQLite database holding graph snapshots.
type Store struct {
	db *sql.DB
}

// Open creates or opens a snapshot store at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging store: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory store: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    owner TEXT NOT NULL,
    repo TEXT NOT NULL,
    ref TEXT NOT NULL,
    graph_json TEXT NOT NULL,
    node_count INTEGER NOT NULL DEFAULT 0,
    edge_count INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    UNIQUE(owner, repo, ref)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_repo ON snapshots(owner, repo);
`

// Put stores a graph snapshot, replacing any previous snapshot for the
// same owner/repo/ref. Returns the snapshot id.
func (s *Store) Put(owner, repo, ref string, g *graph.Graph) (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("marshal graph: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO snapshots (id, owner, repo, ref, graph_json, node_count, edge_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner, repo, ref) DO UPDATE SET
			id = excluded.id,
			graph_json = excluded.graph_json,
			node_count = excluded.node_count,
			edge_count = excluded.edge_count,
			created_at = excluded.created_at`,
		id, owner, repo, ref, string(data), len(g.Nodes), len(g.Edges), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	return id, nil
}

// Get returns the cached graph for owner/repo/ref if a snapshot exists and
// is younger than maxAge. The second return reports whether a fresh
// snapshot was found. A maxAge of zero disables reuse.
func (s *Store) Get(owner, repo, ref string, maxAge time.Duration) (*graph.Graph, bool, error) {
	if maxAge <= 0 {
		return nil, false, nil
	}

	var data string
	var createdAt int64
	err := s.db.QueryRow(`
		SELECT graph_json, created_at FROM snapshots
		WHERE owner = ? AND repo = ? AND ref = ?`,
		owner, repo, ref).Scan(&data, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query snapshot: %w", err)
	}

	if time.Since(time.Unix(createdAt, 0)) > maxAge {
		return nil, false, nil
	}

	var g graph.Graph
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, false, fmt.Errorf("unmarshal graph: %w", err)
	}
	return &g, true, nil
}

// Delete removes the snapshot for owner/repo/ref if present.
func (s *Store) Delete(owner, repo, ref string) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE owner = ? AND repo = ? AND ref = ?`,
		owner, repo, ref)
	return err
}
