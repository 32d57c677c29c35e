// Package graph builds a typed file-system graph from a flat repository
// listing: one node per file and folder, hierarchy edges for containment,
// and dependency edges inferred from import statements.
package graph

// RootID is the sentinel id of the synthetic root node.
const RootID = "."

// NodeKind distinguishes file nodes from folder nodes.
type NodeKind string

const (
	NodeFile   NodeKind = "file"
	NodeFolder NodeKind = "folder"
)

// EdgeKind distinguishes containment edges from inferred import edges.
type EdgeKind string

const (
	EdgeHierarchy  EdgeKind = "hierarchy"
	EdgeDependency EdgeKind = "dependency"
)

// ModuleType is a coarse architectural classification derived from a path.
type ModuleType string

const (
	ModuleAPI      ModuleType = "api"
	ModuleFrontend ModuleType = "frontend"
	ModuleDatabase ModuleType = "database"
	ModuleConfig   ModuleType = "config"
	ModuleTest     ModuleType = "test"
	ModuleDocs     ModuleType = "docs"
	ModuleLib      ModuleType = "lib"
	ModuleUnknown  ModuleType = "unknown"
)

// EntryKind mirrors the object types of a git tree listing.
type EntryKind string

const (
	EntryBlob   EntryKind = "blob"   // regular file
	EntryTree   EntryKind = "tree"   // directory
	EntryCommit EntryKind = "commit" // submodule, ignored
)

// Entry is one record from a flat repository listing. Paths are
// slash-separated and relative to the repository root, no leading slash.
type Entry struct {
	Path string    `json:"path"`
	Kind EntryKind `json:"kind"`
	Size int64     `json:"size,omitempty"`
}

// Node is a graph vertex representing a file or folder.
type Node struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Kind       NodeKind   `json:"kind"`
	ModuleType ModuleType `json:"moduleType"`
	Depth      int        `json:"depth"`
	Size       int64      `json:"size,omitempty"`
	Extension  string     `json:"extension,omitempty"`
	Color      string     `json:"displayColor"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
}

// Graph is the node/edge aggregate produced by Build and enriched by
// AddDependencyEdges. Node order is deterministic for a given entry list.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Stats *Stats `json:"stats,omitempty"`
}

// Stats summarizes a graph snapshot.
type Stats struct {
	TotalNodes      int                `json:"total_nodes"`
	TotalFiles      int                `json:"total_files"`
	TotalFolders    int                `json:"total_folders"`
	DependencyEdges int                `json:"dependency_edges"`
	FilesByModule   map[ModuleType]int `json:"files_by_module,omitempty"`
}

// DependencyPair is a resolved (source, target) import relationship awaiting
// merge into the graph.
type DependencyPair struct {
	Source string
	Target string
}

// ModuleSummary groups the file nodes sharing one module type.
type ModuleSummary struct {
	Name        string     `json:"name"`
	Type        ModuleType `json:"type"`
	Description string     `json:"description"`
	Files       []string   `json:"files"`
	EntryPoints []string   `json:"entry_points,omitempty"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// FilePaths returns the paths of all file nodes, in node order.
func (g *Graph) FilePaths() []string {
	var paths []string
	for _, n := range g.Nodes {
		if n.Kind == NodeFile {
			paths = append(paths, n.Path)
		}
	}
	return paths
}

// ComputeStats recomputes the Stats block from the current nodes and edges.
func (g *Graph) ComputeStats() {
	s := &Stats{FilesByModule: make(map[ModuleType]int)}
	for _, n := range g.Nodes {
		s.TotalNodes++
		switch n.Kind {
		case NodeFile:
			s.TotalFiles++
			s.FilesByModule[n.ModuleType]++
		case NodeFolder:
			s.TotalFolders++
		}
	}
	for _, e := range g.Edges {
		if e.Kind == EdgeDependency {
			s.DependencyEdges++
		}
	}
	g.Stats = s
}
