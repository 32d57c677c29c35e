package graph

import (
	"sort"
	"strings"
)

// Build constructs the base hierarchy graph from a flat repository listing.
// Folder nodes are synthesized for every intermediate path prefix, since git
// tree listings commonly omit directory entries. Every non-root node gets
// exactly one hierarchy edge from its parent, so the hierarchy sub-graph is
// a tree rooted at RootID. Submodule entries are ignored.
//
// Build is deterministic: folders are emitted in sorted path order, files in
// entry-list order, so the same entries always yield the same graph.
func Build(entries []Entry) *Graph {
	g := &Graph{}

	// Derive every folder path from the entry paths' proper prefixes.
	folderSet := make(map[string]bool)
	for _, e := range entries {
		if e.Kind == EntryCommit {
			continue
		}
		path := cleanPath(e.Path)
		if path == "" {
			continue
		}
		if e.Kind == EntryTree {
			folderSet[path] = true
		}
		segs := strings.Split(path, "/")
		for i := 1; i < len(segs); i++ {
			folderSet[strings.Join(segs[:i], "/")] = true
		}
	}

	g.Nodes = append(g.Nodes, Node{
		ID:         RootID,
		Name:       RootID,
		Path:       RootID,
		Kind:       NodeFolder,
		ModuleType: ModuleUnknown,
		Depth:      0,
		Color:      ColorFor(NodeFolder, ModuleUnknown, ""),
	})

	folders := make([]string, 0, len(folderSet))
	for path := range folderSet {
		folders = append(folders, path)
	}
	sort.Strings(folders)

	for _, path := range folders {
		mt := Classify(path)
		g.Nodes = append(g.Nodes, Node{
			ID:         path,
			Name:       baseName(path),
			Path:       path,
			Kind:       NodeFolder,
			ModuleType: mt,
			Depth:      strings.Count(path, "/") + 1,
			Color:      ColorFor(NodeFolder, mt, ""),
		})
		g.Edges = append(g.Edges, Edge{Source: parentOf(path), Target: path, Kind: EdgeHierarchy})
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Kind != EntryBlob {
			continue
		}
		path := cleanPath(e.Path)
		if path == "" || seen[path] || folderSet[path] {
			continue
		}
		seen[path] = true

		mt := Classify(path)
		ext := Extension(path)
		g.Nodes = append(g.Nodes, Node{
			ID:         path,
			Name:       baseName(path),
			Path:       path,
			Kind:       NodeFile,
			ModuleType: mt,
			Depth:      strings.Count(path, "/") + 1,
			Size:       e.Size,
			Extension:  ext,
			Color:      ColorFor(NodeFile, mt, ext),
		})
		g.Edges = append(g.Edges, Edge{Source: parentOf(path), Target: path, Kind: EdgeHierarchy})
	}

	return g
}

// cleanPath normalizes an entry path: trims surrounding slashes and
// rejects empty or root-only values.
func cleanPath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" || p == RootID {
		return ""
	}
	return p
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func parentOf(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return RootID
}
