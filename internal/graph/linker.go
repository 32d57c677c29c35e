package graph

// AddDependencyEdges merges resolved import pairs into the graph as
// dependency edges. A pair is appended only when both endpoints exist as
// nodes and no edge of any kind already connects source to target in that
// direction; unrelinkable pairs are dropped silently. The final edge set is
// therefore independent of pair order and duplicates.
func AddDependencyEdges(g *Graph, pairs []DependencyPair) int {
	nodes := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes[n.ID] = true
	}

	seen := make(map[[2]string]bool, len(g.Edges))
	for _, e := range g.Edges {
		seen[[2]string{e.Source, e.Target}] = true
	}

	added := 0
	for _, p := range pairs {
		if !nodes[p.Source] || !nodes[p.Target] {
			continue
		}
		key := [2]string{p.Source, p.Target}
		if seen[key] {
			continue
		}
		seen[key] = true
		g.Edges = append(g.Edges, Edge{Source: p.Source, Target: p.Target, Kind: EdgeDependency})
		added++
	}
	return added
}
