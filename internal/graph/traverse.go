package graph

// Cycles are expected in this catalog (asset_nodes references itself through
// parent_node_id), so every traversal here is bounded by a visited set and an
// optional depth limit instead of assuming a DAG.

type depthNode struct {
	table string
	depth int
}

// IsReachable reports whether a directed path from one table to another
// exists, following outgoing relations. maxDepth limits how many edges the
// search may cross; maxDepth <= 0 means unlimited (the visited set still
// bounds the walk). A table is trivially reachable from itself at depth 0.
func (g *Graph) IsReachable(from, to string, maxDepth int) bool {
	if from == to {
		return true
	}

	visited := map[string]bool{from: true}
	queue := []depthNode{{table: from, depth: 0}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if maxDepth > 0 && current.depth >= maxDepth {
			continue
		}
		for _, edge := range g.outgoing[current.table] {
			if edge.ToTable == to {
				return true
			}
			if visited[edge.ToTable] {
				continue
			}
			visited[edge.ToTable] = true
			queue = append(queue, depthNode{table: edge.ToTable, depth: current.depth + 1})
		}
	}
	return false
}

// Subgraph is the slice of the graph around one table, for topology and ER
// rendering: the reached tables plus every edge crossed to reach them.
type Subgraph struct {
	Tables    []string   `json:"tables"`
	Relations []Relation `json:"relations"`
}

// Neighborhood walks outward from a table in both edge directions up to
// depth edges away and returns the touched subgraph. depth <= 0 means
// unlimited. An unknown starting table yields an empty subgraph.
func (g *Graph) Neighborhood(start string, depth int) *Subgraph {
	sub := &Subgraph{}
	if !g.hasNode(start) {
		return sub
	}

	visited := map[string]bool{start: true}
	seenEdge := make(map[Relation]bool)
	queue := []depthNode{{table: start, depth: 0}}
	sub.Tables = append(sub.Tables, start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if depth > 0 && current.depth >= depth {
			continue
		}

		out, in := g.outgoing[current.table], g.incoming[current.table]
		neighbors := make([]Relation, 0, len(out)+len(in))
		neighbors = append(neighbors, out...)
		neighbors = append(neighbors, in...)
		for _, edge := range neighbors {
			if !seenEdge[edge] {
				seenEdge[edge] = true
				sub.Relations = append(sub.Relations, edge)
			}
			next := edge.ToTable
			if next == current.table {
				next = edge.FromTable
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			sub.Tables = append(sub.Tables, next)
			queue = append(queue, depthNode{table: next, depth: current.depth + 1})
		}
	}
	return sub
}

func (g *Graph) hasNode(table string) bool {
	for _, n := range g.nodes {
		if n == table {
			return true
		}
	}
	return false
}
