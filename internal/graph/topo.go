package graph

import (
	"fmt"
	"sort"
	"strings"
)

// CycleDetectedError reports that no topological order exists. Tables holds
// the table names still caught in a cycle, sorted for stable messages.
type CycleDetectedError struct {
	Tables []string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("relationship graph contains a reference cycle involving: %s",
		strings.Join(e.Tables, ", "))
}

// TopologicalOrder returns the table names ordered so that every referenced
// table precedes the tables referencing it, e.g. a safe order for applying
// the schema. Kahn's algorithm; on any cycle, self-edges included, it
// returns a *CycleDetectedError naming the tables left in the cycle rather
// than a silently truncated order.
func (g *Graph) TopologicalOrder() ([]string, error) {
	// inDegree counts outgoing references per table: a table may only be
	// emitted once every table it points at has been emitted.
	inDegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string)
	for _, n := range g.nodes {
		inDegree[n] = 0
	}
	for _, edge := range g.edges {
		inDegree[edge.FromTable]++
		dependents[edge.ToTable] = append(dependents[edge.ToTable], edge.FromTable)
	}

	var queue []string
	for _, n := range g.nodes {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)

		for _, dep := range dependents[n] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(order) != len(g.nodes) {
		var stuck []string
		for _, n := range g.nodes {
			if inDegree[n] > 0 {
				stuck = append(stuck, n)
			}
		}
		sort.Strings(stuck)
		return nil, &CycleDetectedError{Tables: stuck}
	}
	return order, nil
}
