package toposort

import "slices"

// IntGraph is a directed graph over dense integer node IDs.
type IntGraph struct {
	edges    [][]int
	inDegree []int
}

// NewIntGraph creates an empty graph.
func NewIntGraph() *IntGraph {
	return &IntGraph{}
}

// Len returns the number of nodes.
func (g *IntGraph) Len() int {
	return len(g.edges)
}

// EnsureNode grows the graph so that id is a valid node.
func (g *IntGraph) EnsureNode(id int) {
	for len(g.edges) <= id {
		g.edges = append(g.edges, nil)
		g.inDegree = append(g.inDegree, 0)
	}
}

// AddEdge adds u -> v. It returns false if the edge already existed.
func (g *IntGraph) AddEdge(u, v int) bool {
	g.EnsureNode(max(u, v))

	if slices.Contains(g.edges[u], v) {
		return false
	}

	g.edges[u] = append(g.edges[u], v)
	g.inDegree[v]++

	return true
}

// Successors returns the direct successors of u in insertion order.
func (g *IntGraph) Successors(u int) []int {
	if u < 0 || u >= len(g.edges) {
		return nil
	}

	return g.edges[u]
}

// Reachable reports whether v can be reached from u through at least one edge.
func (g *IntGraph) Reachable(u, v int) bool {
	if u < 0 || u >= len(g.edges) {
		return false
	}

	visited := make([]bool, len(g.edges))
	queue := slices.Clone(g.edges[u])

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		if node == v {
			return true
		}

		if visited[node] {
			continue
		}

		visited[node] = true
		queue = append(queue, g.edges[node]...)
	}

	return false
}

// TopoSort orders the nodes with Kahn's algorithm, always picking the lowest
// available ID. The boolean is false when the graph has a cycle; the returned
// prefix then holds the nodes ordered before the cycle was hit.
func (g *IntGraph) TopoSort() ([]int, bool) {
	inDegree := slices.Clone(g.inDegree)

	var ready []int

	for id, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, id)
		}
	}

	order := make([]int, 0, len(g.edges))

	for len(ready) > 0 {
		u := ready[0]
		ready = ready[1:]
		order = append(order, u)

		for _, v := range g.edges[u] {
			inDegree[v]--
			if inDegree[v] == 0 {
				pos, _ := slices.BinarySearch(ready, v)
				ready = slices.Insert(ready, pos, v)
			}
		}
	}

	return order, len(order) == len(g.edges)
}
