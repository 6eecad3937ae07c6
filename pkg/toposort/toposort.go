package toposort

// Graph is a directed graph over named nodes.
type Graph struct {
	symbols  *SymbolTable
	intGraph *IntGraph
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		symbols:  NewSymbolTable(),
		intGraph: NewIntGraph(),
	}
}

// AddNode inserts name. It returns false if the node already existed.
func (g *Graph) AddNode(name string) bool {
	if _, ok := g.symbols.Lookup(name); ok {
		return false
	}

	g.intGraph.EnsureNode(g.symbols.Intern(name))

	return true
}

// AddEdge inserts from -> to, creating missing nodes.
// It returns false if the edge already existed.
func (g *Graph) AddEdge(from, to string) bool {
	u := g.symbols.Intern(from)
	v := g.symbols.Intern(to)

	return g.intGraph.AddEdge(u, v)
}

// HasNode reports whether name is a node.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.symbols.Lookup(name)

	return ok
}

// Successors returns the direct successors of name.
func (g *Graph) Successors(name string) []string {
	id, ok := g.symbols.Lookup(name)
	if !ok {
		return nil
	}

	ids := g.intGraph.Successors(id)
	names := make([]string, 0, len(ids))

	for _, succ := range ids {
		names = append(names, g.symbols.Resolve(succ))
	}

	return names
}

// Reachable reports whether to can be reached from from through at least one edge.
func (g *Graph) Reachable(from, to string) bool {
	u, ok := g.symbols.Lookup(from)
	if !ok {
		return false
	}

	v, ok := g.symbols.Lookup(to)
	if !ok {
		return false
	}

	return g.intGraph.Reachable(u, v)
}

// Toposort returns the nodes in topological order, ties broken by insertion
// order. The boolean is false when the graph has a cycle.
func (g *Graph) Toposort() ([]string, bool) {
	ids, ok := g.intGraph.TopoSort()
	names := make([]string, 0, len(ids))

	for _, id := range ids {
		names = append(names, g.symbols.Resolve(id))
	}

	return names, ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return g.symbols.Len()
}
