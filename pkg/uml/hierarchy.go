package uml

import (
	"github.com/Sumatoshi-tech/refminer/pkg/toposort"
)

// Hierarchy is the generalization graph of a model. Edges run from a class to
// each of its declared supertypes. Supertypes declared outside the model are
// kept as leaf nodes under their declared names.
type Hierarchy struct {
	graph  *toposort.Graph
	simple map[string][]string
}

// NewHierarchy builds the graph for classes.
func NewHierarchy(classes []*Class) *Hierarchy {
	h := &Hierarchy{
		graph:  toposort.NewGraph(),
		simple: make(map[string][]string),
	}

	for _, c := range classes {
		h.graph.AddNode(c.Name)
		h.simple[c.SimpleName()] = append(h.simple[c.SimpleName()], c.Name)
	}

	for _, c := range classes {
		for _, super := range c.Supertypes() {
			h.graph.AddEdge(c.Name, h.resolve(super))
		}
	}

	return h
}

// resolve maps a declared name to a node: the exact name if known,
// otherwise the unique class sharing its simple name, otherwise the name as is.
func (h *Hierarchy) resolve(name string) string {
	if h.graph.HasNode(name) {
		return name
	}

	if candidates := h.simple[SimpleName(name)]; len(candidates) == 1 {
		return candidates[0]
	}

	return name
}

// IsSubtype reports whether sub strictly specializes super.
func (h *Hierarchy) IsSubtype(sub, super string) bool {
	if h == nil {
		return false
	}

	from, to := h.resolve(sub), h.resolve(super)
	if from == to {
		return false
	}

	return h.graph.Reachable(from, to)
}

// DirectSupertypes returns the declared supertypes of name.
func (h *Hierarchy) DirectSupertypes(name string) []string {
	return h.graph.Successors(h.resolve(name))
}

// Order returns the classes with every subtype before its supertypes.
// The boolean is false when the declarations form a cycle.
func (h *Hierarchy) Order() ([]string, bool) {
	return h.graph.Toposort()
}
