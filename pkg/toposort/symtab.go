// Package toposort provides a small named directed graph with deterministic
// topological ordering and reachability queries. It backs the generalization
// hierarchy of a snapshot model.
package toposort

// SymbolTable maps names to dense integer IDs in insertion order.
// It is not safe for concurrent mutation; a fully built table may be read
// concurrently.
type SymbolTable struct {
	ids   map[string]int
	names []string
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{ids: make(map[string]int)}
}

// Intern returns the ID of name, assigning the next free ID on first use.
func (table *SymbolTable) Intern(name string) int {
	if id, ok := table.ids[name]; ok {
		return id
	}

	id := len(table.names)
	table.names = append(table.names, name)
	table.ids[name] = id

	return id
}

// Lookup returns the ID of name if it was interned.
func (table *SymbolTable) Lookup(name string) (int, bool) {
	id, ok := table.ids[name]

	return id, ok
}

// Resolve returns the name of id, or "" for an unknown ID.
func (table *SymbolTable) Resolve(id int) string {
	if id < 0 || id >= len(table.names) {
		return ""
	}

	return table.names[id]
}

// Len returns the number of interned names.
func (table *SymbolTable) Len() int {
	return len(table.names)
}
