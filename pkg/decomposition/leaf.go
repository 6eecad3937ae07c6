package decomposition

import (
	"strings"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

// LeafStatement is a statement without a nested body.
type LeafStatement struct {
	loc          location.Info
	text         string
	variables    []string
	declarations []*VariableDeclaration
	pos          position
}

func (*LeafStatement) fragment() {}

// Kind returns KindLeaf.
func (*LeafStatement) Kind() FragmentKind { return KindLeaf }

// Location returns the position of the statement.
func (s *LeafStatement) Location() location.Info { return s.loc }

// String returns the rendered statement text.
func (s *LeafStatement) String() string { return s.text }

// Depth returns the nesting depth.
func (s *LeafStatement) Depth() int { return s.pos.depth }

// Index returns the position among siblings.
func (s *LeafStatement) Index() int { return s.pos.index }

// Variables returns the names referenced by the statement.
func (s *LeafStatement) Variables() []string { return s.variables }

// VariableDeclarations returns the declarations introduced by the statement.
func (s *LeafStatement) VariableDeclarations() []*VariableDeclaration { return s.declarations }

// VariableDeclaration returns the declaration named name, or nil.
func (s *LeafStatement) VariableDeclaration(name string) *VariableDeclaration {
	return findDeclaration(s.declarations, name)
}

// AddVariable records a referenced variable name.
func (s *LeafStatement) AddVariable(name string) {
	s.variables = append(s.variables, name)
}

// AddVariableDeclaration records a declaration introduced by the statement.
func (s *LeafStatement) AddVariableDeclaration(decl *VariableDeclaration) {
	s.declarations = append(s.declarations, decl)
}

// Leaves returns the statement itself.
func (s *LeafStatement) Leaves() []*LeafStatement {
	return []*LeafStatement{s}
}

// StatementCount is 0 for the empty statement and 1 otherwise.
func (s *LeafStatement) StatementCount() int {
	if s.loc.ElementType == location.EmptyStatement || strings.TrimSpace(s.text) == ";" {
		return 0
	}

	return 1
}

func (s *LeafStatement) placement() *position { return &s.pos }

func (s *LeafStatement) place(parent, depth, index int) {
	s.pos.parent = parent
	s.pos.depth = depth
	s.pos.index = index
}
