package decomposition

import "github.com/Sumatoshi-tech/refminer/pkg/location"

// Expression is an expression attached to a composite statement, such as an
// if condition or an enhanced-for collection. It takes the depth and index of
// its owner.
type Expression struct {
	loc          location.Info
	text         string
	variables    []string
	declarations []*VariableDeclaration
	pos          position
}

func (*Expression) fragment() {}

// Kind returns KindExpression.
func (*Expression) Kind() FragmentKind { return KindExpression }

// Location returns the position of the expression.
func (e *Expression) Location() location.Info { return e.loc }

// String returns the rendered expression text.
func (e *Expression) String() string { return e.text }

// Depth returns the depth of the owning composite.
func (e *Expression) Depth() int { return e.pos.depth }

// Index returns the index of the owning composite.
func (e *Expression) Index() int { return e.pos.index }

// Variables returns the names referenced by the expression.
func (e *Expression) Variables() []string { return e.variables }

// VariableDeclarations returns the declarations introduced by the expression.
func (e *Expression) VariableDeclarations() []*VariableDeclaration { return e.declarations }

// AddVariable records a referenced variable name.
func (e *Expression) AddVariable(name string) {
	e.variables = append(e.variables, name)
}

// AddVariableDeclaration records a declaration introduced by the expression.
func (e *Expression) AddVariableDeclaration(decl *VariableDeclaration) {
	e.declarations = append(e.declarations, decl)
}
