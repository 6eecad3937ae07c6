package decomposition

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

// CompositeStatement is a block-bearing statement. It owns its child
// statements and expressions in source order.
type CompositeStatement struct {
	loc          location.Info
	statements   []Statement
	expressions  []*Expression
	declarations []*VariableDeclaration
	pos          position
	id           int
}

func (*CompositeStatement) fragment() {}

// Kind returns KindComposite.
func (*CompositeStatement) Kind() FragmentKind { return KindComposite }

// Location returns the position of the statement.
func (c *CompositeStatement) Location() location.Info { return c.loc }

// ElementType returns the element tag of the statement.
func (c *CompositeStatement) ElementType() location.CodeElementType { return c.loc.ElementType }

// Depth returns the nesting depth. A root composite has depth 0.
func (c *CompositeStatement) Depth() int { return c.pos.depth }

// Index returns the position among siblings.
func (c *CompositeStatement) Index() int { return c.pos.index }

// Statements returns the direct children in source order.
func (c *CompositeStatement) Statements() []Statement { return c.statements }

// Expressions returns the attached expressions in source order.
func (c *CompositeStatement) Expressions() []*Expression { return c.expressions }

// String renders the statement as its display name followed by its
// expressions, e.g. "if(x > 0)" or "{".
func (c *CompositeStatement) String() string {
	if len(c.expressions) == 0 {
		return c.loc.ElementType.Name()
	}

	parts := make([]string, 0, len(c.expressions))
	for _, expr := range c.expressions {
		parts = append(parts, expr.String())
	}

	return c.loc.ElementType.Name() + "(" + strings.Join(parts, "; ") + ")"
}

// AddStatement appends s as the last child. It panics with an error wrapping
// ErrContractViolation when s belongs to another tree, is already attached,
// or encloses c.
func (c *CompositeStatement) AddStatement(s Statement) {
	pos := positionOf(s)

	switch {
	case pos == nil:
		panic(fmt.Errorf("add statement: nil statement: %w", ErrContractViolation))
	case pos.tree != c.pos.tree:
		panic(fmt.Errorf("add statement: statement of another tree: %w", ErrContractViolation))
	case pos.attached():
		panic(fmt.Errorf("add statement: statement already attached: %w", ErrContractViolation))
	}

	if child, ok := s.(*CompositeStatement); ok && (child == c || slices.Contains(child.InnerNodes(), c)) {
		panic(fmt.Errorf("add statement: cycle through composite: %w", ErrContractViolation))
	}

	s.place(c.id, c.pos.depth+1, len(c.statements))
	c.statements = append(c.statements, s)
}

// AddExpression attaches e to the statement.
func (c *CompositeStatement) AddExpression(e *Expression) {
	switch {
	case e == nil:
		panic(fmt.Errorf("add expression: nil expression: %w", ErrContractViolation))
	case e.pos.tree != c.pos.tree:
		panic(fmt.Errorf("add expression: expression of another tree: %w", ErrContractViolation))
	case e.pos.attached():
		panic(fmt.Errorf("add expression: expression already attached: %w", ErrContractViolation))
	}

	e.pos.parent = c.id
	e.pos.depth = c.pos.depth
	e.pos.index = c.pos.index
	c.expressions = append(c.expressions, e)
}

// AddVariableDeclaration records a declaration introduced directly in the
// statement's scope.
func (c *CompositeStatement) AddVariableDeclaration(decl *VariableDeclaration) {
	c.declarations = append(c.declarations, decl)
}

// Leaves returns all nested leaf statements in pre-order.
func (c *CompositeStatement) Leaves() []*LeafStatement {
	var leaves []*LeafStatement

	for _, s := range c.statements {
		leaves = append(leaves, s.Leaves()...)
	}

	return leaves
}

// InnerNodes returns all nested composites, each subtree listing its
// descendants before itself. The last element is always c.
func (c *CompositeStatement) InnerNodes() []*CompositeStatement {
	var nodes []*CompositeStatement

	for _, s := range c.statements {
		if child, ok := s.(*CompositeStatement); ok {
			nodes = append(nodes, child.InnerNodes()...)
		}
	}

	return append(nodes, c)
}

// Contains reports whether f belongs to the statement: leaves are looked up
// among Leaves, composites among InnerNodes and expressions among the local
// expression list only.
func (c *CompositeStatement) Contains(f Fragment) bool {
	switch frag := f.(type) {
	case *LeafStatement:
		return frag != nil && slices.Contains(c.Leaves(), frag)
	case *CompositeStatement:
		return frag != nil && slices.Contains(c.InnerNodes(), frag)
	case *Expression:
		return frag != nil && slices.Contains(c.expressions, frag)
	default:
		return false
	}
}

// StatementCount counts the statement itself unless it is a bare block,
// plus the counts of all children.
func (c *CompositeStatement) StatementCount() int {
	count := 0
	if c.String() != location.Block.Name() {
		count++
	}

	for _, s := range c.statements {
		count += s.StatementCount()
	}

	return count
}

// IsLoop reports whether the statement is an enhanced-for, for, while or do loop.
func (c *CompositeStatement) IsLoop() bool {
	switch c.loc.ElementType {
	case location.EnhancedForStatement, location.ForStatement, location.WhileStatement, location.DoStatement:
		return true
	default:
		return false
	}
}

// Variables returns the names referenced by the attached expressions.
func (c *CompositeStatement) Variables() []string {
	var vars []string

	for _, expr := range c.expressions {
		vars = append(vars, expr.Variables()...)
	}

	return vars
}

// AllVariables returns the names referenced by the statement and every
// nested statement.
func (c *CompositeStatement) AllVariables() []string {
	vars := c.Variables()

	for _, s := range c.statements {
		if child, ok := s.(*CompositeStatement); ok {
			vars = append(vars, child.AllVariables()...)

			continue
		}

		vars = append(vars, s.Variables()...)
	}

	return vars
}

// VariableDeclarations returns the declarations introduced directly by the
// statement, including those of its expressions such as an enhanced-for
// parameter.
func (c *CompositeStatement) VariableDeclarations() []*VariableDeclaration {
	decls := slices.Clone(c.declarations)

	for _, expr := range c.expressions {
		decls = append(decls, expr.VariableDeclarations()...)
	}

	return decls
}

// AllVariableDeclarations returns the declarations of the statement and of
// every nested statement in document order.
func (c *CompositeStatement) AllVariableDeclarations() []*VariableDeclaration {
	decls := c.VariableDeclarations()

	for _, s := range c.statements {
		if child, ok := s.(*CompositeStatement); ok {
			decls = append(decls, child.AllVariableDeclarations()...)

			continue
		}

		decls = append(decls, s.VariableDeclarations()...)
	}

	return decls
}

// VariableDeclaration returns the first declaration named name, or nil.
func (c *CompositeStatement) VariableDeclaration(name string) *VariableDeclaration {
	return findDeclaration(c.AllVariableDeclarations(), name)
}

// VariableDeclarationsInScope returns the declarations visible at loc.
func (c *CompositeStatement) VariableDeclarationsInScope(loc location.Info) []*VariableDeclaration {
	var visible []*VariableDeclaration

	for _, decl := range c.AllVariableDeclarations() {
		if decl.VisibleAt(loc) {
			visible = append(visible, decl)
		}
	}

	return visible
}

func (c *CompositeStatement) placement() *position { return &c.pos }

func (c *CompositeStatement) place(parent, depth, index int) {
	c.pos.parent = parent
	c.pos.index = index
	c.rebase(depth)
}

func (c *CompositeStatement) rebase(depth int) {
	c.pos.depth = depth

	for _, expr := range c.expressions {
		expr.pos.depth = depth
		expr.pos.index = c.pos.index
	}

	for _, s := range c.statements {
		if child, ok := s.(*CompositeStatement); ok {
			child.rebase(depth + 1)

			continue
		}

		s.placement().depth = depth + 1
	}
}
