package decomposition

import "github.com/Sumatoshi-tech/refminer/pkg/location"

// OperationBody is the body of one operation: the root composite and the
// tree that owns it. A nil *OperationBody behaves as an empty body.
type OperationBody struct {
	tree *Tree
	root *CompositeStatement
}

// NewOperationBody wraps a root composite of tree.
func NewOperationBody(tree *Tree, root *CompositeStatement) *OperationBody {
	return &OperationBody{tree: tree, root: root}
}

// Tree returns the arena owning the body.
func (b *OperationBody) Tree() *Tree {
	if b == nil {
		return nil
	}

	return b.tree
}

// Root returns the root composite.
func (b *OperationBody) Root() *CompositeStatement {
	if b == nil {
		return nil
	}

	return b.root
}

// IsEmpty reports whether the body holds no statements.
func (b *OperationBody) IsEmpty() bool {
	return b.Root() == nil || len(b.root.statements) == 0
}

// Leaves returns all leaf statements in pre-order.
func (b *OperationBody) Leaves() []*LeafStatement {
	if b.Root() == nil {
		return nil
	}

	return b.root.Leaves()
}

// InnerNodes returns all composites, children before parents.
func (b *OperationBody) InnerNodes() []*CompositeStatement {
	if b.Root() == nil {
		return nil
	}

	return b.root.InnerNodes()
}

// Contains reports whether f belongs to the body.
func (b *OperationBody) Contains(f Fragment) bool {
	return b.Root() != nil && b.root.Contains(f)
}

// StatementCount returns the number of statements in the body.
func (b *OperationBody) StatementCount() int {
	if b.Root() == nil {
		return 0
	}

	return b.root.StatementCount()
}

// AllVariables returns every referenced variable name.
func (b *OperationBody) AllVariables() []string {
	if b.Root() == nil {
		return nil
	}

	return b.root.AllVariables()
}

// AllVariableDeclarations returns every declaration in document order.
func (b *OperationBody) AllVariableDeclarations() []*VariableDeclaration {
	if b.Root() == nil {
		return nil
	}

	return b.root.AllVariableDeclarations()
}

// VariableDeclaration returns the declaration named name, or nil.
func (b *OperationBody) VariableDeclaration(name string) *VariableDeclaration {
	if b.Root() == nil {
		return nil
	}

	return b.root.VariableDeclaration(name)
}

// VariableDeclarationsInScope returns the declarations visible at loc.
func (b *OperationBody) VariableDeclarationsInScope(loc location.Info) []*VariableDeclaration {
	if b.Root() == nil {
		return nil
	}

	return b.root.VariableDeclarationsInScope(loc)
}

// AliasedAttributes returns the attributes assigned the same value.
func (b *OperationBody) AliasedAttributes() Aliases {
	if b.Root() == nil {
		return nil
	}

	return b.root.AliasedAttributes()
}

// LoopWithVariables returns the loop binding element over collection, or nil.
func (b *OperationBody) LoopWithVariables(element, collection string) *CompositeStatement {
	if b.Root() == nil {
		return nil
	}

	return b.root.LoopWithVariables(element, collection)
}

// Parent returns the composite owning f, or nil.
func (b *OperationBody) Parent(f Fragment) *CompositeStatement {
	if b.Tree() == nil {
		return nil
	}

	return b.tree.Parent(f)
}
