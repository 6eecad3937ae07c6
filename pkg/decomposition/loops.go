package decomposition

import (
	"slices"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

// LoopWithVariables returns the innermost loop that iterates collection
// binding element, or nil. Inner nodes are scanned children first, so a
// nested match wins over its enclosing loop. Two shapes are recognized: an
// enhanced-for declaring element over an expression that references
// collection, and a for or while loop whose expressions reference collection
// and whose body holds a leaf declaring element from collection.
func (c *CompositeStatement) LoopWithVariables(element, collection string) *CompositeStatement {
	for _, node := range c.InnerNodes() {
		switch node.ElementType() {
		case location.EnhancedForStatement:
			if findDeclaration(node.VariableDeclarations(), element) != nil && node.referencesInExpressions(collection) {
				return node
			}
		case location.ForStatement, location.WhileStatement:
			if node.referencesInExpressions(collection) && node.hasIndexedElement(element, collection) {
				return node
			}
		default:
		}
	}

	return nil
}

func (c *CompositeStatement) referencesInExpressions(name string) bool {
	for _, expr := range c.expressions {
		if slices.Contains(expr.Variables(), name) {
			return true
		}
	}

	return false
}

func (c *CompositeStatement) hasIndexedElement(element, collection string) bool {
	for _, leaf := range c.Leaves() {
		if leaf.VariableDeclaration(element) != nil && slices.Contains(leaf.Variables(), collection) {
			return true
		}
	}

	return false
}
