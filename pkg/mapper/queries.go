package mapper

import (
	"github.com/Sumatoshi-tech/refminer/pkg/decomposition"
	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

// Pairs returns the mapped leaves in original document order followed by
// the mapped composites, children before parents.
func (m *BodyMapper) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.leafPairs)+len(m.compositePairs))
	pairs = append(pairs, m.leafPairs...)

	return append(pairs, m.compositePairs...)
}

// LeafPairs returns the mapped leaves in original document order.
func (m *BodyMapper) LeafPairs() []Pair {
	return m.leafPairs
}

// CompositePairs returns the mapped composites, the roots first.
func (m *BodyMapper) CompositePairs() []Pair {
	return m.compositePairs
}

// Counterpart returns the fragment mapped to f on the other side.
func (m *BodyMapper) Counterpart(f decomposition.Fragment) (decomposition.Fragment, bool) {
	if counterpart, ok := m.leftToRight[f]; ok {
		return counterpart, true
	}

	counterpart, ok := m.rightToLeft[f]

	return counterpart, ok
}

// Deletions returns the original statements left unmapped, leaves first.
func (m *BodyMapper) Deletions() []decomposition.Fragment {
	return unmapped(m.leftLeaves, m.leftComposites, m.leftToRight)
}

// Insertions returns the revised statements left unmapped, leaves first.
func (m *BodyMapper) Insertions() []decomposition.Fragment {
	return unmapped(m.rightLeaves, m.rightComposites, m.rightToLeft)
}

func unmapped(
	leaves []*decomposition.LeafStatement,
	composites []*decomposition.CompositeStatement,
	mapped map[decomposition.Fragment]decomposition.Fragment,
) []decomposition.Fragment {
	var out []decomposition.Fragment

	for _, leaf := range leaves {
		if _, ok := mapped[leaf]; !ok {
			out = append(out, leaf)
		}
	}

	for _, node := range composites {
		if _, ok := mapped[node]; !ok {
			out = append(out, node)
		}
	}

	return out
}

// ExactMatches returns the number of pairs with identical text, roots excluded.
func (m *BodyMapper) ExactMatches() int {
	count := 0

	for _, p := range m.Pairs() {
		if p.Kind == Exact && !m.isRootPair(p) {
			count++
		}
	}

	return count
}

// Replacements returns the pairs whose texts differ, roots excluded.
func (m *BodyMapper) Replacements() []Pair {
	var out []Pair

	for _, p := range m.Pairs() {
		if p.Kind == Replaced && !m.isRootPair(p) {
			out = append(out, p)
		}
	}

	return out
}

func (m *BodyMapper) isRootPair(p Pair) bool {
	return p.Left == decomposition.Fragment(m.leftRoot)
}

// MappedStatements returns the number of mapped statements, roots excluded.
func (m *BodyMapper) MappedStatements() int {
	count := len(m.leafPairs)
	if len(m.compositePairs) > 0 {
		count += len(m.compositePairs) - 1
	}

	return count
}

func (m *BodyMapper) statementTotals() (left, right int) {
	left = len(m.leftLeaves) + max(len(m.leftComposites)-1, 0)
	right = len(m.rightLeaves) + max(len(m.rightComposites)-1, 0)

	return left, right
}

// Score is the Dice coefficient of mapped statements over both bodies. Two
// bodies without statements score 1.
func (m *BodyMapper) Score() float64 {
	left, right := m.statementTotals()
	if left+right == 0 {
		if m.leftRoot == nil && m.rightRoot != nil || m.leftRoot != nil && m.rightRoot == nil {
			return 0
		}

		return 1
	}

	return 2 * float64(m.MappedStatements()) / float64(left+right)
}

// IsSimilar reports whether the mapped statements outnumber the unmapped
// ones on both sides, or both bodies are empty.
func (m *BodyMapper) IsSimilar() bool {
	left, right := m.statementTotals()
	if left+right == 0 {
		return m.Score() == 1
	}

	mapped := m.MappedStatements()

	return mapped > left-mapped && mapped > right-mapped
}

// AliasedAttributes returns the aliased attributes of each side. Only
// constructors have any, restricted to values naming a parameter.
func (m *BodyMapper) AliasedAttributes() (left, right decomposition.Aliases) {
	return m.left.AliasedAttributes(), m.right.AliasedAttributes()
}

// LoopWithVariables returns the loop binding element over collection on each side.
func (m *BodyMapper) LoopWithVariables(element, collection string) (left, right *decomposition.CompositeStatement) {
	return m.left.Body.LoopWithVariables(element, collection), m.right.Body.LoopWithVariables(element, collection)
}

// SameLoopBinding reports whether a loop binding element over collection
// exists on both sides and the two loops are mapped to each other.
func (m *BodyMapper) SameLoopBinding(element, collection string) bool {
	left, right := m.LoopWithVariables(element, collection)
	if left == nil || right == nil {
		return false
	}

	counterpart, ok := m.leftToRight[left]

	return ok && counterpart == decomposition.Fragment(right)
}

// PreservedLoopBindings counts the enhanced-for loops of the original body
// whose element and collection bind the same way in a mapped revised loop.
func (m *BodyMapper) PreservedLoopBindings() int {
	count := 0

	for _, node := range m.leftComposites {
		if node.ElementType() != location.EnhancedForStatement {
			continue
		}

		element, collection, ok := loopBinding(node)
		if ok && m.SameLoopBinding(element, collection) {
			count++
		}
	}

	return count
}

// loopBinding returns the element an enhanced-for declares and the first
// collection variable it iterates.
func loopBinding(loop *decomposition.CompositeStatement) (element, collection string, ok bool) {
	for _, expr := range loop.Expressions() {
		if decls := expr.VariableDeclarations(); element == "" && len(decls) > 0 {
			element = decls[0].Name

			continue
		}

		if vars := expr.Variables(); collection == "" && len(vars) > 0 {
			collection = vars[0]
		}
	}

	return element, collection, element != "" && collection != ""
}
