// Package decomposition provides the program structure model of an operation
// body: a tree of leaf statements, composite statements and expressions that
// mirrors the nesting and variable scoping of the source.
//
// Models are populated append-only by a front-end in source order and are
// treated as immutable once built. Parent links are integer indexes into the
// owning [Tree], never owning pointers.
package decomposition

import (
	"errors"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

// ErrContractViolation signals malformed input from the front-end, such as a
// statement attached to a composite of another tree. It indicates a defect
// upstream, not a recoverable condition.
var ErrContractViolation = errors.New("front-end contract violation")

// FragmentKind tags the closed set of fragment variants.
type FragmentKind uint8

// Fragment kinds.
const (
	KindLeaf FragmentKind = iota + 1
	KindComposite
	KindExpression
)

func (k FragmentKind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindComposite:
		return "composite"
	case KindExpression:
		return "expression"
	default:
		return "unknown"
	}
}

// Fragment is a positioned piece of an operation body. The variant set is
// closed: *LeafStatement, *CompositeStatement and *Expression.
type Fragment interface {
	Kind() FragmentKind
	Location() location.Info
	// String returns the rendered source text of the fragment.
	String() string
	Depth() int
	Index() int
	Variables() []string
	VariableDeclarations() []*VariableDeclaration

	fragment()
}

// Statement is a fragment that can be a child of a composite statement.
type Statement interface {
	Fragment

	Leaves() []*LeafStatement
	StatementCount() int

	placement() *position
	place(parent, depth, index int)
}

const noParent = -1

// position is the navigational state shared by all fragments.
type position struct {
	tree   uint64
	parent int
	depth  int
	index  int
}

func (p *position) attached() bool {
	return p.parent != noParent
}

// CodeRange returns the code range of a fragment with its rendered text attached.
func CodeRange(f Fragment) location.CodeRange {
	return f.Location().CodeRange().WithCodeElement(f.String())
}
