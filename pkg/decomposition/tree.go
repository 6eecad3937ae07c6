package decomposition

import (
	"sync/atomic"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

//nolint:gochecknoglobals // process-wide tree identity counter.
var treeSeq atomic.Uint64

// Tree is the arena that owns every composite statement of one operation
// body. Fragments refer to their parent by index into the arena.
type Tree struct {
	composites []*CompositeStatement
	id         uint64
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{id: treeSeq.Add(1)}
}

// NewComposite creates a detached composite statement owned by the tree.
// Its depth is 0 until it is attached with AddStatement.
func (t *Tree) NewComposite(loc location.Info) *CompositeStatement {
	composite := &CompositeStatement{
		pos: position{tree: t.id, parent: noParent},
		id:  len(t.composites),
		loc: loc,
	}

	t.composites = append(t.composites, composite)

	return composite
}

// NewLeaf creates a detached leaf statement with the given rendered text.
func (t *Tree) NewLeaf(loc location.Info, text string) *LeafStatement {
	return &LeafStatement{
		pos:  position{tree: t.id, parent: noParent},
		loc:  loc,
		text: text,
	}
}

// NewExpression creates a detached expression with the given rendered text.
func (t *Tree) NewExpression(loc location.Info, text string) *Expression {
	return &Expression{
		pos:  position{tree: t.id, parent: noParent},
		loc:  loc,
		text: text,
	}
}

// Len returns the number of composites in the arena.
func (t *Tree) Len() int {
	return len(t.composites)
}

// Parent returns the composite that owns f, or nil for a root or detached
// fragment or a fragment of another tree.
func (t *Tree) Parent(f Fragment) *CompositeStatement {
	pos := positionOf(f)
	if pos == nil || pos.tree != t.id || !pos.attached() {
		return nil
	}

	return t.composites[pos.parent]
}

// Ancestors returns the owning composites of f from the nearest to the root.
func (t *Tree) Ancestors(f Fragment) []*CompositeStatement {
	var ancestors []*CompositeStatement

	for parent := t.Parent(f); parent != nil; parent = t.Parent(parent) {
		ancestors = append(ancestors, parent)
	}

	return ancestors
}

// IsAncestor reports whether ancestor strictly encloses f.
func (t *Tree) IsAncestor(ancestor *CompositeStatement, f Fragment) bool {
	for parent := t.Parent(f); parent != nil; parent = t.Parent(parent) {
		if parent == ancestor {
			return true
		}
	}

	return false
}

func positionOf(f Fragment) *position {
	switch frag := f.(type) {
	case *LeafStatement:
		if frag == nil {
			return nil
		}

		return &frag.pos
	case *CompositeStatement:
		if frag == nil {
			return nil
		}

		return &frag.pos
	case *Expression:
		if frag == nil {
			return nil
		}

		return &frag.pos
	default:
		return nil
	}
}
