package refactoring

import (
	"fmt"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
	"github.com/Sumatoshi-tech/refminer/pkg/mapper"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// ClassContext answers questions about the revised snapshot that decide
// which move kind applies.
type ClassContext interface {
	// IsSubtypeAfter reports whether sub is a strict subtype of super.
	IsSubtypeAfter(sub, super string) bool
	// DeclaresEquivalentAfter reports whether className still declares an
	// operation with op's signature.
	DeclaresEquivalentAfter(className string, op *uml.Operation) bool
}

// OperationMove is a matched pair of operations, optionally with the
// alignment of their bodies.
type OperationMove struct {
	Original *uml.Operation
	Moved    *uml.Operation
	Mapper   *mapper.BodyMapper
}

// NewOperationMove builds a move from an aligned pair.
func NewOperationMove(m *mapper.BodyMapper) OperationMove {
	return OperationMove{Original: m.Left(), Moved: m.Right(), Mapper: m}
}

// NewOperationMoveFromPair builds a move from two operations without a body
// alignment.
func NewOperationMoveFromPair(original, moved *uml.Operation) OperationMove {
	return OperationMove{Original: original, Moved: moved}
}

func (m OperationMove) classChanged() bool {
	return m.Original.ClassName != m.Moved.ClassName
}

func (m OperationMove) renamed() bool {
	return m.Original.Name != m.Moved.Name
}

type moveRule struct {
	kind        Kind
	description string
	applies     func(OperationMove, ClassContext) bool
}

//nolint:gochecknoglobals // fixed rule table in priority order.
var moveRules = []moveRule{
	{PushDownOperation, DescPushedDownOperation, isPushDown},
	{PullUpOperation, DescPulledUpOperation, isPullUp},
	{MoveAndRenameOperation, DescMovedAndRenamed, func(m OperationMove, _ ClassContext) bool {
		return m.classChanged() && m.renamed()
	}},
	{MoveOperation, DescMovedOperation, func(m OperationMove, _ ClassContext) bool {
		return m.classChanged()
	}},
	{RenameOperation, DescRenamedOperation, func(m OperationMove, _ ClassContext) bool {
		return !m.classChanged() && m.renamed()
	}},
}

func isPushDown(m OperationMove, ctx ClassContext) bool {
	return m.classChanged() && !m.renamed() &&
		ctx.IsSubtypeAfter(m.Moved.ClassName, m.Original.ClassName) &&
		!ctx.DeclaresEquivalentAfter(m.Original.ClassName, m.Original)
}

func isPullUp(m OperationMove, ctx ClassContext) bool {
	return m.classChanged() && !m.renamed() &&
		ctx.IsSubtypeAfter(m.Original.ClassName, m.Moved.ClassName)
}

// Classify returns the most specific operation-level refactoring the move
// represents, or false when the pair is unchanged in class and name.
func Classify(m OperationMove, ctx ClassContext) (*Refactoring, bool) {
	for _, rule := range moveRules {
		if !rule.applies(m, ctx) {
			continue
		}

		if rule.kind == PushDownOperation && m.Mapper != nil {
			return NewPushDown(m.Mapper), true
		}

		return newOperationRefactoring(rule.kind, rule.description, m.Original, m.Moved), true
	}

	return nil, false
}

// NewPushDown builds a push-down refactoring from an aligned pair.
func NewPushDown(m *mapper.BodyMapper) *Refactoring {
	return newOperationRefactoring(PushDownOperation, DescPushedDownOperation, m.Left(), m.Right())
}

// NewPushDownFromPair builds a push-down refactoring from two operations.
func NewPushDownFromPair(original, moved *uml.Operation) *Refactoring {
	return newOperationRefactoring(PushDownOperation, DescPushedDownOperation, original, moved)
}

// NewPullUp builds a pull-up refactoring from two operations.
func NewPullUp(original, moved *uml.Operation) *Refactoring {
	return newOperationRefactoring(PullUpOperation, DescPulledUpOperation, original, moved)
}

func newOperationRefactoring(kind Kind, rightDescription string, original, moved *uml.Operation) *Refactoring {
	var description string

	if kind == RenameOperation {
		description = fmt.Sprintf("%s renamed to %s in class %s", original, moved, moved.ClassName)
	} else {
		description = fmt.Sprintf("%s from class %s to %s from class %s",
			original, original.ClassName, moved, moved.ClassName)
	}

	return &Refactoring{
		kind:          kind,
		description:   description,
		leftSide:      []location.CodeRange{original.CodeRange().WithDescription(DescOriginalOperation)},
		rightSide:     []location.CodeRange{moved.CodeRange().WithDescription(rightDescription)},
		classesBefore: []string{original.ClassName},
		classesAfter:  []string{moved.ClassName},
	}
}
