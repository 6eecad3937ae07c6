package refactoring

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

// Evidence descriptions attached to code ranges.
const (
	DescOriginalOperation      = "original method declaration"
	DescPushedDownOperation    = "pushed down method declaration"
	DescPulledUpOperation      = "pulled up method declaration"
	DescMovedOperation         = "moved method declaration"
	DescMovedAndRenamed        = "moved and renamed method declaration"
	DescRenamedOperation       = "renamed method declaration"
	DescOriginalReturnType     = "original return type"
	DescChangedReturnType      = "changed return type"
	DescOriginalVariable       = "original variable declaration"
	DescChangedTypeVariable    = "changed-type variable declaration"
	DescRenamedVariable        = "renamed variable declaration"
	DescOperationBeforeChange  = "method declaration before change"
	DescOperationAfterChange   = "method declaration after change"
	descriptionSeparatorFormat = "%s %s"
)

// Refactoring is an immutable classified refactoring instance.
type Refactoring struct {
	kind          Kind
	description   string
	leftSide      []location.CodeRange
	rightSide     []location.CodeRange
	classesBefore []string
	classesAfter  []string
}

// Kind returns the refactoring kind.
func (r *Refactoring) Kind() Kind { return r.kind }

// LeftSide returns the evidence in the original snapshot.
func (r *Refactoring) LeftSide() []location.CodeRange { return slices.Clone(r.leftSide) }

// RightSide returns the evidence in the revised snapshot.
func (r *Refactoring) RightSide() []location.CodeRange { return slices.Clone(r.rightSide) }

// InvolvedClassesBefore returns the classes involved in the original snapshot.
func (r *Refactoring) InvolvedClassesBefore() []string { return slices.Clone(r.classesBefore) }

// InvolvedClassesAfter returns the classes involved in the revised snapshot.
func (r *Refactoring) InvolvedClassesAfter() []string { return slices.Clone(r.classesAfter) }

// Description returns the rendering without the kind name.
func (r *Refactoring) Description() string { return r.description }

// String returns the stable rendering, the kind name followed by the description.
func (r *Refactoring) String() string {
	return fmt.Sprintf(descriptionSeparatorFormat, r.kind, r.description)
}

type refactoringView struct {
	Type          Kind                 `json:"type"          yaml:"type"`
	Name          string               `json:"name"          yaml:"name"`
	Description   string               `json:"description"   yaml:"description"`
	LeftSide      []location.CodeRange `json:"leftSide"      yaml:"leftSide"`
	RightSide     []location.CodeRange `json:"rightSide"     yaml:"rightSide"`
	ClassesBefore []string             `json:"classesBefore" yaml:"classesBefore"`
	ClassesAfter  []string             `json:"classesAfter"  yaml:"classesAfter"`
}

func (r *Refactoring) view() refactoringView {
	return refactoringView{
		Type:          r.kind,
		Name:          r.kind.String(),
		Description:   r.String(),
		LeftSide:      r.leftSide,
		RightSide:     r.rightSide,
		ClassesBefore: r.classesBefore,
		ClassesAfter:  r.classesAfter,
	}
}

// MarshalJSON implements [json.Marshaler].
func (r *Refactoring) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(r.view())
	if err != nil {
		return nil, fmt.Errorf("marshal refactoring: %w", err)
	}

	return data, nil
}

// MarshalYAML implements the yaml.v3 Marshaler interface.
func (r *Refactoring) MarshalYAML() (any, error) {
	return r.view(), nil
}

func firstRange(ranges []location.CodeRange) location.CodeRange {
	if len(ranges) == 0 {
		return location.CodeRange{}
	}

	return ranges[0]
}

// Compare orders refactorings by the first left-side range (file, line,
// column), then kind priority, then rendering.
func Compare(a, b *Refactoring) int {
	la, lb := firstRange(a.leftSide), firstRange(b.leftSide)

	return cmp.Or(
		cmp.Compare(la.FilePath(), lb.FilePath()),
		cmp.Compare(la.StartLine(), lb.StartLine()),
		cmp.Compare(la.StartColumn(), lb.StartColumn()),
		cmp.Compare(a.kind.Priority(), b.kind.Priority()),
		cmp.Compare(a.String(), b.String()),
	)
}

// Sort orders refactorings deterministically in place.
func Sort(refactorings []*Refactoring) {
	slices.SortStableFunc(refactorings, Compare)
}
