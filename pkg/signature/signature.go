// Package signature provides the equivalence and compatibility relations used
// to hypothesize that an operation of one snapshot corresponds to an
// operation of another, despite renames, moves or type changes.
//
// All relations are pure functions of the two operations and, for subtype
// checks, of the hierarchy the Matcher was built with.
package signature

import (
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// SubtypeOracle answers declared subtype queries between class names.
type SubtypeOracle interface {
	IsSubtype(sub, super string) bool
}

// Matcher evaluates signature relations between operations.
type Matcher struct {
	types SubtypeOracle
}

// NewMatcher creates a matcher consulting types for subtype relations.
// A nil oracle knows no subtype relations.
func NewMatcher(types SubtypeOracle) Matcher {
	return Matcher{types: types}
}

// Names that never explain a longer name by prefix.
//
//nolint:gochecknoglobals // fixed exclusion list.
var excludedPrefixNames = []string{"get", "set", "print"}

// EqualReturnParameter reports whether both operations declare the same
// return type, or both declare none.
func EqualReturnParameter(a, b *uml.Operation) bool {
	ra, okA := a.ReturnParameter()
	rb, okB := b.ReturnParameter()

	if okA && okB {
		return ra.Type.Equal(rb.Type)
	}

	return !okA && !okB
}

// EqualSignature reports same name, same type parameters, equal return and
// parameter types that are identical or pairwise equal-or-compatible. Two
// class types are compatible when one is a qualified form of the other with
// the same array dimension.
func (Matcher) EqualSignature(a, b *uml.Operation) bool {
	if a.Name != b.Name || !a.EqualTypeParameters(b) || !EqualReturnParameter(a, b) {
		return false
	}

	ta, tb := a.ParameterTypes(), b.ParameterTypes()
	if slices.EqualFunc(ta, tb, uml.Type.Equal) {
		return true
	}

	if len(ta) != len(tb) {
		return false
	}

	for i := range ta {
		if !compatibleClassTypes(ta[i], tb[i]) && !ta[i].Equal(tb[i]) {
			return false
		}
	}

	return true
}

func compatibleClassTypes(a, b uml.Type) bool {
	return a.ArrayDimension == b.ArrayDimension &&
		(strings.HasSuffix(a.ClassType, "."+b.ClassType) || strings.HasSuffix(b.ClassType, "."+a.ClassType))
}

// EqualSignatureIgnoringOperationName compares visibility, modifiers, the
// full parameter list and type parameters.
func (Matcher) EqualSignatureIgnoringOperationName(a, b *uml.Operation) bool {
	return a.Visibility == b.Visibility &&
		a.Modifiers.Abstract == b.Modifiers.Abstract &&
		a.Modifiers.Final == b.Modifiers.Final &&
		a.Modifiers.Static == b.Modifiers.Static &&
		slices.EqualFunc(a.Parameters(), b.Parameters(), uml.Parameter.Equal) &&
		a.EqualTypeParameters(b)
}

// EqualSignatureIgnoringChangedTypes matches operations whose names are
// equivalent (or which are both constructors) and whose parameters agree by
// name and kind even where their types changed.
func (m Matcher) EqualSignatureIgnoringChangedTypes(a, b *uml.Operation) bool {
	if !(a.IsConstructor() && b.IsConstructor()) && !m.EquivalentName(a, b) {
		return false
	}

	return parametersAgreeIgnoringTypes(a, b)
}

// EqualSignatureWithIdenticalNameIgnoringChangedTypes is
// EqualSignatureIgnoringChangedTypes with identical names required.
func (Matcher) EqualSignatureWithIdenticalNameIgnoringChangedTypes(a, b *uml.Operation) bool {
	if !(a.IsConstructor() && b.IsConstructor()) && a.Name != b.Name {
		return false
	}

	return parametersAgreeIgnoringTypes(a, b)
}

func parametersAgreeIgnoringTypes(a, b *uml.Operation) bool {
	if a.IsAbstract() != b.IsAbstract() {
		return false
	}

	pa, pb := a.Parameters(), b.Parameters()
	if len(pa) != len(pb) || !a.EqualTypeParameters(b) {
		return false
	}

	for i := range pa {
		if !pa[i].Equal(pb[i]) && !pa[i].EqualsExcludingType(pb[i]) {
			return false
		}
	}

	return true
}

// EquivalentName reports whether the names are equal or one name extends
// the other in a way explained by the signatures, tried in both directions.
func (Matcher) EquivalentName(a, b *uml.Operation) bool {
	return a.Name == b.Name || equivalentNames(a, b) || equivalentNames(b, a)
}

// equivalentNames reports whether longer's name extends shorter's name with
// a remainder that is shorter than the base, or is explained by an unchanged
// return type on two operations taking parameters, or appears in the simple
// name of shorter's class.
func equivalentNames(longer, shorter *uml.Operation) bool {
	equalReturn := EqualReturnParameter(longer, shorter) &&
		len(longer.NonReturnParameters()) > 0 &&
		len(shorter.NonReturnParameters()) > 0

	if !strings.HasPrefix(longer.Name, shorter.Name) || slices.Contains(excludedPrefixNames, shorter.Name) {
		return false
	}

	remainder := longer.Name[len(shorter.Name):]

	return len(shorter.Name) > len(remainder) ||
		equalReturn ||
		strings.Contains(uml.SimpleName(shorter.ClassName), remainder)
}
