package signature

import (
	"slices"

	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// CompatibleSignature reports whether a revised operation could replace an
// original one: the return types must agree and the parameters must be
// equal, overloaded, replaced or equally named.
func (m Matcher) CompatibleSignature(a, b *uml.Operation) bool {
	if !EqualReturnParameter(a, b) {
		return false
	}

	return EqualParameterTypes(a, b) ||
		OverloadedParameterTypes(a, b) ||
		m.ReplacedParameterTypes(a, b) ||
		EqualParameterNames(a, b)
}

// EqualParameterTypes reports equal return, parameter types and type parameters.
func EqualParameterTypes(a, b *uml.Operation) bool {
	return EqualReturnParameter(a, b) &&
		slices.EqualFunc(a.ParameterTypes(), b.ParameterTypes(), uml.Type.Equal) &&
		a.EqualTypeParameters(b)
}

// EqualParameterNames reports equal return and parameter names.
func EqualParameterNames(a, b *uml.Operation) bool {
	return EqualReturnParameter(a, b) && slices.Equal(a.ParameterNames(), b.ParameterNames())
}

// OverloadedParameterTypes reports equal return and one parameter type list
// containing every type of the other.
func OverloadedParameterTypes(a, b *uml.Operation) bool {
	if !EqualReturnParameter(a, b) {
		return false
	}

	ta, tb := a.ParameterTypes(), b.ParameterTypes()

	return containsAllTypes(ta, tb) || containsAllTypes(tb, ta)
}

func containsAllTypes(set, subset []uml.Type) bool {
	for _, t := range subset {
		if !slices.ContainsFunc(set, t.Equal) {
			return false
		}
	}

	return true
}

// ReplacedParameterTypes compares the overlapping prefix of both parameter
// type lists. A position is common when the types are equal, share class
// type and array dimension, or are related by a declared subtype relation.
// It holds when common positions are at least as many as differing ones and
// at least one position is common. The first list must be non-empty.
func (m Matcher) ReplacedParameterTypes(a, b *uml.Operation) bool {
	ta, tb := a.ParameterTypes(), b.ParameterTypes()
	if len(ta) == 0 {
		return false
	}

	common, different := m.CommonParameterTypes(ta, tb)

	return common >= different && common > 0
}

// CommonParameterTypes counts common and differing positions over the
// overlapping prefix of two type lists.
func (m Matcher) CommonParameterTypes(ta, tb []uml.Type) (common, different int) {
	for i := range min(len(ta), len(tb)) {
		if m.commonType(ta[i], tb[i]) {
			common++
		} else {
			different++
		}
	}

	return common, different
}

func (m Matcher) commonType(a, b uml.Type) bool {
	return a.Equal(b) || a.EqualClassType(b) || m.subtypeRelated(a, b)
}

func (m Matcher) subtypeRelated(a, b uml.Type) bool {
	if m.types == nil || a.ArrayDimension != b.ArrayDimension {
		return false
	}

	return m.types.IsSubtype(a.ClassType, b.ClassType) || m.types.IsSubtype(b.ClassType, a.ClassType)
}

// Names accepted for the fixed object-method shapes, covering Java and
// Kotlin spellings.
//
//nolint:gochecknoglobals // fixed lookup tables.
var (
	booleanTypes = []string{"boolean", "Boolean"}
	intTypes     = []string{"int", "Int"}
	stringTypes  = []string{"String"}
	objectTypes  = []string{"Object", "Any"}
)

// OverridesObject reports whether op has one of the shapes equals(Object):
// boolean, hashCode():int, toString():String, clone():Object or
// compareTo(T):int. Visibility is not considered. Operations without a return
// parameter never match.
func OverridesObject(op *uml.Operation) bool {
	ret, ok := op.ReturnParameter()
	if !ok {
		return false
	}

	returns := ret.Type.NonQualifiedClassType()
	params := op.ParameterTypes()

	switch op.Name {
	case "equals":
		return slices.Contains(booleanTypes, returns) && len(params) == 1 &&
			slices.Contains(objectTypes, params[0].NonQualifiedClassType())
	case "hashCode":
		return slices.Contains(intTypes, returns) && len(params) == 0
	case "toString":
		return slices.Contains(stringTypes, returns) && len(params) == 0
	case "clone":
		return slices.Contains(objectTypes, returns) && len(params) == 0
	case "compareTo":
		return slices.Contains(intTypes, returns) && len(params) == 1
	default:
		return false
	}
}
