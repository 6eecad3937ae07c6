// Package uml provides the declaration-level model of a snapshot: classes,
// operations, parameters and textual types, together with the
// generalization hierarchy between classes.
package uml

import (
	"strings"
)

const (
	arraySuffix    = "[]"
	nullableSuffix = "?"
)

// Type is a syntactic type reference. No resolution is performed: two types
// are equal when their textual forms are.
type Type struct {
	ClassType      string `json:"class_type"                yaml:"class_type"`
	TypeArguments  []Type `json:"type_arguments,omitempty"  yaml:"type_arguments,omitempty"`
	ArrayDimension int    `json:"array_dimension,omitempty" yaml:"array_dimension,omitempty"`
	Nullable       bool   `json:"nullable,omitempty"        yaml:"nullable,omitempty"`
}

// ParseType parses a declared type such as "java.util.List<String>[]" or "Int?".
func ParseType(text string) Type {
	text = strings.TrimSpace(text)

	var t Type

	if rest, ok := strings.CutSuffix(text, nullableSuffix); ok {
		t.Nullable = true
		text = strings.TrimSpace(rest)
	}

	for {
		rest, ok := strings.CutSuffix(text, arraySuffix)
		if !ok {
			break
		}

		t.ArrayDimension++
		text = strings.TrimSpace(rest)
	}

	open := strings.IndexByte(text, '<')
	if open >= 0 && strings.HasSuffix(text, ">") {
		for _, arg := range splitTypeArguments(text[open+1 : len(text)-1]) {
			t.TypeArguments = append(t.TypeArguments, ParseType(arg))
		}

		text = strings.TrimSpace(text[:open])
	}

	t.ClassType = text

	return t
}

// splitTypeArguments splits on commas outside nested angle brackets.
func splitTypeArguments(text string) []string {
	var (
		args  []string
		depth int
		start int
	)

	for i, r := range text {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}

	if last := strings.TrimSpace(text[start:]); last != "" {
		args = append(args, last)
	}

	return args
}

// IsZero reports whether the type is unset.
func (t Type) IsZero() bool {
	return t.ClassType == "" && len(t.TypeArguments) == 0 && t.ArrayDimension == 0
}

// NonQualifiedClassType returns the class type without its qualifier.
func (t Type) NonQualifiedClassType() string {
	if i := strings.LastIndexByte(t.ClassType, '.'); i >= 0 {
		return t.ClassType[i+1:]
	}

	return t.ClassType
}

// String renders the type as declared.
func (t Type) String() string {
	return t.render(Type.classType)
}

// NonQualifiedString renders the type with every qualifier removed.
func (t Type) NonQualifiedString() string {
	return t.render(Type.NonQualifiedClassType)
}

func (t Type) classType() string {
	return t.ClassType
}

func (t Type) render(name func(Type) string) string {
	var sb strings.Builder

	sb.WriteString(name(t))

	if len(t.TypeArguments) > 0 {
		sb.WriteByte('<')

		for i, arg := range t.TypeArguments {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(arg.render(name))
		}

		sb.WriteByte('>')
	}

	for range t.ArrayDimension {
		sb.WriteString(arraySuffix)
	}

	if t.Nullable {
		sb.WriteString(nullableSuffix)
	}

	return sb.String()
}

// Equal reports textual equality.
func (t Type) Equal(other Type) bool {
	return t.String() == other.String()
}

// EqualClassType reports whether both types name the same class type with
// the same array dimension, ignoring type arguments.
func (t Type) EqualClassType(other Type) bool {
	return t.ClassType == other.ClassType && t.ArrayDimension == other.ArrayDimension
}

// EqualsQualified reports equality after one side's qualifier is dropped:
// "java.util.List" and "List" are qualified-equal.
func (t Type) EqualsQualified(other Type) bool {
	if t.ArrayDimension != other.ArrayDimension {
		return false
	}

	return t.ClassType == other.ClassType ||
		strings.HasSuffix(t.ClassType, "."+other.ClassType) ||
		strings.HasSuffix(other.ClassType, "."+t.ClassType)
}

// EqualSimpleName reports whether both types share the unqualified class
// name and array dimension.
func (t Type) EqualSimpleName(other Type) bool {
	return t.ArrayDimension == other.ArrayDimension && t.NonQualifiedClassType() == other.NonQualifiedClassType()
}
