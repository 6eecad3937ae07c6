package uml

import (
	"errors"
	"fmt"
	"hash/fnv"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/refminer/pkg/decomposition"
	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

// ErrContractViolation signals malformed front-end input, such as an
// operation with more than one return parameter.
var ErrContractViolation = decomposition.ErrContractViolation

// ErrDuplicateReturn is wrapped by contract violations on the return slot.
var ErrDuplicateReturn = errors.New("operation declares more than one return parameter")

// Visibility of an operation.
type Visibility string

// Visibilities.
const (
	Public    Visibility = "public"
	Protected Visibility = "protected"
	Private   Visibility = "private"
	Internal  Visibility = "internal"
	Package   Visibility = "package"
)

// Modifiers of an operation.
type Modifiers struct {
	Abstract    bool `json:"abstract,omitempty"    yaml:"abstract,omitempty"`
	Final       bool `json:"final,omitempty"       yaml:"final,omitempty"`
	Static      bool `json:"static,omitempty"      yaml:"static,omitempty"`
	Constructor bool `json:"constructor,omitempty" yaml:"constructor,omitempty"`
}

// TypeParameter is a declared generic parameter with its bounds.
type TypeParameter struct {
	Name   string   `json:"name"             yaml:"name"`
	Bounds []string `json:"bounds,omitempty" yaml:"bounds,omitempty"`
}

func (tp TypeParameter) String() string {
	if len(tp.Bounds) == 0 {
		return tp.Name
	}

	return tp.Name + " : " + strings.Join(tp.Bounds, " & ")
}

// Operation is a method or constructor declaration.
type Operation struct {
	Body           *decomposition.OperationBody
	Name           string
	ClassName      string
	Visibility     Visibility
	Doc            string
	Annotations    []string
	TypeParameters []TypeParameter
	parameters     []Parameter
	Location       location.Info
	Modifiers      Modifiers
	EmptyBody      bool
}

// NewOperation creates an operation of className.
func NewOperation(className, name string, visibility Visibility) *Operation {
	return &Operation{ClassName: className, Name: name, Visibility: visibility}
}

// AddParameter appends p. A second return parameter is a front-end defect
// and panics with an error wrapping ErrContractViolation.
func (o *Operation) AddParameter(p Parameter) {
	if p.IsReturn() && o.hasReturn() {
		panic(fmt.Errorf("operation %s: %w: %w", o.Name, ErrDuplicateReturn, ErrContractViolation))
	}

	o.parameters = append(o.parameters, p)
}

func (o *Operation) hasReturn() bool {
	_, ok := o.ReturnParameter()

	return ok
}

// Parameters returns all parameters including the return slot.
func (o *Operation) Parameters() []Parameter {
	return o.parameters
}

// ReturnParameter returns the return slot if declared.
func (o *Operation) ReturnParameter() (Parameter, bool) {
	for _, p := range o.parameters {
		if p.IsReturn() {
			return p, true
		}
	}

	return Parameter{}, false
}

// NonReturnParameters returns the in and varargs parameters in order.
func (o *Operation) NonReturnParameters() []Parameter {
	params := make([]Parameter, 0, len(o.parameters))

	for _, p := range o.parameters {
		if !p.IsReturn() {
			params = append(params, p)
		}
	}

	return params
}

// ParameterTypes returns the types of the non-return parameters.
func (o *Operation) ParameterTypes() []Type {
	params := o.NonReturnParameters()
	types := make([]Type, 0, len(params))

	for _, p := range params {
		types = append(types, p.Type)
	}

	return types
}

// ParameterNames returns the names of the non-return parameters.
func (o *Operation) ParameterNames() []string {
	params := o.NonReturnParameters()
	names := make([]string, 0, len(params))

	for _, p := range params {
		names = append(names, p.Name)
	}

	return names
}

// VariableTypeMap maps each non-return parameter and every variable declared
// in the body to its type. Body declarations shadow parameters.
func (o *Operation) VariableTypeMap() map[string]Type {
	types := make(map[string]Type, len(o.parameters))

	for _, p := range o.NonReturnParameters() {
		types[p.Name] = p.Type
	}

	for _, decl := range o.Body.AllVariableDeclarations() {
		types[decl.Name] = ParseType(decl.Type)
	}

	return types
}

// NumberOfNonVarargsParameters counts the in parameters.
func (o *Operation) NumberOfNonVarargsParameters() int {
	count := 0

	for _, p := range o.parameters {
		if p.Kind == ParameterIn {
			count++
		}
	}

	return count
}

// HasVarargsParameter reports whether a varargs parameter is declared.
func (o *Operation) HasVarargsParameter() bool {
	return slices.ContainsFunc(o.parameters, func(p Parameter) bool { return p.Kind == ParameterVarargs })
}

// HasTwoParametersWithTheSameType reports whether exactly two non-return
// parameters are declared and they share a type.
func (o *Operation) HasTwoParametersWithTheSameType() bool {
	types := o.ParameterTypes()

	return len(types) == 2 && types[0].Equal(types[1])
}

// HasTestAnnotation reports whether the operation is annotated as a test.
func (o *Operation) HasTestAnnotation() bool {
	return slices.ContainsFunc(o.Annotations, func(a string) bool {
		name := strings.TrimPrefix(a, "@")

		return name == "Test" || strings.HasSuffix(name, ".Test")
	})
}

// IsConstructor reports whether the operation is a constructor.
func (o *Operation) IsConstructor() bool { return o.Modifiers.Constructor }

// IsAbstract reports whether the operation is abstract.
func (o *Operation) IsAbstract() bool { return o.Modifiers.Abstract }

// HasEmptyBody reports whether the operation has no body statements.
func (o *Operation) HasEmptyBody() bool {
	return o.EmptyBody || o.Body.IsEmpty()
}

// Equal is identity equality: owning class, name, visibility, abstractness,
// body emptiness, parameter types and type parameters. Return type and body
// content are ignored.
func (o *Operation) Equal(other *Operation) bool {
	if o == nil || other == nil {
		return o == other
	}

	return o.ClassName == other.ClassName && o.Name == other.Name && o.equalIgnoringClassAndName(other)
}

// EqualsIgnoringVisibility is Equal without the visibility check.
func (o *Operation) EqualsIgnoringVisibility(other *Operation) bool {
	return o.ClassName == other.ClassName &&
		o.Name == other.Name &&
		o.Modifiers.Abstract == other.Modifiers.Abstract &&
		o.HasEmptyBody() == other.HasEmptyBody() &&
		equalTypes(o.ParameterTypes(), other.ParameterTypes()) &&
		equalTypeParameters(o.TypeParameters, other.TypeParameters)
}

// EqualsIgnoringNameCase is Equal with names compared case-insensitively.
func (o *Operation) EqualsIgnoringNameCase(other *Operation) bool {
	return o.ClassName == other.ClassName &&
		strings.EqualFold(o.Name, other.Name) &&
		o.equalIgnoringClassAndName(other)
}

func (o *Operation) equalIgnoringClassAndName(other *Operation) bool {
	return o.Visibility == other.Visibility &&
		o.Modifiers.Abstract == other.Modifiers.Abstract &&
		o.HasEmptyBody() == other.HasEmptyBody() &&
		equalTypes(o.ParameterTypes(), other.ParameterTypes()) &&
		equalTypeParameters(o.TypeParameters, other.TypeParameters)
}

// Key is a string form of the identity used by Equal.
func (o *Operation) Key() string {
	var sb strings.Builder

	sb.WriteString(o.ClassName)
	sb.WriteByte('#')
	sb.WriteString(string(o.Visibility))
	sb.WriteByte(' ')

	if o.Modifiers.Abstract {
		sb.WriteString("abstract ")
	}

	if o.HasEmptyBody() {
		sb.WriteString("empty ")
	}

	if len(o.TypeParameters) > 0 {
		sb.WriteByte('<')

		for i, tp := range o.TypeParameters {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(tp.String())
		}

		sb.WriteString("> ")
	}

	sb.WriteString(o.Name)
	sb.WriteByte('(')

	for i, t := range o.ParameterTypes() {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(t.String())
	}

	sb.WriteByte(')')

	return sb.String()
}

// Hash is the FNV-1a hash of Key.
func (o *Operation) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(o.Key()))

	return h.Sum64()
}

// String renders "visibility [abstract ]name(params) : returnType".
func (o *Operation) String() string {
	return o.render(Parameter.String, Type.String)
}

// ToQualifiedString renders "visibility [abstract ]name(params) : returnType"
// with every type qualifier kept, e.g. "public m(x java.util.List) : void".
func (o *Operation) ToQualifiedString() string {
	return o.render(Parameter.String, Type.String)
}

// NonQualifiedString renders the operation with type qualifiers removed.
func (o *Operation) NonQualifiedString() string {
	return o.render(func(p Parameter) string {
		p.Type = ParseType(p.Type.NonQualifiedString())

		return p.String()
	}, Type.NonQualifiedString)
}

func (o *Operation) render(param func(Parameter) string, typ func(Type) string) string {
	var sb strings.Builder

	if o.Visibility != "" {
		sb.WriteString(string(o.Visibility))
		sb.WriteByte(' ')
	}

	if o.Modifiers.Abstract {
		sb.WriteString("abstract ")
	}

	sb.WriteString(o.Name)
	sb.WriteByte('(')

	for i, p := range o.NonReturnParameters() {
		if i > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(param(p))
	}

	sb.WriteByte(')')

	if ret, ok := o.ReturnParameter(); ok {
		sb.WriteString(" : ")
		sb.WriteString(typ(ret.Type))
	}

	return sb.String()
}

// CodeRange returns the declaration range carrying the rendered signature.
func (o *Operation) CodeRange() location.CodeRange {
	return o.Location.CodeRange().WithCodeElement(o.String())
}

// Compare orders operations by class, then location, then rendering.
func Compare(a, b *Operation) int {
	if c := strings.Compare(a.ClassName, b.ClassName); c != 0 {
		return c
	}

	if a.Location.Before(b.Location) {
		return -1
	}

	if b.Location.Before(a.Location) {
		return 1
	}

	return strings.Compare(a.String(), b.String())
}

func equalTypes(a, b []Type) bool {
	return slices.EqualFunc(a, b, Type.Equal)
}

func equalTypeParameters(a, b []TypeParameter) bool {
	return slices.EqualFunc(a, b, func(x, y TypeParameter) bool {
		return x.Name == y.Name && slices.Equal(x.Bounds, y.Bounds)
	})
}

// EqualTypeParameters reports whether both operations declare the same type
// parameters in the same order.
func (o *Operation) EqualTypeParameters(other *Operation) bool {
	return equalTypeParameters(o.TypeParameters, other.TypeParameters)
}

// AliasedAttributes returns the attributes a constructor assigns the same
// parameter. Other operations have none.
func (o *Operation) AliasedAttributes() decomposition.Aliases {
	if !o.IsConstructor() || o.Body == nil {
		return nil
	}

	aliases := o.Body.AliasedAttributes()
	if len(aliases) == 0 {
		return nil
	}

	names := o.ParameterNames()

	var kept decomposition.Aliases

	for _, group := range aliases {
		if slices.Contains(names, group.Value) {
			kept = append(kept, group)
		}
	}

	return kept
}
