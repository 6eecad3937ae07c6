package uml

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

// ErrUnknownParameterKind is returned for a parameter kind outside in, return and varargs.
var ErrUnknownParameterKind = errors.New("unknown parameter kind")

// ParameterKind tags the role of an operation parameter.
type ParameterKind uint8

// Parameter kinds.
const (
	ParameterIn ParameterKind = iota
	ParameterReturn
	ParameterVarargs
)

func (k ParameterKind) String() string {
	switch k {
	case ParameterIn:
		return "in"
	case ParameterReturn:
		return "return"
	case ParameterVarargs:
		return "varargs"
	default:
		return "unknown"
	}
}

// ParseParameterKind resolves "in", "return" or "varargs". An empty string means "in".
func ParseParameterKind(text string) (ParameterKind, error) {
	switch text {
	case "", "in":
		return ParameterIn, nil
	case "return":
		return ParameterReturn, nil
	case "varargs":
		return ParameterVarargs, nil
	default:
		return ParameterIn, fmt.Errorf("%w: %q", ErrUnknownParameterKind, text)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (k ParameterKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *ParameterKind) UnmarshalText(text []byte) error {
	parsed, err := ParseParameterKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}

// Parameter is one entry of an operation's parameter list. The return type
// is modelled as a parameter of kind ParameterReturn.
type Parameter struct {
	Name     string        `json:"name,omitempty" yaml:"name,omitempty"`
	Type     Type          `json:"type"           yaml:"type"`
	Kind     ParameterKind `json:"kind"           yaml:"kind"`
	Location location.Info `json:"location"       yaml:"location"`
}

// IsReturn reports whether p is the return slot.
func (p Parameter) IsReturn() bool {
	return p.Kind == ParameterReturn
}

// Equal compares name, type and kind.
func (p Parameter) Equal(other Parameter) bool {
	return p.Name == other.Name && p.Kind == other.Kind && p.Type.Equal(other.Type)
}

// EqualsExcludingType compares name and kind only.
func (p Parameter) EqualsExcludingType(other Parameter) bool {
	return p.Name == other.Name && p.Kind == other.Kind
}

// String renders "name Type", "name Type..." for varargs, or the bare type
// for the return slot.
func (p Parameter) String() string {
	switch p.Kind {
	case ParameterReturn:
		return p.Type.String()
	case ParameterVarargs:
		return p.Name + " " + p.Type.String() + "..."
	default:
		return p.Name + " " + p.Type.String()
	}
}
