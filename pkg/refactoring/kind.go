// Package refactoring classifies matched operation pairs into typed
// refactoring instances carrying left-side and right-side evidence.
package refactoring

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a tag does not name a refactoring kind.
var ErrUnknownKind = errors.New("unknown refactoring kind")

// Kind is the closed set of detected refactoring kinds. The declaration
// order is the detection priority: earlier kinds are more specific.
type Kind uint8

// Refactoring kinds in priority order.
const (
	PushDownOperation Kind = iota + 1
	PullUpOperation
	MoveAndRenameOperation
	MoveOperation
	RenameOperation
	ChangeReturnType
	ChangeParameterType
	RenameParameter
)

type kindInfo struct {
	tag         string
	displayName string
}

//nolint:gochecknoglobals // immutable lookup table.
var kinds = [...]kindInfo{
	PushDownOperation:      {"PUSH_DOWN_OPERATION", "Push Down Method"},
	PullUpOperation:        {"PULL_UP_OPERATION", "Pull Up Method"},
	MoveAndRenameOperation: {"MOVE_AND_RENAME_OPERATION", "Move And Rename Method"},
	MoveOperation:          {"MOVE_OPERATION", "Move Method"},
	RenameOperation:        {"RENAME_METHOD", "Rename Method"},
	ChangeReturnType:       {"CHANGE_RETURN_TYPE", "Change Return Type"},
	ChangeParameterType:    {"CHANGE_PARAMETER_TYPE", "Change Parameter Type"},
	RenameParameter:        {"RENAME_PARAMETER", "Rename Parameter"},
}

// Kinds returns every kind in priority order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds)-1)
	for k := PushDownOperation; int(k) < len(kinds); k++ {
		out = append(out, k)
	}

	return out
}

func (k Kind) valid() bool {
	return k >= PushDownOperation && int(k) < len(kinds)
}

// String returns the display name, e.g. "Push Down Method".
func (k Kind) String() string {
	if !k.valid() {
		return "Unknown"
	}

	return kinds[k].displayName
}

// Tag returns the stable upper-snake tag, e.g. "PUSH_DOWN_OPERATION".
func (k Kind) Tag() string {
	if !k.valid() {
		return "UNKNOWN"
	}

	return kinds[k].tag
}

// Priority returns the detection rank; lower is more specific.
func (k Kind) Priority() int {
	return int(k)
}

// ParseKind resolves a tag produced by Tag.
func ParseKind(tag string) (Kind, error) {
	for k := PushDownOperation; int(k) < len(kinds); k++ {
		if kinds[k].tag == tag {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.Tag()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}
