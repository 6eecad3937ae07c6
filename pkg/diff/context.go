package diff

import (
	"github.com/Sumatoshi-tech/refminer/pkg/signature"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// unionOracle answers subtype queries from either snapshot.
type unionOracle struct {
	before, after *uml.Model
}

func (u unionOracle) IsSubtype(sub, super string) bool {
	return u.before.IsSubtype(sub, super) || u.after.IsSubtype(sub, super)
}

// afterContext answers classification questions about the revised snapshot.
type afterContext struct {
	model   *uml.Model
	matcher signature.Matcher
}

func (c afterContext) IsSubtypeAfter(sub, super string) bool {
	return c.model.IsSubtype(sub, super)
}

func (c afterContext) DeclaresEquivalentAfter(className string, op *uml.Operation) bool {
	class := c.model.Class(className)
	if class == nil {
		return false
	}

	return class.FindOperation(func(candidate *uml.Operation) bool {
		return c.matcher.EqualSignature(candidate, op)
	}) != nil
}
