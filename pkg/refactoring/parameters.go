package refactoring

import (
	"fmt"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// SignatureChanges derives return-type, parameter-type and parameter-name
// changes between two matched operations. Parameters are compared by
// position and only when both lists have the same length.
func SignatureChanges(before, after *uml.Operation) []*Refactoring {
	var out []*Refactoring

	oldRet, hasOld := before.ReturnParameter()
	newRet, hasNew := after.ReturnParameter()

	if hasOld && hasNew && !oldRet.Type.Equal(newRet.Type) {
		out = append(out, NewChangeReturnType(before, after, oldRet, newRet))
	}

	oldParams, newParams := before.NonReturnParameters(), after.NonReturnParameters()
	if len(oldParams) != len(newParams) {
		return out
	}

	for i, oldParam := range oldParams {
		newParam := newParams[i]
		if oldParam.Kind != newParam.Kind {
			continue
		}

		sameName := oldParam.Name == newParam.Name
		sameType := oldParam.Type.Equal(newParam.Type)

		switch {
		case sameName && !sameType:
			out = append(out, NewChangeParameterType(before, after, oldParam, newParam))
		case !sameName && sameType:
			out = append(out, NewRenameParameter(before, after, oldParam, newParam))
		}
	}

	return out
}

// NewChangeReturnType records a changed return type.
func NewChangeReturnType(before, after *uml.Operation, original, changed uml.Parameter) *Refactoring {
	return &Refactoring{
		kind: ChangeReturnType,
		description: fmt.Sprintf("%s to %s in method %s from class %s",
			original.Type, changed.Type, after, after.ClassName),
		leftSide: []location.CodeRange{
			typeRange(original, before).WithDescription(DescOriginalReturnType),
			before.CodeRange().WithDescription(DescOperationBeforeChange),
		},
		rightSide: []location.CodeRange{
			typeRange(changed, after).WithDescription(DescChangedReturnType),
			after.CodeRange().WithDescription(DescOperationAfterChange),
		},
		classesBefore: []string{before.ClassName},
		classesAfter:  []string{after.ClassName},
	}
}

// NewChangeParameterType records a parameter whose type changed.
func NewChangeParameterType(before, after *uml.Operation, original, changed uml.Parameter) *Refactoring {
	return newParameterRefactoring(ChangeParameterType, DescChangedTypeVariable, before, after, original, changed)
}

// NewRenameParameter records a renamed parameter.
func NewRenameParameter(before, after *uml.Operation, original, renamed uml.Parameter) *Refactoring {
	return newParameterRefactoring(RenameParameter, DescRenamedVariable, before, after, original, renamed)
}

func newParameterRefactoring(kind Kind, rightDescription string, before, after *uml.Operation,
	original, changed uml.Parameter,
) *Refactoring {
	return &Refactoring{
		kind: kind,
		description: fmt.Sprintf("%s to %s in method %s from class %s",
			original, changed, after, after.ClassName),
		leftSide: []location.CodeRange{
			parameterRange(original, before).WithDescription(DescOriginalVariable),
			before.CodeRange().WithDescription(DescOperationBeforeChange),
		},
		rightSide: []location.CodeRange{
			parameterRange(changed, after).WithDescription(rightDescription),
			after.CodeRange().WithDescription(DescOperationAfterChange),
		},
		classesBefore: []string{before.ClassName},
		classesAfter:  []string{after.ClassName},
	}
}

// parameterRange falls back to the operation location when the parameter
// carries none.
func parameterRange(p uml.Parameter, op *uml.Operation) location.CodeRange {
	loc := p.Location
	if loc.FilePath == "" {
		loc = op.Location
	}

	return loc.CodeRange().WithCodeElement(p.String())
}

func typeRange(p uml.Parameter, op *uml.Operation) location.CodeRange {
	return parameterRange(p, op).WithCodeElement(p.Type.String())
}
