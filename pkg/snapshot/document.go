// Package snapshot reads snapshot documents produced by a language
// front-end and builds the declaration model of one source revision.
package snapshot

import "github.com/Sumatoshi-tech/refminer/pkg/location"

// Document is the decoded form of a snapshot file.
type Document struct {
	Language string     `json:"language" yaml:"language"`
	Classes  []ClassDoc `json:"classes"  yaml:"classes"`
}

// ClassDoc declares one class.
type ClassDoc struct {
	Name       string         `json:"name"                 yaml:"name"`
	File       string         `json:"file,omitempty"       yaml:"file,omitempty"`
	Superclass string         `json:"superclass,omitempty" yaml:"superclass,omitempty"`
	Interfaces []string       `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Abstract   bool           `json:"abstract,omitempty"   yaml:"abstract,omitempty"`
	Interface  bool           `json:"interface,omitempty"  yaml:"interface,omitempty"`
	Location   LocationDoc    `json:"location"             yaml:"location"`
	Operations []OperationDoc `json:"operations,omitempty" yaml:"operations,omitempty"`
}

// OperationDoc declares one method or constructor.
type OperationDoc struct {
	Name           string             `json:"name"                      yaml:"name"`
	Visibility     string             `json:"visibility,omitempty"      yaml:"visibility,omitempty"`
	Modifiers      []string           `json:"modifiers,omitempty"       yaml:"modifiers,omitempty"`
	TypeParameters []TypeParameterDoc `json:"type_parameters,omitempty" yaml:"type_parameters,omitempty"`
	Parameters     []ParameterDoc     `json:"parameters,omitempty"      yaml:"parameters,omitempty"`
	Annotations    []string           `json:"annotations,omitempty"     yaml:"annotations,omitempty"`
	Doc            string             `json:"doc,omitempty"             yaml:"doc,omitempty"`
	Location       LocationDoc        `json:"location"                  yaml:"location"`
	EmptyBody      bool               `json:"empty_body,omitempty"      yaml:"empty_body,omitempty"`
	Body           *NodeDoc           `json:"body,omitempty"            yaml:"body,omitempty"`
}

// TypeParameterDoc declares a generic parameter.
type TypeParameterDoc struct {
	Name   string   `json:"name"             yaml:"name"`
	Bounds []string `json:"bounds,omitempty" yaml:"bounds,omitempty"`
}

// ParameterDoc declares a parameter or the return slot.
type ParameterDoc struct {
	Name     string       `json:"name,omitempty"     yaml:"name,omitempty"`
	Kind     string       `json:"kind,omitempty"     yaml:"kind,omitempty"`
	Type     string       `json:"type"               yaml:"type"`
	Location *LocationDoc `json:"location,omitempty" yaml:"location,omitempty"`
}

// Node kinds.
const (
	NodeLeaf      = "leaf"
	NodeComposite = "composite"
)

// NodeDoc is one statement of a body tree.
type NodeDoc struct {
	Kind         string           `json:"kind"                   yaml:"kind"`
	Type         string           `json:"type"                   yaml:"type"`
	Text         string           `json:"text,omitempty"         yaml:"text,omitempty"`
	Location     LocationDoc      `json:"location"               yaml:"location"`
	Depth        *int             `json:"depth,omitempty"        yaml:"depth,omitempty"`
	Variables    []string         `json:"variables,omitempty"    yaml:"variables,omitempty"`
	Declarations []DeclarationDoc `json:"declarations,omitempty" yaml:"declarations,omitempty"`
	Expressions  []ExpressionDoc  `json:"expressions,omitempty"  yaml:"expressions,omitempty"`
	Statements   []NodeDoc        `json:"statements,omitempty"   yaml:"statements,omitempty"`
}

// ExpressionDoc is an expression owned by a composite statement.
type ExpressionDoc struct {
	Type         string           `json:"type"                   yaml:"type"`
	Text         string           `json:"text"                   yaml:"text"`
	Location     LocationDoc      `json:"location"               yaml:"location"`
	Variables    []string         `json:"variables,omitempty"    yaml:"variables,omitempty"`
	Declarations []DeclarationDoc `json:"declarations,omitempty" yaml:"declarations,omitempty"`
}

// DeclarationDoc introduces a variable.
type DeclarationDoc struct {
	Name        string       `json:"name"                  yaml:"name"`
	Type        string       `json:"type,omitempty"        yaml:"type,omitempty"`
	Initializer string       `json:"initializer,omitempty" yaml:"initializer,omitempty"`
	Scope       *LocationDoc `json:"scope,omitempty"       yaml:"scope,omitempty"`
	Location    LocationDoc  `json:"location"              yaml:"location"`
	Parameter   bool         `json:"parameter,omitempty"   yaml:"parameter,omitempty"`
	Varargs     bool         `json:"varargs,omitempty"     yaml:"varargs,omitempty"`
}

// LocationDoc is a source span. An empty file inherits the enclosing
// class's file.
type LocationDoc struct {
	File        string `json:"file,omitempty" yaml:"file,omitempty"`
	StartOffset int    `json:"start_offset"   yaml:"start_offset"`
	EndOffset   int    `json:"end_offset"     yaml:"end_offset"`
	StartLine   int    `json:"start_line"     yaml:"start_line"`
	EndLine     int    `json:"end_line"       yaml:"end_line"`
	StartColumn int    `json:"start_column"   yaml:"start_column"`
	EndColumn   int    `json:"end_column"     yaml:"end_column"`
}

func (l LocationDoc) info(file string, typ location.CodeElementType) location.Info {
	if l.File != "" {
		file = l.File
	}

	return location.Info{
		FilePath:    file,
		StartOffset: l.StartOffset,
		EndOffset:   l.EndOffset,
		StartLine:   l.StartLine,
		EndLine:     l.EndLine,
		StartColumn: l.StartColumn,
		EndColumn:   l.EndColumn,
		ElementType: typ,
	}
}
