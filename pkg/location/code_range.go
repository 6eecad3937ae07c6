package location

import (
	"encoding/json"
	"fmt"
)

// CodeRange is an immutable source range carried as refactoring evidence.
// The With* methods return modified copies.
type CodeRange struct {
	filePath    string
	description string
	codeElement string
	startLine   int
	endLine     int
	startColumn int
	endColumn   int
	elementType CodeElementType
}

// NewCodeRange builds a code range from explicit coordinates.
func NewCodeRange(filePath string, startLine, endLine, startColumn, endColumn int, elementType CodeElementType) CodeRange {
	return CodeRange{
		filePath:    filePath,
		startLine:   startLine,
		endLine:     endLine,
		startColumn: startColumn,
		endColumn:   endColumn,
		elementType: elementType,
	}
}

// FilePath returns the file the range belongs to.
func (r CodeRange) FilePath() string { return r.filePath }

// StartLine returns the 1-based first line.
func (r CodeRange) StartLine() int { return r.startLine }

// EndLine returns the 1-based last line.
func (r CodeRange) EndLine() int { return r.endLine }

// StartColumn returns the 1-based first column.
func (r CodeRange) StartColumn() int { return r.startColumn }

// EndColumn returns the 1-based last column.
func (r CodeRange) EndColumn() int { return r.endColumn }

// ElementType returns the element tag of the range.
func (r CodeRange) ElementType() CodeElementType { return r.elementType }

// Description returns the human description attached to the range.
func (r CodeRange) Description() string { return r.description }

// CodeElement returns the rendered element text attached to the range.
func (r CodeRange) CodeElement() string { return r.codeElement }

// WithDescription returns a copy carrying the given description.
func (r CodeRange) WithDescription(description string) CodeRange {
	r.description = description

	return r
}

// WithCodeElement returns a copy carrying the given rendered element text.
func (r CodeRange) WithCodeElement(codeElement string) CodeRange {
	r.codeElement = codeElement

	return r
}

// Less orders ranges by file, then start line, then start column.
func (r CodeRange) Less(other CodeRange) bool {
	if r.filePath != other.filePath {
		return r.filePath < other.filePath
	}

	if r.startLine != other.startLine {
		return r.startLine < other.startLine
	}

	return r.startColumn < other.startColumn
}

func (r CodeRange) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d [%s] %s", r.filePath, r.startLine, r.startColumn,
		r.endLine, r.endColumn, r.description, r.codeElement)
}

type codeRangeJSON struct {
	FilePath    string          `json:"filePath"    yaml:"filePath"`
	StartLine   int             `json:"startLine"   yaml:"startLine"`
	EndLine     int             `json:"endLine"     yaml:"endLine"`
	StartColumn int             `json:"startColumn" yaml:"startColumn"`
	EndColumn   int             `json:"endColumn"   yaml:"endColumn"`
	ElementType CodeElementType `json:"codeElementType" yaml:"codeElementType"`
	Description string          `json:"description" yaml:"description"`
	CodeElement string          `json:"codeElement" yaml:"codeElement"`
}

func (r CodeRange) view() codeRangeJSON {
	return codeRangeJSON{
		FilePath:    r.filePath,
		StartLine:   r.startLine,
		EndLine:     r.endLine,
		StartColumn: r.startColumn,
		EndColumn:   r.endColumn,
		ElementType: r.elementType,
		Description: r.description,
		CodeElement: r.codeElement,
	}
}

// MarshalJSON implements [json.Marshaler].
func (r CodeRange) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(r.view())
	if err != nil {
		return nil, fmt.Errorf("marshal code range: %w", err)
	}

	return data, nil
}

// MarshalYAML implements the yaml.v3 Marshaler interface.
func (r CodeRange) MarshalYAML() (any, error) {
	return r.view(), nil
}
