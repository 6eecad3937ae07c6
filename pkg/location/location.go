package location

import "fmt"

// Info is the position of one element inside a source file.
// Offsets are byte offsets; lines and columns are 1-based.
type Info struct {
	FilePath    string          `json:"file"         yaml:"file"`
	StartOffset int             `json:"start_offset" yaml:"start_offset"`
	EndOffset   int             `json:"end_offset"   yaml:"end_offset"`
	StartLine   int             `json:"start_line"   yaml:"start_line"`
	EndLine     int             `json:"end_line"     yaml:"end_line"`
	StartColumn int             `json:"start_column" yaml:"start_column"`
	EndColumn   int             `json:"end_column"   yaml:"end_column"`
	ElementType CodeElementType `json:"type"         yaml:"type"`
}

// Length returns the size of the element in bytes.
func (i Info) Length() int {
	return i.EndOffset - i.StartOffset
}

// Subsumes reports whether other lies entirely within i in the same file.
func (i Info) Subsumes(other Info) bool {
	return i.FilePath == other.FilePath &&
		i.StartOffset <= other.StartOffset &&
		i.EndOffset >= other.EndOffset
}

// Before reports whether i starts before other in document order.
func (i Info) Before(other Info) bool {
	if i.FilePath != other.FilePath {
		return i.FilePath < other.FilePath
	}

	if i.StartLine != other.StartLine {
		return i.StartLine < other.StartLine
	}

	if i.StartColumn != other.StartColumn {
		return i.StartColumn < other.StartColumn
	}

	return i.StartOffset < other.StartOffset
}

// CodeRange derives an undescribed code range from the location.
func (i Info) CodeRange() CodeRange {
	return CodeRange{
		filePath:    i.FilePath,
		startLine:   i.StartLine,
		endLine:     i.EndLine,
		startColumn: i.StartColumn,
		endColumn:   i.EndColumn,
		elementType: i.ElementType,
	}
}

// String renders the location as file:line:col-line:col.
func (i Info) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", i.FilePath, i.StartLine, i.StartColumn, i.EndLine, i.EndColumn)
}
