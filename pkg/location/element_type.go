// Package location provides immutable source positions and code ranges for
// statements, expressions and declarations of a program structure model.
package location

import (
	"errors"
	"fmt"
)

// ErrUnknownElementType is returned when a tag name does not denote a CodeElementType.
var ErrUnknownElementType = errors.New("unknown code element type")

// CodeElementType is the closed set of syntactic element tags attached to
// every positioned element.
type CodeElementType uint8

// Code element types.
const (
	TypeUnknown CodeElementType = iota
	TypeDeclaration
	MethodDeclaration
	FieldDeclaration
	SingleVariableDeclaration
	VariableDeclarationStatement
	VariableDeclarationExpression
	VariableDeclarationInitializer
	AnonymousClassDeclaration
	LabeledStatement
	ForStatement
	ForStatementCondition
	ForStatementInitializer
	ForStatementUpdater
	EnhancedForStatement
	EnhancedForStatementParameterName
	EnhancedForStatementExpression
	WhileStatement
	WhileStatementCondition
	IfStatement
	IfStatementCondition
	DoStatement
	DoStatementCondition
	SwitchStatement
	SwitchStatementCondition
	WhenExpression
	WhenExpressionCondition
	SynchronizedStatement
	SynchronizedStatementExpression
	TryStatement
	TryStatementResource
	CatchClause
	CatchClauseExceptionName
	FinallyBlock
	ExpressionStatement
	SwitchCase
	AssertStatement
	ReturnStatement
	ThrowStatement
	ConstructorInvocation
	SuperConstructorInvocation
	BreakStatement
	ContinueStatement
	EmptyStatement
	Block
	LambdaExpressionBody
	Annotation
)

type elementTypeInfo struct {
	tag  string
	name string
}

//nolint:gochecknoglobals // immutable lookup table.
var elementTypes = [...]elementTypeInfo{
	TypeUnknown:                       {"UNKNOWN", "unknown"},
	TypeDeclaration:                   {"TYPE_DECLARATION", "type"},
	MethodDeclaration:                 {"METHOD_DECLARATION", "method"},
	FieldDeclaration:                  {"FIELD_DECLARATION", "field"},
	SingleVariableDeclaration:         {"SINGLE_VARIABLE_DECLARATION", "single-variable-declaration"},
	VariableDeclarationStatement:      {"VARIABLE_DECLARATION_STATEMENT", "variable-declaration"},
	VariableDeclarationExpression:     {"VARIABLE_DECLARATION_EXPRESSION", "variable-declaration"},
	VariableDeclarationInitializer:    {"VARIABLE_DECLARATION_INITIALIZER", "initializer"},
	AnonymousClassDeclaration:         {"ANONYMOUS_CLASS_DECLARATION", "anonymous-class"},
	LabeledStatement:                  {"LABELED_STATEMENT", "label"},
	ForStatement:                      {"FOR_STATEMENT", "for"},
	ForStatementCondition:             {"FOR_STATEMENT_CONDITION", "condition"},
	ForStatementInitializer:           {"FOR_STATEMENT_INITIALIZER", "initializer"},
	ForStatementUpdater:               {"FOR_STATEMENT_UPDATER", "updater"},
	EnhancedForStatement:              {"ENHANCED_FOR_STATEMENT", "enhanced-for"},
	EnhancedForStatementParameterName: {"ENHANCED_FOR_STATEMENT_PARAMETER_NAME", "parameter-name"},
	EnhancedForStatementExpression:    {"ENHANCED_FOR_STATEMENT_EXPRESSION", "expression"},
	WhileStatement:                    {"WHILE_STATEMENT", "while"},
	WhileStatementCondition:           {"WHILE_STATEMENT_CONDITION", "condition"},
	IfStatement:                       {"IF_STATEMENT", "if"},
	IfStatementCondition:              {"IF_STATEMENT_CONDITION", "condition"},
	DoStatement:                       {"DO_STATEMENT", "do"},
	DoStatementCondition:              {"DO_STATEMENT_CONDITION", "condition"},
	SwitchStatement:                   {"SWITCH_STATEMENT", "switch"},
	SwitchStatementCondition:          {"SWITCH_STATEMENT_CONDITION", "condition"},
	WhenExpression:                    {"WHEN_EXPRESSION", "when"},
	WhenExpressionCondition:           {"WHEN_EXPRESSION_CONDITION", "condition"},
	SynchronizedStatement:             {"SYNCHRONIZED_STATEMENT", "synchronized"},
	SynchronizedStatementExpression:   {"SYNCHRONIZED_STATEMENT_EXPRESSION", "expression"},
	TryStatement:                      {"TRY_STATEMENT", "try"},
	TryStatementResource:              {"TRY_STATEMENT_RESOURCE", "resource"},
	CatchClause:                       {"CATCH_CLAUSE", "catch"},
	CatchClauseExceptionName:          {"CATCH_CLAUSE_EXCEPTION_NAME", "exception-name"},
	FinallyBlock:                      {"FINALLY_BLOCK", "finally"},
	ExpressionStatement:               {"EXPRESSION_STATEMENT", "expression"},
	SwitchCase:                        {"SWITCH_CASE", "case"},
	AssertStatement:                   {"ASSERT_STATEMENT", "assert"},
	ReturnStatement:                   {"RETURN_STATEMENT", "return"},
	ThrowStatement:                    {"THROW_STATEMENT", "throw"},
	ConstructorInvocation:             {"CONSTRUCTOR_INVOCATION", "this"},
	SuperConstructorInvocation:        {"SUPER_CONSTRUCTOR_INVOCATION", "super"},
	BreakStatement:                    {"BREAK_STATEMENT", "break"},
	ContinueStatement:                 {"CONTINUE_STATEMENT", "continue"},
	EmptyStatement:                    {"EMPTY_STATEMENT", ";"},
	Block:                             {"BLOCK", "{"},
	LambdaExpressionBody:              {"LAMBDA_EXPRESSION_BODY", "lambda-body"},
	Annotation:                        {"ANNOTATION", "annotation"},
}

// String returns the stable upper-snake tag used in snapshot documents.
func (t CodeElementType) String() string {
	if int(t) >= len(elementTypes) {
		return elementTypes[TypeUnknown].tag
	}

	return elementTypes[t].tag
}

// Name returns the short display name used when rendering composite statements.
func (t CodeElementType) Name() string {
	if int(t) >= len(elementTypes) {
		return elementTypes[TypeUnknown].name
	}

	return elementTypes[t].name
}

// ParseCodeElementType resolves a tag such as "ENHANCED_FOR_STATEMENT".
func ParseCodeElementType(tag string) (CodeElementType, error) {
	for i, info := range elementTypes {
		if i != int(TypeUnknown) && info.tag == tag {
			return CodeElementType(i), nil
		}
	}

	return TypeUnknown, fmt.Errorf("%w: %q", ErrUnknownElementType, tag)
}

// MarshalText implements [encoding.TextMarshaler].
func (t CodeElementType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (t *CodeElementType) UnmarshalText(text []byte) error {
	parsed, err := ParseCodeElementType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
