package snapshot

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/refminer/pkg/decomposition"
	"github.com/Sumatoshi-tech/refminer/pkg/location"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

// ErrContractViolation is wrapped by every error describing input a
// front-end must never produce.
var ErrContractViolation = uml.ErrContractViolation

// Contract violation details.
var (
	errNegativeDepth   = errors.New("negative depth")
	errDepthMismatch   = errors.New("declared depth does not match nesting")
	errUnknownNodeKind = errors.New("unknown node kind")
	errLeafChildren    = errors.New("leaf statement with children")
	errUnknownModifier = errors.New("unknown modifier")
	errUnknownVisible  = errors.New("unknown visibility")
	errCompositeDecl   = errors.New("composite declarations must be attached to its expressions")
)

func violation(where string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrContractViolation, where, err)
}

// Load reads the snapshot at path and builds its model.
func Load(path string, opts Options) (*uml.Model, error) {
	doc, err := ReadFile(path, opts)
	if err != nil {
		return nil, err
	}

	model, err := doc.Build(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return model, nil
}

// Build converts the document into a model. Classes rejected by the
// language or vendor filter are left out.
func (d *Document) Build(opts Options) (*uml.Model, error) {
	model := uml.NewModel(d.Language)

	for i := range d.Classes {
		doc := &d.Classes[i]
		if !accepts(doc.File, opts) {
			continue
		}

		class, err := buildClass(doc)
		if err != nil {
			return nil, err
		}

		if err := model.AddClass(class); err != nil {
			return nil, fmt.Errorf("build model: %w", err)
		}
	}

	return model, nil
}

func accepts(file string, opts Options) bool {
	if file == "" {
		return len(opts.Languages) == 0
	}

	if opts.SkipVendor && enry.IsVendor(file) {
		return false
	}

	if len(opts.Languages) == 0 {
		return true
	}

	lang := enry.GetLanguage(path.Base(file), nil)

	return slices.ContainsFunc(opts.Languages, func(want string) bool {
		return strings.EqualFold(want, lang)
	})
}

func buildClass(doc *ClassDoc) (*uml.Class, error) {
	class := uml.NewClass(doc.Name, doc.File)
	class.Superclass = doc.Superclass
	class.Interfaces = doc.Interfaces
	class.Abstract = doc.Abstract
	class.Interface = doc.Interface
	class.Location = doc.Location.info(doc.File, location.TypeDeclaration)

	for i := range doc.Operations {
		op, err := buildOperation(doc.File, &doc.Operations[i])
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", doc.Name, err)
		}

		class.AddOperation(op)
	}

	return class, nil
}

func buildOperation(file string, doc *OperationDoc) (*uml.Operation, error) {
	where := "operation " + doc.Name

	visibility, err := parseVisibility(doc.Visibility)
	if err != nil {
		return nil, violation(where, err)
	}

	op := uml.NewOperation("", doc.Name, visibility)
	op.Doc = doc.Doc
	op.Annotations = doc.Annotations
	op.EmptyBody = doc.EmptyBody
	op.Location = doc.Location.info(file, location.MethodDeclaration)

	for _, tp := range doc.TypeParameters {
		op.TypeParameters = append(op.TypeParameters, uml.TypeParameter{Name: tp.Name, Bounds: tp.Bounds})
	}

	for _, modifier := range doc.Modifiers {
		if err := applyModifier(&op.Modifiers, modifier); err != nil {
			return nil, violation(where, err)
		}
	}

	returns := 0

	for _, p := range doc.Parameters {
		kind, err := uml.ParseParameterKind(p.Kind)
		if err != nil {
			return nil, violation(where, err)
		}

		if kind == uml.ParameterReturn {
			if returns++; returns > 1 {
				return nil, violation(where, uml.ErrDuplicateReturn)
			}
		}

		param := uml.Parameter{Name: p.Name, Type: uml.ParseType(p.Type), Kind: kind}
		if p.Location != nil {
			param.Location = p.Location.info(file, location.SingleVariableDeclaration)
		}

		op.AddParameter(param)
	}

	if doc.Body != nil {
		body, err := buildBody(file, doc.Body)
		if err != nil {
			return nil, violation(where, err)
		}

		op.Body = body
	}

	return op, nil
}

func parseVisibility(text string) (uml.Visibility, error) {
	switch v := uml.Visibility(text); v {
	case "":
		return uml.Public, nil
	case uml.Public, uml.Protected, uml.Private, uml.Internal, uml.Package:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownVisible, text)
	}
}

func applyModifier(m *uml.Modifiers, modifier string) error {
	switch modifier {
	case "abstract":
		m.Abstract = true
	case "final":
		m.Final = true
	case "static":
		m.Static = true
	case "constructor":
		m.Constructor = true
	default:
		return fmt.Errorf("%w: %q", errUnknownModifier, modifier)
	}

	return nil
}

// bodyBuilder turns a node document into a statement tree.
type bodyBuilder struct {
	tree *decomposition.Tree
	file string
}

func buildBody(file string, root *NodeDoc) (*decomposition.OperationBody, error) {
	if root.Kind != NodeComposite {
		return nil, fmt.Errorf("%w: body root must be a composite, got %q", errUnknownNodeKind, root.Kind)
	}

	b := &bodyBuilder{tree: decomposition.NewTree(), file: file}

	node, err := b.node(root, 0)
	if err != nil {
		return nil, err
	}

	composite, _ := node.(*decomposition.CompositeStatement)

	return decomposition.NewOperationBody(b.tree, composite), nil
}

func (b *bodyBuilder) node(doc *NodeDoc, depth int) (decomposition.Statement, error) {
	typ, err := location.ParseCodeElementType(doc.Type)
	if err != nil {
		return nil, err
	}

	if doc.Depth != nil {
		if *doc.Depth < 0 {
			return nil, fmt.Errorf("%w: %d", errNegativeDepth, *doc.Depth)
		}

		if *doc.Depth != depth {
			return nil, fmt.Errorf("%w: declared %d, nested at %d", errDepthMismatch, *doc.Depth, depth)
		}
	}

	loc := doc.Location.info(b.file, typ)

	switch doc.Kind {
	case NodeLeaf:
		if len(doc.Statements) > 0 || len(doc.Expressions) > 0 {
			return nil, fmt.Errorf("%w: %s", errLeafChildren, loc)
		}

		leaf := b.tree.NewLeaf(loc, doc.Text)
		for _, v := range doc.Variables {
			leaf.AddVariable(v)
		}

		for _, decl := range doc.Declarations {
			leaf.AddVariableDeclaration(b.declaration(decl))
		}

		return leaf, nil
	case NodeComposite:
		return b.composite(doc, loc, depth)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownNodeKind, doc.Kind)
	}
}

func (b *bodyBuilder) composite(doc *NodeDoc, loc location.Info, depth int) (decomposition.Statement, error) {
	composite := b.tree.NewComposite(loc)

	if len(doc.Declarations) > 0 {
		return nil, fmt.Errorf("%w: %s", errCompositeDecl, loc)
	}

	for _, e := range doc.Expressions {
		typ, err := location.ParseCodeElementType(e.Type)
		if err != nil {
			return nil, err
		}

		expr := b.tree.NewExpression(e.Location.info(b.file, typ), e.Text)
		for _, v := range e.Variables {
			expr.AddVariable(v)
		}

		for _, decl := range e.Declarations {
			expr.AddVariableDeclaration(b.declaration(decl))
		}

		composite.AddExpression(expr)
	}

	for i := range doc.Statements {
		child, err := b.node(&doc.Statements[i], depth+1)
		if err != nil {
			return nil, err
		}

		composite.AddStatement(child)
	}

	return composite, nil
}

func (b *bodyBuilder) declaration(doc DeclarationDoc) *decomposition.VariableDeclaration {
	decl := &decomposition.VariableDeclaration{
		Name:        doc.Name,
		Type:        doc.Type,
		Initializer: doc.Initializer,
		Location:    doc.Location.info(b.file, location.VariableDeclarationStatement),
		Parameter:   doc.Parameter,
		Varargs:     doc.Varargs,
	}

	if doc.Scope != nil {
		decl.Scope = doc.Scope.info(b.file, location.TypeUnknown)
	}

	return decl
}
