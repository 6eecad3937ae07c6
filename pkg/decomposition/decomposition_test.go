package decomposition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/refminer/pkg/decomposition"
	"github.com/Sumatoshi-tech/refminer/pkg/location"
)

func at(typ location.CodeElementType, start, end int) location.Info {
	return location.Info{FilePath: "A.kt", StartOffset: start, EndOffset: end, StartLine: start, EndLine: end,
		ElementType: typ}
}

func TestAddStatement_DepthAndIndex(t *testing.T) {
	t.Parallel()

	tree := decomposition.NewTree()
	root := tree.NewComposite(at(location.Block, 0, 100))
	ifStmt := tree.NewComposite(at(location.IfStatement, 10, 50))
	block := tree.NewComposite(at(location.Block, 12, 50))
	leaf := tree.NewLeaf(at(location.ExpressionStatement, 20, 25), "call();\n")
	cond := tree.NewExpression(at(location.IfStatementCondition, 11, 12), "x > 0")

	// Inner subtree is built before it is attached to the root.
	block.AddStatement(leaf)
	ifStmt.AddExpression(cond)
	ifStmt.AddStatement(block)

	first := tree.NewLeaf(at(location.ExpressionStatement, 1, 5), "a();\n")
	root.AddStatement(first)
	root.AddStatement(ifStmt)

	assert.Equal(t, 0, root.Depth())
	assert.Equal(t, 1, first.Depth())
	assert.Equal(t, 0, first.Index())
	assert.Equal(t, 1, ifStmt.Depth())
	assert.Equal(t, 1, ifStmt.Index())
	assert.Equal(t, 2, block.Depth())
	assert.Equal(t, 3, leaf.Depth())
	assert.Equal(t, ifStmt.Depth(), cond.Depth())
	assert.Equal(t, ifStmt.Index(), cond.Index())

	assert.Same(t, ifStmt, tree.Parent(block))
	assert.Same(t, ifStmt, tree.Parent(cond))
	assert.Nil(t, tree.Parent(root))
	assert.True(t, tree.IsAncestor(root, leaf))
	assert.Equal(t, []*decomposition.CompositeStatement{block, ifStmt, root}, tree.Ancestors(leaf))
}

func TestAddStatement_ContractViolations(t *testing.T) {
	t.Parallel()

	tree := decomposition.NewTree()
	other := decomposition.NewTree()
	root := tree.NewComposite(at(location.Block, 0, 10))
	leaf := tree.NewLeaf(at(location.ExpressionStatement, 1, 2), "a();\n")

	root.AddStatement(leaf)

	assertViolation := func(fn func()) {
		defer func() {
			recovered := recover()
			require.NotNil(t, recovered)

			err, ok := recovered.(error)
			require.True(t, ok)
			require.ErrorIs(t, err, decomposition.ErrContractViolation)
		}()

		fn()
	}

	assertViolation(func() { root.AddStatement(leaf) })
	assertViolation(func() { root.AddStatement(other.NewLeaf(at(location.ExpressionStatement, 1, 2), "b();\n")) })
	assertViolation(func() { root.AddStatement(root) })
	assertViolation(func() { root.AddExpression(other.NewExpression(at(location.IfStatementCondition, 1, 2), "x")) })
}

func TestInnerNodes_EndsWithSelf(t *testing.T) {
	t.Parallel()

	tree := decomposition.NewTree()
	root := tree.NewComposite(at(location.Block, 0, 100))
	loop := tree.NewComposite(at(location.WhileStatement, 1, 50))
	body := tree.NewComposite(at(location.Block, 2, 50))
	tail := tree.NewComposite(at(location.TryStatement, 60, 90))

	loop.AddStatement(body)
	root.AddStatement(loop)
	root.AddStatement(tail)

	nodes := root.InnerNodes()
	assert.Equal(t, []*decomposition.CompositeStatement{body, loop, tail, root}, nodes)
	assert.Same(t, root, nodes[len(nodes)-1])
	assert.Subset(t, nodes, loop.InnerNodes())
}

func TestContains_DispatchesByKind(t *testing.T) {
	t.Parallel()

	tree := decomposition.NewTree()
	root := tree.NewComposite(at(location.Block, 0, 100))
	ifStmt := tree.NewComposite(at(location.IfStatement, 1, 50))
	cond := tree.NewExpression(at(location.IfStatementCondition, 2, 3), "ok")
	leaf := tree.NewLeaf(at(location.ReturnStatement, 4, 5), "return;\n")
	stray := tree.NewLeaf(at(location.ReturnStatement, 60, 61), "return;\n")

	ifStmt.AddExpression(cond)
	ifStmt.AddStatement(leaf)
	root.AddStatement(ifStmt)

	assert.True(t, root.Contains(leaf))
	assert.True(t, root.Contains(ifStmt))
	assert.True(t, root.Contains(root))
	assert.False(t, root.Contains(cond), "expressions are looked up locally only")
	assert.True(t, ifStmt.Contains(cond))
	assert.False(t, root.Contains(stray))
	assert.False(t, root.Contains(nil))

	var nilLeaf *decomposition.LeafStatement

	assert.False(t, root.Contains(nilLeaf))
}

func TestStatementCount(t *testing.T) {
	t.Parallel()

	tree := decomposition.NewTree()
	root := tree.NewComposite(at(location.Block, 0, 100))
	ifStmt := tree.NewComposite(at(location.IfStatement, 1, 50))
	ifStmt.AddExpression(tree.NewExpression(at(location.IfStatementCondition, 2, 3), "ok"))
	ifStmt.AddStatement(tree.NewLeaf(at(location.ExpressionStatement, 4, 5), "a();\n"))
	root.AddStatement(ifStmt)
	root.AddStatement(tree.NewLeaf(at(location.EmptyStatement, 60, 61), ";\n"))

	// Root block is not counted, the if and its leaf are, the empty statement is not.
	assert.Equal(t, 2, root.StatementCount())
	assert.Equal(t, "if(ok)", ifStmt.String())
}

func TestAliasedAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		leaves []string
		want   decomposition.Aliases
	}{
		{
			name:   "two attributes share a value",
			leaves: []string{"this.a = x;\n", "this.b = x;\n"},
			want:   decomposition.Aliases{{Value: "x", Attributes: []string{"a", "b"}}},
		},
		{
			name:   "compact rendering",
			leaves: []string{"this.a=x;\n", "this.c=y;\n", "this.b=x;\n"},
			want:   decomposition.Aliases{{Value: "x", Attributes: []string{"a", "b"}}},
		},
		{
			name:   "single assignment",
			leaves: []string{"this.a = x;\n"},
		},
		{
			name:   "missing trailing newline",
			leaves: []string{"this.a = x;", "this.b = x;"},
		},
		{
			name:   "not a field assignment",
			leaves: []string{"a = x;\n", "b = x;\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := decomposition.NewTree()
			root := tree.NewComposite(at(location.Block, 0, 100))

			for i, text := range tt.leaves {
				root.AddStatement(tree.NewLeaf(at(location.ExpressionStatement, i+1, i+2), text))
			}

			got := root.AliasedAttributes()
			assert.Equal(t, tt.want, got)

			if len(tt.want) > 0 {
				attrs, ok := got.Lookup("x")
				require.True(t, ok)
				assert.Equal(t, []string{"a", "b"}, attrs)
			}
		})
	}
}

func TestLoopWithVariables(t *testing.T) {
	t.Parallel()

	tree := decomposition.NewTree()
	root := tree.NewComposite(at(location.Block, 0, 100))
	loop := tree.NewComposite(at(location.EnhancedForStatement, 10, 50))

	param := tree.NewExpression(at(location.EnhancedForStatementParameterName, 11, 15), "item")
	param.AddVariableDeclaration(&decomposition.VariableDeclaration{Name: "item", Scope: at(location.EnhancedForStatement, 10, 50)})

	coll := tree.NewExpression(at(location.EnhancedForStatementExpression, 19, 23), "list")
	coll.AddVariable("list")

	loop.AddExpression(param)
	loop.AddExpression(coll)
	loop.AddStatement(tree.NewComposite(at(location.Block, 24, 50)))
	root.AddStatement(loop)

	assert.Same(t, loop, root.LoopWithVariables("item", "list"))
	assert.Nil(t, root.LoopWithVariables("item", "other"))
	assert.Nil(t, root.LoopWithVariables("elem", "list"))
	assert.True(t, loop.IsLoop())
	assert.False(t, root.IsLoop())
}

func TestLoopWithVariables_NestedReturnsInnermost(t *testing.T) {
	t.Parallel()

	tree := decomposition.NewTree()

	loop := func(start, end int) *decomposition.CompositeStatement {
		l := tree.NewComposite(at(location.EnhancedForStatement, start, end))

		param := tree.NewExpression(at(location.EnhancedForStatementParameterName, start+1, start+5), "item")
		param.AddVariableDeclaration(&decomposition.VariableDeclaration{Name: "item"})

		coll := tree.NewExpression(at(location.EnhancedForStatementExpression, start+6, start+9), "list")
		coll.AddVariable("list")

		l.AddExpression(param)
		l.AddExpression(coll)

		return l
	}

	root := tree.NewComposite(at(location.Block, 0, 100))
	outer := loop(10, 90)
	inner := loop(20, 80)

	outer.AddStatement(inner)
	root.AddStatement(outer)

	assert.Same(t, inner, root.LoopWithVariables("item", "list"))
	assert.Same(t, inner, outer.LoopWithVariables("item", "list"))
}

func TestLoopWithVariables_IndexedCollection(t *testing.T) {
	t.Parallel()

	tree := decomposition.NewTree()
	root := tree.NewComposite(at(location.Block, 0, 100))
	loop := tree.NewComposite(at(location.ForStatement, 10, 80))

	cond := tree.NewExpression(at(location.ForStatementCondition, 11, 30), "i < list.size")
	cond.AddVariable("i")
	cond.AddVariable("list")

	body := tree.NewComposite(at(location.Block, 31, 80))
	get := tree.NewLeaf(at(location.VariableDeclarationStatement, 32, 50), "val item = list[i]\n")
	get.AddVariable("list")
	get.AddVariable("i")
	get.AddVariableDeclaration(&decomposition.VariableDeclaration{Name: "item", Scope: at(location.Block, 32, 80)})

	body.AddStatement(get)
	loop.AddExpression(cond)
	loop.AddStatement(body)
	root.AddStatement(loop)

	assert.Same(t, loop, root.LoopWithVariables("item", "list"))
	assert.Nil(t, root.LoopWithVariables("item", "items"))
}

func TestVariableDeclarationsInScope(t *testing.T) {
	t.Parallel()

	tree := decomposition.NewTree()
	root := tree.NewComposite(at(location.Block, 0, 100))
	outer := &decomposition.VariableDeclaration{Name: "a", Type: "Int", Scope: at(location.Block, 0, 100)}
	inner := &decomposition.VariableDeclaration{Name: "b", Type: "Int", Scope: at(location.Block, 40, 60)}

	first := tree.NewLeaf(at(location.VariableDeclarationStatement, 1, 10), "val a = 1\n")
	first.AddVariableDeclaration(outer)

	block := tree.NewComposite(at(location.Block, 40, 60))
	second := tree.NewLeaf(at(location.VariableDeclarationStatement, 41, 50), "val b = a\n")
	second.AddVariableDeclaration(inner)
	block.AddStatement(second)

	root.AddStatement(first)
	root.AddStatement(block)

	body := decomposition.NewOperationBody(tree, root)

	assert.Equal(t, []*decomposition.VariableDeclaration{outer, inner}, body.VariableDeclarationsInScope(at(location.ReturnStatement, 45, 46)))
	assert.Equal(t, []*decomposition.VariableDeclaration{outer}, body.VariableDeclarationsInScope(at(location.ReturnStatement, 70, 71)))
	assert.Same(t, inner, body.VariableDeclaration("b"))
	assert.Nil(t, body.VariableDeclaration("missing"))
}

func TestOperationBody_NilIsEmpty(t *testing.T) {
	t.Parallel()

	var body *decomposition.OperationBody

	assert.True(t, body.IsEmpty())
	assert.Empty(t, body.Leaves())
	assert.Zero(t, body.StatementCount())
	assert.Nil(t, body.LoopWithVariables("a", "b"))
	assert.False(t, body.Contains(nil))
}
