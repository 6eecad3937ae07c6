package diff_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/refminer/pkg/decomposition"
	"github.com/Sumatoshi-tech/refminer/pkg/diff"
	"github.com/Sumatoshi-tech/refminer/pkg/location"
	"github.com/Sumatoshi-tech/refminer/pkg/refactoring"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

type classDef struct {
	name  string
	super string
	ops   []*uml.Operation
}

func model(t *testing.T, classes ...classDef) *uml.Model {
	t.Helper()

	m := uml.NewModel("kotlin")

	for _, def := range classes {
		c := uml.NewClass(def.name, def.name+".kt")
		c.Superclass = def.super

		for _, op := range def.ops {
			c.AddOperation(op)
		}

		require.NoError(t, m.AddClass(c))
	}

	return m
}

// method builds a public operation whose body holds the given statements.
func method(name string, line int, ret string, statements ...string) *uml.Operation {
	op := uml.NewOperation("", name, uml.Public)
	op.Location = location.Info{StartLine: line, EndLine: line + len(statements) + 1, StartColumn: 5}

	if ret != "" {
		op.AddParameter(uml.Parameter{Type: uml.ParseType(ret), Kind: uml.ParameterReturn})
	}

	tree := decomposition.NewTree()
	root := tree.NewComposite(location.Info{StartLine: line, ElementType: location.Block})

	for i, text := range statements {
		root.AddStatement(tree.NewLeaf(location.Info{StartLine: line + i + 1, ElementType: location.ExpressionStatement}, text))
	}

	op.Body = decomposition.NewOperationBody(tree, root)

	return op
}

func withFile(op *uml.Operation, file string) *uml.Operation {
	op.Location.FilePath = file

	return op
}

func detect(t *testing.T, before, after *uml.Model, opts diff.Options) []*refactoring.Refactoring {
	t.Helper()

	refs, err := diff.NewDetector(opts).Detect(context.Background(), before, after)
	require.NoError(t, err)

	return refs
}

func TestDetect_PushDown(t *testing.T) {
	t.Parallel()

	body := []string{"log(\"m\")\n", "counter++\n"}

	before := model(t,
		classDef{name: "Base", ops: []*uml.Operation{withFile(method("m", 3, "void", body...), "Base.kt")}},
		classDef{name: "Derived", super: "Base"},
	)

	moved := withFile(method("m", 7, "void", body...), "Derived.kt")
	after := model(t,
		classDef{name: "Base"},
		classDef{name: "Derived", super: "Base", ops: []*uml.Operation{moved}},
	)

	refs := detect(t, before, after, diff.Options{})
	require.Len(t, refs, 1)

	ref := refs[0]
	assert.Equal(t, refactoring.PushDownOperation, ref.Kind())
	assert.Equal(t,
		"Push Down Method public m() : void from class Base to public m() : void from class Derived",
		ref.String())

	right := ref.RightSide()
	require.Len(t, right, 1)
	assert.Equal(t, "pushed down method declaration", right[0].Description())
	assert.Equal(t, moved.String(), right[0].CodeElement())
	assert.Equal(t, "Derived.kt", right[0].FilePath())
}

func TestDetect_PullUpAndMove(t *testing.T) {
	t.Parallel()

	before := model(t,
		classDef{name: "Top"},
		classDef{name: "Child", super: "Top", ops: []*uml.Operation{
			method("shared", 1, "Int", "val a = load()\n", "return a\n"),
		}},
		classDef{name: "Util", ops: []*uml.Operation{
			method("format", 10, "String", "val s = raw.trim()\n", "return s\n"),
		}},
		classDef{name: "Other"},
	)

	after := model(t,
		classDef{name: "Top", ops: []*uml.Operation{
			method("shared", 1, "Int", "val a = load()\n", "return a\n"),
		}},
		classDef{name: "Child", super: "Top"},
		classDef{name: "Util"},
		classDef{name: "Other", ops: []*uml.Operation{
			method("format", 4, "String", "val s = raw.trim()\n", "return s\n"),
		}},
	)

	refs := detect(t, before, after, diff.Options{Workers: 2})
	require.Len(t, refs, 2)

	kinds := []refactoring.Kind{refs[0].Kind(), refs[1].Kind()}
	assert.ElementsMatch(t, []refactoring.Kind{refactoring.PullUpOperation, refactoring.MoveOperation}, kinds)
}

func TestDetect_RenameAndSignatureChanges(t *testing.T) {
	t.Parallel()

	oldFetch := method("fetch", 1, "Int", "val r = client.get(id)\n", "cache.put(id, r)\n", "return r\n")
	oldFetch.AddParameter(uml.Parameter{Name: "id", Type: uml.ParseType("Int"), Kind: uml.ParameterIn})

	newFetch := method("load", 1, "Int", "val r = client.get(id)\n", "cache.put(id, r)\n", "return r\n")
	newFetch.AddParameter(uml.Parameter{Name: "id", Type: uml.ParseType("Int"), Kind: uml.ParameterIn})

	oldSize := method("size", 20, "Int", "return items.size\n")
	newSize := method("size", 20, "Long", "return items.size\n")

	oldPut := method("put", 30, "", "store(k)\n")
	oldPut.AddParameter(uml.Parameter{Name: "k", Type: uml.ParseType("String"), Kind: uml.ParameterIn})

	newPut := method("put", 30, "", "store(k)\n")
	newPut.AddParameter(uml.Parameter{Name: "k", Type: uml.ParseType("CharSequence"), Kind: uml.ParameterIn})

	before := model(t, classDef{name: "Repo", ops: []*uml.Operation{oldFetch, oldSize, oldPut}})
	after := model(t, classDef{name: "Repo", ops: []*uml.Operation{newFetch, newSize, newPut}})

	refs := detect(t, before, after, diff.Options{})

	var got []refactoring.Kind
	for _, ref := range refs {
		got = append(got, ref.Kind())
	}

	assert.ElementsMatch(t, []refactoring.Kind{
		refactoring.RenameOperation,
		refactoring.ChangeReturnType,
		refactoring.ChangeParameterType,
	}, got)
}

func TestDetect_UnchangedModelsYieldNothing(t *testing.T) {
	t.Parallel()

	build := func() *uml.Model {
		return model(t, classDef{name: "A", ops: []*uml.Operation{method("f", 1, "Int", "return 1\n")}})
	}

	assert.Empty(t, detect(t, build(), build(), diff.Options{}))
}

func TestDetect_DeterministicAcrossWorkers(t *testing.T) {
	t.Parallel()

	build := func(moved bool) *uml.Model {
		var defs []classDef

		for _, name := range []string{"A", "B", "C", "D"} {
			var ops []*uml.Operation

			if !moved {
				ops = append(ops, method("work"+name, 1, "Int", "val v = compute(\""+name+"\")\n", "return v\n"))
			}

			defs = append(defs, classDef{name: name, ops: ops})
			target := classDef{name: "Into" + name}

			if moved {
				target.ops = append(target.ops,
					method("work"+name, 1, "Int", "val v = compute(\""+name+"\")\n", "return v\n"))
			}

			defs = append(defs, target)
		}

		return model(t, defs...)
	}

	serial := detect(t, build(false), build(true), diff.Options{Workers: 1})
	parallel := detect(t, build(false), build(true), diff.Options{Workers: 8})

	require.Len(t, serial, 4)
	require.Len(t, parallel, 4)

	for i := range serial {
		assert.Equal(t, serial[i].String(), parallel[i].String())
	}
}

func TestDetect_FingerprintFloorRejects(t *testing.T) {
	t.Parallel()

	before := model(t,
		classDef{name: "A", ops: []*uml.Operation{method("f", 1, "Int", "a()\n", "b()\n", "return 1\n")}},
		classDef{name: "B"},
	)
	after := model(t,
		classDef{name: "A"},
		classDef{name: "B", ops: []*uml.Operation{method("f", 1, "Int", "a()\n", "b()\n", "return 1\n")}},
	)

	assert.Len(t, detect(t, before, after, diff.Options{FingerprintFloor: 0.5}), 1)

	changed := model(t,
		classDef{name: "A"},
		classDef{name: "B", ops: []*uml.Operation{method("f", 1, "Int", "x()\n", "y()\n", "return 2\n")}},
	)
	assert.Empty(t, detect(t, before, changed, diff.Options{FingerprintFloor: 0.5}))
}

func TestDetect_Errors(t *testing.T) {
	t.Parallel()

	d := diff.NewDetector(diff.Options{})

	_, err := d.Detect(context.Background(), nil, uml.NewModel("kotlin"))
	require.ErrorIs(t, err, diff.ErrNilModel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := model(t, classDef{name: "A", ops: []*uml.Operation{method("f", 1, "Int", "return 1\n")}})

	_, err = d.Detect(ctx, m, m)
	require.ErrorIs(t, err, context.Canceled)
}
