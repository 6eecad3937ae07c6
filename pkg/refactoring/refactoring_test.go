package refactoring_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
	"github.com/Sumatoshi-tech/refminer/pkg/mapper"
	"github.com/Sumatoshi-tech/refminer/pkg/refactoring"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

type fakeContext struct {
	subtypes map[[2]string]bool
	declares map[string]bool
}

func (c fakeContext) IsSubtypeAfter(sub, super string) bool {
	return c.subtypes[[2]string{sub, super}]
}

func (c fakeContext) DeclaresEquivalentAfter(className string, _ *uml.Operation) bool {
	return c.declares[className]
}

func op(class, name string, line int, params ...uml.Parameter) *uml.Operation {
	o := uml.NewOperation(class, name, uml.Public)
	o.Location = location.Info{FilePath: class + ".kt", StartLine: line, EndLine: line + 2, StartColumn: 5}

	for _, p := range params {
		o.AddParameter(p)
	}

	return o
}

func ret(typ string) uml.Parameter {
	return uml.Parameter{Type: uml.ParseType(typ), Kind: uml.ParameterReturn}
}

func in(name, typ string) uml.Parameter {
	return uml.Parameter{Name: name, Type: uml.ParseType(typ), Kind: uml.ParameterIn}
}

func TestKind(t *testing.T) {
	t.Parallel()

	kinds := refactoring.Kinds()
	require.Len(t, kinds, 8)
	assert.Equal(t, refactoring.PushDownOperation, kinds[0])
	assert.Equal(t, "Push Down Method", refactoring.PushDownOperation.String())
	assert.Equal(t, "PULL_UP_OPERATION", refactoring.PullUpOperation.Tag())
	assert.Less(t, refactoring.PushDownOperation.Priority(), refactoring.MoveOperation.Priority())

	for _, k := range kinds {
		parsed, err := refactoring.ParseKind(k.Tag())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := refactoring.ParseKind("EXTRACT_CLASS")
	require.ErrorIs(t, err, refactoring.ErrUnknownKind)
}

func TestClassify_PushDown(t *testing.T) {
	t.Parallel()

	original := op("Base", "m", 10, ret("void"))
	moved := op("Derived", "m", 20, ret("void"))
	ctx := fakeContext{subtypes: map[[2]string]bool{{"Derived", "Base"}: true}}

	r, ok := refactoring.Classify(refactoring.NewOperationMoveFromPair(original, moved), ctx)
	require.True(t, ok)
	assert.Equal(t, refactoring.PushDownOperation, r.Kind())
	assert.Equal(t,
		"Push Down Method public m() : void from class Base to public m() : void from class Derived",
		r.String())

	right := r.RightSide()
	require.Len(t, right, 1)
	assert.Equal(t, "pushed down method declaration", right[0].Description())
	assert.Equal(t, moved.String(), right[0].CodeElement())
	assert.Equal(t, "Derived.kt", right[0].FilePath())

	left := r.LeftSide()
	require.Len(t, left, 1)
	assert.Equal(t, "original method declaration", left[0].Description())
	assert.Equal(t, []string{"Base"}, r.InvolvedClassesBefore())
	assert.Equal(t, []string{"Derived"}, r.InvolvedClassesAfter())
}

func TestClassify_PushDownBlockedWhenOriginalStillDeclares(t *testing.T) {
	t.Parallel()

	original := op("Base", "m", 10)
	moved := op("Derived", "m", 20)
	ctx := fakeContext{
		subtypes: map[[2]string]bool{{"Derived", "Base"}: true},
		declares: map[string]bool{"Base": true},
	}

	r, ok := refactoring.Classify(refactoring.NewOperationMoveFromPair(original, moved), ctx)
	require.True(t, ok)
	assert.Equal(t, refactoring.MoveOperation, r.Kind())
	assert.Equal(t, "moved method declaration", r.RightSide()[0].Description())
}

func TestClassify_Priority(t *testing.T) {
	t.Parallel()

	up := fakeContext{subtypes: map[[2]string]bool{{"Derived", "Base"}: true}}

	tests := []struct {
		name     string
		original *uml.Operation
		moved    *uml.Operation
		want     refactoring.Kind
		desc     string
	}{
		{"pull up", op("Derived", "m", 1), op("Base", "m", 1), refactoring.PullUpOperation,
			"pulled up method declaration"},
		{"move and rename", op("A", "m", 1), op("B", "n", 1), refactoring.MoveAndRenameOperation,
			"moved and renamed method declaration"},
		{"move", op("A", "m", 1), op("B", "m", 1), refactoring.MoveOperation, "moved method declaration"},
		{"rename", op("A", "m", 1), op("A", "n", 1), refactoring.RenameOperation, "renamed method declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, ok := refactoring.Classify(refactoring.NewOperationMoveFromPair(tt.original, tt.moved), up)
			require.True(t, ok)
			assert.Equal(t, tt.want, r.Kind())
			assert.Equal(t, tt.desc, r.RightSide()[0].Description())
		})
	}

	_, ok := refactoring.Classify(refactoring.NewOperationMoveFromPair(op("A", "m", 1), op("A", "m", 2)), up)
	assert.False(t, ok)
}

func TestRename_Rendering(t *testing.T) {
	t.Parallel()

	r, ok := refactoring.Classify(
		refactoring.NewOperationMoveFromPair(op("A", "m", 1, ret("Int")), op("A", "n", 1, ret("Int"))),
		fakeContext{})
	require.True(t, ok)
	assert.Equal(t, "Rename Method public m() : Int renamed to public n() : Int in class A", r.String())
}

func TestNewPushDownFromPair(t *testing.T) {
	t.Parallel()

	r := refactoring.NewPushDownFromPair(op("Base", "m", 1), op("Derived", "m", 2))
	assert.Equal(t, refactoring.PushDownOperation, r.Kind())
	assert.Equal(t, "public m()", r.RightSide()[0].CodeElement())
}

func TestNewPushDown_FromMapper(t *testing.T) {
	t.Parallel()

	original := op("Base", "m", 10, ret("void"))
	moved := op("Derived", "m", 20, ret("void"))
	m := mapper.New(original, moved, mapper.DefaultOptions())

	direct := refactoring.NewPushDown(m)
	assert.Equal(t, refactoring.PushDownOperation, direct.Kind())
	assert.Equal(t, []string{"Base"}, direct.InvolvedClassesBefore())
	assert.Equal(t, []string{"Derived"}, direct.InvolvedClassesAfter())

	ctx := fakeContext{subtypes: map[[2]string]bool{{"Derived", "Base"}: true}}

	classified, ok := refactoring.Classify(refactoring.NewOperationMove(m), ctx)
	require.True(t, ok)
	assert.Equal(t, direct.String(), classified.String())
	assert.Equal(t, direct.RightSide(), classified.RightSide())
	assert.Equal(t, refactoring.NewPushDownFromPair(original, moved).String(), classified.String())
}

func TestSignatureChanges(t *testing.T) {
	t.Parallel()

	before := op("A", "f", 1, in("x", "Int"), in("y", "String"), ret("Int"))
	after := op("A", "f", 1, in("x", "Long"), in("z", "String"), ret("Long"))

	changes := refactoring.SignatureChanges(before, after)
	require.Len(t, changes, 3)

	assert.Equal(t, refactoring.ChangeReturnType, changes[0].Kind())
	assert.Equal(t, "Change Return Type Int to Long in method public f(x Long, z String) : Long from class A",
		changes[0].String())
	assert.Equal(t, "changed return type", changes[0].RightSide()[0].Description())

	assert.Equal(t, refactoring.ChangeParameterType, changes[1].Kind())
	assert.Equal(t, "x Int", changes[1].LeftSide()[0].CodeElement())
	assert.Equal(t, "changed-type variable declaration", changes[1].RightSide()[0].Description())

	assert.Equal(t, refactoring.RenameParameter, changes[2].Kind())
	assert.Equal(t, "z String", changes[2].RightSide()[0].CodeElement())

	assert.Empty(t, refactoring.SignatureChanges(before, op("A", "f", 1, in("x", "Int"), ret("Int"))))
}

func TestSort(t *testing.T) {
	t.Parallel()

	late := refactoring.NewPushDownFromPair(op("Base", "m", 30), op("Derived", "m", 1))
	early := refactoring.NewPullUp(op("Base", "n", 5), op("Top", "n", 1))
	other := refactoring.NewPullUp(op("Alpha", "k", 50), op("Top", "k", 1))

	list := []*refactoring.Refactoring{late, early, other}
	refactoring.Sort(list)

	assert.Equal(t, []*refactoring.Refactoring{other, early, late}, list)
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	r := refactoring.NewPushDownFromPair(op("Base", "m", 1), op("Derived", "m", 2))

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "PUSH_DOWN_OPERATION", decoded["type"])
	assert.Equal(t, "Push Down Method", decoded["name"])
	assert.Len(t, decoded["rightSide"], 1)
}
