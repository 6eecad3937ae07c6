package snapshot_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/refminer/pkg/location"
	"github.com/Sumatoshi-tech/refminer/pkg/snapshot"
	"github.com/Sumatoshi-tech/refminer/pkg/uml"
)

func strictOptions() snapshot.Options {
	return snapshot.Options{ValidateSchema: true, SkipVendor: true}
}

func TestLoad_BuildsModel(t *testing.T) {
	t.Parallel()

	model, err := snapshot.Load(filepath.Join("testdata", "before.yaml"), strictOptions())
	require.NoError(t, err)

	assert.Equal(t, "kotlin", model.Language)
	require.Len(t, model.Classes(), 2, "vendored class is skipped")

	base := model.Class("shapes.Base")
	require.NotNil(t, base)
	assert.True(t, base.Abstract)
	assert.True(t, model.IsSubtype("shapes.Circle", "shapes.Base"))

	describe := base.OperationsNamed("describe")
	require.Len(t, describe, 1)

	op := describe[0]
	assert.Equal(t, "shapes.Base", op.ClassName)
	assert.Equal(t, "public describe(prefix String) : String", op.String())
	assert.Equal(t, "src/shapes/Base.kt", op.Location.FilePath)
	assert.Equal(t, location.MethodDeclaration, op.Location.ElementType)

	params := op.NonReturnParameters()
	require.Len(t, params, 1)
	assert.Equal(t, 18, params[0].Location.StartColumn)

	assert.Len(t, op.Body.Leaves(), 3)
	assert.Equal(t, 4, op.Body.StatementCount())

	decl := op.Body.VariableDeclaration("label")
	require.NotNil(t, decl)
	assert.Equal(t, "String", decl.Type)

	area := base.OperationsNamed("area")[0]
	assert.True(t, area.IsAbstract())
	assert.True(t, area.HasEmptyBody())
}

func TestLoad_LanguageFilter(t *testing.T) {
	t.Parallel()

	opts := strictOptions()
	opts.Languages = []string{"java"}

	model, err := snapshot.Load(filepath.Join("testdata", "before.yaml"), opts)
	require.NoError(t, err)
	assert.Empty(t, model.Classes())

	opts.Languages = []string{"Kotlin"}
	opts.SkipVendor = false

	model, err = snapshot.Load(filepath.Join("testdata", "before.yaml"), opts)
	require.NoError(t, err)
	assert.Len(t, model.Classes(), 3)
}

func TestLoad_SchemaViolation(t *testing.T) {
	t.Parallel()

	_, err := snapshot.Load(filepath.Join("testdata", "invalid.yaml"), strictOptions())
	require.ErrorIs(t, err, snapshot.ErrSchemaViolation)
	assert.Contains(t, err.Error(), "visibility")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := snapshot.Load(filepath.Join("testdata", "absent.yaml"), strictOptions())
	require.Error(t, err)
}

func TestParse_JSON(t *testing.T) {
	t.Parallel()

	doc, err := snapshot.Parse([]byte(`{"language": "java", "classes": [{"name": "A", "file": "A.java", "operations": [{"name": "run", "parameters": [{"kind": "return", "type": "void"}]}]}]}`), strictOptions())
	require.NoError(t, err)

	model, err := doc.Build(snapshot.Options{Languages: []string{"Java"}})
	require.NoError(t, err)
	require.NotNil(t, model.Class("A"))
	assert.Equal(t, uml.Public, model.Class("A").Operations()[0].Visibility)
}

func TestBuild_ContractViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"two returns", `
language: kotlin
classes:
  - name: A
    operations:
      - name: f
        parameters: [{kind: return, type: Int}, {kind: return, type: Long}]
`},
		{"negative depth", `
language: kotlin
classes:
  - name: A
    operations:
      - name: f
        body: {kind: composite, type: BLOCK, depth: -1}
`},
		{"depth mismatch", `
language: kotlin
classes:
  - name: A
    operations:
      - name: f
        body:
          kind: composite
          type: BLOCK
          statements: [{kind: leaf, type: RETURN_STATEMENT, text: "return\n", depth: 3}]
`},
		{"unknown element type", `
language: kotlin
classes:
  - name: A
    operations:
      - name: f
        body: {kind: composite, type: GOTO_STATEMENT}
`},
		{"unknown parameter kind", `
language: kotlin
classes:
  - name: A
    operations:
      - name: f
        parameters: [{kind: inout, type: Int}]
`},
		{"unknown modifier", `
language: kotlin
classes:
  - name: A
    operations:
      - name: f
        modifiers: [sealed]
`},
		{"leaf with children", `
language: kotlin
classes:
  - name: A
    operations:
      - name: f
        body:
          kind: composite
          type: BLOCK
          statements:
            - {kind: leaf, type: RETURN_STATEMENT, statements: [{kind: leaf, type: RETURN_STATEMENT}]}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := snapshot.Parse([]byte(tt.body), snapshot.Options{})
			require.NoError(t, err)

			_, err = doc.Build(snapshot.Options{})
			require.ErrorIs(t, err, snapshot.ErrContractViolation)
			require.ErrorIs(t, err, uml.ErrContractViolation)
		})
	}
}

func TestBuild_DuplicateClass(t *testing.T) {
	t.Parallel()

	doc, err := snapshot.Parse([]byte("language: kotlin\nclasses: [{name: A}, {name: A}]\n"), strictOptions())
	require.NoError(t, err)

	_, err = doc.Build(snapshot.Options{})
	require.ErrorIs(t, err, uml.ErrDuplicateClass)
}

func TestValidate_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	err := snapshot.Validate([]byte("language: kotlin\nclasses: []\nrevision: abc\n"))
	require.ErrorIs(t, err, snapshot.ErrSchemaViolation)

	require.NoError(t, snapshot.Validate([]byte("language: kotlin\nclasses: []\n")))
	assert.NotEmpty(t, snapshot.Schema())
}
