package hcl_adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/nodegraph/internal/config"
	"github.com/specialistvlad/nodegraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const substringGraph = `
constant "cs" {
  value = "Hello World"
}

operation "m2" {
  target = string
  call   = "substring"
  inputs = ["cs", "ci", "ce"]
}

constant "ci" {
  value = 2
}

constant "ce" {
  value = 7
}
`

func names(m *config.Model) []string {
	out := make([]string, 0, len(m.Nodes))
	for _, n := range m.Nodes {
		out = append(out, n.Name)
	}
	return out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParse_KeepsDeclarationOrder(t *testing.T) {
	ctx, _ := testutil.LogContext(t)

	model, err := NewLoader().Parse(ctx, []byte(substringGraph), "graph.hcl")
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"cs", "m2", "ci", "ce"}, names(model)); diff != "" {
		t.Errorf("node order mismatch (-want +got):\n%s", diff)
	}

	cs := model.Nodes[0]
	assert.Equal(t, config.ConstantKind, cs.Kind)
	assert.True(t, cs.Value.RawEquals(cty.StringVal("Hello World")))

	m2 := model.Nodes[1]
	assert.Equal(t, config.OperationKind, m2.Kind)
	assert.True(t, m2.Target.Equals(cty.String))
	assert.Equal(t, "substring", m2.Call)
	assert.Equal(t, []string{"cs", "ci", "ce"}, m2.Inputs)
	assert.Equal(t, "graph.hcl", m2.DeclRange.Filename)
	assert.Equal(t, 6, m2.DeclRange.Start.Line)

	ci := model.Nodes[2]
	assert.True(t, ci.Value.RawEquals(cty.NumberIntVal(2)))
}

func TestParse_ComplexTargetAndValues(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	src := `
constant "xs" {
  value = ["a", "b"]
}
operation "op" {
  target = list(string)
  call   = "length"
  inputs = ["xs"]
}
`
	model, err := NewLoader().Parse(ctx, []byte(src), "graph.hcl")
	require.NoError(t, err)
	require.Len(t, model.Nodes, 2)

	assert.True(t, model.Nodes[0].Value.Type().IsTupleType())
	assert.True(t, model.Nodes[1].Target.Equals(cty.List(cty.String)))
}

func TestParse_OperationWithoutInputs(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	src := `
operation "lonely" {
  target = string
  call   = "upper"
}
`
	model, err := NewLoader().Parse(ctx, []byte(src), "graph.hcl")
	require.NoError(t, err)
	require.Len(t, model.Nodes, 1)
	assert.Empty(t, model.Nodes[0].Inputs)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `constant "a" {`,
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			src:     `widget "a" {}`,
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "missing value",
			src:     `constant "a" {}`,
			wantErr: `constant "a": missing required argument "value"`,
		},
		{
			name: "missing target",
			src: `operation "a" {
  call = "upper"
}`,
			wantErr: `operation "a": missing required argument "target"`,
		},
		{
			name:    "value references a variable",
			src:     `constant "a" { value = other }`,
			wantErr: `constant "a"`,
		},
		{
			name:    "null value",
			src:     `constant "a" { value = null }`,
			wantErr: "must not be null",
		},
		{
			name: "invalid target",
			src: `operation "a" {
  target = "string"
  call   = "upper"
}`,
			wantErr: "invalid type expression",
		},
		{
			name: "any target",
			src: `operation "a" {
  target = any
  call   = "upper"
}`,
			wantErr: "must be a concrete type",
		},
		{
			name: "empty call",
			src: `operation "a" {
  target = string
  call   = ""
}`,
			wantErr: "call must not be empty",
		},
		{
			name: "duplicate names",
			src: `constant "a" { value = 1 }
constant "a" { value = 2 }`,
			wantErr: "Duplicate node name",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := testutil.LogContext(t)
			_, err := NewLoader().Parse(ctx, []byte(tc.src), "graph.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestParse_DuplicateIsDiagnostic(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	src := `constant "a" { value = 1 }
constant "a" { value = 2 }`

	_, err := NewLoader().Parse(ctx, []byte(src), "graph.hcl")
	require.Error(t, err)

	var diags hcl.Diagnostics
	require.ErrorAs(t, err, &diags)
	require.Len(t, diags, 1)
	require.NotNil(t, diags[0].Subject)
	assert.Equal(t, 2, diags[0].Subject.Start.Line)
}

func TestLoad_DirectoryMergesFiles(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `constant "x" { value = "abc" }`)
	writeFile(t, dir, "nested/b.hcl", `operation "y" {
  target = string
  call   = "upper"
  inputs = ["x"]
}`)
	writeFile(t, dir, "notes.txt", `not a graph`)

	model, err := NewLoader().Load(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, names(model))
}

func TestLoad_SameFileTwiceIsReadOnce(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	dir := t.TempDir()
	p := writeFile(t, dir, "a.hcl", `constant "x" { value = 1 }`)

	model, err := NewLoader().Load(ctx, p, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, names(model))
}

func TestLoad_DuplicateAcrossFiles(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `constant "x" { value = 1 }`)
	writeFile(t, dir, "b.hcl", `constant "x" { value = 2 }`)

	_, err := NewLoader().Load(ctx, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Duplicate node name")
}

func TestLoad_Errors(t *testing.T) {
	ctx, _ := testutil.LogContext(t)
	dir := t.TempDir()
	txt := writeFile(t, dir, "graph.txt", `constant "x" { value = 1 }`)
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))

	_, err := NewLoader().Load(ctx)
	assert.ErrorContains(t, err, "no graph paths")

	_, err = NewLoader().Load(ctx, filepath.Join(dir, "missing.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewLoader().Load(ctx, txt)
	assert.ErrorContains(t, err, "extension")

	_, err = NewLoader().Load(ctx, empty)
	assert.ErrorContains(t, err, "no .hcl files")
}
