package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/genassert/gen"
	"go.trai.ch/genassert/internal/core/domain"
)

func writeScenarioFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeScenarioFile(t, t.TempDir(), `
version: "1"
scenarios:
  - name: emits-model
    generator: modelgen
    sources:
      - |
        package demo

        //genassert:model
        type User struct{ Name string }
    expect:
      files: [User.gen.go]
      cached: true
  - name: reports-empty
    generator: modelgen
    sources:
      - |
        package demo

        //genassert:model
        type Empty struct{}
    expect:
      diagnostics:
        - id: MODELGEN001
          severity: warning
`)

	scenarios, err := New().Load(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	first := scenarios[0]
	require.Equal(t, "emits-model", first.Name)
	require.Equal(t, "modelgen", first.Generator)
	require.Len(t, first.Sources, 1)
	require.Contains(t, first.Sources[0], "type User struct")
	require.Equal(t, []string{"User.gen.go"}, first.Expect.Files)
	require.True(t, first.Expect.Cached)

	second := scenarios[1]
	require.False(t, second.Expect.Cached)
	require.Len(t, second.Expect.Diagnostics, 1)
	require.Equal(t, "MODELGEN001", second.Expect.Diagnostics[0].ID)
	require.Equal(t, "warning", second.Expect.Diagnostics[0].Severity)
}

func TestLoadSourceFiles(t *testing.T) {
	dir := t.TempDir()
	src := "package demo\n\n//genassert:model\ntype User struct{ Name string }\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.go.txt"), []byte(src), 0o600))

	path := writeScenarioFile(t, dir, `
scenarios:
  - name: file-backed
    generator: modelgen
    sourceFiles: [user.go.txt]
    expect:
      files: [User.gen.go]
`)

	scenarios, err := New().Load(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	require.Equal(t, []string{src}, scenarios[0].Sources)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "empty file",
			content: "version: \"1\"\n",
			wantErr: domain.ErrNoScenariosDefined,
		},
		{
			name: "missing name",
			content: `
scenarios:
  - generator: modelgen
    sources: ["package demo"]
    expect:
      files: [out.gen.go]
`,
			wantErr: domain.ErrMissingScenarioName,
		},
		{
			name: "missing generator",
			content: `
scenarios:
  - name: s
    sources: ["package demo"]
    expect:
      files: [out.gen.go]
`,
			wantErr: domain.ErrMissingGenerator,
		},
		{
			name: "no sources",
			content: `
scenarios:
  - name: s
    generator: modelgen
    expect:
      files: [out.gen.go]
`,
			wantErr: domain.ErrMissingSources,
		},
		{
			name: "no checks",
			content: `
scenarios:
  - name: s
    generator: modelgen
    sources: ["package demo"]
`,
			wantErr: domain.ErrNoChecksDeclared,
		},
		{
			name: "duplicate name",
			content: `
scenarios:
  - name: s
    generator: modelgen
    sources: ["package demo"]
    expect:
      files: [out.gen.go]
  - name: s
    generator: modelgen
    sources: ["package demo"]
    expect:
      files: [out.gen.go]
`,
			wantErr: domain.ErrDuplicateScenarioName,
		},
		{
			name: "bad severity",
			content: `
scenarios:
  - name: s
    generator: modelgen
    sources: ["package demo"]
    expect:
      diagnostics:
        - id: X1
          severity: fatal
`,
			wantErr: gen.ErrUnknownSeverity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenarioFile(t, t.TempDir(), tt.content)
			_, err := New().Load(path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New().Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read scenario file")
}
