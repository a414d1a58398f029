package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/genassert/cmd/genassert/commands"
	"go.trai.ch/genassert/internal/app"
	"go.trai.ch/genassert/internal/build"
)

type mockApp struct {
	checkFunc   func(ctx context.Context, paths []string, opts app.CheckOptions) error
	reportsFunc func(ctx context.Context, path string) ([]app.ScenarioSteps, error)
	stepsFunc   func(ctx context.Context, generator string) ([]app.StepInfo, error)
	names       []string
}

func (m *mockApp) Check(ctx context.Context, paths []string, opts app.CheckOptions) error {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, paths, opts)
	}
	return nil
}

func (m *mockApp) StepReports(ctx context.Context, path string) ([]app.ScenarioSteps, error) {
	if m.reportsFunc != nil {
		return m.reportsFunc(ctx, path)
	}
	return nil, nil
}

func (m *mockApp) Steps(ctx context.Context, generator string) ([]app.StepInfo, error) {
	if m.stepsFunc != nil {
		return m.stepsFunc(ctx, generator)
	}
	return nil, nil
}

func (m *mockApp) Generators() []string {
	return m.names
}

func TestCommands_Check(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedPaths []string
		var capturedOpts app.CheckOptions
		called := false

		mock := &mockApp{
			checkFunc: func(_ context.Context, paths []string, opts app.CheckOptions) error {
				capturedPaths = paths
				capturedOpts = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"check", "a.yaml", "b.yaml", "--parallelism", "4"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, []string{"a.yaml", "b.yaml"}, capturedPaths)
		assert.Equal(t, 4, capturedOpts.Parallelism)
	})

	t.Run("defaults to scenarios.yaml", func(t *testing.T) {
		var capturedPaths []string
		mock := &mockApp{
			checkFunc: func(_ context.Context, paths []string, _ app.CheckOptions) error {
				capturedPaths = paths
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"check"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"scenarios.yaml"}, capturedPaths)
	})

	t.Run("returns error on check failure", func(t *testing.T) {
		mock := &mockApp{
			checkFunc: func(_ context.Context, _ []string, _ app.CheckOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"check", "scenarios.yaml"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Steps(t *testing.T) {
	mock := &mockApp{
		reportsFunc: func(_ context.Context, path string) ([]app.ScenarioSteps, error) {
			assert.Equal(t, "testdata/scenarios.yaml", path)
			return []app.ScenarioSteps{
				{Scenario: "emits-model", Report: "models: 1 cached"},
			}, nil
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"steps", "testdata/scenarios.yaml"})

	require.NoError(t, cli.Execute(context.Background()))
	out := buf.String()
	assert.Contains(t, out, "=== emits-model ===")
	assert.Contains(t, out, "models: 1 cached")
}

func TestCommands_Pipeline(t *testing.T) {
	mock := &mockApp{
		stepsFunc: func(_ context.Context, generator string) ([]app.StepInfo, error) {
			assert.Equal(t, "modelgen", generator)
			return []app.StepInfo{
				{Name: "host.sources", Infrastructure: true},
				{Name: "models", Inputs: []string{"host.sources"}},
			}, nil
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"pipeline", "modelgen"})

	require.NoError(t, cli.Execute(context.Background()))
	out := buf.String()
	assert.Contains(t, out, "host.sources (infrastructure)")
	assert.Contains(t, out, "models <- host.sources")
}

func TestCommands_Generators(t *testing.T) {
	cli := commands.New(&mockApp{names: []string{"modelgen", "stampgen"}})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"generators"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "modelgen")
	assert.Contains(t, buf.String(), "stampgen")
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "genassert version "+build.Version)
}
