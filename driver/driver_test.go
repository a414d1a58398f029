package driver_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/genassert/compile"
	"go.trai.ch/genassert/driver"
	"go.trai.ch/genassert/gen"
)

// echoGen is a pure generator: one step per concern, content derived only
// from the source texts.
type echoGen struct {
	warnOnce bool
}

func (g *echoGen) Name() string { return "echo" }

func (g *echoGen) Pipeline(p *gen.Pipeline) {
	p.MarkerOutput("echo_markers.gen.go", []byte("package p\n\n// directive: //echo\n"))
	p.Step("models", func(ctx gen.StepContext, in []gen.Value) ([]gen.Value, error) {
		if g.warnOnce {
			ctx.ReportDiagnostic(gen.Diagnostic{ID: "ECHO001", Severity: gen.SeverityWarning, Message: "echoing"})
		}
		return in, nil
	}, gen.StepSources)
	p.Step("render", func(ctx gen.StepContext, in []gen.Value) ([]gen.Value, error) {
		out := make([]gen.Value, 0, len(in))
		for _, v := range in {
			hint := strings.TrimSuffix(v.Key, ".go") + ".gen.go"
			ctx.EmitFile(hint, v.Data)
			out = append(out, gen.Value{Key: hint, Data: v.Data})
		}
		return out, nil
	}, "models")
}

// stampGen captures per-execution state off the compilation itself, so its
// output changes every time the step runs.
type stampGen struct {
	ticks int
}

func (g *stampGen) Name() string { return "stamp" }

func (g *stampGen) Pipeline(p *gen.Pipeline) {
	p.Step("stamp", func(_ gen.StepContext, _ []gen.Value) ([]gen.Value, error) {
		g.ticks++
		return []gen.Value{{Key: "stamp", Data: []byte(fmt.Sprintf("tick-%d", g.ticks))}}, nil
	}, gen.StepCompilation)
}

type pipelineGen struct {
	name     string
	pipeline func(p *gen.Pipeline)
}

func (g *pipelineGen) Name() string            { return g.name }
func (g *pipelineGen) Pipeline(p *gen.Pipeline) { g.pipeline(p) }

func buildUnit(t *testing.T, sources ...string) *compile.Compilation {
	t.Helper()
	c, err := compile.Build(compile.Config{}, sources...)
	require.NoError(t, err)
	return c
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		pipeline func(p *gen.Pipeline)
		want     error
	}{
		{
			name: "empty step name",
			pipeline: func(p *gen.Pipeline) {
				p.Step("", passThrough)
			},
			want: gen.ErrEmptyStepName,
		},
		{
			name: "reserved prefix",
			pipeline: func(p *gen.Pipeline) {
				p.Step("host.models", passThrough)
			},
			want: gen.ErrReservedStepName,
		},
		{
			name: "duplicate step",
			pipeline: func(p *gen.Pipeline) {
				p.Step("models", passThrough)
				p.Step("models", passThrough)
			},
			want: gen.ErrDuplicateStep,
		},
		{
			name: "nil transform",
			pipeline: func(p *gen.Pipeline) {
				p.Step("models", nil)
			},
			want: gen.ErrNilTransform,
		},
		{
			name: "unknown input",
			pipeline: func(p *gen.Pipeline) {
				p.Step("render", passThrough, "models")
			},
			want: gen.ErrUnknownStepInput,
		},
		{
			name: "forward reference",
			pipeline: func(p *gen.Pipeline) {
				p.Step("render", passThrough, "models")
				p.Step("models", passThrough)
			},
			want: gen.ErrUnknownStepInput,
		},
		{
			name: "unbranded marker hint",
			pipeline: func(p *gen.Pipeline) {
				p.MarkerOutput("markers.go", []byte("package p\n"))
			},
			want: gen.ErrUnbrandedMarkerHint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := driver.New(&pipelineGen{name: "bad", pipeline: tt.pipeline})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func passThrough(_ gen.StepContext, in []gen.Value) ([]gen.Value, error) {
	return in, nil
}

func TestDriver_FirstRun_AllNew(t *testing.T) {
	d, err := driver.New(&echoGen{}, driver.WithStepTracking())
	require.NoError(t, err)

	res, err := d.Run(buildUnit(t, "package p\n"))
	require.NoError(t, err)

	for name, outs := range res.Steps {
		for _, out := range outs {
			assert.Equal(t, gen.ReasonNew, out.Reason, "step %s key %s", name, out.Key)
		}
	}
	assert.Equal(t, []string{"src0.gen.go"}, res.GeneratedHints())
	assert.Contains(t, res.AllHints(), "echo_markers.gen.go")
	assert.Equal(t, 1, d.Runs())
}

func TestDriver_TrackingDisabledByDefault(t *testing.T) {
	d, err := driver.New(&echoGen{})
	require.NoError(t, err)

	res, err := d.Run(buildUnit(t, "package p\n"))
	require.NoError(t, err)

	assert.False(t, res.HasTrackedSteps())
	assert.NotEmpty(t, res.Files)
}

func TestDriver_StepError(t *testing.T) {
	g := &pipelineGen{name: "boom", pipeline: func(p *gen.Pipeline) {
		p.Step("explode", func(_ gen.StepContext, _ []gen.Value) ([]gen.Value, error) {
			return nil, assert.AnError
		})
	}}
	d, err := driver.New(g)
	require.NoError(t, err)

	_, err = d.Run(buildUnit(t, "package p\n"))
	require.ErrorIs(t, err, assert.AnError)
}

func TestDriver_CompilerDiagnosticsPassThrough(t *testing.T) {
	d, err := driver.New(&echoGen{})
	require.NoError(t, err)

	res, err := d.Run(buildUnit(t, "package p\n\nvar x = undeclared\n"))
	require.NoError(t, err)

	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, gen.PlatformTypeID, res.Diagnostics[0].ID)
}
