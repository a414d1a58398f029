package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/genassert/driver"
	"go.trai.ch/genassert/gen"
)

func TestDriver_SecondRunOnClone_PureGeneratorIsClean(t *testing.T) {
	d, err := driver.New(&echoGen{}, driver.WithStepTracking())
	require.NoError(t, err)

	unit := buildUnit(t, "package p\n\ntype T struct{}\n")
	_, err = d.Run(unit)
	require.NoError(t, err)

	second, err := d.Run(unit.Clone())
	require.NoError(t, err)

	// The clone carries a fresh identity, so the compilation step is modified.
	require.Contains(t, second.Steps, gen.StepCompilation)
	assert.Equal(t, gen.ReasonModified, second.Steps[gen.StepCompilation][0].Reason)

	// Content did not change, so sources are unchanged and every generator
	// step is served from cache.
	for _, out := range second.Steps[gen.StepSources] {
		assert.Equal(t, gen.ReasonUnchanged, out.Reason)
	}
	for name, outs := range second.UserSteps() {
		for _, out := range outs {
			assert.True(t, out.Reason.IsClean(), "step %s key %s got %s", name, out.Key, out.Reason)
		}
	}
	assert.Equal(t, 2, d.Runs())
}

func TestDriver_SecondRunOnClone_ReplaysEmissions(t *testing.T) {
	d, err := driver.New(&echoGen{warnOnce: true}, driver.WithStepTracking())
	require.NoError(t, err)

	unit := buildUnit(t, "package p\n")
	first, err := d.Run(unit)
	require.NoError(t, err)

	second, err := d.Run(unit.Clone())
	require.NoError(t, err)

	// Cached steps replay their files and diagnostics.
	assert.Equal(t, first.AllHints(), second.AllHints())
	require.Len(t, second.GeneratorDiagnostics(), 1)
	assert.Equal(t, "ECHO001", second.GeneratorDiagnostics()[0].ID)
}

func TestDriver_SecondRunOnClone_ImpureStepIsModified(t *testing.T) {
	d, err := driver.New(&stampGen{}, driver.WithStepTracking())
	require.NoError(t, err)

	unit := buildUnit(t, "package p\n")
	_, err = d.Run(unit)
	require.NoError(t, err)

	second, err := d.Run(unit.Clone())
	require.NoError(t, err)

	// The step hangs off the compilation's identity, so the clone forces a
	// re-run, and the captured state makes the output differ.
	require.Contains(t, second.Steps, "stamp")
	require.Len(t, second.Steps["stamp"], 1)
	assert.Equal(t, gen.ReasonModified, second.Steps["stamp"][0].Reason)
}

func TestDriver_PostInitIsCachedOnSecondRun(t *testing.T) {
	d, err := driver.New(&echoGen{}, driver.WithStepTracking())
	require.NoError(t, err)

	unit := buildUnit(t, "package p\n")
	_, err = d.Run(unit)
	require.NoError(t, err)

	second, err := d.Run(unit.Clone())
	require.NoError(t, err)

	require.Contains(t, second.Steps, gen.StepPostInit)
	for _, out := range second.Steps[gen.StepPostInit] {
		assert.Equal(t, gen.ReasonCached, out.Reason)
	}
	// The marker file is replayed into the output set.
	assert.Contains(t, second.AllHints(), "echo_markers.gen.go")
}

func TestDriver_ChangedSource_ModifiedAndRemoved(t *testing.T) {
	d, err := driver.New(&echoGen{}, driver.WithStepTracking())
	require.NoError(t, err)

	_, err = d.Run(buildUnit(t, "package p\n\ntype A struct{}\n", "package p\n\ntype B struct{}\n"))
	require.NoError(t, err)

	// Second run: first file edited, second file gone.
	second, err := d.Run(buildUnit(t, "package p\n\ntype A struct{ X int }\n"))
	require.NoError(t, err)

	reasons := make(map[string]gen.RunReason)
	for _, out := range second.Steps[gen.StepSources] {
		reasons[out.Key] = out.Reason
	}
	assert.Equal(t, gen.ReasonModified, reasons["src0.go"])
	assert.Equal(t, gen.ReasonRemoved, reasons["src1.go"])

	// The render step re-ran and its stale output is reported as removed.
	renderReasons := make(map[string]gen.RunReason)
	for _, out := range second.Steps["render"] {
		renderReasons[out.Key] = out.Reason
	}
	assert.Equal(t, gen.ReasonModified, renderReasons["src0.gen.go"])
	assert.Equal(t, gen.ReasonRemoved, renderReasons["src1.gen.go"])
	assert.Equal(t, []string{"src0.gen.go"}, second.GeneratedHints())
}

func TestDriver_SameUnitTwice_SourcesUnchanged(t *testing.T) {
	d, err := driver.New(&echoGen{}, driver.WithStepTracking())
	require.NoError(t, err)

	unit := buildUnit(t, "package p\n")
	_, err = d.Run(unit)
	require.NoError(t, err)

	// Passing the identical unit (not a clone) keeps even the compilation
	// step unchanged.
	second, err := d.Run(unit)
	require.NoError(t, err)
	assert.Equal(t, gen.ReasonUnchanged, second.Steps[gen.StepCompilation][0].Reason)
}
