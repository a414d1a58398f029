package gen

import (
	"slices"
	"sort"
)

// StepOutput records one output of a pipeline step together with the reason
// it was produced on this run.
type StepOutput struct {
	Key    string
	Reason RunReason
}

// RunResult is everything a single driver run produced: diagnostics, generated
// files keyed by hint name, and, when step tracking is enabled, the per-step
// output records.
type RunResult struct {
	Diagnostics []Diagnostic
	Files       []GeneratedFile
	// Steps maps step name to the outputs the step produced on this run.
	// Empty unless the driver was built with step tracking.
	Steps map[string][]StepOutput
}

// GeneratedHints returns the sorted hint names of all non-infrastructure
// files produced by the run.
func (r *RunResult) GeneratedHints() []string {
	var hints []string
	for _, f := range r.Files {
		if !IsInfrastructureFile(f.HintName) {
			hints = append(hints, f.HintName)
		}
	}
	sort.Strings(hints)
	return hints
}

// AllHints returns the sorted hint names of every file produced by the run,
// infrastructure included.
func (r *RunResult) AllHints() []string {
	hints := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		hints = append(hints, f.HintName)
	}
	sort.Strings(hints)
	return hints
}

// File returns the generated file with the given hint name, or false.
func (r *RunResult) File(hint string) (GeneratedFile, bool) {
	for _, f := range r.Files {
		if f.HintName == hint {
			return f, true
		}
	}
	return GeneratedFile{}, false
}

// GeneratorDiagnostics returns the diagnostics reported by the generator,
// with platform parse and type errors filtered out.
func (r *RunResult) GeneratorDiagnostics() []Diagnostic {
	var diags []Diagnostic
	for _, d := range r.Diagnostics {
		if !d.IsPlatform() {
			diags = append(diags, d)
		}
	}
	return diags
}

// UserSteps returns the tracked steps that belong to the generator under
// test, keys sorted for deterministic iteration by callers.
func (r *RunResult) UserSteps() map[string][]StepOutput {
	steps := make(map[string][]StepOutput)
	for name, outs := range r.Steps {
		if !IsInfrastructureStep(name) {
			steps[name] = outs
		}
	}
	return steps
}

// StepNames returns all tracked step names in sorted order.
func (r *RunResult) StepNames() []string {
	names := make([]string, 0, len(r.Steps))
	for name := range r.Steps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HasTrackedSteps reports whether the run recorded any step outputs.
func (r *RunResult) HasTrackedSteps() bool {
	return len(r.Steps) > 0
}
