// Package domain holds the core types of the scenario runner.
package domain

// Scenario is a single generator check loaded from a scenario file. It names
// a registered generator, the sources to compile, and the expectations to
// verify against the run.
type Scenario struct {
	// Name identifies the scenario in output and reports.
	Name string

	// Generator is the registry name of the generator under test.
	Generator string

	// Sources are the Go source texts the generator runs against.
	Sources []string

	// Expect holds the checks to run for this scenario.
	Expect Expectations
}

// Expectations is the set of checks a scenario declares. Empty slices mean
// the corresponding check is skipped; Cached is opt-in.
type Expectations struct {
	// Diagnostics that must be present among the generator's own output.
	Diagnostics []DiagnosticExpectation

	// Files that must be among the non-infrastructure outputs.
	Files []string

	// Cached verifies that a second run over an unchanged unit reuses every
	// generator step.
	Cached bool
}

// DiagnosticExpectation is one expected diagnostic, matched by ID and
// severity.
type DiagnosticExpectation struct {
	ID       string
	Severity string
}

// HasChecks reports whether the scenario declares at least one check.
func (s *Scenario) HasChecks() bool {
	return len(s.Expect.Diagnostics) > 0 || len(s.Expect.Files) > 0 || s.Expect.Cached
}
