package genassert

import (
	"errors"
	"testing"

	"go.trai.ch/genassert/gen"
)

// testing.TB wrappers around the error-returning checks. Both failure kinds
// stop the test; precondition failures are prefixed so a broken test input
// is not mistaken for a generator defect.

// RequireDiagnostic fails the test unless the generator produces a diagnostic
// with the given ID and severity.
func (e *Expectation) RequireDiagnostic(t testing.TB, id string, sev gen.Severity) {
	t.Helper()
	failOnError(t, e.Diagnostic(id, sev))
}

// RequireFiles fails the test unless the generator produces every named file.
func (e *Expectation) RequireFiles(t testing.TB, hints ...string) {
	t.Helper()
	failOnError(t, e.Files(hints...))
}

// RequireCached fails the test unless the generator's steps are all served
// from cache (or unchanged) on a second run over an unchanged unit.
func (e *Expectation) RequireCached(t testing.TB) {
	t.Helper()
	failOnError(t, e.Cached())
}

// RequireDumpSteps always fails the test, printing the full step breakdown.
// Useful while developing a generator, never in a committed test.
func (e *Expectation) RequireDumpSteps(t testing.TB) {
	t.Helper()
	failOnError(t, e.DumpSteps())
}

func failOnError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		return
	}
	if errors.Is(err, gen.ErrPreconditionFailed) {
		t.Fatalf("generator test setup is broken, not the generator:\n%v", err)
	}
	t.Fatalf("%v", err)
}
