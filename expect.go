package genassert

import (
	"errors"

	"go.trai.ch/genassert/gen"
	"go.trai.ch/zerr"
)

// Expectation is a pending generator run with checks attached. Each check
// performs its own run (or run pair); an Expectation holds no run state and
// may be reused across checks.
type Expectation struct {
	runner  *Runner
	g       gen.Generator
	sources []string
}

// Diagnostic runs the generator once and checks that a non-platform
// diagnostic with the given ID and severity was produced. On mismatch it
// returns gen.ErrExpectationFailed wrapping a report that lists every
// diagnostic the run produced.
func (e *Expectation) Diagnostic(id string, sev gen.Severity) error {
	res, err := e.runner.host.RunOnce(e.runner.cfg, e.g, e.sources)
	if err != nil {
		return err
	}

	for _, d := range res.GeneratorDiagnostics() {
		if d.ID == id && d.Severity == sev {
			return nil
		}
	}

	return e.fail(gen.ErrExpectationFailed, diagnosticReport(id, sev, res.Diagnostics))
}

// Files runs the generator once and checks that every expected hint name is
// among the non-infrastructure files the run produced. On a miss it returns
// gen.ErrExpectationFailed wrapping a report with the missing and produced
// names plus the run's diagnostics.
func (e *Expectation) Files(hints ...string) error {
	res, err := e.runner.host.RunOnce(e.runner.cfg, e.g, e.sources)
	if err != nil {
		return err
	}

	produced := make(map[string]bool)
	for _, hint := range res.GeneratedHints() {
		produced[hint] = true
	}

	var missing []string
	for _, hint := range hints {
		if !produced[hint] {
			missing = append(missing, hint)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return e.fail(gen.ErrExpectationFailed, fileReport(missing, res.GeneratedHints(), res.Diagnostics))
}

// Cached runs the generator twice, the second time against a clone of the
// first compilation unit, and checks that every one of the generator's own
// steps reports cached or unchanged outputs on the second run.
//
// A first run with no non-infrastructure output, or a second run with no
// tracked steps, indicates a broken test input and returns
// gen.ErrPreconditionFailed instead of an expectation failure.
func (e *Expectation) Cached() error {
	runs, err := e.runner.host.RunTwice(e.runner.cfg, e.g, e.sources)
	if err != nil {
		return err
	}

	if len(runs.First.GeneratedHints()) == 0 {
		return e.failPrecondition(gen.ErrNoGeneratedOutput,
			"the generator produced no files on the first run, so there is nothing to compare; "+
				"check that the input source actually triggers the generator")
	}
	if !runs.Second.HasTrackedSteps() {
		return e.failPrecondition(gen.ErrNoTrackedSteps,
			"the second run reported no tracked steps; the generator does not appear to go through the incremental pipeline")
	}

	bad := make(map[string][]gen.StepOutput)
	for name, outs := range runs.Second.UserSteps() {
		for _, out := range outs {
			if !out.Reason.IsClean() {
				bad[name] = append(bad[name], out)
			}
		}
	}
	if len(bad) == 0 {
		return nil
	}

	return e.fail(gen.ErrExpectationFailed, cacheReport(bad))
}

// StepReport runs the generator twice and returns the full step breakdown of
// the second run: per-reason counts for every step, generator steps and
// infrastructure steps listed separately.
func (e *Expectation) StepReport() (string, error) {
	runs, err := e.runner.host.RunTwice(e.runner.cfg, e.g, e.sources)
	if err != nil {
		return "", err
	}
	if !runs.Second.HasTrackedSteps() {
		return "", e.failPrecondition(gen.ErrNoTrackedSteps, "the second run reported no tracked steps")
	}
	return stepReport(runs.Second.Steps), nil
}

// DumpSteps always fails: it exists to dump the step breakdown through the
// test framework's failure output, not to assert anything.
func (e *Expectation) DumpSteps() error {
	report, err := e.StepReport()
	if err != nil {
		return err
	}
	return e.fail(gen.ErrExpectationFailed, "step dump requested:\n"+report)
}

func (e *Expectation) fail(kind error, report string) error {
	return zerr.With(zerr.Wrap(kind, report), "generator", e.g.Name())
}

// failPrecondition keeps both the precondition kind and the specific cause
// on the chain, so callers can match either.
func (e *Expectation) failPrecondition(cause error, report string) error {
	return e.fail(errors.Join(gen.ErrPreconditionFailed, cause), report)
}
