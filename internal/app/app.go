// Package app implements the application layer of the scenario runner.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.trai.ch/genassert"
	"go.trai.ch/genassert/gen"
	"go.trai.ch/genassert/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/genassert/internal/core/domain"
	"go.trai.ch/genassert/internal/core/ports"
	"go.trai.ch/genassert/registry"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader    ports.ScenarioLoader
	logger    ports.Logger
	telemetry ports.Telemetry
	runner    *genassert.Runner
}

// New creates a new App instance.
func New(loader ports.ScenarioLoader, log ports.Logger, telemetry ports.Telemetry) *App {
	return &App{
		loader:    loader,
		logger:    log,
		telemetry: telemetry,
		runner:    genassert.New(),
	}
}

// WithRunner replaces the default runner. This is primarily used for testing
// against a mocked generation host.
func (a *App) WithRunner(r *genassert.Runner) *App {
	a.runner = r
	return a
}

// CheckOptions configuration for the Check method.
type CheckOptions struct {
	// Parallelism bounds concurrent scenario execution. Zero means one
	// scenario per CPU.
	Parallelism int
}

// Check loads the given scenario files and runs every scenario's checks.
// All scenarios run to completion even when some fail; the returned error
// joins domain.ErrChecksFailed with each individual failure.
func (a *App) Check(ctx context.Context, paths []string, opts CheckOptions) error {
	scenarios, err := a.load(paths)
	if err != nil {
		return err
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	a.logger.Info(fmt.Sprintf("running %d scenario(s)", len(scenarios)))
	defer func() {
		_ = a.telemetry.Close()
	}()

	var (
		mu       sync.Mutex
		failures []error
	)

	g := new(errgroup.Group)
	g.SetLimit(parallelism)

	for _, s := range scenarios {
		g.Go(func() error {
			vctx, vtx := a.telemetry.Record(ctx, s.Name)
			err := a.runScenario(vctx, s)
			vtx.Complete(err)

			if err != nil {
				mu.Lock()
				failures = append(failures, zerr.With(err, "scenario", s.Name))
				mu.Unlock()
			}
			return nil
		})
	}

	// Scenario failures are collected, not returned, so Wait only reports
	// infrastructure errors.
	if err := g.Wait(); err != nil {
		return err
	}

	if len(failures) > 0 {
		a.logger.Info(fmt.Sprintf("%d of %d scenario(s) failed", len(failures), len(scenarios)))
		return errors.Join(append([]error{domain.ErrChecksFailed}, failures...)...)
	}

	a.logger.Info("all scenarios passed")
	return nil
}

func (a *App) load(paths []string) ([]domain.Scenario, error) {
	var scenarios []domain.Scenario
	for _, path := range paths {
		loaded, err := a.loader.Load(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to load scenarios"), "path", path)
		}
		scenarios = append(scenarios, loaded...)
	}
	return scenarios, nil
}

func (a *App) runScenario(ctx context.Context, s domain.Scenario) error {
	vtx, ok := ports.VertexFromContext(ctx)
	if !ok {
		vtx = telemetry.NopVertex()
	}

	factory, err := registry.Lookup(s.Generator)
	if err != nil {
		vtx.Log(domain.LogLevelError, err.Error())
		return err
	}

	exp := a.runner.For(factory(), s.Sources[0], s.Sources[1:]...)

	var errs []error
	record := func(check string, err error) error {
		if err != nil {
			vtx.Log(domain.LogLevelError, check+" check failed")
			_, _ = fmt.Fprintln(vtx.Stdout(), err)
			return err
		}
		vtx.Log(domain.LogLevelInfo, check+" check passed")
		return nil
	}

	for _, d := range s.Expect.Diagnostics {
		sev, err := gen.ParseSeverity(d.Severity)
		if err != nil {
			return err
		}
		if err := record("diagnostic "+d.ID, exp.Diagnostic(d.ID, sev)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(s.Expect.Files) > 0 {
		if err := record("files", exp.Files(s.Expect.Files...)); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Expect.Cached {
		err := exp.Cached()
		if err == nil {
			vtx.Cached()
		}
		if err := record("cache", err); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ScenarioSteps is the step breakdown of one scenario's second run.
type ScenarioSteps struct {
	Scenario string
	Report   string
}

// StepReports runs every scenario in the given file twice and returns the
// second run's full step breakdown per scenario, without evaluating the
// scenario's expectations.
func (a *App) StepReports(_ context.Context, path string) ([]ScenarioSteps, error) {
	scenarios, err := a.load([]string{path})
	if err != nil {
		return nil, err
	}

	reports := make([]ScenarioSteps, 0, len(scenarios))
	for _, s := range scenarios {
		factory, err := registry.Lookup(s.Generator)
		if err != nil {
			return nil, zerr.With(err, "scenario", s.Name)
		}

		report, err := a.runner.For(factory(), s.Sources[0], s.Sources[1:]...).StepReport()
		if err != nil {
			return nil, zerr.With(err, "scenario", s.Name)
		}
		reports = append(reports, ScenarioSteps{Scenario: s.Name, Report: report})
	}
	return reports, nil
}

// StepInfo describes one pipeline step of a registered generator.
type StepInfo struct {
	Name           string
	Inputs         []string
	Infrastructure bool
}

// Steps returns the pipeline breakdown of the named generator: the built-in
// steps every pipeline starts from, followed by the generator's own steps in
// declaration order.
func (a *App) Steps(_ context.Context, generator string) ([]StepInfo, error) {
	factory, err := registry.Lookup(generator)
	if err != nil {
		return nil, err
	}

	var p gen.Pipeline
	factory().Pipeline(&p)

	infos := []StepInfo{
		{Name: gen.StepCompilation, Infrastructure: true},
		{Name: gen.StepSources, Inputs: []string{gen.StepCompilation}, Infrastructure: true},
		{Name: gen.StepPostInit, Infrastructure: true},
	}
	for _, step := range p.Steps() {
		infos = append(infos, StepInfo{
			Name:           step.Name,
			Inputs:         step.Inputs,
			Infrastructure: gen.IsInfrastructureStep(step.Name),
		})
	}
	infos = append(infos, StepInfo{Name: gen.StepSourceOutput, Infrastructure: true})

	return infos, nil
}

// Generators returns the names of all registered generators.
func (a *App) Generators() []string {
	return registry.Names()
}
