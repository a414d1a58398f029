// Package genassert is a fluent assertion toolkit for incremental Go code
// generators. It compiles a snippet of source text, drives a generator once
// or twice, and asserts on the diagnostics emitted, the files produced, and
// whether pipeline steps were recomputed or reused across runs.
//
// Checks come in two flavors: error-returning methods on Expectation, and
// testing.TB wrappers (Require*) that fail the test with the formatted
// report. A failed expectation is distinguishable from a broken test input:
// the former wraps gen.ErrExpectationFailed, the latter
// gen.ErrPreconditionFailed.
package genassert

import (
	"go/types"

	"go.trai.ch/genassert/compile"
	"go.trai.ch/genassert/driver"
	"go.trai.ch/genassert/gen"
)

// CacheRuns holds the results of the two-run cache comparison: Second ran
// against a clone of First's compilation unit, simulating a no-op edit.
type CacheRuns struct {
	First  *gen.RunResult
	Second *gen.RunResult
}

// Host is the generation platform capability the assertion checks run
// against. It exists so the checks are testable against a mock platform.
//
//go:generate mockgen -source=genassert.go -destination=mocks/mock_host.go -package=mocks
type Host interface {
	// RunOnce builds a compilation unit from the sources and executes the
	// generator a single time, without step tracking.
	RunOnce(cfg compile.Config, g gen.Generator, sources []string) (*gen.RunResult, error)

	// RunTwice builds a unit, executes the generator, clones the unit, and
	// executes the generator again on the same driver with step tracking
	// enabled.
	RunTwice(cfg compile.Config, g gen.Generator, sources []string) (*CacheRuns, error)
}

// GoHost is the default Host, backed by the compile and driver packages.
type GoHost struct{}

// NewGoHost creates the default generation host.
func NewGoHost() *GoHost { return &GoHost{} }

// RunOnce implements Host.
func (h *GoHost) RunOnce(cfg compile.Config, g gen.Generator, sources []string) (*gen.RunResult, error) {
	unit, err := compile.Build(cfg, sources...)
	if err != nil {
		return nil, err
	}
	d, err := driver.New(g)
	if err != nil {
		return nil, err
	}
	return d.Run(unit)
}

// RunTwice implements Host.
func (h *GoHost) RunTwice(cfg compile.Config, g gen.Generator, sources []string) (*CacheRuns, error) {
	unit, err := compile.Build(cfg, sources...)
	if err != nil {
		return nil, err
	}
	d, err := driver.New(g, driver.WithStepTracking())
	if err != nil {
		return nil, err
	}

	first, err := d.Run(unit)
	if err != nil {
		return nil, err
	}
	second, err := d.Run(unit.Clone())
	if err != nil {
		return nil, err
	}
	return &CacheRuns{First: first, Second: second}, nil
}

// Runner binds a host and a compile configuration. Runners are immutable
// after construction; build one per configuration and share it freely.
type Runner struct {
	host Host
	cfg  compile.Config
}

// Option configures a Runner.
type Option func(*Runner)

// WithHost replaces the default GoHost.
func WithHost(h Host) Option {
	return func(r *Runner) { r.host = h }
}

// WithGoVersion sets the language version the type checker enforces.
func WithGoVersion(version string) Option {
	return func(r *Runner) { r.cfg.GoVersion = version }
}

// WithImporter sets the importer used to resolve references.
func WithImporter(imp types.Importer) Option {
	return func(r *Runner) { r.cfg.Importer = imp }
}

// WithTypesConfig registers a customizer applied to the types.Config before
// type checking.
func WithTypesConfig(customize func(*types.Config)) Option {
	return func(r *Runner) { r.cfg.Customize = customize }
}

// New creates a Runner. Without options it uses the default GoHost and an
// empty compile configuration.
func New(opts ...Option) *Runner {
	r := &Runner{host: NewGoHost()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// For starts an expectation for running the generator against the given
// source text, plus any additional sources.
func (r *Runner) For(g gen.Generator, source string, extra ...string) *Expectation {
	return &Expectation{
		runner:  r,
		g:       g,
		sources: append([]string{source}, extra...),
	}
}

// For is shorthand for New().For(...) with the default host and configuration.
func For(g gen.Generator, source string, extra ...string) *Expectation {
	return New().For(g, source, extra...)
}
