// Package driver executes incremental generators against compilation units.
//
// A Driver is stateful: it keeps every step's outputs and emissions from the
// previous run, skips steps whose inputs are clean, and classifies each output
// of a run with a gen.RunReason. Running the same unit's clone through the
// same driver is how caching behavior is observed.
package driver

import (
	"encoding/binary"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/genassert/compile"
	"go.trai.ch/genassert/gen"
	"go.trai.ch/zerr"
)

// Option configures a Driver.
type Option func(*Driver)

// WithStepTracking records per-step output reasons in every RunResult.
// Without it, RunResult.Steps stays empty.
func WithStepTracking() Option {
	return func(d *Driver) { d.track = true }
}

// trackedValue is a step output value with its content fingerprint.
type trackedValue struct {
	key  string
	hash uint64
	data []byte
}

// stepState is everything a step produced on its last execution.
type stepState struct {
	values []trackedValue
	files  []gen.GeneratedFile
	diags  []gen.Diagnostic
}

// classified is a current-run output value together with its run reason.
type classified struct {
	value  trackedValue
	reason gen.RunReason
}

// Driver runs a single generator's pipeline and caches step outputs across runs.
// A Driver is not safe for concurrent use.
type Driver struct {
	generator gen.Generator
	steps     []gen.Step
	markers   []gen.GeneratedFile
	track     bool
	runs      int
	prev      map[string]*stepState
}

// New builds and validates the generator's pipeline. It returns an error when
// the pipeline declares duplicate or reserved step names, references unknown
// inputs, or registers a marker output whose hint is not branded as
// infrastructure.
func New(g gen.Generator, opts ...Option) (*Driver, error) {
	var p gen.Pipeline
	g.Pipeline(&p)

	d := &Driver{
		generator: g,
		steps:     p.Steps(),
		markers:   p.MarkerOutputs(),
		prev:      make(map[string]*stepState),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.validate(); err != nil {
		return nil, zerr.With(err, "generator", g.Name())
	}
	return d, nil
}

func (d *Driver) validate() error {
	known := map[string]bool{
		gen.StepCompilation: true,
		gen.StepSources:     true,
	}
	for _, step := range d.steps {
		if step.Name == "" {
			return gen.ErrEmptyStepName
		}
		if strings.HasPrefix(step.Name, "host.") {
			return zerr.With(gen.ErrReservedStepName, "step", step.Name)
		}
		if known[step.Name] {
			return zerr.With(gen.ErrDuplicateStep, "step", step.Name)
		}
		if step.Fn == nil {
			return zerr.With(gen.ErrNilTransform, "step", step.Name)
		}
		for _, in := range step.Inputs {
			if !known[in] {
				return zerr.With(zerr.With(gen.ErrUnknownStepInput, "step", step.Name), "input", in)
			}
		}
		known[step.Name] = true
	}
	for _, m := range d.markers {
		if !gen.IsInfrastructureFile(m.HintName) {
			return zerr.With(gen.ErrUnbrandedMarkerHint, "hint", m.HintName)
		}
	}
	return nil
}

// Runs returns how many times the driver has executed.
func (d *Driver) Runs() int { return d.runs }

// Run executes the pipeline against the given unit. Reasons are classified
// against the previous Run call on this driver; the first run reports
// everything as new.
func (d *Driver) Run(comp *compile.Compilation) (*gen.RunResult, error) {
	r := &run{
		driver:  d,
		result:  &gen.RunResult{Steps: make(map[string][]gen.StepOutput)},
		outputs: make(map[string][]classified),
	}

	r.builtinCompilation(comp)
	r.builtinSources(comp)
	r.builtinPostInit()

	for _, step := range d.steps {
		if err := r.userStep(step); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "step execution failed"), "step", step.Name)
		}
	}

	r.builtinSourceOutput()

	r.result.Diagnostics = append(comp.Diagnostics(), r.diags...)
	r.result.Files = r.files
	if !d.track {
		r.result.Steps = nil
	}

	d.runs++
	return r.result, nil
}

// run is the per-invocation state of a single Run call.
type run struct {
	driver  *Driver
	result  *gen.RunResult
	outputs map[string][]classified
	files   []gen.GeneratedFile
	diags   []gen.Diagnostic
}

// record stores a step's classified outputs into the tracked result and the
// in-run output table.
func (r *run) record(name string, outs []classified) {
	r.outputs[name] = outs
	steps := make([]gen.StepOutput, 0, len(outs))
	for _, o := range outs {
		steps = append(steps, gen.StepOutput{Key: o.value.key, Reason: o.reason})
	}
	r.result.Steps[name] = steps
}

// classify compares freshly produced values against the step's previous state
// and updates the stored state. Previous keys that vanished are reported as
// removed entries without a live value.
func (r *run) classify(name string, values []trackedValue) []classified {
	prev := r.driver.prev[name]

	prevByKey := make(map[string]trackedValue)
	if prev != nil {
		for _, v := range prev.values {
			prevByKey[v.key] = v
		}
	}

	outs := make([]classified, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		seen[v.key] = true
		old, ok := prevByKey[v.key]
		switch {
		case !ok:
			outs = append(outs, classified{value: v, reason: gen.ReasonNew})
		case old.hash == v.hash:
			outs = append(outs, classified{value: v, reason: gen.ReasonUnchanged})
		default:
			outs = append(outs, classified{value: v, reason: gen.ReasonModified})
		}
	}
	if prev != nil {
		for _, v := range prev.values {
			if !seen[v.key] {
				outs = append(outs, classified{value: trackedValue{key: v.key}, reason: gen.ReasonRemoved})
			}
		}
	}

	return outs
}

func (r *run) builtinCompilation(comp *compile.Compilation) {
	// The fingerprint is the unit's identity, not its content: a cloned unit
	// must look modified so that identity-sensitive steps re-run.
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], comp.ID())
	v := newTrackedValue("compilation", buf[:])

	outs := r.classify(gen.StepCompilation, []trackedValue{v})
	r.driver.prev[gen.StepCompilation] = &stepState{values: []trackedValue{v}}
	r.record(gen.StepCompilation, outs)
}

func (r *run) builtinSources(comp *compile.Compilation) {
	values := make([]trackedValue, 0, len(comp.Sources()))
	for _, src := range comp.Sources() {
		values = append(values, newTrackedValue(src.Name, []byte(src.Text)))
	}

	outs := r.classify(gen.StepSources, values)
	r.driver.prev[gen.StepSources] = &stepState{values: values}
	r.record(gen.StepSources, outs)
}

func (r *run) builtinPostInit() {
	if len(r.driver.markers) == 0 {
		return
	}

	if prev := r.driver.prev[gen.StepPostInit]; prev != nil {
		r.replay(gen.StepPostInit, prev)
		return
	}

	state := &stepState{files: r.driver.markers}
	outs := make([]classified, 0, len(r.driver.markers))
	for _, m := range r.driver.markers {
		v := newTrackedValue(m.HintName, m.Content)
		state.values = append(state.values, v)
		outs = append(outs, classified{value: v, reason: gen.ReasonNew})
	}

	r.driver.prev[gen.StepPostInit] = state
	r.files = append(r.files, state.files...)
	r.record(gen.StepPostInit, outs)
}

// replay serves a step's previous outputs and emissions without executing it.
func (r *run) replay(name string, prev *stepState) {
	outs := make([]classified, 0, len(prev.values))
	for _, v := range prev.values {
		outs = append(outs, classified{value: v, reason: gen.ReasonCached})
	}
	r.files = append(r.files, prev.files...)
	r.diags = append(r.diags, prev.diags...)
	r.record(name, outs)
}

func (r *run) userStep(step gen.Step) error {
	inputs, dirty := r.gatherInputs(step)

	prev := r.driver.prev[step.Name]
	if !dirty && prev != nil {
		r.replay(step.Name, prev)
		return nil
	}

	sctx := &stepContext{}
	values, err := step.Fn(sctx, inputs)
	if err != nil {
		return err
	}

	tracked := make([]trackedValue, 0, len(values))
	for _, v := range values {
		tracked = append(tracked, newTrackedValue(v.Key, v.Data))
	}

	outs := r.classify(step.Name, tracked)
	r.driver.prev[step.Name] = &stepState{
		values: tracked,
		files:  sctx.files,
		diags:  sctx.diags,
	}
	r.files = append(r.files, sctx.files...)
	r.diags = append(r.diags, sctx.diags...)
	r.record(step.Name, outs)
	return nil
}

// gatherInputs collects the live input values of a step and reports whether
// any of them changed on this run.
func (r *run) gatherInputs(step gen.Step) ([]gen.Value, bool) {
	var inputs []gen.Value
	dirty := false
	for _, name := range step.Inputs {
		for _, o := range r.outputs[name] {
			switch o.reason {
			case gen.ReasonNew, gen.ReasonModified, gen.ReasonRemoved:
				dirty = true
			}
			if o.reason != gen.ReasonRemoved {
				inputs = append(inputs, gen.Value{Key: o.value.key, Data: o.value.data})
			}
		}
	}
	return inputs, dirty
}

func (r *run) builtinSourceOutput() {
	values := make([]trackedValue, 0, len(r.files))
	for _, f := range r.files {
		values = append(values, newTrackedValue(f.HintName, f.Content))
	}

	outs := r.classify(gen.StepSourceOutput, values)
	r.driver.prev[gen.StepSourceOutput] = &stepState{values: values}
	r.record(gen.StepSourceOutput, outs)
}

func newTrackedValue(key string, data []byte) trackedValue {
	h := xxhash.New()
	_, _ = h.WriteString(key)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(data)
	return trackedValue{key: key, hash: h.Sum64(), data: data}
}

// stepContext collects a step's emissions during execution.
type stepContext struct {
	files []gen.GeneratedFile
	diags []gen.Diagnostic
}

func (c *stepContext) EmitFile(hint string, content []byte) {
	c.files = append(c.files, gen.GeneratedFile{HintName: hint, Content: content})
}

func (c *stepContext) ReportDiagnostic(d gen.Diagnostic) {
	c.diags = append(c.diags, d)
}
