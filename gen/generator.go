// Package gen defines the contract between incremental generators and the
// driver that executes them: the pipeline model, the run result model, and the
// fixed infrastructure filtering rules applied by assertion checks.
package gen

// Built-in step names owned by the driver. Generator steps may name
// StepCompilation and StepSources as inputs; the remaining steps exist only
// in run results. All of them match IsInfrastructureStep.
const (
	// StepCompilation carries a single value keyed by the compilation's
	// identity. A cloned unit produces a modified value even when its content
	// is identical, which is what forces identity-sensitive steps to re-run.
	StepCompilation = "host.compilation"
	// StepSources carries one value per source file, keyed by file name and
	// fingerprinted by content.
	StepSources = "host.sources"
	// StepPostInit carries the marker declaration outputs.
	StepPostInit = "host.postInit"
	// StepSourceOutput carries the final set of generated files.
	StepSourceOutput = "host.sourceOutput"
)

// Value is a unit of data flowing between pipeline steps. Key is the stable
// identity of the value within its step's output set; Data is the content the
// driver fingerprints to classify run reasons.
type Value struct {
	Key  string
	Data []byte
}

// StepContext is handed to transforms so they can emit artifacts. Emissions
// are recorded against the executing step and replayed when the step's
// outputs are served from cache.
type StepContext interface {
	// EmitFile adds a generated file to the run's output under the given hint name.
	EmitFile(hint string, content []byte)
	// ReportDiagnostic adds a generator diagnostic to the run.
	ReportDiagnostic(d Diagnostic)
}

// Transform computes a step's output values from its input values.
type Transform func(ctx StepContext, in []Value) ([]Value, error)

// Step is a named, individually cacheable stage of a generator pipeline.
type Step struct {
	Name   string
	Inputs []string
	Fn     Transform
}

// GeneratedFile is a generated output artifact with its stable hint name.
type GeneratedFile struct {
	HintName string
	Content  []byte
}

// Pipeline collects the steps and marker outputs a generator declares.
// The zero value is ready to use.
type Pipeline struct {
	steps   []Step
	markers []GeneratedFile
}

// Step declares a named step fed by the given inputs. Inputs name either a
// built-in step or a step declared earlier in the same pipeline. A step with
// no inputs defaults to StepSources.
func (p *Pipeline) Step(name string, fn Transform, inputs ...string) {
	if len(inputs) == 0 {
		inputs = []string{StepSources}
	}
	p.steps = append(p.steps, Step{Name: name, Inputs: inputs, Fn: fn})
}

// MarkerOutput declares a file emitted once at pipeline initialization,
// typically the declaration of the directive the generator reacts to. The
// hint must match the infrastructure file naming rules; the driver rejects
// pipelines with unbranded marker hints.
func (p *Pipeline) MarkerOutput(hint string, content []byte) {
	p.markers = append(p.markers, GeneratedFile{HintName: hint, Content: content})
}

// Steps returns the declared steps in declaration order.
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// MarkerOutputs returns the declared marker outputs in declaration order.
func (p *Pipeline) MarkerOutputs() []GeneratedFile {
	return p.markers
}

// Generator is an incremental code generator. Pipeline is called once per
// driver to declare the generator's steps.
type Generator interface {
	// Name identifies the generator in reports and registries.
	Name() string
	// Pipeline declares the generator's steps and marker outputs.
	Pipeline(p *Pipeline)
}
