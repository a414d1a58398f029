package gen

import "go.trai.ch/zerr"

var (
	// ErrExpectationFailed is returned when a check ran but the expectation was not met.
	ErrExpectationFailed = zerr.New("expectation failed")

	// ErrPreconditionFailed is returned when a check could not be evaluated because
	// the test input itself looks wrong (no usable generator output, no tracked steps).
	ErrPreconditionFailed = zerr.New("precondition failed")

	// ErrNoGeneratedOutput is reported when a cache comparison has no first-run
	// output to compare against.
	ErrNoGeneratedOutput = zerr.New("generator produced no output on the first run")

	// ErrNoTrackedSteps is reported when a second run carries no step tracking data.
	ErrNoTrackedSteps = zerr.New("no tracked steps in the second run")

	// ErrNoSources is returned when a compilation is built from zero source texts.
	ErrNoSources = zerr.New("no source texts provided")

	// ErrDuplicateStep is returned when a pipeline declares two steps with the same name.
	ErrDuplicateStep = zerr.New("duplicate step name")

	// ErrReservedStepName is returned when a pipeline step uses the reserved "host." prefix.
	ErrReservedStepName = zerr.New("step name prefix 'host.' is reserved")

	// ErrEmptyStepName is returned when a pipeline step has an empty name.
	ErrEmptyStepName = zerr.New("step name must not be empty")

	// ErrUnknownStepInput is returned when a step references an input that is neither
	// a built-in step nor a previously declared step.
	ErrUnknownStepInput = zerr.New("unknown step input")

	// ErrNilTransform is returned when a pipeline step has no transform function.
	ErrNilTransform = zerr.New("step transform must not be nil")

	// ErrUnbrandedMarkerHint is returned when a marker output hint does not match
	// the infrastructure file naming rules.
	ErrUnbrandedMarkerHint = zerr.New("marker output hint must match the infrastructure naming rules")

	// ErrUnknownSeverity is returned when a severity string cannot be parsed.
	ErrUnknownSeverity = zerr.New("unknown severity")
)
