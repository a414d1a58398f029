package domain

import "go.trai.ch/zerr"

var (
	// ErrNoScenariosDefined is returned when a scenario file contains no scenarios.
	ErrNoScenariosDefined = zerr.New("no scenarios defined")

	// ErrMissingScenarioName is returned when a scenario has no name.
	ErrMissingScenarioName = zerr.New("missing scenario name")

	// ErrDuplicateScenarioName is returned when two scenarios share a name.
	ErrDuplicateScenarioName = zerr.New("duplicate scenario name")

	// ErrMissingGenerator is returned when a scenario names no generator.
	ErrMissingGenerator = zerr.New("missing generator name")

	// ErrMissingSources is returned when a scenario declares no sources.
	ErrMissingSources = zerr.New("scenario declares no sources")

	// ErrNoChecksDeclared is returned when a scenario declares no expectations.
	ErrNoChecksDeclared = zerr.New("scenario declares no checks")

	// ErrChecksFailed is returned when one or more scenario checks fail.
	ErrChecksFailed = zerr.New("scenario checks failed")
)
