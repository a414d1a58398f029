// Package ports defines the interfaces between the application layer and
// its adapters.
package ports

import "go.trai.ch/genassert/internal/core/domain"

// ScenarioLoader loads scenario definitions from a file.
//
//go:generate mockgen -source=scenario_loader.go -destination=mocks/mock_scenario_loader.go -package=mocks
type ScenarioLoader interface {
	// Load reads the scenario file at path and returns its scenarios in
	// declaration order. Inline sources are returned as-is; file-backed
	// sources are resolved relative to the scenario file's directory.
	Load(path string) ([]domain.Scenario, error)
}
