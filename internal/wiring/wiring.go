// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register the built-in generators so scenario files can name them.
	_ "go.trai.ch/genassert/generators/modelgen"
	// Register adapter nodes.
	_ "go.trai.ch/genassert/internal/adapters/logger"
	_ "go.trai.ch/genassert/internal/adapters/scenario"
	_ "go.trai.ch/genassert/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/genassert/internal/app"
)
