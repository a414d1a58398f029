package app

import "go.trai.ch/genassert/internal/core/ports"

// Components bundles the application with the adapters the entry point
// needs direct access to.
type Components struct {
	App    *App
	Logger ports.Logger
}
