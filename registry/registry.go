// Package registry is a process-wide name registry for generators, in the
// style of database/sql driver registration. Generators register themselves
// from init so that scenario files can refer to them by name.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/genassert/gen"
	"go.trai.ch/zerr"
)

// ErrUnknownGenerator is returned when a name has no registered generator.
var ErrUnknownGenerator = zerr.New("unknown generator")

// Factory creates a fresh generator instance. Every driver gets its own
// instance so that per-driver state never leaks between runs.
type Factory func() gen.Generator

var (
	mu         sync.RWMutex
	generators = make(map[string]Factory)
)

// Register makes a generator available under the given name. It panics on an
// empty name, a nil factory, or a duplicate registration, all of which are
// programmer errors.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	if name == "" {
		panic("registry: generator name must not be empty")
	}
	if factory == nil {
		panic("registry: generator factory must not be nil")
	}
	if _, dup := generators[name]; dup {
		panic(fmt.Sprintf("registry: generator %q registered twice", name))
	}
	generators[name] = factory
}

// Lookup returns the factory registered under the given name.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()

	factory, ok := generators[name]
	if !ok {
		return nil, zerr.With(ErrUnknownGenerator, "generator", name)
	}
	return factory, nil
}

// Names returns the sorted names of all registered generators.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
