package compile

import (
	"go/importer"
	"go/types"
)

// Config controls how a compilation unit is built. The zero value is usable.
// A Config is passed explicitly into every build; there is no process-wide
// mutable default, so concurrent assertions cannot leak configuration into
// each other.
type Config struct {
	// GoVersion is the language version the type checker enforces,
	// e.g. "go1.24". Empty means the toolchain default.
	GoVersion string

	// Importer resolves imported packages. Nil means importer.Default().
	Importer types.Importer

	// Customize, when set, is applied to the types.Config just before type
	// checking, after GoVersion and Importer have been installed.
	Customize func(*types.Config)

	// FilePrefix names the synthesized source files: "<prefix>0.go",
	// "<prefix>1.go", and so on. Empty means "src".
	FilePrefix string
}

func (c Config) importerOrDefault() types.Importer {
	if c.Importer != nil {
		return c.Importer
	}
	return importer.Default()
}

func (c Config) filePrefix() string {
	if c.FilePrefix != "" {
		return c.FilePrefix
	}
	return "src"
}
