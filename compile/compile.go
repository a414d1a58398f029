// Package compile builds in-memory compilation units from source text.
//
// A unit is an immutable snapshot: parsed syntax, the raw source texts, and
// the diagnostics the parser and type checker produced. Units are cloned, not
// mutated, when a caller needs a second identical snapshot.
package compile

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"sync/atomic"

	"go.trai.ch/genassert/gen"
)

// SourceFile is one synthesized source file of a compilation unit.
type SourceFile struct {
	Name string
	Text string
}

// Compilation is an immutable compilation unit. Every unit carries a unique
// identity; Clone returns a snapshot that shares the parsed trees but has a
// fresh identity, which is how a no-op edit is simulated.
type Compilation struct {
	id      uint64
	fset    *token.FileSet
	files   []*ast.File
	sources []SourceFile
	pkg     *types.Package
	diags   []gen.Diagnostic
}

var compilationID atomic.Uint64

// Build parses and type-checks the given source texts into a compilation
// unit. Parse and type errors do not fail the build; they are recorded as
// platform diagnostics (gen.PlatformParseID, gen.PlatformTypeID) on the unit.
func Build(cfg Config, sources ...string) (*Compilation, error) {
	if len(sources) == 0 {
		return nil, gen.ErrNoSources
	}

	c := &Compilation{
		id:   compilationID.Add(1),
		fset: token.NewFileSet(),
	}

	parseFailed := false
	for i, src := range sources {
		name := fmt.Sprintf("%s%d.go", cfg.filePrefix(), i)
		c.sources = append(c.sources, SourceFile{Name: name, Text: src})

		file, err := parser.ParseFile(c.fset, name, src, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			parseFailed = true
			c.collectParseErrors(err, name)
		}
		if file != nil {
			c.files = append(c.files, file)
		}
	}

	// The type checker is only meaningful over syntactically valid trees.
	if !parseFailed && len(c.files) > 0 {
		c.typeCheck(cfg)
	}

	return c, nil
}

func (c *Compilation) collectParseErrors(err error, name string) {
	var list scanner.ErrorList
	if !errors.As(err, &list) {
		c.diags = append(c.diags, gen.Diagnostic{
			ID:       gen.PlatformParseID,
			Severity: gen.SeverityError,
			Message:  err.Error(),
			Pos:      name,
		})
		return
	}
	for _, e := range list {
		c.diags = append(c.diags, gen.Diagnostic{
			ID:       gen.PlatformParseID,
			Severity: gen.SeverityError,
			Message:  e.Msg,
			Pos:      e.Pos.String(),
		})
	}
}

func (c *Compilation) typeCheck(cfg Config) {
	tcfg := types.Config{
		GoVersion: cfg.GoVersion,
		Importer:  cfg.importerOrDefault(),
		Error: func(err error) {
			var terr types.Error
			if errors.As(err, &terr) {
				c.diags = append(c.diags, gen.Diagnostic{
					ID:       gen.PlatformTypeID,
					Severity: gen.SeverityError,
					Message:  terr.Msg,
					Pos:      terr.Fset.Position(terr.Pos).String(),
				})
				return
			}
			c.diags = append(c.diags, gen.Diagnostic{
				ID:       gen.PlatformTypeID,
				Severity: gen.SeverityError,
				Message:  err.Error(),
			})
		},
	}
	if cfg.Customize != nil {
		cfg.Customize(&tcfg)
	}

	// Check reports everything through tcfg.Error; its return value adds nothing.
	pkg, _ := tcfg.Check(c.files[0].Name.Name, c.fset, c.files, nil)
	c.pkg = pkg
}

// Clone returns a snapshot of the unit under a fresh identity. The parsed
// trees, sources, and diagnostics are shared; nothing is re-parsed.
func (c *Compilation) Clone() *Compilation {
	cp := *c
	cp.id = compilationID.Add(1)
	return &cp
}

// ID returns the unit's unique identity.
func (c *Compilation) ID() uint64 { return c.id }

// Fset returns the unit's file set.
func (c *Compilation) Fset() *token.FileSet { return c.fset }

// Files returns the parsed syntax trees.
func (c *Compilation) Files() []*ast.File { return c.files }

// Sources returns the synthesized source files in build order.
func (c *Compilation) Sources() []SourceFile { return c.sources }

// Package returns the type-checked package, nil when parsing failed.
func (c *Compilation) Package() *types.Package { return c.pkg }

// Diagnostics returns the parse and type check diagnostics.
func (c *Compilation) Diagnostics() []gen.Diagnostic { return c.diags }
