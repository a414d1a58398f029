// Package modelgen is a small but real incremental generator used by the
// toolkit's own tests, documentation, and CLI scenarios. It reacts to the
// //genassert:model directive on struct type declarations and emits an
// accessor file per annotated type.
package modelgen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"sort"
	"strings"

	"go.trai.ch/genassert/gen"
	"go.trai.ch/genassert/registry"
)

const (
	// Name is the generator's registry name.
	Name = "modelgen"

	// Directive marks a struct type declaration for generation.
	Directive = "//genassert:model"

	// DiagNoFields is reported for an annotated type with no fields.
	DiagNoFields = "MODELGEN001"

	markerHint = "genassert_markers.gen.go"
)

const markerSource = `package genassert

// Code generated marker declarations.
//
// A struct type carrying the ` + "`//genassert:model`" + ` directive in its doc
// comment is picked up by modelgen.
`

func init() {
	registry.Register(Name, func() gen.Generator { return New() })
}

// Generator implements gen.Generator.
type Generator struct{}

// New creates a modelgen generator.
func New() *Generator { return &Generator{} }

// Name implements gen.Generator.
func (g *Generator) Name() string { return Name }

// Pipeline declares two steps: model extraction from the source texts, and
// rendering. Both steps derive their output purely from source content, so
// the pipeline stays cacheable across no-op edits.
func (g *Generator) Pipeline(p *gen.Pipeline) {
	p.MarkerOutput(markerHint, []byte(markerSource))
	p.Step("models", extractModels, gen.StepSources)
	p.Step("render", renderModels, "models")
}

// extractModels parses each source text and produces one value per annotated
// type. The value's key is the type name and its data is the serialized
// model, so a no-op edit yields byte-identical values.
func extractModels(ctx gen.StepContext, in []gen.Value) ([]gen.Value, error) {
	var out []gen.Value
	for _, src := range in {
		fset := token.NewFileSet()
		file, err := parser.ParseFile(fset, src.Key, src.Data, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			// The compilation layer already reported parse errors.
			continue
		}

		for _, m := range modelsIn(file) {
			if len(m.fields) == 0 {
				ctx.ReportDiagnostic(gen.Diagnostic{
					ID:       DiagNoFields,
					Severity: gen.SeverityWarning,
					Message:  fmt.Sprintf("model %s has no fields, nothing to generate accessors for", m.name),
					Pos:      fset.Position(m.pos).String(),
				})
			}
			out = append(out, gen.Value{Key: m.name, Data: m.serialize(file.Name.Name)})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// renderModels emits <TypeName>.gen.go for each extracted model.
func renderModels(ctx gen.StepContext, in []gen.Value) ([]gen.Value, error) {
	out := make([]gen.Value, 0, len(in))
	for _, v := range in {
		m, err := deserialize(v.Data)
		if err != nil {
			return nil, err
		}
		content := m.render()
		hint := m.name + ".gen.go"
		ctx.EmitFile(hint, content)
		out = append(out, gen.Value{Key: hint, Data: content})
	}
	return out, nil
}

type field struct {
	name string
	typ  string
}

type model struct {
	pkg    string
	name   string
	pos    token.Pos
	fields []field
}

// modelsIn finds the annotated struct types of a file in declaration order.
func modelsIn(file *ast.File) []model {
	var models []model
	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				continue
			}
			if !hasDirective(gd.Doc) && !hasDirective(ts.Doc) {
				continue
			}

			m := model{name: ts.Name.Name, pos: ts.Pos()}
			for _, f := range st.Fields.List {
				typ := types.ExprString(f.Type)
				for _, fname := range f.Names {
					m.fields = append(m.fields, field{name: fname.Name, typ: typ})
				}
			}
			models = append(models, m)
		}
	}
	return models
}

func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}
	for _, c := range doc.List {
		if strings.HasPrefix(strings.TrimSpace(c.Text), Directive) {
			return true
		}
	}
	return false
}

// serialize writes the model as "pkg\nname\nfield\ttype\n...". The format
// only needs to be deterministic and reversible inside this generator.
func (m model) serialize(pkg string) []byte {
	var b strings.Builder
	b.WriteString(pkg)
	b.WriteByte('\n')
	b.WriteString(m.name)
	b.WriteByte('\n')
	for _, f := range m.fields {
		b.WriteString(f.name)
		b.WriteByte('\t')
		b.WriteString(f.typ)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func deserialize(data []byte) (model, error) {
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) < 2 {
		return model{}, fmt.Errorf("malformed model data: %q", data)
	}
	m := model{pkg: lines[0], name: lines[1]}
	for _, line := range lines[2:] {
		name, typ, ok := strings.Cut(line, "\t")
		if !ok {
			return model{}, fmt.Errorf("malformed model field: %q", line)
		}
		m.fields = append(m.fields, field{name: name, typ: typ})
	}
	return m, nil
}

// render emits the accessor file for the model.
func (m model) render() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by %s. DO NOT EDIT.\n\n", Name)
	fmt.Fprintf(&b, "package %s\n\n", m.pkg)
	for _, f := range m.fields {
		// A plain getter cannot share the field's name, hence the Get prefix.
		fmt.Fprintf(&b, "// Get%s returns the %s field.\nfunc (m *%s) Get%s() %s {\n\treturn m.%s\n}\n\n",
			title(f.name), f.name, m.name, title(f.name), f.typ, f.name)
	}
	fmt.Fprintf(&b, "// Fields lists the model's field names.\nfunc (m *%s) Fields() []string {\n\treturn %#v\n}\n", m.name, m.fieldNames())
	return []byte(b.String())
}

func (m model) fieldNames() []string {
	names := make([]string, 0, len(m.fields))
	for _, f := range m.fields {
		names = append(names, f.name)
	}
	return names
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
