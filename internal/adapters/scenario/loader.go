// Package scenario provides the YAML scenario file loader.
package scenario

import (
	"os"
	"path/filepath"

	"go.trai.ch/genassert/gen"
	"go.trai.ch/genassert/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// FileLoader implements ports.ScenarioLoader using a YAML file.
type FileLoader struct{}

// New creates a new FileLoader.
func New() *FileLoader {
	return &FileLoader{}
}

// ScenarioFile represents the structure of a scenario YAML file.
type ScenarioFile struct {
	Version   string        `yaml:"version"`
	Scenarios []ScenarioDTO `yaml:"scenarios"`
}

// ScenarioDTO represents a single scenario definition in the file.
type ScenarioDTO struct {
	Name      string    `yaml:"name"`
	Generator string    `yaml:"generator"`
	Sources   []string  `yaml:"sources"`
	Files     []string  `yaml:"sourceFiles"`
	Expect    ExpectDTO `yaml:"expect"`
}

// ExpectDTO represents the expectations block of a scenario.
type ExpectDTO struct {
	Diagnostics []DiagnosticDTO `yaml:"diagnostics"`
	Files       []string        `yaml:"files"`
	Cached      bool            `yaml:"cached"`
}

// DiagnosticDTO represents one expected diagnostic.
type DiagnosticDTO struct {
	ID       string `yaml:"id"`
	Severity string `yaml:"severity"`
}

// Load reads the scenario file at path and returns its scenarios in
// declaration order. Entries under sourceFiles are read relative to the
// scenario file's directory and appended to the inline sources.
func (l *FileLoader) Load(path string) ([]domain.Scenario, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read scenario file")
	}

	var file ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse scenario file")
	}

	if len(file.Scenarios) == 0 {
		return nil, zerr.With(domain.ErrNoScenariosDefined, "path", path)
	}

	dir := filepath.Dir(path)
	seen := make(map[string]bool, len(file.Scenarios))
	scenarios := make([]domain.Scenario, 0, len(file.Scenarios))

	for i, dto := range file.Scenarios {
		s, err := l.convert(dir, dto)
		if err != nil {
			return nil, zerr.With(err, "index", i)
		}
		if seen[s.Name] {
			return nil, zerr.With(domain.ErrDuplicateScenarioName, "scenario", s.Name)
		}
		seen[s.Name] = true
		scenarios = append(scenarios, s)
	}

	return scenarios, nil
}

func (l *FileLoader) convert(dir string, dto ScenarioDTO) (domain.Scenario, error) {
	if dto.Name == "" {
		return domain.Scenario{}, domain.ErrMissingScenarioName
	}
	if dto.Generator == "" {
		return domain.Scenario{}, zerr.With(domain.ErrMissingGenerator, "scenario", dto.Name)
	}

	sources := append([]string(nil), dto.Sources...)
	for _, name := range dto.Files {
		data, err := os.ReadFile(filepath.Join(dir, name)) //nolint:gosec // resolved against the scenario file
		if err != nil {
			return domain.Scenario{}, zerr.With(zerr.Wrap(err, "failed to read source file"), "scenario", dto.Name)
		}
		sources = append(sources, string(data))
	}
	if len(sources) == 0 {
		return domain.Scenario{}, zerr.With(domain.ErrMissingSources, "scenario", dto.Name)
	}

	for _, d := range dto.Expect.Diagnostics {
		if _, err := gen.ParseSeverity(d.Severity); err != nil {
			return domain.Scenario{}, zerr.With(err, "scenario", dto.Name)
		}
	}

	s := domain.Scenario{
		Name:      dto.Name,
		Generator: dto.Generator,
		Sources:   sources,
		Expect: domain.Expectations{
			Files:  dto.Expect.Files,
			Cached: dto.Expect.Cached,
		},
	}
	for _, d := range dto.Expect.Diagnostics {
		s.Expect.Diagnostics = append(s.Expect.Diagnostics, domain.DiagnosticExpectation{
			ID:       d.ID,
			Severity: d.Severity,
		})
	}

	if !s.HasChecks() {
		return domain.Scenario{}, zerr.With(domain.ErrNoChecksDeclared, "scenario", s.Name)
	}
	return s, nil
}
