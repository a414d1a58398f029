package gen

import "strings"

// Infrastructure naming rules. These are exact string rules, not heuristics:
// checks must always see the same artifacts regardless of which generator runs,
// so the rules are fixed constants rather than configuration.

// markerHintToken marks a generated file as a marker declaration artifact
// anywhere in its hint name.
const markerHintToken = ".markers."

// infraFileSuffixes are the hint name suffixes that brand a generated file as
// owned by the platform rather than by the generator under test.
var infraFileSuffixes = []string{
	"_markers.gen.go",
	"_directives.gen.go",
}

// infraStepTokens are the substrings that brand a pipeline step as one of the
// driver's own built-in steps.
var infraStepTokens = []string{
	"host.",
	"postInit",
	"sourceOutput",
}

// IsInfrastructureFile reports whether a generated file hint name belongs to
// the platform (marker declarations and similar synthetic outputs) rather
// than to the generator under test.
func IsInfrastructureFile(hint string) bool {
	if strings.Contains(hint, markerHintToken) {
		return true
	}
	for _, suffix := range infraFileSuffixes {
		if strings.HasSuffix(hint, suffix) {
			return true
		}
	}
	return false
}

// IsInfrastructureStep reports whether a pipeline step name belongs to the
// driver's own built-in steps rather than to the generator under test.
func IsInfrastructureStep(name string) bool {
	for _, token := range infraStepTokens {
		if strings.Contains(name, token) {
			return true
		}
	}
	return false
}
