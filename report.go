package genassert

import (
	"fmt"
	"sort"
	"strings"

	"go.trai.ch/genassert/gen"
)

// Report formatting. Reports are multi-line, deterministic (sorted), and
// meant to be read in a test failure, so they always spell out what was
// expected and what actually happened.

func diagnosticReport(id string, sev gen.Severity, diags []gen.Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "expected diagnostic %s [%s] was not produced\n", id, sev)
	b.WriteString("produced diagnostics:\n")
	writeDiagnostics(&b, diags)
	return b.String()
}

func fileReport(missing, produced []string, diags []gen.Diagnostic) string {
	var b strings.Builder
	b.WriteString("expected generated files are missing\n")
	b.WriteString("missing:\n")
	for _, hint := range missing {
		fmt.Fprintf(&b, "  %s\n", hint)
	}
	b.WriteString("produced:\n")
	if len(produced) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, hint := range produced {
		fmt.Fprintf(&b, "  %s\n", hint)
	}
	b.WriteString("diagnostics:\n")
	writeDiagnostics(&b, diags)
	return b.String()
}

func cacheReport(bad map[string][]gen.StepOutput) string {
	names := make([]string, 0, len(bad))
	for name := range bad {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("steps were recomputed on a run that changed nothing\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s:\n", name)
		for _, out := range bad[name] {
			fmt.Fprintf(&b, "    %s: %s\n", out.Key, out.Reason)
		}
	}
	b.WriteString("every step must report cached or unchanged outputs on an unchanged compilation")
	return b.String()
}

func stepReport(steps map[string][]gen.StepOutput) string {
	var user, infra []string
	for name := range steps {
		if gen.IsInfrastructureStep(name) {
			infra = append(infra, name)
		} else {
			user = append(user, name)
		}
	}
	sort.Strings(user)
	sort.Strings(infra)

	var b strings.Builder
	b.WriteString("generator steps:\n")
	writeStepSection(&b, steps, user)
	b.WriteString("infrastructure steps:\n")
	writeStepSection(&b, steps, infra)
	return b.String()
}

func writeStepSection(b *strings.Builder, steps map[string][]gen.StepOutput, names []string) {
	if len(names) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, name := range names {
		counts := make(map[gen.RunReason]int)
		for _, out := range steps[name] {
			counts[out.Reason]++
		}
		parts := make([]string, 0, len(counts))
		for _, reason := range []gen.RunReason{
			gen.ReasonCached, gen.ReasonUnchanged, gen.ReasonModified, gen.ReasonNew, gen.ReasonRemoved,
		} {
			if n := counts[reason]; n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", n, reason))
			}
		}
		if len(parts) == 0 {
			parts = append(parts, "no outputs")
		}
		fmt.Fprintf(b, "  %s: %s\n", name, strings.Join(parts, ", "))
	}
}

func writeDiagnostics(b *strings.Builder, diags []gen.Diagnostic) {
	if len(diags) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	for _, d := range diags {
		fmt.Fprintf(b, "  %s\n", d)
	}
}
