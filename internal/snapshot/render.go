// render.go turns a Snapshot into the memory artifact: a markdown document
// with a fixed, stably ordered set of sections. Rendering is deterministic —
// no timestamps, map keys sorted — so re-scanning an unmodified tree yields
// byte-identical output.
package snapshot

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SectionHeaders lists the mandatory artifact sections in render order.
// Every header appears in every artifact, with an explicit placeholder when
// a section has nothing to report.
var SectionHeaders = []string{
	"IDENTITY",
	"TECH_STACK",
	"DEPENDENCIES",
	"ENV_VARS",
	"FILES",
	"CONNECTIONS",
	"RUN",
	"CHANGES",
}

// placeholder is the explicit empty-state marker for sections with no
// findings. Consumers rely on headers never being omitted.
const placeholder = "# nothing detected"

// maxRenderedSymbols bounds the symbol list shown per file entry.
const maxRenderedSymbols = 5

// Render produces the artifact document for the snapshot.
func Render(s *Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s SNAPSHOT\n", s.Identity.Name)
	b.WriteString("> Project memory generated by guardian — read before any change.\n")

	writeSection(&b, "IDENTITY", "yaml", renderIdentity(s.Identity))
	writeSection(&b, "TECH_STACK", "yaml", renderTechStack(s))
	writeSection(&b, "DEPENDENCIES", "yaml", renderDependencies(s.Dependencies))
	writeSection(&b, "ENV_VARS", "yaml", renderEnvVars(s.EnvVars))
	writeSection(&b, "FILES", "", renderFiles(s))
	writeSection(&b, "CONNECTIONS", "yaml", renderConnections(s))
	writeSection(&b, "RUN", "bash", renderRun(s.Run))
	writeSection(&b, "CHANGES", "yaml", "# no changes logged")

	return b.String()
}

func writeSection(b *strings.Builder, header, lang, body string) {
	b.WriteString("\n---\n\n")
	fmt.Fprintf(b, "## %s\n", header)
	fmt.Fprintf(b, "```%s\n", lang)
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n```\n")
}

func renderIdentity(id Identity) string {
	out, err := yaml.Marshal(id)
	if err != nil {
		return placeholder
	}
	return string(out)
}

func renderTechStack(s *Snapshot) string {
	doc := make(map[string]any, len(s.TechStack)+1)
	for role, value := range s.TechStack {
		doc[role] = value
	}
	doc["has_database"] = s.HasDatabase
	// yaml.Marshal sorts map keys, which keeps the block deterministic.
	out, err := yaml.Marshal(doc)
	if err != nil {
		return placeholder
	}
	return string(out)
}

func renderDependencies(deps Dependencies) string {
	var b strings.Builder
	b.WriteString("frontend:\n")
	b.WriteString(renderDepMap(deps.Frontend))
	b.WriteString("backend:\n")
	b.WriteString(renderDepMap(deps.Backend))
	return b.String()
}

func renderDepMap(m map[string]string) string {
	if len(m) == 0 {
		return "  " + placeholder + "\n"
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > MaxDependencies {
		names = names[:MaxDependencies]
	}
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %s\n", name, m[name])
	}
	return b.String()
}

func renderEnvVars(vars []EnvVar) string {
	if len(vars) == 0 {
		return placeholder
	}
	var required, optional []EnvVar
	for _, v := range vars {
		if v.Required {
			required = append(required, v)
		} else {
			optional = append(optional, v)
		}
	}
	var b strings.Builder
	b.WriteString("required:\n")
	b.WriteString(renderEnvList(required))
	b.WriteString("optional:\n")
	b.WriteString(renderEnvList(optional))
	return b.String()
}

func renderEnvList(vars []EnvVar) string {
	if len(vars) == 0 {
		return "  # none\n"
	}
	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "  - %s: %s\n", v.Name, v.Description)
	}
	return b.String()
}

func renderFiles(s *Snapshot) string {
	if len(s.FileOrder) == 0 {
		return placeholder
	}
	paths := s.FileOrder
	truncated := 0
	if len(paths) > MaxRenderedFiles {
		truncated = len(paths) - MaxRenderedFiles
		paths = paths[:MaxRenderedFiles]
	}
	var b strings.Builder
	for _, path := range paths {
		rec := s.Files[path]
		fmt.Fprintf(&b, "%s: %s | %s\n", path, rec.Purpose, renderSymbols(rec.Symbols))
	}
	if truncated > 0 {
		fmt.Fprintf(&b, "# ... and %d more files (truncated)\n", truncated)
	}
	return b.String()
}

func renderSymbols(symbols []string) string {
	if len(symbols) == 0 {
		return "-"
	}
	if len(symbols) > maxRenderedSymbols {
		symbols = symbols[:maxRenderedSymbols]
	}
	return strings.Join(symbols, ", ")
}

func renderConnections(s *Snapshot) string {
	ports := s.SortedPorts()
	if len(ports) == 0 {
		return placeholder
	}
	var b strings.Builder
	for _, port := range ports {
		fmt.Fprintf(&b, "port_%d: %s\n", port, s.Connections[port])
	}
	return b.String()
}

func renderRun(run map[string]string) string {
	if len(run) == 0 {
		return placeholder
	}
	roles := make([]string, 0, len(run))
	for role := range run {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	var b strings.Builder
	for _, role := range roles {
		fmt.Fprintf(&b, "%s: %s\n", role, run[role])
	}
	return b.String()
}
