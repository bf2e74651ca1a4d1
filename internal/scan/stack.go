// stack.go infers the tech stack and dependency mappings from root
// manifests. No package resolver is involved: detection is manifest text
// plus fixed-priority reducers, so competing frameworks resolve
// deterministically instead of merging.
package scan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"guardian/internal/snapshot"
)

// packageJSON is the subset of a JS-ecosystem manifest the detectors read.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

// readPackageJSON loads <root>/package.json. A missing or malformed
// manifest contributes nothing — the second return is false.
func readPackageJSON(root string) (packageJSON, bool) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return packageJSON{}, false
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return packageJSON{}, false
	}
	return pkg, true
}

// frontendPriority is the fixed tie-break order for competing frontend
// frameworks: the first dependency present wins, later ones are ignored.
var frontendPriority = []struct {
	dep    string
	render func(version string) string
}{
	{"react", func(v string) string { return strings.TrimSpace("React " + v) }},
	{"vue", func(v string) string { return strings.TrimSpace("Vue " + v) }},
	{"svelte", func(string) string { return "Svelte" }},
	{"next", func(string) string { return "Next.js" }},
}

// stylingPriority is the fixed tie-break order for styling libraries.
var stylingPriority = []struct {
	dep   string
	value string
}{
	{"tailwindcss", "Tailwind CSS"},
	{"styled-components", "Styled Components"},
}

// backendPriority is the fixed tie-break order for Python backend
// frameworks, matched as substrings of the raw manifest text.
var backendPriority = []struct {
	needle string
	value  string
}{
	{"fastapi", "FastAPI"},
	{"django", "Django"},
	{"flask", "Flask"},
}

// importantFrontendDeps is the allowlist recorded into the frontend
// dependency mapping.
var importantFrontendDeps = []string{
	"react", "vue", "next", "electron", "tailwindcss",
	"typescript", "vite", "webpack", "express",
}

// maxBackendDeps caps the backend dependency mapping; excess lines are
// silently dropped.
const maxBackendDeps = snapshot.MaxDependencies

// detectStack populates snap.TechStack and snap.Dependencies from the root
// manifests. Missing manifests yield an empty mapping, never an error.
func detectStack(root string, snap *snapshot.Snapshot) {
	pkg, hasPkg := readPackageJSON(root)
	if hasPkg {
		detectFrontend(pkg, snap)
	}

	pyText := readPythonManifests(root)
	if pyText != "" {
		lower := strings.ToLower(pyText)
		for _, b := range backendPriority {
			if strings.Contains(lower, b.needle) {
				snap.TechStack["backend"] = b.value
				break
			}
		}
	}

	detectLanguage(pkg, hasPkg, pyText != "", root, snap)
	detectBackendDeps(root, snap)
}

func detectFrontend(pkg packageJSON, snap *snapshot.Snapshot) {
	all := make(map[string]string, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for k, v := range pkg.Dependencies {
		all[k] = v
	}
	for k, v := range pkg.DevDependencies {
		all[k] = v
	}

	for _, f := range frontendPriority {
		if v, ok := all[f.dep]; ok {
			snap.TechStack["frontend"] = f.render(trimVersion(v))
			break
		}
	}
	for _, s := range stylingPriority {
		if _, ok := all[s.dep]; ok {
			snap.TechStack["styling"] = s.value
			break
		}
	}
	if _, ok := all["electron"]; ok {
		snap.TechStack["frontend"] = strings.TrimSpace(snap.TechStack["frontend"] + " + Electron")
	}

	for _, dep := range importantFrontendDeps {
		if v, ok := pkg.Dependencies[dep]; ok {
			snap.Dependencies.Frontend[dep] = trimVersion(v)
		}
	}
}

func detectLanguage(pkg packageJSON, hasPkg, hasPython bool, root string, snap *snapshot.Snapshot) {
	switch {
	case hasPkg && (hasDep(pkg, "typescript") || fileExists(filepath.Join(root, "tsconfig.json"))):
		snap.TechStack["language"] = "TypeScript"
	case hasPkg:
		snap.TechStack["language"] = "JavaScript"
	case hasPython:
		snap.TechStack["language"] = "Python"
	}
}

// readPythonManifests concatenates the Python dependency manifests found at
// the root (requirements.txt and pyproject.toml), read verbatim.
func readPythonManifests(root string) string {
	var parts []string
	for _, name := range []string{"requirements.txt", "pyproject.toml"} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n")
}

// detectBackendDeps reads requirements.txt line by line: comments and
// continuation markers stripped, name==version split, bare names mapped to
// "latest", capped at maxBackendDeps.
func detectBackendDeps(root string, snap *snapshot.Snapshot) {
	data, err := os.ReadFile(filepath.Join(root, "requirements.txt"))
	if err != nil {
		return
	}
	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if count >= maxBackendDeps {
			break
		}
		line = strings.TrimSuffix(strings.TrimSpace(line), "\\")
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		name, version, found := strings.Cut(line, "==")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if found {
			snap.Dependencies.Backend[name] = strings.TrimSpace(version)
		} else {
			snap.Dependencies.Backend[name] = "latest"
		}
		count++
	}
}

// detectDatabase flags the snapshot when any database-like file appears in
// the enumerated tree. No engine disambiguation.
func detectDatabase(entries []fileEntry, snap *snapshot.Snapshot) {
	for _, e := range entries {
		if databaseExts[e.ext] {
			snap.HasDatabase = true
			return
		}
	}
}

func hasDep(pkg packageJSON, name string) bool {
	if _, ok := pkg.Dependencies[name]; ok {
		return true
	}
	_, ok := pkg.DevDependencies[name]
	return ok
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// trimVersion strips range prefixes (^, ~) from a manifest version.
func trimVersion(v string) string {
	return strings.TrimLeft(v, "^~")
}
