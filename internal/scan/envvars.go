// envvars.go detects environment variables from env sample files.
// godotenv does the actual value parsing (quotes, export prefixes); the
// line scan only recovers declaration order, which parsing into a map loses.
package scan

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"guardian/internal/snapshot"
)

// envSampleFiles is the ordered list of env sample candidates; only the
// first existing file is read.
var envSampleFiles = []string{".env.example", ".env.sample"}

// envKeyPattern extracts the declared variable name from a raw line.
var envKeyPattern = regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z_][A-Za-z0-9_.]*)\s*=`)

// detectEnvVars reads the first env sample file found and records its
// variables, in declaration order, as required env vars.
func detectEnvVars(root string, snap *snapshot.Snapshot) {
	for _, name := range envSampleFiles {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		parsed, err := godotenv.Unmarshal(string(data))
		if err != nil {
			return // malformed sample contributes nothing
		}
		snap.EnvVars = appendEnvVars(snap.EnvVars, string(data), parsed, name)
		return
	}
}

// appendEnvVars walks the raw lines in order, keeping only names godotenv
// accepted, de-duplicated first-seen-wins.
func appendEnvVars(vars []snapshot.EnvVar, raw string, parsed map[string]string, source string) []snapshot.EnvVar {
	seen := make(map[string]bool, len(parsed))
	for _, v := range vars {
		seen[v.Name] = true
	}
	for _, line := range strings.Split(raw, "\n") {
		m := envKeyPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		name := m[1]
		if _, ok := parsed[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, snapshot.EnvVar{
			Name:        name,
			Description: "declared in " + source,
			Required:    true,
		})
	}
	return vars
}
