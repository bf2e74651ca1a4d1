// Package artifact locates and reads back a previously rendered memory
// artifact, and supports the small append operations the MCP tools perform
// between full scans (logging a change, registering a file).
//
// The artifact may live in several conventional locations depending on
// which editor's delivery layer placed it; this package only resolves and
// reads, it never decides placement for a fresh scan.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Locations are the candidate artifact paths relative to the project root,
// probed in order.
var Locations = []string{
	".cursor/rules/guardian.mdc",
	".windsurf/rules/guardian.md",
	".github/copilot-instructions.md",
	"CLAUDE.md",
	"guardian.mdc",
}

// DefaultName is where a fresh scan writes when no artifact exists yet.
const DefaultName = "guardian.mdc"

// cacheSize bounds the read-through content cache. Entries are keyed by
// path+mtime+size, so a rewritten artifact misses naturally.
const cacheSize = 16

type cacheKey struct {
	path  string
	mtime int64
	size  int64
}

// Memory provides read/append access to a project's artifact.
type Memory struct {
	root  string
	path  string // resolved artifact path, "" when none exists
	cache *lru.Cache[cacheKey, string]
}

// Find returns the first existing artifact path under root, or "" when the
// project has no artifact yet.
func Find(root string) string {
	for _, rel := range Locations {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// New resolves the artifact location under root. The returned Memory is
// usable even when no artifact exists — Exists reports the difference.
func New(root string) *Memory {
	cache, _ := lru.New[cacheKey, string](cacheSize)
	return &Memory{root: root, path: Find(root), cache: cache}
}

// Exists reports whether an artifact was found.
func (m *Memory) Exists() bool { return m.path != "" }

// Path returns the resolved artifact path ("" when none exists).
func (m *Memory) Path() string { return m.path }

// WritePath returns where artifact content should be written: the existing
// location when one exists, otherwise the default name at the root.
func (m *Memory) WritePath() string {
	if m.path != "" {
		return m.path
	}
	return filepath.Join(m.root, DefaultName)
}

// WritePathFor resolves an explicit artifact location relative to root.
// Parent directories are created so callers can write immediately.
func WritePathFor(root, rel string) string {
	path := filepath.Join(root, rel)
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	return path
}

// Read returns the artifact content, served from the cache when the file
// is unchanged.
func (m *Memory) Read() (string, error) {
	if m.path == "" {
		return "", fmt.Errorf("artifact: no artifact found under %s", m.root)
	}
	info, err := os.Stat(m.path)
	if err != nil {
		return "", fmt.Errorf("artifact: stat %s: %w", m.path, err)
	}
	key := cacheKey{path: m.path, mtime: info.ModTime().UnixNano(), size: info.Size()}
	if content, ok := m.cache.Get(key); ok {
		return content, nil
	}
	data, err := os.ReadFile(m.path)
	if err != nil {
		return "", fmt.Errorf("artifact: read %s: %w", m.path, err)
	}
	content := string(data)
	m.cache.Add(key, content)
	return content, nil
}

// Section extracts the body of a "## NAME" section, without the
// surrounding code fence. Returns false when the section is absent.
func (m *Memory) Section(name string) (string, bool) {
	content, err := m.Read()
	if err != nil {
		return "", false
	}
	return extractSection(content, name)
}

func extractSection(content, name string) (string, bool) {
	pattern := regexp.MustCompile(`(?ms)^## ` + regexp.QuoteMeta(name) + `\s*\n(.*?)(?:^## |\z)`)
	match := pattern.FindStringSubmatch(content)
	if match == nil {
		return "", false
	}
	return stripFences(match[1]), true
}

// stripFences removes markdown code fence markers and horizontal rules
// from a section body.
func stripFences(body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || trimmed == "---" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// TechStack parses the TECH_STACK section into a role -> value mapping.
// Comment lines and placeholders are skipped.
func (m *Memory) TechStack() map[string]string {
	body, ok := m.Section("TECH_STACK")
	if !ok {
		return map[string]string{}
	}
	stack := map[string]string{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key != "" && value != "" {
			stack[key] = value
		}
	}
	return stack
}

// FileEntry is one parsed FILES section entry.
type FileEntry struct {
	Purpose string
	Symbols []string
}

// Files parses the FILES section into a path -> entry mapping.
func (m *Memory) Files() map[string]FileEntry {
	body, ok := m.Section("FILES")
	if !ok {
		return map[string]FileEntry{}
	}
	files := map[string]FileEntry{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, "|") {
			continue
		}
		path, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		purpose, symbolPart, _ := strings.Cut(rest, "|")
		entry := FileEntry{Purpose: strings.TrimSpace(purpose)}
		for _, sym := range strings.Split(symbolPart, ",") {
			sym = strings.TrimSpace(sym)
			if sym != "" && sym != "-" {
				entry.Symbols = append(entry.Symbols, sym)
			}
		}
		files[strings.TrimSpace(path)] = entry
	}
	return files
}

// AddChange appends a change entry to the CHANGES section:
// "- <date>: <description> | <files>". The date comes from the caller so
// rendering itself stays clock-free.
func (m *Memory) AddChange(date, description string, files []string) error {
	entry := fmt.Sprintf("- %s: %s", date, description)
	if len(files) > 0 {
		entry += " | " + strings.Join(files, ", ")
	}
	return m.insertInSection("CHANGES", entry)
}

// AddFile appends a file registration to the FILES section in the rendered
// entry format.
func (m *Memory) AddFile(path, purpose string, symbols []string) error {
	symbolText := "-"
	if len(symbols) > 0 {
		symbolText = strings.Join(symbols, ", ")
	}
	return m.insertInSection("FILES", fmt.Sprintf("%s: %s | %s", path, purpose, symbolText))
}

// insertInSection writes a new line immediately after the section's opening
// code fence.
func (m *Memory) insertInSection(section, line string) error {
	content, err := m.Read()
	if err != nil {
		return err
	}
	pattern := regexp.MustCompile(`(?ms)(^## ` + regexp.QuoteMeta(section) + `\s*\n.*?` + "^```[a-z]*\n)")
	loc := pattern.FindStringIndex(content)
	if loc == nil {
		return fmt.Errorf("artifact: section %s not found in %s", section, m.path)
	}
	updated := content[:loc[1]] + line + "\n" + content[loc[1]:]
	if err := os.WriteFile(m.path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("artifact: write %s: %w", m.path, err)
	}
	return nil
}
