package scan

import (
	"os"
	"path/filepath"
	"strings"

	"guardian/internal/snapshot"
)

// purposePlaceholder is rendered when no README purpose line is found, so
// the artifact's consumer knows the field still needs a human answer.
const purposePlaceholder = "{{ONE_LINE_PURPOSE}}"

// maxPurposeLen bounds the one-line purpose extracted from the README.
const maxPurposeLen = 100

// detectIdentity fills the project name, guessed purpose, and status.
func detectIdentity(root string, snap *snapshot.Snapshot) {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	snap.Identity = snapshot.Identity{
		Name:    filepath.Base(abs),
		Purpose: guessPurpose(root),
		Status:  "development",
	}
}

// guessPurpose takes the first non-heading, non-empty line after the README
// title as the project's one-line purpose.
func guessPurpose(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "README.md"))
	if err != nil {
		return purposePlaceholder
	}
	content := string(data)
	if len(content) > 500 {
		content = content[:500]
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if i == 0 {
			continue // the title line
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) > maxPurposeLen {
			line = line[:maxPurposeLen]
		}
		return line
	}
	return purposePlaceholder
}
