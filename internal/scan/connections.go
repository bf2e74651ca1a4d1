// connections.go scans source and config text for port literals. The merge
// policy is first-seen-wins over the walk's enumeration order: the earliest
// file that declares a port is treated as authoritative, and later
// incidental references (a caller citing an already-declared port) never
// overwrite it.
package scan

import (
	"regexp"
	"strconv"

	"guardian/internal/snapshot"
)

// connectionExts is the allowed extension set for port scanning.
var connectionExts = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".env": true, ".json": true,
}

// portPatterns match the three fixed port-literal forms: assignment,
// host:port, and uppercase env-style. Group 1 is the numeric value.
var portPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)port["']?\s*[=:]\s*(\d{4,5})`),
	regexp.MustCompile(`localhost:(\d{4,5})`),
	regexp.MustCompile(`127\.0\.0\.1:(\d{4,5})`),
	regexp.MustCompile(`\bPORT\s*=\s*(\d{4,5})`),
}

// detectConnections records port literals from the enumerated files into
// the snapshot. Out-of-range values are discarded; unreadable files are
// skipped.
func detectConnections(entries []fileEntry, snap *snapshot.Snapshot) {
	for _, e := range entries {
		if !connectionExts[e.ext] {
			continue
		}
		content, ok := readCapped(e.abs)
		if !ok {
			continue
		}
		for _, p := range portPatterns {
			for _, m := range p.FindAllStringSubmatch(content, -1) {
				port, err := strconv.Atoi(m[1])
				if err != nil {
					continue
				}
				snap.RecordConnection(port, e.rel)
			}
		}
	}
}
