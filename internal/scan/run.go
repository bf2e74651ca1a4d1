// run.go proposes service start commands. Output is advisory text only —
// nothing is ever executed.
package scan

import (
	"path/filepath"

	"guardian/internal/snapshot"
)

// backendEntryPoints is the ordered probe list for Python entry points:
// root level first, then the conventional api/ subdirectory. The first
// existing path wins.
var backendEntryPoints = []struct {
	rel     string
	command string
}{
	{"main.py", "uvicorn main:app --reload"},
	{"api/main.py", "cd api && uvicorn main:app --reload"},
}

// inferRun populates snap.Run from manifest script entries and known
// backend entry points.
func inferRun(root string, snap *snapshot.Snapshot) {
	if pkg, ok := readPackageJSON(root); ok {
		// An explicit dev script is preferred over a generic start.
		if _, ok := pkg.Scripts["dev"]; ok {
			snap.Run["frontend"] = "npm run dev"
		} else if _, ok := pkg.Scripts["start"]; ok {
			snap.Run["frontend"] = "npm start"
		}
		if _, ok := pkg.Scripts["test"]; ok {
			snap.Run["test_frontend"] = "npm test"
		}
	}

	if !fileExists(filepath.Join(root, "requirements.txt")) {
		return
	}
	for _, ep := range backendEntryPoints {
		if fileExists(filepath.Join(root, filepath.FromSlash(ep.rel))) {
			snap.Run["backend"] = ep.command
			return
		}
	}
}
