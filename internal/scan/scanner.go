package scan

import (
	"fmt"
	"os"

	"guardian/internal/snapshot"
)

// Scanner runs one full project inspection. Phases execute strictly
// sequentially over a single Snapshot: identity, tree walk and file
// classification, tech stack, env vars, connections, run commands. The run
// inferrer depends on the tech-stack phase having completed, so there is no
// parallelism anywhere — correctness of first-seen-wins depends on the
// deterministic enumeration order.
type Scanner struct {
	root string
}

// New validates the fatal precondition — root must be a readable
// directory — and returns a Scanner for it. Everything past this point is
// non-fatal: per-entry errors are swallowed, malformed manifests contribute
// nothing.
func New(root string) (*Scanner, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan: root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan: root %q is not a directory", root)
	}
	return &Scanner{root: root}, nil
}

// Root returns the scan root path.
func (s *Scanner) Root() string { return s.root }

// Scan performs the full single-pass inspection and returns the populated
// snapshot. The computation is one-shot and idempotent over the current
// filesystem state; re-invocation is the retry strategy.
func (s *Scanner) Scan() (*snapshot.Snapshot, error) {
	snap := snapshot.New()

	detectIdentity(s.root, snap)

	entries := walkTree(s.root)
	detectDatabase(entries, snap)
	detectStack(s.root, snap)
	detectEnvVars(s.root, snap)
	s.scanFiles(entries, snap)
	detectConnections(entries, snap)
	inferRun(s.root, snap)

	snap.BuildIndex()
	return snap, nil
}

// scanFiles classifies every enumerated file and extracts symbols from
// supported code files. Binary assets are listed without a content read.
func (s *Scanner) scanFiles(entries []fileEntry, snap *snapshot.Snapshot) {
	for _, e := range entries {
		category := Classify(e.name, e.ext)
		rec := &snapshot.FileRecord{
			Purpose:  inferPurpose(e.rel, e.name, e.ext, category),
			Category: category,
		}
		if category == snapshot.CategoryCode {
			if lang := LanguageForExt(e.ext); lang != "" {
				if content, ok := readCapped(e.abs); ok {
					rec.Symbols = ExtractSymbols(content, lang)
				}
			}
		}
		snap.AddFile(e.rel, rec)
	}
}

// ScanAndRender is the one-call form used by the CLI and MCP layers.
func (s *Scanner) ScanAndRender() (*snapshot.Snapshot, string, error) {
	snap, err := s.Scan()
	if err != nil {
		return nil, "", err
	}
	return snap, snapshot.Render(snap), nil
}
