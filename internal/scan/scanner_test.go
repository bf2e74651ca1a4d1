package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guardian/internal/snapshot"
)

func TestNewRejectsMissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("missing root accepted")
	}
}

func TestNewRejectsFileRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.txt", "x")
	if _, err := New(filepath.Join(root, "file.txt")); err == nil {
		t.Error("non-directory root accepted")
	}
}

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "README.md", "# demo\n\nA small full-stack demo app.\n")
	writeFile(t, root, "package.json", `{
		"dependencies": {"react": "^18.0.0"},
		"scripts": {"dev": "vite", "test": "vitest"}
	}`)
	writeFile(t, root, "requirements.txt", "fastapi==0.100.0\nuvicorn==0.23.0\n")
	writeFile(t, root, ".env.example", "API_KEY=x\nDATABASE_URL=y\n")
	writeFile(t, root, "main.py", "import uvicorn\n\ndef create_app():\n    pass\n\n# port = 8000\n")
	writeFile(t, root, "src/components/Button.jsx", "export function Button(props) { return null }\n")
	writeFile(t, root, "src/app.css", "body { margin: 0 }\n")
	writeFile(t, root, "node_modules/react/index.js", "module.exports = {}\n")
	writeFile(t, root, "data/app.db", "")
	return root
}

func TestScannerEndToEnd(t *testing.T) {
	root := setupProject(t)
	scanner, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	snap, rendered, err := scanner.ScanAndRender()
	if err != nil {
		t.Fatalf("ScanAndRender: %v", err)
	}

	if snap.Identity.Purpose != "A small full-stack demo app." {
		t.Errorf("purpose = %q, want README line", snap.Identity.Purpose)
	}
	if snap.TechStack["frontend"] != "React 18.0.0" {
		t.Errorf("frontend = %q", snap.TechStack["frontend"])
	}
	if snap.TechStack["backend"] != "FastAPI" {
		t.Errorf("backend = %q", snap.TechStack["backend"])
	}
	if !snap.HasDatabase {
		t.Error("database file not detected")
	}

	rec, ok := snap.Files["src/components/Button.jsx"]
	if !ok {
		t.Fatal("Button.jsx not enumerated")
	}
	if rec.Purpose != "button-ui" {
		t.Errorf("Button.jsx purpose = %q, want button-ui", rec.Purpose)
	}
	if !containsString(rec.Symbols, "Button") {
		t.Errorf("Button symbol not extracted: %v", rec.Symbols)
	}

	if _, ok := snap.Files["node_modules/react/index.js"]; ok {
		t.Error("excluded directory was enumerated")
	}

	if got := snap.Connections[8000]; got != "main.py" {
		t.Errorf("port 8000 attributed to %q, want main.py", got)
	}
	if snap.Run["frontend"] != "npm run dev" {
		t.Errorf("frontend run = %q", snap.Run["frontend"])
	}
	if snap.Run["backend"] != "uvicorn main:app --reload" {
		t.Errorf("backend run = %q", snap.Run["backend"])
	}

	for _, header := range snapshot.SectionHeaders {
		if !strings.Contains(rendered, "## "+header+"\n") {
			t.Errorf("rendered artifact missing section %q", header)
		}
	}
	if !strings.Contains(rendered, "port_8000: main.py") {
		t.Error("rendered artifact missing connection line")
	}
}

func TestScannerIndexPartition(t *testing.T) {
	root := setupProject(t)
	scanner, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	snap, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	total := 0
	for _, bucket := range snap.ByCategory {
		total += len(bucket)
	}
	if total != len(snap.Files) {
		t.Errorf("category buckets hold %d files, want %d", total, len(snap.Files))
	}
	if len(snap.FileOrder) != len(snap.Files) {
		t.Errorf("FileOrder has %d entries, want %d", len(snap.FileOrder), len(snap.Files))
	}
}

func TestScannerDeterministicRender(t *testing.T) {
	root := setupProject(t)
	scanner, err := New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, first, err := scanner.ScanAndRender()
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	_, second, err := scanner.ScanAndRender()
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if first != second {
		t.Error("re-scanning an unmodified tree changed the artifact")
	}
}

func TestScannerEmptyProject(t *testing.T) {
	scanner, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	snap, rendered, err := scanner.ScanAndRender()
	if err != nil {
		t.Fatalf("ScanAndRender: %v", err)
	}

	if len(snap.Files) != 0 {
		t.Errorf("empty project enumerated %d files", len(snap.Files))
	}
	if snap.Identity.Purpose != purposePlaceholder {
		t.Errorf("purpose = %q, want placeholder", snap.Identity.Purpose)
	}
	for _, header := range snapshot.SectionHeaders {
		if !strings.Contains(rendered, "## "+header+"\n") {
			t.Errorf("empty artifact missing section %q", header)
		}
	}
}

func TestWalkTreeSkipsOversizedContent(t *testing.T) {
	root := t.TempDir()
	big := strings.Repeat("def much():\n    pass\n", maxFileSize) // far over the cap
	writeFile(t, root, "big.py", big)

	if _, ok := readCapped(filepath.Join(root, "big.py")); ok {
		t.Error("oversized file content was read")
	}

	entries := walkTree(root)
	if len(entries) != 1 || entries[0].rel != "big.py" {
		t.Errorf("oversized file missing from enumeration: %+v", entries)
	}
}

func TestWalkTreeEnumerationOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.js", "")
	writeFile(t, root, "a.js", "")
	writeFile(t, root, "sub/c.js", "")

	entries := walkTree(root)
	var rels []string
	for _, e := range entries {
		rels = append(rels, e.rel)
	}
	want := []string{"a.js", "b.js", "sub/c.js"}
	if len(rels) != len(want) {
		t.Fatalf("got %v, want %v", rels, want)
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Errorf("entry[%d] = %q, want %q", i, rels[i], want[i])
		}
	}
}

func TestGuessPurposeTruncates(t *testing.T) {
	root := t.TempDir()
	long := strings.Repeat("x", 150)
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("# t\n\n"+long+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got := guessPurpose(root)
	if len(got) != maxPurposeLen {
		t.Errorf("purpose length = %d, want %d", len(got), maxPurposeLen)
	}
}
