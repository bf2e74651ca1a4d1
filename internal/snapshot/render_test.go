package snapshot

import (
	"fmt"
	"strings"
	"testing"
)

func TestRenderEmptySnapshotHasAllSections(t *testing.T) {
	s := New()
	s.Identity = Identity{Name: "empty", Purpose: "{{ONE_LINE_PURPOSE}}", Status: "development"}
	out := Render(s)

	for _, header := range SectionHeaders {
		if !strings.Contains(out, "## "+header+"\n") {
			t.Errorf("missing section header %q", header)
		}
	}
	if !strings.Contains(out, "# empty SNAPSHOT") {
		t.Error("missing document title")
	}
	if !strings.Contains(out, placeholder) {
		t.Error("empty sections should carry the explicit placeholder")
	}
	if !strings.Contains(out, "has_database: false") {
		t.Error("TECH_STACK must always include has_database")
	}
	if !strings.Contains(out, "# no changes logged") {
		t.Error("CHANGES must carry the empty marker")
	}
}

func TestRenderDeterministic(t *testing.T) {
	build := func() *Snapshot {
		s := New()
		s.Identity = Identity{Name: "demo", Purpose: "a demo", Status: "development"}
		s.TechStack["frontend"] = "React 18.0.0"
		s.TechStack["language"] = "TypeScript"
		s.Dependencies.Frontend["react"] = "18.0.0"
		s.Dependencies.Backend["fastapi"] = "0.100.0"
		s.Run["frontend"] = "npm run dev"
		s.Run["backend"] = "uvicorn main:app --reload"
		s.RecordConnection(8000, "main.py")
		s.RecordConnection(3000, "src/app.tsx")
		s.AddFile("main.py", &FileRecord{Purpose: "entry-point", Category: CategoryCode, Symbols: []string{"run"}})
		s.AddFile("src/app.tsx", &FileRecord{Purpose: "entry-point", Category: CategoryCode})
		s.BuildIndex()
		return s
	}

	a, b := Render(build()), Render(build())
	if a != b {
		t.Error("two renders of identical snapshots differ")
	}
}

func TestRenderFilesTruncation(t *testing.T) {
	s := New()
	s.Identity.Name = "big"
	for i := 0; i < MaxRenderedFiles+25; i++ {
		s.AddFile(fmt.Sprintf("src/file%03d.js", i), &FileRecord{Purpose: "utils", Category: CategoryCode})
	}
	out := Render(s)

	if !strings.Contains(out, "# ... and 25 more files (truncated)") {
		t.Error("missing truncation marker")
	}
	if !strings.Contains(out, "src/file049.js") {
		t.Error("file within the cap was dropped")
	}
	if strings.Contains(out, "src/file050.js") {
		t.Error("file beyond the cap was rendered")
	}
}

func TestRenderSymbolCap(t *testing.T) {
	s := New()
	s.Identity.Name = "caps"
	s.AddFile("lib.py", &FileRecord{
		Purpose:  "utils",
		Category: CategoryCode,
		Symbols:  []string{"one", "two", "three", "four", "five", "six", "seven"},
	})
	out := Render(s)

	if !strings.Contains(out, "lib.py: utils | one, two, three, four, five\n") {
		t.Error("symbol list not capped at five")
	}
	if strings.Contains(out, "six") {
		t.Error("symbol beyond the render cap leaked")
	}
}

func TestRenderFileWithoutSymbols(t *testing.T) {
	s := New()
	s.Identity.Name = "plain"
	s.AddFile("notes.md", &FileRecord{Purpose: "documentation", Category: CategoryDocs})
	out := Render(s)

	if !strings.Contains(out, "notes.md: documentation | -\n") {
		t.Error("symbol-less file should render with a dash")
	}
}

func TestRenderConnectionsAscending(t *testing.T) {
	s := New()
	s.Identity.Name = "ports"
	s.RecordConnection(9000, "worker.py")
	s.RecordConnection(3000, "app.js")
	out := Render(s)

	i3000 := strings.Index(out, "port_3000: app.js")
	i9000 := strings.Index(out, "port_9000: worker.py")
	if i3000 < 0 || i9000 < 0 {
		t.Fatal("connection lines missing")
	}
	if i3000 > i9000 {
		t.Error("connections not rendered in ascending port order")
	}
}

func TestRenderEnvVarsGrouped(t *testing.T) {
	s := New()
	s.Identity.Name = "env"
	s.EnvVars = []EnvVar{
		{Name: "API_KEY", Description: "declared in .env.example", Required: true},
		{Name: "DEBUG", Description: "declared in .env.example", Required: false},
	}
	out := Render(s)

	if !strings.Contains(out, "required:\n  - API_KEY: declared in .env.example") {
		t.Error("required env var not rendered under required:")
	}
	if !strings.Contains(out, "optional:\n  - DEBUG: declared in .env.example") {
		t.Error("optional env var not rendered under optional:")
	}
}
