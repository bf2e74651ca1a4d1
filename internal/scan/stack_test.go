package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"guardian/internal/snapshot"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestDetectFrontendPriority(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
		"dependencies": {
			"vue": "^3.2.0",
			"react": "^18.0.0",
			"tailwindcss": "^3.0.0"
		}
	}`)

	snap := snapshot.New()
	detectStack(root, snap)

	if got := snap.TechStack["frontend"]; got != "React 18.0.0" {
		t.Errorf("frontend = %q, want React 18.0.0 (react beats vue)", got)
	}
	if got := snap.TechStack["styling"]; got != "Tailwind CSS" {
		t.Errorf("styling = %q, want Tailwind CSS", got)
	}
	if got := snap.Dependencies.Frontend["react"]; got != "18.0.0" {
		t.Errorf("frontend dep react = %q, want range prefix stripped", got)
	}
}

func TestDetectFrontendElectron(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
		"dependencies": {"react": "18.2.0", "electron": "28.0.0"}
	}`)

	snap := snapshot.New()
	detectStack(root, snap)

	if got := snap.TechStack["frontend"]; got != "React 18.2.0 + Electron" {
		t.Errorf("frontend = %q, want Electron appended", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Run("typescript via devDependency", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "package.json", `{"devDependencies": {"typescript": "5.0.0"}}`)
		snap := snapshot.New()
		detectStack(root, snap)
		if got := snap.TechStack["language"]; got != "TypeScript" {
			t.Errorf("language = %q, want TypeScript", got)
		}
	})

	t.Run("typescript via tsconfig", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "package.json", `{"dependencies": {"react": "18.0.0"}}`)
		writeFile(t, root, "tsconfig.json", `{}`)
		snap := snapshot.New()
		detectStack(root, snap)
		if got := snap.TechStack["language"]; got != "TypeScript" {
			t.Errorf("language = %q, want TypeScript", got)
		}
	})

	t.Run("javascript fallback", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "package.json", `{"dependencies": {"express": "4.18.0"}}`)
		snap := snapshot.New()
		detectStack(root, snap)
		if got := snap.TechStack["language"]; got != "JavaScript" {
			t.Errorf("language = %q, want JavaScript", got)
		}
	})

	t.Run("python only", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "requirements.txt", "fastapi==0.100.0\n")
		snap := snapshot.New()
		detectStack(root, snap)
		if got := snap.TechStack["language"]; got != "Python" {
			t.Errorf("language = %q, want Python", got)
		}
		if got := snap.TechStack["backend"]; got != "FastAPI" {
			t.Errorf("backend = %q, want FastAPI", got)
		}
	})
}

func TestBackendPriority(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "flask==2.3.0\nfastapi==0.100.0\n")

	snap := snapshot.New()
	detectStack(root, snap)

	if got := snap.TechStack["backend"]; got != "FastAPI" {
		t.Errorf("backend = %q, want FastAPI (priority beats manifest order)", got)
	}
}

func TestBackendFromPyproject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", `[project]
dependencies = ["django>=4.2"]
`)

	snap := snapshot.New()
	detectStack(root, snap)

	if got := snap.TechStack["backend"]; got != "Django" {
		t.Errorf("backend = %q, want Django", got)
	}
}

func TestDetectBackendDeps(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", strings.Join([]string{
		"# pinned deps",
		"fastapi==0.100.0",
		"uvicorn==0.23.0  # server",
		"requests",
		"-r extra.txt",
		"--no-binary :all:",
		"",
	}, "\n"))

	snap := snapshot.New()
	detectBackendDeps(root, snap)

	if got := snap.Dependencies.Backend["fastapi"]; got != "0.100.0" {
		t.Errorf("fastapi = %q, want 0.100.0", got)
	}
	if got := snap.Dependencies.Backend["uvicorn"]; got != "0.23.0" {
		t.Errorf("uvicorn = %q, want inline comment stripped", got)
	}
	if got := snap.Dependencies.Backend["requests"]; got != "latest" {
		t.Errorf("requests = %q, want latest for bare name", got)
	}
	if len(snap.Dependencies.Backend) != 3 {
		t.Errorf("got %d backend deps, want 3 (options skipped)", len(snap.Dependencies.Backend))
	}
}

func TestDetectBackendDepsCap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < maxBackendDeps+10; i++ {
		fmt.Fprintf(&b, "package%03d==1.0.0\n", i)
	}
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", b.String())

	snap := snapshot.New()
	detectBackendDeps(root, snap)

	if len(snap.Dependencies.Backend) != maxBackendDeps {
		t.Errorf("got %d backend deps, want cap of %d", len(snap.Dependencies.Backend), maxBackendDeps)
	}
}

func TestMalformedPackageJSONIsNonFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{not json`)

	snap := snapshot.New()
	detectStack(root, snap)

	if _, ok := snap.TechStack["frontend"]; ok {
		t.Error("malformed manifest contributed a frontend entry")
	}
	if _, ok := snap.TechStack["language"]; ok {
		t.Error("malformed manifest contributed a language entry")
	}
}

func TestDetectDatabase(t *testing.T) {
	entries := []fileEntry{
		{rel: "app.py", ext: ".py"},
		{rel: "data/app.db", ext: ".db"},
	}
	snap := snapshot.New()
	detectDatabase(entries, snap)
	if !snap.HasDatabase {
		t.Error("database file not detected")
	}

	snap = snapshot.New()
	detectDatabase(entries[:1], snap)
	if snap.HasDatabase {
		t.Error("HasDatabase set without a database file")
	}
}
