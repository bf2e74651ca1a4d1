package scan

import (
	"testing"

	"guardian/internal/snapshot"
)

func TestInferRunDevBeatsStart(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
		"scripts": {"start": "node server.js", "dev": "vite", "test": "vitest"}
	}`)

	snap := snapshot.New()
	inferRun(root, snap)

	if got := snap.Run["frontend"]; got != "npm run dev" {
		t.Errorf("frontend run = %q, want npm run dev", got)
	}
	if got := snap.Run["test_frontend"]; got != "npm test" {
		t.Errorf("test_frontend run = %q, want npm test", got)
	}
}

func TestInferRunStartFallback(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"scripts": {"start": "node server.js"}}`)

	snap := snapshot.New()
	inferRun(root, snap)

	if got := snap.Run["frontend"]; got != "npm start" {
		t.Errorf("frontend run = %q, want npm start", got)
	}
}

func TestInferRunBackendRootFirst(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "fastapi==0.100.0\n")
	writeFile(t, root, "main.py", "app = FastAPI()\n")
	writeFile(t, root, "api/main.py", "app = FastAPI()\n")

	snap := snapshot.New()
	inferRun(root, snap)

	if got := snap.Run["backend"]; got != "uvicorn main:app --reload" {
		t.Errorf("backend run = %q, want root entry point to win", got)
	}
}

func TestInferRunBackendAPISubdir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "fastapi==0.100.0\n")
	writeFile(t, root, "api/main.py", "app = FastAPI()\n")

	snap := snapshot.New()
	inferRun(root, snap)

	if got := snap.Run["backend"]; got != "cd api && uvicorn main:app --reload" {
		t.Errorf("backend run = %q, want api/ entry point", got)
	}
}

func TestInferRunNoBackendWithoutRequirements(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.py", "print('hi')\n")

	snap := snapshot.New()
	inferRun(root, snap)

	if _, ok := snap.Run["backend"]; ok {
		t.Error("backend command proposed without requirements.txt")
	}
}
