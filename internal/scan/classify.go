// Package scan implements the project-inspection engine: a single ordered
// tree walk feeding a chain of detectors (classification, symbols, tech
// stack, connections, env vars, run commands) that together populate one
// snapshot.Snapshot.
//
// All detectors are lossy by design — lexical pattern matching, bounded
// reads, fixed caps — and never abort the scan on per-entry errors. The only
// fatal condition is a missing or unreadable root.
package scan

import (
	"strings"

	"guardian/internal/snapshot"
)

// excludedDirs are directory base names skipped during the walk: dependency
// caches, VCS metadata, build output, editor-rule directories, and this
// tool's own data directory.
var excludedDirs = map[string]bool{
	"node_modules": true, "__pycache__": true, ".git": true,
	".venv": true, "venv": true, "dist": true, "build": true,
	".next": true, ".cache": true, "coverage": true, ".pytest_cache": true,
	".cursor": true, ".windsurf": true, ".idea": true, ".vscode": true,
	".guardian": true,
}

// Extension tables form a non-overlapping partition. An extension appears in
// at most one table; anything unmatched defaults to "other". Built once at
// package init, never mutated.

var codeExts = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".vue": true, ".svelte": true, ".java": true, ".kt": true,
	".swift": true, ".go": true, ".rs": true, ".rb": true, ".php": true,
	".c": true, ".cpp": true, ".h": true, ".hpp": true, ".cs": true,
}

var configExts = map[string]bool{
	".json": true, ".yaml": true, ".yml": true, ".toml": true,
	".ini": true, ".cfg": true,
}

// configNames are config files recognized by name rather than extension
// (dotfiles and env samples have unreliable extensions).
var configNames = map[string]bool{
	".gitignore": true, ".dockerignore": true,
	".prettierrc": true, ".eslintrc": true,
}

var docExts = map[string]bool{
	".md": true, ".mdx": true, ".txt": true, ".rst": true, ".adoc": true,
}

var styleExts = map[string]bool{
	".css": true, ".scss": true, ".sass": true, ".less": true, ".styl": true,
}

var dataExts = map[string]bool{
	".sql": true, ".csv": true, ".xml": true, ".html": true, ".svg": true,
}

// binaryExts are known binary/media extensions. They classify as "other"
// with a synthetic asset purpose and their content is never read.
var binaryExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true,
	".webp": true, ".mp3": true, ".mp4": true, ".wav": true, ".avi": true,
	".mov": true, ".pdf": true, ".zip": true, ".tar": true, ".gz": true,
	".rar": true, ".exe": true, ".dll": true, ".so": true, ".dylib": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".db": true, ".sqlite": true, ".sqlite3": true,
}

// databaseExts mark the tree as database-backed when seen anywhere.
var databaseExts = map[string]bool{
	".db": true, ".sqlite": true, ".sqlite3": true,
}

// Classify maps a file name and lower-cased extension to exactly one
// category. The name matters only for extension-less config dotfiles and
// env samples.
func Classify(name, ext string) snapshot.Category {
	if configNames[name] || strings.HasPrefix(name, ".env") {
		return snapshot.CategoryConfig
	}
	switch {
	case codeExts[ext]:
		return snapshot.CategoryCode
	case configExts[ext]:
		return snapshot.CategoryConfig
	case docExts[ext]:
		return snapshot.CategoryDocs
	case styleExts[ext]:
		return snapshot.CategoryStyle
	case dataExts[ext]:
		return snapshot.CategoryData
	default:
		return snapshot.CategoryOther
	}
}

// IsBinary reports whether the extension is a known binary/media type.
func IsBinary(ext string) bool {
	return binaryExts[ext]
}
