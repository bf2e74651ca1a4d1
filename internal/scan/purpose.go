package scan

import (
	"fmt"
	"path"
	"strings"

	"guardian/internal/snapshot"
)

// parentPurposes maps conventional parent directory names to a purpose
// suffix for code files.
var parentPurposes = map[string]string{
	"components": "ui", "component": "ui",
	"hooks": "logic", "hook": "logic",
	"pages": "page", "views": "page",
	"routes": "endpoints", "api": "endpoints",
	"services": "service", "service": "service",
	"utils": "utils", "helpers": "utils", "lib": "utils",
	"models": "model", "model": "model",
}

// entryPointNames are file stems treated as service entry points.
var entryPointNames = map[string]bool{
	"main": true, "app": true, "index": true, "server": true,
}

// inferPurpose derives a short purpose string for a file from its category,
// name, and parent directory. Binary assets get a synthetic asset purpose.
func inferPurpose(rel, name, ext string, category snapshot.Category) string {
	switch category {
	case snapshot.CategoryCode:
		return inferCodePurpose(rel, name, ext)
	case snapshot.CategoryConfig:
		return inferConfigPurpose(name)
	case snapshot.CategoryDocs:
		return "documentation"
	case snapshot.CategoryStyle:
		return "styling"
	case snapshot.CategoryData:
		return "data"
	default:
		if IsBinary(ext) {
			return fmt.Sprintf("asset (%s)", ext)
		}
		return "other"
	}
}

func inferCodePurpose(rel, name, ext string) string {
	stem := strings.ToLower(strings.TrimSuffix(name, ext))
	parent := strings.ToLower(path.Base(path.Dir(rel)))

	if suffix, ok := parentPurposes[parent]; ok {
		return stem + "-" + suffix
	}
	if entryPointNames[stem] {
		return "entry-point"
	}
	return stem
}

// inferConfigPurpose matches well-known config file names; anything
// unrecognized is just "config".
func inferConfigPurpose(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "package.json"):
		return "npm-config"
	case strings.Contains(lower, "tsconfig"):
		return "typescript-config"
	case strings.Contains(lower, "eslint"):
		return "linting-config"
	case strings.Contains(lower, "prettier"):
		return "formatting-config"
	case strings.Contains(lower, "docker"):
		return "docker-config"
	case strings.Contains(lower, "env"):
		return "environment-vars"
	case strings.Contains(lower, "gitignore"):
		return "git-ignore"
	case strings.Contains(lower, "requirements"):
		return "python-deps"
	case strings.Contains(lower, "pyproject"):
		return "python-project"
	default:
		return "config"
	}
}
