// symbols.go extracts candidate top-level callable names with per-language
// lexical patterns. This is deliberately not a parser: the contract promises
// candidate names, not verified symbols, and the denylist plus the private
// prefix filter keep the worst false positives out.
package scan

import (
	"regexp"
	"strings"

	"guardian/internal/snapshot"
)

// symbolDenylist drops control-flow keywords that naive patterns match.
var symbolDenylist = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
}

// languagePatterns maps a language to its declaration patterns. Each pattern
// captures the candidate name in group 1.
var languagePatterns = map[string][]*regexp.Regexp{
	"python": {
		regexp.MustCompile(`(?m)^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`),
	},
	"javascript": {
		// function declarations and named function expressions
		regexp.MustCompile(`(?:function|const|let|var)\s+(\w+)\s*(?:=\s*(?:async\s*)?\(|=\s*(?:async\s*)?function|\()`),
		// method / shorthand definitions (denylist filters the noise)
		regexp.MustCompile(`(?m)^\s*(?:async\s+)?(\w+)\s*\([^)]*\)\s*\{`),
		// exported declarations
		regexp.MustCompile(`export\s+(?:default\s+)?(?:async\s+)?function\s+(\w+)`),
	},
	"go": {
		regexp.MustCompile(`(?m)^func\s+(?:\([^)]+\)\s+)?([A-Za-z_]\w*)\s*[(\[]`),
	},
	"rust": {
		regexp.MustCompile(`(?m)^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+([A-Za-z_]\w*)`),
	},
	"ruby": {
		regexp.MustCompile(`(?m)^\s*def\s+(?:self\.)?([A-Za-z_]\w*)`),
	},
}

// extToLanguage routes code extensions to a supported pattern set.
// Extensions absent here are unsupported: extraction yields nothing,
// never an error.
var extToLanguage = map[string]string{
	".py":  "python",
	".js":  "javascript",
	".jsx": "javascript",
	".ts":  "javascript",
	".tsx": "javascript",
	".go":  "go",
	".rs":  "rust",
	".rb":  "ruby",
}

// LanguageForExt returns the symbol-extraction language for an extension,
// or "" when the language is unsupported.
func LanguageForExt(ext string) string {
	return extToLanguage[ext]
}

// ExtractSymbols returns a de-duplicated, order-preserving list of candidate
// names found in content, capped at snapshot.MaxSymbols. Names with a
// leading underscore and control-flow keywords are excluded.
func ExtractSymbols(content, language string) []string {
	patterns, ok := languagePatterns[language]
	if !ok {
		return nil
	}

	var symbols []string
	seen := map[string]bool{}
	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatch(content, -1) {
			name := m[1]
			if name == "" || strings.HasPrefix(name, "_") || symbolDenylist[name] || seen[name] {
				continue
			}
			seen[name] = true
			symbols = append(symbols, name)
			if len(symbols) == snapshot.MaxSymbols {
				return symbols
			}
		}
	}
	return symbols
}
