package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxFileSize is the largest file whose content detectors will read (100KB).
// Larger files are still listed, just never opened.
const maxFileSize = 100 * 1024

// fileEntry is one discovered file in enumeration order.
type fileEntry struct {
	rel  string // relative, forward-separated
	abs  string
	name string // base name
	ext  string // lower-cased, with leading dot
}

// walkTree enumerates all files under root directory-by-directory, skipping
// excluded directories. Unreadable entries are skipped silently — the walk
// never aborts. The returned order is the deterministic enumeration order
// that first-seen-wins policies depend on.
func walkTree(root string) []fileEntry {
	var entries []fileEntry

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // graceful degradation
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		if d.IsDir() {
			if excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		entries = append(entries, fileEntry{
			rel:  filepath.ToSlash(rel),
			abs:  path,
			name: d.Name(),
			ext:  strings.ToLower(filepath.Ext(d.Name())),
		})
		return nil
	})

	return entries
}

// readCapped reads a file's content, returning ok=false when the file is
// unreadable or exceeds maxFileSize.
func readCapped(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.Size() > maxFileSize {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
