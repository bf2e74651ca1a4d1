// Package snapshot defines the in-memory aggregate produced by one scan
// invocation and renders it as the size-bounded memory artifact.
//
// A Snapshot is built append-only by the detectors in internal/scan and
// becomes effectively immutable once handed to Render. The renderer bounds
// output independent of project size (file cap, symbol cap, dependency cap)
// so the artifact stays usable inside a model's context window.
package snapshot

import "sort"

// Category classifies a discovered file. The set is closed: every path maps
// to exactly one category.
type Category string

// Category values.
const (
	CategoryCode   Category = "code"
	CategoryConfig Category = "config"
	CategoryDocs   Category = "docs"
	CategoryStyle  Category = "style"
	CategoryData   Category = "data"
	CategoryOther  Category = "other"
)

// Categories returns all categories in render order.
func Categories() []Category {
	return []Category{
		CategoryCode, CategoryConfig, CategoryDocs,
		CategoryStyle, CategoryData, CategoryOther,
	}
}

// Valid port range for detected connections. Matches outside the range are
// discarded, never recorded.
const (
	MinPort = 1000
	MaxPort = 65535
)

// MaxSymbols is the per-file cap on extracted symbol names.
const MaxSymbols = 10

// MaxRenderedFiles bounds the FILES section of the rendered artifact.
const MaxRenderedFiles = 50

// MaxDependencies bounds each dependency sub-mapping.
const MaxDependencies = 50

// Identity holds the project's name, one-line purpose, and status.
type Identity struct {
	Name    string `yaml:"name"`
	Purpose string `yaml:"purpose"`
	Status  string `yaml:"status"`
}

// EnvVar is one detected environment variable.
type EnvVar struct {
	Name        string
	Description string
	Required    bool
}

// FileRecord describes one discovered file.
type FileRecord struct {
	Purpose  string
	Category Category
	Symbols  []string // candidate names, len <= MaxSymbols
}

// Dependencies holds the frontend and backend package->version mappings.
type Dependencies struct {
	Frontend map[string]string
	Backend  map[string]string
}

// Snapshot is the root aggregate for one scan. Each detector writes only
// into its own field; paths are relative and forward-separated.
type Snapshot struct {
	Identity     Identity
	TechStack    map[string]string // role -> value (frontend, backend, styling, language)
	HasDatabase  bool
	Dependencies Dependencies
	EnvVars      []EnvVar

	Files     map[string]*FileRecord
	FileOrder []string // enumeration order of Files keys

	// ByCategory is the derived index; call BuildIndex after the file
	// phase. Every Files entry appears in exactly one bucket.
	ByCategory map[Category]map[string]*FileRecord

	Connections map[int]string    // port -> first referencing file
	Run         map[string]string // service role -> shell command
}

// New returns an empty Snapshot ready for the detectors.
func New() *Snapshot {
	return &Snapshot{
		TechStack: make(map[string]string),
		Dependencies: Dependencies{
			Frontend: make(map[string]string),
			Backend:  make(map[string]string),
		},
		Files:       make(map[string]*FileRecord),
		Connections: make(map[int]string),
		Run:         make(map[string]string),
	}
}

// AddFile records a discovered file. Duplicate paths are ignored so the
// first classification wins and FileOrder stays consistent with Files.
func (s *Snapshot) AddFile(path string, rec *FileRecord) {
	if _, exists := s.Files[path]; exists {
		return
	}
	s.Files[path] = rec
	s.FileOrder = append(s.FileOrder, path)
}

// RecordConnection applies the first-seen-wins merge policy: a port is
// recorded only if it is within the valid range and not already present.
// Reports whether the port was recorded.
func (s *Snapshot) RecordConnection(port int, path string) bool {
	if port < MinPort || port > MaxPort {
		return false
	}
	if _, seen := s.Connections[port]; seen {
		return false
	}
	s.Connections[port] = path
	return true
}

// BuildIndex computes the files_by_category view from Files. The bucket
// key-sets always partition the Files key-set exactly.
func (s *Snapshot) BuildIndex() {
	idx := make(map[Category]map[string]*FileRecord, len(Categories()))
	for _, c := range Categories() {
		idx[c] = make(map[string]*FileRecord)
	}
	for path, rec := range s.Files {
		idx[rec.Category][path] = rec
	}
	s.ByCategory = idx
}

// SortedPorts returns the connection ports in ascending order.
func (s *Snapshot) SortedPorts() []int {
	ports := make([]int, 0, len(s.Connections))
	for p := range s.Connections {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports
}
