// Package graph defines codemap's persistent code graph and the
// operations that build, merge, and query it: the scanner (full build),
// the differ (incremental merge), and impact analysis (bounded-depth
// dependency BFS).
package graph

import "github.com/killvxk/codemap/services/codemap/ast"

// SchemaVersion is the document version stamped into every CodeGraph.
// Bump it when the on-disk shape changes in a breaking way.
const SchemaVersion = "1.0"

// ProjectInfo identifies the scanned project.
type ProjectInfo struct {
	Name string `json:"name"`
	Root string `json:"root"`
}

// GraphConfig records the scan parameters a graph was built with.
type GraphConfig struct {
	Languages       []string `json:"languages"`
	ExcludePatterns []string `json:"excludePatterns"`
}

// GraphSummary holds the aggregate counts derived from files/modules.
// Every field here is fully recomputed by the scanner and by the
// differ's recompute phase; none of it is incrementally patched.
type GraphSummary struct {
	TotalFiles     int            `json:"totalFiles"`
	TotalFunctions int            `json:"totalFunctions"`
	TotalClasses   int            `json:"totalClasses"`
	Languages      map[string]int `json:"languages"`
	Modules        []string       `json:"modules"`
	EntryPoints    []string       `json:"entryPoints"`
}

// FileEntry is the full indexed record for one file.
type FileEntry struct {
	Language     string             `json:"language"`
	Module       string             `json:"module"`
	Hash         string             `json:"hash"`
	Lines        int                `json:"lines"`
	Functions    []ast.FunctionFact `json:"functions"`
	Classes      []ast.ClassFact    `json:"classes"`
	Imports      []ast.ImportFact   `json:"imports"`
	Exports      []ast.ExportFact   `json:"exports"`
	IsEntryPoint bool               `json:"isEntryPoint"`
}

// ModuleEntry groups the files that share a module name, plus the
// module-level dependency edges resolved from their relative imports.
type ModuleEntry struct {
	Files      []string `json:"files"`
	DependsOn  []string `json:"dependsOn"`
	DependedBy []string `json:"dependedBy"`
}

// CodeGraph is the top-level persisted aggregate.
type CodeGraph struct {
	Version    string                 `json:"version"`
	Project    ProjectInfo            `json:"project"`
	ScannedAt  string                 `json:"scannedAt"`
	CommitHash *string                `json:"commitHash"`
	Config     GraphConfig            `json:"config"`
	Summary    GraphSummary           `json:"summary"`
	Modules    map[string]ModuleEntry `json:"modules"`
	Files      map[string]FileEntry   `json:"files"`
}

// NewEmptyGraph returns a zero-value CodeGraph stamped with projectName,
// rootDir, and the current time.
func NewEmptyGraph(projectName, rootDir string) *CodeGraph {
	return &CodeGraph{
		Version:   SchemaVersion,
		Project:   ProjectInfo{Name: projectName, Root: rootDir},
		ScannedAt: nowISO8601(),
		Config:    GraphConfig{Languages: []string{}, ExcludePatterns: []string{}},
		Summary: GraphSummary{
			Languages: map[string]int{},
			Modules:   []string{},
		},
		Modules: map[string]ModuleEntry{},
		Files:   map[string]FileEntry{},
	}
}

// MetaRecord is the sibling document that records per-file hashes for
// incremental diffing, independent of the full graph document.
type MetaRecord struct {
	LastScanAt   string            `json:"lastScanAt"`
	CommitHash   *string           `json:"commitHash"`
	ScanDuration int64             `json:"scanDuration"`
	FileHashes   map[string]string `json:"fileHashes"`
}
