package graph

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
)

// Sentinel errors returned by the store operations.
var (
	// ErrModuleNotFound is returned when a slice or query operation
	// targets a module name absent from the graph.
	ErrModuleNotFound = errors.New("codemap: module not found")
	// ErrGraphUnavailable is returned when LoadGraph/LoadMeta cannot
	// read or parse their document; callers translate this into a
	// "run scan first" message.
	ErrGraphUnavailable = errors.New("codemap: graph unavailable")
	// ErrPersistenceFailure is returned when writing the output
	// directory fails; callers abort the operation.
	ErrPersistenceFailure = errors.New("codemap: persistence failure")
)

const (
	graphFileName = "graph.json"
	metaFileName  = "meta.json"
	slicesDirName = "slices"
)

// SaveGraph writes graph.json then meta.json into outputDir, creating
// it if necessary. The graph document is written first so a reader
// that sees a graph but not a (possibly not-yet-written) meta document
// can still fall back to reconstructing hashes from graph.Files.
func SaveGraph(outputDir string, g *CodeGraph) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Join(ErrPersistenceFailure, err)
	}

	graphBytes, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return errors.Join(ErrPersistenceFailure, err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, graphFileName), graphBytes, 0o644); err != nil {
		return errors.Join(ErrPersistenceFailure, err)
	}

	fileHashes := make(map[string]string, len(g.Files))
	for relPath, f := range g.Files {
		fileHashes[relPath] = f.Hash
	}
	meta := MetaRecord{
		LastScanAt: nowISO8601(),
		CommitHash: g.CommitHash,
		FileHashes: fileHashes,
	}
	metaBytes, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return errors.Join(ErrPersistenceFailure, err)
	}
	if err := os.WriteFile(filepath.Join(outputDir, metaFileName), metaBytes, 0o644); err != nil {
		return errors.Join(ErrPersistenceFailure, err)
	}
	return nil
}

// LoadGraph reads and parses graph.json from outputDir.
func LoadGraph(outputDir string) (*CodeGraph, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, graphFileName))
	if err != nil {
		return nil, errors.Join(ErrGraphUnavailable, err)
	}
	var g CodeGraph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, errors.Join(ErrGraphUnavailable, err)
	}
	return &g, nil
}

// LoadMeta reads and parses meta.json from outputDir.
func LoadMeta(outputDir string) (*MetaRecord, error) {
	data, err := os.ReadFile(filepath.Join(outputDir, metaFileName))
	if err != nil {
		return nil, errors.Join(ErrGraphUnavailable, err)
	}
	var m MetaRecord
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Join(ErrGraphUnavailable, err)
	}
	return &m, nil
}

// OldHashes returns the relPath→hash map a differ should treat as the
// prior scan state: meta's FileHashes when available, falling back to
// reconstructing hashes from the graph's own file entries when
// meta.json is missing or unreadable.
func OldHashes(outputDir string, g *CodeGraph) map[string]string {
	if meta, err := LoadMeta(outputDir); err == nil {
		return meta.FileHashes
	}
	hashes := make(map[string]string, len(g.Files))
	for relPath, f := range g.Files {
		hashes[relPath] = f.Hash
	}
	return hashes
}

// Status is the summary Status reports about a saved graph, mirroring
// the outer CLI's "status" command contract.
type Status struct {
	Project      ProjectInfo
	ScannedAt    string
	CommitHash   *string
	Summary      GraphSummary
	LastUpdate   string
	TrackedFiles int
}

// LoadStatus loads the graph (and, best-effort, the meta document) from
// outputDir and reports a Status. It fails with ErrGraphUnavailable if
// no graph has been saved.
func LoadStatus(outputDir string) (*Status, error) {
	g, err := LoadGraph(outputDir)
	if err != nil {
		return nil, err
	}
	status := &Status{
		Project:    g.Project,
		ScannedAt:  g.ScannedAt,
		CommitHash: g.CommitHash,
		Summary:    g.Summary,
	}
	if meta, err := LoadMeta(outputDir); err == nil {
		status.LastUpdate = meta.LastScanAt
		status.TrackedFiles = len(meta.FileHashes)
	}
	return status, nil
}

// SaveSlices writes one document per module under outputDir/slices/,
// plus slices/_overview.json, by marshaling whatever index documents
// the caller built. It accepts already-constructed documents rather
// than a *CodeGraph so it stays independent of the index package's
// projection logic (avoiding an import cycle between graph and index).
func SaveSlices(outputDir string, overview any, moduleSlices map[string]any) error {
	dir := filepath.Join(outputDir, slicesDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Join(ErrPersistenceFailure, err)
	}

	overviewBytes, err := json.MarshalIndent(overview, "", "  ")
	if err != nil {
		return errors.Join(ErrPersistenceFailure, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "_overview.json"), overviewBytes, 0o644); err != nil {
		return errors.Join(ErrPersistenceFailure, err)
	}

	names := make([]string, 0, len(moduleSlices))
	for name := range moduleSlices {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sliceBytes, err := json.MarshalIndent(moduleSlices[name], "", "  ")
		if err != nil {
			return errors.Join(ErrPersistenceFailure, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name+".json"), sliceBytes, 0o644); err != nil {
			return errors.Join(ErrPersistenceFailure, err)
		}
	}
	return nil
}
