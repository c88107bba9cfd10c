package index

import (
	"errors"
	"path"
	"sort"

	"github.com/killvxk/codemap/services/codemap/ast"
	"github.com/killvxk/codemap/services/codemap/graph"
)

// ErrModuleNotFound is returned by BuildSliceWithDeps for an unknown
// module name.
var ErrModuleNotFound = errors.New("codemap: module not found")

// ModuleStats aggregates counts for one module.
type ModuleStats struct {
	TotalFiles     int `json:"totalFiles"`
	TotalFunctions int `json:"totalFunctions"`
	TotalClasses   int `json:"totalClasses"`
	TotalLines     int `json:"totalLines"`
}

// OverviewModule is one module's entry in the Overview document.
type OverviewModule struct {
	Name       string      `json:"name"`
	Path       string      `json:"path"`
	FileCount  int         `json:"fileCount"`
	Exports    []string    `json:"exports"`
	DependsOn  []string    `json:"dependsOn"`
	DependedBy []string    `json:"dependedBy"`
	Stats      ModuleStats `json:"stats"`
}

// Overview is the project-wide slices/_overview.json document.
type Overview struct {
	Project     graph.ProjectInfo  `json:"project"`
	ScannedAt   string             `json:"scannedAt"`
	CommitHash  *string            `json:"commitHash"`
	Summary     graph.GraphSummary `json:"summary"`
	Modules     []OverviewModule   `json:"modules"`
	EntryPoints []string           `json:"entryPoints"`
}

// ModuleSlice flattens one module's file facts into a single document.
type ModuleSlice struct {
	Module     string      `json:"module"`
	Path       string      `json:"path"`
	Files      []FileSlice `json:"files"`
	Exports    []string    `json:"exports"`
	DependsOn  []string    `json:"dependsOn"`
	DependedBy []string    `json:"dependedBy"`
	Stats      ModuleStats `json:"stats"`
}

// FileSlice is the per-file document embedded in a ModuleSlice.
type FileSlice struct {
	Path         string             `json:"path"`
	Language     string             `json:"language"`
	Lines        int                `json:"lines"`
	Functions    []ast.FunctionFact `json:"functions"`
	Classes      []ast.ClassFact    `json:"classes"`
	Imports      []ast.ImportFact   `json:"imports"`
	Exports      []ast.ExportFact   `json:"exports"`
	IsEntryPoint bool               `json:"isEntryPoint"`
	Hash         string             `json:"hash"`
}

// DepInfo summarizes one dependency of a module in ModuleSliceWithDeps.
type DepInfo struct {
	Name      string      `json:"name"`
	Exports   []string    `json:"exports"`
	FileCount int         `json:"fileCount"`
	Stats     ModuleStats `json:"stats"`
}

// ModuleSliceWithDeps is a ModuleSlice plus a summary of each of its
// dependsOn targets.
type ModuleSliceWithDeps struct {
	ModuleSlice
	Dependencies []DepInfo `json:"dependencies"`
}

// BuildOverview aggregates every module in g into the project-wide
// overview document.
func BuildOverview(g *graph.CodeGraph) Overview {
	var modules []OverviewModule
	for name, mod := range g.Modules {
		exports, stats := collectModuleStats(g, mod)
		modules = append(modules, OverviewModule{
			Name:       name,
			Path:       modulePath(mod, name),
			FileCount:  len(mod.Files),
			Exports:    dedupSorted(exports),
			DependsOn:  mod.DependsOn,
			DependedBy: mod.DependedBy,
			Stats:      stats,
		})
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].Name < modules[j].Name })

	return Overview{
		Project:     g.Project,
		ScannedAt:   g.ScannedAt,
		CommitHash:  g.CommitHash,
		Summary:     g.Summary,
		Modules:     modules,
		EntryPoints: g.Summary.EntryPoints,
	}
}

// BuildSlice flattens module's file facts into one ModuleSlice.
func BuildSlice(g *graph.CodeGraph, moduleName string) (ModuleSlice, bool) {
	mod, ok := g.Modules[moduleName]
	if !ok {
		return ModuleSlice{}, false
	}
	return buildModuleSlice(g, moduleName, mod), true
}

// BuildSliceWithDeps is BuildSlice plus a DepInfo summary of every
// module moduleName depends on.
func BuildSliceWithDeps(g *graph.CodeGraph, moduleName string) (ModuleSliceWithDeps, error) {
	mod, ok := g.Modules[moduleName]
	if !ok {
		return ModuleSliceWithDeps{}, ErrModuleNotFound
	}

	slice := buildModuleSlice(g, moduleName, mod)

	var deps []DepInfo
	for _, depName := range mod.DependsOn {
		depMod, ok := g.Modules[depName]
		if !ok {
			deps = append(deps, DepInfo{Name: depName})
			continue
		}
		exports, stats := collectModuleStats(g, depMod)
		deps = append(deps, DepInfo{
			Name:      depName,
			Exports:   dedupSorted(exports),
			FileCount: len(depMod.Files),
			Stats:     stats,
		})
	}

	return ModuleSliceWithDeps{ModuleSlice: slice, Dependencies: deps}, nil
}

func buildModuleSlice(g *graph.CodeGraph, moduleName string, mod graph.ModuleEntry) ModuleSlice {
	var files []FileSlice
	var allExports []string
	var totalFunctions, totalClasses, totalLines int

	for _, filePath := range mod.Files {
		file, ok := g.Files[filePath]
		if !ok {
			continue
		}
		for _, e := range file.Exports {
			allExports = append(allExports, e.Name)
		}
		totalFunctions += len(file.Functions)
		totalClasses += len(file.Classes)
		totalLines += file.Lines

		files = append(files, FileSlice{
			Path:         filePath,
			Language:     file.Language,
			Lines:        file.Lines,
			Functions:    file.Functions,
			Classes:      file.Classes,
			Imports:      file.Imports,
			Exports:      file.Exports,
			IsEntryPoint: file.IsEntryPoint,
			Hash:         file.Hash,
		})
	}

	return ModuleSlice{
		Module:     moduleName,
		Path:       modulePath(mod, moduleName),
		Files:      files,
		Exports:    dedupSorted(allExports),
		DependsOn:  mod.DependsOn,
		DependedBy: mod.DependedBy,
		Stats: ModuleStats{
			TotalFiles:     len(mod.Files),
			TotalFunctions: totalFunctions,
			TotalClasses:   totalClasses,
			TotalLines:     totalLines,
		},
	}
}

func collectModuleStats(g *graph.CodeGraph, mod graph.ModuleEntry) ([]string, ModuleStats) {
	var exports []string
	var totalFunctions, totalClasses, totalLines int
	for _, filePath := range mod.Files {
		file, ok := g.Files[filePath]
		if !ok {
			continue
		}
		for _, e := range file.Exports {
			exports = append(exports, e.Name)
		}
		totalFunctions += len(file.Functions)
		totalClasses += len(file.Classes)
		totalLines += file.Lines
	}
	return exports, ModuleStats{
		TotalFiles:     len(mod.Files),
		TotalFunctions: totalFunctions,
		TotalClasses:   totalClasses,
		TotalLines:     totalLines,
	}
}

// modulePath returns a representative directory for mod: the parent
// directory of its first file (by insertion order), falling back to
// the module name itself when the module has no files or the first
// file sits at the project root.
func modulePath(mod graph.ModuleEntry, moduleName string) string {
	if len(mod.Files) == 0 {
		return moduleName
	}
	dir := path.Dir(mod.Files[0])
	if dir == "." || dir == "" {
		return moduleName
	}
	return dir
}

func dedupSorted(v []string) []string {
	sort.Strings(v)
	out := v[:0]
	var prev string
	for i, s := range v {
		if i == 0 || s != prev {
			out = append(out, s)
		}
		prev = s
	}
	return out
}
