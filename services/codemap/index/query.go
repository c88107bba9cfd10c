// Package index provides read-only projections over a built CodeGraph:
// symbol search, module lookups, and the overview/slice documents the
// outer CLI persists alongside the graph.
package index

import (
	"sort"

	"github.com/killvxk/codemap/services/codemap/graph"
)

// LineRange is an inclusive 1-based line span.
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// SymbolResult is one match from QuerySymbol.
type SymbolResult struct {
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	File        string    `json:"file"`
	Module      string    `json:"module"`
	Lines       LineRange `json:"lines"`
	FileImports []string  `json:"fileImports"`
	ImportedBy  []string  `json:"importedBy"`
}

// ModuleResult is QueryModule's result shape.
type ModuleResult struct {
	Name       string   `json:"name"`
	Files      []string `json:"files"`
	DependsOn  []string `json:"dependsOn"`
	DependedBy []string `json:"dependedBy"`
}

// QueryOptions filters QuerySymbol. A zero value searches every kind.
type QueryOptions struct {
	// KindFilter restricts matches to one kind: "function" or one of
	// ClassFact's kinds (class, interface, struct, enum, trait,
	// namespace). Empty means no filter.
	KindFilter string
}

// QuerySymbol searches every file in g for functions and classes whose
// name equals or contains symbolName, enriched with the other symbols
// imported in the same file and the files that import this symbol's
// name elsewhere. Results are sorted by (file, name).
func QuerySymbol(g *graph.CodeGraph, symbolName string, opts QueryOptions) []SymbolResult {
	var results []SymbolResult

	for filePath, file := range g.Files {
		if opts.KindFilter == "" || opts.KindFilter == "function" {
			for _, fn := range file.Functions {
				if !matchesSymbol(fn.Name, symbolName) {
					continue
				}
				results = append(results, SymbolResult{
					Kind:        "function",
					Name:        fn.Name,
					File:        filePath,
					Module:      file.Module,
					Lines:       LineRange{Start: fn.StartLine, End: fn.EndLine},
					FileImports: collectFileImports(file, fn.Name),
					ImportedBy:  findCallers(g, filePath, fn.Name),
				})
			}
		}

		for _, cls := range file.Classes {
			if opts.KindFilter != "" && opts.KindFilter != string(cls.Kind) {
				continue
			}
			if !matchesSymbol(cls.Name, symbolName) {
				continue
			}
			results = append(results, SymbolResult{
				Kind:       string(cls.Kind),
				Name:       cls.Name,
				File:       filePath,
				Module:     file.Module,
				Lines:      LineRange{Start: cls.StartLine, End: cls.EndLine},
				ImportedBy: findCallers(g, filePath, cls.Name),
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].File != results[j].File {
			return results[i].File < results[j].File
		}
		return results[i].Name < results[j].Name
	})
	return results
}

// QueryModule returns the module named name, or false if absent.
func QueryModule(g *graph.CodeGraph, name string) (ModuleResult, bool) {
	mod, ok := g.Modules[name]
	if !ok {
		return ModuleResult{}, false
	}
	return ModuleResult{
		Name:       name,
		Files:      mod.Files,
		DependsOn:  mod.DependsOn,
		DependedBy: mod.DependedBy,
	}, true
}

// QueryDependants returns the modules that depend on name.
func QueryDependants(g *graph.CodeGraph, name string) []string {
	if mod, ok := g.Modules[name]; ok {
		return mod.DependedBy
	}
	return nil
}

// QueryDependencies returns the modules that name depends on.
func QueryDependencies(g *graph.CodeGraph, name string) []string {
	if mod, ok := g.Modules[name]; ok {
		return mod.DependsOn
	}
	return nil
}

func matchesSymbol(name, query string) bool {
	if name == query {
		return true
	}
	return containsSubstring(name, query)
}

func containsSubstring(s, substr string) bool {
	if substr == "" {
		return true
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// collectFileImports returns every name imported in file, excluding
// selfName (the symbol being reported on).
func collectFileImports(file graph.FileEntry, selfName string) []string {
	var names []string
	for _, imp := range file.Imports {
		for _, n := range imp.Names {
			if n != selfName {
				names = append(names, n)
			}
		}
	}
	return names
}

// findCallers returns "module:file" entries for every other file in g
// whose imports reference symbolName, sorted.
func findCallers(g *graph.CodeGraph, sourceFile, symbolName string) []string {
	var callers []string
	for filePath, file := range g.Files {
		if filePath == sourceFile {
			continue
		}
		for _, imp := range file.Imports {
			found := false
			for _, n := range imp.Names {
				if n == symbolName {
					found = true
					break
				}
			}
			if found {
				callers = append(callers, file.Module+":"+filePath)
				break
			}
		}
	}
	sort.Strings(callers)
	return callers
}
