package graph

import (
	"sort"

	"github.com/killvxk/codemap/services/codemap/pathutil"
)

// ChangeSet is the four disjoint, sorted sequences produced by comparing
// two relPath→hash maps.
type ChangeSet struct {
	Added     []string `json:"added"`
	Modified  []string `json:"modified"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
}

// IsEmpty reports whether the changeset has no added, modified, or
// removed entries (unchanged files never trigger a write).
func (c ChangeSet) IsEmpty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0
}

// DetectChangedFiles compares oldHashes (the prior scan's recorded
// hashes) against newHashes (the current disk state) and classifies
// every path into exactly one of added/modified/removed/unchanged.
func DetectChangedFiles(oldHashes, newHashes map[string]string) ChangeSet {
	var cs ChangeSet
	for path, newHash := range newHashes {
		oldHash, existed := oldHashes[path]
		switch {
		case !existed:
			cs.Added = append(cs.Added, path)
		case oldHash != newHash:
			cs.Modified = append(cs.Modified, path)
		default:
			cs.Unchanged = append(cs.Unchanged, path)
		}
	}
	for path := range oldHashes {
		if _, stillPresent := newHashes[path]; !stillPresent {
			cs.Removed = append(cs.Removed, path)
		}
	}
	sort.Strings(cs.Added)
	sort.Strings(cs.Modified)
	sort.Strings(cs.Removed)
	sort.Strings(cs.Unchanged)
	return cs
}

// MergeGraphUpdate rewrites graph in place to reflect updatedFiles
// (added or modified entries) and removedFiles, then reaps emptied
// modules and recomputes summary and dependency edges from scratch.
//
// After this call followed by a hash re-scan, the graph is
// indistinguishable (modulo ScannedAt) from a full Scan over the
// current disk state (spec §4.5's correctness contract).
func MergeGraphUpdate(graph *CodeGraph, updatedFiles map[string]FileEntry, removedFiles []string) {
	for _, relPath := range removedFiles {
		entry, existed := graph.Files[relPath]
		if !existed {
			continue
		}
		delete(graph.Files, relPath)
		if mod, ok := graph.Modules[entry.Module]; ok {
			mod.Files = removeString(mod.Files, relPath)
			graph.Modules[entry.Module] = mod
		}
	}

	for relPath, entry := range updatedFiles {
		if existing, existed := graph.Files[relPath]; existed && existing.Module != entry.Module {
			if oldMod, ok := graph.Modules[existing.Module]; ok {
				oldMod.Files = removeString(oldMod.Files, relPath)
				graph.Modules[existing.Module] = oldMod
			}
		}

		mod, ok := graph.Modules[entry.Module]
		if !ok {
			mod = ModuleEntry{}
		}
		if !containsString(mod.Files, relPath) {
			mod.Files = append(mod.Files, relPath)
		}
		graph.Modules[entry.Module] = mod

		graph.Files[relPath] = entry
	}

	for name, mod := range graph.Modules {
		if len(mod.Files) == 0 {
			delete(graph.Modules, name)
		}
	}

	recalculateSummary(graph)
	rebuildDependencies(graph)
}

func removeString(list []string, target string) []string {
	out := list[:0]
	for _, s := range list {
		if s != target {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

// recalculateSummary rebuilds graph.Summary and graph.Config.Languages
// entirely from graph.Files and graph.Modules.
func recalculateSummary(graph *CodeGraph) {
	languageCounts := map[string]int{}
	totalFunctions, totalClasses := 0, 0
	var entryPoints []string

	for relPath, f := range graph.Files {
		totalFunctions += len(f.Functions)
		totalClasses += len(f.Classes)
		languageCounts[f.Language]++
		if f.IsEntryPoint {
			entryPoints = append(entryPoints, relPath)
		}
	}
	sort.Strings(entryPoints)

	var moduleList []string
	for name := range graph.Modules {
		moduleList = append(moduleList, name)
	}
	sort.Strings(moduleList)

	var languages []string
	for l := range languageCounts {
		languages = append(languages, l)
	}
	sort.Strings(languages)

	graph.Summary = GraphSummary{
		TotalFiles:     len(graph.Files),
		TotalFunctions: totalFunctions,
		TotalClasses:   totalClasses,
		Languages:      languageCounts,
		Modules:        moduleList,
		EntryPoints:    entryPoints,
	}
	graph.Config.Languages = languages
}

// rebuildDependencies regenerates the path-lookup table from
// graph.Files and recomputes every module's DependsOn/DependedBy from
// scratch, using the same resolution strategy as the scanner (the table
// must be rebuilt since relPath→module mappings may have shifted).
func rebuildDependencies(graph *CodeGraph) {
	relPaths := make([]string, 0, len(graph.Files))
	for relPath := range graph.Files {
		relPaths = append(relPaths, relPath)
	}
	sort.Strings(relPaths)

	lookup := make(map[string]string, len(graph.Files)*2)
	for _, relPath := range relPaths {
		f := graph.Files[relPath]
		lookup[relPath] = f.Module
		withoutExt := pathutil.StripExtension(relPath)
		if _, exists := lookup[withoutExt]; !exists {
			lookup[withoutExt] = f.Module
		}
	}

	dependsOn := map[string]map[string]bool{}
	dependedBy := map[string]map[string]bool{}
	for name := range graph.Modules {
		dependsOn[name] = map[string]bool{}
		dependedBy[name] = map[string]bool{}
	}

	for relPath, f := range graph.Files {
		for _, imp := range f.Imports {
			if isExternalImport(imp.Source) {
				continue
			}
			targetModule, ok := resolveImportModule(relPath, imp.Source, lookup)
			if !ok || targetModule == f.Module {
				continue
			}
			if dependsOn[f.Module] == nil {
				dependsOn[f.Module] = map[string]bool{}
			}
			if dependedBy[targetModule] == nil {
				dependedBy[targetModule] = map[string]bool{}
			}
			dependsOn[f.Module][targetModule] = true
			dependedBy[targetModule][f.Module] = true
		}
	}

	for name, mod := range graph.Modules {
		mod.DependsOn = sortedKeys(dependsOn[name])
		mod.DependedBy = sortedKeys(dependedBy[name])
		graph.Modules[name] = mod
	}
}
