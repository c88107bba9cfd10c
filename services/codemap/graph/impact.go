package graph

import "sort"

// TargetType distinguishes whether an impact-analysis target resolved
// to a module name or a file path.
type TargetType string

const (
	TargetModule TargetType = "module"
	TargetFile   TargetType = "file"
)

// ImpactResult is the outcome of a bounded-depth dependency walk from
// one module or file.
type ImpactResult struct {
	TargetType           TargetType `json:"targetType"`
	TargetModule         string     `json:"targetModule"`
	DirectDependants     []string   `json:"directDependants"`
	TransitiveDependants []string   `json:"transitiveDependants"`
	ImpactedModules      []string   `json:"impactedModules"`
	ImpactedFiles        []string   `json:"impactedFiles"`
}

// AnalyzeImpact resolves target against graph (as an exact module, an
// exact file, or a substring match over file paths) and walks the
// reverse-dependency graph (DependedBy edges) breadth-first up to
// maxDepth, reporting every module whose behavior could be affected by
// a change to target.
func AnalyzeImpact(g *CodeGraph, target string, maxDepth int) ImpactResult {
	targetType, targetModule := resolveTarget(g, target)

	var direct []string
	if mod, ok := g.Modules[targetModule]; ok {
		direct = append(direct, mod.DependedBy...)
	}

	transitive := bfsDependants(g.Modules, targetModule, maxDepth)

	impactedModules := append([]string{targetModule}, transitive...)

	var impactedFiles []string
	for _, m := range impactedModules {
		if mod, ok := g.Modules[m]; ok {
			impactedFiles = append(impactedFiles, mod.Files...)
		}
	}
	sort.Strings(impactedFiles)

	return ImpactResult{
		TargetType:           targetType,
		TargetModule:         targetModule,
		DirectDependants:     direct,
		TransitiveDependants: transitive,
		ImpactedModules:      impactedModules,
		ImpactedFiles:        impactedFiles,
	}
}

// resolveTarget resolves target with a three-step priority order:
// exact module key, exact file relPath, then the lexicographically
// first file relPath containing target as a substring. An unresolved
// target is reported back verbatim as a module-type result with no
// matches downstream.
func resolveTarget(g *CodeGraph, target string) (TargetType, string) {
	if _, ok := g.Modules[target]; ok {
		return TargetModule, target
	}
	if f, ok := g.Files[target]; ok {
		return TargetFile, f.Module
	}

	var paths []string
	for relPath := range g.Files {
		paths = append(paths, relPath)
	}
	sort.Strings(paths)
	for _, relPath := range paths {
		if containsSubstring(relPath, target) {
			return TargetFile, g.Files[relPath].Module
		}
	}

	return TargetModule, target
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

// bfsDependants walks DependedBy edges from start, gating expansion by
// depth: a node dequeued at depth >= maxDepth never enqueues its
// neighbors. start is marked visited up front so it is excluded from
// the result even though it is always dequeued once. maxDepth == 0
// therefore yields an empty result.
func bfsDependants(modules map[string]ModuleEntry, start string, maxDepth int) []string {
	type queued struct {
		name  string
		depth int
	}

	visited := map[string]bool{start: true}
	var result []string
	queue := []queued{{start, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= maxDepth {
			continue
		}
		mod, ok := modules[cur.name]
		if !ok {
			continue
		}
		for _, dep := range mod.DependedBy {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			result = append(result, dep)
			queue = append(queue, queued{dep, cur.depth + 1})
		}
	}

	sort.Strings(result)
	return result
}
