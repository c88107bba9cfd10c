package graph

import "testing"

// makeImpactGraph builds the fixture from impact.rs's tests:
// core ← utils ← app, and core ← app directly.
func makeImpactGraph() *CodeGraph {
	g := NewEmptyGraph("test", "/tmp/test")
	g.Modules["core"] = ModuleEntry{
		Files:      []string{"src/core/mod.rs"},
		DependedBy: []string{"utils", "app"},
	}
	g.Modules["utils"] = ModuleEntry{
		Files:      []string{"src/utils/mod.rs"},
		DependsOn:  []string{"core"},
		DependedBy: []string{"app"},
	}
	g.Modules["app"] = ModuleEntry{
		Files:     []string{"src/main.rs"},
		DependsOn: []string{"core", "utils"},
	}
	g.Files["src/core/mod.rs"] = FileEntry{Language: "rust", Module: "core", Hash: "sha256:abc"}
	return g
}

func TestImpactModuleCore(t *testing.T) {
	g := makeImpactGraph()
	result := AnalyzeImpact(g, "core", 3)
	if result.TargetType != TargetModule {
		t.Errorf("TargetType = %v, want module", result.TargetType)
	}
	if result.TargetModule != "core" {
		t.Errorf("TargetModule = %q, want core", result.TargetModule)
	}
	if len(result.DirectDependants) != 2 {
		t.Errorf("DirectDependants = %v, want 2 entries", result.DirectDependants)
	}
	if !containsString(result.TransitiveDependants, "app") || !containsString(result.TransitiveDependants, "utils") {
		t.Errorf("TransitiveDependants = %v, want app and utils", result.TransitiveDependants)
	}
	if !containsString(result.ImpactedModules, "core") {
		t.Errorf("ImpactedModules = %v, want to contain core", result.ImpactedModules)
	}
}

func TestImpactModuleUtils(t *testing.T) {
	g := makeImpactGraph()
	result := AnalyzeImpact(g, "utils", 3)
	if len(result.DirectDependants) != 1 || result.DirectDependants[0] != "app" {
		t.Errorf("DirectDependants = %v, want [app]", result.DirectDependants)
	}
	if len(result.TransitiveDependants) != 1 || result.TransitiveDependants[0] != "app" {
		t.Errorf("TransitiveDependants = %v, want [app]", result.TransitiveDependants)
	}
}

func TestImpactModuleAppNoDependants(t *testing.T) {
	g := makeImpactGraph()
	result := AnalyzeImpact(g, "app", 3)
	if len(result.DirectDependants) != 0 {
		t.Errorf("DirectDependants = %v, want empty", result.DirectDependants)
	}
	if len(result.TransitiveDependants) != 0 {
		t.Errorf("TransitiveDependants = %v, want empty", result.TransitiveDependants)
	}
	if len(result.ImpactedModules) != 1 || result.ImpactedModules[0] != "app" {
		t.Errorf("ImpactedModules = %v, want [app]", result.ImpactedModules)
	}
}

func TestImpactFilePath(t *testing.T) {
	g := makeImpactGraph()
	result := AnalyzeImpact(g, "src/core/mod.rs", 3)
	if result.TargetType != TargetFile {
		t.Errorf("TargetType = %v, want file", result.TargetType)
	}
	if result.TargetModule != "core" {
		t.Errorf("TargetModule = %q, want core", result.TargetModule)
	}
}

func TestImpactPartialFilePath(t *testing.T) {
	g := makeImpactGraph()
	result := AnalyzeImpact(g, "core/mod", 3)
	if result.TargetType != TargetFile {
		t.Errorf("TargetType = %v, want file", result.TargetType)
	}
	if result.TargetModule != "core" {
		t.Errorf("TargetModule = %q, want core", result.TargetModule)
	}
}

func TestImpactNotFound(t *testing.T) {
	g := makeImpactGraph()
	result := AnalyzeImpact(g, "nonexistent", 3)
	if result.TargetModule != "nonexistent" {
		t.Errorf("TargetModule = %q, want nonexistent", result.TargetModule)
	}
	if len(result.DirectDependants) != 0 {
		t.Errorf("DirectDependants = %v, want empty", result.DirectDependants)
	}
	if len(result.ImpactedFiles) != 0 {
		t.Errorf("ImpactedFiles = %v, want empty", result.ImpactedFiles)
	}
}

func TestImpactBFSDepthLimitZero(t *testing.T) {
	g := makeImpactGraph()
	result := AnalyzeImpact(g, "core", 0)
	if len(result.TransitiveDependants) != 0 {
		t.Errorf("TransitiveDependants = %v, want empty at depth 0", result.TransitiveDependants)
	}
}

func TestImpactedFilesSorted(t *testing.T) {
	g := makeImpactGraph()
	result := AnalyzeImpact(g, "core", 3)
	for i := 1; i < len(result.ImpactedFiles); i++ {
		if result.ImpactedFiles[i-1] > result.ImpactedFiles[i] {
			t.Errorf("ImpactedFiles not sorted: %v", result.ImpactedFiles)
		}
	}
}
