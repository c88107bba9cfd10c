package index

import (
	"testing"

	"github.com/killvxk/codemap/services/codemap/ast"
	"github.com/killvxk/codemap/services/codemap/graph"
)

func makeSliceGraph() *graph.CodeGraph {
	g := graph.NewEmptyGraph("test", "/test")

	g.Files["auth/login.ts"] = graph.FileEntry{
		Language:  "typescript",
		Module:    "auth",
		Hash:      "sha256:abc",
		Lines:     30,
		Functions: []ast.FunctionFact{{Name: "login", StartLine: 5, EndLine: 15}},
		Exports:   []ast.ExportFact{{Name: "login", Kind: ast.ExportFunction}},
	}
	g.Files["utils/helper.ts"] = graph.FileEntry{
		Language:  "typescript",
		Module:    "utils",
		Hash:      "sha256:def",
		Lines:     10,
		Functions: []ast.FunctionFact{{Name: "hashPassword", StartLine: 1, EndLine: 8}},
		Exports:   []ast.ExportFact{{Name: "hashPassword", Kind: ast.ExportFunction}},
	}

	g.Modules["auth"] = graph.ModuleEntry{Files: []string{"auth/login.ts"}, DependsOn: []string{"utils"}}
	g.Modules["utils"] = graph.ModuleEntry{Files: []string{"utils/helper.ts"}, DependedBy: []string{"auth"}}
	g.Summary.TotalFiles = 2

	return g
}

func TestGenerateOverview(t *testing.T) {
	g := makeSliceGraph()
	overview := BuildOverview(g)

	if overview.Project.Name != "test" {
		t.Errorf("Project.Name = %q, want test", overview.Project.Name)
	}
	if len(overview.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(overview.Modules))
	}
	if overview.Modules[0].Name != "auth" {
		t.Errorf("Modules[0].Name = %q, want auth (sorted)", overview.Modules[0].Name)
	}
	if overview.Modules[0].Stats.TotalFunctions != 1 {
		t.Errorf("auth TotalFunctions = %d, want 1", overview.Modules[0].Stats.TotalFunctions)
	}
}

func TestBuildModuleSlice(t *testing.T) {
	g := makeSliceGraph()
	slice, ok := BuildSlice(g, "auth")
	if !ok {
		t.Fatal("expected auth module slice")
	}
	if len(slice.Files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(slice.Files))
	}
	if slice.Files[0].Path != "auth/login.ts" {
		t.Errorf("Files[0].Path = %q", slice.Files[0].Path)
	}
	if len(slice.Exports) != 1 || slice.Exports[0] != "login" {
		t.Errorf("Exports = %v, want [login]", slice.Exports)
	}
	if slice.Stats.TotalLines != 30 {
		t.Errorf("TotalLines = %d, want 30", slice.Stats.TotalLines)
	}
}

func TestGetModuleSliceWithDeps(t *testing.T) {
	g := makeSliceGraph()
	slice, err := BuildSliceWithDeps(g, "auth")
	if err != nil {
		t.Fatal(err)
	}
	if len(slice.Dependencies) != 1 {
		t.Fatalf("expected 1 dependency, got %d", len(slice.Dependencies))
	}
	dep := slice.Dependencies[0]
	if dep.Name != "utils" {
		t.Errorf("Dependencies[0].Name = %q, want utils", dep.Name)
	}
	if len(dep.Exports) != 1 || dep.Exports[0] != "hashPassword" {
		t.Errorf("Dependencies[0].Exports = %v, want [hashPassword]", dep.Exports)
	}
}

func TestGetModuleSliceWithDepsNotFound(t *testing.T) {
	g := makeSliceGraph()
	_, err := BuildSliceWithDeps(g, "nonexistent")
	if err != ErrModuleNotFound {
		t.Errorf("err = %v, want ErrModuleNotFound", err)
	}
}

func TestDedupSorted(t *testing.T) {
	in := []string{"b", "a", "b", "c", "a"}
	out := dedupSorted(in)
	want := []string{"a", "b", "c"}
	if len(out) != len(want) {
		t.Fatalf("dedupSorted(%v) = %v, want %v", in, out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("dedupSorted(%v)[%d] = %q, want %q", in, i, out[i], want[i])
		}
	}
}

func TestModulePathFallsBackToName(t *testing.T) {
	mod := graph.ModuleEntry{}
	if got := modulePath(mod, "_root"); got != "_root" {
		t.Errorf("modulePath(empty) = %q, want _root", got)
	}
}
