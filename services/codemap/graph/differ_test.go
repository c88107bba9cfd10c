package graph

import (
	"testing"

	"github.com/killvxk/codemap/services/codemap/ast"
)

func makeFileEntry(module string) FileEntry {
	return FileEntry{
		Language:     "typescript",
		Module:       module,
		Hash:         "sha256:aabbccdd11223344",
		Lines:        10,
		Functions:    nil,
		Classes:      nil,
		Imports:      nil,
		Exports:      nil,
		IsEntryPoint: false,
	}
}

func TestDetectChangedFilesNoChanges(t *testing.T) {
	hashes := map[string]string{"a.ts": "h1", "b.ts": "h2"}
	cs := DetectChangedFiles(hashes, hashes)
	if !cs.IsEmpty() {
		t.Fatalf("expected empty changeset, got %+v", cs)
	}
	if len(cs.Unchanged) != 2 {
		t.Errorf("Unchanged = %v, want 2 entries", cs.Unchanged)
	}
}

func TestDetectChangedFilesAdded(t *testing.T) {
	old := map[string]string{"a.ts": "h1"}
	new := map[string]string{"a.ts": "h1", "b.ts": "h2"}
	cs := DetectChangedFiles(old, new)
	if len(cs.Added) != 1 || cs.Added[0] != "b.ts" {
		t.Errorf("Added = %v, want [b.ts]", cs.Added)
	}
	if len(cs.Modified) != 0 || len(cs.Removed) != 0 {
		t.Errorf("expected no modified/removed, got %+v", cs)
	}
}

func TestDetectChangedFilesModified(t *testing.T) {
	old := map[string]string{"a.ts": "h1"}
	new := map[string]string{"a.ts": "h2"}
	cs := DetectChangedFiles(old, new)
	if len(cs.Modified) != 1 || cs.Modified[0] != "a.ts" {
		t.Errorf("Modified = %v, want [a.ts]", cs.Modified)
	}
}

func TestDetectChangedFilesRemoved(t *testing.T) {
	old := map[string]string{"a.ts": "h1", "b.ts": "h2"}
	new := map[string]string{"a.ts": "h1"}
	cs := DetectChangedFiles(old, new)
	if len(cs.Removed) != 1 || cs.Removed[0] != "b.ts" {
		t.Errorf("Removed = %v, want [b.ts]", cs.Removed)
	}
}

func TestDetectChangedFilesSorted(t *testing.T) {
	old := map[string]string{}
	new := map[string]string{"z.ts": "h1", "a.ts": "h2", "m.ts": "h3"}
	cs := DetectChangedFiles(old, new)
	want := []string{"a.ts", "m.ts", "z.ts"}
	for i, w := range want {
		if cs.Added[i] != w {
			t.Errorf("Added[%d] = %q, want %q", i, cs.Added[i], w)
		}
	}
}

func TestMergeRemoveFileReapsModule(t *testing.T) {
	g := NewEmptyGraph("test", "/tmp/test")
	g.Files["src/a.ts"] = makeFileEntry("auth")
	g.Modules["auth"] = ModuleEntry{Files: []string{"src/a.ts"}}
	g.Summary.TotalFiles = 1

	MergeGraphUpdate(g, map[string]FileEntry{}, []string{"src/a.ts"})

	if _, ok := g.Files["src/a.ts"]; ok {
		t.Error("expected src/a.ts removed")
	}
	if _, ok := g.Modules["auth"]; ok {
		t.Error("expected empty module auth reaped")
	}
	if g.Summary.TotalFiles != 0 {
		t.Errorf("TotalFiles = %d, want 0", g.Summary.TotalFiles)
	}
}

func TestMergeAddFile(t *testing.T) {
	g := NewEmptyGraph("test", "/tmp/test")

	MergeGraphUpdate(g, map[string]FileEntry{"src/b.ts": makeFileEntry("utils")}, nil)

	if _, ok := g.Files["src/b.ts"]; !ok {
		t.Fatal("expected src/b.ts present")
	}
	mod, ok := g.Modules["utils"]
	if !ok {
		t.Fatal("expected utils module")
	}
	if len(mod.Files) != 1 || mod.Files[0] != "src/b.ts" {
		t.Errorf("utils.Files = %v, want [src/b.ts]", mod.Files)
	}
	if g.Summary.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", g.Summary.TotalFiles)
	}
}

func TestMergeModuleChange(t *testing.T) {
	g := NewEmptyGraph("test", "/tmp/test")
	g.Files["src/a.ts"] = makeFileEntry("old_mod")
	g.Modules["old_mod"] = ModuleEntry{Files: []string{"src/a.ts"}}

	MergeGraphUpdate(g, map[string]FileEntry{"src/a.ts": makeFileEntry("new_mod")}, nil)

	if _, ok := g.Modules["old_mod"]; ok {
		t.Error("expected old_mod reaped")
	}
	if _, ok := g.Modules["new_mod"]; !ok {
		t.Error("expected new_mod present")
	}
	if g.Files["src/a.ts"].Module != "new_mod" {
		t.Errorf("file module = %q, want new_mod", g.Files["src/a.ts"].Module)
	}
}

func TestRebuildDependencies(t *testing.T) {
	g := NewEmptyGraph("test", "/tmp/test")

	authFile := makeFileEntry("auth")
	authFile.Imports = []ast.ImportFact{{Source: "../utils/helper", Names: nil}}
	g.Files["src/auth/login.ts"] = authFile
	g.Files["src/utils/helper.ts"] = makeFileEntry("utils")

	g.Modules["auth"] = ModuleEntry{Files: []string{"src/auth/login.ts"}}
	g.Modules["utils"] = ModuleEntry{Files: []string{"src/utils/helper.ts"}}

	rebuildDependencies(g)

	if got := g.Modules["auth"].DependsOn; len(got) != 1 || got[0] != "utils" {
		t.Errorf("auth.DependsOn = %v, want [utils]", got)
	}
	if got := g.Modules["utils"].DependedBy; len(got) != 1 || got[0] != "auth" {
		t.Errorf("utils.DependedBy = %v, want [auth]", got)
	}
}

// TestRebuildDependenciesStemCollisionIsDeterministic covers the
// extension-stripped lookup collision: "utils/helper.py" and
// "utils/helper.ts" both strip to "utils/helper", so whichever file
// wins must be the same every time rebuildDependencies runs, matching
// the first-insert-wins rule buildPathLookup applies during a full scan
// (sorted relPath order, so "utils/helper.py" wins over "utils/helper.ts").
func TestRebuildDependenciesStemCollisionIsDeterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		g := NewEmptyGraph("test", "/tmp/test")

		authFile := makeFileEntry("auth")
		authFile.Imports = []ast.ImportFact{{Source: "../utils/helper", Names: nil}}
		g.Files["src/auth/login.ts"] = authFile
		g.Files["src/utils/helper.py"] = makeFileEntry("utils_py")
		g.Files["src/utils/helper.ts"] = makeFileEntry("utils_ts")

		g.Modules["auth"] = ModuleEntry{Files: []string{"src/auth/login.ts"}}
		g.Modules["utils_py"] = ModuleEntry{Files: []string{"src/utils/helper.py"}}
		g.Modules["utils_ts"] = ModuleEntry{Files: []string{"src/utils/helper.ts"}}

		rebuildDependencies(g)

		got := g.Modules["auth"].DependsOn
		if len(got) != 1 || got[0] != "utils_py" {
			t.Fatalf("run %d: auth.DependsOn = %v, want [utils_py] (first insert in sorted relPath order)", i, got)
		}
	}
}

// TestIncrementalDeleteReapsModule covers spec Scenario 3.
func TestIncrementalDeleteReapsModule(t *testing.T) {
	g := NewEmptyGraph("test", "/tmp/test")
	authFile := makeFileEntry("auth")
	authFile.Imports = []ast.ImportFact{{Source: "../utils/helper"}}
	g.Files["src/auth/login.ts"] = authFile
	g.Files["src/utils/helper.ts"] = makeFileEntry("utils")
	g.Modules["auth"] = ModuleEntry{Files: []string{"src/auth/login.ts"}}
	g.Modules["utils"] = ModuleEntry{Files: []string{"src/utils/helper.ts"}}
	rebuildDependencies(g)
	recalculateSummary(g)

	MergeGraphUpdate(g, map[string]FileEntry{}, []string{"src/utils/helper.ts"})

	if _, ok := g.Modules["utils"]; ok {
		t.Error("expected utils module reaped")
	}
	if got := g.Modules["auth"].DependsOn; len(got) != 0 {
		t.Errorf("auth.DependsOn = %v, want empty", got)
	}
	if len(g.Summary.Modules) != 1 || g.Summary.Modules[0] != "auth" {
		t.Errorf("Summary.Modules = %v, want [auth]", g.Summary.Modules)
	}
	if g.Summary.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", g.Summary.TotalFiles)
	}
}
