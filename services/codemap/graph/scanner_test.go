package graph

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestDetectModuleNameRoot(t *testing.T) {
	if got := detectModuleName("main.rs"); got != "_root" {
		t.Errorf("detectModuleName(main.rs) = %q, want _root", got)
	}
}

func TestDetectModuleNameSrc(t *testing.T) {
	if got := detectModuleName("src/auth/login.ts"); got != "auth" {
		t.Errorf("detectModuleName(src/auth/login.ts) = %q, want auth", got)
	}
}

func TestDetectModuleNameDirectSubdir(t *testing.T) {
	if got := detectModuleName("utils/helper.ts"); got != "utils" {
		t.Errorf("detectModuleName(utils/helper.ts) = %q, want utils", got)
	}
}

func TestDetectModuleNameSrcRoot(t *testing.T) {
	if got := detectModuleName("src/index.ts"); got != "_root" {
		t.Errorf("detectModuleName(src/index.ts) = %q, want _root", got)
	}
}

func writeProjectFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestScanBasicTSResolution covers spec Scenario 1: an importer and its
// target resolve into dependsOn/dependedBy edges across modules.
func TestScanBasicTSResolution(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "src/auth/login.ts", `
import { helper } from '../utils/helper';
export function login() { return helper(); }
`)
	writeProjectFile(t, root, "src/utils/helper.ts", `
export function helper() { return 1; }
`)

	g, err := Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}

	if g.Summary.TotalFiles != 2 {
		t.Errorf("TotalFiles = %d, want 2", g.Summary.TotalFiles)
	}
	wantModules := []string{"auth", "utils"}
	gotModules := append([]string{}, g.Summary.Modules...)
	sort.Strings(gotModules)
	if len(gotModules) != 2 || gotModules[0] != wantModules[0] || gotModules[1] != wantModules[1] {
		t.Fatalf("Modules = %v, want %v", gotModules, wantModules)
	}

	auth, ok := g.Modules["auth"]
	if !ok {
		t.Fatal("expected auth module")
	}
	if len(auth.DependsOn) != 1 || auth.DependsOn[0] != "utils" {
		t.Errorf("auth.DependsOn = %v, want [utils]", auth.DependsOn)
	}

	utils, ok := g.Modules["utils"]
	if !ok {
		t.Fatal("expected utils module")
	}
	if len(utils.DependedBy) != 1 || utils.DependedBy[0] != "auth" {
		t.Errorf("utils.DependedBy = %v, want [auth]", utils.DependedBy)
	}
}

func TestScanEmptyProject(t *testing.T) {
	root := t.TempDir()
	g, err := Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.Summary.TotalFiles != 0 {
		t.Errorf("TotalFiles = %d, want 0", g.Summary.TotalFiles)
	}
	if len(g.Modules) != 0 {
		t.Errorf("Modules = %v, want empty", g.Modules)
	}
}

func TestScanParallelMatchesSerial(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "src/auth/login.ts", `import { helper } from '../utils/helper';`)
	writeProjectFile(t, root, "src/utils/helper.ts", `export function helper() {}`)
	writeProjectFile(t, root, "main.go", `package main

func main() {}
`)

	serial, err := Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := Scan(root, nil, WithParallelParse())
	if err != nil {
		t.Fatal(err)
	}

	if serial.Summary.TotalFiles != parallel.Summary.TotalFiles {
		t.Errorf("TotalFiles differ: serial=%d parallel=%d", serial.Summary.TotalFiles, parallel.Summary.TotalFiles)
	}
	if len(serial.Files) != len(parallel.Files) {
		t.Errorf("file count differs between serial and parallel scan")
	}
	for relPath, f := range serial.Files {
		pf, ok := parallel.Files[relPath]
		if !ok {
			t.Errorf("parallel scan missing file %q", relPath)
			continue
		}
		if pf.Hash != f.Hash || pf.Module != f.Module {
			t.Errorf("file %q differs between scans: %+v vs %+v", relPath, f, pf)
		}
	}
}

func TestScanEntryPointDetection(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "src/app/main.go", "package main\n\nfunc main() {}\n")
	writeProjectFile(t, root, "src/app/util.go", "package app\n\nfunc helper() {}\n")

	g, err := Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Summary.EntryPoints) != 1 || g.Summary.EntryPoints[0] != "src/app/main.go" {
		t.Errorf("EntryPoints = %v, want [src/app/main.go]", g.Summary.EntryPoints)
	}
}

func TestScanCommitHashResolver(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	g, err := Scan(root, nil, WithCommitHashResolver(func(string) (string, bool) {
		return "deadbeef", true
	}))
	if err != nil {
		t.Fatal(err)
	}
	if g.CommitHash == nil || *g.CommitHash != "deadbeef" {
		t.Errorf("CommitHash = %v, want deadbeef", g.CommitHash)
	}
}

func TestScanWithLanguagesFilter(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "main.go", "package main\n\nfunc main() {}\n")
	writeProjectFile(t, root, "src/helper.ts", "export function helper() {}\n")

	g, err := Scan(root, nil, WithLanguages([]string{"go"}))
	if err != nil {
		t.Fatal(err)
	}
	if g.Summary.TotalFiles != 1 {
		t.Fatalf("TotalFiles = %d, want 1", g.Summary.TotalFiles)
	}
	if _, ok := g.Files["main.go"]; !ok {
		t.Error("expected main.go present")
	}
	if _, ok := g.Files["src/helper.ts"]; ok {
		t.Error("expected src/helper.ts filtered out")
	}
}
