package graph

import (
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/killvxk/codemap/services/codemap/ast"
	"github.com/killvxk/codemap/services/codemap/lang"
	"github.com/killvxk/codemap/services/codemap/pathutil"
)

// commonRootDirs are the leading path segments detectModuleName skips
// when deriving a module name from a file's relative path.
var commonRootDirs = map[string]bool{
	"src": true, "lib": true, "app": true, "source": true, "packages": true,
}

// detectModuleName derives a module name from relPath: the first
// directory segment after any leading run of commonRootDirs is the
// module; a file with no surviving directory segment belongs to
// "_root".
func detectModuleName(relPath string) string {
	dir := pathutil.PosixDirname(relPath)
	if dir == "." || dir == "/" {
		return "_root"
	}
	segments := splitPosix(dir)
	for len(segments) > 0 && commonRootDirs[segments[0]] {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "_root"
	}
	return segments[0]
}

func toSet(v []string) map[string]bool {
	if len(v) == 0 {
		return nil
	}
	set := make(map[string]bool, len(v))
	for _, s := range v {
		set[s] = true
	}
	return set
}

func splitPosix(p string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(p); i++ {
		if i == len(p) || p[i] == '/' {
			if i > start {
				out = append(out, p[start:i])
			}
			start = i + 1
		}
	}
	return out
}

// ScanOptions configures Scan. The zero value runs single-threaded with
// no commit hash.
type ScanOptions struct {
	// Parallel enables bounded-parallel per-file parsing (spec §5). The
	// final graph is identical to the serial result either way: files
	// are collected into a slice and sorted before any module/summary
	// state is derived from them.
	Parallel bool

	// CommitHashResolver, when set, supplies graph.commitHash (e.g. the
	// current git HEAD). A resolver returning ok=false leaves commitHash
	// nil.
	CommitHashResolver func(rootDir string) (string, bool)

	// Languages, when non-empty, restricts the scan to files whose
	// detected language is in this set. Empty means every supported
	// language is considered.
	Languages []string
}

// ScanOption mutates a ScanOptions.
type ScanOption func(*ScanOptions)

// WithParallelParse enables concurrent per-file parsing.
func WithParallelParse() ScanOption {
	return func(o *ScanOptions) { o.Parallel = true }
}

// WithCommitHashResolver sets the function Scan uses to populate
// CodeGraph.CommitHash.
func WithCommitHashResolver(resolver func(rootDir string) (string, bool)) ScanOption {
	return func(o *ScanOptions) { o.CommitHashResolver = resolver }
}

// WithLanguages restricts Scan to the given language tags.
func WithLanguages(languages []string) ScanOption {
	return func(o *ScanOptions) { o.Languages = languages }
}

type fileRecord struct {
	relPath      string
	language     string
	moduleName   string
	hash         string
	lines        int
	functions    []ast.FunctionFact
	classes      []ast.ClassFact
	imports      []ast.ImportFact
	exports      []ast.ExportFact
	isEntryPoint bool
}

// Scan walks rootDir, parses every indexable file, and assembles a
// complete CodeGraph: module assignment, cross-file import resolution,
// dependency edges, and summary aggregates.
//
// Files that cannot be read, fail to parse, or have no adapter are
// silently skipped (spec §7 file-local recoverable errors); Scan itself
// only fails if rootDir cannot be walked at all.
func Scan(rootDir string, excludes []string, opts ...ScanOption) (*CodeGraph, error) {
	var options ScanOptions
	for _, opt := range opts {
		opt(&options)
	}

	paths, err := lang.Traverse(rootDir, excludes)
	if err != nil {
		return nil, err
	}
	hasCpp := lang.HasCppSourceFiles(paths)

	records := make([]*fileRecord, len(paths))
	parseOne := func(i int) {
		records[i] = parseFile(rootDir, paths[i], hasCpp)
	}

	if options.Parallel {
		var g errgroup.Group
		for i := range paths {
			i := i
			g.Go(func() error {
				parseOne(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range paths {
			parseOne(i)
		}
	}

	allowedLangs := toSet(options.Languages)
	var files []*fileRecord
	for _, r := range records {
		if r == nil {
			continue
		}
		if len(allowedLangs) > 0 && !allowedLangs[r.language] {
			continue
		}
		files = append(files, r)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].relPath < files[j].relPath })

	projectName := filepath.Base(rootDir)
	graph := NewEmptyGraph(projectName, pathutil.NormalizePath(rootDir))
	if options.CommitHashResolver != nil {
		if hash, ok := options.CommitHashResolver(rootDir); ok {
			graph.CommitHash = &hash
		}
	}

	assembleGraph(graph, files)
	return graph, nil
}

func parseFile(rootDir, relPath string, hasCpp bool) *fileRecord {
	baseLang, ok := lang.DetectLanguage(relPath)
	if !ok {
		return nil
	}
	effectiveLang := lang.EffectiveLanguage(relPath, baseLang, hasCpp)

	absPath := filepath.Join(rootDir, filepath.FromSlash(relPath))
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil
	}

	adapter, ok := ast.GetAdapter(effectiveLang, relPath)
	if !ok {
		return nil
	}
	result, err := adapter.Parse(content)
	if err != nil {
		return nil
	}

	return &fileRecord{
		relPath:      relPath,
		language:     string(effectiveLang),
		moduleName:   detectModuleName(relPath),
		hash:         ComputeFileHash(content),
		lines:        result.Lines,
		functions:    result.Functions,
		classes:      result.Classes,
		imports:      result.Imports,
		exports:      result.Exports,
		isEntryPoint: lang.IsEntryPoint(relPath),
	}
}

// assembleGraph builds path-lookup table, resolves imports into
// module-level edges, and fills graph.Files/Modules/Summary from files.
// Shared by Scan (fresh build) and the differ's rebuild-dependencies
// pass, which needs the identical lookup-and-resolve strategy.
func assembleGraph(graphOut *CodeGraph, files []*fileRecord) {
	lookup := buildPathLookup(files)

	dependsOn := map[string]map[string]bool{}
	dependedBy := map[string]map[string]bool{}
	moduleSet := map[string]bool{}
	for _, f := range files {
		moduleSet[f.moduleName] = true
	}
	for m := range moduleSet {
		dependsOn[m] = map[string]bool{}
		dependedBy[m] = map[string]bool{}
	}

	languageCounts := map[string]int{}
	totalFunctions, totalClasses := 0, 0

	for _, f := range files {
		languageCounts[f.language]++
		totalFunctions += len(f.functions)
		totalClasses += len(f.classes)

		for _, imp := range f.imports {
			if isExternalImport(imp.Source) {
				continue
			}
			targetModule, ok := resolveImportModule(f.relPath, imp.Source, lookup)
			if !ok || targetModule == f.moduleName {
				continue
			}
			dependsOn[f.moduleName][targetModule] = true
			dependedBy[targetModule][f.moduleName] = true
		}

		graphOut.Files[f.relPath] = FileEntry{
			Language:     f.language,
			Module:       f.moduleName,
			Hash:         f.hash,
			Lines:        f.lines,
			Functions:    f.functions,
			Classes:      f.classes,
			Imports:      f.imports,
			Exports:      f.exports,
			IsEntryPoint: f.isEntryPoint,
		}
	}

	modules := make(map[string]ModuleEntry, len(moduleSet))
	for m := range moduleSet {
		var filesForModule []string
		for _, f := range files {
			if f.moduleName == m {
				filesForModule = append(filesForModule, f.relPath)
			}
		}
		modules[m] = ModuleEntry{
			Files:      filesForModule,
			DependsOn:  sortedKeys(dependsOn[m]),
			DependedBy: sortedKeys(dependedBy[m]),
		}
	}
	graphOut.Modules = modules

	var moduleList []string
	for m := range moduleSet {
		moduleList = append(moduleList, m)
	}
	sort.Strings(moduleList)

	var entryPoints []string
	for relPath, entry := range graphOut.Files {
		if entry.IsEntryPoint {
			entryPoints = append(entryPoints, relPath)
		}
	}
	sort.Strings(entryPoints)

	var languages []string
	for l := range languageCounts {
		languages = append(languages, l)
	}
	sort.Strings(languages)

	graphOut.Summary = GraphSummary{
		TotalFiles:     len(files),
		TotalFunctions: totalFunctions,
		TotalClasses:   totalClasses,
		Languages:      languageCounts,
		Modules:        moduleList,
		EntryPoints:    entryPoints,
	}
	graphOut.Config.Languages = languages
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// buildPathLookup maps every file's POSIX relPath, and its
// extension-stripped form, to its module name. First insert wins for
// the extension-stripped form so "auth/login.ts" and a hypothetical
// "auth/login.json" never fight over "auth/login".
func buildPathLookup(files []*fileRecord) map[string]string {
	lookup := make(map[string]string, len(files)*2)
	for _, f := range files {
		lookup[f.relPath] = f.moduleName
		withoutExt := pathutil.StripExtension(f.relPath)
		if _, exists := lookup[withoutExt]; !exists {
			lookup[withoutExt] = f.moduleName
		}
	}
	return lookup
}

// isExternalImport reports whether source is not a relative path. This
// is the simplest reliable classifier and the one most likely to be
// revisited as more import styles are supported.
func isExternalImport(source string) bool {
	return len(source) == 0 || source[0] != '.'
}

// resolveImportModule resolves a relative import source from importer
// (a POSIX relPath) against lookup: exact match first, then the
// "/index" fallback for directory-style imports.
func resolveImportModule(importerRelPath, source string, lookup map[string]string) (string, bool) {
	dir := pathutil.PosixDirname(importerRelPath)
	resolved := pathutil.PosixNormalize(dir + "/" + source)

	if m, ok := lookup[resolved]; ok {
		return m, true
	}
	if m, ok := lookup[resolved+"/index"]; ok {
		return m, true
	}
	return "", false
}
