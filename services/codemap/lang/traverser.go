package lang

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/killvxk/codemap/services/codemap/pathutil"
)

// DefaultExclude is the set of path-component names codemap always skips
// during traversal, regardless of .gitignore contents.
var DefaultExclude = []string{
	"node_modules", "dist", "build", ".git", "vendor",
	"__pycache__", "target", ".codemap",
}

// Traverse walks root and returns the sorted, POSIX-relative paths of
// every regular file whose extension maps to a known Language.
//
// Description:
//
//	Combines three exclusion mechanisms: the hard-coded DefaultExclude
//	component names, any caller-supplied extraExclude component names,
//	and .gitignore / .git/info/exclude patterns rooted at root (loaded
//	via go-gitignore). A directory matching an exclusion is pruned
//	entirely; its contents are never visited.
//
// Errors:
//
//	Returns an error only if root itself cannot be walked (e.g. does not
//	exist). Individual unreadable entries below root are skipped.
func Traverse(root string, extraExclude []string) ([]string, error) {
	excludeSet := make(map[string]bool, len(DefaultExclude)+len(extraExclude))
	for _, name := range DefaultExclude {
		excludeSet[name] = true
	}
	for _, name := range extraExclude {
		excludeSet[name] = true
	}

	matcher := loadGitignore(root)

	var results []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		relPosix := pathutil.NormalizePath(rel)

		if d.IsDir() {
			if excludeSet[d.Name()] || matcher.MatchesPath(relPosix+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if hasExcludedComponent(relPosix, excludeSet) {
			return nil
		}
		if matcher.MatchesPath(relPosix) {
			return nil
		}
		if _, ok := DetectLanguage(relPosix); !ok {
			return nil
		}
		results = append(results, relPosix)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(results)
	return results, nil
}

func hasExcludedComponent(relPosix string, excludeSet map[string]bool) bool {
	for _, part := range strings.Split(relPosix, "/") {
		if excludeSet[part] {
			return true
		}
	}
	return false
}

// loadGitignore compiles the project's .gitignore and .git/info/exclude
// files, if present, into a single matcher. A project without either
// file yields a matcher that rejects nothing — zero-config traversal
// still works.
func loadGitignore(root string) *gitignore.GitIgnore {
	var lines []string
	for _, rel := range []string{".gitignore", filepath.Join(".git", "info", "exclude")} {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			continue
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	if len(lines) == 0 {
		m, _ := gitignore.CompileIgnoreLines()
		return m
	}
	m, err := gitignore.CompileIgnoreLines(lines...)
	if err != nil {
		m, _ = gitignore.CompileIgnoreLines()
	}
	return m
}
