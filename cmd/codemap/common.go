package main

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/killvxk/codemap/services/codemap/config"
	"github.com/killvxk/codemap/services/codemap/graph"
)

const codemapDirName = ".codemap"

// resolveRoot canonicalizes dir (defaulting to ".") into an absolute path.
func resolveRoot(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve directory %q: %w", dir, err)
	}
	return abs, nil
}

func outputDirFor(root string) string {
	return filepath.Join(root, codemapDirName)
}

// buildScanOptions loads the project's optional codemap.config.yaml and
// merges it with the CLI-supplied excludes/parallel flag into the
// arguments graph.Scan expects. It also mints a per-operation scan id
// used only for correlating the surrounding slog lines.
func buildScanOptions(root string, cliExclude []string, parallel bool) ([]string, []graph.ScanOption, string) {
	scanID := uuid.New().String()

	cfg, err := config.Load(root)
	if err != nil {
		slog.Warn("ignoring invalid codemap.config.yaml", "scan_id", scanID, "error", err)
	}

	excludes := append(append([]string{}, cliExclude...), cfg.ExcludePatterns...)

	var opts []graph.ScanOption
	if parallel {
		opts = append(opts, graph.WithParallelParse())
	}
	if len(cfg.Languages) > 0 {
		opts = append(opts, graph.WithLanguages(cfg.Languages))
	}
	opts = append(opts, graph.WithCommitHashResolver(gitCommitHash))

	slog.Info("scan starting", "scan_id", scanID, "root", root)
	return excludes, opts, scanID
}

// gitCommitHash shells out to git to resolve root's current short commit
// hash. Any failure (not a git worktree, git missing, detached work tree
// with no commits yet) is reported as ok=false rather than an error.
func gitCommitHash(root string) (string, bool) {
	cmd := exec.Command("git", "rev-parse", "--short", "HEAD")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	hash := strings.TrimSpace(string(out))
	if hash == "" {
		return "", false
	}
	return hash, true
}
