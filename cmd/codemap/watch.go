package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/killvxk/codemap/services/codemap/graph"
)

var (
	watchExclude  []string
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a project directory and incrementally update the code graph on change",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringSliceVar(&watchExclude, "exclude", nil, "additional glob patterns to exclude")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "quiet period before a batch of changes triggers an update")
}

func runWatch(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := resolveRoot(dir)
	if err != nil {
		return err
	}
	outputDir := outputDirFor(root)

	if _, err := graph.LoadGraph(outputDir); err != nil {
		return fmt.Errorf("no code graph found at %s; run 'codemap scan %s' first", outputDir, root)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	fmt.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", root)

	var timer *time.Timer
	pending := false
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending = true
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		case <-timerChan(timer):
			if !pending {
				continue
			}
			pending = false
			if err := runIncrementalUpdate(root, outputDir, watchExclude); err != nil {
				slog.Error("incremental update failed", "error", err)
			}
		}
	}
}

func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// addWatchDirs recursively registers every non-excluded directory under
// root with watcher. fsnotify watches are not recursive by themselves.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name != "." && len(name) > 0 && name[0] == '.' && path != root {
			return filepath.SkipDir
		}
		if name == "node_modules" || name == "vendor" || name == "target" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// runIncrementalUpdate is the watch loop's equivalent of the update
// subcommand: rescan, diff against the persisted graph, merge in place.
func runIncrementalUpdate(root, outputDir string, exclude []string) error {
	existing, err := graph.LoadGraph(outputDir)
	if err != nil {
		return err
	}
	oldHashes := graph.OldHashes(outputDir, existing)

	excludes, opts, scanID := buildScanOptions(root, exclude, false)
	rescanned, err := graph.Scan(root, excludes, opts...)
	if err != nil {
		return err
	}

	newHashes := make(map[string]string, len(rescanned.Files))
	for relPath, f := range rescanned.Files {
		newHashes[relPath] = f.Hash
	}

	changes := graph.DetectChangedFiles(oldHashes, newHashes)
	if changes.IsEmpty() {
		return nil
	}

	updatedFiles := make(map[string]graph.FileEntry, len(changes.Added)+len(changes.Modified))
	for _, relPath := range append(append([]string{}, changes.Added...), changes.Modified...) {
		if f, ok := rescanned.Files[relPath]; ok {
			updatedFiles[relPath] = f
		}
	}

	graph.MergeGraphUpdate(existing, updatedFiles, changes.Removed)
	existing.ScannedAt = rescanned.ScannedAt

	if err := graph.SaveGraph(outputDir, existing); err != nil {
		return err
	}
	if err := saveSlices(outputDir, existing); err != nil {
		slog.Warn("failed to save slices", "scan_id", scanID, "error", err)
	}
	slog.Info("watch update complete", "scan_id", scanID,
		"added", len(changes.Added), "modified", len(changes.Modified), "removed", len(changes.Removed))

	fmt.Printf("Updated: +%d ~%d -%d\n", len(changes.Added), len(changes.Modified), len(changes.Removed))
	return nil
}
