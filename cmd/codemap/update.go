package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killvxk/codemap/services/codemap/graph"
)

var updateExclude []string

var updateCmd = &cobra.Command{
	Use:   "update [dir]",
	Short: "Incrementally update the code graph for changed files",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().StringSliceVar(&updateExclude, "exclude", nil, "additional glob patterns to exclude")
}

func runUpdate(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := resolveRoot(dir)
	if err != nil {
		return err
	}
	outputDir := outputDirFor(root)

	existing, err := graph.LoadGraph(outputDir)
	if err != nil {
		return fmt.Errorf("could not load graph from %s: %w (run 'codemap scan %s' first)", outputDir, err, root)
	}

	oldHashes := graph.OldHashes(outputDir, existing)

	excludes, opts, scanID := buildScanOptions(root, updateExclude, false)
	rescanned, err := graph.Scan(root, excludes, opts...)
	if err != nil {
		return fmt.Errorf("rescan failed: %w", err)
	}

	newHashes := make(map[string]string, len(rescanned.Files))
	for relPath, f := range rescanned.Files {
		newHashes[relPath] = f.Hash
	}

	changes := graph.DetectChangedFiles(oldHashes, newHashes)
	if changes.IsEmpty() {
		fmt.Println("No changes detected.")
		return nil
	}

	fmt.Printf("Changes: +%d added, ~%d modified, -%d removed\n",
		len(changes.Added), len(changes.Modified), len(changes.Removed))

	updatedFiles := make(map[string]graph.FileEntry, len(changes.Added)+len(changes.Modified))
	for _, relPath := range append(append([]string{}, changes.Added...), changes.Modified...) {
		if f, ok := rescanned.Files[relPath]; ok {
			updatedFiles[relPath] = f
		}
	}

	graph.MergeGraphUpdate(existing, updatedFiles, changes.Removed)
	existing.ScannedAt = rescanned.ScannedAt

	if err := graph.SaveGraph(outputDir, existing); err != nil {
		return fmt.Errorf("saving graph: %w", err)
	}
	if err := saveSlices(outputDir, existing); err != nil {
		slog.Warn("failed to save slices", "scan_id", scanID, "error", err)
	}
	slog.Info("update complete", "scan_id", scanID,
		"added", len(changes.Added), "modified", len(changes.Modified), "removed", len(changes.Removed))

	fmt.Println("Update complete.")
	fmt.Printf("  +%d ~%d -%d\n", len(changes.Added), len(changes.Modified), len(changes.Removed))
	if len(changes.Added) > 0 {
		fmt.Printf("  Added: %s\n", strings.Join(changes.Added, ", "))
	}
	if len(changes.Modified) > 0 {
		fmt.Printf("  Modified: %s\n", strings.Join(changes.Modified, ", "))
	}
	if len(changes.Removed) > 0 {
		fmt.Printf("  Removed: %s\n", strings.Join(changes.Removed, ", "))
	}
	return nil
}
