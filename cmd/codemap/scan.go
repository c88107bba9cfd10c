package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killvxk/codemap/services/codemap/graph"
	"github.com/killvxk/codemap/services/codemap/index"
)

var (
	scanExclude  []string
	scanParallel bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a project directory and build a code graph",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringSliceVar(&scanExclude, "exclude", nil, "additional glob patterns to exclude")
	scanCmd.Flags().BoolVar(&scanParallel, "parallel", false, "parse files concurrently")
}

func runScan(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := resolveRoot(dir)
	if err != nil {
		return err
	}

	fmt.Printf("Scanning %s...\n", root)

	excludes, opts, scanID := buildScanOptions(root, scanExclude, scanParallel)

	g, err := graph.Scan(root, excludes, opts...)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	outputDir := outputDirFor(root)
	if err := graph.SaveGraph(outputDir, g); err != nil {
		return fmt.Errorf("saving graph: %w", err)
	}
	if err := saveSlices(outputDir, g); err != nil {
		slog.Warn("failed to save slices", "scan_id", scanID, "error", err)
	}
	slog.Info("scan complete", "scan_id", scanID, "files", g.Summary.TotalFiles, "functions", g.Summary.TotalFunctions)

	fmt.Println("Scan complete.")
	fmt.Printf("  Files:     %d\n", g.Summary.TotalFiles)
	fmt.Printf("  Functions: %d\n", g.Summary.TotalFunctions)
	fmt.Printf("  Modules:   %s\n", strings.Join(g.Summary.Modules, ", "))
	fmt.Printf("  Output:    %s\n", outputDir)
	return nil
}

// saveSlices regenerates the slices/ projection documents from g.
func saveSlices(outputDir string, g *graph.CodeGraph) error {
	overview := index.BuildOverview(g)
	slices := make(map[string]any, len(g.Modules))
	for name := range g.Modules {
		if slice, ok := index.BuildSlice(g, name); ok {
			slices[name] = slice
		}
	}
	return graph.SaveSlices(outputDir, overview, slices)
}
