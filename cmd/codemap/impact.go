package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killvxk/codemap/services/codemap/graph"
)

var (
	impactDir   string
	impactDepth int
)

var impactCmd = &cobra.Command{
	Use:   "impact <target>",
	Short: "Analyze the impact of changes to a module or file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImpact,
}

func init() {
	impactCmd.Flags().StringVar(&impactDir, "dir", ".", "project directory")
	impactCmd.Flags().IntVar(&impactDepth, "depth", 3, "maximum BFS depth for transitive dependants")
}

func runImpact(_ *cobra.Command, args []string) error {
	target := args[0]
	root, err := resolveRoot(impactDir)
	if err != nil {
		return err
	}

	g, err := graph.LoadGraph(outputDirFor(root))
	if err != nil {
		return fmt.Errorf("no code graph found; run 'codemap scan' first: %w", err)
	}

	result := graph.AnalyzeImpact(g, target, impactDepth)

	fmt.Printf("Impact analysis for: %s\n", target)
	fmt.Printf("  Target type: %s\n", result.TargetType)
	fmt.Printf("  Target module: %s\n", result.TargetModule)
	fmt.Printf("  Direct dependants: %s\n", joinOrNone(result.DirectDependants))
	fmt.Printf("  Transitive dependants: %s\n", joinOrNone(result.TransitiveDependants))
	fmt.Printf("  Impacted modules (%d): %s\n", len(result.ImpactedModules), strings.Join(result.ImpactedModules, ", "))
	fmt.Printf("  Impacted files (%d):\n", len(result.ImpactedFiles))
	for _, f := range result.ImpactedFiles {
		fmt.Printf("    - %s\n", f)
	}
	return nil
}

func joinOrNone(v []string) string {
	if len(v) == 0 {
		return "(none)"
	}
	return strings.Join(v, ", ")
}
