package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/killvxk/codemap/services/codemap/graph"
	"github.com/killvxk/codemap/services/codemap/index"
)

var (
	sliceDir      string
	sliceWithDeps bool
)

var sliceCmd = &cobra.Command{
	Use:   "slice [module]",
	Short: "Output the project overview or a single module slice as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSlice,
}

func init() {
	sliceCmd.Flags().StringVar(&sliceDir, "dir", ".", "project directory")
	sliceCmd.Flags().BoolVar(&sliceWithDeps, "with-deps", false, "include dependency info in module slice")
}

func runSlice(_ *cobra.Command, args []string) error {
	root, err := resolveRoot(sliceDir)
	if err != nil {
		return err
	}
	g, err := graph.LoadGraph(outputDirFor(root))
	if err != nil {
		return fmt.Errorf("could not load graph from %s: %w (run 'codemap scan %s' first)", outputDirFor(root), err, root)
	}

	if len(args) == 0 {
		return printJSON(index.BuildOverview(g))
	}

	moduleName := args[0]
	if sliceWithDeps {
		slice, err := index.BuildSliceWithDeps(g, moduleName)
		if err != nil {
			return fmt.Errorf("module %q not found in graph", moduleName)
		}
		return printJSON(slice)
	}

	slice, ok := index.BuildSlice(g, moduleName)
	if !ok {
		return fmt.Errorf("module %q not found in graph", moduleName)
	}
	return printJSON(slice)
}
