package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/killvxk/codemap/services/codemap/graph"
	"github.com/killvxk/codemap/services/codemap/index"
)

var (
	queryDir    string
	queryType   string
	queryModule bool
)

var queryCmd = &cobra.Command{
	Use:   "query <symbol>",
	Short: "Query the code graph for a symbol or module",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryDir, "dir", ".", "project directory")
	queryCmd.Flags().StringVar(&queryType, "type", "", "filter by kind: function, class, interface, struct, enum, trait, namespace")
	queryCmd.Flags().BoolVar(&queryModule, "module", false, "query a module instead of a symbol")
}

func runQuery(_ *cobra.Command, args []string) error {
	symbol := args[0]
	root, err := resolveRoot(queryDir)
	if err != nil {
		return err
	}
	g, err := graph.LoadGraph(outputDirFor(root))
	if err != nil {
		return fmt.Errorf("failed to load code graph from %s: %w (run 'codemap scan %s' first)", outputDirFor(root), err, root)
	}

	if queryModule {
		result, ok := index.QueryModule(g, symbol)
		if !ok {
			var mods []string
			for name := range g.Modules {
				mods = append(mods, name)
			}
			sort.Strings(mods)
			if len(mods) > 0 {
				return fmt.Errorf("module %q not found; available modules: %v", symbol, mods)
			}
			return fmt.Errorf("module %q not found", symbol)
		}
		return printJSON(result)
	}

	results := index.QuerySymbol(g, symbol, index.QueryOptions{KindFilter: queryType})
	return printJSON(results)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialization error: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
