package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killvxk/codemap/services/codemap/graph"
)

var statusCmd = &cobra.Command{
	Use:   "status [dir]",
	Short: "Show the status of the code graph for a project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := resolveRoot(dir)
	if err != nil {
		return err
	}

	status, err := graph.LoadStatus(outputDirFor(root))
	if err != nil {
		return fmt.Errorf("no code graph found; run 'codemap scan' first: %w", err)
	}

	commit := "(none)"
	if status.CommitHash != nil {
		commit = *status.CommitHash
	}

	fmt.Printf("Project: %s\n", status.Project.Name)
	fmt.Printf("Scanned at: %s\n", status.ScannedAt)
	fmt.Printf("Commit: %s\n", commit)
	fmt.Printf("Files: %d\n", status.Summary.TotalFiles)
	fmt.Printf("Functions: %d\n", status.Summary.TotalFunctions)
	fmt.Printf("Classes: %d\n", status.Summary.TotalClasses)
	fmt.Printf("Modules: %s\n", strings.Join(status.Summary.Modules, ", "))

	if len(status.Summary.Languages) > 0 {
		var names []string
		for lang := range status.Summary.Languages {
			names = append(names, lang)
		}
		sort.Strings(names)
		var parts []string
		for _, lang := range names {
			parts = append(parts, fmt.Sprintf("%s(%d)", lang, status.Summary.Languages[lang]))
		}
		fmt.Printf("Languages: %s\n", strings.Join(parts, ", "))
	}

	if status.LastUpdate != "" {
		fmt.Printf("Last update: %s\n", status.LastUpdate)
	}
	fmt.Printf("Tracked files: %d\n", status.TrackedFiles)
	return nil
}
