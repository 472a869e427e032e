// internal/cli/list_entry.go
package datebench

import (
	"fmt"
	"io"
	"strings"

	"github.com/mwiater/datebench/internal/appconfig"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"
)

// runListCommands prints the command tree in a two-column layout.
func runListCommands(out io.Writer, root *cobra.Command) {
	commandData := collectCommandData(root, "", "")
	printColumns(out, "Commands and Subcommands:", commandData)
}

// runListTrials prints every selected battery with its filters.
func runListTrials(out io.Writer, cfg *appconfig.Config) error {
	var only []string
	if cfg != nil {
		only = cfg.Only
	}
	schemas, err := selectSchemas(only)
	if err != nil {
		return err
	}

	for i, s := range schemas {
		if i > 0 {
			fmt.Fprintln(out)
		}
		var rows []commandInfo
		for _, trial := range s.Battery() {
			filter, err := bson.MarshalExtJSON(trial.Predicate, false, false)
			if err != nil {
				return fmt.Errorf("render %s filter: %w", trial.ID, err)
			}
			path := trial.ID
			if trial.UseIndex {
				path += " (indexed)"
			}
			rows = append(rows, commandInfo{path: path, description: string(filter)})
		}
		printColumns(out, fmt.Sprintf("%s (%s):", s.Representation.Label, s.Collection), rows)
	}
	return nil
}

func printColumns(out io.Writer, title string, rows []commandInfo) {
	maxPathLength := 0
	for _, data := range rows {
		if len(data.path) > maxPathLength {
			maxPathLength = len(data.path)
		}
	}

	fmt.Fprintln(out, title)
	for _, data := range rows {
		fmt.Fprintf(out, "  %s%s%s\n", data.path, strings.Repeat(" ", maxPathLength-len(data.path)+2), data.description)
	}
}

// commandInfo holds a path and description for two-column display.
type commandInfo struct {
	path        string
	description string
}

// collectCommandData walks the command tree and returns a flattened slice of
// path/description pairs, skipping shell completion.
func collectCommandData(cmd *cobra.Command, currentPath string, indent string) []commandInfo {
	if cmd.Name() == "completion" {
		return nil
	}

	fullPath := cmd.Name()
	if currentPath != "" {
		fullPath = currentPath + " " + cmd.Name()
	}

	allData := []commandInfo{{path: indent + fullPath, description: cmd.Short}}
	for _, subCmd := range cmd.Commands() {
		allData = append(allData, collectCommandData(subCmd, fullPath, indent+"  ")...)
	}
	return allData
}
