// internal/cli/list.go
package datebench

import (
	"github.com/spf13/cobra"
)

// listCmd groups the listing subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
}

// listCommandsCmd prints the command tree.
var listCommandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all available commands",
	Run: func(cmd *cobra.Command, args []string) {
		runListCommands(cmd.OutOrStdout(), rootCmd)
	},
}

// listTrialsCmd prints each representation's query battery.
var listTrialsCmd = &cobra.Command{
	Use:   "trials",
	Short: "List the query battery for each representation",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runListTrials(cmd.OutOrStdout(), GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listCommandsCmd)
	listCmd.AddCommand(listTrialsCmd)
}
