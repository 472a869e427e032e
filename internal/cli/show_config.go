// internal/cli/show_config.go
package datebench

import (
	"github.com/mwiater/datebench/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd prints the effective configuration.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the current configuration",
	Run: func(cmd *cobra.Command, args []string) {
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
