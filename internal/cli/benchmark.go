// internal/cli/benchmark.go
package datebench

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// benchmarkCmd runs every trial battery and prints the comparison report.
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Time the query battery against each date representation",
	Long: `Runs the fixed query battery against the plain and native date collections,
each query once without and once with an ascending index on the date field,
then prints a per-run listing and a cross-representation comparison.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBenchmark(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)

	benchmarkCmd.Flags().String("format", "table", "report format: table, json or yaml")
	benchmarkCmd.Flags().Int("trialTimeout", 0, "per-trial timeout in seconds (0 disables)")
	benchmarkCmd.Flags().String("metricsFile", "", "write Prometheus text metrics to this file")

	_ = viper.BindPFlag("format", benchmarkCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("trialTimeout", benchmarkCmd.Flags().Lookup("trialTimeout"))
	_ = viper.BindPFlag("metricsFile", benchmarkCmd.Flags().Lookup("metricsFile"))
}
