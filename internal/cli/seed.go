// internal/cli/seed.go
package datebench

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// seedCmd fills both collections with generated timestamps.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the date collections with generated timestamps",
	Long: `Tops up each selected collection to the configured document count. Both
representations receive the same timestamp sequence for a given random seed,
so their contents differ only in encoding. Collections already at the target
count are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context(), cmd.OutOrStdout(), GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().Int64("count", 0, "target document count per collection")
	seedCmd.Flags().Int("batchSize", 0, "documents per insert batch")
	seedCmd.Flags().Int("workers", 0, "concurrent insert batches")
	seedCmd.Flags().Int64("seed", 0, "random seed (0 picks one from the clock)")
	seedCmd.Flags().String("from", "", "lower bound of generated timestamps (RFC 3339)")
	seedCmd.Flags().String("to", "", "upper bound of generated timestamps (RFC 3339)")

	_ = viper.BindPFlag("seedCount", seedCmd.Flags().Lookup("count"))
	_ = viper.BindPFlag("seedBatchSize", seedCmd.Flags().Lookup("batchSize"))
	_ = viper.BindPFlag("seedWorkers", seedCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("randomSeed", seedCmd.Flags().Lookup("seed"))
	_ = viper.BindPFlag("seedFrom", seedCmd.Flags().Lookup("from"))
	_ = viper.BindPFlag("seedTo", seedCmd.Flags().Lookup("to"))
}
