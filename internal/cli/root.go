// internal/cli/root.go
package datebench

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/k0kubun/pp"
	"github.com/mattn/go-isatty"
	"github.com/mwiater/datebench/internal/appconfig"
	"github.com/mwiater/datebench/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datebench",
	Short: "datebench compares string-encoded and native date schemas in MongoDB",
	Long: `datebench seeds two MongoDB collections with the same synthetic timestamps,
one storing them as ISO strings and one as BSON dates, then times a fixed
battery of prefix and range queries against each, with and without an index.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		if !cmd.Flags().Changed("debug") {
			_ = cmd.Flags().Set("debug", strconv.FormatBool(viper.GetBool("debug")))
		}
		for _, name := range []string{"uri", "database", "logFile"} {
			if !cmd.Flags().Changed(name) && viper.GetString(name) != "" {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		pp.ColoringEnabled = isTerminal(os.Stdout)

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := appconfig.Defaults()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("uri", defaults.URI, "MongoDB connection string")
	rootCmd.PersistentFlags().String("database", defaults.Database, "database holding the benchmark collections")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().StringSlice("only", nil, "representations to include (plain, native)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("uri", rootCmd.PersistentFlags().Lookup("uri"))
	_ = viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("only", rootCmd.PersistentFlags().Lookup("only"))
}

// initConfig loads .env, environment overrides and the config file path.
func initConfig() {
	_ = godotenv.Load()
	viper.SetEnvPrefix("DATEBENCH")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults. A missing file
// at the default path is not an error.
func ensureConfigLoaded() error {
	defaults := appconfig.Defaults()
	viper.SetDefault("debug", false)
	viper.SetDefault("uri", defaults.URI)
	viper.SetDefault("database", defaults.Database)
	viper.SetDefault("format", defaults.Format)
	viper.SetDefault("seedCount", defaults.SeedCount)
	viper.SetDefault("seedBatchSize", defaults.SeedBatchSize)
	viper.SetDefault("seedWorkers", defaults.SeedWorkers)
	viper.SetDefault("seedFrom", defaults.SeedFrom)
	viper.SetDefault("seedTo", defaults.SeedTo)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) && cfgFile == appconfig.DefaultConfigPath {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
