package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		defaults := Defaults()
		cfg = &defaults
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  URI:             %s\n", cfg.MongoURI())
	fmt.Fprintf(out, "  Database:        %s\n", cfg.DatabaseName())
	fmt.Fprintf(out, "  Format:          %s\n", cfg.Format)
	fmt.Fprintf(out, "  Trial Timeout:   %s\n", cfg.TrialTimeoutDuration())
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	if cfg.MetricsFile != "" {
		fmt.Fprintf(out, "  Metrics File:    %s\n", cfg.MetricsFile)
	}
	if len(cfg.Only) > 0 {
		fmt.Fprintf(out, "  Only:            %v\n", cfg.Only)
	}
	fmt.Fprintf(out, "  Seed Count:      %d\n", cfg.SeedCount)
	fmt.Fprintf(out, "  Seed Batch Size: %d\n", cfg.SeedBatchSize)
	fmt.Fprintf(out, "  Seed Workers:    %d\n", cfg.SeedWorkers)
	fmt.Fprintf(out, "  Seed Range:      %s .. %s\n", cfg.SeedFrom, cfg.SeedTo)
}
