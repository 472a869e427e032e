package datebench

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/datebench/internal/logging"
	"github.com/spf13/viper"
)

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func useConfigFile(t *testing.T, path string) {
	t.Helper()
	prevCfgFile := cfgFile
	cfgFile = path
	viper.SetConfigFile(path)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
	})
	t.Cleanup(func() { _ = logging.Close() })
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "datebench.log")
	configPath := writeTempConfig(t, "{}")
	useConfigFile(t, configPath)

	for _, name := range []string{"debug", "uri", "database", "logFile"} {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("debug", "true")
	_ = rootCmd.PersistentFlags().Set("uri", "mongodb://db.example:27017")
	_ = rootCmd.PersistentFlags().Set("database", "bench")
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s", configPath)
	}
	if !currentConfig.Debug {
		t.Fatalf("expected debug flag to flow into config: %+v", currentConfig)
	}
	if currentConfig.URI != "mongodb://db.example:27017" || currentConfig.Database != "bench" {
		t.Fatalf("expected connection flags in config, got %s/%s", currentConfig.URI, currentConfig.Database)
	}
	if currentConfig.LogFilePath() != logPath {
		t.Fatalf("expected log file %s, got %s", logPath, currentConfig.LogFilePath())
	}
}

func TestPersistentPreRunEReadsConfigFile(t *testing.T) {
	configPath := writeTempConfig(t, `{"database":"from-file","seedCount":42}`)
	useConfigFile(t, configPath)

	for _, name := range []string{"debug", "uri", "database", "logFile"} {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("logFile", filepath.Join(t.TempDir(), "datebench.log"))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}
	if currentConfig.Database != "from-file" {
		t.Fatalf("expected database from file, got %s", currentConfig.Database)
	}
	if currentConfig.SeedCount != 42 {
		t.Fatalf("expected seedCount 42, got %d", currentConfig.SeedCount)
	}
}

func TestPersistentPreRunEInvalidConfig(t *testing.T) {
	configPath := writeTempConfig(t, `{"trialTimeout":-5}`)
	useConfigFile(t, configPath)

	for _, name := range []string{"debug", "uri", "database", "logFile"} {
		resetFlag(name)
	}

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected error for negative trial timeout")
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	configPath := writeTempConfig(t, "{}")
	useConfigFile(t, configPath)

	for _, name := range []string{"debug", "uri", "database", "logFile"} {
		resetFlag(name)
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs([]string{"--debug", "--logFile", filepath.Join(t.TempDir(), "datebench.log"), "show", "config"})
	t.Cleanup(func() {
		rootCmd.SetArgs([]string{})
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	_, err := rootCmd.ExecuteC()
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Debug:           true") {
		t.Fatalf("expected debug in output, got %s", out)
	}
}
