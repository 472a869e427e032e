// internal/logging/logging.go
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to stderr and, when logPath is set, to an
// append-only log file.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, os.Stderr)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close detaches the log file and restores stderr output.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogTrial writes one line describing a trial outcome.
func LogTrial(representation, trial string, indexed bool, durationMs float64, detail any) {
	msg := buildTrialMessage(representation, trial, indexed, durationMs, detail)
	log.Println(msg)
}

func buildTrialMessage(representation, trial string, indexed bool, durationMs float64, detail any) string {
	repValue := strings.TrimSpace(representation)
	if repValue == "" {
		repValue = "unknown"
	}
	trialValue := strings.TrimSpace(trial)
	if trialValue == "" {
		trialValue = "unknown"
	}
	parts := []string{"[TRIAL]"}
	parts = append(parts, fmt.Sprintf("representation=%q", repValue))
	parts = append(parts, fmt.Sprintf("trial=%q", trialValue))
	parts = append(parts, fmt.Sprintf("indexed=%t", indexed))
	parts = append(parts, fmt.Sprintf("duration_ms=%s", strconv.FormatFloat(durationMs, 'f', -1, 64)))
	if detail != nil {
		parts = append(parts, fmt.Sprintf("detail=%s", formatDetail(detail)))
	}
	return strings.Join(parts, " ")
}

func formatDetail(detail any) string {
	switch v := detail.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
