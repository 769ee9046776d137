package logger

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/codereport-dev/codereport/pkg/shared/config"
)

// NewLogger creates a new hclog.Logger instance based on the application
// configuration and the provided name.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	logLevel := determineLogLevel(cfg)
	logger := hclog.New(&hclog.LoggerOptions{
		Name:            name,
		DisableTime:     true,
		JSONFormat:      cfg.Logger.JSONFormat,
		IncludeLocation: cfg.Logger.IncludeLocation,
		Output:          os.Stderr,
		Level:           logLevel,
	})
	return logger
}

// determineLogLevel returns a log level determined first by an environment
// variable, and if not set, by the provided configuration. Defaults to WARN
// so normal command output stays clean.
func determineLogLevel(cfg *config.Config) hclog.Level {
	if logLevelEnv := os.Getenv("CODEREPORT_LOG_LEVEL"); logLevelEnv != "" {
		return parseLogLevel(strings.ToUpper(logLevelEnv))
	}
	return parseLogLevel(strings.ToUpper(cfg.Logger.Level))
}

// parseLogLevel converts a string level to hclog.Level.
func parseLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Warn
	}
}
