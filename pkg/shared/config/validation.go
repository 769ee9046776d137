package config

import (
	"fmt"
	"strings"
)

var validLogLevels = []string{"", "trace", "debug", "info", "warn", "error"}

// ValidateConfig checks if the application configuration has valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML app config: configuration object is nil")
	}
	if err := validateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML app config: logger directive is invalid: %w", err)
	}
	if err := validateDashboardConfig(&cfg.Dashboard); err != nil {
		return fmt.Errorf("YAML app config: dashboard directive is invalid: %w", err)
	}
	return nil
}

func validateLoggerConfig(loggerConfig *Logger) error {
	if loggerConfig == nil {
		return fmt.Errorf("logger configuration is nil")
	}
	level := strings.ToLower(loggerConfig.Level)
	for _, v := range validLogLevels {
		if level == v {
			return nil
		}
	}
	return fmt.Errorf("unknown log level %q", loggerConfig.Level)
}

func validateDashboardConfig(dashboardConfig *Dashboard) error {
	if dashboardConfig == nil {
		return fmt.Errorf("dashboard configuration is nil")
	}
	if dashboardConfig.ExpiringSoonDays < 0 {
		return fmt.Errorf("expiring_soon_days cannot be negative: %d", dashboardConfig.ExpiringSoonDays)
	}
	return nil
}
