package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	friendlyerrors "github.com/jxwalker/hashcheck/internal/errors"
)

// ValidationError represents a detailed config validation error
type ValidationError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Config validation error in '%s': %s", e.Field, e.Message)
}

// ValidateDetailed performs comprehensive validation with friendly error messages
func (c *Config) ValidateDetailed() []ValidationError {
	var errs []ValidationError

	if c.Version != 1 {
		errs = append(errs, ValidationError{
			Field:      "version",
			Value:      c.Version,
			Message:    fmt.Sprintf("Unsupported version: %d", c.Version),
			Suggestion: "Use version: 1",
		})
	}

	lvl := strings.ToLower(c.Logging.Level)
	switch lvl {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:      "logging.level",
			Value:      c.Logging.Level,
			Message:    "Invalid log level",
			Suggestion: "Use one of: debug, info, warn, error",
		})
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "human", "json":
	default:
		errs = append(errs, ValidationError{
			Field:      "logging.format",
			Value:      c.Logging.Format,
			Message:    "Invalid log format",
			Suggestion: "Use one of: human, json",
		})
	}

	if c.Logging.File != "" {
		if fi, err := os.Stat(filepath.Dir(c.Logging.File)); err != nil || !fi.IsDir() {
			errs = append(errs, ValidationError{
				Field:      "logging.file",
				Value:      c.Logging.File,
				Message:    "Parent directory does not exist",
				Suggestion: fmt.Sprintf("Create it:\n  mkdir -p %s", filepath.Dir(c.Logging.File)),
			})
		}
	}

	if c.Metrics.PrometheusTextfile.Enabled && c.Metrics.PrometheusTextfile.Path == "" {
		errs = append(errs, ValidationError{
			Field:      "metrics.prometheus_textfile.path",
			Message:    "Required when the textfile exporter is enabled",
			Suggestion: "Point it at the node_exporter textfile directory:\n  path: /var/lib/node_exporter/textfile/hashcheck.prom",
		})
	}

	if c.UI.StartDir != "" {
		if fi, err := os.Stat(c.UI.StartDir); err != nil || !fi.IsDir() {
			errs = append(errs, ValidationError{
				Field:      "ui.start_dir",
				Value:      c.UI.StartDir,
				Message:    "Not an existing directory",
				Suggestion: "Remove the setting to start in the working directory",
			})
		}
	}

	return errs
}

// ValidateWithFriendlyErrors returns a user-friendly validation error
func (c *Config) ValidateWithFriendlyErrors() error {
	if err := c.Validate(); err != nil {
		return friendlyerrors.ConfigError("config", err.Error()).WithDetails(err)
	}

	errs := c.ValidateDetailed()
	if len(errs) == 0 {
		return nil
	}

	var msg strings.Builder
	msg.WriteString("Configuration validation failed:\n\n")

	for i, err := range errs {
		msg.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
		if err.Value != nil {
			msg.WriteString(fmt.Sprintf("   Current value: %v\n", err.Value))
		}
		if err.Suggestion != "" {
			for _, line := range strings.Split(err.Suggestion, "\n") {
				msg.WriteString(fmt.Sprintf("   → %s\n", line))
			}
		}
		msg.WriteString("\n")
	}

	return friendlyerrors.NewFriendlyError(
		"Config validation failed",
		msg.String(),
	).WithDocs("https://github.com/jxwalker/hashcheck#configuration")
}
