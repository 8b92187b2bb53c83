package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "sync.interval_seconds")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidateEndpointURL checks that a URL is usable as a remote endpoint.
// An empty URL is allowed in the config (it means "not set up yet"); the
// setup flow rejects it separately.
func ValidateEndpointURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateEndpoint()...)
	errors = append(errors, c.validateSync()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateEndpoint validates the EndpointConfig
func (c *Config) validateEndpoint() []ValidationError {
	var errors []ValidationError

	if c.Endpoint.URL != "" {
		if err := ValidateEndpointURL(c.Endpoint.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "endpoint.url",
				Value:   c.Endpoint.URL,
				Message: err.Error(),
			})
		}
	}

	if c.Endpoint.TimeoutSeconds <= 0 {
		errors = append(errors, ValidationError{
			Field:   "endpoint.timeout_seconds",
			Value:   c.Endpoint.TimeoutSeconds,
			Message: "must be positive",
		})
	}

	return errors
}

// validateSync validates the SyncConfig
func (c *Config) validateSync() []ValidationError {
	var errors []ValidationError

	if c.Sync.IntervalSeconds < 2 {
		errors = append(errors, ValidationError{
			Field:   "sync.interval_seconds",
			Value:   c.Sync.IntervalSeconds,
			Message: "must be at least 2 to avoid hammering the endpoint",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.PageSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "tui.page_size",
			Value:   c.TUI.PageSize,
			Message: "must be at least 1",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 1 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be at least 1",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
