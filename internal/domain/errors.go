package domain

import (
	"errors"
	"fmt"
)

// ConfigError marks an invalid configuration. Fatal; the CLI maps it to
// exit code 2.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "invalid configuration: " + e.Reason }

// NewConfigError builds a ConfigError with a formatted reason.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// RegressionError signals that the last recorded snapshot outscored the
// current run.
type RegressionError struct {
	Previous int
	Current  int
}

func (e *RegressionError) Error() string {
	return fmt.Sprintf("score regression: previous %d, current %d", e.Previous, e.Current)
}

// CheckFailedError signals that the check variant found failing violations,
// a min_score miss, or a regression. The CLI maps it to exit code 1.
type CheckFailedError struct {
	Reason string
}

func (e *CheckFailedError) Error() string { return "check failed: " + e.Reason }

// IsCheckFailed reports whether err is (or wraps) a check failure.
func IsCheckFailed(err error) bool {
	var cf *CheckFailedError
	return errors.As(err, &cf)
}
