package sim

import "fmt"

// InvalidInputError reports a request parameter that fails validation.
// Requests carrying one are rejected before any simulation starts.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// ConfigurationError reports a (dimension, level) pair the policy catalog
// does not recognize. There is no silent fallback: callers must supply only
// catalog-recognized levels.
type ConfigurationError struct {
	Dimension string
	Level     string
}

func (e *ConfigurationError) Error() string {
	if e.Level == "" {
		return fmt.Sprintf("unknown policy dimension %q", e.Dimension)
	}
	return fmt.Sprintf("unknown level %q for policy dimension %q", e.Level, e.Dimension)
}
