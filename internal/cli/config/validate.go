package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leapsolve/pkg/units"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("output must be one of %s, got %q", strings.Join(OutputFormats, "|"), c.OutputFormat)
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("max_input_bytes must be positive, got %d", c.MaxInputBytes)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path is required when history is enabled")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ReadHeaderTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	if _, err := c.UnitTable(); err != nil {
		return err
	}
	return nil
}

// UnitTable returns the built-in unit table extended with units.aliases.
func (c *Config) UnitTable() (*units.Table, error) {
	t, err := units.Default().WithAliases(c.Units.Aliases)
	if err != nil {
		return nil, fmt.Errorf("invalid units.aliases: %w", err)
	}
	return t, nil
}
