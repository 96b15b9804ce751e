package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration after defaults have been applied. Every
// failure wraps ErrInvalid; all failures are reported together.
func (c *Config) Validate() error {
	var errs []error
	if c.Root == "" {
		errs = append(errs, errors.New("root must not be empty"))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must be positive, got %d", c.Concurrency))
	}
	if _, err := c.OutputFormat(); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Watch.Interval < 0 {
		errs = append(errs, fmt.Errorf("watch.interval must be positive, got %s", c.Watch.Interval))
	}
	if c.Watch.ResyncInterval < 0 {
		errs = append(errs, fmt.Errorf("watch.resync_interval must not be negative, got %s", c.Watch.ResyncInterval))
	}
	for i, r := range c.Redact.Rules {
		if r.Match == "" {
			errs = append(errs, fmt.Errorf("redact.rules[%d].match must not be empty", i))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
