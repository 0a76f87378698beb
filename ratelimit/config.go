package ratelimit

import (
	"time"

	"github.com/kbukum/chatkit/validation"
)

const defaultGlobalRate = 50

// Config configures a Tracker.
type Config struct {
	// Name identifies the tracker in logs.
	Name string `yaml:"name" mapstructure:"name"`
	// GlobalRate is the request budget per second across all routes.
	// Defaults to 50.
	GlobalRate float64 `yaml:"global_rate" mapstructure:"global_rate" validate:"gte=0"`
	// GlobalBurst defaults to GlobalRate.
	GlobalBurst int `yaml:"global_burst" mapstructure:"global_burst" validate:"gte=0"`
	// OnLimit is called whenever Pace delays a request.
	OnLimit func(route Route, wait time.Duration) `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "ratelimit"
	}
	if c.GlobalRate <= 0 {
		c.GlobalRate = defaultGlobalRate
	}
	if c.GlobalBurst <= 0 {
		c.GlobalBurst = max(int(c.GlobalRate), 1)
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	return validation.Validate(c)
}
