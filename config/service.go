package config

import (
	"fmt"

	"github.com/kbukum/chatkit/logger"
	"github.com/kbukum/chatkit/ratelimit"
	"github.com/kbukum/chatkit/useragent"
	"github.com/kbukum/chatkit/validation"
)

// ServiceConfig is the configuration of a service talking to the chat API.
// Projects extend it by embedding:
//
//	type BotConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Prefix string        `yaml:"prefix" mapstructure:"prefix"`
//	}
type ServiceConfig struct {
	Name        string           `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string           `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Logging     logger.Config    `yaml:"logging" mapstructure:"logging"`
	UserAgent   useragent.Config `yaml:"useragent" mapstructure:"useragent"`
	RateLimit   ratelimit.Config `yaml:"ratelimit" mapstructure:"ratelimit"`
}

// GetServiceConfig returns the base ServiceConfig. It is promoted to
// embedding structs.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults applies default values to every section.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	if c.UserAgent.Name == "" && c.Name != "" {
		c.UserAgent.Name = c.Name
	}
	c.UserAgent.ApplyDefaults()
	c.RateLimit.ApplyDefaults()
}

// Validate validates every section.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.UserAgent.Validate(); err != nil {
		return fmt.Errorf("config.useragent: %w", err)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("config.ratelimit: %w", err)
	}
	return nil
}
