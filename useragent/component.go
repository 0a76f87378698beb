package useragent

import (
	"context"
	"fmt"

	"github.com/kbukum/chatkit/component"
)

// Component wraps a UserAgent with lifecycle management. The user agent is
// created in Start.
type Component struct {
	ua     *UserAgent
	config Config
	opts   []Option
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a user agent component.
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	if c.config.Name == "" {
		return defaultName
	}
	return c.config.Name
}

// Start builds the user agent.
func (c *Component) Start(_ context.Context) error {
	ua, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.ua = ua
	return nil
}

// Stop closes the user agent.
func (c *Component) Stop(_ context.Context) error {
	if c.ua == nil {
		return nil
	}
	err := c.ua.Close()
	c.ua = nil
	return err
}

// Health reports healthy once started.
func (c *Component) Health(_ context.Context) component.Health {
	if c.ua == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the base URL and timeout.
func (c *Component) Describe() component.Description {
	cfg := c.config
	cfg.ApplyDefaults()
	return component.Description{
		Name:    c.Name(),
		Type:    "useragent",
		Details: fmt.Sprintf("%s timeout=%s", cfg.BaseURL, cfg.Timeout),
	}
}

// UserAgent returns the managed user agent. Nil before Start.
func (c *Component) UserAgent() *UserAgent {
	return c.ua
}
