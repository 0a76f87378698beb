package useragent

import (
	"time"

	"github.com/kbukum/chatkit/validation"
)

const (
	defaultName             = "useragent"
	defaultTimeout          = 30 * time.Second
	defaultMaxResponseBytes = 32 << 20
)

// Config configures a UserAgent.
type Config struct {
	// Name tags logs, spans and metrics. Defaults to "useragent".
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to every rendered endpoint.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// Timeout bounds a whole exchange. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// Headers are added to the header set after the defaults, sorted by field.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Token, when set and Auth is nil, authenticates as a bot.
	Token string `yaml:"token" mapstructure:"token"`

	// Auth overrides Token.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Proxy is an http, https, socks5 or socks5h URL.
	Proxy string `yaml:"proxy" mapstructure:"proxy" validate:"omitempty,url"`

	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// MaxResponseBytes caps the response body. Defaults to 32 MiB.
	MaxResponseBytes int64 `yaml:"max_response_bytes" mapstructure:"max_response_bytes" validate:"gte=0"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = defaultMaxResponseBytes
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.TLS.Validate()
}

func (c *Config) auth() *AuthConfig {
	if c.Auth != nil {
		return c.Auth
	}
	if c.Token != "" {
		return BotAuth(c.Token)
	}
	return nil
}

// clone copies c, deep-copying the header map.
func (c Config) clone() Config {
	if c.Headers != nil {
		h := make(map[string]string, len(c.Headers))
		for k, v := range c.Headers {
			h[k] = v
		}
		c.Headers = h
	}
	return c
}
