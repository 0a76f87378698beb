// Package config loads chatkit service configuration with Viper.
//
// LoadConfig reads config.yml, then a .env file through godotenv, then the
// process environment. Every key reachable through mapstructure tags can be
// overridden by an upper-cased, underscore-joined variable:
//
//	useragent.base_url   ->  USERAGENT_BASE_URL
//	ratelimit.global_rate ->  RATELIMIT_GLOBAL_RATE
//
// # Usage
//
//	var cfg config.ServiceConfig
//	if err := config.LoadConfig("chat-bot", &cfg); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// Viper lower-cases map keys, so header names under useragent.headers
// arrive lower-cased; HTTP field names are case-insensitive.
package config
