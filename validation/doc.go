// Package validation validates configuration structs through
// go-playground/validator struct tags.
//
// Field names in error messages follow the mapstructure tag of the field, so
// a failure reads the same way the key is spelled in config.yml:
//
//	type Config struct {
//	    BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
//	}
//
//	if err := validation.Validate(cfg); err != nil {
//	    // "validation failed: base_url: must be a valid URL"
//	}
package validation
