package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/spf13/viper"
)

// bindEnv binds every leaf key of cfg's mapstructure tree to its variable.
func bindEnv(v *viper.Viper, cfg any, prefix string) error {
	t := reflect.TypeOf(cfg)
	if t == nil || t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config: expected pointer to struct, got %T", cfg)
	}
	for _, key := range leafKeys(t.Elem(), "") {
		if err := v.BindEnv(key, EnvName(prefix, key)); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}
	return nil
}

func leafKeys(t reflect.Type, parent string) []string {
	var keys []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && (opts == "squash" || f.Anonymous) && name == "" {
			keys = append(keys, leafKeys(ft, parent)...)
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		key := name
		if parent != "" {
			key = parent + "." + name
		}

		switch ft.Kind() {
		case reflect.Struct:
			keys = append(keys, leafKeys(ft, key)...)
		case reflect.Map, reflect.Func, reflect.Chan:
		default:
			keys = append(keys, key)
		}
	}
	return keys
}
