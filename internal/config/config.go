// Package config loads daemon configuration with CLI > env > TOML
// precedence and builds device pipelines from TOML descriptions.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix namespaces environment variable overrides.
const EnvPrefix = "DAI_"

// LoadConfig fills opts from its TOML file and environment overrides. CLI
// flag values already present in opts win because humacli applies them
// after this runs on defaults; fields are only overwritten when the source
// actually has a value.
func LoadConfig(opts any) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	var configPath string
	for i := 0; i < v.NumField(); i++ {
		if t.Field(i).Name == "Config" {
			configPath = v.Field(i).String()
			break
		}
	}

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			var file map[string]any
			if err := toml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parse TOML config: %w", err)
			}
			for i := 0; i < v.NumField(); i++ {
				if path := t.Field(i).Tag.Get("toml"); path != "" {
					if value := nestedValue(file, path); value != nil {
						setFieldValue(v.Field(i), value)
					}
				}
			}
		}
	}

	for i := 0; i < v.NumField(); i++ {
		if envKey := t.Field(i).Tag.Get("env"); envKey != "" {
			if envValue := os.Getenv(EnvPrefix + envKey); envValue != "" {
				setFieldFromString(v.Field(i), envValue)
			}
		}
	}
	return nil
}

// nestedValue retrieves a value from a nested map using dot notation.
func nestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data
	for i, part := range parts {
		if i == len(parts)-1 {
			return current[part]
		}
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

func setFieldValue(field reflect.Value, value any) {
	if !field.CanSet() {
		return
	}
	switch field.Kind() {
	case reflect.String:
		if s, ok := value.(string); ok {
			field.SetString(s)
		}
	case reflect.Bool:
		if b, ok := value.(bool); ok {
			field.SetBool(b)
		}
	case reflect.Int:
		switch i := value.(type) {
		case int64:
			field.SetInt(i)
		case int:
			field.SetInt(int64(i))
		}
	case reflect.Float64:
		switch f := value.(type) {
		case float64:
			field.SetFloat(f)
		case int64:
			field.SetFloat(float64(f))
		}
	}
}

func setFieldFromString(field reflect.Value, value string) {
	if !field.CanSet() {
		return
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		if b, err := strconv.ParseBool(value); err == nil {
			field.SetBool(b)
		}
	case reflect.Int:
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			field.SetInt(i)
		}
	case reflect.Float64:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			field.SetFloat(f)
		}
	}
}
