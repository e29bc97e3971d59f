// Package config loads CLI settings from an optional file and JOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. JOT_DATA_DIR.
const EnvPrefix = "JOT"

var envPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults expands ${VAR} and ${VAR:-default} references.
func expandEnvWithDefaults(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		m := envPattern.FindStringSubmatch(match)
		if len(m) < 2 {
			return match
		}
		if value := os.Getenv(m[1]); value != "" {
			return value
		}
		if len(m) > 2 {
			return m[2]
		}
		return ""
	})
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "")
	v.SetDefault("data.key", "notes")
	v.SetDefault("data.format", "json")
	v.SetDefault("data.ephemeral", false)
	v.SetDefault("logger.level", "info")
	v.SetDefault("events.buffer", 100)
}

// Load reads configFile (yaml, json or toml, by extension) on top of the
// defaults and applies JOT_* environment overrides. An empty configFile
// skips the file. String values in the file may reference ${VAR:-default}.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(strings.TrimLeft(filepath.Ext(configFile), "."))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
		expandValues(v)
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// expandValues replaces ${VAR:-default} references and restores scalar types.
func expandValues(v *viper.Viper) {
	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if !strings.Contains(value, "${") {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		if b, err := strconv.ParseBool(expanded); err == nil && (expanded == "true" || expanded == "false") {
			v.Set(k, b)
		} else if i, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, i)
		} else {
			v.Set(k, expanded)
		}
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Data.Format) {
	case "", "json", "yaml", "yml":
	default:
		errs = append(errs, fmt.Errorf("data.format: unsupported format %q", c.Data.Format))
	}
	if strings.ContainsAny(c.Data.Key, `/\`) {
		errs = append(errs, fmt.Errorf("data.key: %q must not contain path separators", c.Data.Key))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("logger.level: %w", err))
	}
	if c.Events.Buffer < 0 {
		errs = append(errs, fmt.Errorf("events.buffer: must not be negative, got %d", c.Events.Buffer))
	}
	return errors.Join(errs...)
}

// Level parses the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.Logger.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.Logger.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
