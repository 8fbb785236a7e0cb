// Package config resolves runtime settings for the sleeplog CLI.
//
// Sources, lowest to highest precedence:
//
//  1. built-in defaults
//  2. ~/.sleeplog/config.yaml (or the file given by --config)
//  3. SLEEPLOG_* environment variables (SLEEPLOG_DB_PATH, SLEEPLOG_LOG_LEVEL, SLEEPLOG_TIMEZONE)
//  4. command-line flags bound with BindFlags
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const (
	KeyDBPath   = "db_path"
	KeyLogLevel = "log_level"
	KeyTimezone = "timezone"
)

// Config holds resolved runtime settings
type Config struct {
	DBPath   string
	LogLevel string
	Timezone string
	Location *time.Location
}

// Dir returns the sleeplog home directory (~/.sleeplog)
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sleeplog"), nil
}

// NewViper returns a viper instance with defaults, env binding and the config file
// search path set up. configFile overrides the search path when non-empty.
func NewViper(configFile string) (*viper.Viper, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyDBPath, filepath.Join(dir, "sleeplog.db"))
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyTimezone, "Local")

	v.SetEnvPrefix("SLEEPLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing default file is fine; a missing explicit file is not
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return v, nil
}

// BindFlags maps CLI flags onto config keys. Unset flags don't override.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		KeyDBPath:   "db",
		KeyLogLevel: "log-level",
		KeyTimezone: "tz",
	}
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads the resolved values out of v and validates them
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DBPath:   v.GetString(KeyDBPath),
		LogLevel: strings.ToLower(v.GetString(KeyLogLevel)),
		Timezone: v.GetString(KeyTimezone),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values and resolves the timezone
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db_path must not be empty")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level must be one of debug, info, warn, error: %w", err)
	}

	switch c.Timezone {
	case "", "Local":
		c.Location = time.Local
	default:
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
		}
		c.Location = loc
	}
	return nil
}
