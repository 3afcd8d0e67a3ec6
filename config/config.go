// Package config loads runtime settings from .env, an optional config file and
// TASKWEAVER_* environment variables, and builds the application logger.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"taskweaver/storage"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "TASKWEAVER"

// Config holds all settings
type Config struct {
	Backend  string `mapstructure:"backend"`
	DataPath string `mapstructure:"data_path"`

	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`

	// Timezone is an IANA name; empty means the system zone
	Timezone string `mapstructure:"timezone"`

	LogLevel    string `mapstructure:"log_level"`
	LogFile     string `mapstructure:"log_file"`
	HistoryFile string `mapstructure:"history_file"`
}

// DefaultDir is where data, logs and history live unless configured otherwise
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskweaver"
	}
	return filepath.Join(home, ".taskweaver")
}

func setDefaults(v *viper.Viper) {
	dir := DefaultDir()
	v.SetDefault("backend", storage.BackendJSON)
	v.SetDefault("data_path", "")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", storage.DefaultRedisPrefix)
	v.SetDefault("timezone", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(dir, "logs", "taskweaver.log"))
	v.SetDefault("history_file", filepath.Join(dir, "history"))
}

// Load reads configuration. A .env file in the working directory is loaded
// into the environment first (existing variables win). configFile may be
// empty; when set it must exist.
func Load(configFile string) (*Config, error) {
	return LoadWithFlags(configFile, nil)
}

// LoadWithFlags is Load with command line flags taking precedence over every
// other source. Flags are matched to keys by name with dashes as underscores
// (--data-path sets data_path); flags left at their default are ignored.
func LoadWithFlags(configFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if isKnownKey(key) {
				if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
					bindErr = err
				}
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.DataPath == "" {
		cfg.DataPath = cfg.defaultDataPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isKnownKey(key string) bool {
	switch key {
	case "backend", "data_path", "redis_addr", "redis_password", "redis_db",
		"redis_prefix", "timezone", "log_level", "log_file", "history_file":
		return true
	}
	return false
}

func (c *Config) defaultDataPath() string {
	switch strings.ToLower(c.Backend) {
	case storage.BackendSQLite:
		return filepath.Join(DefaultDir(), "tasks.db")
	default:
		return filepath.Join(DefaultDir(), "tasks.json")
	}
}

// Validate checks backend, level and timezone values
func (c *Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case storage.BackendJSON, storage.BackendSQLite, storage.BackendRedis:
	default:
		return fmt.Errorf("invalid backend %q: must be json, sqlite or redis", c.Backend)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// StorageOptions maps the config onto storage.Open options
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:       c.Backend,
		Path:          c.DataPath,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	}
}
