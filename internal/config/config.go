// Package config loads ottotimer settings from defaults, an optional YAML
// file, a .env file and OTTOTIMER_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/ottotimer/internal/domain"
	"github.com/hammamikhairi/ottotimer/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. OTTOTIMER_LOG_LEVEL.
const EnvPrefix = "OTTOTIMER"

// EnvConfigFile names the env var that points at a config file when no
// path is passed explicitly.
const EnvConfigFile = EnvPrefix + "_CONFIG"

const (
	keyDefaultSeconds = "timer.default_seconds"
	keyLogLevel       = "log.level"
	keyLogFile        = "log.file"
	keyAltScreen      = "ui.alt_screen"
)

// DefaultLogFile keeps log output away from the terminal the UI draws on.
const DefaultLogFile = ".ottotimer-logs/ottotimer.log"

// Config holds resolved settings.
type Config struct {
	DefaultSeconds int
	LogLevel       logger.Level
	LogFile        string // "stderr" logs to the console
	AltScreen      bool
}

// Load resolves settings. path may be empty; then EnvConfigFile is
// consulted, and if that is unset too only defaults and env vars apply.
// A missing .env file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault(keyDefaultSeconds, domain.DefaultSeconds)
	v.SetDefault(keyLogLevel, logger.LevelNormal.String())
	v.SetDefault(keyLogFile, DefaultLogFile)
	v.SetDefault(keyAltScreen, true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	level, err := logger.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", keyLogLevel, err)
	}

	cfg := &Config{
		DefaultSeconds: v.GetInt(keyDefaultSeconds),
		LogLevel:       level,
		LogFile:        v.GetString(keyLogFile),
		AltScreen:      v.GetBool(keyAltScreen),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.DefaultSeconds <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, keyDefaultSeconds, c.DefaultSeconds)
	}
	return nil
}
