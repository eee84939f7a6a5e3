// Package config loads the API server configuration from built-in defaults,
// an optional YAML file and the process environment, in that order of
// precedence (environment wins).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config files searched when CONFIG_PATH is not
// set. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tharaday/config.yaml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// Config holds every value the server reads at startup.
type Config struct {
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Env     string        `koanf:"env" validate:"oneof=development staging production"`
	Server  ServerConfig  `koanf:"server"`
	DB      DBConfig      `koanf:"db"`
	CORS    CORSConfig    `koanf:"cors"`
	Limiter LimiterConfig `koanf:"limiter"`
	Log     LogConfig     `koanf:"log"`
}

// ServerConfig holds the http.Server timeouts and the grace period given to
// in-flight requests on shutdown.
type ServerConfig struct {
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// DBConfig configures the PostgreSQL pool. An empty DSN is valid: the server
// still starts and reports the missing database per request.
type DBConfig struct {
	DSN          string        `koanf:"dsn"`
	MaxOpenConns int           `koanf:"max_open_conns" validate:"min=0"`
	MaxIdleConns int           `koanf:"max_idle_conns" validate:"min=0"`
	MaxIdleTime  time.Duration `koanf:"max_idle_time" validate:"min=0"`
}

// CORSConfig lists the origins reflected in Access-Control-Allow-Origin.
// An empty list means "*".
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// LimiterConfig configures the per-IP token bucket. It is off by default:
// behind a reverse proxy every client shares one remote address.
type LimiterConfig struct {
	RPS     float64 `koanf:"rps" validate:"gt=0"`
	Burst   int     `koanf:"burst" validate:"min=1"`
	Enabled bool    `koanf:"enabled"`
}

// LogConfig selects the slog handler and level.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// SlogLevel maps the configured level name to a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func defaultConfig() *Config {
	return &Config{
		Port: 4000,
		Env:  "development",
		Server: ServerConfig{
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     time.Minute,
			ShutdownTimeout: 20 * time.Second,
		},
		DB: DBConfig{
			DSN:          "",
			MaxOpenConns: 25,
			MaxIdleConns: 25,
			MaxIdleTime:  15 * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{},
		},
		Limiter: LimiterConfig{
			RPS:     50,
			Burst:   100,
			Enabled: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a Config from defaults, the optional config file and the
// environment, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field ranges and enumerations. Call it again after
// command-line flags have been applied.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when they arrive
// from the environment.
var sliceConfigPaths = []string{
	"cors.allowed_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		if err := k.Set(path, SplitList(strVal)); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// SplitList splits a comma-separated list, trimming blanks and dropping empty
// entries.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var envMappings = map[string]string{
	"port":    "port",
	"app_env": "env",

	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_idle_timeout":     "server.idle_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",

	"database_url":      "db.dsn",
	"db_max_open_conns": "db.max_open_conns",
	"db_max_idle_conns": "db.max_idle_conns",
	"db_max_idle_time":  "db.max_idle_time",

	"allowed_origins": "cors.allowed_origins",

	"limiter_rps":     "limiter.rps",
	"limiter_burst":   "limiter.burst",
	"limiter_enabled": "limiter.enabled",

	"log_level":  "log.level",
	"log_format": "log.format",
}

// envTransformFunc maps known environment variables to config paths and
// drops everything else.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
