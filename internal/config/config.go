package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces every variable, e.g. WARDBOT_PORT.
const envPrefix = "WARDBOT"

// Config aggregates the service settings.
type Config struct {
	Server  ServerConfig
	Content ContentConfig
	Session SessionConfig
	Log     LogConfig
}

// env mirrors the raw environment before it is split into sections.
type env struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	ContentPath  string        `envconfig:"CONTENT_PATH"`
	ContentWatch bool          `envconfig:"CONTENT_WATCH" default:"false"`
	HistoryLimit int           `envconfig:"HISTORY_LIMIT" default:"0"`
	RandomSeed   uint64        `envconfig:"RANDOM_SEED" default:"0"`
	Timezone     string        `envconfig:"TIMEZONE" default:"Asia/Seoul"`
	IdleTTL      time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string        `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads the configuration from WARDBOT_* environment variables.
func Load() (*Config, error) {
	var raw env
	if err := envconfig.Process(envPrefix, &raw); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return fromEnv(raw)
}

func fromEnv(raw env) (*Config, error) {
	var errs []error

	server, err := parseServerConfig(raw.Port)
	if err != nil {
		errs = append(errs, err)
	}

	loc, err := time.LoadLocation(strings.TrimSpace(raw.Timezone))
	if err != nil {
		errs = append(errs, fmt.Errorf("invalid %s_TIMEZONE value %q: %w", envPrefix, raw.Timezone, err))
	}

	if raw.HistoryLimit < 0 {
		errs = append(errs, fmt.Errorf("invalid %s_HISTORY_LIMIT value %d: must be >= 0", envPrefix, raw.HistoryLimit))
	}
	if raw.IdleTTL < 0 {
		errs = append(errs, fmt.Errorf("invalid %s_SESSION_IDLE_TTL value %s: must be >= 0", envPrefix, raw.IdleTTL))
	}

	path := strings.TrimSpace(raw.ContentPath)
	if raw.ContentWatch && path == "" {
		errs = append(errs, fmt.Errorf("%s_CONTENT_WATCH requires %s_CONTENT_PATH", envPrefix, envPrefix))
	}

	format := strings.ToLower(strings.TrimSpace(raw.LogFormat))
	if format != "json" && format != "console" {
		errs = append(errs, fmt.Errorf("invalid %s_LOG_FORMAT value %q: want json or console", envPrefix, raw.LogFormat))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		Server:  server,
		Content: ContentConfig{Path: path, Watch: raw.ContentWatch},
		Session: SessionConfig{
			HistoryLimit: raw.HistoryLimit,
			RandomSeed:   raw.RandomSeed,
			Location:     loc,
			IdleTTL:      raw.IdleTTL,
		},
		Log: LogConfig{Level: strings.TrimSpace(raw.LogLevel), Format: format},
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// parseServerConfig resolves the listen address.
func parseServerConfig(port string) (ServerConfig, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as given.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid %s_PORT value: %q", envPrefix, port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// ContentConfig selects the content tables. An empty Path serves the
// built-in seed.
type ContentConfig struct {
	Path  string
	Watch bool
}

// SessionConfig controls per-session engines.
type SessionConfig struct {
	// HistoryLimit bounds retained turns per session; zero keeps all.
	HistoryLimit int
	// RandomSeed makes replies reproducible when non-zero.
	RandomSeed uint64
	// Location is the wall clock used for timestamps and greetings.
	Location *time.Location
	// IdleTTL evicts sessions without activity; zero disables eviction.
	IdleTTL time.Duration
}

// Now returns the current time in the configured location.
func (c SessionConfig) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string
	Format string
}
