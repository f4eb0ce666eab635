//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-datagen.
// Configuration is loaded from config files, a .env file, DATAGEN_
// environment variables and CLI flags. CLI flags take precedence over
// environment variables, which take precedence over config file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pgEdge/pgedge-datagen/internal/datagen"
	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/scheme"
	"github.com/pgEdge/pgedge-datagen/internal/transport"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "DATAGEN"

// DefaultBaseURL is the base URL used when none is configured.
const DefaultBaseURL = "http://localhost:8080"

// Config holds all configuration for pgedge-datagen.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFile, when set, receives a copy of the log output.
	LogFile string `mapstructure:"log_file"`

	// Transport selects the live transport: http, postgres or kafka.
	Transport string `mapstructure:"transport"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`

	// ProgressInterval is how often, in records, generation progress is
	// logged. Negative disables progress logging.
	ProgressInterval int64 `mapstructure:"progress_interval"`

	HTTP     HTTPConfig     `mapstructure:"http"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Scheme   SchemeConfig   `mapstructure:"scheme"`
}

// HTTPConfig holds settings for the http transport.
type HTTPConfig struct {
	// BaseURL is the root of the target REST service. BASE_URL is
	// accepted as well as DATAGEN_HTTP_BASE_URL.
	BaseURL string `mapstructure:"base_url"`

	// Token is sent as a bearer token when set.
	Token string `mapstructure:"token"`

	Timeout time.Duration `mapstructure:"timeout"`
}

// PostgresConfig holds settings for the postgres transport.
type PostgresConfig struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`
}

// KafkaConfig holds settings for the kafka transport.
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SchemeConfig holds configuration for the scheme subcommand.
type SchemeConfig struct {
	// Parallel is the number of batches dispatched concurrently.
	Parallel int `mapstructure:"parallel"`

	// Entries replaces the standard scheme when not empty.
	Entries []SchemeEntry `mapstructure:"entries"`
}

// SchemeEntry is one configured scheme step.
type SchemeEntry struct {
	Entity string `mapstructure:"entity"`
	Amount int    `mapstructure:"amount"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		Transport:        transport.KindHTTP,
		ProgressInterval: datagen.DefaultProgressInterval,
		HTTP: HTTPConfig{
			BaseURL: DefaultBaseURL,
			Timeout: transport.DefaultHTTPTimeout,
		},
		Kafka: KafkaConfig{
			Topic:        "datagen",
			WriteTimeout: transport.DefaultKafkaWriteTimeout,
		},
		Scheme: SchemeConfig{
			Parallel: 1,
		},
	}
}

// envKeys are the settings that can be overridden from the environment.
var envKeys = []string{
	"log_level",
	"log_file",
	"transport",
	"seed",
	"progress_interval",
	"http.token",
	"http.timeout",
	"postgres.connection",
	"kafka.brokers",
	"kafka.topic",
	"kafka.write_timeout",
	"scheme.parallel",
}

// Load reads configuration from config files and the environment.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-datagen.yaml
// 3. ~/.config/pgedge-datagen/config.yaml
func Load(configFile string) (*Config, error) {
	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetConfigName("pgedge-datagen")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-datagen"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", key, err)
		}
	}
	if err := v.BindEnv("http.base_url", EnvPrefix+"_HTTP_BASE_URL", "BASE_URL"); err != nil {
		return nil, fmt.Errorf("error binding http.base_url: %w", err)
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file into the process
// environment. Variables already set are kept. A missing file is not an
// error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// Validate checks settings shared by every command.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Transport) {
	case transport.KindHTTP, transport.KindPostgres, transport.KindKafka:
	default:
		return fmt.Errorf("transport must be one of: %s", strings.Join(transport.Kinds, ", "))
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http timeout must be non-negative")
	}
	if c.Scheme.Parallel < 0 {
		return fmt.Errorf("scheme parallel must be non-negative")
	}
	return nil
}

// ValidateLive checks the settings of the selected live transport.
func (c *Config) ValidateLive() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch strings.ToLower(c.Transport) {
	case transport.KindHTTP:
		if c.HTTP.BaseURL == "" {
			return fmt.Errorf("base URL is required for the http transport")
		}
	case transport.KindPostgres:
		if c.Postgres.Connection == "" {
			return fmt.Errorf("connection string is required for the postgres transport")
		}
	case transport.KindKafka:
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("at least one broker is required for the kafka transport")
		}
		if c.Kafka.Topic == "" {
			return fmt.Errorf("topic is required for the kafka transport")
		}
	}
	return nil
}

// TransportOptions returns the options for building the live transport.
func (c *Config) TransportOptions() transport.Options {
	return transport.Options{
		Kind: c.Transport,
		HTTP: transport.HTTPConfig{
			BaseURL: c.HTTP.BaseURL,
			Token:   c.HTTP.Token,
			Timeout: c.HTTP.Timeout,
		},
		Postgres: transport.PostgresConfig{
			Connection: c.Postgres.Connection,
		},
		Kafka: transport.KafkaConfig{
			Brokers:      c.Kafka.Brokers,
			Topic:        c.Kafka.Topic,
			WriteTimeout: c.Kafka.WriteTimeout,
		},
	}
}

// SchemeDefinition returns the configured scheme, or the standard scheme
// when none is configured.
func (c *Config) SchemeDefinition(registry *entity.Registry) (*scheme.Definition, error) {
	if len(c.Scheme.Entries) == 0 {
		return scheme.Standard(), nil
	}
	entries := make([]scheme.Entry, len(c.Scheme.Entries))
	for i, e := range c.Scheme.Entries {
		t, err := registry.Resolve(e.Entity)
		if err != nil {
			return nil, fmt.Errorf("scheme entry %d: %w", i+1, err)
		}
		entries[i] = scheme.Entry{Entity: t, Amount: e.Amount}
	}
	return scheme.NewDefinition(registry, entries...)
}
