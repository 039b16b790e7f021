// Package config manages environment variables.
//
// It reads variables (optionally from a `.env` file), loads them
// into structured Go types and validates that required values are
// present before the function starts serving invocations.
//
// Responsibilities:
//   - Load environment variables with the RSVP_ prefix.
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so a cold start fails fast on bad config.
//   - Provide sane defaults for optional blocks (server, pool, observability).
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if present.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable must carry.
//
// Nesting uses a double underscore, so RSVP_DATABASE__HOST maps to
// database.host -> Config.Database.Host.
const EnvPrefix = "RSVP_"

// ServiceName tags logs and New Relic telemetry.
const ServiceName = "wedding-rsvp"

// Config is the root configuration object for the functions.
//
// Observability is a pointer because it is optional. If it is not provided
// the defaults from DefaultObservabilityConfig are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production"`
}

// ServerConfig groups settings for the local gateway emulator (cmd/rsvp-server).
// Timeouts are in seconds.
type ServerConfig struct {
	Port         string `koanf:"port"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"gte=0"`
	WriteTimeout int    `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"gte=0"`

	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// Pool values of zero keep the pgxpool defaults. Lifetimes are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"gte=0"`
}

// RedisConfig contains the Redis address ("host:port") backing the
// notification queue. An empty address disables notifications.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
}

// Enabled reports whether a Redis address has been configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// IntegrationConfig stores third-party credentials used by the worker.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	FromEmail    string `koanf:"from_email" validate:"omitempty,email"`
	HostEmail    string `koanf:"host_email" validate:"omitempty,email"`
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config, validates it, applies defaults, and returns the resulting config.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Service name and environment always follow the primary config.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// MustLoadConfig is LoadConfig for entry points: it exits the process on error.
func MustLoadConfig() *Config {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if len(c.Server.CORSAllowedOrigins) == 0 {
		c.Server.CORSAllowedOrigins = []string{"*"}
	}
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
}

// DSN builds the postgres URL for the database block. Every component is
// escaped, so credentials and names may contain URL delimiters.
func (d DatabaseConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawPath:  "/" + url.PathEscape(d.Name),
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return dsn.String()
}
