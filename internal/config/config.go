package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	ServiceName string
	LogLevel    string
	GinMode     string
	Database    DatabaseConfig
	Telemetry   TelemetryConfig
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	MaxConns        int32
	MinConns        int32
	ConnectAttempts int
	EnsureSchema    bool
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

// LoadConfig reads the environment, after loading a .env file if one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("SERVICE_NAME", "brewery-service")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("DATABASE_USER", "root")
	v.SetDefault("DATABASE_PASSWORD", "pass")
	v.SetDefault("DATABASE_NAME", "brewery_db")
	v.SetDefault("DATABASE_MAX_CONNS", 10)
	v.SetDefault("DATABASE_MIN_CONNS", 2)
	v.SetDefault("DATABASE_CONNECT_ATTEMPTS", 30)
	v.SetDefault("DATABASE_ENSURE_SCHEMA", true)
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	return &Config{
		Port:        v.GetString("PORT"),
		ServiceName: v.GetString("SERVICE_NAME"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		GinMode:     v.GetString("GIN_MODE"),
		Database: DatabaseConfig{
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetString("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			MaxConns:        v.GetInt32("DATABASE_MAX_CONNS"),
			MinConns:        v.GetInt32("DATABASE_MIN_CONNS"),
			ConnectAttempts: v.GetInt("DATABASE_CONNECT_ATTEMPTS"),
			EnsureSchema:    v.GetBool("DATABASE_ENSURE_SCHEMA"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      v.GetBool("OTEL_ENABLED"),
			OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		},
	}, nil
}

// DSN assembles the pgx connection string.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DATABASE_HOST is required"))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("DATABASE_NAME is required"))
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode))
	}
	if c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("DATABASE_MIN_CONNS (%d) exceeds DATABASE_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns))
	}
	return errors.Join(errs...)
}
