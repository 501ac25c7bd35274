package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort                = "8080"
	DefaultMaxExpressionLength = 256
	DefaultMaxPads             = 1024
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultEnvPath             = ".env"
)

// Config is the configuration of the calculator service.
type Config struct {
	Port        string   `yaml:"port"`
	UseHTTP2    bool     `yaml:"use_http2"`
	CorsOrigins []string `yaml:"cors_origins"`
	// MaxExpressionLength bounds the expressions the service will evaluate,
	// in bytes.
	MaxExpressionLength int `yaml:"max_expression_length"`
	// MaxPads bounds the number of live keypad sessions.
	MaxPads         int           `yaml:"max_pads"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	LogLevel        string        `yaml:"log_level"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Port:                DefaultPort,
		CorsOrigins:         []string{"*"},
		MaxExpressionLength: DefaultMaxExpressionLength,
		MaxPads:             DefaultMaxPads,
		ShutdownTimeout:     DefaultShutdownTimeout,
		LogLevel:            "info",
	}
}

// Load builds the configuration from the defaults, then the YAML file at path
// if path is not empty, then environment variables. Variables in a .env file
// are loaded into the environment first; ENV_PATH names the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config YAML: %w", err)
		}
	}
	LoadDotEnv()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from the file named by ENV_PATH, or
// .env in the working directory. Variables already set are not overridden. A
// missing file is not an error.
func LoadDotEnv() {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = DefaultEnvPath
	}
	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("Skipping .env ...", "path", envPath, "error", err)
	}
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		c.Port = v
	}
	if v, ok := os.LookupEnv("USE_HTTP2"); ok && v != "" {
		c.UseHTTP2 = v == "true"
	}
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok && v != "" {
		c.CorsOrigins = splitOrigins(v)
	}
	if v, ok := os.LookupEnv("MAX_EXPRESSION_LENGTH"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_EXPRESSION_LENGTH: %w", err)
		}
		c.MaxExpressionLength = n
	}
	if v, ok := os.LookupEnv("MAX_PADS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_PADS: %w", err)
		}
		c.MaxPads = n
	}
	if v, ok := os.LookupEnv("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		c.ShutdownTimeout = d
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	return nil
}

// splitOrigins splits a comma-separated origin list, dropping blanks.
func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	if err := validatePort(c.Port); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	if c.MaxExpressionLength <= 0 {
		return fmt.Errorf("max expression length must be positive, got %d", c.MaxExpressionLength)
	}
	if c.MaxPads <= 0 {
		return fmt.Errorf("max pads must be positive, got %d", c.MaxPads)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %v", c.ShutdownTimeout)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if len(c.CorsOrigins) == 0 {
		c.CorsOrigins = []string{"*"}
	}
	return nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)
	if err != nil {
		return errors.New("port must be a number")
	}
	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}
