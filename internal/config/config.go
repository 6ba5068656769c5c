package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/futig/ums-chatbot/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Relay server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":5000"`
	// Zero disables the per-request deadline
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"0s"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Upstream answer service
	AnswerConnectorCfg AnswerConnectorConfig `envPrefix:"UPSTREAM_"`

	// Presentation clients
	ClientCfg   ClientConfig   `envPrefix:"CLIENT_"`
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type AnswerConnectorConfig struct {
	HTTPClientConfig
	QueryEndpoint  string `env:"QUERY_ENDPOINT" envDefault:"/api/query"`
	HealthEndpoint string `env:"HEALTH_ENDPOINT" envDefault:"/health"`
}

// HTTPClientConfig configures an outbound connector. RequestTimeout and
// ResponseHeaderTimeout of zero leave the exchange unbounded.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"0s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"0s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL" envDefault:"http://localhost:8000"`
}

// ClientConfig configures the presentation clients' access to the relay
type ClientConfig struct {
	RelayURL string `env:"RELAY_URL" envDefault:"http://localhost:5000"`
	// Zero keeps the transport default (no overall deadline).
	Timeout time.Duration `env:"TIMEOUT" envDefault:"0s"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string               `env:"BOT_TOKEN"`
	UpdateTimeout      int                  `env:"UPDATE_TIMEOUT" envDefault:"60"`
	ShutdownTimeout    int                  `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
	ConversationTTL    time.Duration        `env:"CONVERSATION_TTL" envDefault:"2h"`
	MaxConcurrentUsers int                  `env:"MAX_CONCURRENT_USERS" envDefault:"100"`
	SendRetry          pkgRetry.RetryConfig `envPrefix:"SEND_RETRY_"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	return Load(*envFlag)
}

// Load reads .env.<environment> (if present) and the process environment
func Load(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errs []string

	if _, err := url.ParseRequestURI(cfg.AnswerConnectorCfg.Url); err != nil {
		errs = append(errs, fmt.Sprintf("UPSTREAM_SERVICE_URL must be an absolute URL, got %q", cfg.AnswerConnectorCfg.Url))
	}

	if _, err := url.ParseRequestURI(cfg.ClientCfg.RelayURL); err != nil {
		errs = append(errs, fmt.Sprintf("CLIENT_RELAY_URL must be an absolute URL, got %q", cfg.ClientCfg.RelayURL))
	}

	if cfg.RequestTimeout < 0 {
		errs = append(errs, fmt.Sprintf("SERVER_REQUEST_TIMEOUT must not be negative, got %s", cfg.RequestTimeout))
	}

	if cfg.AnswerConnectorCfg.RequestTimeout < 0 || cfg.AnswerConnectorCfg.ResponseHeaderTimeout < 0 {
		errs = append(errs, "UPSTREAM_TIMEOUT and UPSTREAM_RESPONSE_HEADER_TIMEOUT must not be negative")
	}

	if cfg.ClientCfg.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("CLIENT_TIMEOUT must not be negative, got %s", cfg.ClientCfg.Timeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// ValidateTelegram checks the settings only the Telegram front-end needs
func (c *TelegramConfig) ValidateTelegram() error {
	if c.BotToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}

	if c.ShutdownTimeout < 1 || c.ShutdownTimeout > 300 {
		return fmt.Errorf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", c.ShutdownTimeout)
	}

	if c.MaxConcurrentUsers < 1 {
		return fmt.Errorf("TELEGRAM_MAX_CONCURRENT_USERS must be positive, got %d", c.MaxConcurrentUsers)
	}

	if c.ConversationTTL <= 0 {
		return fmt.Errorf("TELEGRAM_CONVERSATION_TTL must be positive, got %s", c.ConversationTTL)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
