package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"readmearchitect/internal/domain/entity"
)

type Config struct {
	Server   HTTPServerConfig
	Langflow LangflowConfig
	Mongo    MongoConfig
	Auth     AuthConfig
	Export   ExportConfig

	MetricsAddr string `env:"METRICS_ADDR, default=:2112"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
}

type HTTPServerConfig struct {
	Host         string        `env:"SERVER_HOST, default=0.0.0.0"`
	Port         int           `env:"SERVER_PORT, default=8000"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT, default=30s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT, default=130s"`
	CORSOrigins  []string      `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:5173,http://localhost:3000"`
}

type LangflowConfig struct {
	BaseURL string        `env:"LANGFLOW_API_URL, default=http://localhost:7860/api/v1/run"`
	FlowID  string        `env:"LANGFLOW_FLOW_ID"`
	APIKey  string        `env:"LANGFLOW_API_KEY"`
	Timeout time.Duration `env:"LANGFLOW_TIMEOUT, default=120s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB, default=readme_architect"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL, default=30m"`
}

type ExportConfig struct {
	// Empty disables README export.
	Dir string `env:"EXPORT_DIR"`
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}

// ValidateServer checks settings only the HTTP server needs.
func (c *Config) ValidateServer() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("JWT_SECRET env variable is required")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return errors.New("ACCESS_TOKEN_TTL must be positive")
	}
	return nil
}

// Workflow is the read-only view of the Langflow settings handed to the
// generator on every call.
func (c *Config) Workflow() entity.WorkflowConfig {
	return entity.WorkflowConfig{
		BaseURL: c.Langflow.BaseURL,
		FlowID:  c.Langflow.FlowID,
		APIKey:  c.Langflow.APIKey,
	}
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
