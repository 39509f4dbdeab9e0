package config

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readmearchitect/internal/domain/entity"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 120*time.Second, cfg.Langflow.Timeout)
	assert.Equal(t, "http://localhost:7860/api/v1/run", cfg.Langflow.BaseURL)
	assert.Equal(t, "readme_architect", cfg.Mongo.Database)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Empty(t, cfg.Export.Dir)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())

	assert.Error(t, cfg.ValidateServer())
}

func TestLoad_FromEnv(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"LANGFLOW_API_URL": "http://lf:7860/api/v1/run",
		"LANGFLOW_FLOW_ID": "flow-1",
		"LANGFLOW_API_KEY": "sk-1",
		"LANGFLOW_TIMEOUT": "5s",
		"JWT_SECRET":       "s3cret",
		"LOG_LEVEL":        "DEBUG",
		"EXPORT_DIR":       "/tmp/readmes",
	}))
	require.NoError(t, err)

	assert.Equal(t, entity.WorkflowConfig{
		BaseURL: "http://lf:7860/api/v1/run",
		FlowID:  "flow-1",
		APIKey:  "sk-1",
	}, cfg.Workflow())
	assert.Equal(t, 5*time.Second, cfg.Langflow.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "/tmp/readmes", cfg.Export.Dir)
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoad_BadDuration(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"LANGFLOW_TIMEOUT": "soon",
	}))
	assert.Error(t, err)
}
