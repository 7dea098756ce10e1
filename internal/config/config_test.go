package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.Backend.Type)
	assert.Equal(t, 20*time.Second, cfg.Lock.CreateWait)
	assert.Equal(t, 3*time.Second, cfg.Lock.ModifyWait)
	assert.True(t, cfg.MetricsEnabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CAMPSITED_BACKEND_TYPE", "memory")
	t.Setenv("CAMPSITED_HTTP_ADDR", ":9999")
	t.Setenv("CAMPSITED_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend.Type)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestPostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("CAMPSITED_BACKEND_TYPE", "postgres")
	_, err := Load("")
	assert.Error(t, err)
}

func TestUnknownBackendRejected(t *testing.T) {
	t.Setenv("CAMPSITED_BACKEND_TYPE", "dynamo")
	_, err := Load("")
	assert.Error(t, err)
}
