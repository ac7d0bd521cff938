package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fractionalquest/repo-agent/internal/config"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/repo")
	t.Setenv("PORT", "")
	t.Setenv("API_BASE_URL", "")
	t.Setenv("GRAPH_SYNC_ENABLED", "")
	t.Setenv("CLASSIFY_DELAY", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://fractional.quest", cfg.APIBaseURL)
	assert.True(t, cfg.GraphSyncEnabled)
	assert.Equal(t, 2*time.Second, cfg.ClassifyDelay)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/repo")
	t.Setenv("PORT", "9000")
	t.Setenv("GRAPH_SYNC_ENABLED", "false")
	t.Setenv("CLASSIFY_DELAY", "500ms")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.GraphSyncEnabled)
	assert.Equal(t, 500*time.Millisecond, cfg.ClassifyDelay)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/repo")
	t.Setenv("GRAPH_SYNC_ENABLED", "maybe")

	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("GRAPH_SYNC_ENABLED", "true")
	t.Setenv("CLASSIFY_DELAY", "soon")
	_, err = config.Load()
	assert.Error(t, err)
}
