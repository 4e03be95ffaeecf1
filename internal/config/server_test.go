package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerDefaults(t *testing.T) {
	c, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, ":8080", c.Addr())
	assert.False(t, c.Production())
	assert.Equal(t, "./web/dist", c.StaticDir)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.ScenarioFile)
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("API_ENV", "production")
	t.Setenv("SCENARIO_FILE", "examples/scenario.yaml")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, ":9090", c.Addr())
	assert.True(t, c.Production())
	assert.Equal(t, "examples/scenario.yaml", c.ScenarioFile)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.AllowedOrigins)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoadServerInvalidPort(t *testing.T) {
	t.Setenv("API_PORT", "70000")
	_, err := LoadServer()
	assert.Error(t, err)
}
