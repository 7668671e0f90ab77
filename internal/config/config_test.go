package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 1.0, c.Speed)
	assert.Equal(t, 1.0, c.Scale)
	assert.Equal(t, "dark", c.Theme)
	assert.Equal(t, 30, c.FPS)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "", c.LogFile)
	assert.Equal(t, "", c.Serve.Addr)
	assert.Equal(t, "", c.Metrics.Addr)
	assert.Equal(t, 20.0, c.Stream.CommandRate)
	assert.Equal(t, 10, c.Stream.CommandBurst)

	assert.Equal(t, Default(), c)
}

func TestLoad_WithValidJSONFile(t *testing.T) {
	path := writeConfig(t, "orrery.json", `{
		"speed": 2.5,
		"theme": "light",
		"logLevel": "debug",
		"serve": { "addr": ":8080" },
		"stream": { "commandBurst": 3 }
	}`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, c.Speed)
	assert.Equal(t, 1.0, c.Scale)
	assert.Equal(t, "light", c.Theme)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, ":8080", c.Serve.Addr)
	assert.Equal(t, 3, c.Stream.CommandBurst)
	assert.Equal(t, 20.0, c.Stream.CommandRate)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "orrery.yaml", "scale: 3\nfps: 60\nmetrics:\n  addr: \":9100\"\n")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3.0, c.Scale)
	assert.Equal(t, 60, c.FPS)
	assert.Equal(t, ":9100", c.Metrics.Addr)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "orrery.json", `{"speed": 2, "serve": {"addr": ":8080"}}`)
	t.Setenv("ORRERY_SPEED", "4")
	t.Setenv("ORRERY_SERVE_ADDR", ":9999")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4.0, c.Speed)
	assert.Equal(t, ":9999", c.Serve.Addr)
}

func TestLoad_Clamps(t *testing.T) {
	path := writeConfig(t, "orrery.json", `{
		"speed": 50,
		"scale": -2,
		"fps": 1000,
		"theme": "Neon",
		"stream": {"commandRate": -1, "commandBurst": 0}
	}`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, MaxSpeed, c.Speed)
	assert.Equal(t, 0.0, c.Scale)
	assert.Equal(t, MaxFPS, c.FPS)
	assert.Equal(t, "dark", c.Theme)
	assert.Equal(t, 20.0, c.Stream.CommandRate)
	assert.Equal(t, 1, c.Stream.CommandBurst)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/orrery.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "orrery.json", `{"speed": `)
	_, err := Load(path)
	require.Error(t, err)
}
