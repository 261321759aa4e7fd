package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, ":50051", c.GRPCAddr)
	assert.Equal(t, StoreMemory, c.Store)
	assert.Equal(t, AnalyzerHeuristic, c.Analyzer)
	assert.Equal(t, "pulse-agent", c.AgentID)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 7, c.ReflectionWindow)
	assert.Equal(t, "entries", c.FirestoreCollection)
	assert.Empty(t, c.AuthSecret)
	assert.False(t, c.ExportEnabled)
	assert.NoError(t, c.Validate())
}

func TestLoad_DefaultsWithoutArgs(t *testing.T) {
	c, err := Load(nil)
	require.NoError(t, err)
	require.NotNil(t, c, "Load must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: \":7000\"\nstore: postgres\n"), 0o600))

	c, err := Load([]string{"-c", path, "-a", ":9000"})
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.HTTPAddr)
	assert.Equal(t, StorePostgres, c.Store)
}

func TestLoad_SubSecondTimeoutFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("request_timeout: \"500ms\"\n"), 0o600))

	c, err := Load([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, c.RequestTimeout)

	c, err = Load([]string{"-c", path, "-t", "2"})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, c.RequestTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown store", func(c *Config) { c.Store = "mongo" }},
		{"unknown analyzer", func(c *Config) { c.Analyzer = "vibes" }},
		{"firestore without project", func(c *Config) { c.Store = StoreFirestore }},
		{"no workers", func(c *Config) { c.EnrichWorkers = 0 }},
		{"no reflection window", func(c *Config) { c.ReflectionWindow = 0 }},
		{"bad timezone", func(c *Config) { c.DisplayTimezone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLocation(t *testing.T) {
	c := Config{DisplayTimezone: "Europe/Riga"}
	assert.Equal(t, "Europe/Riga", c.Location().String())

	c.DisplayTimezone = "nowhere"
	assert.Equal(t, time.UTC, c.Location())
}
