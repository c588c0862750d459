package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/mockuments/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "Mockuments", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Gotenberg.URL)
	assert.Zero(t, cfg.Gotenberg.Timeout)
	assert.Equal(t, config.PoolsBuiltin, cfg.Pools.Source)
	assert.Equal(t, "./exports", cfg.Output.Dir)
	assert.True(t, cfg.Capture.Tilt)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "postgres://postgres:@localhost:5432/mockuments?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GOTENBERG_URL", "http://gotenberg:3000")
	t.Setenv("GOTENBERG_TIMEOUT", "45s")
	t.Setenv("POOLS_SOURCE", "csv")
	t.Setenv("POOLS_FILE", "pools.csv")
	t.Setenv("S3_BUCKET", "fixtures")
	t.Setenv("GENERATOR_SEED", "42")
	t.Setenv("CAPTURE_TILT", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "http://gotenberg:3000", cfg.Gotenberg.URL)
	assert.Equal(t, 45*time.Second, cfg.Gotenberg.Timeout)
	assert.Equal(t, config.PoolsCSV, cfg.Pools.Source)
	assert.Equal(t, "pools.csv", cfg.Pools.File)
	assert.Equal(t, "fixtures", cfg.Output.S3Bucket)
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.False(t, cfg.Capture.Tilt)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	type testCase struct {
		name string
		env  map[string]string
	}

	tests := []testCase{
		{name: "UnknownPoolSource", env: map[string]string{"POOLS_SOURCE": "ldap"}},
		{name: "CSVWithoutFile", env: map[string]string{"POOLS_SOURCE": "csv"}},
		{name: "BadPort", env: map[string]string{"PORT": "0"}},
		{name: "NotANumber", env: map[string]string{"DB_PORT": "five"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
