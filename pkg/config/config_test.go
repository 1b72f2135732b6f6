package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
service_name = "community"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "community", cfg.ServiceName)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "sql", cfg.Storage.Backend)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 24, cfg.Session.TTLHours)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "static/audio", cfg.Upload.Dir)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadMongoBackend(t *testing.T) {
	path := writeConfig(t, `
service_name = "community"

[storage]
backend = "mongo"

[mongo]
uri = "mongodb://db:27017"
database = "khamyang"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mongo", cfg.Storage.Backend)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, `
service_name = "community"

[storage]
backend = "dynamo"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage backend")
}

func TestValidateRequiresServiceName(t *testing.T) {
	path := writeConfig(t, `
version = "1.0"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_name")
}

func TestValidateKafkaBrokers(t *testing.T) {
	path := writeConfig(t, `
service_name = "community"

[kafka]
enabled = true
brokers = []
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kafka brokers")
}

func TestValidateSessionBackend(t *testing.T) {
	path := writeConfig(t, `
service_name = "community"

[session]
backend = "cookiejar"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session backend")
}
