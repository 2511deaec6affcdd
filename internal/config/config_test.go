package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceMock, cfg.Source)
	assert.Equal(t, 300*time.Millisecond, cfg.Simulator.MinLatency)
	assert.Equal(t, 800*time.Millisecond, cfg.Simulator.MaxLatency)
	assert.Equal(t, 15, cfg.Simulator.Counts.Schedules)
	assert.Equal(t, 24*time.Hour, cfg.Auth.Expiry)
	assert.Equal(t, 120, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_SOURCE", "MONGO")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("LATENCY_MIN", "0s")
	t.Setenv("LATENCY_MAX", "10ms")
	t.Setenv("GENERATOR_SEED", "42")
	t.Setenv("SCHEDULE_COUNT", "3")
	t.Setenv("HISTORY_COUNT", "not-a-number")
	t.Setenv("RATE_LIMIT_REQUESTS", "0")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, SourceMongo, cfg.Source)
	assert.Equal(t, time.Duration(0), cfg.Simulator.MinLatency)
	assert.Equal(t, 10*time.Millisecond, cfg.Simulator.MaxLatency)
	assert.Equal(t, int64(42), cfg.Simulator.Seed)
	assert.Equal(t, 3, cfg.Simulator.Counts.Schedules)
	assert.Equal(t, 25, cfg.Simulator.Counts.History, "unparsable values keep the default")
	assert.Equal(t, 0, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoad_YAMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
port: "7070"
log:
  level: debug
  format: json
mqtt:
  broker: tcp://broker:1883
  topic: fleet/toasts
auth:
  secret: from-file
  expiry: 2h
simulator:
  latency_min: 50ms
  latency_max: 100ms
  seed: 7
  counts:
    schedules: 4
    records: 5
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MQTT_TOPIC", "override/topic")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, "tcp://broker:1883", cfg.MQTT.Broker)
	assert.Equal(t, "override/topic", cfg.MQTT.Topic)
	assert.Equal(t, "from-file", cfg.Auth.Secret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.Expiry)
	assert.Equal(t, 50*time.Millisecond, cfg.Simulator.MinLatency)
	assert.Equal(t, int64(7), cfg.Simulator.Seed)
	assert.Equal(t, 4, cfg.Simulator.Counts.Schedules)
	assert.Equal(t, 5, cfg.Simulator.Counts.Records)
}

func TestLoad_BadFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [unclosed"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing secret", func(c *Config) { c.Auth.Secret = "" }, true},
		{"unknown source", func(c *Config) { c.Source = "postgres" }, true},
		{"mongo without uri", func(c *Config) { c.Source = SourceMongo }, true},
		{"mongo with uri", func(c *Config) { c.Source = SourceMongo; c.Mongo.URI = "mongodb://x" }, false},
		{"inverted latency", func(c *Config) { c.Simulator.MinLatency = time.Second; c.Simulator.MaxLatency = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.Secret = "testsecret"
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	require.NoError(t, ConfigureLogging(LogConfig{Level: "debug", Format: "json"}))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	assert.Error(t, ConfigureLogging(LogConfig{Level: "loud"}))
}
