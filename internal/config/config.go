// Package config loads service settings from the environment, an optional
// .env file and an optional YAML file named by CONFIG_FILE. Environment
// variables win over the file, which wins over the defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ukydev/fleet-maintenance/internal/maintenance"
)

const (
	SourceMock  = "mock"
	SourceMongo = "mongo"
)

type Config struct {
	Port      string          `yaml:"port"`
	Log       LogConfig       `yaml:"log"`
	Source    string          `yaml:"data_source"`
	Mongo     MongoConfig     `yaml:"mongo"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Simulator SimulatorConfig `yaml:"simulator"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// MQTTConfig enables the toast publisher when Broker is set.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

type AuthConfig struct {
	Secret string        `yaml:"secret"`
	Expiry time.Duration `yaml:"expiry"`
}

// RateLimitConfig caps API requests per client; zero Requests disables it.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// SimulatorConfig drives the mock backend and its latency.
type SimulatorConfig struct {
	MinLatency time.Duration      `yaml:"latency_min"`
	MaxLatency time.Duration      `yaml:"latency_max"`
	Seed       int64              `yaml:"seed"`
	Counts     maintenance.Counts `yaml:"counts"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Port:      "8080",
		Log:       LogConfig{Level: "info", Format: "text"},
		Source:    SourceMock,
		Mongo:     MongoConfig{Database: "fleet"},
		MQTT:      MQTTConfig{ClientID: "fleet-maintenance"},
		Auth:      AuthConfig{Expiry: 24 * time.Hour},
		RateLimit: RateLimitConfig{Requests: 120, Window: time.Minute},
		Simulator: SimulatorConfig{
			MinLatency: maintenance.DefaultMinLatency,
			MaxLatency: maintenance.DefaultMaxLatency,
			Seed:       time.Now().UnixNano(),
			Counts:     maintenance.DefaultCounts,
		},
	}
}

// Load builds the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Source = strings.ToLower(getEnv("DATA_SOURCE", c.Source))

	c.Mongo.URI = getEnv("MONGO_URI", c.Mongo.URI)
	c.Mongo.Database = getEnv("MONGO_DB", c.Mongo.Database)

	c.MQTT.Broker = getEnv("MQTT_BROKER", c.MQTT.Broker)
	c.MQTT.Topic = getEnv("MQTT_TOPIC", c.MQTT.Topic)
	c.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", c.MQTT.ClientID)

	c.Auth.Secret = getEnv("JWT_SECRET", c.Auth.Secret)
	c.Auth.Expiry = getEnvAsDuration("JWT_EXPIRY", c.Auth.Expiry)

	c.RateLimit.Requests = getEnvAsInt("RATE_LIMIT_REQUESTS", c.RateLimit.Requests)
	c.RateLimit.Window = getEnvAsDuration("RATE_LIMIT_WINDOW", c.RateLimit.Window)

	c.Simulator.MinLatency = getEnvAsDuration("LATENCY_MIN", c.Simulator.MinLatency)
	c.Simulator.MaxLatency = getEnvAsDuration("LATENCY_MAX", c.Simulator.MaxLatency)
	c.Simulator.Seed = getEnvAsInt64("GENERATOR_SEED", c.Simulator.Seed)
	c.Simulator.Counts.Schedules = getEnvAsInt("SCHEDULE_COUNT", c.Simulator.Counts.Schedules)
	c.Simulator.Counts.Records = getEnvAsInt("RECORD_COUNT", c.Simulator.Counts.Records)
	c.Simulator.Counts.Reminders = getEnvAsInt("REMINDER_COUNT", c.Simulator.Counts.Reminders)
	c.Simulator.Counts.History = getEnvAsInt("HISTORY_COUNT", c.Simulator.Counts.History)
}

// Validate rejects combinations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceMock:
	case SourceMongo:
		if c.Mongo.URI == "" {
			return errors.New("MONGO_URI is required when DATA_SOURCE is mongo")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.Source)
	}
	if c.Simulator.MinLatency < 0 || c.Simulator.MaxLatency < c.Simulator.MinLatency {
		return fmt.Errorf("invalid latency range %s..%s", c.Simulator.MinLatency, c.Simulator.MaxLatency)
	}
	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	return nil
}

// ConfigureLogging applies the log level and formatter to the standard logger.
func ConfigureLogging(lc LogConfig) error {
	level, err := log.ParseLevel(lc.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	switch lc.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
