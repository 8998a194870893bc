package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// maxPairingAttempts mirrors dashboard.MaxPairingAttempts.
const maxPairingAttempts = 10

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Platform  PlatformConfig  `yaml:"platform"`
	Storage   StorageConfig   `yaml:"storage"`
	Snapshots SnapshotConfig  `yaml:"snapshots"`
	Events    EventsConfig    `yaml:"events"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// DashboardConfig tunes the UI event controller.
type DashboardConfig struct {
	TrafficInterval time.Duration `yaml:"trafficInterval"`
	FadeDelay       time.Duration `yaml:"fadeDelay"`
	MapInterval     time.Duration `yaml:"mapInterval"`
	CanvasWidth     int           `yaml:"canvasWidth"`
	CanvasHeight    int           `yaml:"canvasHeight"`
	GridSpacing     float64       `yaml:"gridSpacing"`
	GridOffset      float64       `yaml:"gridOffset"`
	RoadWidth       float64       `yaml:"roadWidth"`
	PointCount      int           `yaml:"pointCount"`
	PointRadius     float64       `yaml:"pointRadius"`
	Locale          string        `yaml:"locale"`
	ThemeKey        string        `yaml:"themeKey"`
	AlertKey        string        `yaml:"alertKey"`
	PairingAttempts int           `yaml:"pairingAttempts"`
	PairingBackoff  time.Duration `yaml:"pairingBackoff"`
	LayoutPath      string        `yaml:"layoutPath"`
}

// PlatformConfig describes the simulated platform capabilities.
type PlatformConfig struct {
	ColorScheme      string         `yaml:"colorScheme"`
	Bluetooth        bool           `yaml:"bluetooth"`
	Devices          []DeviceConfig `yaml:"devices"`
	SimulatedDevices int            `yaml:"simulatedDevices"`
}

// DeviceConfig is a vehicle advertised to the device chooser.
type DeviceConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// StorageConfig selects the preference backend.
type StorageConfig struct {
	Prefix   string         `yaml:"prefix"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// RedisConfig contains connection information for preference storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// SnapshotConfig controls archiving of the latest map frame.
type SnapshotConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// EventsConfig controls the notification event stream.
type EventsConfig struct {
	Kafka KafkaConfig `yaml:"kafka"`
}

// KafkaConfig holds producer settings.
type KafkaConfig struct {
	Enabled bool     `yaml:"enabled"`
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("DASHBOARD_TRAFFIC_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Dashboard.TrafficInterval = parsed
		}
	}
	if v := os.Getenv("DASHBOARD_MAP_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Dashboard.MapInterval = parsed
		}
	}
	if v := os.Getenv("DASHBOARD_LOCALE"); v != "" {
		cfg.Dashboard.Locale = v
	}
	if v := os.Getenv("DASHBOARD_PAIRING_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Dashboard.PairingAttempts = parsed
		}
	}
	if v := os.Getenv("DASHBOARD_LAYOUT_PATH"); v != "" {
		cfg.Dashboard.LayoutPath = v
	}
	if v := os.Getenv("PLATFORM_COLOR_SCHEME"); v != "" {
		cfg.Platform.ColorScheme = strings.ToLower(v)
	}
	if v := os.Getenv("PLATFORM_BLUETOOTH"); v != "" {
		cfg.Platform.Bluetooth = parseBool(v)
	}
	if v := os.Getenv("PLATFORM_SIMULATED_DEVICES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Platform.SimulatedDevices = parsed
		}
	}
	if v := os.Getenv("STORAGE_REDIS_ENABLED"); v != "" {
		cfg.Storage.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("STORAGE_REDIS_ADDR"); v != "" {
		cfg.Storage.Redis.Addr = v
	}
	if v := os.Getenv("STORAGE_POSTGRES_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("STORAGE_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Storage.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("SNAPSHOTS_ENABLED"); v != "" {
		cfg.Snapshots.Enabled = parseBool(v)
	}
	if v := os.Getenv("SNAPSHOTS_ENDPOINT"); v != "" {
		cfg.Snapshots.Endpoint = v
	}
	if v := os.Getenv("SNAPSHOTS_ACCESS_KEY"); v != "" {
		cfg.Snapshots.AccessKey = v
	}
	if v := os.Getenv("SNAPSHOTS_SECRET_KEY"); v != "" {
		cfg.Snapshots.SecretKey = v
	}
	if v := os.Getenv("SNAPSHOTS_BUCKET"); v != "" {
		cfg.Snapshots.Bucket = v
	}
	if v := os.Getenv("EVENTS_KAFKA_ENABLED"); v != "" {
		cfg.Events.Kafka.Enabled = parseBool(v)
	}
	if v := os.Getenv("EVENTS_KAFKA_BROKERS"); v != "" {
		cfg.Events.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("EVENTS_KAFKA_TOPIC"); v != "" {
		cfg.Events.Kafka.Topic = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Dashboard: DashboardConfig{
			TrafficInterval: 5 * time.Second,
			FadeDelay:       500 * time.Millisecond,
			MapInterval:     3 * time.Second,
			CanvasWidth:     500,
			CanvasHeight:    300,
			GridSpacing:     100,
			GridOffset:      50,
			RoadWidth:       5,
			PointCount:      10,
			PointRadius:     8,
			Locale:          "en-US",
			ThemeKey:        "theme",
			AlertKey:        "customAlert",
			PairingAttempts: 1,
			PairingBackoff:  time.Second,
		},
		Platform: PlatformConfig{
			ColorScheme:      "light",
			Bluetooth:        true,
			SimulatedDevices: 3,
		},
		Storage: StorageConfig{
			Prefix: "trafficai:pref",
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
		},
		Snapshots: SnapshotConfig{
			Bucket: "trafficai",
			Key:    "map/latest.png",
		},
		Events: EventsConfig{
			Kafka: KafkaConfig{
				Brokers: []string{"localhost:9092"},
				Topic:   "trafficai.notifications",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Dashboard.TrafficInterval <= 0 {
		return errors.New("dashboard.trafficInterval must be positive")
	}
	if c.Dashboard.MapInterval <= 0 {
		return errors.New("dashboard.mapInterval must be positive")
	}
	if c.Dashboard.FadeDelay < 0 {
		return errors.New("dashboard.fadeDelay cannot be negative")
	}
	if c.Dashboard.CanvasWidth <= 0 || c.Dashboard.CanvasHeight <= 0 {
		return errors.New("dashboard canvas size must be positive")
	}
	if c.Dashboard.PairingAttempts <= 0 || c.Dashboard.PairingAttempts > maxPairingAttempts {
		return fmt.Errorf("dashboard.pairingAttempts must be between 1 and %d", maxPairingAttempts)
	}
	if strings.TrimSpace(c.Dashboard.Locale) == "" {
		return errors.New("dashboard.locale cannot be empty")
	}
	switch c.Platform.ColorScheme {
	case "light", "dark":
	default:
		return fmt.Errorf("platform.colorScheme must be light or dark, got %q", c.Platform.ColorScheme)
	}
	if c.Platform.SimulatedDevices < 0 {
		return errors.New("platform.simulatedDevices cannot be negative")
	}
	if c.Storage.Redis.Enabled && strings.TrimSpace(c.Storage.Redis.Addr) == "" {
		return errors.New("storage.redis.addr cannot be empty when redis storage is enabled")
	}
	if c.Snapshots.Enabled {
		if strings.TrimSpace(c.Snapshots.Endpoint) == "" {
			return errors.New("snapshots.endpoint cannot be empty when snapshots are enabled")
		}
		if strings.TrimSpace(c.Snapshots.Bucket) == "" {
			return errors.New("snapshots.bucket cannot be empty when snapshots are enabled")
		}
	}
	if strings.TrimSpace(c.Snapshots.Key) == "" {
		return errors.New("snapshots.key cannot be empty")
	}
	if c.Events.Kafka.Enabled {
		if len(c.Events.Kafka.Brokers) == 0 {
			return errors.New("events.kafka.brokers cannot be empty when kafka is enabled")
		}
		if strings.TrimSpace(c.Events.Kafka.Topic) == "" {
			return errors.New("events.kafka.topic cannot be empty when kafka is enabled")
		}
	}
	return nil
}
