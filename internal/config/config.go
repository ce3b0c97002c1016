package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config gathers every environment-driven setting of the service.
type Config struct {
	Server    ServerConfig
	Logging   LoggingConfig
	Kafka     KafkaConfig
	Security  SecurityConfig
	Inventory InventoryConfig
	Hours     HoursConfig
	Seed      SeedConfig
}

type ServerConfig struct {
	Port string
}

type LoggingConfig struct {
	Directory string
	Level     string
	Format    string
	Service   string
}

type KafkaConfig struct {
	Brokers           []string
	GroupID           string
	FeedTopic         string
	VenueCreatedTopic string
	ReservationTopics []string
}

// Topics returns every topic the service consumes.
func (k KafkaConfig) Topics() []string {
	topics := make([]string, 0, len(k.ReservationTopics)+2)
	if k.FeedTopic != "" {
		topics = append(topics, k.FeedTopic)
	}
	if k.VenueCreatedTopic != "" {
		topics = append(topics, k.VenueCreatedTopic)
	}
	topics = append(topics, k.ReservationTopics...)
	return topics
}

type SecurityConfig struct {
	JWTSecret    string
	JWTPublicKey string
}

type InventoryConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type HoursConfig struct {
	// FeedOverride lets the provider feed overrule a stored closed row when
	// deciding open status. On by default to match the upstream platform.
	FeedOverride bool
}

type SeedConfig struct {
	Path string
}

// Load reads configuration from the environment, applying defaults suited to
// local runs.
func Load() (*Config, error) {
	inventoryTimeout, err := durationEnv("INVENTORY_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: stringEnv("PORT", "8080"),
		},
		Logging: LoggingConfig{
			Directory: stringEnv("LOG_DIR", "./logs"),
			Level:     stringEnv("LOG_LEVEL", "info"),
			Format:    stringEnv("LOG_FORMAT", "text"),
			Service:   stringEnv("SERVICE_NAME", "mesa-ya-hours"),
		},
		Kafka: KafkaConfig{
			Brokers:           listEnv("KAFKA_BROKERS", "KAFKA_BROKER"),
			GroupID:           stringEnv("KAFKA_GROUP_ID", "mesa-ya-hours"),
			FeedTopic:         stringEnv("HOURS_FEED_TOPIC", "hours.feed.snapshot"),
			VenueCreatedTopic: stringEnv("VENUE_CREATED_TOPIC", "venue.created"),
			ReservationTopics: splitList(stringEnv("RESERVATION_TOPICS", "reservation.created,reservation.updated,reservation.cancelled")),
		},
		Security: SecurityConfig{
			JWTSecret:    os.Getenv("JWT_SECRET"),
			JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
		},
		Inventory: InventoryConfig{
			BaseURL: stringEnv("INVENTORY_API_URL", "http://localhost:3000"),
			Token:   os.Getenv("INVENTORY_API_TOKEN"),
			Timeout: inventoryTimeout,
		},
		Hours: HoursConfig{
			FeedOverride: boolEnv("HOURS_FEED_OVERRIDE", true),
		},
		Seed: SeedConfig{
			Path: os.Getenv("SEED_FILE"),
		},
	}
	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}

// listEnv reads the first non-empty key as a comma separated list. The legacy
// singular KAFKA_BROKER spelling is still honoured.
func listEnv(keys ...string) []string {
	for _, key := range keys {
		if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
			return splitList(raw)
		}
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
