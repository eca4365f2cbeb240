package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// App holds runtime configuration derived from env vars.
type App struct {
	DatabaseURL        string
	KafkaBrokers       string
	KafkaEventsTopic   string
	KafkaActionsTopic  string
	KafkaConsumerGroup string
	APIPort            string
	Environment        string
	LogLevel           string
	LogEncoding        string // empty keeps the environment default
	CORSOrigins        []string
	SchedulerTick      time.Duration
	ApplyMigrations    bool
}

// FromEnv loads the application configuration from environment variables.
func FromEnv() App {
	return App{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		KafkaBrokers:       getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaEventsTopic:   getEnv("KAFKA_EVENTS_TOPIC", "business-events"),
		KafkaActionsTopic:  getEnv("KAFKA_ACTIONS_TOPIC", "workflow-actions"),
		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "workflow-dispatcher"),
		APIPort:            getEnv("API_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "production"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogEncoding:        os.Getenv("LOG_ENCODING"),
		CORSOrigins:        getCORSOrigins(),
		SchedulerTick:      getDuration("SCHEDULER_TICK", 5*time.Second),
		ApplyMigrations:    getBool("APPLY_MIGRATIONS", false),
	}
}

// Brokers splits KafkaBrokers into a list of addresses.
func (a App) Brokers() []string {
	return splitList(a.KafkaBrokers)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

func getCORSOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	return splitList(raw)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
