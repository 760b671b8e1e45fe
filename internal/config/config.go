package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	ServiceName string
	// Auth Configuration (optional - protects write routes)
	AuthEnabled bool
	JWTSecret   string
	AuthUsers   map[string]string
	// Idempotency Configuration
	IdempotencyTTL int // seconds
	// Redis Configuration (optional - shared request ID store)
	UseRedis      bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	// Kafka Configuration (optional - catalog change feed)
	UseKafka             bool
	KafkaBrokers         []string
	KafkaTopicItems      string
	KafkaTopicQuantities string
	KafkaClientID        string
	KafkaAcks            string
	KafkaRetries         int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		ServiceName: getEnv("SERVICE_NAME", "catalog-service"),
		// Auth Configuration
		AuthEnabled: getEnvAsBool("AUTH_ENABLED", false),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production-min-32-chars"),
		AuthUsers:   parseUsers(getEnv("AUTH_USERS", "admin:admin123")),
		// Idempotency Configuration
		IdempotencyTTL: getEnvAsInt("IDEMPOTENCY_TTL", 300),
		// Redis Configuration
		UseRedis:      getEnvAsBool("USE_REDIS", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		// Kafka Configuration
		UseKafka:             getEnvAsBool("USE_KAFKA", false),
		KafkaBrokers:         splitList(getEnv("KAFKA_BROKERS", "localhost:9093")),
		KafkaTopicItems:      getEnv("KAFKA_TOPIC_ITEMS", "catalog.items"),
		KafkaTopicQuantities: getEnv("KAFKA_TOPIC_QUANTITIES", "catalog.quantities"),
		KafkaClientID:        getEnv("KAFKA_CLIENT_ID", "catalog-service"),
		KafkaAcks:            getEnv("KAFKA_ACKS", "all"),
		KafkaRetries:         getEnvAsInt("KAFKA_RETRIES", 3),
	}
}

// splitList parses a comma-separated value, dropping blanks
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseUsers reads "user:pass,user2:pass2"
func parseUsers(value string) map[string]string {
	users := make(map[string]string)
	for _, pair := range splitList(value) {
		name, password, ok := strings.Cut(pair, ":")
		if !ok || name == "" {
			continue
		}
		users[name] = password
	}
	return users
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
