package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// API Configuration
	APIPort string
	APIHost string

	// CORS
	CORSAllowedOrigins []string

	// Outbound HTTP
	HTTPClientTimeout time.Duration

	// External APIs
	WooCommerce WooCommerceConfig
	OpenAI      OpenAIConfig

	// Kafka
	Kafka KafkaConfig

	// Environment
	Env      string
	LogLevel string
}

// WooCommerceConfig holds the catalog endpoint and its static Basic-Auth pair.
type WooCommerceConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	// RateLimit caps outbound requests per second; 0 disables pacing.
	RateLimit float64
	Timeout   time.Duration
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

type KafkaConfig struct {
	Brokers   []string
	BulkTopic string
	GroupID   string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	timeout := getEnvAsDuration("HTTP_CLIENT_TIMEOUT", 30*time.Second)

	return &Config{
		APIPort:            getEnv("API_PORT", "8080"),
		APIHost:            getEnv("API_HOST", "0.0.0.0"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		HTTPClientTimeout:  timeout,
		WooCommerce: WooCommerceConfig{
			BaseURL:        strings.TrimSuffix(getEnv("WOOCOMMERCE_BASE_URL", "http://localhost:8000/wp-json/wc/v3"), "/"),
			ConsumerKey:    getEnv("WOOCOMMERCE_CONSUMER_KEY", ""),
			ConsumerSecret: getEnv("WOOCOMMERCE_CONSUMER_SECRET", ""),
			RateLimit:      getEnvAsFloat("WOOCOMMERCE_RATE_LIMIT", 0),
			Timeout:        timeout,
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     strings.TrimSuffix(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4"),
			Temperature: getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 1500),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:   getEnvAsList("KAFKA_BROKERS", nil),
			BulkTopic: getEnv("KAFKA_BULK_TOPIC", "product-bulk-jobs"),
			GroupID:   getEnv("KAFKA_GROUP_ID", "productapi-worker"),
		},
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvAsList splits a comma separated value, dropping empty items.
func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
