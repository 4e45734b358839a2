package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                 string        // Environment (dev, test, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8001)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	StoreDriver   string        // sqlite, postgres or mongo (default: sqlite)
	DatabaseFile  string        // SQLite database file (default: banco.db)
	PostgresURL   string        // pgx connection string, required for postgres
	MongoURI      string        // Mongo connection URI (default: mongodb://localhost:27017/mi-banco)
	DBName        string        // Mongo database name (default: mi-banco)
	DBPoolSize    int           // Max pool size for postgres and mongo (default: 10)
	DBConnTimeout time.Duration // Connect and first ping timeout (default: 10s)

	PepperFile string // File holding the password hashing pepper (default: pepper)

	AllowedOrigins     []string // CORS origins (default: http://localhost:4200)
	CompressionMinSize int      // Smallest response body that is gzipped (default: 1024)
	MetricsEnabled     bool     // Mount /metrics (default: true)

	TrustedProxies []string // CIDRs whose X-Forwarded-For is believed (default: none)

	RedisURL        string // Optional: shared rate limit counters; in-memory when empty
	RateLimitPrefix string // Redis key prefix (default: mibanco:rate_limit)

	RabbitMQURL    string // Optional: domain events; discarded when empty
	EventsExchange string // Topic exchange for domain events (default: banco.events)
}

// LoadConfig reads the environment, after loading .env when present.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8001),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		StoreDriver:   strings.ToLower(getEnvOrDefault("STORE_DRIVER", "sqlite")),
		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "banco.db"),
		PostgresURL:   os.Getenv("POSTGRES_URL"),
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017/mi-banco"),
		DBName:        getEnvOrDefault("DB_NAME", "mi-banco"),
		DBPoolSize:    getEnvIntOrDefault("DB_POOL_SIZE", 10),
		DBConnTimeout: getEnvDurationOrDefault("DB_CONNECTION_TIMEOUT", 10*time.Second),

		PepperFile: getEnvOrDefault("PEPPER_FILE", "pepper"),

		AllowedOrigins:     getEnvListOrDefault("ALLOWED_ORIGINS", []string{"http://localhost:4200"}),
		CompressionMinSize: getEnvIntOrDefault("COMPRESSION_MIN_SIZE", 1024),
		MetricsEnabled:     getEnvBoolOrDefault("METRICS_ENABLED", true),

		TrustedProxies: getEnvListOrDefault("TRUSTED_PROXIES", nil),

		RedisURL:        os.Getenv("REDIS_URL"),
		RateLimitPrefix: getEnvOrDefault("RATE_LIMIT_PREFIX", "mibanco:rate_limit"),

		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
		EventsExchange: getEnvOrDefault("EVENTS_EXCHANGE", "banco.events"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// "10s", "1m" or a bare number of seconds
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

// getEnvListOrDefault splits a comma separated value, dropping empty items.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
