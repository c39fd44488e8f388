// Package config provides configuration management for the blend service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Engine   EngineConfig
	Catalog  CatalogConfig
	Session  SessionConfig
	Gateway  GatewayConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// EngineConfig holds calculation defaults.
type EngineConfig struct {
	Slots       int
	ReferencePH float64
	PHMode      string
	MinDiluent  float64
	VolumeML    float64
}

// CatalogConfig holds the catalog source settings.
type CatalogConfig struct {
	File          string
	Watch         bool
	WatchDebounce time.Duration
	// Seed copies the file catalog into MongoDB when the collection is empty.
	Seed bool
}

// SessionConfig holds the in-memory session store settings.
type SessionConfig struct {
	TTL      time.Duration
	Capacity int
	Shards   int
}

// GatewayConfig holds the estimation gateway settings. An empty URL disables it.
type GatewayConfig struct {
	URL           string
	APIKey        string
	Timeout       time.Duration
	RatePerMinute int
	Burst         int
	CacheSize     int
	CacheTTL      time.Duration
}

// RedisConfig holds the shared estimate cache settings.
type RedisConfig struct {
	Enabled  bool
	Addrs    []string
	Password string
	DB       int
	PoolSize int
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled   bool
	APIKeys   map[string]bool
	JWTSecret string
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Engine: EngineConfig{
			Slots:       getEnvInt("FORMULATION_SLOTS", 20),
			ReferencePH: getEnvFloat("REFERENCE_PH", 3.5),
			PHMode:      getEnv("PH_MODE", "ion"),
			MinDiluent:  getEnvFloat("MIN_DILUENT_PERCENT", 50),
			VolumeML:    getEnvFloat("DEFAULT_VOLUME_ML", 500),
		},
		Catalog: CatalogConfig{
			File:          getEnv("CATALOG_FILE", "data/catalog.json"),
			Watch:         getEnvBool("CATALOG_WATCH", true),
			WatchDebounce: getEnvDuration("CATALOG_WATCH_DEBOUNCE", 250*time.Millisecond),
			Seed:          getEnvBool("CATALOG_SEED", true),
		},
		Session: SessionConfig{
			TTL:      getEnvDuration("SESSION_TTL", 2*time.Hour),
			Capacity: getEnvInt("SESSION_CAPACITY", 10000),
			Shards:   getEnvInt("SESSION_SHARDS", 16),
		},
		Gateway: GatewayConfig{
			URL:           getEnv("GATEWAY_URL", ""),
			APIKey:        getEnv("GATEWAY_API_KEY", ""),
			Timeout:       getEnvDuration("GATEWAY_TIMEOUT", 30*time.Second),
			RatePerMinute: getEnvInt("GATEWAY_RATE_PER_MINUTE", 20),
			Burst:         getEnvInt("GATEWAY_BURST", 2),
			CacheSize:     getEnvInt("GATEWAY_CACHE_SIZE", 1000),
			CacheTTL:      getEnvDuration("GATEWAY_CACHE_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addrs:    parseList(getEnv("REDIS_ADDRS", "localhost:6379")),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
		},
		Auth: AuthConfig{
			Enabled:   getEnvBool("AUTH_ENABLED", false),
			APIKeys:   parseAPIKeys(os.Getenv("API_KEYS")),
			JWTSecret: getEnv("JWT_SECRET_KEY", ""),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "blend_service"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func parseAPIKeys(s string) map[string]bool {
	keys := parseList(s)
	if keys == nil {
		return nil
	}
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		result[k] = true
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	return append(defaults, parseList(s)...)
}
