package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string
	Env  string

	OpenAIAPIKey string
	OpenAIModel  string

	GeocodingEnabled bool
	GeocodeBias      string
	DefaultLat       float64
	DefaultLon       float64

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	SessionSecret string
	SessionTTL    time.Duration
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Port: getEnvString("PORT", "8080"),
		Env:  getEnvString("ENV", "development"),

		OpenAIAPIKey: getEnvString("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnvString("OPENAI_MODEL", "gpt-4o-mini"),

		GeocodingEnabled: getEnvBool("GEOCODING_ENABLED", true),
		GeocodeBias:      getEnvString("GEOCODE_BIAS", "Halifax, North Carolina"),
		DefaultLat:       getEnvFloat("DEFAULT_LAT", 36.33),
		DefaultLon:       getEnvFloat("DEFAULT_LON", -77.59),

		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 24*time.Hour),

		SessionSecret: getEnvString("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 2*time.Hour),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
