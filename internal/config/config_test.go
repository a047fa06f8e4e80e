package config

import (
	"os"
	"testing"
	"time"
)

var configKeys = []string{
	"PORT", "ENV", "OPENAI_API_KEY", "OPENAI_MODEL",
	"GEOCODING_ENABLED", "GEOCODE_BIAS", "DEFAULT_LAT", "DEFAULT_LON",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
	"SESSION_SECRET", "SESSION_TTL",
}

// clearEnv unsets every config variable for the duration of the test.
// t.Setenv registers the restore, the Unsetenv makes LookupEnv miss.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if !cfg.GeocodingEnabled {
		t.Error("geocoding should default to on")
	}
	if cfg.GeocodeBias != "Halifax, North Carolina" {
		t.Errorf("GeocodeBias = %q", cfg.GeocodeBias)
	}
	if cfg.DefaultLat != 36.33 || cfg.DefaultLon != -77.59 {
		t.Errorf("default center = %v,%v", cfg.DefaultLat, cfg.DefaultLon)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GEOCODING_ENABLED", "false")
	t.Setenv("DEFAULT_LAT", "35.5")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SESSION_TTL", "45m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.GeocodingEnabled {
		t.Error("GEOCODING_ENABLED=false should disable geocoding")
	}
	if cfg.DefaultLat != 35.5 {
		t.Errorf("DefaultLat = %v", cfg.DefaultLat)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("RedisDB = %d", cfg.RedisDB)
	}
	if cfg.SessionTTL != 45*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
}

func TestLoadConfigIgnoresUnparseableValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEOCODING_ENABLED", "kinda")
	t.Setenv("DEFAULT_LAT", "north")
	t.Setenv("CACHE_TTL", "soon")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.GeocodingEnabled {
		t.Error("bad bool should fall back to the default")
	}
	if cfg.DefaultLat != 36.33 {
		t.Errorf("bad float should fall back to the default, got %v", cfg.DefaultLat)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("bad duration should fall back to the default, got %v", cfg.CacheTTL)
	}
}
