package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "registrar/pkg/platform/strings"
)

// Config aggregates all runtime configuration so main stays lean and no
// package reads process-wide environment state on its own.
type Config struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Provider    ProviderConfig
	Translation TranslationConfig
}

// RedisConfig captures connection settings for the optional Redis cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// ProviderConfig captures settings for the external translation provider.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// TranslationConfig enumerates the translation engine knobs. It replaces
// process-wide language settings with an explicit object handed to
// constructors.
type TranslationConfig struct {
	SupportedLanguages   []string
	DefaultLanguage      string
	DetectionSampleCap   int
	FieldSizeCap         int
	TranslateConcurrency int
}

// FromEnv builds a Config from environment variables. Every value has a
// development-friendly default.
func FromEnv() Config {
	return Config{
		Addr:        envString("REGISTRAR_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     envDuration("REDIS_CACHE_TTL", 24*time.Hour),
		},
		Provider: ProviderConfig{
			BaseURL: envString("TRANSLATE_API_URL", "http://localhost:5000"),
			APIKey:  os.Getenv("TRANSLATE_API_KEY"),
			Timeout: envDuration("TRANSLATE_TIMEOUT", 5*time.Second),
		},
		Translation: TranslationConfig{
			SupportedLanguages:   envLanguages("REGISTRAR_LANGUAGES", []string{"en", "vi"}),
			DefaultLanguage:      envString("REGISTRAR_DEFAULT_LANGUAGE", "en"),
			DetectionSampleCap:   envInt("REGISTRAR_DETECTION_SAMPLE_CAP", 500),
			FieldSizeCap:         envInt("REGISTRAR_FIELD_SIZE_CAP", 5000),
			TranslateConcurrency: envInt("REGISTRAR_TRANSLATE_CONCURRENCY", 4),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envLanguages(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	langs := platformstrings.DedupeAndTrimLower(strings.Split(v, ","))
	if len(langs) == 0 {
		return fallback
	}
	return langs
}
