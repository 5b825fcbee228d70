package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=ecofeast port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigins string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	WeatherBaseURL    string
	WeatherDefaultLat float64
	WeatherDefaultLon float64
	WeatherCacheTTL   time.Duration

	RedisURL     string // empty: in-process cache
	SeedDemoData bool

	LogLevel  string
	LogFormat string // json | console

	// Warnings collected while loading; main logs them once the logger exists.
	Warnings []string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional outside of local development
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "4000")
	v.SetDefault("DATABASE_DSN", defaultDSN)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	v.SetDefault("WEATHER_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("WEATHER_DEFAULT_LAT", 28.6139)
	v.SetDefault("WEATHER_DEFAULT_LON", 77.2090)
	v.SetDefault("WEATHER_CACHE_TTL", "30m")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTPPort:          v.GetString("HTTP_PORT"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTTTL:            v.GetDuration("JWT_TTL"),
		CORSOrigins:       v.GetString("CORS_ALLOWED_ORIGINS"),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		GeminiBaseURL:     v.GetString("GEMINI_BASE_URL"),
		WeatherBaseURL:    v.GetString("WEATHER_BASE_URL"),
		WeatherDefaultLat: v.GetFloat64("WEATHER_DEFAULT_LAT"),
		WeatherDefaultLon: v.GetFloat64("WEATHER_DEFAULT_LON"),
		WeatherCacheTTL:   v.GetDuration("WEATHER_CACHE_TTL"),
		RedisURL:          v.GetString("REDIS_URL"),
		SeedDemoData:      v.GetBool("SEED_DEMO_DATA"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(cfg.JWTSecret))
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWTTTL)
	}

	if cfg.DatabaseDSN == defaultDSN {
		cfg.Warnings = append(cfg.Warnings, "DATABASE_DSN uses the local default; set it for production")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		cfg.Warnings = append(cfg.Warnings, "CORS_ALLOWED_ORIGINS uses the local default; set it for production")
	}
	if cfg.GeminiAPIKey == "" {
		cfg.Warnings = append(cfg.Warnings, "GEMINI_API_KEY is not set; forecast and chat will report a configuration error")
	}

	return cfg, nil
}
