package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenExpiryDuration time.Duration

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendBaseURL    string
	CORSAllowedOrigins []string

	// Redis is optional. An empty URL disables the review lock and the unread-count cache.
	RedisURL            string
	ReviewLockTTL       time.Duration
	UnreadCountCacheTTL time.Duration

	// Rate limits in ulule/limiter format, e.g. "5-M".
	AuthRateLimit string
	APIRateLimit  string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "cashbook-backend")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "postmessage")
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REVIEW_LOCK_TTL", "15s")
	v.SetDefault("UNREAD_COUNT_CACHE_TTL", "5m")
	v.SetDefault("AUTH_RATE_LIMIT", "5-M")
	v.SetDefault("API_RATE_LIMIT", "300-M")
	v.SetDefault("POSTHOG_API_KEY", "")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:    v.GetString("FRONTEND_BASE_URL"),
		RedisURL:           v.GetString("REDIS_URL"),
		AuthRateLimit:      v.GetString("AUTH_RATE_LIMIT"),
		APIRateLimit:       v.GetString("API_RATE_LIMIT"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set", slog.String("default", cfg.Port))
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "cashbook-backend"
	}

	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.RefreshTokenExpiryDuration = durationOr(v, "REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.ReviewLockTTL = durationOr(v, "REVIEW_LOCK_TTL", 15*time.Second)
	cfg.UnreadCountCacheTTL = durationOr(v, "UNREAD_COUNT_CACHE_TTL", 5*time.Minute)

	cfg.CORSAllowedOrigins = []string{cfg.FrontendBaseURL}
	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" && origin != cfg.FrontendBaseURL {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	// Log warnings for missing critical OAuth ENV variables
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" {
		slog.Warn("GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set. Google sign-in will not function.")
	}
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set. Review locks and unread-count caching are disabled.")
	}

	return cfg
}

// durationOr parses key as a Go duration ("60m", "1h"), falling back to def when unset or invalid.
func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			slog.Warn("Invalid duration, using default", slog.String("key", key), slog.String("value", raw), slog.String("default", def.String()))
		}
		return def
	}
	return d
}
