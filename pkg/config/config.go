package config

import (
	"log"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	// External OAuth provider (admin "login with Google")
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Media storage (Supabase)
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	// HTTP caching for the public read API
	CacheMaxAge               int
	CacheStaleWhileRevalidate int
	CacheMetricsMaxAge        time.Duration

	// Cache warming: paths fetched against SelfBaseURL at startup
	SelfBaseURL      string
	WarmPopularPaths []string

	CORSAllowedOrigins []string
	FrontendBaseURL    string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Invalid values fall back to defaults with a warning; only a
// missing database URL is treated as fatal by the caller.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "insecure-dev-secret-change-me")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "portfolio-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_KEY", "")
	viper.SetDefault("SUPABASE_BUCKET", "media")
	viper.SetDefault("CACHE_MAX_AGE", 300)
	viper.SetDefault("CACHE_STALE_WHILE_REVALIDATE", 60)
	viper.SetDefault("CACHE_METRICS_MAX_AGE", "1h")
	viper.SetDefault("SELF_BASE_URL", "")
	viper.SetDefault("WARM_POPULAR_PATHS", "/api/journals,/api/tags,/api/categories,/api/projects")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "insecure-dev-secret-change-me" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", time.Hour)
	cfg.RefreshTokenExpiryDuration = durationOrDefault("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")

	cfg.SupabaseURL = viper.GetString("SUPABASE_URL")
	cfg.SupabaseKey = viper.GetString("SUPABASE_KEY")
	cfg.SupabaseBucket = viper.GetString("SUPABASE_BUCKET")

	cfg.CacheMaxAge = viper.GetInt("CACHE_MAX_AGE")
	cfg.CacheStaleWhileRevalidate = viper.GetInt("CACHE_STALE_WHILE_REVALIDATE")
	cfg.CacheMetricsMaxAge = durationOrDefault("CACHE_METRICS_MAX_AGE", time.Hour)

	cfg.SelfBaseURL = viper.GetString("SELF_BASE_URL")
	if cfg.SelfBaseURL == "" {
		cfg.SelfBaseURL = "http://localhost:" + cfg.Port
	}
	cfg.WarmPopularPaths = splitList(viper.GetString("WARM_POPULAR_PATHS"))
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	// The frontend must always be able to reach the read API.
	if cfg.FrontendBaseURL != "" && !slices.Contains(cfg.CORSAllowedOrigins, cfg.FrontendBaseURL) {
		cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, cfg.FrontendBaseURL)
	}

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s (%q). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
