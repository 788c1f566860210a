package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool

	// LocalStoreDir selects a directory-backed object store instead of S3.
	LocalStoreDir string

	IIIFServerURL   string
	IIIFImageFormat string
	IIIFAttribution string
	IIIFRights      string

	// SiteDomain is the domain template of new sites; %s is replaced by the site id.
	SiteDomain string

	DBPath          string
	APIPort         string
	LogLevel        slog.Level
	LogFormat       string
	ListingCacheTTL time.Duration
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or one of its parents, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		S3Endpoint:      getEnv("S3_ENDPOINT", "s3.amazonaws.com"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", ""),
		IIIFServerURL:   getEnv("IIIF_SERVER_URL", ""),
		IIIFImageFormat: getEnv("IIIF_IMAGE_FORMAT", ".jpg"),
		IIIFAttribution: getEnv("IIIF_ATTRIBUTION", ""),
		IIIFRights:      getEnv("IIIF_RIGHTS", ""),
		SiteDomain:      getEnv("SITE_DOMAIN", "%s.sites.localhost"),
		DBPath:          getEnv("DB_PATH", "./data/microarchive.db"),
		APIPort:         getEnv("API_PORT", "9000"),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	useSSL, err := strconv.ParseBool(getEnv("S3_USE_SSL", "true"))
	if err != nil {
		return nil, fmt.Errorf("S3_USE_SSL must be a boolean: %w", err)
	}
	cfg.S3UseSSL = useSSL

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	ttl, err := time.ParseDuration(getEnv("LISTING_CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("LISTING_CACHE_TTL must be a duration: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("LISTING_CACHE_TTL must be greater than 0")
	}
	cfg.ListingCacheTTL = ttl

	if !strings.HasPrefix(cfg.IIIFImageFormat, ".") {
		cfg.IIIFImageFormat = "." + cfg.IIIFImageFormat
	}

	// Validate required fields
	if cfg.IIIFServerURL == "" {
		return nil, fmt.Errorf("IIIF_SERVER_URL is required")
	}
	if cfg.S3Bucket == "" && cfg.LocalStoreDir == "" {
		return nil, fmt.Errorf("S3_BUCKET is required unless LOCAL_STORE_DIR is set")
	}
	if !strings.Contains(cfg.SiteDomain, "%s") {
		return nil, fmt.Errorf("SITE_DOMAIN must contain %%s, got %q", cfg.SiteDomain)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
