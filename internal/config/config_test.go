package config

import (
	"log/slog"
	"testing"
	"time"
)

var envVars = []string{
	"S3_ENDPOINT", "S3_REGION", "S3_BUCKET", "S3_PREFIX", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_USE_SSL",
	"LOCAL_STORE_DIR", "IIIF_SERVER_URL", "IIIF_IMAGE_FORMAT", "IIIF_ATTRIBUTION", "IIIF_RIGHTS",
	"SITE_DOMAIN", "DB_PATH", "API_PORT", "LOG_LEVEL", "LOG_FORMAT", "LISTING_CACHE_TTL",
}

// clearEnv blanks every variable Load reads for the duration of the test.
// Blank values count as unset, and t.Setenv restores the originals.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "valid config with bucket",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/iiif/3/")
				t.Setenv("S3_BUCKET", "scans")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.S3Bucket == "scans" &&
					cfg.IIIFServerURL == "https://iiif.example.org/iiif/3/"
			},
		},
		{
			name: "local store instead of bucket",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
				t.Setenv("LOCAL_STORE_DIR", t.TempDir())
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.LocalStoreDir != "" && cfg.S3Bucket == ""
			},
		},
		{
			name: "missing IIIF_SERVER_URL",
			setupEnv: func(t *testing.T) {
				t.Setenv("S3_BUCKET", "scans")
			},
			wantErr: true,
		},
		{
			name: "missing bucket and local store",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
			},
			wantErr: true,
		},
		{
			name: "invalid S3_USE_SSL",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
				t.Setenv("S3_BUCKET", "scans")
				t.Setenv("S3_USE_SSL", "maybe")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_LEVEL",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
				t.Setenv("S3_BUCKET", "scans")
				t.Setenv("LOG_LEVEL", "loud")
			},
			wantErr: true,
		},
		{
			name: "invalid LOG_FORMAT",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
				t.Setenv("S3_BUCKET", "scans")
				t.Setenv("LOG_FORMAT", "xml")
			},
			wantErr: true,
		},
		{
			name: "invalid LISTING_CACHE_TTL",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
				t.Setenv("S3_BUCKET", "scans")
				t.Setenv("LISTING_CACHE_TTL", "soon")
			},
			wantErr: true,
		},
		{
			name: "zero LISTING_CACHE_TTL",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
				t.Setenv("S3_BUCKET", "scans")
				t.Setenv("LISTING_CACHE_TTL", "0s")
			},
			wantErr: true,
		},
		{
			name: "domain template without placeholder",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
				t.Setenv("S3_BUCKET", "scans")
				t.Setenv("SITE_DOMAIN", "sites.example.org")
			},
			wantErr: true,
		},
		{
			name: "default values for optional fields",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
				t.Setenv("S3_BUCKET", "scans")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.S3Endpoint == "s3.amazonaws.com" &&
					cfg.S3Region == "us-east-1" &&
					cfg.S3UseSSL &&
					cfg.IIIFImageFormat == ".jpg" &&
					cfg.SiteDomain == "%s.sites.localhost" &&
					cfg.DBPath == "./data/microarchive.db" &&
					cfg.APIPort == "9000" &&
					cfg.LogLevel == slog.LevelInfo &&
					cfg.LogFormat == "text" &&
					cfg.ListingCacheTTL == time.Hour
			},
		},
		{
			name: "custom optional values",
			setupEnv: func(t *testing.T) {
				t.Setenv("IIIF_SERVER_URL", "https://iiif.example.org/")
				t.Setenv("S3_BUCKET", "scans")
				t.Setenv("S3_ENDPOINT", "localhost:9000")
				t.Setenv("S3_USE_SSL", "false")
				t.Setenv("IIIF_IMAGE_FORMAT", "tif")
				t.Setenv("SITE_DOMAIN", "%s.archives.example.org")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "JSON")
				t.Setenv("LISTING_CACHE_TTL", "5m")
			},
			checkConfig: func(cfg *Config) bool {
				return cfg.S3Endpoint == "localhost:9000" &&
					!cfg.S3UseSSL &&
					cfg.IIIFImageFormat == ".tif" &&
					cfg.SiteDomain == "%s.archives.example.org" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.ListingCacheTTL == 5*time.Minute
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			tt.setupEnv(t)

			cfg, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("MICROARCHIVE_TEST_VAR", "value")
	if got := getEnv("MICROARCHIVE_TEST_VAR", "default"); got != "value" {
		t.Errorf("getEnv() = %q, want value", got)
	}

	t.Setenv("MICROARCHIVE_TEST_VAR", "")
	if got := getEnv("MICROARCHIVE_TEST_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want default", got)
	}
}
