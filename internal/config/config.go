package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DatabaseURL     string   `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
	AuthSecret      string   `mapstructure:"AUTH_SECRET"`
	TokenTTLMinutes int      `mapstructure:"TOKEN_TTL_MINUTES"`
	ModelURL        string   `mapstructure:"MODEL_URL"`
	ModelTimeoutSec int      `mapstructure:"MODEL_TIMEOUT_SECONDS"`
	BlobBackend     string   `mapstructure:"BLOB_BACKEND"`
	UploadDir       string   `mapstructure:"UPLOAD_DIR"`
	S3Bucket        string   `mapstructure:"S3_BUCKET"`
	S3Region        string   `mapstructure:"S3_REGION"`
	S3Endpoint      string   `mapstructure:"S3_ENDPOINT"`
	S3AccessKey     string   `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey     string   `mapstructure:"S3_SECRET_KEY"`
	RequestTimeout  int      `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("TOKEN_TTL_MINUTES", 720)
	v.SetDefault("MODEL_TIMEOUT_SECONDS", 15)
	v.SetDefault("BLOB_BACKEND", "disk")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, key := range []string{
		"PORT", "ENV", "DATABASE_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"CORS_ORIGINS", "AUTH_SECRET", "TOKEN_TTL_MINUTES",
		"MODEL_URL", "MODEL_TIMEOUT_SECONDS",
		"BLOB_BACKEND", "UPLOAD_DIR",
		"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY",
		"REQUEST_TIMEOUT_SECONDS",
	} {
		v.BindEnv(key)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. AUTH_SECRET is
// always required because login tokens are signed with it; a short secret is
// rejected in production. The S3 backend needs a bucket and region.
func (c *Config) Validate() error {
	if c.AuthSecret == "" {
		return fmt.Errorf("AUTH_SECRET is required")
	}
	if c.IsProduction() && len(c.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be at least 32 bytes in production, got %d", len(c.AuthSecret))
	}

	switch c.BlobBackend {
	case "disk", "memory":
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when BLOB_BACKEND is \"s3\"")
		}
		if c.S3Region == "" {
			return fmt.Errorf("S3_REGION is required when BLOB_BACKEND is \"s3\"")
		}
	default:
		return fmt.Errorf("BLOB_BACKEND must be \"disk\", \"memory\", or \"s3\", got %q", c.BlobBackend)
	}

	if c.ModelURL == "" && c.IsProduction() {
		return fmt.Errorf("MODEL_URL is required in production")
	}

	return nil
}
