package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backend selectors.
const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Port           string
	Env            string // "development" or "production"
	Storage        string // mongo or memory
	MongoURI       string
	DBName         string
	JWTSecret      string
	JWTExpires     time.Duration
	AllowedOrigins []string
	RedisURL       string
	CacheTTL       time.Duration
	AdminUsername  string
	AdminEmail     string
	AdminPassword  string
	S3Bucket       string
	S3Region       string
	S3AccessKeyID  string
	S3SecretKey    string
	MaxUploadMB    int64
}

func Load() (*Config, error) {
	expires := 168 * time.Hour // 7 days
	if v := getEnv("JWT_EXPIRES_IN", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
		}
		expires = d
	}
	cacheTTL := 5 * time.Minute
	if v := getEnv("CACHE_TTL", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL: %w", err)
		}
		cacheTTL = d
	}
	maxMB := int64(10)
	if v := getEnv("MAX_UPLOAD_MB", ""); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxMB = n
		}
	}
	var origins []string
	for _, o := range strings.Split(getEnv("ALLOWED_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	storage := getEnv("STORAGE", StorageMongo)
	if storage != StorageMongo && storage != StorageMemory {
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StorageMongo, StorageMemory, storage)
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		Storage:        storage,
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("MONGODB_DB", "sada_news"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		JWTExpires:     expires,
		AllowedOrigins: origins,
		RedisURL:       getEnv("REDIS_URL", ""),
		CacheTTL:       cacheTTL,
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		S3Bucket:       getEnv("AWS_S3_BUCKET", ""),
		S3Region:       getEnv("AWS_REGION", "us-east-1"),
		S3AccessKeyID:  getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
		MaxUploadMB:    maxMB,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Production reports whether the server runs with production error
// suppression.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// Validate rejects configurations that cannot safely serve traffic.
func (c *Config) Validate() error {
	if c.Production() {
		if c.JWTSecret == "change-me-in-production" {
			return fmt.Errorf("JWT_SECRET must be set to a strong secret in production")
		}
		if c.Storage == StorageMemory {
			return fmt.Errorf("STORAGE=memory is for local development only")
		}
		if len(c.AllowedOrigins) == 0 {
			return fmt.Errorf("ALLOWED_ORIGINS must be set in production")
		}
	}
	return nil
}
