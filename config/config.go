package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	DBUrl       string
	FrontendURL string
	// Comma separated list of extra origins allowed by CORS
	CORSAllowedOrigins []string
	// Session
	JWTSecret    string
	TokenTTL     time.Duration
	CookieTTL    time.Duration
	CookieSecure bool
	OTPTTL       time.Duration
	BcryptCost   int
	// MongoDB (social feed)
	MongoURI string
	MongoDB  string
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitAuthThreshold   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int
	// Resume storage (S3 compatible)
	S3Provider        string
	S3Region          string
	S3Bucket          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	ResumeMaxBytes    int64
	UploadsPerMinute  int
	UploadsPerDay     int
	// Optional clamd address for resume scanning
	ClamAVAddress string
	ClamAVTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	// Only effective locally; in production the file is usually absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DBUrl:              getEnv("DATABASE_URL", ""),
		FrontendURL:        strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		// Session
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenTTL:     getEnvDuration("TOKEN_TTL", 2*time.Hour),
		CookieTTL:    getEnvDuration("COOKIE_TTL", 72*time.Hour),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
		OTPTTL:       getEnvDuration("OTP_TTL", 5*time.Minute),
		BcryptCost:   getEnvInt("BCRYPT_COST", 10),
		// MongoDB
		MongoURI: getEnv("MONGO_URI", ""),
		MongoDB:  getEnv("MONGO_DB", "jobboard"),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 5),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
		// Resume storage
		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3Region:          getEnv("S3_REGION", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		ResumeMaxBytes:    int64(getEnvInt("RESUME_MAX_BYTES", 5<<20)),
		UploadsPerMinute:  getEnvInt("UPLOADS_PER_MINUTE", 10),
		UploadsPerDay:     getEnvInt("UPLOADS_PER_DAY", 50),
		ClamAVAddress:     getEnv("CLAMAV_ADDRESS", ""),
		ClamAVTimeout:     getEnvDuration("CLAMAV_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.MongoURI == "" {
		log.Println("WARNING: MONGO_URI not configured. Social feed routes will not be mounted.")
	}

	return cfg, nil
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	if c.DBUrl == "" {
		return errors.New("config: DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 || c.OTPTTL <= 0 {
		return errors.New("config: TOKEN_TTL and OTP_TTL must be positive")
	}
	return nil
}

// FeedEnabled reports whether the social feed store is configured.
func (c *Config) FeedEnabled() bool {
	return c.MongoURI != ""
}

// ResumeStorageEnabled reports whether resume uploads can be stored.
func (c *Config) ResumeStorageEnabled() bool {
	return c.S3Bucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

// SMTPEnabled reports whether OTP codes can be mailed.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings such as "2h" or "90s"
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
