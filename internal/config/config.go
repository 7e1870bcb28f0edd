package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "careerai/internal/errors"
)

const (
	APIKeyEnv       = "OPENROUTER_API_KEY"
	GeminiAPIKeyEnv = "GEMINI_API_KEY"

	DefaultBaseURL  = "https://openrouter.ai/api/v1"
	DefaultModel    = "minimax/minimax-m2:free"
	DefaultATSModel = "nvidia/nemotron-nano-12b-v2-vl:free"
)

type Config struct {
	Port           string
	Provider       string
	BaseURL        string
	Model          string
	ATSModel       string
	UploadDir      string
	MaxUploadBytes int64
	AllowedOrigins []string
	LogLevel       string
	HTTPTimeout    time.Duration

	DatabaseURL    string
	ValkeyURL      string
	ValkeyPassword string
	RedisURL       string
	ChatHistoryTTL time.Duration

	S3EndpointURL string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string
	S3Bucket      string
}

// Load reads an optional .env file and then the process environment.
// Credentials are not part of Config, see LoadCredential.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not read .env file", "error", err)
	}

	return &Config{
		Port:           getEnv("PORT", "5000"),
		Provider:       strings.ToLower(getEnv("LLM_PROVIDER", "openrouter")),
		BaseURL:        getEnv("OPENROUTER_BASE_URL", DefaultBaseURL),
		Model:          getEnv("LLM_MODEL", DefaultModel),
		ATSModel:       getEnv("ATS_MODEL", DefaultATSModel),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 10<<20),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		HTTPTimeout:    getEnvAsDuration("HTTP_TIMEOUT", 0),

		DatabaseURL:    os.Getenv("DATABASE_URL"),
		ValkeyURL:      os.Getenv("VALKEY_URL"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		RedisURL:       os.Getenv("REDIS_URL"),
		ChatHistoryTTL: getEnvAsDuration("CHAT_HISTORY_TTL", 24*time.Hour),

		S3EndpointURL: os.Getenv("S3_ENDPOINT_URL"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:   os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:   os.Getenv("S3_SECRET_KEY"),
		S3Bucket:      os.Getenv("S3_BUCKET_NAME"),
	}
}

// LoadCredential returns the value of the named environment variable.
// An unset or blank variable is a MissingCredential failure.
func LoadCredential(name string) (string, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return "", apperrors.NewMissingCredential(name)
	}
	return value, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
