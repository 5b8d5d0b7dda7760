package configs

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	ServerPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	DatasetPath string

	MediaRoot      string
	MediaURL       string
	MaxUploadBytes int64

	TutorProvider   string
	TutorModel      string
	TutorTimeout    time.Duration
	OllamaURL       string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	GeminiAPIKey    string
	GeminiBaseURL   string

	EmbedProvider  string
	EmbedModel     string
	OllamaEmbedURL string

	ConceptCollection string
	ConceptTopK       int
	IngestWorkers     int

	DevFallbackUser bool
	CORSOrigins     []string
}

// LoadConfig reads an optional .env file (or the given files) and then the
// process environment. Missing variables fall back to development defaults.
func LoadConfig(envFiles ...string) *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load(envFiles...)

	return &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8001"),

		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "codetrek"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "codetrek"),
		DBPath:     getEnv("DB_PATH", "codetrek.db"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  getEnvAsDuration("TOKEN_TTL", 14*24*time.Hour),

		DatasetPath: getEnv("DATASET_PATH", "data/leetcode_dataset - lc.csv"),

		MediaRoot:      getEnv("MEDIA_ROOT", "media"),
		MediaURL:       getEnv("MEDIA_URL", "/media/"),
		MaxUploadBytes: int64(getEnvAsInt("MAX_UPLOAD_MB", 10)) << 20,

		TutorProvider:   getEnv("TUTOR_PROVIDER", "ollama"),
		TutorModel:      getEnv("MODEL_NAME", "llama3"),
		TutorTimeout:    getEnvAsDuration("TUTOR_TIMEOUT", 180*time.Second),
		OllamaURL:       getEnv("OLLAMA_API_URL", "http://localhost:11434/api/generate"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", ""),

		EmbedProvider:  getEnv("EMBED_PROVIDER", "ollama"),
		EmbedModel:     getEnv("EMBED_MODEL", "nomic-embed-text"),
		OllamaEmbedURL: getEnv("OLLAMA_EMBED_URL", "http://localhost:11434/api/embeddings"),

		ConceptCollection: getEnv("CONCEPT_COLLECTION", "cp_concepts"),
		ConceptTopK:       getEnvAsInt("CONCEPT_TOP_K", 1),
		IngestWorkers:     getEnvAsInt("INGEST_WORKERS", 4),

		DevFallbackUser: getEnvAsBool("DEV_FALLBACK_USER", false),
		CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	if c.ServerPort == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == "dev-secret-change-me") {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}
	if c.IsProduction() && c.DevFallbackUser {
		errs = append(errs, errors.New("DEV_FALLBACK_USER cannot be enabled in production"))
	}
	if c.TutorTimeout <= 0 {
		errs = append(errs, errors.New("TUTOR_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
