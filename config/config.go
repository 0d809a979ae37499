package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string
	LogLevel    string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Recipe suggestions
	LLM                LLMConfig
	SuggestionCacheTTL time.Duration
	RecipeRateLimit    int

	// Product image storage
	S3BucketName string
	AWSRegion    string
}

// LLMConfig selects and tunes the text generation backend
type LLMConfig struct {
	Provider        string        `yaml:"provider"`
	APIKey          string        `yaml:"-"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	Temperature     float32       `yaml:"temperature"`
	MaxOutputTokens int32         `yaml:"max_output_tokens"`
	PromptTemplate  string        `yaml:"prompt_template"`
	Timeout         time.Duration `yaml:"timeout"`
}

const (
	ProviderGemini   = "gemini"
	ProviderDeepSeek = "deepseek"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development {
		// A missing .env is normal outside local checkouts.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerPort:  lookup("SERVER_PORT", "server_port", "8080"),
		ServerHost:  lookup("SERVER_HOST", "server_host", "0.0.0.0"),
		CORSOrigins: splitList(lookup("CORS_ORIGINS", "", "http://localhost:5173,http://frontend:5173")),
		LogLevel:    lookup("LOG_LEVEL", "", "info"),

		DBDriver:   lookup("DB_DRIVER", "", "postgres"),
		DBHost:     lookup("DB_HOST", "db_host", "localhost"),
		DBPort:     lookup("DB_PORT", "db_port", "5432"),
		DBUser:     lookup("DB_USER", "db_user", "postgres"),
		DBPassword: lookup("DB_PASSWORD", "db_password", ""),
		DBName:     lookup("DB_NAME", "db_name", "cartchef"),
		DBSSLMode:  lookup("DB_SSL_MODE", "db_ssl_mode", "disable"),
		SQLitePath: lookup("SQLITE_PATH", "", "cartchef.db"),

		RedisHost:     lookup("REDIS_HOST", "redis_host", ""),
		RedisPort:     lookup("REDIS_PORT", "redis_port", "6379"),
		RedisPassword: lookup("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:      lookup("REDIS_URL", "redis_url", ""),

		JWTSecret: lookup("JWT_SECRET", "jwt_secret", ""),

		S3BucketName: lookup("S3_BUCKET_NAME", "", ""),
		AWSRegion:    lookup("AWS_REGION", "", ""),
	}

	var err error
	if cfg.RedisDB, err = lookupInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RecipeRateLimit, err = lookupInt("RECIPE_RATE_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.SuggestionCacheTTL, err = lookupDuration("SUGGESTION_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	if cfg.LLM, err = loadLLMConfig(); err != nil {
		return nil, fmt.Errorf("failed to load LLM configuration: %w", err)
	}

	if env == Development && cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret"
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RedisEnabled reports whether a Redis endpoint has been configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// S3Enabled reports whether product images should be presigned from a bucket
func (c *Config) S3Enabled() bool {
	return c.S3BucketName != ""
}

func loadLLMConfig() (LLMConfig, error) {
	llm := LLMConfig{
		Provider:        strings.ToLower(lookup("LLM_PROVIDER", "", ProviderGemini)),
		Temperature:     0.7,
		MaxOutputTokens: 500,
		Timeout:         30 * time.Second,
	}

	if path := lookup("LLM_CONFIG_FILE", "", ""); path != "" {
		if err := llm.mergeFile(path); err != nil {
			return llm, err
		}
	}

	switch llm.Provider {
	case ProviderGemini:
		llm.APIKey = lookup("GEMINI_API_KEY", "gemini_api_key", "")
		llm.Model = firstNonEmpty(lookup("GEMINI_MODEL", "", ""), llm.Model, "gemini-2.0-flash")
		llm.BaseURL = firstNonEmpty(lookup("GEMINI_BASE_URL", "", ""), llm.BaseURL)
	case ProviderDeepSeek:
		llm.APIKey = lookup("DEEPSEEK_API_KEY", "deepseek_api_key", "")
		if llm.APIKey == "" {
			if file := os.Getenv("DEEPSEEK_API_KEY_FILE"); file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return llm, fmt.Errorf("failed to read API key file: %w", err)
				}
				llm.APIKey = strings.TrimSpace(string(data))
			}
		}
		llm.Model = firstNonEmpty(lookup("DEEPSEEK_MODEL", "", ""), llm.Model, "deepseek-chat")
		llm.BaseURL = firstNonEmpty(lookup("DEEPSEEK_API_URL", "", ""), llm.BaseURL,
			"https://api.deepseek.com/v1/chat/completions")
	default:
		return llm, fmt.Errorf("unknown LLM provider: %s", llm.Provider)
	}

	timeout, err := lookupDuration("LLM_TIMEOUT", llm.Timeout)
	if err != nil {
		return llm, err
	}
	llm.Timeout = timeout

	return llm, nil
}

// lookup resolves a value from the environment, then from a Docker secret, then the default
func lookup(envName, secretName, def string) string {
	if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
		return v
	}
	if secretName != "" {
		if v := readSecret(secretName); v != "" {
			return v
		}
	}
	return def
}

func lookupInt(envName string, def int) (int, error) {
	raw := os.Getenv(envName)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError{Field: envName, Message: "must be an integer"}
	}
	return n, nil
}

func lookupDuration(envName string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(envName)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, ValidationError{Field: envName, Message: "must be a duration such as 30s or 24h"}
	}
	return d, nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
