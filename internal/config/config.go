package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	// Store
	StorePath string

	// OpenAI
	OpenAIAPIKey        string
	OpenAIModel         string
	OpenAIBaseURL       string
	OpenAITimeout       time.Duration
	OpenAIAllowFallback bool

	// Rate limiting
	RedisURL        string
	RateLimitPerMin int

	// Server
	APIPort string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		StorePath: getEnv("STORE_PATH", "data/store.json"),

		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-5-mini"),
		OpenAIBaseURL:       getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAITimeout:       time.Duration(getEnvInt("OPENAI_TIMEOUT_MS", 30000)) * time.Millisecond,
		OpenAIAllowFallback: getEnvBool("OPENAI_ALLOW_FALLBACK", false),

		RedisURL:        getEnv("REDIS_URL", ""),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 120),

		APIPort: getEnv("API_PORT", "9091"),
	}
}

func (c *Config) Validate(log *zap.Logger) {
	if c.OpenAIAPIKey == "" {
		if c.OpenAIAllowFallback {
			log.Warn("OPENAI_API_KEY is not set, every generation will use the rule-based fallback")
		} else {
			log.Warn("OPENAI_API_KEY is not set and fallback is disabled, generation requests will fail")
		}
	}
	if c.RedisURL == "" {
		log.Info("REDIS_URL is not set, rate limiting disabled")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}
