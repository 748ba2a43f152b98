package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Config holds all runtime settings, read from the environment
type Config struct {
	Env            string
	Port           string
	AllowedOrigins []string

	LLMProvider  string
	GroqAPIKey   string
	GroqBaseURL  string
	GroqModel    string
	GeminiAPIKey string
	GeminiModel  string

	StorageDriver string
	DatabaseURL   string
	SQLitePath    string
	SeedFile      string

	SearchTimeout    time.Duration
	InterpretTimeout time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
}

// Load reads .env.local and .env (when present) and then the environment
func Load() (*Config, error) {
	godotenv.Load(".env.local")
	godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	var errs []error
	duration := func(key string, def time.Duration) time.Duration {
		v := get(key, "")
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return def
		}
		return d
	}

	cfg := &Config{
		Env:           get("ENV", "development"),
		Port:          get("PORT", "8080"),
		LLMProvider:   strings.ToLower(get("LLM_PROVIDER", ProviderGroq)),
		GroqAPIKey:    get("GROQ_API_KEY", ""),
		GroqBaseURL:   get("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:     get("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GeminiAPIKey:  get("GEMINI_API_KEY", ""),
		GeminiModel:   get("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		StorageDriver: strings.ToLower(get("STORAGE_DRIVER", StorageMemory)),
		DatabaseURL:   get("DATABASE_URL", ""),
		SQLitePath:    get("SQLITE_PATH", "data/books.db"),
		SeedFile:      get("SEED_FILE", "data/books.json"),

		SearchTimeout:    duration("SEARCH_TIMEOUT", 30*time.Second),
		InterpretTimeout: duration("LLM_TIMEOUT", 15*time.Second),
		RateLimitBurst:   5,
	}

	if origins := get("ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if v := get("RATE_LIMIT_RPS", ""); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS: %w", err))
		}
		cfg.RateLimitRPS = rps
	}
	if v := get("RATE_LIMIT_BURST", ""); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST: %w", err))
		}
		cfg.RateLimitBurst = burst
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is consistent
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("config: unknown LLM_PROVIDER %q", c.LLMProvider)
	}
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required for postgres storage")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.SearchTimeout <= 0 || c.InterpretTimeout <= 0 {
		return errors.New("config: timeouts must be positive")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return errors.New("config: RATE_LIMIT_BURST must be at least 1")
	}
	return nil
}

// IsProduction reports whether ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// LLMAPIKey returns the credential for the selected provider
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.GroqAPIKey
}

// LLMAPIKeyName names the environment variable holding the selected credential
func (c *Config) LLMAPIKeyName() string {
	if c.LLMProvider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "GROQ_API_KEY"
}
