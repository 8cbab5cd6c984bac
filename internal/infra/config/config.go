// Package config provides application-wide configuration.
// Precedence: defaults, then an optional YAML file, then environment variables.
// All fields have safe defaults so the binary runs locally without any setup;
// a provider is enabled only when its API key is present in the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ProviderConfig holds the non-secret settings of one LLM provider.
// APIKey is only ever read from the environment.
type ProviderConfig struct {
	APIKey  string `yaml:"-"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Enabled reports whether the provider has credentials.
func (p ProviderConfig) Enabled() bool { return p.APIKey != "" }

// Config holds runtime configuration for the coach backend.
type Config struct {
	Host string `yaml:"host"` // COACH_HOST, default: "0.0.0.0"
	Port int    `yaml:"port"` // PORT, default: 8000

	Groq   ProviderConfig `yaml:"groq"`   // GROQ_API_KEY, GROQ_MODEL
	OpenAI ProviderConfig `yaml:"openai"` // OPENAI_API_KEY, OPENAI_MODEL
	Gemini ProviderConfig `yaml:"gemini"` // GEMINI_API_KEY, GEMINI_MODEL

	ProviderTimeout time.Duration `yaml:"provider_timeout"` // COACH_PROVIDER_TIMEOUT, default: 30s
	Temperature     float32       `yaml:"temperature"`
	MaxTokens       int           `yaml:"max_tokens"`

	LogLevel  string `yaml:"log_level"`  // LOG_LEVEL, default: "info"
	LogFormat string `yaml:"log_format"` // LOG_FORMAT, default: "json"

	AuditDBPath    string   `yaml:"audit_db_path"`   // COACH_AUDIT_DB, default: "" (disabled)
	AllowedOrigins []string `yaml:"allowed_origins"` // COACH_ALLOWED_ORIGINS, default: ["*"]
}

const (
	envKeyHost            = "COACH_HOST"
	envKeyPort            = "PORT"
	envKeyGroqAPIKey      = "GROQ_API_KEY"
	envKeyGroqModel       = "GROQ_MODEL"
	envKeyOpenAIAPIKey    = "OPENAI_API_KEY"
	envKeyOpenAIModel     = "OPENAI_MODEL"
	envKeyGeminiAPIKey    = "GEMINI_API_KEY"
	envKeyGeminiModel     = "GEMINI_MODEL"
	envKeyProviderTimeout = "COACH_PROVIDER_TIMEOUT"
	envKeyLogLevel        = "LOG_LEVEL"
	envKeyLogFormat       = "LOG_FORMAT"
	envKeyAuditDB         = "COACH_AUDIT_DB"
	envKeyAllowedOrigins  = "COACH_ALLOWED_ORIGINS"

	// EnvKeyConfigFile names the YAML file when --config is not given.
	EnvKeyConfigFile = "COACH_CONFIG"
)

// Default model identifiers and generation parameters.
const (
	DefaultGroqModel   = "llama-3.1-8b-instant"
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.5-flash"

	DefaultTemperature float32 = 0.7
	DefaultMaxTokens           = 800
)

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8000,
		Groq:            ProviderConfig{Model: DefaultGroqModel},
		OpenAI:          ProviderConfig{Model: DefaultOpenAIModel},
		Gemini:          ProviderConfig{Model: DefaultGeminiModel},
		ProviderTimeout: 30 * time.Second,
		Temperature:     DefaultTemperature,
		MaxTokens:       DefaultMaxTokens,
		LogLevel:        "info",
		LogFormat:       "json",
		AllowedOrigins:  []string{"*"},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment variables apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Validate checks values that would otherwise fail late at runtime.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.ProviderTimeout < 0 {
		return fmt.Errorf("config: provider_timeout must not be negative")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("config: max_tokens must not be negative")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Host = envOr(envKeyHost, cfg.Host)
	if v := os.Getenv(envKeyPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", envKeyPort, v, err)
		}
		cfg.Port = port
	}

	cfg.Groq.APIKey = strings.TrimSpace(os.Getenv(envKeyGroqAPIKey))
	cfg.Groq.Model = envOr(envKeyGroqModel, cfg.Groq.Model)
	cfg.OpenAI.APIKey = strings.TrimSpace(os.Getenv(envKeyOpenAIAPIKey))
	cfg.OpenAI.Model = envOr(envKeyOpenAIModel, cfg.OpenAI.Model)
	cfg.Gemini.APIKey = strings.TrimSpace(os.Getenv(envKeyGeminiAPIKey))
	cfg.Gemini.Model = envOr(envKeyGeminiModel, cfg.Gemini.Model)

	if v := os.Getenv(envKeyProviderTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid %s %q: %w", envKeyProviderTimeout, v, err)
		}
		cfg.ProviderTimeout = d
	}

	cfg.LogLevel = envOr(envKeyLogLevel, cfg.LogLevel)
	cfg.LogFormat = envOr(envKeyLogFormat, cfg.LogFormat)
	cfg.AuditDBPath = envOr(envKeyAuditDB, cfg.AuditDBPath)
	if v := os.Getenv(envKeyAllowedOrigins); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	return nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
