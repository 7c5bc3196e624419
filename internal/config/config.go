package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in the provider setting.
const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// Credential variables, read under the provider's own conventional names.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvGeminiKey    = "GEMINI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
)

// EnvConfigPath names the YAML file serverless entrypoints load, since they
// take no flags.
const EnvConfigPath = "HUMANIZE_CONFIG"

// Config holds all application configuration.
type Config struct {
	Port     int    `yaml:"port"`
	Provider string `yaml:"provider"`

	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIModel   string `yaml:"openai_model"`
	OpenAIBaseURL string `yaml:"openai_base_url"`

	GeminiAPIKey  string `yaml:"gemini_api_key"`
	GeminiModel   string `yaml:"gemini_model"`
	GeminiBaseURL string `yaml:"gemini_base_url"`

	AnthropicAPIKey  string `yaml:"anthropic_api_key"`
	AnthropicModel   string `yaml:"anthropic_model"`
	AnthropicBaseURL string `yaml:"anthropic_base_url"`

	Temperature float64 `yaml:"temperature"`
	PromptPath  string  `yaml:"prompt_path"`
	WatchPrompt bool    `yaml:"watch_prompt"`

	// UpstreamTimeout bounds one provider call; zero waits indefinitely.
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`
	MaxRetries      int           `yaml:"max_retries"`
	// RequestTimeout bounds a whole inbound request; zero disables it.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	CORSOrigin     string        `yaml:"cors_origin"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaults() Config {
	return Config{
		Port:           8090,
		Provider:       ProviderOpenAI,
		OpenAIModel:    "gpt-3.5-turbo",
		GeminiModel:    "gemini-1.5-flash",
		AnthropicModel: "claude-haiku-4-5",
		Temperature:    0.7,
		MaxBodyBytes:   1 << 20,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load loads configuration from a YAML file (if path is non-empty),
// then applies environment variable overrides. An empty path returns defaults + env overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"HUMANIZE_PROVIDER", &cfg.Provider},
		{EnvOpenAIKey, &cfg.OpenAIAPIKey},
		{"HUMANIZE_OPENAI_MODEL", &cfg.OpenAIModel},
		{"HUMANIZE_OPENAI_BASE_URL", &cfg.OpenAIBaseURL},
		{EnvGeminiKey, &cfg.GeminiAPIKey},
		{"HUMANIZE_GEMINI_MODEL", &cfg.GeminiModel},
		{"HUMANIZE_GEMINI_BASE_URL", &cfg.GeminiBaseURL},
		{EnvAnthropicKey, &cfg.AnthropicAPIKey},
		{"HUMANIZE_ANTHROPIC_MODEL", &cfg.AnthropicModel},
		{"HUMANIZE_ANTHROPIC_BASE_URL", &cfg.AnthropicBaseURL},
		{"HUMANIZE_PROMPT_PATH", &cfg.PromptPath},
		{"HUMANIZE_CORS_ORIGIN", &cfg.CORSOrigin},
		{"HUMANIZE_LOG_LEVEL", &cfg.LogLevel},
		{"HUMANIZE_LOG_FORMAT", &cfg.LogFormat},
	}
	for _, s := range strs {
		if v := os.Getenv(s.key); v != "" {
			*s.dst = v
		}
	}

	if v := os.Getenv("HUMANIZE_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid HUMANIZE_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("HUMANIZE_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid HUMANIZE_TEMPERATURE %q: %w", v, err)
		}
		cfg.Temperature = f
	}
	if v := os.Getenv("HUMANIZE_WATCH_PROMPT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid HUMANIZE_WATCH_PROMPT %q: %w", v, err)
		}
		cfg.WatchPrompt = b
	}
	if v := os.Getenv("HUMANIZE_UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid HUMANIZE_UPSTREAM_TIMEOUT %q: %w", v, err)
		}
		cfg.UpstreamTimeout = d
	}
	if v := os.Getenv("HUMANIZE_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid HUMANIZE_REQUEST_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("HUMANIZE_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid HUMANIZE_MAX_RETRIES %q: %w", v, err)
		}
		cfg.MaxRetries = n
	}
	if v := os.Getenv("HUMANIZE_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: invalid HUMANIZE_MAX_BODY_BYTES %q: %w", v, err)
		}
		cfg.MaxBodyBytes = n
	}
	return nil
}

// Validate rejects settings the server cannot start with. A missing
// credential is not one of them: it is reported per request.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini, ProviderAnthropic, ProviderMock:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if maxTemp := c.maxTemperature(); c.Temperature < 0 || c.Temperature > maxTemp {
		return fmt.Errorf("config: temperature %v out of range [0, %v] for provider %s", c.Temperature, maxTemp, c.Provider)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config: max_retries must be >= 0, got %d", c.MaxRetries)
	}
	if c.UpstreamTimeout < 0 || c.RequestTimeout < 0 {
		return fmt.Errorf("config: timeouts must be >= 0")
	}
	return nil
}

// maxTemperature is the highest sampling temperature the provider accepts.
func (c Config) maxTemperature() float64 {
	if c.Provider == ProviderAnthropic {
		return 1
	}
	return 2
}

// Credential returns the variable name and value of the active provider's
// credential. The mock provider has none.
func (c Config) Credential() (name, value string) {
	switch c.Provider {
	case ProviderOpenAI:
		return EnvOpenAIKey, c.OpenAIAPIKey
	case ProviderGemini:
		return EnvGeminiKey, c.GeminiAPIKey
	case ProviderAnthropic:
		return EnvAnthropicKey, c.AnthropicAPIKey
	default:
		return "", ""
	}
}
