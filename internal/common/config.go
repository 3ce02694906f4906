package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Extractor   ExtractorConfig `toml:"extractor"`
	LLM         LLMConfig       `toml:"llm"`
	Claude      ClaudeConfig    `toml:"claude"`
	Gemini      GeminiConfig    `toml:"gemini"`
	Analyzer    AnalyzerConfig  `toml:"analyzer"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// StorageConfig contains storage backend settings
type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig contains Badger database settings
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05.000")
}

// ExtractorConfig contains text extraction settings
type ExtractorConfig struct {
	FetchTimeout  string `toml:"fetch_timeout"`   // Source fetch timeout as duration string (default: "30s")
	MinTextLength int    `toml:"min_text_length"` // Minimum extracted text length before a source is rejected (default: 100)
	MaxBodyBytes  int64  `toml:"max_body_bytes"`  // Maximum response body size in bytes (default: 20 MB)
}

// LLMProvider identifies an LLM backend
type LLMProvider string

const (
	LLMProviderClaude LLMProvider = "claude"
	LLMProviderGemini LLMProvider = "gemini"
)

// LLMConfig selects the generative model provider
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // "claude" or "gemini" (default: "gemini")
}

// ClaudeConfig contains Anthropic Claude settings
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`     // Anthropic API key
	Model       string  `toml:"model"`       // Model for generation (default: "claude-sonnet-4-20250514")
	MaxTokens   int     `toml:"max_tokens"`  // Maximum tokens in response (default: 8192)
	Timeout     string  `toml:"timeout"`     // Operation timeout as duration string (default: "2m")
	RateLimit   float64 `toml:"rate_limit"`  // Requests per second (default: 2)
	Temperature float32 `toml:"temperature"` // Completion temperature (default: 0.7)
}

// GeminiConfig contains Google Gemini settings
type GeminiConfig struct {
	APIKey         string  `toml:"api_key"`         // Google API key
	ChatModel      string  `toml:"chat_model"`      // Model for generation (default: "gemini-2.0-flash")
	EmbedModel     string  `toml:"embed_model"`     // Model for embeddings (default: "gemini-embedding-001")
	EmbedDimension int     `toml:"embed_dimension"` // Embedding vector dimension (default: 768)
	Timeout        string  `toml:"timeout"`         // Operation timeout as duration string (default: "2m")
	RateLimit      float64 `toml:"rate_limit"`      // Requests per second (default: 2)
	Temperature    float32 `toml:"temperature"`     // Completion temperature (default: 0.7)
}

// AnalyzerConfig contains analysis pipeline settings
type AnalyzerConfig struct {
	RunDeadline   string `toml:"run_deadline"`    // Maximum wall-clock duration for one processing run (default: "10m")
	MaxInputChars int    `toml:"max_input_chars"` // Extracted text is truncated to this length before prompting (default: 60000)
}

// SchedulerConfig contains the stale-run janitor settings
type SchedulerConfig struct {
	Enabled       bool   `toml:"enabled"`        // Enable the stale-run sweep (default: true)
	SweepSchedule string `toml:"sweep_schedule"` // Cron expression for the sweep (default: "*/1 * * * *")
}

// NewDefaultConfig returns a Config populated with defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/doceo",
				ResetOnStartup: false,
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05.000",
		},
		Extractor: ExtractorConfig{
			FetchTimeout:  "30s",
			MinTextLength: 100,
			MaxBodyBytes:  20 * 1024 * 1024,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderGemini,
		},
		Claude: ClaudeConfig{
			Model:       "claude-sonnet-4-20250514",
			MaxTokens:   8192,
			Timeout:     "2m",
			RateLimit:   2,
			Temperature: 0.7,
		},
		Gemini: GeminiConfig{
			ChatModel:      "gemini-2.0-flash",
			EmbedModel:     "gemini-embedding-001",
			EmbedDimension: 768,
			Timeout:        "2m",
			RateLimit:      2,
			Temperature:    0.7,
		},
		Analyzer: AnalyzerConfig{
			RunDeadline:   "10m",
			MaxInputChars: 60000,
		},
		Scheduler: SchedulerConfig{
			Enabled:       true,
			SweepSchedule: "*/1 * * * *",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("DOCEO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("DOCEO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("DOCEO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("DOCEO_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Logging configuration
	if level := os.Getenv("DOCEO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("DOCEO_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}

	// Provider configuration
	if provider := os.Getenv("DOCEO_LLM_PROVIDER"); provider != "" {
		config.LLM.DefaultProvider = LLMProvider(provider)
	}
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" && config.Claude.APIKey == "" {
		config.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("DOCEO_CLAUDE_API_KEY"); apiKey != "" {
		config.Claude.APIKey = apiKey
	}
	if apiKey := os.Getenv("GOOGLE_API_KEY"); apiKey != "" && config.Gemini.APIKey == "" {
		config.Gemini.APIKey = apiKey
	}
	if apiKey := os.Getenv("DOCEO_GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
}

// Validate checks configuration invariants that would otherwise surface as
// confusing runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Storage.Badger.Path == "" {
		return fmt.Errorf("storage.badger.path is required")
	}
	switch c.LLM.DefaultProvider {
	case LLMProviderClaude, LLMProviderGemini:
	default:
		return fmt.Errorf("invalid llm.default_provider '%s': must be 'claude' or 'gemini'", c.LLM.DefaultProvider)
	}
	if _, err := time.ParseDuration(c.Analyzer.RunDeadline); err != nil {
		return fmt.Errorf("invalid analyzer.run_deadline '%s': %w", c.Analyzer.RunDeadline, err)
	}
	if c.Gemini.EmbedDimension <= 0 {
		return fmt.Errorf("gemini.embed_dimension must be greater than 0, got %d", c.Gemini.EmbedDimension)
	}
	return nil
}

// RunDeadlineDuration returns the parsed analyzer run deadline, falling back
// to ten minutes when unset or unparseable.
func (c *Config) RunDeadlineDuration() time.Duration {
	d, err := time.ParseDuration(c.Analyzer.RunDeadline)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}
