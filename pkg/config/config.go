package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Provider  string          `mapstructure:"provider"` // Selected provider: ollama, openai
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Search    SearchConfig    `mapstructure:"search"`
	Plans     PlansConfig     `mapstructure:"plans"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Server    ServerConfig    `mapstructure:"server"`
}

// OllamaConfig holds Ollama-specific configuration
type OllamaConfig struct {
	URL        string        `mapstructure:"url"`
	Model      string        `mapstructure:"model"`
	Timeout    time.Duration `mapstructure:"-"`
	TimeoutStr string        `mapstructure:"timeout"` // For parsing string duration
}

// OpenAIConfig holds OpenAI-compatible provider configuration
type OpenAIConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	BaseURL    string        `mapstructure:"base_url"` // For Groq or other compatible endpoints
	Timeout    time.Duration `mapstructure:"-"`
	TimeoutStr string        `mapstructure:"timeout"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// SearchConfig holds web search configuration
type SearchConfig struct {
	SerperAPIKey string        `mapstructure:"serper_api_key"`
	MaxResults   int           `mapstructure:"max_results"`
	Timeout      time.Duration `mapstructure:"-"`
	TimeoutStr   string        `mapstructure:"timeout"`
}

// PlansConfig holds account plan persistence configuration
type PlansConfig struct {
	Directory string `mapstructure:"directory"`
}

// RetrievalConfig holds research retrieval configuration
type RetrievalConfig struct {
	Enabled  bool                    `mapstructure:"enabled"`
	Embedder RetrievalEmbedderConfig `mapstructure:"embedder"`
}

// RetrievalEmbedderConfig holds embedder configuration for the research index
type RetrievalEmbedderConfig struct {
	Provider string `mapstructure:"provider"` // ollama, openai
	Model    string `mapstructure:"model"`
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

var cfg *Config

// Get returns the loaded configuration, panicking if Load was never called
func Get() *Config {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Load reads configuration from the given file (or the default search
// paths), applies environment overrides, and caches the result.
func Load(cfgFile string) (*Config, error) {
	setDefaults()

	// Pick up collaborator credentials from a .env file when present.
	// Missing files are fine; the providers report absent keys themselves.
	_ = godotenv.Load("config/.env", ".env")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("./.eightfold")
		viper.SetConfigType("yaml")
		viper.SetConfigName("settings")
	}

	viper.SetEnvPrefix("EIGHTFOLD")
	viper.AutomaticEnv()
	bindEnvironmentVariables()

	// A missing config file is not an error; defaults and env cover it.
	_ = viper.ReadInConfig()

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := processDurations(cfg); err != nil {
		return nil, fmt.Errorf("failed to process durations: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("provider", "ollama")

	viper.SetDefault("ollama.url", "http://localhost:11434")
	viper.SetDefault("ollama.model", "qwen3:latest")
	viper.SetDefault("ollama.timeout", "90s")

	viper.SetDefault("openai.model", "llama-3.1-8b-instant")
	viper.SetDefault("openai.base_url", "")
	viper.SetDefault("openai.timeout", "60s")

	viper.SetDefault("logging.log_file", "./.eightfold/system.log")
	viper.SetDefault("logging.preserve", true)
	viper.SetDefault("logging.level", "info")

	viper.SetDefault("search.max_results", 5)
	viper.SetDefault("search.timeout", "30s")

	viper.SetDefault("plans.directory", "./account_plans")

	viper.SetDefault("retrieval.enabled", false)
	viper.SetDefault("retrieval.embedder.provider", "ollama")
	viper.SetDefault("retrieval.embedder.model", "nomic-embed-text")
	viper.SetDefault("retrieval.embedder.base_url", "http://localhost:11434")

	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8000)
}

func bindEnvironmentVariables() {
	// Collaborator credentials keep their conventional names
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY", "GROQ_API_KEY")
	viper.BindEnv("search.serper_api_key", "SERPER_API_KEY")
	viper.BindEnv("retrieval.embedder.api_key", "EMBEDDER_API_KEY")
}

// processDurations converts string durations into time.Duration fields
// (viper doesn't handle time.Duration directly)
func processDurations(c *Config) error {
	for _, d := range []struct {
		raw  string
		dest *time.Duration
	}{
		{c.Ollama.TimeoutStr, &c.Ollama.Timeout},
		{c.OpenAI.TimeoutStr, &c.OpenAI.Timeout},
		{c.Search.TimeoutStr, &c.Search.Timeout},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", d.raw, err)
		}
		*d.dest = parsed
	}
	return nil
}

// GetConfigFileUsed returns the path of the config file viper loaded
func GetConfigFileUsed() string {
	return viper.ConfigFileUsed()
}

// BaseSettingsDir returns the directory holding the active config file
func BaseSettingsDir() string {
	if configPath := viper.GetString("config.path"); configPath != "" {
		return configPath
	}
	currentConfig := viper.ConfigFileUsed()
	if currentConfig == "" {
		return "./.eightfold"
	}
	return filepath.Dir(currentConfig)
}

// BuildSettingsPath joins target onto the settings directory
func BuildSettingsPath(target string) string {
	return filepath.Join(BaseSettingsDir(), target)
}

// EnsureSettingsDir creates the settings directory if it does not exist
func EnsureSettingsDir() error {
	dir := BaseSettingsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return nil
}
