package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// Lexicon
	Lexicon struct {
		VocabularyPath string `toml:"vocabulary_path"` // newline-delimited reference vocabulary
		Normalizer     string `toml:"normalizer"`      // "lemma" or "stem"
	} `toml:"lexicon"`

	// API
	API struct {
		Port int    `toml:"port"`
		Host string `toml:"host"`
		Key  string `toml:"key"` // optional static API key; empty disables auth
	} `toml:"api"`

	// WordCloud
	WordCloud struct {
		FontFile string `toml:"font_file"` // TTF font used for rendering
		Width    int    `toml:"width"`
		Height   int    `toml:"height"`
		MaxWords int    `toml:"max_words"`
	} `toml:"wordcloud"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Lexicon.VocabularyPath = "/usr/share/dict/words"
	cfg.Lexicon.Normalizer = "lemma"
	cfg.API.Port = 8080
	cfg.API.Host = "0.0.0.0"
	cfg.API.Key = ""
	cfg.WordCloud.FontFile = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
	cfg.WordCloud.Width = 800
	cfg.WordCloud.Height = 400
	cfg.WordCloud.MaxWords = 200
	return cfg
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	configDir := filepath.Join(homeDir, ".config", "pdfwords")
	return filepath.Join(configDir, "config.toml"), nil
}

// Load reads configuration from ~/.config/pdfwords/config.toml
// Creates the file with defaults if it doesn't exist
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		applyEnv(cfg)

		if err := Save(cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	// Read existing config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge with defaults for any missing values
	defaultCfg := DefaultConfig()
	if cfg.Lexicon.VocabularyPath == "" {
		cfg.Lexicon.VocabularyPath = defaultCfg.Lexicon.VocabularyPath
	}
	if cfg.Lexicon.Normalizer == "" {
		cfg.Lexicon.Normalizer = defaultCfg.Lexicon.Normalizer
	}
	if cfg.API.Port == 0 {
		cfg.API.Port = defaultCfg.API.Port
	}
	if cfg.API.Host == "" {
		cfg.API.Host = defaultCfg.API.Host
	}
	if cfg.WordCloud.FontFile == "" {
		cfg.WordCloud.FontFile = defaultCfg.WordCloud.FontFile
	}
	if cfg.WordCloud.Width == 0 {
		cfg.WordCloud.Width = defaultCfg.WordCloud.Width
	}
	if cfg.WordCloud.Height == 0 {
		cfg.WordCloud.Height = defaultCfg.WordCloud.Height
	}
	if cfg.WordCloud.MaxWords == 0 {
		cfg.WordCloud.MaxWords = defaultCfg.WordCloud.MaxWords
	}

	applyEnv(&cfg)

	return &cfg, nil
}

// applyEnv overrides config values from environment variables if set
// (useful for Docker and CI)
func applyEnv(cfg *Config) {
	if vocab := os.Getenv("PDFWORDS_VOCABULARY"); vocab != "" {
		cfg.Lexicon.VocabularyPath = vocab
	}
	if key := os.Getenv("PDFWORDS_API_KEY"); key != "" {
		cfg.API.Key = key
	}
}

// Save writes the configuration to the config file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to TOML
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
