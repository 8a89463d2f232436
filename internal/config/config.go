package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/wordweave/wordweave/internal/recognize"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Style catalog
	ThemeDir     string
	DefaultTheme string

	// Claude chart recognition
	AnthropicAPIKey string
	AnthropicModel  string

	// Render limits
	MaxMarkdownBytes int64
	ChartWorkers     int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8095"),

		APIKey: os.Getenv("WORDWEAVE_API_KEY"),

		ThemeDir:     os.Getenv("THEME_DIR"),
		DefaultTheme: envOr("DEFAULT_THEME", "default"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", recognize.DefaultModel),

		MaxMarkdownBytes: envInt64("MAX_MARKDOWN_BYTES", 10485760), // 10MB
		ChartWorkers:     envInt("CHART_WORKERS", 4),
	}

	if cfg.MaxMarkdownBytes <= 0 {
		cfg.MaxMarkdownBytes = 10485760
	}
	if cfg.ChartWorkers <= 0 {
		cfg.ChartWorkers = 4
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ThemeDir != "" {
		info, err := os.Stat(c.ThemeDir)
		if err != nil {
			return fmt.Errorf("THEME_DIR: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("THEME_DIR %s is not a directory", c.ThemeDir)
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
