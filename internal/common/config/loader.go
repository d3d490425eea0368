package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like INFERENCE_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment overlay, ignored when absent.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "docintel"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Inference.Timeout <= 0 {
		cfg.Inference.Timeout = 30000
	}
	if cfg.Inference.MaxRetries < 0 {
		cfg.Inference.MaxRetries = 0
	}
	if cfg.Inference.MaxTokens <= 0 {
		cfg.Inference.MaxTokens = 1024
	}
	if cfg.Inference.Model == "" {
		cfg.Inference.Model = "gpt-4o-mini"
	}
	if cfg.Orchestrator.TaskTimeout <= 0 {
		cfg.Orchestrator.TaskTimeout = 30000
	}
	if cfg.Orchestrator.MaxKeyFindings <= 0 {
		cfg.Orchestrator.MaxKeyFindings = 5
	}
	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
	if cfg.Inference.APIKey == "" {
		cfg.Inference.APIKey = os.Getenv("INFERENCE_API_KEY")
	}
	if cfg.Inference.BaseURL == "" {
		cfg.Inference.BaseURL = os.Getenv("INFERENCE_BASE_URL")
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Inference.Temperature < 0 || cfg.Inference.Temperature > 2 {
		return fmt.Errorf("inference.temperature out of range: %f", cfg.Inference.Temperature)
	}
	if cfg.Orchestrator.GlobalDeadline < 0 {
		return fmt.Errorf("orchestrator.global_deadline must not be negative")
	}
	return nil
}
