// Package config holds the engine configuration and its loader.
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Inference    InferenceConfig    `mapstructure:"inference"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// InferenceConfig holds settings for the model-inference endpoint.
type InferenceConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
	MaxRetries  int     `mapstructure:"max_retries"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// TimeoutDuration returns the per-call timeout as a duration.
func (i InferenceConfig) TimeoutDuration() time.Duration {
	return time.Duration(i.Timeout) * time.Millisecond
}

// OrchestratorConfig holds settings for the multi-role fan-out.
type OrchestratorConfig struct {
	TaskTimeout    int `mapstructure:"task_timeout"`    // milliseconds, per role
	GlobalDeadline int `mapstructure:"global_deadline"` // milliseconds, whole run, 0 disables
	MaxKeyFindings int `mapstructure:"max_key_findings"`
}

func (o OrchestratorConfig) TaskTimeoutDuration() time.Duration {
	return time.Duration(o.TaskTimeout) * time.Millisecond
}

func (o OrchestratorConfig) GlobalDeadlineDuration() time.Duration {
	return time.Duration(o.GlobalDeadline) * time.Millisecond
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
