package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	applyDefaults(&cfg)

	assert.Equal(t, "docintel", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 30000, cfg.Inference.Timeout)
	assert.Equal(t, 1024, cfg.Inference.MaxTokens)
	assert.Equal(t, "gpt-4o-mini", cfg.Inference.Model)
	assert.Equal(t, 30000, cfg.Orchestrator.TaskTimeout)
	assert.Equal(t, 5, cfg.Orchestrator.MaxKeyFindings)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{}
	cfg.Inference.Timeout = 1500
	cfg.Orchestrator.MaxKeyFindings = 10

	applyDefaults(&cfg)

	assert.Equal(t, 1500, cfg.Inference.Timeout)
	assert.Equal(t, 10, cfg.Orchestrator.MaxKeyFindings)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"temperature too high", func(c *Config) { c.Inference.Temperature = 2.5 }, true},
		{"temperature negative", func(c *Config) { c.Inference.Temperature = -0.1 }, true},
		{"temperature upper bound", func(c *Config) { c.Inference.Temperature = 2.0 }, false},
		{"negative global deadline", func(c *Config) { c.Orchestrator.GlobalDeadline = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			applyDefaults(&cfg)
			tt.mutate(&cfg)

			err := validateConfig(&cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	inference := InferenceConfig{Timeout: 2500}
	assert.Equal(t, 2500*time.Millisecond, inference.TimeoutDuration())

	orch := OrchestratorConfig{TaskTimeout: 1000, GlobalDeadline: 60000}
	assert.Equal(t, time.Second, orch.TaskTimeoutDuration())
	assert.Equal(t, time.Minute, orch.GlobalDeadlineDuration())
}
