// Package inference defines the model-inference boundary the role
// agents call. The engine only depends on the response contract; model
// identity and transport details stay behind the Client interface.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"docintel/internal/common/config"
	"docintel/internal/common/logger"
)

var (
	ErrInferenceTimeout = errors.New("INFERENCE_TIMEOUT")
	ErrInferenceFailed  = errors.New("INFERENCE_FAILED")
)

// Request carries one role-specific inference call.
type Request struct {
	Role         string  `json:"role"`
	Prompt       string  `json:"prompt"`
	DocumentName string  `json:"documentName"`
	Model        string  `json:"model,omitempty"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

// Client is the model-inference capability. Implementations return the
// raw JSON response body; callers validate it against their role schema.
type Client interface {
	Infer(ctx context.Context, req *Request) (json.RawMessage, error)
}

// HTTPClient calls a JSON inference endpoint with bounded retries and
// exponential backoff. Timeouts come from the caller's context only.
type HTTPClient struct {
	cfg    config.InferenceConfig
	client *http.Client
	logger logger.Logger
}

func NewHTTPClient(cfg config.InferenceConfig, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{},
		logger: log.WithFields(map[string]interface{}{"component": "inference"}),
	}
}

func (c *HTTPClient) Infer(ctx context.Context, req *Request) (json.RawMessage, error) {
	if req.Model == "" {
		req.Model = c.cfg.Model
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = c.cfg.MaxTokens
	}
	if req.Temperature == 0 {
		req.Temperature = c.cfg.Temperature
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
	}

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrInferenceTimeout
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/ai/analyze", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if c.cfg.APIKey != "" {
			httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		}

		resp, lastErr = c.client.Do(httpReq)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return nil, ErrInferenceTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrInferenceTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrInferenceFailed, lastErr)
	}

	if resp == nil {
		return nil, fmt.Errorf("%w: no successful response after retries", ErrInferenceFailed)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrInferenceFailed, err)
	}

	c.logger.Debug("inference call completed", map[string]interface{}{
		"role":  req.Role,
		"bytes": len(raw),
	})

	return raw, nil
}
