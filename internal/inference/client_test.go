package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docintel/internal/common/config"
	"docintel/internal/common/logger"
)

func testInferenceConfig(baseURL string) config.InferenceConfig {
	return config.InferenceConfig{
		BaseURL:     baseURL,
		Model:       "test-model",
		Timeout:     5000,
		MaxRetries:  1,
		MaxTokens:   512,
		Temperature: 0.2,
	}
}

func TestHTTPClient_Infer_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/ai/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var reqBody map[string]interface{}
		json.NewDecoder(r.Body).Decode(&reqBody)
		assert.Equal(t, "fraud", reqBody["role"])
		assert.NotEmpty(t, reqBody["prompt"])
		assert.Equal(t, "test-model", reqBody["model"])
		assert.Equal(t, float64(512), reqBody["max_tokens"])
		assert.Equal(t, 0.2, reqBody["temperature"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"findings": [], "confidence": 0.9}`))
	}))
	defer server.Close()

	client := NewHTTPClient(testInferenceConfig(server.URL), logger.NewTestLogger(t))

	raw, err := client.Infer(context.Background(), &Request{
		Role:         "fraud",
		Prompt:       "analyze this",
		DocumentName: "q1-report.txt",
	})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"findings": [], "confidence": 0.9}`, string(raw))
}

func TestHTTPClient_Infer_AuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := testInferenceConfig(server.URL)
	cfg.APIKey = "secret-key"
	client := NewHTTPClient(cfg, logger.NewTestLogger(t))

	_, err := client.Infer(context.Background(), &Request{Role: "parser", Prompt: "p"})
	assert.NoError(t, err)
}

func TestHTTPClient_Infer_RequestOverridesDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		json.NewDecoder(r.Body).Decode(&reqBody)
		assert.Equal(t, "custom-model", reqBody["model"])
		assert.Equal(t, float64(64), reqBody["max_tokens"])
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewHTTPClient(testInferenceConfig(server.URL), logger.NewTestLogger(t))

	_, err := client.Infer(context.Background(), &Request{
		Role:      "parser",
		Prompt:    "p",
		Model:     "custom-model",
		MaxTokens: 64,
	})
	assert.NoError(t, err)
}

func TestHTTPClient_Infer_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	cfg := testInferenceConfig(server.URL)
	cfg.MaxRetries = 2
	client := NewHTTPClient(cfg, logger.NewTestLogger(t))

	raw, err := client.Infer(context.Background(), &Request{Role: "alert", Prompt: "p"})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(raw))
	assert.Equal(t, 2, attempts)
}

func TestHTTPClient_Infer_FailsAfterRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := testInferenceConfig(server.URL)
	cfg.MaxRetries = 2
	client := NewHTTPClient(cfg, logger.NewTestLogger(t))

	raw, err := client.Infer(context.Background(), &Request{Role: "insight", Prompt: "p"})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInferenceFailed), "expected INFERENCE_FAILED, got: %v", err)
	assert.Nil(t, raw)
	assert.Equal(t, 3, attempts)
}

func TestHTTPClient_Infer_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(10 * time.Second):
			t.Log("test server safety timeout reached")
			return
		}
	}))
	defer server.Close()

	cfg := testInferenceConfig(server.URL)
	cfg.MaxRetries = 0
	client := NewHTTPClient(cfg, logger.NewTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	raw, err := client.Infer(ctx, &Request{Role: "compliance", Prompt: "p"})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInferenceTimeout), "expected INFERENCE_TIMEOUT, got: %v", err)
	assert.Nil(t, raw)
}

func TestHTTPClient_Infer_UnreachableEndpoint(t *testing.T) {
	cfg := testInferenceConfig("http://127.0.0.1:1")
	cfg.MaxRetries = 0
	client := NewHTTPClient(cfg, logger.NewTestLogger(t))

	_, err := client.Infer(context.Background(), &Request{Role: "parser", Prompt: "p"})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInferenceFailed))
}
