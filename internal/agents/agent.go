// Package agents implements the specialist analysis roles: prompt
// construction, model-inference calls, and schema-validated decoding of
// role responses.
package agents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"docintel/internal/common/logger"
	"docintel/internal/inference"
)

var (
	ErrResponseMalformed = errors.New("RESPONSE_MALFORMED")
	ErrResponseInvalid   = errors.New("RESPONSE_INVALID")
)

// Agent executes one analysis role against the inference boundary.
type Agent struct {
	role   Role
	client inference.Client
	schema *gojsonschema.Schema
	logger logger.Logger
}

// NewAgent compiles the role's response schema and binds the inference
// client. Unknown roles are rejected up front.
func NewAgent(role Role, client inference.Client, log logger.Logger) (*Agent, error) {
	if !KnownRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchemas[role]))
	if err != nil {
		return nil, fmt.Errorf("compile schema for role %q: %w", role, err)
	}
	return &Agent{
		role:   role,
		client: client,
		schema: schema,
		logger: log.WithFields(map[string]interface{}{"role": string(role)}),
	}, nil
}

func (a *Agent) Role() Role {
	return a.role
}

// Execute runs the role once over the document. Any failure - transport,
// timeout, malformed JSON, schema violation - comes back as an error for
// the orchestrator to convert into a degraded slot.
func (a *Agent) Execute(ctx context.Context, documentText, documentName string) (*Response, error) {
	start := time.Now()

	prompt := BuildPrompt(a.role, documentName, documentText)
	raw, err := a.client.Infer(ctx, &inference.Request{
		Role:         string(a.role),
		Prompt:       prompt,
		DocumentName: documentName,
	})
	if err != nil {
		return nil, err
	}

	result, err := a.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseMalformed, err)
	}
	if !result.Valid() {
		descs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			descs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrResponseInvalid, strings.Join(descs, "; "))
	}

	var payload struct {
		Findings   []Finding              `json:"findings"`
		Confidence float64                `json:"confidence"`
		Metadata   map[string]interface{} `json:"metadata"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseMalformed, err)
	}

	if payload.Confidence < 0 || payload.Confidence > 1 {
		payload.Confidence = 0.5
	}

	a.logger.Debug("role completed", map[string]interface{}{
		"findings":   len(payload.Findings),
		"confidence": payload.Confidence,
	})

	return &Response{
		Role:             a.role,
		Findings:         payload.Findings,
		Confidence:       payload.Confidence,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Metadata:         payload.Metadata,
	}, nil
}
