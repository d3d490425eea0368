package agents

import (
	"encoding/json"

	"docintel/internal/models"
)

// TaskStatus is the lifecycle of one agent task. Transitions are
// pending -> running -> done or failed; tasks are never reused.
type TaskStatus string

const (
	TaskPending TaskStatus = "pending"
	TaskRunning TaskStatus = "running"
	TaskDone    TaskStatus = "done"
	TaskFailed  TaskStatus = "failed"
)

// TaskInput is the read-only document snapshot handed to one task.
type TaskInput struct {
	DocumentText string `json:"documentText"`
	DocumentName string `json:"documentName"`
}

// Task tracks one role's execution within an orchestration.
type Task struct {
	ID       string     `json:"id"`
	Role     Role       `json:"role"`
	Status   TaskStatus `json:"status"`
	Priority int        `json:"priority"`
	Input    TaskInput  `json:"input"`
}

// Finding is one structured observation from a role. The aggregation
// fields are lifted out of the raw payload; everything else stays in Raw
// so the full role-specific shape survives serialization.
type Finding struct {
	Severity    models.Severity
	Confidence  *float64
	Description string
	Content     string
	Title       string
	Status      string
	Trend       string
	Raw         map[string]interface{}
}

func (f *Finding) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Raw = raw
	if s, ok := raw["severity"].(string); ok {
		f.Severity = models.Severity(s)
	}
	if c, ok := raw["confidence"].(float64); ok {
		f.Confidence = &c
	}
	f.Description, _ = raw["description"].(string)
	f.Content, _ = raw["content"].(string)
	f.Title, _ = raw["title"].(string)
	f.Status, _ = raw["status"].(string)
	f.Trend, _ = raw["trend"].(string)
	return nil
}

func (f Finding) MarshalJSON() ([]byte, error) {
	if f.Raw != nil {
		return json.Marshal(f.Raw)
	}
	raw := map[string]interface{}{}
	if f.Severity != "" {
		raw["severity"] = string(f.Severity)
	}
	if f.Confidence != nil {
		raw["confidence"] = *f.Confidence
	}
	if f.Description != "" {
		raw["description"] = f.Description
	}
	if f.Content != "" {
		raw["content"] = f.Content
	}
	if f.Title != "" {
		raw["title"] = f.Title
	}
	if f.Status != "" {
		raw["status"] = f.Status
	}
	if f.Trend != "" {
		raw["trend"] = f.Trend
	}
	return json.Marshal(raw)
}

// Label returns the display text for a finding, falling back through
// description, content, and title.
func (f Finding) Label() string {
	switch {
	case f.Description != "":
		return f.Description
	case f.Content != "":
		return f.Content
	case f.Title != "":
		return f.Title
	default:
		return "Finding detected"
	}
}

// EffectiveConfidence returns the finding-level confidence when present,
// else the role's overall confidence.
func (f Finding) EffectiveConfidence(roleConfidence float64) float64 {
	if f.Confidence != nil {
		return *f.Confidence
	}
	return roleConfidence
}

// Response is one role's settled result. A failed task still produces a
// Response with empty findings and zero confidence so the orchestrator
// never drops a slot.
type Response struct {
	Role             Role                   `json:"role"`
	Findings         []Finding              `json:"findings"`
	Confidence       float64                `json:"confidence"`
	ProcessingTimeMs int64                  `json:"processingTimeMs"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}
