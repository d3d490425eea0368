// Package orchestrator fans one document out to every analysis role
// concurrently, isolates per-role failure, and merges the settled
// responses into a single severity-ranked verdict.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"docintel/internal/agents"
	"docintel/internal/common/config"
	stderrors "docintel/internal/common/errors"
	"docintel/internal/common/logger"
	"docintel/internal/common/metrics"
	"docintel/internal/common/observability"
	"docintel/internal/inference"
	"docintel/internal/models"
)

// Result is the aggregated outcome of one orchestration. AgentResults
// always holds one slot per requested role, in request order, no matter
// how many roles failed.
type Result struct {
	TaskID          string            `json:"taskId"`
	AgentResults    []agents.Response `json:"agentResults"`
	OverallRisk     models.RiskLevel  `json:"overallRisk"`
	KeyFindings     []string          `json:"keyFindings"`
	Recommendations []string          `json:"recommendations"`
	ExecutionTimeMs int64             `json:"executionTimeMs"`
}

// Orchestrator owns the fan-out/fan-in cycle and is the only component
// that combines multiple role responses.
type Orchestrator struct {
	agents []*agents.Agent
	cfg    config.OrchestratorConfig
	logger logger.Logger
	obs    *observability.Observability
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObservability attaches an otel meter for task metrics.
func WithObservability(obs *observability.Observability) Option {
	return func(o *Orchestrator) {
		o.obs = obs
	}
}

// New builds an orchestrator over the full role set.
func New(client inference.Client, cfg config.OrchestratorConfig, log logger.Logger, opts ...Option) (*Orchestrator, error) {
	return NewForRoles(agents.AllRoles(), client, cfg, log, opts...)
}

// NewForRoles builds an orchestrator over an explicit role set. The
// aggregation algorithm assumes nothing about the count beyond one
// response slot per role.
func NewForRoles(roles []agents.Role, client inference.Client, cfg config.OrchestratorConfig, log logger.Logger, opts ...Option) (*Orchestrator, error) {
	roleAgents := make([]*agents.Agent, 0, len(roles))
	for _, role := range roles {
		agent, err := agents.NewAgent(role, client, log)
		if err != nil {
			return nil, err
		}
		roleAgents = append(roleAgents, agent)
	}
	o := &Orchestrator{
		agents: roleAgents,
		cfg:    cfg,
		logger: log.WithFields(map[string]interface{}{"component": "orchestrator"}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Orchestrate runs every role concurrently over the document and
// aggregates the settled responses. Only a caller-level contract
// violation (empty text) is an error; role failures degrade their own
// slot and never propagate.
func (o *Orchestrator) Orchestrate(ctx context.Context, documentText, documentName string) (*Result, error) {
	if strings.TrimSpace(documentText) == "" {
		return nil, stderrors.NewEmptyDocumentError(documentName)
	}

	taskID := uuid.NewString()
	start := time.Now()

	log := o.logger.WithFields(map[string]interface{}{
		"taskId":       taskID,
		"documentName": documentName,
	})
	log.Info("starting orchestration", map[string]interface{}{
		"roles": len(o.agents),
	})

	metrics.OrchestrationsActive.Inc()
	defer metrics.OrchestrationsActive.Dec()

	if deadline := o.cfg.GlobalDeadlineDuration(); deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	tasks := make([]*agents.Task, len(o.agents))
	for i, agent := range o.agents {
		tasks[i] = &agents.Task{
			ID:       uuid.NewString(),
			Role:     agent.Role(),
			Status:   agents.TaskPending,
			Priority: i,
			Input: agents.TaskInput{
				DocumentText: documentText,
				DocumentName: documentName,
			},
		}
	}

	// Each goroutine writes only its own slot, so the WaitGroup is the
	// sole synchronization point.
	results := make([]agents.Response, len(o.agents))
	var wg sync.WaitGroup
	for i, agent := range o.agents {
		wg.Add(1)
		go func(i int, agent *agents.Agent, task *agents.Task) {
			defer wg.Done()
			task.Status = agents.TaskRunning
			results[i] = o.runTask(ctx, agent, task, log)
		}(i, agent, tasks[i])
	}
	wg.Wait()

	result := &Result{
		TaskID:          taskID,
		AgentResults:    results,
		OverallRisk:     calculateOverallRisk(results),
		KeyFindings:     extractKeyFindings(results, o.maxKeyFindings()),
		Recommendations: generateRecommendations(results),
		ExecutionTimeMs: time.Since(start).Milliseconds(),
	}

	log.Info("orchestration completed", map[string]interface{}{
		"overallRisk":     result.OverallRisk,
		"keyFindings":     len(result.KeyFindings),
		"executionTimeMs": result.ExecutionTimeMs,
	})

	return result, nil
}

// runTask executes one role with its own timeout and converts any error
// into a degraded zero-confidence response.
func (o *Orchestrator) runTask(ctx context.Context, agent *agents.Agent, task *agents.Task, log logger.Logger) agents.Response {
	role := string(agent.Role())
	start := time.Now()

	taskCtx := ctx
	if timeout := o.cfg.TaskTimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	response, err := agent.Execute(taskCtx, task.Input.DocumentText, task.Input.DocumentName)
	elapsed := time.Since(start)

	if o.obs != nil {
		o.obs.RecordTaskDuration(ctx, elapsed, role)
	}
	metrics.AgentTaskDuration.WithLabelValues(role).Observe(elapsed.Seconds())

	if err != nil {
		task.Status = agents.TaskFailed
		code := classifyTaskError(err)
		metrics.AgentTasksFailed.WithLabelValues(role, code).Inc()
		if o.obs != nil {
			o.obs.RecordTaskProcessed(ctx, role, "failed")
		}
		log.WithError(err).Warn("agent task failed, degrading slot", map[string]interface{}{
			"role":      role,
			"errorCode": code,
		})
		return agents.Response{
			Role:             agent.Role(),
			Findings:         []agents.Finding{},
			Confidence:       0,
			ProcessingTimeMs: elapsed.Milliseconds(),
			Metadata:         map[string]interface{}{"error": err.Error()},
		}
	}

	task.Status = agents.TaskDone
	metrics.AgentTasksCompleted.WithLabelValues(role).Inc()
	if o.obs != nil {
		o.obs.RecordTaskProcessed(ctx, role, "done")
	}
	return *response
}

func (o *Orchestrator) maxKeyFindings() int {
	if o.cfg.MaxKeyFindings > 0 {
		return o.cfg.MaxKeyFindings
	}
	return 5
}

func classifyTaskError(err error) string {
	switch {
	case errors.Is(err, inference.ErrInferenceTimeout):
		return string(stderrors.ErrCodeInferenceTimeout)
	case errors.Is(err, agents.ErrResponseInvalid):
		return string(stderrors.ErrCodeResponseInvalid)
	case errors.Is(err, agents.ErrResponseMalformed):
		return string(stderrors.ErrCodeResponseMalformed)
	default:
		return string(stderrors.ErrCodeInferenceFailed)
	}
}
