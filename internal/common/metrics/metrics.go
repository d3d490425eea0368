package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "docintel_documents_analyzed_total",
			Help: "Total number of documents run through local analysis",
		},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "docintel_analysis_duration_seconds",
			Help: "Duration of local document analysis in seconds",
		},
	)

	AgentTasksCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docintel_agent_tasks_completed_total",
			Help: "Total number of agent tasks completed by role",
		},
		[]string{"role"},
	)

	AgentTasksFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "docintel_agent_tasks_failed_total",
			Help: "Total number of agent tasks failed by role",
		},
		[]string{"role", "error_code"},
	)

	AgentTaskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "docintel_agent_task_duration_seconds",
			Help: "Duration of agent task processing in seconds",
		},
		[]string{"role"},
	)

	OrchestrationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "docintel_orchestrations_active",
			Help: "Number of orchestrations currently in flight",
		},
	)
)
