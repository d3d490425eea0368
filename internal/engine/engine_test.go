package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docintel/internal/common/logger"
)

func newTestEngine(t *testing.T) *Engine {
	return New(logger.NewTestLogger(t))
}

func TestEngine_Analyze_FinancialDocument(t *testing.T) {
	eng := newTestEngine(t)

	result := eng.Analyze("Revenue grew to $150,000 on March 3, 2024 for Acme Corp.")

	values := entityValues(result.Entities)
	assert.Contains(t, values, "$150,000")
	assert.Contains(t, values, "March 3, 2024")
	assert.Contains(t, values, "Acme Corp.")

	assert.GreaterOrEqual(t, result.RiskScore, 0.2)
	assert.Greater(t, result.SentimentScore, 0.0)
	assert.Greater(t, result.Confidence, 0.5)
	assert.NotEmpty(t, result.Insights)
	assert.NotEmpty(t, result.Recommendations)
}

func TestEngine_Analyze_FraudLanguage(t *testing.T) {
	eng := newTestEngine(t)

	result := eng.Analyze("fraud was reported; fraud indicators point to systemic fraud")

	assert.InDelta(t, 0.45, result.RiskScore, 1e-9)
	assert.Less(t, result.SentimentScore, 0.0)
	assert.Empty(t, result.Anomalies)
}

func TestEngine_Analyze_EmptyText(t *testing.T) {
	eng := newTestEngine(t)

	for _, text := range []string{"", "   ", "\n\t "} {
		result := eng.Analyze(text)

		assert.Equal(t, 0.5, result.Confidence)
		assert.NotNil(t, result.Entities)
		assert.Empty(t, result.Entities)
		assert.NotNil(t, result.Anomalies)
		assert.Empty(t, result.Anomalies)
		assert.NotNil(t, result.Insights)
		assert.Empty(t, result.Insights)
		assert.Equal(t, 0.0, result.RiskScore)
		assert.Equal(t, 0.0, result.SentimentScore)
		assert.Equal(t, []string{"Low risk - Standard processing applicable"}, result.Recommendations)
	}
}

func TestEngine_Analyze_Deterministic(t *testing.T) {
	eng := newTestEngine(t)

	text := "Acme Corp. paid $500 and $500 again on 2024-02-02; status N/A"
	first := eng.Analyze(text)
	second := eng.Analyze(text)

	assert.Equal(t, first, second)
}

func TestEngine_BatchAnalyze(t *testing.T) {
	eng := newTestEngine(t)

	documents := []Document{
		{ID: "doc-1", Text: "Revenue of $2,000,000 reported"},
		{ID: "doc-2", Text: ""},
	}

	results := eng.BatchAnalyze(documents)

	assert.Len(t, results, 2)
	assert.Greater(t, results["doc-1"].RiskScore, 0.0)
	assert.Equal(t, 0.5, results["doc-2"].Confidence)
}

func TestEngine_Compare(t *testing.T) {
	eng := newTestEngine(t)

	result := eng.Compare("Report for Acme Corp.", "Report for Acme Corp. and Zenith Group.")

	assert.Len(t, result.AddedEntities, 1)
	assert.Equal(t, "Zenith Group.", result.AddedEntities[0].Value)
	assert.Empty(t, result.RemovedEntities)
	assert.Greater(t, result.Similarity, 0.0)
}
