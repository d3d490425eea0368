// Package engine implements the deterministic document analysis path:
// pattern-based entity extraction, lexical scoring, statistical anomaly
// detection, cross-document comparison, and insight synthesis.
package engine

import "docintel/internal/models"

// EntityType classifies an extracted span.
type EntityType string

const (
	EntityAmount  EntityType = "amount"
	EntityDate    EntityType = "date"
	EntityCompany EntityType = "company"
	EntityPerson  EntityType = "person"
	EntityAccount EntityType = "account"
)

// Entity is a typed, confidence-scored span extracted from document text.
type Entity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
	Context    string     `json:"context"`
}

// AnomalyType classifies a detected irregularity.
type AnomalyType string

const (
	AnomalyDuplicate     AnomalyType = "duplicate"
	AnomalyUnusualAmount AnomalyType = "unusual_amount"
	AnomalyFrequency     AnomalyType = "frequency"
	AnomalyPattern       AnomalyType = "pattern"
	AnomalyDataQuality   AnomalyType = "data_quality"
)

// Anomaly is a statistically or heuristically detected irregularity over
// a document's entities or raw text.
type Anomaly struct {
	Type            AnomalyType     `json:"type"`
	Severity        models.Severity `json:"severity"`
	Description     string          `json:"description"`
	AffectedFields  []string        `json:"affectedFields"`
	SuggestedAction string          `json:"suggestedAction"`
}

// AnalysisResult is the value object produced by one local analysis pass.
type AnalysisResult struct {
	Confidence      float64   `json:"confidence"`
	Insights        []string  `json:"insights"`
	Entities        []Entity  `json:"entities"`
	SentimentScore  float64   `json:"sentimentScore"`
	RiskScore       float64   `json:"riskScore"`
	Anomalies       []Anomaly `json:"anomalies"`
	Recommendations []string  `json:"recommendations"`
}

// ChangedEntity pairs a removed entity with the added entity it most
// likely became.
type ChangedEntity struct {
	From Entity `json:"from"`
	To   Entity `json:"to"`
}

// Comparison is the result of diffing two documents.
type Comparison struct {
	AddedEntities   []Entity        `json:"addedEntities"`
	RemovedEntities []Entity        `json:"removedEntities"`
	ChangedEntities []ChangedEntity `json:"changedEntities"`
	Similarity      float64         `json:"similarity"`
}

// Document is one item of a batch analysis request.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
