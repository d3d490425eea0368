package engine

import (
	"fmt"
	"strings"

	"docintel/internal/models"
)

const (
	baseConfidence          = 0.5
	confidencePerEntity     = 0.03
	confidenceEntityCeiling = 0.3
	confidenceFromEntities  = 0.2
	confidencePerAnomaly    = 0.05

	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.4
)

// Synthesizer turns entities, anomalies, and scores into human-readable
// insights and recommendations. All methods are pure.
type Synthesizer struct{}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Insights produces summary lines in a fixed order: companies, monetary
// total, date count, then elevated anomaly count.
func (s *Synthesizer) Insights(entities []Entity, anomalies []Anomaly) []string {
	var insights []string

	var companies []string
	var amountTotal float64
	amountCount := 0
	dateCount := 0
	for _, entity := range entities {
		switch entity.Type {
		case EntityCompany:
			companies = append(companies, entity.Value)
		case EntityAmount:
			amountTotal += parseAmount(entity.Value)
			amountCount++
		case EntityDate:
			dateCount++
		}
	}

	if len(companies) > 0 {
		listed := companies
		if len(listed) > 3 {
			listed = listed[:3]
		}
		insights = append(insights, fmt.Sprintf("Identified %d company reference(s): %s",
			len(companies), strings.Join(listed, ", ")))
	}

	if amountCount > 0 {
		insights = append(insights, fmt.Sprintf("Total monetary value: $%s", formatMoney(amountTotal)))
	}

	if dateCount > 0 {
		insights = append(insights, fmt.Sprintf("Document contains %d date reference(s)", dateCount))
	}

	elevated := 0
	for _, anomaly := range anomalies {
		if anomaly.Severity.IsElevated() {
			elevated++
		}
	}
	if elevated > 0 {
		insights = append(insights, fmt.Sprintf("%d critical issue(s) require immediate attention", elevated))
	}

	return insights
}

// Recommendations maps the risk score and anomaly set to actions. Risk
// tiers are exclusive; the anomaly-driven lines are appended on top.
func (s *Synthesizer) Recommendations(riskScore float64, anomalies []Anomaly) []string {
	var recommendations []string

	switch {
	case riskScore > highRiskThreshold:
		recommendations = append(recommendations,
			"High risk detected - Immediate review required",
			"Schedule audit with compliance team")
	case riskScore > mediumRiskThreshold:
		recommendations = append(recommendations, "Medium risk - Enhanced monitoring recommended")
	default:
		recommendations = append(recommendations, "Low risk - Standard processing applicable")
	}

	for _, anomaly := range anomalies {
		if anomaly.Severity == models.SeverityCritical {
			recommendations = append(recommendations, "Address critical anomalies before processing")
			break
		}
	}
	for _, anomaly := range anomalies {
		if anomaly.Type == AnomalyDuplicate {
			recommendations = append(recommendations, "Implement deduplication process")
			break
		}
	}

	return recommendations
}

// Confidence scores the overall analysis: entity volume and quality push
// it up, anomalies pull it down, clamped to [0, 1].
func (s *Synthesizer) Confidence(entities []Entity, anomalies []Anomaly) float64 {
	confidence := baseConfidence

	entityBoost := float64(len(entities)) * confidencePerEntity
	if entityBoost > confidenceEntityCeiling {
		entityBoost = confidenceEntityCeiling
	}
	confidence += entityBoost

	if len(entities) > 0 {
		sum := 0.0
		for _, entity := range entities {
			sum += entity.Confidence
		}
		confidence += (sum / float64(len(entities))) * confidenceFromEntities
	}

	confidence -= float64(len(anomalies)) * confidencePerAnomaly

	return clamp(confidence, 0, 1)
}

// formatMoney renders a non-negative total with thousands separators and
// two decimals, e.g. 150000 -> "150,000.00".
func formatMoney(v float64) string {
	raw := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(raw, ".", 2)
	integer, fraction := parts[0], parts[1]

	negative := strings.HasPrefix(integer, "-")
	integer = strings.TrimPrefix(integer, "-")

	var b strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	grouped := b.String()
	if negative {
		grouped = "-" + grouped
	}
	return grouped + "." + fraction
}
