package engine

import (
	"fmt"
	"math"
	"strings"

	"docintel/internal/models"
)

// Markers whose literal presence flags incomplete source data.
var dataQualityMarkers = []string{"N/A", "null", "undefined"}

// Detector finds statistical, duplicate, and data-quality anomalies.
// The three checks are independent and all may fire for one document.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns anomalies in a fixed order: duplicates, unusual
// amounts (entity-list order), then data quality.
func (d *Detector) Detect(text string, entities []Entity) []Anomaly {
	var anomalies []Anomaly

	if a := d.detectDuplicates(entities); a != nil {
		anomalies = append(anomalies, *a)
	}
	anomalies = append(anomalies, d.detectUnusualAmounts(entities)...)
	if a := d.detectDataQuality(text); a != nil {
		anomalies = append(anomalies, *a)
	}

	return anomalies
}

// detectDuplicates reports one anomaly covering every entity value that
// appears more than once, across all entity types.
func (d *Detector) detectDuplicates(entities []Entity) *Anomaly {
	seen := make(map[string]int, len(entities))
	duplicateCount := 0
	var repeated []string

	for _, entity := range entities {
		seen[entity.Value]++
		if seen[entity.Value] == 2 {
			repeated = append(repeated, entity.Value)
		}
		if seen[entity.Value] > 1 {
			duplicateCount++
		}
	}

	if duplicateCount == 0 {
		return nil
	}

	return &Anomaly{
		Type:            AnomalyDuplicate,
		Severity:        models.SeverityMedium,
		Description:     fmt.Sprintf("Found %d duplicate entries", duplicateCount),
		AffectedFields:  repeated,
		SuggestedAction: "Review and remove duplicate entries",
	}
}

// detectUnusualAmounts flags amounts more than two population standard
// deviations from the mean. With zero or one amount the deviation is
// zero and nothing fires; the empty set is not an error.
func (d *Detector) detectUnusualAmounts(entities []Entity) []Anomaly {
	var amounts []Entity
	var values []float64
	for _, entity := range entities {
		if entity.Type == EntityAmount {
			amounts = append(amounts, entity)
			values = append(values, parseAmount(entity.Value))
		}
	}
	if len(values) == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	stdDev := math.Sqrt(variance / float64(len(values)))
	if stdDev == 0 {
		return nil
	}

	var anomalies []Anomaly
	for i, v := range values {
		if math.Abs(v-mean) <= 2*stdDev {
			continue
		}
		severity := models.SeverityMedium
		if v > mean {
			severity = models.SeverityHigh
		}
		anomalies = append(anomalies, Anomaly{
			Type:            AnomalyUnusualAmount,
			Severity:        severity,
			Description:     fmt.Sprintf("Amount %s is significantly different from average", amounts[i].Value),
			AffectedFields:  []string{amounts[i].Value},
			SuggestedAction: "Verify the transaction amount",
		})
	}
	return anomalies
}

// detectDataQuality emits exactly one anomaly no matter how many marker
// occurrences the text contains.
func (d *Detector) detectDataQuality(text string) *Anomaly {
	found := false
	for _, marker := range dataQualityMarkers {
		if strings.Contains(text, marker) {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	return &Anomaly{
		Type:            AnomalyDataQuality,
		Severity:        models.SeverityLow,
		Description:     "Missing or incomplete data fields detected",
		AffectedFields:  []string{"various"},
		SuggestedAction: "Fill in missing information",
	}
}
