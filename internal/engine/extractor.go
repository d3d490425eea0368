package engine

import (
	"regexp"
	"strings"
)

// Per-type extraction confidences. Pattern extraction is deterministic,
// so these are fixed rather than computed.
const (
	amountConfidence  = 0.95
	dateConfidence    = 0.90
	companyConfidence = 0.85
	personConfidence  = 0.75
	accountConfidence = 0.90
)

const contextRadius = 30

var (
	amountPattern = regexp.MustCompile(`\$\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?|\d+(?:\.\d{2})?)`)
	datePattern   = regexp.MustCompile(`(?i)\b(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)\s+\d{1,2},?\s+\d{4}|\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}`)
	// Suffix alternatives are ordered longest-first so "Corporation" is
	// never cut short at "Corp".
	companyPattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Corporation|Company|Corp|Co|Inc|LLC|Ltd|Group)\b\.?)`)
	personPattern  = regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\b`)
	accountPattern = regexp.MustCompile(`(?i)\b(?:Account|Acct)[\s#:]*(\d{4,16})\b`)
)

// Extractor runs independent pattern passes over document text and
// unions the results. It is stateless and safe for concurrent use.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns every typed entity found in text. Passes run in a
// fixed order; only the company pass influences another (person matches
// already captured as companies are dropped). Duplicate literal values
// are kept on purpose - anomaly detection feeds on them.
func (e *Extractor) Extract(text string) []Entity {
	var entities []Entity

	for _, m := range amountPattern.FindAllStringIndex(text, -1) {
		entities = append(entities, Entity{
			Type:       EntityAmount,
			Value:      text[m[0]:m[1]],
			Confidence: amountConfidence,
			Context:    surroundingContext(text, m[0]),
		})
	}

	for _, m := range datePattern.FindAllStringIndex(text, -1) {
		entities = append(entities, Entity{
			Type:       EntityDate,
			Value:      text[m[0]:m[1]],
			Confidence: dateConfidence,
			Context:    surroundingContext(text, m[0]),
		})
	}

	companyValues := make(map[string]struct{})
	for _, m := range companyPattern.FindAllStringSubmatchIndex(text, -1) {
		value := text[m[2]:m[3]]
		entities = append(entities, Entity{
			Type:       EntityCompany,
			Value:      value,
			Confidence: companyConfidence,
			Context:    surroundingContext(text, m[0]),
		})
		companyValues[value] = struct{}{}
		// A trailing period belongs to the company value, but the person
		// pass cannot match it, so index the bare form too.
		companyValues[strings.TrimSuffix(value, ".")] = struct{}{}
	}

	for _, m := range personPattern.FindAllStringSubmatchIndex(text, -1) {
		value := text[m[2]:m[3]]
		if _, isCompany := companyValues[value]; isCompany {
			continue
		}
		entities = append(entities, Entity{
			Type:       EntityPerson,
			Value:      value,
			Confidence: personConfidence,
			Context:    surroundingContext(text, m[0]),
		})
	}

	for _, m := range accountPattern.FindAllStringSubmatchIndex(text, -1) {
		entities = append(entities, Entity{
			Type:       EntityAccount,
			Value:      text[m[2]:m[3]],
			Confidence: accountConfidence,
			Context:    surroundingContext(text, m[0]),
		})
	}

	return entities
}

// surroundingContext returns the text around index, clipped at string
// bounds and wrapped with ellipses.
func surroundingContext(text string, index int) string {
	start := index - contextRadius
	if start < 0 {
		start = 0
	}
	end := index + contextRadius
	if end > len(text) {
		end = len(text)
	}
	return "..." + text[start:end] + "..."
}
