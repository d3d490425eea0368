package engine

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Fixed financial-indicator vocabularies. Scoring is purely additive and
// order-insensitive; each whole-word occurrence contributes.
var positiveWords = []string{
	"profit", "revenue", "growth", "increase", "gain", "success", "positive",
	"improved", "strong", "excellent", "outstanding", "exceed", "surplus",
}

var negativeWords = []string{
	"loss", "decline", "decrease", "deficit", "fraud", "risk", "negative",
	"weak", "poor", "below", "concern", "warning", "alert", "suspicious",
}

var riskKeywords = []string{
	"fraud", "suspicious", "unusual", "unauthorized", "discrepancy",
	"alert", "warning", "violation", "breach", "anomaly",
}

const (
	sentimentStep        = 0.1
	riskKeywordStep      = 0.15
	largeAmountThreshold = 100000
	largeAmountStep      = 0.2
	hugeAmountThreshold  = 1000000
	hugeAmountStep       = 0.3
	manyAmountsCount     = 5
	manyAmountsStep      = 0.1
)

var wordPatterns sync.Map // word -> *regexp.Regexp

func wholeWordPattern(word string) *regexp.Regexp {
	if p, ok := wordPatterns.Load(word); ok {
		return p.(*regexp.Regexp)
	}
	p := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	wordPatterns.Store(word, p)
	return p
}

func countWord(text, word string) int {
	return len(wholeWordPattern(word).FindAllStringIndex(text, -1))
}

// Scorer computes keyword-weighted sentiment and risk over raw text.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Sentiment counts positive and negative financial indicators, each hit
// contributing +-0.1, clamped to [-1, 1].
func (s *Scorer) Sentiment(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	for _, word := range positiveWords {
		score += float64(countWord(lower, word)) * sentimentStep
	}
	for _, word := range negativeWords {
		score -= float64(countWord(lower, word)) * sentimentStep
	}
	return clamp(score, -1, 1)
}

// Risk scores the document in [0, 1] from amount magnitudes, risk
// keyword occurrences, and amount volume. Both magnitude thresholds can
// fire for the same amount.
func (s *Scorer) Risk(text string, entities []Entity) float64 {
	risk := 0.0

	amounts := 0
	for _, entity := range entities {
		if entity.Type != EntityAmount {
			continue
		}
		amounts++
		value := parseAmount(entity.Value)
		if value > largeAmountThreshold {
			risk += largeAmountStep
		}
		if value > hugeAmountThreshold {
			risk += hugeAmountStep
		}
	}

	lower := strings.ToLower(text)
	for _, keyword := range riskKeywords {
		risk += float64(countWord(lower, keyword)) * riskKeywordStep
	}

	if amounts > manyAmountsCount {
		risk += manyAmountsStep
	}

	return clamp(risk, 0, 1)
}

// parseAmount strips currency formatting from an amount entity value.
// Extraction guarantees the remainder parses; a zero fallback keeps the
// scorer total even if it does not.
func parseAmount(value string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
