package orchestrator

import (
	"fmt"
	"sort"

	"docintel/internal/agents"
	"docintel/internal/models"
)

// keyFindingConfidenceFloor filters findings out of the ranked list.
const keyFindingConfidenceFloor = 0.7

// calculateOverallRisk derives the verdict from all settled responses.
// The checks are evaluated in priority order and the first match wins.
func calculateOverallRisk(results []agents.Response) models.RiskLevel {
	elevated := 0
	fraudFindings := 0
	for _, result := range results {
		for _, finding := range result.Findings {
			if finding.Severity.IsElevated() {
				elevated++
			}
		}
		if result.Role == agents.RoleFraud {
			fraudFindings = len(result.Findings)
		}
	}

	switch {
	case elevated >= 3:
		return models.RiskCritical
	case elevated >= 1:
		return models.RiskHigh
	case fraudFindings > 0:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// extractKeyFindings flattens every role's findings, keeps those above
// the confidence floor, ranks them by severity, and formats the top K
// tagged with their source role.
func extractKeyFindings(results []agents.Response, limit int) []string {
	type tagged struct {
		role    agents.Role
		finding agents.Finding
	}

	var candidates []tagged
	for _, result := range results {
		for _, finding := range result.Findings {
			if finding.EffectiveConfidence(result.Confidence) > keyFindingConfidenceFloor {
				candidates = append(candidates, tagged{role: result.Role, finding: finding})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].finding.Severity.Rank() > candidates[j].finding.Severity.Rank()
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	findings := make([]string, len(candidates))
	for i, c := range candidates {
		findings[i] = fmt.Sprintf("[%s] %s", c.role, c.finding.Label())
	}
	return findings
}

// generateRecommendations applies the role-specific rules; when none
// fire, a single monitoring fallback is emitted.
func generateRecommendations(results []agents.Response) []string {
	var recommendations []string

	byRole := make(map[agents.Role]agents.Response, len(results))
	for _, result := range results {
		byRole[result.Role] = result
	}

	if fraud, ok := byRole[agents.RoleFraud]; ok && len(fraud.Findings) > 0 {
		recommendations = append(recommendations, "Conduct detailed forensic audit of flagged transactions")
	}

	if compliance, ok := byRole[agents.RoleCompliance]; ok {
		for _, finding := range compliance.Findings {
			if finding.Status == "non-compliant" {
				recommendations = append(recommendations, "Address compliance violations with regulatory team")
				break
			}
		}
	}

	if analyzer, ok := byRole[agents.RoleAnalyzer]; ok {
		for _, finding := range analyzer.Findings {
			if finding.Trend == "down" {
				recommendations = append(recommendations, "Review declining metrics and develop improvement plan")
				break
			}
		}
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Continue monitoring - no critical issues detected")
	}

	return recommendations
}
