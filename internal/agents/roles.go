package agents

import "fmt"

// Role identifies one specialist analysis perspective.
type Role string

const (
	RoleParser     Role = "parser"
	RoleAnalyzer   Role = "analyzer"
	RoleCompliance Role = "compliance"
	RoleFraud      Role = "fraud"
	RoleAlert      Role = "alert"
	RoleInsight    Role = "insight"
)

// AllRoles returns the fixed role set in fan-out order. The slice is
// fresh on every call so callers may reorder or trim it.
func AllRoles() []Role {
	return []Role{RoleParser, RoleAnalyzer, RoleCompliance, RoleFraud, RoleAlert, RoleInsight}
}

// maxPromptContent bounds how much document text goes into one prompt.
const maxPromptContent = 4000

var promptTemplates = map[Role]string{
	RoleParser: `You are a Document Parser Agent specialized in extracting structured data from financial documents.

Document: %s
Content: %s

Extract and structure document metadata, financial tables, section structure, and named entities.

Return JSON with:
{"findings": [{"type": "metadata|table|entity|section", "content": "extracted content", "confidence": 0.0-1.0}], "confidence": 0.0-1.0, "metadata": {"tablesFound": number, "entitiesFound": number}}`,

	RoleAnalyzer: `You are a Financial Analyzer Agent that computes KPIs and performs trend analysis.

Document: %s
Content: %s

Analyze key financial ratios, year-over-year trends, performance metrics, and risk indicators.

Return JSON with:
{"findings": [{"metric": "metric name", "value": number, "trend": "up|down|stable", "insight": "interpretation", "confidence": 0.0-1.0}], "confidence": 0.0-1.0, "metadata": {"metricsCalculated": number, "trendsIdentified": number}}`,

	RoleCompliance: `You are a Compliance Monitoring Agent that validates regulatory requirements.

Document: %s
Content: %s

Check compliance with IFRS/GAAP accounting standards, SOX requirements, and ESG disclosure standards.

Return JSON with:
{"findings": [{"standard": "IFRS|GAAP|SEBI|SOX|ESG", "requirement": "specific requirement", "status": "compliant|non-compliant|unclear", "severity": "low|medium|high", "confidence": 0.0-1.0}], "confidence": 0.0-1.0, "metadata": {"checksPerformed": number, "issuesFound": number}}`,

	RoleFraud: `You are a Fraud Detection Agent that identifies suspicious patterns and anomalies.

Document: %s
Content: %s

Detect revenue manipulation, expense misclassification, hidden liabilities, undisclosed related-party transactions, round number bias, and duplicate entries.

Return JSON with:
{"findings": [{"pattern": "fraud pattern type", "description": "detailed description", "severity": "low|medium|high|critical", "evidence": "supporting evidence", "confidence": 0.0-1.0}], "confidence": 0.0-1.0, "metadata": {"patternsChecked": number, "suspiciousActivities": number}}`,

	RoleAlert: `You are an Alert Generation Agent that creates actionable notifications.

Document: %s
Content: %s

Generate alerts for critical risk indicators, compliance violations, fraud red flags, and performance anomalies.

Return JSON with:
{"findings": [{"alertType": "risk|compliance|fraud|performance", "severity": "low|medium|high|critical", "title": "alert title", "description": "alert description", "actionRequired": "recommended action", "confidence": 0.0-1.0}], "confidence": 0.0-1.0, "metadata": {"alertsGenerated": number, "criticalAlerts": number}}`,

	RoleInsight: `You are an Insight Generation Agent that writes plain-language reports and summaries.

Document: %s
Content: %s

Generate an executive summary, key insights and trends, a risk assessment, and strategic recommendations.

Return JSON with:
{"findings": [{"type": "summary|insight|risk|recommendation", "title": "finding title", "content": "detailed content", "impact": "low|medium|high", "confidence": 0.0-1.0}], "confidence": 0.0-1.0, "metadata": {"insightsGenerated": number, "recommendationsMade": number}}`,
}

// Response schemas per role. Validation failures are handled like
// transport failures: the slot degrades, the run continues.
var responseSchemas = map[Role]string{
	RoleParser: `{
		"type": "object",
		"required": ["findings", "confidence"],
		"properties": {
			"confidence": {"type": "number", "minimum": 0, "maximum": 1},
			"findings": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["type", "content"],
					"properties": {
						"type": {"type": "string", "enum": ["metadata", "table", "entity", "section"]},
						"content": {"type": "string"},
						"confidence": {"type": "number", "minimum": 0, "maximum": 1}
					}
				}
			},
			"metadata": {"type": "object"}
		}
	}`,
	RoleAnalyzer: `{
		"type": "object",
		"required": ["findings", "confidence"],
		"properties": {
			"confidence": {"type": "number", "minimum": 0, "maximum": 1},
			"findings": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["metric"],
					"properties": {
						"metric": {"type": "string"},
						"value": {"type": "number"},
						"trend": {"type": "string", "enum": ["up", "down", "stable"]},
						"insight": {"type": "string"},
						"confidence": {"type": "number", "minimum": 0, "maximum": 1}
					}
				}
			},
			"metadata": {"type": "object"}
		}
	}`,
	RoleCompliance: `{
		"type": "object",
		"required": ["findings", "confidence"],
		"properties": {
			"confidence": {"type": "number", "minimum": 0, "maximum": 1},
			"findings": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["status"],
					"properties": {
						"standard": {"type": "string"},
						"requirement": {"type": "string"},
						"status": {"type": "string", "enum": ["compliant", "non-compliant", "unclear"]},
						"severity": {"type": "string", "enum": ["low", "medium", "high"]},
						"confidence": {"type": "number", "minimum": 0, "maximum": 1}
					}
				}
			},
			"metadata": {"type": "object"}
		}
	}`,
	RoleFraud: `{
		"type": "object",
		"required": ["findings", "confidence"],
		"properties": {
			"confidence": {"type": "number", "minimum": 0, "maximum": 1},
			"findings": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["severity", "description"],
					"properties": {
						"pattern": {"type": "string"},
						"description": {"type": "string"},
						"severity": {"type": "string", "enum": ["low", "medium", "high", "critical"]},
						"evidence": {"type": "string"},
						"confidence": {"type": "number", "minimum": 0, "maximum": 1}
					}
				}
			},
			"metadata": {"type": "object"}
		}
	}`,
	RoleAlert: `{
		"type": "object",
		"required": ["findings", "confidence"],
		"properties": {
			"confidence": {"type": "number", "minimum": 0, "maximum": 1},
			"findings": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["severity", "title"],
					"properties": {
						"alertType": {"type": "string", "enum": ["risk", "compliance", "fraud", "performance"]},
						"severity": {"type": "string", "enum": ["low", "medium", "high", "critical"]},
						"title": {"type": "string"},
						"description": {"type": "string"},
						"actionRequired": {"type": "string"},
						"confidence": {"type": "number", "minimum": 0, "maximum": 1}
					}
				}
			},
			"metadata": {"type": "object"}
		}
	}`,
	RoleInsight: `{
		"type": "object",
		"required": ["findings", "confidence"],
		"properties": {
			"confidence": {"type": "number", "minimum": 0, "maximum": 1},
			"findings": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["title", "content"],
					"properties": {
						"type": {"type": "string", "enum": ["summary", "insight", "risk", "recommendation"]},
						"title": {"type": "string"},
						"content": {"type": "string"},
						"impact": {"type": "string", "enum": ["low", "medium", "high"]},
						"confidence": {"type": "number", "minimum": 0, "maximum": 1}
					}
				}
			},
			"metadata": {"type": "object"}
		}
	}`,
}

// BuildPrompt renders the role's prompt template over the document,
// truncating the content to keep the request bounded.
func BuildPrompt(role Role, documentName, documentText string) string {
	content := documentText
	if len(content) > maxPromptContent {
		content = content[:maxPromptContent]
	}
	return fmt.Sprintf(promptTemplates[role], documentName, content)
}

// KnownRole reports whether the role has a registered prompt and schema.
func KnownRole(role Role) bool {
	_, ok := promptTemplates[role]
	return ok
}
