package models

// Insight categories, in the fixed order they appear in an analysis.
const (
	InsightCategoryRisk            = "Risk Management"
	InsightCategoryDiversification = "Diversification"
	InsightCategoryPerformance     = "Performance"
)

// Insight pairs a scoring dimension with its description and recommendation
type Insight struct {
	Category       string `json:"category"`
	Score          int    `json:"score"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
}

// PortfolioAnalysis is the derived analysis of a user's active holdings.
// Recomputed on every request, never persisted.
type PortfolioAnalysis struct {
	OverallScore         int       `json:"overall_score"`
	RiskScore            int       `json:"risk_score"`
	DiversificationScore int       `json:"diversification_score"`
	PerformanceScore     int       `json:"performance_score"`
	Insights             []Insight `json:"insights"`

	TotalInvested    float64 `json:"total_invested"`
	CurrentValue     float64 `json:"current_value"`
	TotalReturns     float64 `json:"total_returns"`
	ReturnPercentage float64 `json:"return_percentage"`

	RiskDistribution map[RiskLevel]float64   `json:"risk_distribution,omitempty"`
	TypeDistribution map[ProductType]float64 `json:"type_distribution,omitempty"`

	// Narrative is free text from the generative model. Textual only —
	// the numeric scores above are never derived from it.
	Narrative string `json:"narrative,omitempty"`
}
