package models

// Recommendation types
const (
	RecommendationTypeDiversification = "diversification"
	RecommendationTypeRiskManagement  = "risk_management"
	RecommendationTypePerformance     = "performance_improvement"
	RecommendationTypeAIGenerated     = "ai_generated"
	RecommendationTypeIncrease        = "increase_investment"
)

// Recommendation priorities
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation is one actionable advisory item. Derived, not persisted.
type Recommendation struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Action      string   `json:"action"`
	Priority    string   `json:"priority"`
	Products    []string `json:"products,omitempty"` // up to 3 extracted product names, discovery order, deduplicated
}
