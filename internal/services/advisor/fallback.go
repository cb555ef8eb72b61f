package advisor

import "github.com/bobmcallan/arvest/internal/models"

// Thresholds for the rule-based fallback.
const (
	diversifyHoldingCount  = 3
	diversifyInvestedFloor = 50000
	increaseInvestedCeil   = 100000
)

// FallbackRecommendations applies deterministic rules to the user's
// holdings. Used when the generative path fails, returns nothing usable,
// or the caller is unauthenticated. Never returns an empty list: with no
// triggered rules the fixed starter set is returned.
func FallbackRecommendations(holdings []*models.Investment, totalInvested float64) []*models.Recommendation {
	if len(holdings) == 0 {
		return starterRecommendations()
	}

	var recs []*models.Recommendation

	if len(holdings) < diversifyHoldingCount && totalInvested > diversifyInvestedFloor {
		recs = append(recs, &models.Recommendation{
			Type:        models.RecommendationTypeDiversification,
			Title:       "Diversify Your Portfolio",
			Description: "Consider adding different asset classes to reduce risk and improve returns.",
			Action:      "Explore mutual funds and bonds to balance your portfolio",
			Priority:    models.PriorityHigh,
		})
	}

	if totalInvested < increaseInvestedCeil {
		recs = append(recs, &models.Recommendation{
			Type:        models.RecommendationTypeIncrease,
			Title:       "Increase Investment Amount",
			Description: "Consider increasing your monthly investment to accelerate wealth building.",
			Action:      "Set up a systematic investment plan",
			Priority:    models.PriorityMedium,
		})
	}

	if len(recs) == 0 {
		recs = append(recs, &models.Recommendation{
			Type:        models.RecommendationTypeRiskManagement,
			Title:       "Review Your Asset Allocation",
			Description: "Revisit your portfolio mix periodically and rebalance toward your target risk allocation.",
			Action:      "Compare your current allocation against your risk profile",
			Priority:    models.PriorityMedium,
		})
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

// starterRecommendations is the fixed set for users with no holdings.
func starterRecommendations() []*models.Recommendation {
	return []*models.Recommendation{
		{
			Type:        models.RecommendationTypeRiskManagement,
			Title:       "Build an Emergency Fund",
			Description: "Set aside three to six months of expenses in a liquid, low risk instrument before locking money into longer tenures.",
			Action:      "Open a liquid fund or short-term fixed deposit",
			Priority:    models.PriorityHigh,
		},
		{
			Type:        models.RecommendationTypeDiversification,
			Title:       "Start With a Diversified Fund",
			Description: "A broad index or balanced mutual fund gives instant diversification without needing to pick individual holdings.",
			Action:      "Invest in a diversified index or balanced fund",
			Priority:    models.PriorityHigh,
		},
		{
			Type:        models.RecommendationTypeIncrease,
			Title:       "Consider a Systematic Investment Plan",
			Description: "Regular fixed contributions smooth out market timing and build the investing habit from the first month.",
			Action:      "Set up a monthly systematic investment plan",
			Priority:    models.PriorityMedium,
		},
	}
}
