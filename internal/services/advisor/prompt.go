package advisor

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/arvest/internal/models"
)

// buildPrompt renders the advisory prompt from the user's profile and
// current holdings.
func buildPrompt(profile *models.RiskProfile, holdings []*models.Investment, totalInvested float64) string {
	var sb strings.Builder

	sb.WriteString("As an AI investment advisor, provide personalized investment recommendations for a user with:\n\n")
	fmt.Fprintf(&sb, "Current Portfolio Value: %.2f\n", totalInvested)
	fmt.Fprintf(&sb, "Risk Tolerance: %s\n", profile.AppetiteOrDefault())
	if profile != nil && profile.Age > 0 {
		fmt.Fprintf(&sb, "Age: %d\n", profile.Age)
	}
	fmt.Fprintf(&sb, "Investment Goals: %s\n", strings.Join(profile.GoalsOrDefault(), ", "))

	if len(holdings) > 0 {
		sb.WriteString("\nCurrent Holdings:\n")
		for _, h := range holdings {
			fmt.Fprintf(&sb, "- %s (%s, %s risk): invested %.2f, returns %.1f%%\n",
				h.ProductName, h.ProductType, h.RiskLevel, h.InvestedAmount, h.ReturnPct())
		}
	}

	sb.WriteString(`
Provide:
1. 3-4 specific investment recommendations
2. Portfolio diversification advice
3. Risk management tips
4. Market outlook considerations

Keep recommendations practical and suitable for Indian markets. Format as clear, actionable advice with each recommendation as a bullet point starting with a bold title.`)

	return sb.String()
}
