// Package analysis implements the portfolio scoring and insight engine
package analysis

import (
	"math"

	"github.com/bobmcallan/arvest/internal/models"
)

// Ideal risk allocation: 40% low, 40% moderate, 20% high of current value.
const (
	targetLowFrac      = 0.40
	targetModerateFrac = 0.40
	targetHighFrac     = 0.20
)

// neutralRiskScore is returned when there is no invested value to bucket.
// An empty portfolio is scored neutrally rather than 0 or 100.
const neutralRiskScore = 50

// Aggregates holds the derived portfolio totals.
type Aggregates struct {
	TotalInvested    float64
	CurrentValue     float64
	TotalReturns     float64
	ReturnPercentage float64
}

// ComputeAggregates sums invested amount and current value across holdings.
// A zero total invested yields a 0 return percentage, never a division error.
func ComputeAggregates(holdings []*models.Investment) Aggregates {
	var agg Aggregates
	for _, h := range holdings {
		agg.TotalInvested += h.InvestedAmount
		agg.CurrentValue += h.CurrentValue
	}
	agg.TotalReturns = agg.CurrentValue - agg.TotalInvested
	if agg.TotalInvested > 0 {
		agg.ReturnPercentage = agg.TotalReturns / agg.TotalInvested * 100
	}
	return agg
}

// RiskDistribution buckets current value by risk level.
func RiskDistribution(holdings []*models.Investment) map[models.RiskLevel]float64 {
	dist := make(map[models.RiskLevel]float64)
	for _, h := range holdings {
		risk := h.RiskLevel
		if risk == "" {
			risk = models.RiskLow
		}
		dist[risk] += h.CurrentValue
	}
	return dist
}

// TypeDistribution buckets current value by product type.
func TypeDistribution(holdings []*models.Investment) map[models.ProductType]float64 {
	dist := make(map[models.ProductType]float64)
	for _, h := range holdings {
		typ := h.ProductType
		if typ == "" {
			typ = models.ProductTypeOther
		}
		dist[typ] += h.CurrentValue
	}
	return dist
}

// RiskScore measures deviation from the ideal 40/40/20 low/moderate/high
// allocation of current value. Deviation in either direction is penalized
// symmetrically. Returns the neutral score when totalValue is 0.
func RiskScore(dist map[models.RiskLevel]float64, totalValue float64) int {
	if totalValue == 0 {
		return neutralRiskScore
	}

	lowFrac := dist[models.RiskLow] / totalValue
	moderateFrac := dist[models.RiskModerate] / totalValue
	highFrac := dist[models.RiskHigh] / totalValue

	score := 100 -
		math.Abs(lowFrac-targetLowFrac)*100 -
		math.Abs(moderateFrac-targetModerateFrac)*100 -
		math.Abs(highFrac-targetHighFrac)*100

	return clamp(int(math.Round(score)))
}

// DiversificationScore rewards the number of distinct product types on a
// discrete scale with diminishing increments. Amount weighting is ignored;
// the count of categories is the signal.
func DiversificationScore(dist map[models.ProductType]float64) int {
	switch len(dist) {
	case 0:
		return 0
	case 1:
		return 30
	case 2:
		return 60
	case 3:
		return 85
	default:
		return 100
	}
}

// PerformanceScore maps the portfolio return percentage to a step function.
// Bands keep the score stable across small return deltas near a boundary.
func PerformanceScore(returnPercentage float64) int {
	switch {
	case returnPercentage < 0:
		return 20
	case returnPercentage < 5:
		return 40
	case returnPercentage < 10:
		return 60
	case returnPercentage < 15:
		return 80
	default:
		return 100
	}
}

// OverallScore is the round-half-up mean of the three sub-scores.
func OverallScore(risk, diversification, performance int) int {
	return clamp(int(math.Floor(float64(risk+diversification+performance)/3 + 0.5)))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
