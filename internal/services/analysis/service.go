package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// narrativeTimeout bounds the text-generation call so a slow model cannot
// hang the analysis request.
const narrativeTimeout = 20 * time.Second

const (
	emptyPortfolioNarrative = "No active investments found. Consider starting your investment journey with diversified portfolio options."
	fallbackNarrative       = "Portfolio analysis completed. Consider reviewing your asset allocation for optimal performance."
)

// Service implements AnalysisService
type Service struct {
	storage interfaces.StorageManager
	textgen interfaces.TextGenClient
	logger  *common.Logger
}

// NewService creates a new analysis service
func NewService(storage interfaces.StorageManager, textgen interfaces.TextGenClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		textgen: textgen,
		logger:  logger,
	}
}

// AnalyzePortfolio scores the user's active holdings. It never returns an
// error: unauthenticated callers and upstream failures both degrade to a
// fixed default analysis so the caller always has something to display.
func (s *Service) AnalyzePortfolio(ctx context.Context, userID string) *models.PortfolioAnalysis {
	if userID == "" {
		s.logger.Debug().Msg("No user in context, returning default analysis")
		return DefaultAnalysis()
	}

	holdings, err := s.storage.InvestmentStore().ListActive(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to load holdings, returning default analysis")
		return DefaultAnalysis()
	}

	analysis := s.scoreHoldings(holdings)
	analysis.Narrative = s.narrative(ctx, holdings, analysis)
	return analysis
}

func (s *Service) scoreHoldings(holdings []*models.Investment) *models.PortfolioAnalysis {
	agg := ComputeAggregates(holdings)
	riskDist := RiskDistribution(holdings)
	typeDist := TypeDistribution(holdings)

	riskScore := RiskScore(riskDist, agg.CurrentValue)
	diversificationScore := DiversificationScore(typeDist)
	performanceScore := PerformanceScore(agg.ReturnPercentage)

	return &models.PortfolioAnalysis{
		OverallScore:         OverallScore(riskScore, diversificationScore, performanceScore),
		RiskScore:            riskScore,
		DiversificationScore: diversificationScore,
		PerformanceScore:     performanceScore,
		Insights:             BuildInsights(riskScore, diversificationScore, performanceScore, agg.ReturnPercentage),
		RiskDistribution:     riskDist,
		TypeDistribution:     typeDist,
		TotalInvested:        agg.TotalInvested,
		CurrentValue:         agg.CurrentValue,
		TotalReturns:         agg.TotalReturns,
		ReturnPercentage:     agg.ReturnPercentage,
	}
}

// narrative augments the analysis with model-generated commentary. Scores
// are computed before this runs and are never derived from model text.
func (s *Service) narrative(ctx context.Context, holdings []*models.Investment, analysis *models.PortfolioAnalysis) string {
	if len(holdings) == 0 {
		return emptyPortfolioNarrative
	}
	if s.textgen == nil {
		return fallbackNarrative
	}

	genCtx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	text, err := s.textgen.GenerateText(genCtx, s.buildNarrativePrompt(holdings, analysis))
	if err != nil || strings.TrimSpace(text) == "" {
		s.logger.Debug().Err(err).Msg("Narrative generation failed, using fallback text")
		return fallbackNarrative
	}
	return strings.TrimSpace(text)
}

func (s *Service) buildNarrativePrompt(holdings []*models.Investment, analysis *models.PortfolioAnalysis) string {
	var sb strings.Builder
	sb.WriteString("You are a financial advisor reviewing an investment portfolio.\n\n")
	fmt.Fprintf(&sb, "Total portfolio value: %.2f (invested %.2f, return %.1f%%)\n\nHoldings:\n",
		analysis.CurrentValue, analysis.TotalInvested, analysis.ReturnPercentage)
	for _, h := range holdings {
		fmt.Fprintf(&sb, "- %s (%s): invested %.2f, returns %.1f%%\n",
			h.ProductName, h.ProductType, h.InvestedAmount, h.ReturnPct())
	}
	sb.WriteString("\nWrite a short plain-text assessment (2-3 sentences) of this portfolio's balance and performance. Do not include numbers for scores, headings, or markdown.")
	return sb.String()
}

var _ interfaces.AnalysisService = (*Service)(nil)
