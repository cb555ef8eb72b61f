package advisor

import (
	"context"
	"strings"
	"time"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// generationTimeout bounds the text-generation call.
const generationTimeout = 20 * time.Second

// Service implements AdvisorService
type Service struct {
	textgen interfaces.TextGenClient
	logger  *common.Logger
}

// NewService creates a new advisor service
func NewService(textgen interfaces.TextGenClient, logger *common.Logger) *Service {
	return &Service{
		textgen: textgen,
		logger:  logger,
	}
}

// Recommend returns 1-4 recommendations. The generative path is tried
// first; any failure there falls back silently to the rule-based set, so
// the caller always receives a non-empty list and never an error.
// Unauthenticated callers (empty userID) skip the model entirely and get
// the deterministic set.
func (s *Service) Recommend(ctx context.Context, userID string, profile *models.RiskProfile, holdings []*models.Investment) []*models.Recommendation {
	var totalInvested float64
	for _, h := range holdings {
		totalInvested += h.InvestedAmount
	}

	if userID != "" {
		if recs := s.generate(ctx, profile, holdings, totalInvested); len(recs) > 0 {
			return recs
		}
	}
	return FallbackRecommendations(holdings, totalInvested)
}

func (s *Service) generate(ctx context.Context, profile *models.RiskProfile, holdings []*models.Investment, totalInvested float64) []*models.Recommendation {
	if s.textgen == nil {
		return nil
	}

	genCtx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	text, err := s.textgen.GenerateText(genCtx, buildPrompt(profile, holdings, totalInvested))
	if err != nil {
		s.logger.Debug().Err(err).Msg("Recommendation generation failed, using rule-based fallback")
		return nil
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Debug().Msg("Recommendation generation returned empty text, using rule-based fallback")
		return nil
	}

	recs := ParseRecommendations(text)
	if len(recs) == 0 {
		s.logger.Debug().Int("text_len", len(text)).Msg("No recommendations parsed from model text, using rule-based fallback")
	}
	return recs
}

var _ interfaces.AdvisorService = (*Service)(nil)
