package server

import (
	"net/http"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/models"
)

// handlePortfolioAnalysis handles GET /api/portfolio/analysis. Always
// returns 200: unauthenticated callers and upstream failures receive the
// fixed default analysis.
func (s *Server) handlePortfolioAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := common.ResolveUserID(r.Context())
	analysis := s.app.Analysis.AnalyzePortfolio(r.Context(), userID)

	WriteJSON(w, http.StatusOK, analysis)
}

// handleRecommendations handles GET /api/portfolio/recommendations. Always
// returns 200 with 1-4 recommendations; profile or holdings lookup failures
// degrade to the rule-based fallback.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()
	userID := common.ResolveUserID(ctx)

	var (
		profile  *models.RiskProfile
		holdings []*models.Investment
	)
	if userID != "" {
		var err error
		profile, err = s.app.Storage.UserStore().GetProfile(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Profile lookup failed, using defaults")
			profile = nil
		}
		holdings, err = s.app.Investments.ListHoldings(ctx, userID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("Holdings lookup failed, using defaults")
			holdings = nil
		}
	}

	recs := s.app.Advisor.Recommend(ctx, userID, profile, holdings)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recs,
		"count":           len(recs),
	})
}
