package server

import (
	"net/http"
	"time"

	"github.com/bobmcallan/arvest/internal/models"
)

// handleProfile handles GET /api/profile and PUT /api/profile.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleProfileGet(w, r)
	case http.MethodPut:
		s.handleProfileUpdate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := s.app.Storage.UserStore().GetProfile(r.Context(), uc.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to load profile")
		WriteError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if profile == nil {
		// No profile saved yet: return the defaults the advisor would use.
		profile = &models.RiskProfile{UserID: uc.UserID}
		profile.RiskAppetite = profile.AppetiteOrDefault()
		profile.InvestmentGoals = profile.GoalsOrDefault()
	}

	WriteJSON(w, http.StatusOK, profile)
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		RiskAppetite    string   `json:"risk_appetite"`
		Age             int      `json:"age"`
		InvestmentGoals []string `json:"investment_goals"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	appetite := models.RiskAppetite(req.RiskAppetite)
	switch appetite {
	case models.RiskAppetiteConservative, models.RiskAppetiteModerate, models.RiskAppetiteAggressive:
	default:
		WriteError(w, http.StatusBadRequest, "risk_appetite must be conservative, moderate, or aggressive")
		return
	}
	if req.Age < 0 || req.Age > 120 {
		WriteError(w, http.StatusBadRequest, "age is out of range")
		return
	}

	profile := &models.RiskProfile{
		UserID:          uc.UserID,
		RiskAppetite:    appetite,
		Age:             req.Age,
		InvestmentGoals: req.InvestmentGoals,
		UpdatedAt:       time.Now().UTC(),
	}
	if err := s.app.Storage.UserStore().SaveProfile(r.Context(), profile); err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to save profile")
		WriteError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}
