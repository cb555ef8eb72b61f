package server

import (
	"net/http"
	"strings"

	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// handleInvestmentsRoot handles GET /api/investments and POST /api/investments.
func (s *Server) handleInvestmentsRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleHoldings(w, r)
	case http.MethodPost:
		s.handleInvest(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleHoldings(w http.ResponseWriter, r *http.Request) {
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	holdings, err := s.app.Investments.ListHoldings(r.Context(), uc.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to list holdings")
		WriteError(w, http.StatusInternalServerError, "failed to list holdings")
		return
	}
	if holdings == nil {
		holdings = []*models.Investment{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"investments": holdings,
		"count":       len(holdings),
	})
}

func (s *Server) handleInvest(w http.ResponseWriter, r *http.Request) {
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	var opts interfaces.InvestOptions
	if !DecodeJSON(w, r, &opts) {
		return
	}

	inv, err := s.app.Investments.Invest(r.Context(), uc.UserID, opts)
	if err != nil {
		if isNotFound(err) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	WriteJSON(w, http.StatusCreated, inv)
}

// handleRedeem handles POST /api/investments/{id}/redeem.
func (s *Server) handleRedeem(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	inv, err := s.app.Investments.Redeem(r.Context(), uc.UserID, id)
	if err != nil {
		switch {
		case isNotFound(err):
			WriteError(w, http.StatusNotFound, "investment not found")
		case strings.Contains(err.Error(), "already closed"):
			WriteError(w, http.StatusConflict, err.Error())
		default:
			s.logger.Error().Err(err).Str("investment_id", id).Msg("Redeem failed")
			WriteError(w, http.StatusInternalServerError, "failed to redeem investment")
		}
		return
	}

	WriteJSON(w, http.StatusOK, inv)
}

// handleTransactions handles GET /api/transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit := QueryInt(r, "limit", 50)
	transactions, err := s.app.Investments.ListTransactions(r.Context(), uc.UserID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to list transactions")
		WriteError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if transactions == nil {
		transactions = []*models.Transaction{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// handlePortfolioSummary handles GET /api/portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	summary, err := s.app.Investments.Summary(r.Context(), uc.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to build summary")
		WriteError(w, http.StatusInternalServerError, "failed to build portfolio summary")
		return
	}

	WriteJSON(w, http.StatusOK, summary)
}
