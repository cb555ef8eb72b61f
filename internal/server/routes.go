package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/arvest/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/health/db", s.handleHealthDB)
	mux.HandleFunc("/api/health/ai", s.handleHealthAI)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Auth
	mux.HandleFunc("/api/auth/signup", s.handleSignup)
	mux.HandleFunc("/api/auth/login", s.handleLogin)
	mux.HandleFunc("/api/auth/me", s.handleMe)

	// Products
	mux.HandleFunc("/api/products/", s.routeProducts)
	mux.HandleFunc("/api/products", s.handleProductsRoot)

	// Investments
	mux.HandleFunc("/api/investments/", s.routeInvestments)
	mux.HandleFunc("/api/investments", s.handleInvestmentsRoot)
	mux.HandleFunc("/api/transactions", s.handleTransactions)

	// Portfolio
	mux.HandleFunc("/api/portfolio/summary", s.handlePortfolioSummary)
	mux.HandleFunc("/api/portfolio/analysis", s.handlePortfolioAnalysis)
	mux.HandleFunc("/api/portfolio/recommendations", s.handleRecommendations)

	// Profile
	mux.HandleFunc("/api/profile", s.handleProfile)

	// Admin
	mux.HandleFunc("/api/admin/logs", s.handleAdminLogs)
}

// routeProducts dispatches /api/products/{id} and /api/products/{id}/description.
func (s *Server) routeProducts(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if path == "" {
		s.handleProductsRoot(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	id := parts[0]
	if len(parts) == 2 {
		if parts[1] == "description" {
			s.handleProductDescription(w, r, id)
			return
		}
		WriteError(w, http.StatusNotFound, "Not found")
		return
	}

	s.handleProductByID(w, r, id)
}

// routeInvestments dispatches /api/investments/{id}/redeem.
func (s *Server) routeInvestments(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/investments/")
	if path == "" {
		s.handleInvestmentsRoot(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 2 && parts[1] == "redeem" {
		s.handleRedeem(w, r, parts[0])
		return
	}

	WriteError(w, http.StatusNotFound, "Not found")
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealthDB(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if err := s.app.Storage.Ping(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("Database health check failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealthAI(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if s.app.TextGen == nil {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "not_configured"})
		return
	}
	if err := s.app.TextGen.Ping(r.Context()); err != nil {
		s.logger.Warn().Err(err).Msg("AI health check failed")
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
