package server

import (
	"net/http"
	"testing"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/models"
	"github.com/bobmcallan/arvest/internal/services/advisor"
)

func TestPortfolioAnalysis_UnauthenticatedDefault(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/portfolio/analysis", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var a models.PortfolioAnalysis
	decodeBody(t, rec, &a)
	if a.OverallScore != 75 || a.RiskScore != 60 || a.DiversificationScore != 70 || a.PerformanceScore != 80 {
		t.Errorf("expected default analysis scores, got %+v", a)
	}
	if len(a.Insights) != 3 {
		t.Errorf("expected 3 insights, got %d", len(a.Insights))
	}
}

func TestPortfolioAnalysis_EmptyPortfolio(t *testing.T) {
	srv, mem := newTestServer(t)
	token := seedUser(t, srv, mem, "user_1", "one@example.com", "user")

	rec := doRequest(srv, http.MethodGet, "/api/portfolio/analysis", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var a models.PortfolioAnalysis
	decodeBody(t, rec, &a)
	if a.RiskScore != 50 || a.DiversificationScore != 0 || a.PerformanceScore != 40 {
		t.Errorf("expected empty-portfolio scores 50/0/40, got %+v", a)
	}
	if a.OverallScore != 30 {
		t.Errorf("expected overall 30, got %d", a.OverallScore)
	}
	if a.Narrative == "" {
		t.Error("expected fallback narrative")
	}
}

func TestPortfolioAnalysis_WithHoldings(t *testing.T) {
	srv, mem := newTestServer(t)
	token := seedUser(t, srv, mem, "user_1", "one@example.com", "user")
	seedProduct(t, mem, "prod_1", "Steady FD", 5000)

	rec := doRequest(srv, http.MethodPost, "/api/investments", token, jsonBody(t, map[string]interface{}{
		"product_id": "prod_1",
		"amount":     10000,
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("invest: expected 201, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodGet, "/api/portfolio/analysis", token, nil)
	var a models.PortfolioAnalysis
	decodeBody(t, rec, &a)
	if a.TotalInvested != 10000 {
		t.Errorf("expected total invested 10000, got %v", a.TotalInvested)
	}
	// Single all-low holding: one type bucket, no gains yet.
	if a.DiversificationScore != 30 {
		t.Errorf("expected diversification 30, got %d", a.DiversificationScore)
	}
}

func TestRecommendations_UnauthenticatedStarterSet(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/portfolio/recommendations", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Recommendations []*models.Recommendation `json:"recommendations"`
		Count           int                      `json:"count"`
	}
	decodeBody(t, rec, &resp)
	if resp.Count == 0 || resp.Count > 4 {
		t.Fatalf("expected 1-4 recommendations, got %d", resp.Count)
	}
	for _, r := range resp.Recommendations {
		if r.Title == "" || r.Description == "" || r.Priority == "" {
			t.Errorf("incomplete recommendation: %+v", r)
		}
	}
}

func TestRecommendations_AnonymousNeverReachesModel(t *testing.T) {
	srv, _ := newTestServer(t)
	gen := &cannedTextGen{text: "* **HDFC Flexi Cap Fund**: A well diversified equity fund suited for long-term growth and patient investors."}
	srv.app.Advisor = advisor.NewService(gen, common.NewSilentLogger())

	rec := doRequest(srv, http.MethodGet, "/api/portfolio/recommendations", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("expected no model calls for anonymous caller, got %d", len(gen.prompts))
	}

	var resp struct {
		Recommendations []*models.Recommendation `json:"recommendations"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Recommendations) != 3 {
		t.Fatalf("expected the 3-item starter set, got %d", len(resp.Recommendations))
	}
	if resp.Recommendations[0].Title != "Build an Emergency Fund" {
		t.Errorf("expected starter set first item, got %q", resp.Recommendations[0].Title)
	}
}

func TestRecommendations_AuthenticatedFallback(t *testing.T) {
	srv, mem := newTestServer(t)
	token := seedUser(t, srv, mem, "user_1", "one@example.com", "user")
	seedProduct(t, mem, "prod_1", "Steady FD", 5000)

	rec := doRequest(srv, http.MethodPost, "/api/investments", token, jsonBody(t, map[string]interface{}{
		"product_id": "prod_1",
		"amount":     60000,
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("invest: expected 201, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodGet, "/api/portfolio/recommendations", token, nil)
	var resp struct {
		Recommendations []*models.Recommendation `json:"recommendations"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Recommendations) == 0 {
		t.Fatal("expected non-empty recommendations")
	}
	// Fewer than 3 holdings and over 50k invested: diversification first.
	if resp.Recommendations[0].Type != models.RecommendationTypeDiversification {
		t.Errorf("expected diversification recommendation first, got %q", resp.Recommendations[0].Type)
	}
}
