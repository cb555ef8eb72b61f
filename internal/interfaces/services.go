// Package interfaces defines service contracts for Arvest
package interfaces

import (
	"context"

	"github.com/bobmcallan/arvest/internal/models"
)

// AnalysisService computes portfolio analyses.
type AnalysisService interface {
	// AnalyzePortfolio scores the user's active holdings and attaches
	// insights. userID may be empty (unauthenticated); the result is then
	// the fixed default analysis. Never returns an error to the caller —
	// upstream failures degrade to the default analysis.
	AnalyzePortfolio(ctx context.Context, userID string) *models.PortfolioAnalysis
}

// AdvisorService generates investment recommendations.
type AdvisorService interface {
	// Recommend returns 1-4 recommendations for the profile and holdings.
	// The generative path is attempted first; an empty userID
	// (unauthenticated caller) or any generation failure yields the
	// deterministic rule-based fallback. Never returns an empty list.
	Recommend(ctx context.Context, userID string, profile *models.RiskProfile, holdings []*models.Investment) []*models.Recommendation
}

// ProductService manages the product catalog.
type ProductService interface {
	ListProducts(ctx context.Context, activeOnly bool) ([]*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeactivateProduct(ctx context.Context, id string) error

	// GenerateDescription produces marketing copy for a product via the
	// text service, falling back to a deterministic template on failure.
	GenerateDescription(ctx context.Context, product *models.Product) string
}

// InvestOptions carries the fields of an invest request.
type InvestOptions struct {
	ProductID string  `json:"product_id"`
	Amount    float64 `json:"amount"`
}

// InvestmentService manages user positions.
type InvestmentService interface {
	Invest(ctx context.Context, userID string, opts InvestOptions) (*models.Investment, error)
	Redeem(ctx context.Context, userID, investmentID string) (*models.Investment, error)
	ListHoldings(ctx context.Context, userID string) ([]*models.Investment, error)
	ListTransactions(ctx context.Context, userID string, limit int) ([]*models.Transaction, error)
	Summary(ctx context.Context, userID string) (*models.PortfolioSummary, error)
}

// AuditService is the best-effort audit log writer.
type AuditService interface {
	// Record appends one entry. Fire-and-forget: failures are swallowed
	// after a diagnostic log and never affect the caller.
	Record(ctx context.Context, entry *models.AuditLogEntry)
}
