// Package investment manages user positions and the transaction ledger.
package investment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// Service implements InvestmentService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new investment service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Invest opens a position in a product. The product must be active and the
// amount must meet its minimum. A ledger transaction is recorded alongside
// the position.
func (s *Service) Invest(ctx context.Context, userID string, opts interfaces.InvestOptions) (*models.Investment, error) {
	if userID == "" {
		return nil, fmt.Errorf("user is required")
	}
	if opts.ProductID == "" {
		return nil, fmt.Errorf("product_id is required")
	}
	if opts.Amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	product, err := s.storage.ProductStore().GetProduct(ctx, opts.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product '%s' is no longer available", product.Name)
	}
	if opts.Amount < product.MinInvestment {
		return nil, fmt.Errorf("minimum investment for %s is %.2f", product.Name, product.MinInvestment)
	}

	now := time.Now().UTC()
	inv := &models.Investment{
		ID:             uuid.NewString(),
		UserID:         userID,
		ProductID:      product.ID,
		InvestedAmount: opts.Amount,
		CurrentValue:   opts.Amount,
		Status:         models.InvestmentStatusActive,
		InvestmentDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
		ProductName:    product.Name,
		ProductType:    product.ProductType,
		RiskLevel:      product.RiskLevel,
		AnnualYield:    product.AnnualYield,
	}
	if product.TenureMonths > 0 {
		maturity := now.AddDate(0, product.TenureMonths, 0)
		inv.MaturityDate = &maturity
	}

	if err := s.storage.InvestmentStore().SaveInvestment(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to save investment: %w", err)
	}

	s.recordTransaction(ctx, userID, models.TransactionTypeInvestment, opts.Amount,
		fmt.Sprintf("Invested in %s", product.Name))

	s.logger.Info().Str("user_id", userID).Str("product_id", product.ID).
		Float64("amount", opts.Amount).Msg("Investment created")
	return inv, nil
}

// Redeem closes an active position at its current value.
func (s *Service) Redeem(ctx context.Context, userID, investmentID string) (*models.Investment, error) {
	inv, err := s.storage.InvestmentStore().GetInvestment(ctx, investmentID)
	if err != nil {
		return nil, fmt.Errorf("investment not found: %w", err)
	}
	if inv.UserID != userID {
		return nil, fmt.Errorf("investment not found")
	}
	if inv.Status != models.InvestmentStatusActive {
		return nil, fmt.Errorf("investment is already closed")
	}

	inv.Status = models.InvestmentStatusClosed
	inv.UpdatedAt = time.Now().UTC()

	if err := s.storage.InvestmentStore().SaveInvestment(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to close investment: %w", err)
	}

	s.recordTransaction(ctx, userID, models.TransactionTypeRedemption, inv.CurrentValue,
		fmt.Sprintf("Redeemed %s", inv.ProductName))

	s.logger.Info().Str("user_id", userID).Str("investment_id", investmentID).
		Float64("value", inv.CurrentValue).Msg("Investment redeemed")
	return inv, nil
}

// ListHoldings returns the user's active positions with product fields
// resolved.
func (s *Service) ListHoldings(ctx context.Context, userID string) ([]*models.Investment, error) {
	return s.storage.InvestmentStore().ListActive(ctx, userID)
}

// ListTransactions returns the user's most recent ledger entries.
func (s *Service) ListTransactions(ctx context.Context, userID string, limit int) ([]*models.Transaction, error) {
	return s.storage.InvestmentStore().ListTransactions(ctx, userID, limit)
}

// Summary aggregates the user's active positions.
func (s *Service) Summary(ctx context.Context, userID string) (*models.PortfolioSummary, error) {
	holdings, err := s.storage.InvestmentStore().ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	summary := &models.PortfolioSummary{ActiveCount: len(holdings)}
	for _, h := range holdings {
		summary.TotalInvested += h.InvestedAmount
		summary.CurrentValue += h.CurrentValue
	}
	summary.TotalReturns = summary.CurrentValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.ReturnPercentage = summary.TotalReturns / summary.TotalInvested * 100
	}
	return summary, nil
}

// recordTransaction writes a ledger entry. Ledger failures are logged but
// do not roll back the position change.
func (s *Service) recordTransaction(ctx context.Context, userID string, txType models.TransactionType, amount float64, description string) {
	tx := &models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.storage.InvestmentStore().SaveTransaction(ctx, tx); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to record transaction")
	}
}

var _ interfaces.InvestmentService = (*Service)(nil)
