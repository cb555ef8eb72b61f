package surrealdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// InvestmentStore implements interfaces.InvestmentStore using SurrealDB.
type InvestmentStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewInvestmentStore creates a new InvestmentStore.
func NewInvestmentStore(db *surrealdb.DB, logger *common.Logger) *InvestmentStore {
	return &InvestmentStore{db: db, logger: logger}
}

func (s *InvestmentStore) GetInvestment(ctx context.Context, id string) (*models.Investment, error) {
	inv, err := surrealdb.Select[models.Investment](ctx, s.db, surrealmodels.NewRecordID("investment", id))
	if err != nil {
		return nil, fmt.Errorf("failed to select investment: %w", err)
	}
	if inv == nil || inv.ID == "" {
		return nil, errors.New("investment not found")
	}
	return inv, nil
}

func (s *InvestmentStore) SaveInvestment(ctx context.Context, inv *models.Investment) error {
	sql := `UPSERT $rid SET
		id = $id, user_id = $user_id, product_id = $product_id,
		invested_amount = $invested_amount, current_value = $current_value,
		status = $status, investment_date = $investment_date, maturity_date = $maturity_date,
		product_name = $product_name, product_type = $product_type,
		risk_level = $risk_level, annual_yield = $annual_yield,
		created_at = $created_at, updated_at = $updated_at`
	vars := map[string]any{
		"rid":             surrealmodels.NewRecordID("investment", inv.ID),
		"id":              inv.ID,
		"user_id":         inv.UserID,
		"product_id":      inv.ProductID,
		"invested_amount": inv.InvestedAmount,
		"current_value":   inv.CurrentValue,
		"status":          inv.Status,
		"investment_date": inv.InvestmentDate,
		"maturity_date":   inv.MaturityDate,
		"product_name":    inv.ProductName,
		"product_type":    inv.ProductType,
		"risk_level":      inv.RiskLevel,
		"annual_yield":    inv.AnnualYield,
		"created_at":      inv.CreatedAt,
		"updated_at":      inv.UpdatedAt,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[any](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save investment after retries: %w", lastErr)
}

func (s *InvestmentStore) ListActive(ctx context.Context, userID string) ([]*models.Investment, error) {
	return s.list(ctx, userID, true)
}

func (s *InvestmentStore) ListAll(ctx context.Context, userID string) ([]*models.Investment, error) {
	return s.list(ctx, userID, false)
}

func (s *InvestmentStore) list(ctx context.Context, userID string, activeOnly bool) ([]*models.Investment, error) {
	sql := "SELECT * FROM investment WHERE user_id = $user_id"
	vars := map[string]any{"user_id": userID}
	if activeOnly {
		sql += " AND status = $status"
		vars["status"] = models.InvestmentStatusActive
	}
	sql += " ORDER BY investment_date DESC, id DESC"

	results, err := surrealdb.Query[[]models.Investment](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}

	investments := make([]*models.Investment, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			investments = append(investments, &(*results)[0].Result[i])
		}
	}
	return investments, nil
}

func (s *InvestmentStore) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	sql := `UPSERT $rid SET
		id = $id, user_id = $user_id, transaction_type = $transaction_type,
		amount = $amount, description = $description, created_at = $created_at`
	vars := map[string]any{
		"rid":              surrealmodels.NewRecordID("transaction", tx.ID),
		"id":               tx.ID,
		"user_id":          tx.UserID,
		"transaction_type": tx.Type,
		"amount":           tx.Amount,
		"description":      tx.Description,
		"created_at":       tx.CreatedAt,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (s *InvestmentStore) ListTransactions(ctx context.Context, userID string, limit int) ([]*models.Transaction, error) {
	if limit < 1 {
		limit = 50
	}
	sql := "SELECT * FROM transaction WHERE user_id = $user_id ORDER BY created_at DESC, id DESC LIMIT $limit"
	vars := map[string]any{
		"user_id": userID,
		"limit":   limit,
	}

	results, err := surrealdb.Query[[]models.Transaction](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*models.Transaction, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			transactions = append(transactions, &(*results)[0].Result[i])
		}
	}
	return transactions, nil
}

// Compile-time check
var _ interfaces.InvestmentStore = (*InvestmentStore)(nil)
