package surrealdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// ProductStore implements interfaces.ProductStore using SurrealDB.
type ProductStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewProductStore creates a new ProductStore.
func NewProductStore(db *surrealdb.DB, logger *common.Logger) *ProductStore {
	return &ProductStore{db: db, logger: logger}
}

func (s *ProductStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := surrealdb.Select[models.Product](ctx, s.db, surrealmodels.NewRecordID("product", id))
	if err != nil {
		return nil, fmt.Errorf("failed to select product: %w", err)
	}
	if product == nil || product.ID == "" {
		return nil, errors.New("product not found")
	}
	return product, nil
}

func (s *ProductStore) SaveProduct(ctx context.Context, product *models.Product) error {
	sql := `UPSERT $rid SET
		id = $id, name = $name, product_type = $product_type, risk_level = $risk_level,
		annual_yield = $annual_yield, tenure_months = $tenure_months,
		min_investment = $min_investment, description = $description,
		is_active = $is_active, created_at = $created_at, updated_at = $updated_at`
	vars := map[string]any{
		"rid":            surrealmodels.NewRecordID("product", product.ID),
		"id":             product.ID,
		"name":           product.Name,
		"product_type":   product.ProductType,
		"risk_level":     product.RiskLevel,
		"annual_yield":   product.AnnualYield,
		"tenure_months":  product.TenureMonths,
		"min_investment": product.MinInvestment,
		"description":    product.Description,
		"is_active":      product.IsActive,
		"created_at":     product.CreatedAt,
		"updated_at":     product.UpdatedAt,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (s *ProductStore) ListProducts(ctx context.Context, activeOnly bool) ([]*models.Product, error) {
	sql := "SELECT * FROM product"
	vars := map[string]any{}
	if activeOnly {
		sql += " WHERE is_active = $active"
		vars["active"] = true
	}
	sql += " ORDER BY created_at DESC, id DESC"

	results, err := surrealdb.Query[[]models.Product](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*models.Product, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			products = append(products, &(*results)[0].Result[i])
		}
	}
	return products, nil
}

func (s *ProductStore) DeactivateProduct(ctx context.Context, id string) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}

	sql := "UPDATE $rid SET is_active = false, updated_at = $now"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("product", id),
		"now": time.Now().UTC(),
	}

	if _, err := surrealdb.Query[[]models.Product](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	return nil
}

// Compile-time check
var _ interfaces.ProductStore = (*ProductStore)(nil)
