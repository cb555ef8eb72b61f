// Package product manages the investment product catalog.
package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

const descriptionTimeout = 20 * time.Second

// Service implements ProductService
type Service struct {
	storage interfaces.StorageManager
	textgen interfaces.TextGenClient
	logger  *common.Logger
}

// NewService creates a new product service
func NewService(storage interfaces.StorageManager, textgen interfaces.TextGenClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		textgen: textgen,
		logger:  logger,
	}
}

// ListProducts returns catalog products, newest first.
func (s *Service) ListProducts(ctx context.Context, activeOnly bool) ([]*models.Product, error) {
	return s.storage.ProductStore().ListProducts(ctx, activeOnly)
}

// GetProduct returns one product by ID.
func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.storage.ProductStore().GetProduct(ctx, id)
}

// CreateProduct validates and stores a new product. Type and risk level
// are normalized to their canonical forms; a missing description is
// generated.
func (s *Service) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ProductType = models.NormalizeProductType(string(product.ProductType))
	product.RiskLevel = models.NormalizeRiskLevel(string(product.RiskLevel))

	if missing := product.Validate(); len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	now := time.Now().UTC()
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	product.IsActive = true
	product.CreatedAt = now
	product.UpdatedAt = now

	if strings.TrimSpace(product.Description) == "" {
		product.Description = s.GenerateDescription(ctx, product)
	}

	s.logger.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("Creating product")
	return s.storage.ProductStore().SaveProduct(ctx, product)
}

// UpdateProduct applies changes to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, product *models.Product) error {
	existing, err := s.storage.ProductStore().GetProduct(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("product not found: %w", err)
	}

	product.ProductType = models.NormalizeProductType(string(product.ProductType))
	product.RiskLevel = models.NormalizeRiskLevel(string(product.RiskLevel))
	if missing := product.Validate(); len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()

	s.logger.Info().Str("product_id", product.ID).Msg("Updating product")
	return s.storage.ProductStore().SaveProduct(ctx, product)
}

// DeactivateProduct removes a product from the active catalog without
// deleting it; existing investments keep referencing it.
func (s *Service) DeactivateProduct(ctx context.Context, id string) error {
	s.logger.Info().Str("product_id", id).Msg("Deactivating product")
	return s.storage.ProductStore().DeactivateProduct(ctx, id)
}

// GenerateDescription produces marketing copy for a product. The model is
// tried first; any failure yields the deterministic template so this never
// returns an empty string or an error.
func (s *Service) GenerateDescription(ctx context.Context, product *models.Product) string {
	if s.textgen != nil {
		genCtx, cancel := context.WithTimeout(ctx, descriptionTimeout)
		defer cancel()

		text, err := s.textgen.GenerateText(genCtx, buildDescriptionPrompt(product))
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
		s.logger.Debug().Err(err).Str("product_id", product.ID).Msg("Description generation failed, using template")
	}
	return templateDescription(product)
}

func buildDescriptionPrompt(product *models.Product) string {
	var sb strings.Builder
	sb.WriteString("Generate a compelling and professional investment product description for the following details:\n\n")
	fmt.Fprintf(&sb, "Product Name: %s\n", product.Name)
	fmt.Fprintf(&sb, "Investment Type: %s\n", product.ProductType)
	fmt.Fprintf(&sb, "Tenure: %d months\n", product.TenureMonths)
	fmt.Fprintf(&sb, "Annual Yield: %.2f%%\n", product.AnnualYield)
	fmt.Fprintf(&sb, "Risk Level: %s\n", product.RiskLevel)
	fmt.Fprintf(&sb, "Min Investment: %.2f\n", product.MinInvestment)
	sb.WriteString(`
Create a description that:
- Highlights the key benefits and features
- Explains the investment opportunity clearly
- Mentions the risk level appropriately
- Is engaging but professional
- Is 2-3 paragraphs long

Make it sound attractive to potential investors while being honest about risks.`)
	return sb.String()
}

// templateDescription is the deterministic fallback copy. Type and risk
// are normalized here too, so loose input from callers that skipped
// CreateProduct still renders canonically.
func templateDescription(product *models.Product) string {
	productType := models.NormalizeProductType(string(product.ProductType))
	riskLevel := models.NormalizeRiskLevel(string(product.RiskLevel))
	return fmt.Sprintf(
		"%s is a %s investment opportunity offering %.2f%% annual returns over %d months. This %s risk investment provides a structured approach to wealth building with professional management and transparent reporting.",
		product.Name,
		strings.ReplaceAll(string(productType), "_", " "),
		product.AnnualYield,
		product.TenureMonths,
		riskLevel,
	)
}

var _ interfaces.ProductService = (*Service)(nil)
