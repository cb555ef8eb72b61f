// Package interfaces defines service contracts for Arvest
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/arvest/internal/models"
)

// StorageManager coordinates all storage backends
type StorageManager interface {
	UserStore() UserStore
	ProductStore() ProductStore
	InvestmentStore() InvestmentStore
	AuditStore() AuditStore

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	Close() error
}

// UserStore manages user accounts and risk profiles.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error

	// Risk profiles. GetProfile returns (nil, nil) when no profile exists.
	GetProfile(ctx context.Context, userID string) (*models.RiskProfile, error)
	SaveProfile(ctx context.Context, profile *models.RiskProfile) error
}

// ProductStore manages the investment product catalog.
type ProductStore interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	SaveProduct(ctx context.Context, product *models.Product) error
	// ListProducts returns products ordered by created_at descending.
	// When activeOnly is true, deactivated products are excluded.
	ListProducts(ctx context.Context, activeOnly bool) ([]*models.Product, error)
	DeactivateProduct(ctx context.Context, id string) error
}

// InvestmentStore manages user positions and the transaction ledger.
type InvestmentStore interface {
	GetInvestment(ctx context.Context, id string) (*models.Investment, error)
	SaveInvestment(ctx context.Context, inv *models.Investment) error
	// ListActive returns the user's active investments with product
	// descriptor fields resolved.
	ListActive(ctx context.Context, userID string) ([]*models.Investment, error)
	ListAll(ctx context.Context, userID string) ([]*models.Investment, error)

	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	ListTransactions(ctx context.Context, userID string, limit int) ([]*models.Transaction, error)
}

// AuditStore is the append-only request log. No update or delete is exposed.
type AuditStore interface {
	Append(ctx context.Context, entry *models.AuditLogEntry) error
	List(ctx context.Context, opts AuditListOptions) ([]*models.AuditLogEntry, int, error) // items, total, error
}

// AuditListOptions configures filtering and pagination for audit queries.
type AuditListOptions struct {
	UserID     string
	Endpoint   string
	StatusCode int
	Since      *time.Time
	Before     *time.Time
	Page       int
	PerPage    int
}
