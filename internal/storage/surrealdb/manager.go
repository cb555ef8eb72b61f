// Package surrealdb implements Arvest storage on SurrealDB.
package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
)

// Manager implements interfaces.StorageManager using SurrealDB.
type Manager struct {
	db     *surrealdb.DB
	logger *common.Logger

	userStore       *UserStore
	productStore    *ProductStore
	investmentStore *InvestmentStore
	auditStore      *AuditStore
}

// NewManager creates a new StorageManager connected to SurrealDB.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	ctx := context.Background()

	db, err := surrealdb.New(config.Storage.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SurrealDB: %w", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": config.Storage.Username,
		"pass": config.Storage.Password,
	}); err != nil {
		return nil, fmt.Errorf("failed to sign in to SurrealDB: %w", err)
	}

	if err := db.Use(ctx, config.Storage.Namespace, config.Storage.Database); err != nil {
		return nil, fmt.Errorf("failed to select namespace/database: %w", err)
	}

	// Define tables up front (SurrealDB v3 errors on querying non-existent tables)
	tables := []string{"user", "risk_profile", "product", "investment", "transaction", "audit_log"}
	for _, table := range tables {
		sql := fmt.Sprintf("DEFINE TABLE IF NOT EXISTS %s SCHEMALESS", table)
		if _, err := surrealdb.Query[any](ctx, db, sql, nil); err != nil {
			return nil, fmt.Errorf("failed to define table %s: %w", table, err)
		}
	}

	m := &Manager{
		db:     db,
		logger: logger,
	}

	m.userStore = NewUserStore(db, logger)
	m.productStore = NewProductStore(db, logger)
	m.investmentStore = NewInvestmentStore(db, logger)
	m.auditStore = NewAuditStore(db, logger)

	logger.Info().
		Str("address", config.Storage.Address).
		Str("namespace", config.Storage.Namespace).
		Str("database", config.Storage.Database).
		Msg("SurrealDB storage manager initialized")

	return m, nil
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.userStore
}

func (m *Manager) ProductStore() interfaces.ProductStore {
	return m.productStore
}

func (m *Manager) InvestmentStore() interfaces.InvestmentStore {
	return m.investmentStore
}

func (m *Manager) AuditStore() interfaces.AuditStore {
	return m.auditStore
}

// Ping verifies database connectivity with a trivial query.
func (m *Manager) Ping(ctx context.Context) error {
	if _, err := surrealdb.Query[any](ctx, m.db, "RETURN 1", nil); err != nil {
		return fmt.Errorf("storage ping failed: %w", err)
	}
	return nil
}

func (m *Manager) Close() error {
	m.db.Close(context.Background())
	return nil
}

// isNotFoundError reports whether the driver error means the record simply
// does not exist, which most callers treat as an empty result.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no record")
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
