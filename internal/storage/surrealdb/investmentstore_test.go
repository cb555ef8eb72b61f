package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/arvest/internal/models"
)

func testInvestment(id, userID string, status models.InvestmentStatus, date time.Time) *models.Investment {
	return &models.Investment{
		ID:             id,
		UserID:         userID,
		ProductID:      "prod_1",
		InvestedAmount: 10000,
		CurrentValue:   10500,
		Status:         status,
		InvestmentDate: date,
		CreatedAt:      date,
		UpdatedAt:      date,
		ProductName:    "Index Growth Fund",
		ProductType:    models.ProductTypeMutualFund,
		RiskLevel:      models.RiskModerate,
		AnnualYield:    12.0,
	}
}

func TestInvestmentStore_SaveAndGet(t *testing.T) {
	db := testDB(t)
	store := NewInvestmentStore(db, testLogger())
	ctx := context.Background()

	inv := testInvestment("inv_1", "user_1", models.InvestmentStatusActive, time.Now().UTC())
	require.NoError(t, store.SaveInvestment(ctx, inv))

	got, err := store.GetInvestment(ctx, "inv_1")
	require.NoError(t, err)
	assert.Equal(t, 10000.0, got.InvestedAmount)
	assert.Equal(t, models.RiskModerate, got.RiskLevel)
	assert.Equal(t, models.InvestmentStatusActive, got.Status)
}

func TestInvestmentStore_ListActiveFiltersStatusAndUser(t *testing.T) {
	db := testDB(t)
	store := NewInvestmentStore(db, testLogger())
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, store.SaveInvestment(ctx, testInvestment("inv_a", "user_1", models.InvestmentStatusActive, now.Add(-time.Hour))))
	require.NoError(t, store.SaveInvestment(ctx, testInvestment("inv_b", "user_1", models.InvestmentStatusClosed, now.Add(-30*time.Minute))))
	require.NoError(t, store.SaveInvestment(ctx, testInvestment("inv_c", "user_2", models.InvestmentStatusActive, now)))

	active, err := store.ListActive(ctx, "user_1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "inv_a", active[0].ID)

	all, err := store.ListAll(ctx, "user_1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInvestmentStore_TransactionsNewestFirstWithLimit(t *testing.T) {
	db := testDB(t)
	store := NewInvestmentStore(db, testLogger())
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, id := range []string{"tx_1", "tx_2", "tx_3"} {
		tx := &models.Transaction{
			ID:          id,
			UserID:      "user_1",
			Type:        models.TransactionTypeInvestment,
			Amount:      1000,
			Description: "Invested in Index Growth Fund",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.SaveTransaction(ctx, tx))
	}

	txs, err := store.ListTransactions(ctx, "user_1", 2)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "tx_3", txs[0].ID)
	assert.Equal(t, "tx_2", txs[1].ID)
}

func TestInvestmentStore_GetNotFound(t *testing.T) {
	db := testDB(t)
	store := NewInvestmentStore(db, testLogger())

	_, err := store.GetInvestment(context.Background(), "inv_missing")
	assert.Error(t, err)
}
