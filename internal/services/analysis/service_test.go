package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

type stubInvestmentStore struct {
	interfaces.InvestmentStore
	holdings []*models.Investment
	err      error
}

func (s *stubInvestmentStore) ListActive(ctx context.Context, userID string) ([]*models.Investment, error) {
	return s.holdings, s.err
}

type stubStorage struct {
	interfaces.StorageManager
	investments *stubInvestmentStore
}

func (s *stubStorage) InvestmentStore() interfaces.InvestmentStore {
	return s.investments
}

type stubTextGen struct {
	text string
	err  error
}

func (s *stubTextGen) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func (s *stubTextGen) Ping(ctx context.Context) error { return s.err }
func (s *stubTextGen) Close() error                   { return nil }

func newTestService(holdings []*models.Investment, storeErr error, textgen interfaces.TextGenClient) *Service {
	storage := &stubStorage{investments: &stubInvestmentStore{holdings: holdings, err: storeErr}}
	return NewService(storage, textgen, common.NewSilentLogger())
}

func TestAnalyzePortfolioEmptyHoldings(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	analysis := svc.AnalyzePortfolio(context.Background(), "user_1")

	require.NotNil(t, analysis)
	assert.Equal(t, 50, analysis.RiskScore)
	assert.Equal(t, 0, analysis.DiversificationScore)
	assert.Equal(t, 40, analysis.PerformanceScore)
	assert.Equal(t, 30, analysis.OverallScore)
	assert.Equal(t, emptyPortfolioNarrative, analysis.Narrative)
}

func TestAnalyzePortfolioBalanced(t *testing.T) {
	holdings := []*models.Investment{
		holding("Liquid FD", models.ProductTypeFixedDeposit, models.RiskLow, 40000, 40000),
		holding("Index MF", models.ProductTypeMutualFund, models.RiskModerate, 40000, 40000),
		holding("Growth ETF", models.ProductTypeETF, models.RiskHigh, 20000, 20000),
	}
	svc := newTestService(holdings, nil, nil)

	analysis := svc.AnalyzePortfolio(context.Background(), "user_1")

	assert.Equal(t, 100, analysis.RiskScore)
	assert.Equal(t, 85, analysis.DiversificationScore)
	assert.Equal(t, 40, analysis.PerformanceScore) // flat returns
	assert.Equal(t, 100000.0, analysis.TotalInvested)
	assert.Len(t, analysis.Insights, 3)
}

func TestAnalyzePortfolioSingleHoldingWithReturns(t *testing.T) {
	holdings := []*models.Investment{
		holding("Index MF", models.ProductTypeMutualFund, models.RiskModerate, 10000, 11000),
	}
	svc := newTestService(holdings, nil, nil)

	analysis := svc.AnalyzePortfolio(context.Background(), "user_1")

	assert.InDelta(t, 10.0, analysis.ReturnPercentage, 0.001)
	assert.Equal(t, 80, analysis.PerformanceScore)
	assert.Equal(t, 30, analysis.DiversificationScore)
}

func TestAnalyzePortfolioUnauthenticated(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	analysis := svc.AnalyzePortfolio(context.Background(), "")

	assert.Equal(t, 75, analysis.OverallScore)
	assert.Equal(t, 60, analysis.RiskScore)
}

func TestAnalyzePortfolioStoreFailure(t *testing.T) {
	svc := newTestService(nil, errors.New("connection refused"), nil)

	analysis := svc.AnalyzePortfolio(context.Background(), "user_1")

	require.NotNil(t, analysis)
	assert.Equal(t, 75, analysis.OverallScore)
	assert.Equal(t, 70, analysis.DiversificationScore)
}

func TestAnalyzePortfolioNarrativeFromModel(t *testing.T) {
	holdings := []*models.Investment{
		holding("Index MF", models.ProductTypeMutualFund, models.RiskModerate, 10000, 11000),
	}
	svc := newTestService(holdings, nil, &stubTextGen{text: "A well balanced start."})

	analysis := svc.AnalyzePortfolio(context.Background(), "user_1")

	assert.Equal(t, "A well balanced start.", analysis.Narrative)
	// Scores come from the scoring functions, not the model text.
	assert.Equal(t, 80, analysis.PerformanceScore)
}

func TestAnalyzePortfolioNarrativeFailureFallsBack(t *testing.T) {
	holdings := []*models.Investment{
		holding("Index MF", models.ProductTypeMutualFund, models.RiskModerate, 10000, 11000),
	}
	svc := newTestService(holdings, nil, &stubTextGen{err: errors.New("quota exceeded")})

	analysis := svc.AnalyzePortfolio(context.Background(), "user_1")

	assert.Equal(t, fallbackNarrative, analysis.Narrative)
	assert.Equal(t, 80, analysis.PerformanceScore)
}
