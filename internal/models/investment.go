package models

import "time"

// InvestmentStatus tracks the lifecycle of a position
type InvestmentStatus string

const (
	InvestmentStatusActive InvestmentStatus = "active"
	InvestmentStatusClosed InvestmentStatus = "closed"
)

// Investment represents a user's position in a product. Only active
// investments participate in portfolio scoring.
type Investment struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	ProductID      string           `json:"product_id"`
	InvestedAmount float64          `json:"invested_amount"`
	CurrentValue   float64          `json:"current_value"`
	Status         InvestmentStatus `json:"status"`
	InvestmentDate time.Time        `json:"investment_date"`
	MaturityDate   *time.Time       `json:"maturity_date,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`

	// Product descriptor fields denormalized at read time for scoring
	// and display. Not persisted on the investment record.
	ProductName string      `json:"product_name,omitempty"`
	ProductType ProductType `json:"product_type,omitempty"`
	RiskLevel   RiskLevel   `json:"risk_level,omitempty"`
	AnnualYield float64     `json:"annual_yield,omitempty"`
}

// ReturnPct returns the position's simple return percentage. A zero
// invested amount yields 0 rather than a division error.
func (i *Investment) ReturnPct() float64 {
	if i.InvestedAmount <= 0 {
		return 0
	}
	return (i.CurrentValue - i.InvestedAmount) / i.InvestedAmount * 100
}

// TransactionType categorizes ledger entries
type TransactionType string

const (
	TransactionTypeInvestment TransactionType = "investment"
	TransactionTypeRedemption TransactionType = "redemption"
)

// Transaction is a ledger entry recorded alongside investment mutations
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        TransactionType `json:"transaction_type"`
	Amount      float64         `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PortfolioSummary aggregates a user's active positions
type PortfolioSummary struct {
	TotalInvested    float64 `json:"total_invested"`
	CurrentValue     float64 `json:"current_value"`
	TotalReturns     float64 `json:"total_returns"`
	ReturnPercentage float64 `json:"return_percentage"`
	ActiveCount      int     `json:"active_count"`
}
