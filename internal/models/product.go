// Package models defines data structures for Arvest
package models

import (
	"strings"
	"time"
)

// ProductType categorizes an investment product for diversification bucketing
type ProductType string

const (
	ProductTypeFixedDeposit ProductType = "fixed_deposit"
	ProductTypeMutualFund   ProductType = "mutual_fund"
	ProductTypeBond         ProductType = "bond"
	ProductTypeETF          ProductType = "etf"
	ProductTypeOther        ProductType = "other"
)

// NormalizeProductType maps loose product type strings (e.g. "FD",
// "Mutual Fund", "exchange-traded-fund") to a canonical ProductType.
// Unknown values pass through unchanged so they still count as a
// distinct diversification bucket.
func NormalizeProductType(s string) ProductType {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "fd", "fixed_deposit", "fixeddeposit":
		return ProductTypeFixedDeposit
	case "mf", "mutual_fund", "mutualfund":
		return ProductTypeMutualFund
	case "bond", "bonds":
		return ProductTypeBond
	case "etf", "exchange_traded_fund":
		return ProductTypeETF
	case "":
		return ProductTypeOther
	default:
		return ProductType(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	}
}

// RiskLevel is the declared risk of a product
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// NormalizeRiskLevel maps a loose risk string to a RiskLevel, defaulting
// to low for empty/unknown values.
func NormalizeRiskLevel(s string) RiskLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "moderate", "medium":
		return RiskModerate
	case "high":
		return RiskHigh
	default:
		return RiskLow
	}
}

// Product represents an investment product in the catalog
type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	ProductType   ProductType `json:"product_type"`
	RiskLevel     RiskLevel   `json:"risk_level"`
	AnnualYield   float64     `json:"annual_yield"`   // percentage
	TenureMonths  int         `json:"tenure_months"`  // 0 for open-ended products
	MinInvestment float64     `json:"min_investment"`
	Description   string      `json:"description,omitempty"`
	IsActive      bool        `json:"is_active"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Validate returns the names of required fields that are missing or invalid.
// An empty slice means the product is valid.
func (p *Product) Validate() []string {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if p.ProductType == "" {
		missing = append(missing, "product_type")
	}
	if p.RiskLevel == "" {
		missing = append(missing, "risk_level")
	}
	if p.AnnualYield <= 0 {
		missing = append(missing, "annual_yield")
	}
	if p.MinInvestment <= 0 {
		missing = append(missing, "min_investment")
	}
	return missing
}
