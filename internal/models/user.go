package models

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account stored in arvest-server.
type User struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at,omitempty"`
}

// RiskAppetite is a user's declared tolerance for investment risk
type RiskAppetite string

const (
	RiskAppetiteConservative RiskAppetite = "conservative"
	RiskAppetiteModerate     RiskAppetite = "moderate"
	RiskAppetiteAggressive   RiskAppetite = "aggressive"
)

// RiskProfile is a user's investment profile. Read-only input to scoring
// and recommendation; this core never mutates it.
type RiskProfile struct {
	UserID          string       `json:"user_id"`
	RiskAppetite    RiskAppetite `json:"risk_appetite"`
	Age             int          `json:"age,omitempty"`
	InvestmentGoals []string     `json:"investment_goals,omitempty"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// AppetiteOrDefault returns the declared risk appetite, defaulting to
// moderate when the profile is nil or unset.
func (p *RiskProfile) AppetiteOrDefault() RiskAppetite {
	if p == nil || p.RiskAppetite == "" {
		return RiskAppetiteModerate
	}
	return p.RiskAppetite
}

// GoalsOrDefault returns the profile's goals, or a generic default set.
func (p *RiskProfile) GoalsOrDefault() []string {
	if p == nil || len(p.InvestmentGoals) == 0 {
		return []string{"wealth building", "retirement planning"}
	}
	return p.InvestmentGoals
}
