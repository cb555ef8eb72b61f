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

type UserStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewUserStore(db *surrealdb.DB, logger *common.Logger) *UserStore {
	return &UserStore{
		db:     db,
		logger: logger,
	}
}

func (s *UserStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := surrealdb.Select[models.User](ctx, s.db, surrealmodels.NewRecordID("user", userID))
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql := "SELECT * FROM user WHERE email = $email LIMIT 1"
	vars := map[string]any{"email": email}

	results, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, errors.New("user not found")
	}

	user := (*results)[0].Result[0]
	// The model drops password_hash on JSON round-trips, so fetch it
	// explicitly for credential checks.
	hash, err := s.passwordHash(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash
	return &user, nil
}

func (s *UserStore) passwordHash(ctx context.Context, userID string) (string, error) {
	type hashRow struct {
		PasswordHash string `json:"password_hash"`
	}
	sql := "SELECT password_hash FROM $rid"
	vars := map[string]any{"rid": surrealmodels.NewRecordID("user", userID)}

	results, err := surrealdb.Query[[]hashRow](ctx, s.db, sql, vars)
	if err != nil {
		return "", fmt.Errorf("failed to query password hash: %w", err)
	}
	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return "", errors.New("user not found")
	}
	return (*results)[0].Result[0].PasswordHash, nil
}

func (s *UserStore) SaveUser(ctx context.Context, user *models.User) error {
	sql := `UPSERT $rid SET
		user_id = $user_id, email = $email, name = $name,
		password_hash = $password_hash, role = $role,
		created_at = $created_at, modified_at = $modified_at`
	vars := map[string]any{
		"rid":           surrealmodels.NewRecordID("user", user.UserID),
		"user_id":       user.UserID,
		"email":         user.Email,
		"name":          user.Name,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"created_at":    user.CreatedAt,
		"modified_at":   user.ModifiedAt,
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		_, err := surrealdb.Query[any](ctx, s.db, sql, vars)
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("failed to save user after retries: %w", lastErr)
}

func (s *UserStore) DeleteUser(ctx context.Context, userID string) error {
	_, err := surrealdb.Delete[models.User](ctx, s.db, surrealmodels.NewRecordID("user", userID))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserStore) GetProfile(ctx context.Context, userID string) (*models.RiskProfile, error) {
	profile, err := surrealdb.Select[models.RiskProfile](ctx, s.db, surrealmodels.NewRecordID("risk_profile", userID))
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select risk profile: %w", err)
	}
	if profile == nil || profile.UserID == "" {
		return nil, nil
	}
	return profile, nil
}

func (s *UserStore) SaveProfile(ctx context.Context, profile *models.RiskProfile) error {
	sql := "UPSERT $rid CONTENT $profile"
	vars := map[string]any{
		"rid":     surrealmodels.NewRecordID("risk_profile", profile.UserID),
		"profile": profile,
	}

	if _, err := surrealdb.Query[[]models.RiskProfile](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to save risk profile: %w", err)
	}
	return nil
}

// Compile-time check
var _ interfaces.UserStore = (*UserStore)(nil)
