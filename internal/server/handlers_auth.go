package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/models"
)

// --- JWT helpers ---

// signJWT creates a signed HMAC-SHA256 JWT for the given user.
func signJWT(user *models.User, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iss":   "arvest-server",
		"iat":   now.Unix(),
		"exp":   now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return token, claims, nil
}

// requireUser returns the authenticated user context, writing a 401 when the
// request carries no identity.
func requireUser(w http.ResponseWriter, r *http.Request) (*common.UserContext, bool) {
	uc := common.UserContextFromContext(r.Context())
	if uc == nil || uc.UserID == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return uc, true
}

// requireAdmin returns the authenticated admin context, writing 401/403 as
// appropriate.
func requireAdmin(w http.ResponseWriter, r *http.Request) (*common.UserContext, bool) {
	uc, ok := requireUser(w, r)
	if !ok {
		return nil, false
	}
	if uc.Role != models.RoleAdmin {
		WriteError(w, http.StatusForbidden, "admin role required")
		return nil, false
	}
	return uc, true
}

// userResponse strips sensitive fields for API responses.
func userResponse(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    user.UserID,
		"email":      user.Email,
		"name":       user.Name,
		"role":       user.Role,
		"created_at": user.CreatedAt,
	}
}

// --- Auth handlers ---

// handleSignup handles POST /api/auth/signup.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		WriteError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	ctx := r.Context()
	store := s.app.Storage.UserStore()

	if existing, err := store.GetUserByEmail(ctx, req.Email); err == nil && existing != nil {
		WriteError(w, http.StatusConflict, "an account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	user := &models.User{
		UserID:       uuid.NewString(),
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.SaveUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", req.Email).Msg("Failed to save user")
		WriteError(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("User signed up")
	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  userResponse(user),
	})
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	ctx := r.Context()
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.app.Storage.UserStore().GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("User logged in")
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  userResponse(user),
	})
}

// handleMe handles GET /api/auth/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	user, err := s.app.Storage.UserStore().GetUser(r.Context(), uc.UserID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	WriteJSON(w, http.StatusOK, userResponse(user))
}
