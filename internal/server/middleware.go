package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// errorBodyLimit caps how much of an error response body is retained for
// audit extraction.
const errorBodyLimit = 512

// responseWriter wraps http.ResponseWriter to capture status code, bytes
// written, and a prefix of error bodies for the audit trail.
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	bodyPrefix   []byte
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.statusCode >= 400 && len(rw.bodyPrefix) < errorBodyLimit {
		take := errorBodyLimit - len(rw.bodyPrefix)
		if take > len(b) {
			take = len(b)
		}
		rw.bodyPrefix = append(rw.bodyPrefix, b[:take]...)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += n
	return n, err
}

// errorMessage extracts the error string from a captured JSON error body.
func (rw *responseWriter) errorMessage() string {
	if rw.statusCode < 400 || len(rw.bodyPrefix) == 0 {
		return ""
	}
	var body ErrorResponse
	if err := json.Unmarshal(rw.bodyPrefix, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(rw.bodyPrefix))
}

// recoveryMiddleware catches panics and returns 500.
func recoveryMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Str("panic", fmt.Sprintf("%v", rec)).
						Str("path", r.URL.Path).
						Msg("Panic recovered in HTTP handler")
					WriteError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware adds CORS headers for the web UI.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, X-Correlation-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// correlationIDMiddleware extracts or generates a correlation ID.
func correlationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrID := r.Header.Get("X-Request-ID")
		if corrID == "" {
			corrID = r.Header.Get("X-Correlation-ID")
		}
		if corrID == "" {
			corrID = uuid.New().String()[:8]
		}
		w.Header().Set("X-Correlation-ID", corrID)
		r = r.WithContext(common.WithCorrelationID(r.Context(), corrID))
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(logger *common.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			dur := time.Since(start)
			corrID := w.Header().Get("X-Correlation-ID")

			event := logger.Trace()
			if rw.statusCode >= 500 {
				event = logger.Error()
			} else if rw.statusCode >= 400 {
				event = logger.Info()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", r.URL.RawQuery).
				Int("status", rw.statusCode).
				Int("bytes", rw.bytesWritten).
				Dur("duration", dur).
				Str("correlation_id", corrID).
				Msg("HTTP request")
		})
	}
}

// bearerTokenMiddleware checks for an Authorization: Bearer header and,
// if present, validates the JWT and populates UserContext. Identity comes
// from the stored user record so role changes apply without reissuing
// tokens; the claims are the fallback when the lookup fails. Requests
// without an Authorization header pass through unauthenticated; per-route
// handlers decide whether identity is required.
func bearerTokenMiddleware(config *common.Config, storage interfaces.StorageManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			_, claims, err := validateJWT(tokenString, []byte(config.Auth.JWTSecret))
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				WriteError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			sub, _ := claims["sub"].(string)
			if sub == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				WriteError(w, http.StatusUnauthorized, "invalid token claims")
				return
			}

			uc := &common.UserContext{UserID: sub}
			uc.Email, _ = claims["email"].(string)
			uc.Role, _ = claims["role"].(string)
			if user, err := storage.UserStore().GetUser(r.Context(), sub); err == nil && user != nil {
				uc.Email = user.Email
				uc.Role = user.Role
			}
			if ident, ok := r.Context().Value(auditIdentityKey{}).(*auditIdentity); ok {
				ident.userID = uc.UserID
				ident.email = uc.Email
			}
			r = r.WithContext(common.WithUserContext(r.Context(), uc))

			next.ServeHTTP(w, r)
		})
	}
}

// isMutating reports whether the request can change state and therefore
// must be audited.
func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// auditIdentity carries the caller identity resolved by the bearer
// middleware back out to the audit wrapper that encloses it.
type auditIdentity struct {
	userID string
	email  string
}

type auditIdentityKey struct{}

// auditMiddleware records the terminal outcome of every mutating request,
// exactly once. It wraps both the bearer and recovery middleware so that
// token rejections and recovered panics are observed here as their 401 and
// 500 outcomes; identity flows back via the auditIdentity holder because
// the bearer middleware runs inside this span.
func auditMiddleware(audit interfaces.AuditService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			ident := &auditIdentity{}
			r = r.WithContext(context.WithValue(r.Context(), auditIdentityKey{}, ident))

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			entry := &models.AuditLogEntry{
				UserID:        ident.userID,
				Email:         ident.email,
				Endpoint:      r.URL.Path,
				HTTPMethod:    r.Method,
				StatusCode:    rw.statusCode,
				ErrorMessage:  rw.errorMessage(),
				CorrelationID: common.CorrelationIDFromContext(r.Context()),
			}
			audit.Record(r.Context(), entry)
		})
	}
}

// applyMiddleware wraps a handler with the middleware stack.
func applyMiddleware(handler http.Handler, logger *common.Logger, config *common.Config, storage interfaces.StorageManager, audit interfaces.AuditService) http.Handler {
	// Apply in reverse order (last applied = first executed). Bearer sits
	// inside the audit wrapper so its 401 rejections are recorded, and
	// recovery sits between them so a panic is already a 500 response by
	// the time the audit wrapper observes it.
	handler = bearerTokenMiddleware(config, storage)(handler)
	handler = recoveryMiddleware(logger)(handler)
	if audit != nil {
		handler = auditMiddleware(audit)(handler)
	}
	handler = loggingMiddleware(logger)(handler)
	handler = correlationIDMiddleware(handler)
	handler = corsMiddleware(handler)
	return handler
}
