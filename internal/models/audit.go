package models

import "time"

// AuditLogEntry records the terminal outcome of one mutating API request.
// Append-only: entries are created once and never updated or deleted.
type AuditLogEntry struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"` // empty for unauthenticated attempts
	Email         string    `json:"email,omitempty"`
	Endpoint      string    `json:"endpoint"`
	HTTPMethod    string    `json:"http_method"`
	StatusCode    int       `json:"status_code"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
