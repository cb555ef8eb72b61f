// Package audit implements the best-effort request audit log writer.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// writeTimeout bounds the store call so a slow audit backend cannot hold
// up the request that triggered it.
const writeTimeout = 5 * time.Second

// Service implements AuditService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new audit service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Record appends one audit entry. Best-effort and at most one attempt: a
// store failure is logged at debug level and swallowed so it can never
// alter the response of the request being audited.
func (s *Service) Record(ctx context.Context, entry *models.AuditLogEntry) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	// Detach from the request context so an already-cancelled request
	// still gets its terminal outcome recorded.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	if err := s.storage.AuditStore().Append(writeCtx, entry); err != nil {
		s.logger.Debug().Err(err).
			Str("endpoint", entry.Endpoint).
			Str("method", entry.HTTPMethod).
			Int("status", entry.StatusCode).
			Msg("Audit log write failed")
	}
}

var _ interfaces.AuditService = (*Service)(nil)
