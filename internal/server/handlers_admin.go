package server

import (
	"net/http"
	"time"

	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// handleAdminLogs handles GET /api/admin/logs — audit trail review with
// filters and pagination.
func (s *Server) handleAdminLogs(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	q := r.URL.Query()
	opts := interfaces.AuditListOptions{
		UserID:     q.Get("user_id"),
		Endpoint:   q.Get("endpoint"),
		StatusCode: QueryInt(r, "status_code", 0),
		Page:       QueryInt(r, "page", 1),
		PerPage:    QueryInt(r, "per_page", 20),
	}
	if raw := q.Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "since must be RFC3339")
			return
		}
		opts.Since = &t
	}
	if raw := q.Get("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "before must be RFC3339")
			return
		}
		opts.Before = &t
	}

	entries, total, err := s.app.Storage.AuditStore().List(r.Context(), opts)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list audit logs")
		WriteError(w, http.StatusInternalServerError, "failed to list audit logs")
		return
	}
	if entries == nil {
		entries = []*models.AuditLogEntry{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"logs":     entries,
		"total":    total,
		"page":     opts.Page,
		"per_page": opts.PerPage,
	})
}
