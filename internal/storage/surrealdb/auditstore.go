package surrealdb

import (
	"context"
	"fmt"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/bobmcallan/arvest/internal/common"
	"github.com/bobmcallan/arvest/internal/interfaces"
	"github.com/bobmcallan/arvest/internal/models"
)

// AuditStore implements interfaces.AuditStore using SurrealDB. Append-only:
// no update or delete path exists.
type AuditStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

// NewAuditStore creates a new AuditStore.
func NewAuditStore(db *surrealdb.DB, logger *common.Logger) *AuditStore {
	return &AuditStore{db: db, logger: logger}
}

func (s *AuditStore) Append(ctx context.Context, entry *models.AuditLogEntry) error {
	sql := `CREATE $rid SET
		id = $id, user_id = $user_id, email = $email,
		endpoint = $endpoint, http_method = $http_method, status_code = $status_code,
		error_message = $error_message, correlation_id = $correlation_id,
		created_at = $created_at`
	vars := map[string]any{
		"rid":            surrealmodels.NewRecordID("audit_log", entry.ID),
		"id":             entry.ID,
		"user_id":        entry.UserID,
		"email":          entry.Email,
		"endpoint":       entry.Endpoint,
		"http_method":    entry.HTTPMethod,
		"status_code":    entry.StatusCode,
		"error_message":  entry.ErrorMessage,
		"correlation_id": entry.CorrelationID,
		"created_at":     entry.CreatedAt,
	}

	if _, err := surrealdb.Query[any](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (s *AuditStore) List(ctx context.Context, opts interfaces.AuditListOptions) ([]*models.AuditLogEntry, int, error) {
	where := ""
	vars := map[string]any{}

	if opts.UserID != "" {
		where += " AND user_id = $user_id"
		vars["user_id"] = opts.UserID
	}
	if opts.Endpoint != "" {
		where += " AND endpoint = $endpoint"
		vars["endpoint"] = opts.Endpoint
	}
	if opts.StatusCode != 0 {
		where += " AND status_code = $status_code"
		vars["status_code"] = opts.StatusCode
	}
	if opts.Since != nil {
		where += " AND created_at >= $since"
		vars["since"] = *opts.Since
	}
	if opts.Before != nil {
		where += " AND created_at < $before"
		vars["before"] = *opts.Before
	}

	whereClause := ""
	if where != "" {
		whereClause = " WHERE " + where[5:]
	}

	// Count query
	countSQL := "SELECT count() AS cnt FROM audit_log" + whereClause + " GROUP ALL"
	type countResult struct {
		Cnt int `json:"cnt"`
	}
	total := 0
	countResults, err := surrealdb.Query[[]countResult](ctx, s.db, countSQL, vars)
	if err == nil && countResults != nil && len(*countResults) > 0 && len((*countResults)[0].Result) > 0 {
		total = (*countResults)[0].Result[0].Cnt
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	offset := (page - 1) * perPage

	// id as tiebreaker for deterministic ordering when timestamps are equal
	dataSQL := "SELECT * FROM audit_log" + whereClause + " ORDER BY created_at DESC, id DESC LIMIT $limit START $start"
	vars["limit"] = perPage
	vars["start"] = offset

	results, err := surrealdb.Query[[]models.AuditLogEntry](ctx, s.db, dataSQL, vars)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	items := make([]*models.AuditLogEntry, 0)
	if results != nil && len(*results) > 0 {
		for i := range (*results)[0].Result {
			items = append(items, &(*results)[0].Result[i])
		}
	}
	return items, total, nil
}

// Compile-time check
var _ interfaces.AuditStore = (*AuditStore)(nil)
