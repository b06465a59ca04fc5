package postgres

import (
	"context"
	"fmt"

	"muhasebe-api/internal/core/domain"
	"muhasebe-api/internal/core/ports"
)

const auditColumns = "id, user_id, action_type, target, item_id, old_value, new_value, date"

var auditFields = map[string]string{
	ports.FieldUserID:     "user_id",
	ports.FieldActionType: "action_type",
	ports.FieldTarget:     "target",
	ports.FieldItemID:     "item_id",
}

// AuditRepo implements ports.AuditRepository. Rows are never updated.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a PostgreSQL-backed audit repository.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Create(ctx context.Context, e *domain.AuditLogEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (`+auditColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.UserID, e.ActionType, e.Target, e.ItemID, e.OldValue, e.NewValue, e.Date,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List returns matching entries newest first.
func (r *AuditRepo) List(ctx context.Context, filter ports.Filter, page ports.Page) ([]domain.AuditLogEntry, int64, error) {
	where, args, err := buildWhere("audit_logs", auditFields, "date", filter)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	query, args := paginate("SELECT "+auditColumns+" FROM audit_logs"+where+" ORDER BY date DESC, id DESC", args, page)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditLogEntry, 0)
	for rows.Next() {
		var e domain.AuditLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActionType, &e.Target, &e.ItemID, &e.OldValue, &e.NewValue, &e.Date); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit logs: %w", err)
	}

	return entries, total, nil
}
