package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jelyman2/tournament/models"
)

// AuditLogRepository persists the auditlog table:
// auditlog(id serial PK, action, entry, uid, created_at).
type AuditLogRepository interface {
	Append(ctx context.Context, entry *models.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]*models.AuditEntry, error)
}

type postgresAuditLogRepository struct {
	db *sql.DB
}

func NewPostgresAuditLogRepository(db *sql.DB) AuditLogRepository {
	return &postgresAuditLogRepository{db: db}
}

func (r *postgresAuditLogRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO auditlog (action, entry, uid)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		entry.Action,
		entry.Entry,
		entry.UID,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *postgresAuditLogRepository) ListRecent(ctx context.Context, limit int) ([]*models.AuditEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, action, entry, uid, created_at
		FROM auditlog
		ORDER BY id DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]*models.AuditEntry, 0, limit)
	for rows.Next() {
		var entry models.AuditEntry
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.Entry,
			&entry.UID,
			&entry.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan audit entry row: %w", scanErr)
		}
		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during audit rows iteration: %w", err)
	}
	return entries, nil
}
