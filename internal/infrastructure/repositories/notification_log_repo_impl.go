package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"provider-market.backend/internal/domain/entities"
	"provider-market.backend/internal/domain/repositories"
)

// notificationLogRepo implements repositories.NotificationLogRepository on the
// raw connection pool. The table is append-only: rows are inserted once and
// never updated.
type notificationLogRepo struct {
	db *sql.DB
}

// NewNotificationLogRepository creates a new notification log repository
func NewNotificationLogRepository(db *sql.DB) repositories.NotificationLogRepository {
	return &notificationLogRepo{db: db}
}

// Create inserts one audit row for a dispatch attempt
func (r *notificationLogRepo) Create(ctx context.Context, log *entities.NotificationLog) error {
	query := `
		INSERT INTO notification_logs (
			id, user_id, channel, recipient, notification_type, status,
			external_id, subject, body, error_message, sent_at, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	log.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.UserID,
		log.Channel,
		log.Recipient,
		log.NotificationType,
		log.Status,
		log.ExternalID,
		log.Subject,
		log.Body,
		log.ErrorMessage,
		log.SentAt,
		log.Metadata,
		log.CreatedAt,
	)

	return err
}

// ListByUserID returns a page of audit rows for a user, newest first
func (r *notificationLogRepo) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.NotificationLog, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM notification_logs WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, channel, recipient, notification_type, status,
		       external_id, subject, body, error_message, sent_at, metadata, created_at
		FROM notification_logs
		WHERE user_id = $1
		ORDER BY sent_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []*entities.NotificationLog
	for rows.Next() {
		log := &entities.NotificationLog{}
		err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.Channel,
			&log.Recipient,
			&log.NotificationType,
			&log.Status,
			&log.ExternalID,
			&log.Subject,
			&log.Body,
			&log.ErrorMessage,
			&log.SentAt,
			&log.Metadata,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
