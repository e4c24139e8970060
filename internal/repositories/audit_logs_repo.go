package repositories

import (
	"context"
	"time"

	"storefront/internal/models"
)

type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	// ListSince returns entries with log_date strictly after since, oldest first
	ListSince(ctx context.Context, since time.Time, limit int) ([]*models.ActivityLog, error)
}

type activityRepo struct {
	db Querier
}

func NewActivityRepo(db Querier) ActivityRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	query := `
		INSERT INTO user_activity (log_id, user_id, log_date, request_type, response_status_code, user_role)
		VALUES ($1, NULLIF($2, ''), NOW(), $3, $4, $5)
		RETURNING log_date
	`
	return r.db.QueryRow(ctx, query, entry.LogID, entry.UserID, entry.Action, entry.StatusCode, entry.UserRole).Scan(&entry.LogDate)
}

func (r *activityRepo) ListSince(ctx context.Context, since time.Time, limit int) ([]*models.ActivityLog, error) {
	query := `
		SELECT log_id, COALESCE(user_id, ''), log_date, request_type, response_status_code, user_role
		FROM user_activity
		WHERE log_date > $1
		ORDER BY log_date ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ActivityLog
	for rows.Next() {
		e := &models.ActivityLog{}
		if err := rows.Scan(&e.LogID, &e.UserID, &e.LogDate, &e.Action, &e.StatusCode, &e.UserRole); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
