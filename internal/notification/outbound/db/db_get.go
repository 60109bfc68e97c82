package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/ambassador/internal/notification/entity"
)

func (s *DB) ListNotifications(ctx context.Context, applicationID int64, limit int32) (_ []entity.Notification, err error) {
	ctx, span := s.startSpan(ctx, "ListNotifications")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE application_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		applicationID, limit,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Notification, error) {
		return scanNotification(row)
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) CountUnreadNotifications(ctx context.Context, applicationID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUnreadNotifications")
	defer func() { s.endSpan(span, err) }()

	var count int64
	err = s.conn.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE application_id = $1 AND read = false`,
		applicationID,
	).Scan(&count)
	if err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}
