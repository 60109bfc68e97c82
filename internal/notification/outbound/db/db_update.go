package db

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
)

func (s *DB) MarkNotificationRead(ctx context.Context, applicationID, notificationID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkNotificationRead")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND application_id = $2`,
		notificationID, applicationID,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}

func (s *DB) MarkNotificationsReadAll(ctx context.Context, applicationID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "MarkNotificationsReadAll")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE notifications SET read = true WHERE application_id = $1 AND read = false`,
		applicationID,
	)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

// UpdatePushSubscription stores the browser push subscription on the
// application row.
func (s *DB) UpdatePushSubscription(ctx context.Context, applicationID int64, sub valueobject.JSONMap) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdatePushSubscription")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE ambassador_applications SET push_subscription = $1, updated_at = now() WHERE id = $2`,
		sub, applicationID,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}
