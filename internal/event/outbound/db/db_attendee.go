package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/ambassador/internal/event/entity"
)

// AddAttendee is idempotent. A missing event or application yields
// ErrNotFound through the foreign keys.
func (s *DB) AddAttendee(ctx context.Context, eventID, applicationID int64, at time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "AddAttendee")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO event_attendees (event_id, application_id, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, application_id) DO NOTHING`,
		eventID, applicationID, at,
	)
	return s.mapError(err)
}

func (s *DB) RemoveAttendee(ctx context.Context, eventID, applicationID int64) (err error) {
	ctx, span := s.startSpan(ctx, "RemoveAttendee")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1 AND application_id = $2`,
		eventID, applicationID,
	)
	return s.mapError(err)
}

// ListAttendees joins the profile for a display name and picture; both are
// empty until the applicant completed a profile.
func (s *DB) ListAttendees(ctx context.Context, eventID int64) (_ []entity.Attendee, err error) {
	ctx, span := s.startSpan(ctx, "ListAttendees")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT a.application_id, COALESCE(p.name, ''), COALESCE(p.profile_image, ''), a.joined_at
		FROM event_attendees a
		LEFT JOIN ambassador_profiles p ON p.application_id = a.application_id
		WHERE a.event_id = $1
		ORDER BY a.joined_at, a.application_id`,
		eventID,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Attendee, error) {
		var a entity.Attendee
		err := row.Scan(&a.ApplicationID, &a.Name, &a.ProfileImage, &a.JoinedAt)
		return a, err
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}
