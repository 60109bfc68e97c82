package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/ambassador/internal/event/entity"
)

func (s *DB) CreateEvent(ctx context.Context, e entity.Event) (err error) {
	ctx, span := s.startSpan(ctx, "CreateEvent")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO events (id, title, description, location, image, event_date, event_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Title, e.Description, e.Location, e.Image, e.Date, e.Time, e.CreatedAt, e.UpdatedAt,
	)
	return s.mapError(err)
}

// GetEvent loads one event as seen by viewer.
func (s *DB) GetEvent(ctx context.Context, id, viewer int64) (_ *entity.Event, err error) {
	ctx, span := s.startSpan(ctx, "GetEvent")
	defer func() { s.endSpan(span, err) }()

	e, err := scanEvent(s.conn.QueryRow(ctx, eventView+` WHERE e.id = $2`, viewer, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &e, nil
}

// ListEvents returns events in calendar order as seen by viewer.
func (s *DB) ListEvents(ctx context.Context, viewer int64, limit int32) (_ []entity.Event, err error) {
	ctx, span := s.startSpan(ctx, "ListEvents")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, eventView+` ORDER BY e.event_date, e.id LIMIT $2`, viewer, limit)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Event, error) {
		return scanEvent(row)
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}
