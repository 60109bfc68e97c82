package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/event/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const eventColumns = `e.id, e.title, e.description, e.location, e.image, e.event_date, e.event_time, e.created_at, e.updated_at`

// eventView adds the attendee count and whether $1 is attending.
const eventView = `SELECT ` + eventColumns + `,
		(SELECT count(*) FROM event_attendees a WHERE a.event_id = e.id),
		EXISTS (SELECT 1 FROM event_attendees a WHERE a.event_id = e.id AND a.application_id = $1)
	FROM events e`

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return goerror.ErrConflict
		case "23503":
			return goerror.ErrNotFound
		}
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("event.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func scanEvent(row pgx.Row) (entity.Event, error) {
	var e entity.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Location, &e.Image, &e.Date, &e.Time,
		&e.CreatedAt, &e.UpdatedAt, &e.AttendeeCount, &e.Joined,
	)
	return e, err
}
