package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/call/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const callColumns = `c.id, c.application_id, COALESCE(c.contact_id, 0), COALESCE(k.name, ''),
	c.called_at, c.duration_seconds, c.notes, c.status, c.created_at, c.updated_at`

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
	return s.ins.Tracer("call.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func scanCall(row pgx.Row) (entity.Call, error) {
	var c entity.Call
	err := row.Scan(
		&c.ID, &c.ApplicationID, &c.ContactID, &c.ContactName,
		&c.CalledAt, &c.DurationSeconds, &c.Notes, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// CreateCall inserts c only when its contact belongs to the same
// application, otherwise it returns ErrNotFound.
func (s *DB) CreateCall(ctx context.Context, c entity.Call) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCall")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		INSERT INTO calls (id, application_id, contact_id, called_at, duration_seconds, notes, status, created_at, updated_at)
		SELECT $1::bigint, $2::bigint, $3::bigint, $4::timestamptz, $5::integer, $6::text, $7::text, $8::timestamptz, $9::timestamptz
		WHERE EXISTS (SELECT 1 FROM contacts WHERE id = $3 AND application_id = $2)`,
		c.ID, c.ApplicationID, c.ContactID, c.CalledAt, c.DurationSeconds, c.Notes, c.Status.String(), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// ListCalls returns the application's calls newest first. A zero contactID
// lists every contact.
func (s *DB) ListCalls(ctx context.Context, applicationID, contactID int64, limit int32) (_ []entity.Call, err error) {
	ctx, span := s.startSpan(ctx, "ListCalls")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT `+callColumns+`
		FROM calls c
		LEFT JOIN contacts k ON k.id = c.contact_id
		WHERE c.application_id = $1 AND ($2::bigint = 0 OR c.contact_id = $2)
		ORDER BY c.called_at DESC, c.id DESC
		LIMIT $3`,
		applicationID, contactID, limit,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Call, error) {
		return scanCall(row)
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}
