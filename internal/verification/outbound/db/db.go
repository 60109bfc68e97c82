package db

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/uid"
	"github.com/shandysiswandi/ambassador/internal/verification/entity"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const otpColumns = `id, subject_id, purpose, code_hash, salt, expires_at, verified, attempts, created_at`

// DB stores OTP records in the verification_otps table.
type DB struct {
	conn *pgxpool.Pool
	uid  uid.NumberID
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, uid uid.NumberID, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, uid: uid, ins: ins}
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func scanOTP(row pgx.Row) (*entity.OTP, error) {
	var (
		id      int64
		purpose string
		o       entity.OTP
	)

	if err := row.Scan(&id, &o.SubjectID, &purpose, &o.CodeHash, &o.Salt, &o.ExpiresAt, &o.Verified, &o.Attempts, &o.CreatedAt); err != nil {
		return nil, err
	}

	o.ID = strconv.FormatInt(id, 10)
	o.Purpose = entity.Purpose(purpose)
	return &o, nil
}

func (s *DB) LatestSince(ctx context.Context, subjectID string, purpose entity.Purpose, since time.Time) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "LatestSince")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT `+otpColumns+`
		FROM verification_otps
		WHERE subject_id = $1 AND purpose = $2 AND created_at > $3
		ORDER BY created_at DESC
		LIMIT 1`,
		subjectID, purpose.String(), since,
	)

	otp, err := scanOTP(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return otp, nil
}

func (s *DB) FindActive(ctx context.Context, subjectID string, purpose entity.Purpose, now time.Time) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "FindActive")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT `+otpColumns+`
		FROM verification_otps
		WHERE subject_id = $1 AND purpose = $2 AND verified = false AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1`,
		subjectID, purpose.String(), now,
	)

	otp, err := scanOTP(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return otp, nil
}

// Replace invalidates every unverified record of the pair and inserts otp in
// one transaction.
func (s *DB) Replace(ctx context.Context, otp entity.OTP) (err error) {
	ctx, span := s.startSpan(ctx, "Replace")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	if _, err := tx.Exec(ctx, `
		UPDATE verification_otps SET verified = true
		WHERE subject_id = $1 AND purpose = $2 AND verified = false`,
		otp.SubjectID, otp.Purpose.String(),
	); err != nil {
		return s.mapError(err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO verification_otps (`+otpColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, false, 0, $7)`,
		s.uid.Generate(), otp.SubjectID, otp.Purpose.String(), otp.CodeHash, otp.Salt, otp.ExpiresAt, otp.CreatedAt,
	); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

// Invalidate marks every unverified record of the pair as used.
func (s *DB) Invalidate(ctx context.Context, subjectID string, purpose entity.Purpose) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "Invalidate")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE verification_otps SET verified = true
		WHERE subject_id = $1 AND purpose = $2 AND verified = false`,
		subjectID, purpose.String(),
	)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}

// RegisterAttempt counts one attempt on a still unverified record. The record
// becomes verified when consume is set or the count reaches maxAttempts.
func (s *DB) RegisterAttempt(ctx context.Context, id string, consume bool, maxAttempts int) (_ *entity.OTP, err error) {
	ctx, span := s.startSpan(ctx, "RegisterAttempt")
	defer func() { s.endSpan(span, err) }()

	oid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, goerror.ErrNotFound
	}

	row := s.conn.QueryRow(ctx, `
		UPDATE verification_otps
		SET attempts = attempts + 1,
			verified = ($2 OR attempts + 1 >= $3)
		WHERE id = $1 AND verified = false
		RETURNING `+otpColumns,
		oid, consume, maxAttempts,
	)

	otp, err := scanOTP(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return otp, nil
}

func (s *DB) PurgeExpired(ctx context.Context, before time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "PurgeExpired")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM verification_otps WHERE expires_at < $1`, before)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
