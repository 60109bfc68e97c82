package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const applicationColumns = `id, phone, email, phone_verified, email_verified,
	video_key, video_filename, video_content_type, video_uploaded, video_review_status,
	status, progress_video, progress_phone, progress_email, push_subscription,
	submitted_at, created_at, updated_at`

const profileColumns = `id, application_id, name, email, linkedin_url, profile_image,
	qr_code_data, is_profile_completed, completed_at, created_at, updated_at`

// channelColumns maps a contact channel to its value, verified and progress
// columns.
//
//nolint:gochecknoglobals // fixed column names
var channelColumns = map[entity.Channel][3]string{
	entity.ChannelPhone: {"phone", "phone_verified", "progress_phone"},
	entity.ChannelEmail: {"email", "email_verified", "progress_email"},
}

var errUnknownChannel = errors.New("unknown contact channel")

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

// - 23505 unique violation → goerror.ErrConflict
// - 23503 foreign_key_violation → goerror.ErrNotFound
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
	return s.ins.Tracer("ambassador.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func scanApplication(row pgx.Row) (*entity.Application, error) {
	var (
		app          entity.Application
		reviewStatus string
		status       string
		submittedAt  pgtype.Timestamptz
	)

	if err := row.Scan(
		&app.ID, &app.Phone, &app.Email, &app.PhoneVerified, &app.EmailVerified,
		&app.VideoKey, &app.VideoFilename, &app.VideoContentType, &app.VideoUploaded, &reviewStatus,
		&status, &app.Progress.Video, &app.Progress.Phone, &app.Progress.Email, &app.PushSubscription,
		&submittedAt, &app.CreatedAt, &app.UpdatedAt,
	); err != nil {
		return nil, err
	}

	app.VideoReviewStatus = entity.VideoReviewStatus(reviewStatus)
	app.Status = entity.ApplicationStatus(status)
	if submittedAt.Valid {
		t := submittedAt.Time
		app.SubmittedAt = &t
	}

	return &app, nil
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var (
		p           entity.Profile
		completedAt pgtype.Timestamptz
	)

	if err := row.Scan(
		&p.ID, &p.ApplicationID, &p.Name, &p.Email, &p.LinkedinURL, &p.ProfileImage,
		&p.QRCodeData, &p.IsProfileCompleted, &completedAt, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		p.CompletedAt = &t
	}

	return &p, nil
}

func timestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}
