package db

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
)

func (s *DB) GetApplication(ctx context.Context, id int64) (_ *entity.Application, err error) {
	ctx, span := s.startSpan(ctx, "GetApplication")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM ambassador_applications WHERE id = $1`, id)

	app, err := scanApplication(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return app, nil
}

// GetLoginApplicationByPhone returns the most recently submitted application
// with a verified phone equal to phone.
func (s *DB) GetLoginApplicationByPhone(ctx context.Context, phone string) (_ *entity.Application, err error) {
	ctx, span := s.startSpan(ctx, "GetLoginApplicationByPhone")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT `+applicationColumns+`
		FROM ambassador_applications
		WHERE phone = $1
			AND phone_verified = true
			AND status IN ('submitted', 'under_review', 'approved')
		ORDER BY submitted_at DESC NULLS LAST
		LIMIT 1`,
		phone,
	)

	app, err := scanApplication(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return app, nil
}

func (s *DB) GetProfileByApplicationID(ctx context.Context, applicationID int64) (_ *entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "GetProfileByApplicationID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+profileColumns+` FROM ambassador_profiles WHERE application_id = $1`, applicationID)

	p, err := scanProfile(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return p, nil
}
