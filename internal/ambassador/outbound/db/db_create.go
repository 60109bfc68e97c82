package db

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
)

func (s *DB) CreateApplication(ctx context.Context, app entity.Application) (err error) {
	ctx, span := s.startSpan(ctx, "CreateApplication")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO ambassador_applications (id, video_review_status, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		app.ID, app.VideoReviewStatus.String(), app.Status.String(), app.CreatedAt, app.UpdatedAt,
	)

	return s.mapError(err)
}

// UpsertProfile creates the application's profile, or replaces the existing
// one while keeping its id and creation time.
func (s *DB) UpsertProfile(ctx context.Context, p entity.Profile) (_ *entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "UpsertProfile")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		INSERT INTO ambassador_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (application_id) DO UPDATE SET
			name = EXCLUDED.name,
			email = EXCLUDED.email,
			linkedin_url = EXCLUDED.linkedin_url,
			profile_image = EXCLUDED.profile_image,
			qr_code_data = EXCLUDED.qr_code_data,
			is_profile_completed = EXCLUDED.is_profile_completed,
			completed_at = EXCLUDED.completed_at,
			updated_at = EXCLUDED.updated_at
		RETURNING `+profileColumns,
		p.ID, p.ApplicationID, p.Name, p.Email, p.LinkedinURL, p.ProfileImage,
		p.QRCodeData, p.IsProfileCompleted, timestamptz(p.CompletedAt), p.CreatedAt, p.UpdatedAt,
	)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return profile, nil
}
