package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
)

// UpdateApplicationContact stores a phone number or email on a draft. When
// the value changes the channel's verification is reset.
func (s *DB) UpdateApplicationContact(ctx context.Context, id int64, ch entity.Channel, value string) (_ *entity.Application, err error) {
	ctx, span := s.startSpan(ctx, "UpdateApplicationContact")
	defer func() { s.endSpan(span, err) }()

	cols, ok := channelColumns[ch]
	if !ok {
		return nil, errUnknownChannel
	}
	col, verified, progress := cols[0], cols[1], cols[2]

	row := s.conn.QueryRow(ctx, `
		UPDATE ambassador_applications
		SET `+col+` = $2,
			`+verified+` = CASE WHEN `+col+` = $2 THEN `+verified+` ELSE false END,
			`+progress+` = CASE WHEN `+col+` = $2 THEN `+progress+` ELSE false END,
			updated_at = now()
		WHERE id = $1 AND status = 'draft'
		RETURNING `+applicationColumns,
		id, value,
	)

	app, err := scanApplication(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return app, nil
}

// MarkApplicationVerified flags the channel verified, provided its value is
// still the one the code was sent to.
func (s *DB) MarkApplicationVerified(ctx context.Context, id int64, ch entity.Channel, value string) (_ *entity.Application, err error) {
	ctx, span := s.startSpan(ctx, "MarkApplicationVerified")
	defer func() { s.endSpan(span, err) }()

	cols, ok := channelColumns[ch]
	if !ok {
		return nil, errUnknownChannel
	}
	col, verified, progress := cols[0], cols[1], cols[2]

	row := s.conn.QueryRow(ctx, `
		UPDATE ambassador_applications
		SET `+verified+` = true, `+progress+` = true, updated_at = now()
		WHERE id = $1 AND `+col+` = $2
		RETURNING `+applicationColumns,
		id, value,
	)

	app, err := scanApplication(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return app, nil
}

func (s *DB) UpdateApplicationVideo(ctx context.Context, id int64, video entity.VideoUpload) (_ *entity.Application, err error) {
	ctx, span := s.startSpan(ctx, "UpdateApplicationVideo")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		UPDATE ambassador_applications
		SET video_key = $2,
			video_filename = $3,
			video_content_type = $4,
			video_uploaded = true,
			video_review_status = 'pending',
			progress_video = true,
			updated_at = now()
		WHERE id = $1 AND status = 'draft'
		RETURNING `+applicationColumns,
		id, video.Key, video.Filename, video.ContentType,
	)

	app, err := scanApplication(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return app, nil
}

// SubmitApplication submits a draft only if every step is still complete.
// Returns goerror.ErrNotFound otherwise.
func (s *DB) SubmitApplication(ctx context.Context, id int64, at time.Time) (_ *entity.Application, err error) {
	ctx, span := s.startSpan(ctx, "SubmitApplication")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		UPDATE ambassador_applications
		SET status = 'submitted', submitted_at = $2, updated_at = $2
		WHERE id = $1
			AND status = 'draft'
			AND progress_video AND progress_phone AND progress_email
			AND phone_verified AND email_verified AND video_uploaded
		RETURNING `+applicationColumns,
		id, at,
	)

	app, err := scanApplication(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return app, nil
}

func (s *DB) UpdateProfile(ctx context.Context, p entity.Profile) (_ *entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "UpdateProfile")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		UPDATE ambassador_profiles
		SET name = $2, email = $3, linkedin_url = $4, profile_image = $5, qr_code_data = $6, updated_at = $7
		WHERE application_id = $1
		RETURNING `+profileColumns,
		p.ApplicationID, p.Name, p.Email, p.LinkedinURL, p.ProfileImage, p.QRCodeData, p.UpdatedAt,
	)

	profile, err := scanProfile(row)
	if err != nil {
		return nil, s.mapError(err)
	}

	return profile, nil
}
