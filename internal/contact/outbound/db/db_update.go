package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/ambassador/internal/contact/entity"
)

func (s *DB) UpdateContact(ctx context.Context, c entity.Contact) (_ *entity.Contact, err error) {
	ctx, span := s.startSpan(ctx, "UpdateContact")
	defer func() { s.endSpan(span, err) }()

	out, err := scanContact(s.conn.QueryRow(ctx, `
		UPDATE contacts SET
			name = $3, company = $4, avatar = $5, event = $6, note = $7, phone = $8,
			email = $9, address = $10, linkedin_url = $11, starred = $12, updated_at = $13
		WHERE id = $1 AND application_id = $2
		RETURNING `+contactColumns,
		c.ID, c.ApplicationID, c.Name, c.Company, c.Avatar, c.Event, c.Note, c.Phone,
		c.Email, c.Address, c.LinkedinURL, c.Starred, c.UpdatedAt,
	))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

// ToggleContactStar flips the starred flag in place.
func (s *DB) ToggleContactStar(ctx context.Context, applicationID, id int64, at time.Time) (_ *entity.Contact, err error) {
	ctx, span := s.startSpan(ctx, "ToggleContactStar")
	defer func() { s.endSpan(span, err) }()

	out, err := scanContact(s.conn.QueryRow(ctx, `
		UPDATE contacts SET starred = NOT starred, updated_at = $3
		WHERE id = $1 AND application_id = $2
		RETURNING `+contactColumns,
		id, applicationID, at,
	))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}
