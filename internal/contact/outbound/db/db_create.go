package db

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/contact/entity"
)

func (s *DB) CreateContact(ctx context.Context, c entity.Contact) (err error) {
	ctx, span := s.startSpan(ctx, "CreateContact")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO contacts (`+contactColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		c.ID, c.ApplicationID, c.Name, c.Company, c.Avatar, c.Event, c.Note,
		c.Phone, c.Email, c.Address, c.LinkedinURL, c.Starred, c.CreatedAt, c.UpdatedAt,
	)
	return s.mapError(err)
}
