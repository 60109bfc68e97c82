package db

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/ambassador/internal/contact/entity"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *DB) GetContact(ctx context.Context, applicationID, id int64) (_ *entity.Contact, err error) {
	ctx, span := s.startSpan(ctx, "GetContact")
	defer func() { s.endSpan(span, err) }()

	c, err := scanContact(s.conn.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND application_id = $2`,
		id, applicationID,
	))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &c, nil
}

// ListContacts returns the owner's contacts, most recently touched first. A
// non-empty query matches any of the free-text columns case-insensitively.
func (s *DB) ListContacts(ctx context.Context, applicationID int64, query string, limit int32) (_ []entity.Contact, err error) {
	ctx, span := s.startSpan(ctx, "ListContacts")
	defer func() { s.endSpan(span, err) }()

	sql := `SELECT ` + contactColumns + ` FROM contacts WHERE application_id = $1`
	args := []any{applicationID}

	if query != "" {
		sql += ` AND (name ILIKE $2 OR company ILIKE $2 OR event ILIKE $2
			OR note ILIKE $2 OR address ILIKE $2 OR linkedin_url ILIKE $2)`
		args = append(args, "%"+likeEscaper.Replace(query)+"%")
	}

	args = append(args, limit)
	sql += ` ORDER BY updated_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Contact, error) {
		return scanContact(row)
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}
