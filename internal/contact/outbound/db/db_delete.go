package db

import "context"

func (s *DB) DeleteContact(ctx context.Context, applicationID, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "DeleteContact")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND application_id = $2`, id, applicationID)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() == 1, nil
}
