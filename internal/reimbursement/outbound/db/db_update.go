package db

import (
	"context"
	"time"

	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
)

// UpdateReimbursementStatus moves the request to next only while it is still
// in from. A request that moved in the meantime yields ErrNotFound.
func (s *DB) UpdateReimbursementStatus(ctx context.Context, id int64, from, next entity.Status, adminNote string, at time.Time) (_ *entity.Reimbursement, err error) {
	ctx, span := s.startSpan(ctx, "UpdateReimbursementStatus")
	defer func() { s.endSpan(span, err) }()

	r, err := scanReimbursement(s.conn.QueryRow(ctx, `
		UPDATE reimbursements SET status = $3, admin_note = $4, updated_at = $5
		WHERE id = $1 AND status = $2
		RETURNING `+reimbursementColumns,
		id, from.String(), next.String(), adminNote, at,
	))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &r, nil
}
