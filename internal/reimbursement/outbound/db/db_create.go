package db

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
)

func (s *DB) CreateReimbursement(ctx context.Context, r entity.Reimbursement) (err error) {
	ctx, span := s.startSpan(ctx, "CreateReimbursement")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO reimbursements (`+reimbursementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		r.ID, r.ApplicationID, r.Event, r.Date, r.ExpenseType, r.AmountCents,
		r.Status.String(), r.ReceiptURL, r.Note, r.AdminNote, r.CreatedAt, r.UpdatedAt,
	)
	return s.mapError(err)
}
