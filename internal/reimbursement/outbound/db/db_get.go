package db

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
)

func (s *DB) GetReimbursement(ctx context.Context, id int64) (_ *entity.Reimbursement, err error) {
	ctx, span := s.startSpan(ctx, "GetReimbursement")
	defer func() { s.endSpan(span, err) }()

	r, err := scanReimbursement(s.conn.QueryRow(ctx,
		`SELECT `+reimbursementColumns+` FROM reimbursements WHERE id = $1`, id,
	))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &r, nil
}

// ListReimbursements returns the newest requests first. A zero applicationID
// lists every application and an empty status lists every status.
func (s *DB) ListReimbursements(ctx context.Context, applicationID int64, status entity.Status, limit int32) (_ []entity.Reimbursement, err error) {
	ctx, span := s.startSpan(ctx, "ListReimbursements")
	defer func() { s.endSpan(span, err) }()

	sql := `SELECT ` + reimbursementColumns + ` FROM reimbursements WHERE true`
	var args []any

	if applicationID > 0 {
		args = append(args, applicationID)
		sql += ` AND application_id = $` + strconv.Itoa(len(args))
	}
	if status != "" {
		args = append(args, status.String())
		sql += ` AND status = $` + strconv.Itoa(len(args))
	}

	args = append(args, limit)
	sql += ` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Reimbursement, error) {
		return scanReimbursement(row)
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) ReimbursementStats(ctx context.Context, applicationID int64) (_ *entity.Stats, err error) {
	ctx, span := s.startSpan(ctx, "ReimbursementStats")
	defer func() { s.endSpan(span, err) }()

	var st entity.Stats
	err = s.conn.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount_cents) FILTER (WHERE status = 'pending'), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE status = 'approved'), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE status = 'rejected'), 0)
		FROM reimbursements
		WHERE application_id = $1`,
		applicationID,
	).Scan(&st.PendingCents, &st.ApprovedCents, &st.PaidCents, &st.RejectedCents)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &st, nil
}
