//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ambassador"),
		tcpostgres.WithUsername("ambassador"),
		tcpostgres.WithPassword("ambassador"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	for _, f := range []string{"0002_ambassador.sql", "0005_reimbursements.sql"} {
		schema, err := os.ReadFile("../../../../migrations/" + f)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(schema))
		require.NoError(t, err)
	}

	_, err = pool.Exec(ctx, `INSERT INTO ambassador_applications (id) VALUES (1), (2)`)
	require.NoError(t, err)

	return NewDB(pool, instrument.NewNoop())
}

func TestDB_ReimbursementFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)
	base := time.Now().UTC().Truncate(time.Millisecond)
	day := time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC)

	seed := []entity.Reimbursement{
		{ID: 1, ApplicationID: 1, AmountCents: 1000, Status: entity.StatusPending},
		{ID: 2, ApplicationID: 1, AmountCents: 2500, Status: entity.StatusApproved},
		{ID: 3, ApplicationID: 1, AmountCents: 400, Status: entity.StatusRejected},
		{ID: 4, ApplicationID: 2, AmountCents: 9999, Status: entity.StatusPending},
	}
	for i, r := range seed {
		r.Event, r.ExpenseType, r.Date = "Expo", "meals", day
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		r.UpdatedAt = r.CreatedAt
		require.NoError(t, s.CreateReimbursement(ctx, r))
	}

	mine, err := s.ListReimbursements(ctx, 1, "", 100)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, int64(3), mine[0].ID)
	assert.True(t, mine[0].Date.Equal(day))

	pending, err := s.ListReimbursements(ctx, 0, entity.StatusPending, 100)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	st, err := s.ReimbursementStats(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, &entity.Stats{PendingCents: 1000, ApprovedCents: 2500, RejectedCents: 400}, st)

	empty, err := s.ReimbursementStats(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, &entity.Stats{}, empty)

	paid, err := s.UpdateReimbursementStatus(ctx, 2, entity.StatusApproved, entity.StatusPaid, "transferred", base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, paid.Status)
	assert.Equal(t, "transferred", paid.AdminNote)

	// the guard on the previous status makes a stale update miss
	_, err = s.UpdateReimbursementStatus(ctx, 2, entity.StatusApproved, entity.StatusRejected, "", base)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	_, err = s.GetReimbursement(ctx, 404)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	err = s.CreateReimbursement(ctx, entity.Reimbursement{ID: 9, ApplicationID: 77, Event: "x", ExpenseType: "y", Date: day, AmountCents: 1, Status: entity.StatusPending, CreatedAt: base, UpdatedAt: base})
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}
