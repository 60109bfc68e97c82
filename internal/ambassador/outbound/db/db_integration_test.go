//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
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

	schema, err := os.ReadFile("../../../../migrations/0002_ambassador.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return NewDB(pool, instrument.NewNoop())
}

func newDraft(t *testing.T, s *DB, id int64) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, s.CreateApplication(context.Background(), entity.Application{
		ID:                id,
		VideoReviewStatus: entity.VideoReviewPending,
		Status:            entity.ApplicationStatusDraft,
		CreatedAt:         now,
		UpdatedAt:         now,
	}))
}

func TestDB_ApplicationFlow(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)
	newDraft(t, s, 1)

	_, err := s.GetApplication(ctx, 2)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	// submit refuses an incomplete draft
	_, err = s.SubmitApplication(ctx, 1, time.Now())
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	app, err := s.UpdateApplicationContact(ctx, 1, entity.ChannelPhone, "+628123456789")
	require.NoError(t, err)
	assert.Equal(t, "+628123456789", app.Phone)

	app, err = s.MarkApplicationVerified(ctx, 1, entity.ChannelPhone, "+628123456789")
	require.NoError(t, err)
	assert.True(t, app.PhoneVerified)
	assert.True(t, app.Progress.Phone)

	// same number keeps the verification
	app, err = s.UpdateApplicationContact(ctx, 1, entity.ChannelPhone, "+628123456789")
	require.NoError(t, err)
	assert.True(t, app.PhoneVerified)

	// a different number resets it
	app, err = s.UpdateApplicationContact(ctx, 1, entity.ChannelPhone, "+628999999999")
	require.NoError(t, err)
	assert.False(t, app.PhoneVerified)
	assert.False(t, app.Progress.Phone)

	// verifying the old number no longer matches
	_, err = s.MarkApplicationVerified(ctx, 1, entity.ChannelPhone, "+628123456789")
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	_, err = s.MarkApplicationVerified(ctx, 1, entity.ChannelPhone, "+628999999999")
	require.NoError(t, err)
	_, err = s.UpdateApplicationContact(ctx, 1, entity.ChannelEmail, "ayu@example.com")
	require.NoError(t, err)
	_, err = s.MarkApplicationVerified(ctx, 1, entity.ChannelEmail, "ayu@example.com")
	require.NoError(t, err)
	app, err = s.UpdateApplicationVideo(ctx, 1, entity.VideoUpload{Key: "videos/1/a.mp4", Filename: "a.mp4", ContentType: "video/mp4"})
	require.NoError(t, err)
	assert.True(t, app.Progress.Completed())

	at := time.Now().UTC().Truncate(time.Microsecond)
	app, err = s.SubmitApplication(ctx, 1, at)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusSubmitted, app.Status)
	require.NotNil(t, app.SubmittedAt)
	assert.True(t, at.Equal(*app.SubmittedAt))

	// submitted applications are frozen
	_, err = s.UpdateApplicationContact(ctx, 1, entity.ChannelEmail, "other@example.com")
	assert.ErrorIs(t, err, goerror.ErrNotFound)
	_, err = s.SubmitApplication(ctx, 1, at)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	login, err := s.GetLoginApplicationByPhone(ctx, "+628999999999")
	require.NoError(t, err)
	assert.Equal(t, int64(1), login.ID)

	_, err = s.GetLoginApplicationByPhone(ctx, "+628123456789")
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}

func TestDB_Profile(t *testing.T) {
	ctx := context.Background()
	s := newTestDB(t)
	newDraft(t, s, 10)

	_, err := s.GetProfileByApplicationID(ctx, 10)
	assert.ErrorIs(t, err, goerror.ErrNotFound)

	now := time.Now().UTC().Truncate(time.Microsecond)
	first, err := s.UpsertProfile(ctx, entity.Profile{
		ID: 100, ApplicationID: 10, Name: "Ayu", Email: "ayu@example.com",
		IsProfileCompleted: true, CompletedAt: &now, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), first.ID)

	// second upsert keeps the original id
	second, err := s.UpsertProfile(ctx, entity.Profile{
		ID: 101, ApplicationID: 10, Name: "Ayu Lestari", Email: "ayu@example.com",
		IsProfileCompleted: true, CompletedAt: &now, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), second.ID)
	assert.Equal(t, "Ayu Lestari", second.Name)

	second.LinkedinURL = "https://linkedin.com/in/ayu"
	updated, err := s.UpdateProfile(ctx, *second)
	require.NoError(t, err)
	assert.Equal(t, "https://linkedin.com/in/ayu", updated.LinkedinURL)

	// profiles need an application
	_, err = s.UpsertProfile(ctx, entity.Profile{ID: 200, ApplicationID: 99, Name: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, goerror.ErrNotFound)
}
