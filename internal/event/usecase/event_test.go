package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/ambassador/internal/event/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/clock"
	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
	"github.com/shandysiswandi/ambassador/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	uc    *Usecase
	repo  *memoryRepo
	clock *clock.Manual
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  event:\n    list_limit: 50\n"))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := fixture{repo: newMemoryRepo(), clock: clock.NewManual(epoch)}
	f.uc = New(Dependency{
		RepoDB:     f.repo,
		Config:     cfg,
		UID:        &sequence{},
		Clock:      f.clock,
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})

	return f
}

func as(id string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{ApplicationID: id})
}

func requireCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, code, ge.Code())
}

func (f fixture) publish(t *testing.T, title, date string) *entity.Event {
	t.Helper()
	e, err := f.uc.CreateEvent(context.Background(), CreateEventInput{
		Title:       title,
		Description: "Meet the community",
		Location:    "Jakarta",
		Date:        date,
		Time:        "10:00AM",
	})
	require.NoError(t, err)
	return e
}

func TestCreateEvent(t *testing.T) {
	t.Run("publishes", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		e, err := f.uc.CreateEvent(context.Background(), CreateEventInput{
			Title:       " Tech Expo ",
			Description: "Booth duty",
			Location:    "JIExpo",
			Image:       "https://cdn.example.com/expo.png",
			Date:        "2025-04-10",
			Time:        "09:00AM",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Tech Expo", e.Title)
		assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), e.Date)
		assert.Equal(t, epoch, e.CreatedAt)
		assert.Contains(t, f.repo.events, e.ID)
	})

	t.Run("validates fields", func(t *testing.T) {
		tests := []struct {
			name string
			in   CreateEventInput
		}{
			{name: "missing title", in: CreateEventInput{Description: "d", Location: "l", Date: "2025-04-10"}},
			{name: "missing location", in: CreateEventInput{Title: "t", Description: "d", Date: "2025-04-10"}},
			{name: "bad date", in: CreateEventInput{Title: "t", Description: "d", Location: "l", Date: "10-04-2025"}},
			{name: "bad image", in: CreateEventInput{Title: "t", Description: "d", Location: "l", Date: "2025-04-10", Image: "expo.png"}},
			{name: "long time", in: CreateEventInput{Title: "t", Description: "d", Location: "l", Date: "2025-04-10", Time: "sometime in the late afternoon"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)

				_, err := f.uc.CreateEvent(context.Background(), tt.in)

				requireCode(t, err, goerror.CodeInvalidInput)
				assert.Empty(t, f.repo.events)
			})
		}
	})

	t.Run("repo failure", func(t *testing.T) {
		f := newFixture(t)
		f.repo.err = assert.AnError

		_, err := f.uc.CreateEvent(context.Background(), CreateEventInput{Title: "t", Description: "d", Location: "l", Date: "2025-04-10"})

		requireCode(t, err, goerror.CodeInternal)
	})
}

func TestListEvents(t *testing.T) {
	// Arrange
	f := newFixture(t)
	later := f.publish(t, "Later", "2025-06-01")
	sooner := f.publish(t, "Sooner", "2025-04-01")
	_, err := f.uc.JoinEvent(as("7"), AttendInput{EventID: later.ID})
	require.NoError(t, err)

	// Act
	items, err := f.uc.ListEvents(as("7"))

	// Assert
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, sooner.ID, items[0].ID)
	assert.False(t, items[0].Joined)
	assert.Equal(t, later.ID, items[1].ID)
	assert.True(t, items[1].Joined)
	assert.Equal(t, 1, items[1].AttendeeCount)
	assert.Equal(t, int32(50), f.repo.limit)

	_, err = f.uc.ListEvents(context.Background())
	requireCode(t, err, goerror.CodeUnauthorized)
}

func TestJoinAndLeave(t *testing.T) {
	f := newFixture(t)
	e := f.publish(t, "Expo", "2025-04-10")

	t.Run("join is idempotent", func(t *testing.T) {
		first, err := f.uc.JoinEvent(as("7"), AttendInput{EventID: e.ID})
		require.NoError(t, err)
		f.clock.Advance(time.Hour)
		again, err := f.uc.JoinEvent(as("7"), AttendInput{EventID: e.ID})
		require.NoError(t, err)

		assert.True(t, again.Event.Joined)
		assert.Equal(t, 1, again.Event.AttendeeCount)
		require.Len(t, again.Attendees, 1)
		assert.Equal(t, first.Attendees[0].JoinedAt, again.Attendees[0].JoinedAt)
	})

	t.Run("second attendee", func(t *testing.T) {
		d, err := f.uc.JoinEvent(as("8"), AttendInput{EventID: e.ID})
		require.NoError(t, err)

		assert.Equal(t, 2, d.Event.AttendeeCount)
		assert.Equal(t, []int64{7, 8}, []int64{d.Attendees[0].ApplicationID, d.Attendees[1].ApplicationID})
	})

	t.Run("leave", func(t *testing.T) {
		d, err := f.uc.LeaveEvent(as("7"), AttendInput{EventID: e.ID})
		require.NoError(t, err)

		assert.False(t, d.Event.Joined)
		assert.Equal(t, 1, d.Event.AttendeeCount)
	})

	t.Run("leave without joining", func(t *testing.T) {
		d, err := f.uc.LeaveEvent(as("9"), AttendInput{EventID: e.ID})
		require.NoError(t, err)

		assert.Equal(t, 1, d.Event.AttendeeCount)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := f.uc.JoinEvent(as("7"), AttendInput{EventID: 404})
		requireCode(t, err, goerror.CodeNotFound)

		_, err = f.uc.LeaveEvent(as("7"), AttendInput{EventID: 404})
		requireCode(t, err, goerror.CodeNotFound)
	})

	t.Run("bad input", func(t *testing.T) {
		_, err := f.uc.JoinEvent(as("7"), AttendInput{})
		requireCode(t, err, goerror.CodeInvalidInput)

		_, err = f.uc.JoinEvent(context.Background(), AttendInput{EventID: e.ID})
		requireCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestGetEvent(t *testing.T) {
	f := newFixture(t)
	e := f.publish(t, "Expo", "2025-04-10")

	d, err := f.uc.GetEvent(as("7"), GetEventInput{ID: e.ID})
	require.NoError(t, err)
	assert.Equal(t, "Expo", d.Event.Title)
	assert.Empty(t, d.Attendees)

	_, err = f.uc.GetEvent(as("7"), GetEventInput{ID: 999})
	requireCode(t, err, goerror.CodeNotFound)

	f.repo.err = assert.AnError
	_, err = f.uc.GetEvent(as("7"), GetEventInput{ID: e.ID})
	requireCode(t, err, goerror.CodeInternal)
}
