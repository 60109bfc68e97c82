package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/ambassador/internal/event/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type CreateEventInput struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"required,max=5000"`
	Location    string `validate:"required,max=300"`
	Image       string `validate:"omitempty,url,max=2048"`
	Date        string `validate:"required,datetime=2006-01-02"`
	Time        string `validate:"max=20"`
}

// CreateEvent publishes a new event. Only reachable through the admin key.
func (s *Usecase) CreateEvent(ctx context.Context, in CreateEventInput) (*entity.Event, error) {
	ctx, span := s.startSpan(ctx, "CreateEvent")
	defer span.End()

	for _, f := range []*string{&in.Title, &in.Description, &in.Location, &in.Image, &in.Date, &in.Time} {
		*f = strings.TrimSpace(*f)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	date, err := time.Parse(time.DateOnly, in.Date)
	if err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	e := entity.Event{
		ID:          s.uid.Generate(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Image:       in.Image,
		Date:        date,
		Time:        in.Time,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repoDB.CreateEvent(ctx, e); err != nil {
		slog.ErrorContext(ctx, "failed to repo create event", "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "event created", "event_id", e.ID, "event_date", in.Date)

	return &e, nil
}

// ListEvents returns every event in calendar order, flagged with whether the
// caller is attending.
func (s *Usecase) ListEvents(ctx context.Context) ([]entity.Event, error) {
	ctx, span := s.startSpan(ctx, "ListEvents")
	defer span.End()

	viewer, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.repoDB.ListEvents(ctx, viewer, s.listLimit())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list events", "application_id", viewer, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

type GetEventInput struct {
	ID int64 `validate:"required,gt=0"`
}

type EventDetail struct {
	Event     entity.Event
	Attendees []entity.Attendee
}

func (s *Usecase) GetEvent(ctx context.Context, in GetEventInput) (*EventDetail, error) {
	ctx, span := s.startSpan(ctx, "GetEvent")
	defer span.End()

	viewer, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.detail(ctx, in.ID, viewer)
}

type AttendInput struct {
	EventID int64 `validate:"required,gt=0"`
}

// JoinEvent signs the caller up. Joining twice is not an error.
func (s *Usecase) JoinEvent(ctx context.Context, in AttendInput) (*EventDetail, error) {
	ctx, span := s.startSpan(ctx, "JoinEvent")
	defer span.End()

	viewer, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	err = s.repoDB.AddAttendee(ctx, in.EventID, viewer, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errEventNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo add attendee", "event_id", in.EventID, "application_id", viewer, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "event joined", "event_id", in.EventID, "application_id", viewer)

	return s.detail(ctx, in.EventID, viewer)
}

// LeaveEvent drops the caller from the attendee list. Leaving an event the
// caller never joined is not an error.
func (s *Usecase) LeaveEvent(ctx context.Context, in AttendInput) (*EventDetail, error) {
	ctx, span := s.startSpan(ctx, "LeaveEvent")
	defer span.End()

	viewer, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.RemoveAttendee(ctx, in.EventID, viewer); err != nil {
		slog.ErrorContext(ctx, "failed to repo remove attendee", "event_id", in.EventID, "application_id", viewer, "error", err)
		return nil, goerror.NewServer(err)
	}

	return s.detail(ctx, in.EventID, viewer)
}

func (s *Usecase) detail(ctx context.Context, id, viewer int64) (*EventDetail, error) {
	e, err := s.repoDB.GetEvent(ctx, id, viewer)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errEventNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get event", "event_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	attendees, err := s.repoDB.ListAttendees(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list attendees", "event_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EventDetail{Event: *e, Attendees: attendees}, nil
}
