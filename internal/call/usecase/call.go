package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/ambassador/internal/call/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type LogCallInput struct {
	ContactID       int64  `validate:"required,gt=0"`
	CalledAt        string `validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DurationSeconds int    `validate:"gte=0,lte=86400"`
	Notes           string `validate:"max=2000"`
	Status          string `validate:"omitempty,oneof=initiated completed missed"`
}

// LogCall records a call to one of the caller's contacts. CalledAt defaults
// to now and Status to initiated.
func (s *Usecase) LogCall(ctx context.Context, in LogCallInput) (*entity.Call, error) {
	ctx, span := s.startSpan(ctx, "LogCall")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	in.CalledAt = strings.TrimSpace(in.CalledAt)
	in.Notes = strings.TrimSpace(in.Notes)
	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	calledAt := now
	if in.CalledAt != "" {
		calledAt, err = time.Parse(time.RFC3339, in.CalledAt)
		if err != nil {
			return nil, goerror.NewInvalidInput(err)
		}
		if calledAt.After(now) {
			return nil, goerror.NewInvalidInput(errors.New("calledAt must not be in the future"))
		}
	}

	status := entity.StatusInitiated
	if in.Status != "" {
		status = entity.Status(in.Status)
	}

	c := entity.Call{
		ID:              s.uid.Generate(),
		ApplicationID:   owner,
		ContactID:       in.ContactID,
		CalledAt:        calledAt.UTC(),
		DurationSeconds: in.DurationSeconds,
		Notes:           in.Notes,
		Status:          status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.repoDB.CreateCall(ctx, c)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errContactNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create call", "application_id", owner, "contact_id", in.ContactID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "call logged", "call_id", c.ID, "contact_id", c.ContactID, "status", c.Status)

	return &c, nil
}

type ListCallsInput struct {
	ContactID int64 `validate:"gte=0"`
}

// ListCalls returns the caller's call log, newest first, optionally
// narrowed to one contact.
func (s *Usecase) ListCalls(ctx context.Context, in ListCallsInput) ([]entity.Call, error) {
	ctx, span := s.startSpan(ctx, "ListCalls")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	items, err := s.repoDB.ListCalls(ctx, owner, in.ContactID, s.listLimit())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list calls", "application_id", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}
