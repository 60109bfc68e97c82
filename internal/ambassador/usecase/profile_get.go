package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

var errProfileNotFound = goerror.NewBusiness("Profile not found", goerror.CodeNotFound)

type GetProfileInput struct {
	ApplicationID int64 `validate:"required,gt=0"`
}

func (s *Usecase) GetProfile(ctx context.Context, in GetProfileInput) (*entity.Profile, error) {
	ctx, span := s.startSpan(ctx, "GetProfile")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	profile, err := s.repoDB.GetProfileByApplicationID(ctx, in.ApplicationID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProfileNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get profile", "application_id", in.ApplicationID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return profile, nil
}

type ProfileCompletionOutput struct {
	HasProfile         bool
	IsProfileCompleted bool
	Profile            *entity.Profile
}

// ProfileCompletion never fails on a missing profile; it reports it instead.
func (s *Usecase) ProfileCompletion(ctx context.Context, in GetProfileInput) (*ProfileCompletionOutput, error) {
	ctx, span := s.startSpan(ctx, "ProfileCompletion")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	profile, err := s.repoDB.GetProfileByApplicationID(ctx, in.ApplicationID)
	if errors.Is(err, goerror.ErrNotFound) {
		return &ProfileCompletionOutput{}, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get profile", "application_id", in.ApplicationID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &ProfileCompletionOutput{HasProfile: true, IsProfileCompleted: profile.IsProfileCompleted}
	if profile.IsProfileCompleted {
		out.Profile = profile
	}

	return out, nil
}
