package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type CompleteProfileInput struct {
	ApplicationID int64  `validate:"required,gt=0"`
	Name          string `validate:"required,max=100"`
	Email         string `validate:"required,email_loose"`
	LinkedinURL   string `validate:"omitempty,url"`
	ProfileImage  string `validate:"omitempty,url"`
}

// CompleteProfile creates or replaces the ambassador profile of a submitted
// application.
func (s *Usecase) CompleteProfile(ctx context.Context, in CompleteProfileInput) (*entity.Profile, error) {
	ctx, span := s.startSpan(ctx, "CompleteProfile")
	defer span.End()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.LinkedinURL = strings.TrimSpace(in.LinkedinURL)
	in.ProfileImage = strings.TrimSpace(in.ProfileImage)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	app, err := s.getApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	if !app.IsSubmitted() {
		return nil, goerror.NewBusiness("Please submit your ambassador application first", goerror.CodeRejected)
	}

	now := s.clock.Now()
	profile := entity.Profile{
		ID:                 s.uid.Generate(),
		ApplicationID:      app.ID,
		Name:               in.Name,
		Email:              in.Email,
		LinkedinURL:        in.LinkedinURL,
		ProfileImage:       in.ProfileImage,
		IsProfileCompleted: true,
		CompletedAt:        &now,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	profile.QRCodeData, err = entity.QRCodeData(profile, app.Phone)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build qr code data", "application_id", app.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	saved, err := s.repoDB.UpsertProfile(ctx, profile)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert profile", "application_id", app.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "profile completed", "application_id", app.ID)

	return saved, nil
}
