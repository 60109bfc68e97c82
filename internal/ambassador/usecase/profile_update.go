package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
)

type UpdateProfileInput struct {
	ApplicationID int64   `validate:"required,gt=0"`
	Name          *string `validate:"omitempty,max=100"`
	Email         *string `validate:"omitempty,email_loose"`
	LinkedinURL   *string `validate:"omitempty"`
	ProfileImage  *string `validate:"omitempty"`
}

// UpdateProfile patches the caller's own profile and regenerates its QR code.
func (s *Usecase) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*entity.Profile, error) {
	ctx, span := s.startSpan(ctx, "UpdateProfile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if clm.ApplicationID != strconv.FormatInt(in.ApplicationID, 10) {
		slog.WarnContext(ctx, "profile update for another application", "application_id", in.ApplicationID, "caller", clm.ApplicationID)
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	in.Name = trimOrNil(in.Name)
	in.Email = trimOrNil(in.Email)
	for _, p := range []*string{in.LinkedinURL, in.ProfileImage} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}

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

	app, err := s.getApplication(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}

	entity.ProfilePatch{
		Name:         in.Name,
		Email:        in.Email,
		LinkedinURL:  in.LinkedinURL,
		ProfileImage: in.ProfileImage,
	}.Apply(profile)

	profile.QRCodeData, err = entity.QRCodeData(*profile, app.Phone)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build qr code data", "application_id", app.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	profile.UpdatedAt = s.clock.Now()

	updated, err := s.repoDB.UpdateProfile(ctx, *profile)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errProfileNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update profile", "application_id", in.ApplicationID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return updated, nil
}

// trimOrNil treats a blank value as not provided.
func trimOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
