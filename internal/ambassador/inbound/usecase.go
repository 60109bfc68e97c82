package inbound

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/ambassador/usecase"
)

type uc interface {
	CreateApplication(ctx context.Context) (*entity.Application, error)
	GetApplication(ctx context.Context, in usecase.GetApplicationInput) (*entity.Application, error)
	UploadVideo(ctx context.Context, in usecase.UploadVideoInput) (*entity.Application, error)
	StreamVideo(ctx context.Context, in usecase.StreamVideoInput) (*usecase.StreamVideoOutput, error)
	UpdatePhone(ctx context.Context, in usecase.UpdatePhoneInput) (*entity.Application, error)
	UpdateEmail(ctx context.Context, in usecase.UpdateEmailInput) (*entity.Application, error)
	RequestOTP(ctx context.Context, in usecase.RequestOTPInput) error
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) (*entity.Application, error)
	ResendStatus(ctx context.Context, in usecase.ResendStatusInput) (*usecase.ResendStatusOutput, error)
	SubmitApplication(ctx context.Context, in usecase.SubmitApplicationInput) (*entity.Application, error)

	CompleteProfile(ctx context.Context, in usecase.CompleteProfileInput) (*entity.Profile, error)
	GetProfile(ctx context.Context, in usecase.GetProfileInput) (*entity.Profile, error)
	ProfileCompletion(ctx context.Context, in usecase.GetProfileInput) (*usecase.ProfileCompletionOutput, error)
	UpdateProfile(ctx context.Context, in usecase.UpdateProfileInput) (*entity.Profile, error)

	CheckPhone(ctx context.Context, in usecase.CheckPhoneInput) (*usecase.CheckPhoneOutput, error)
	LoginRequestOTP(ctx context.Context, in usecase.LoginRequestOTPInput) (*usecase.LoginRequestOTPOutput, error)
	LoginVerifyOTP(ctx context.Context, in usecase.LoginVerifyOTPInput) (*usecase.LoginVerifyOTPOutput, error)
}
