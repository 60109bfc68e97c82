package inbound

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/ambassador/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// CreateApplication starts a draft application.
func (h *HTTPEndpoint) CreateApplication(r *router.Request) (any, error) {
	app, err := h.uc.CreateApplication(r.Context())
	if err != nil {
		return nil, err
	}

	return CreateApplicationResponse{ApplicationID: app.ID, Progress: app.Progress}, nil
}

func (h *HTTPEndpoint) GetApplication(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	app, err := h.uc.GetApplication(r.Context(), usecase.GetApplicationInput{ID: id})
	if err != nil {
		return nil, err
	}

	return newApplicationResponse(app), nil
}

// Completion reports whether the application is ready to submit.
func (h *HTTPEndpoint) Completion(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	app, err := h.uc.GetApplication(r.Context(), usecase.GetApplicationInput{ID: id})
	if err != nil {
		return nil, err
	}

	return CompletionResponse{
		ApplicationResponse: newApplicationResponse(app),
		AllCompleted:        app.ReadyToSubmit(),
	}, nil
}

// UploadVideo reads the "video" multipart part and stores it.
func (h *HTTPEndpoint) UploadVideo(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	file, err := r.StreamSingleFile("video")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.WarnContext(r.Context(), "failed to close uploaded video", "error", err)
		}
	}()

	app, err := h.uc.UploadVideo(r.Context(), usecase.UploadVideoInput{
		ApplicationID: id,
		File:          file,
		Filename:      file.Filename,
		ContentType:   file.ContentType,
	})
	if err != nil {
		return nil, err
	}

	return UploadVideoResponse{VideoUploaded: app.VideoUploaded, Progress: app.Progress}, nil
}

// StreamVideo serves the application video, honoring a single byte range.
func (h *HTTPEndpoint) StreamVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := (&router.Request{Request: r}).GetParamInt64("id")
	if err != nil {
		router.WriteError(ctx, w, err)
		return
	}

	out, err := h.uc.StreamVideo(ctx, usecase.StreamVideoInput{ApplicationID: id, Range: r.Header.Get("Range")})
	if err != nil {
		router.WriteError(ctx, w, err)
		return
	}
	defer func() {
		if err := out.Body.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close video stream", "application_id", id, "error", err)
		}
	}()

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.FormatInt(out.Size, 10))

	code := http.StatusOK
	if out.Range != nil {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", out.Range.Start, out.Range.End, out.TotalSize))
		code = http.StatusPartialContent
	}
	w.WriteHeader(code)

	if _, err := io.Copy(w, out.Body); err != nil {
		slog.WarnContext(ctx, "video stream interrupted", "application_id", id, "error", err)
	}
}

func (h *HTTPEndpoint) UpdatePhone(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdatePhoneRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	app, err := h.uc.UpdatePhone(r.Context(), usecase.UpdatePhoneInput{ApplicationID: id, Phone: req.Phone})
	if err != nil {
		return nil, err
	}

	return UpdatePhoneResponse{Phone: app.Phone, Progress: app.Progress}, nil
}

func (h *HTTPEndpoint) UpdateEmail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateEmailRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	app, err := h.uc.UpdateEmail(r.Context(), usecase.UpdateEmailInput{ApplicationID: id, Email: req.Email})
	if err != nil {
		return nil, err
	}

	return UpdateEmailResponse{Email: app.Email, Progress: app.Progress}, nil
}

func (h *HTTPEndpoint) RequestPhoneOTP(r *router.Request) (any, error) {
	return h.requestOTP(r, entity.ChannelPhone)
}

func (h *HTTPEndpoint) RequestEmailOTP(r *router.Request) (any, error) {
	return h.requestOTP(r, entity.ChannelEmail)
}

func (h *HTTPEndpoint) requestOTP(r *router.Request, ch entity.Channel) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.RequestOTP(r.Context(), usecase.RequestOTPInput{ApplicationID: id, Channel: ch}); err != nil {
		return nil, err
	}

	return OTPSentResponse{channel: ch}, nil
}

func (h *HTTPEndpoint) VerifyPhoneOTP(r *router.Request) (any, error) {
	app, err := h.verifyOTP(r, entity.ChannelPhone)
	if err != nil {
		return nil, err
	}

	return PhoneVerifiedResponse{PhoneVerified: app.PhoneVerified, Progress: app.Progress}, nil
}

func (h *HTTPEndpoint) VerifyEmailOTP(r *router.Request) (any, error) {
	app, err := h.verifyOTP(r, entity.ChannelEmail)
	if err != nil {
		return nil, err
	}

	return EmailVerifiedResponse{EmailVerified: app.EmailVerified, Progress: app.Progress}, nil
}

func (h *HTTPEndpoint) verifyOTP(r *router.Request, ch entity.Channel) (*entity.Application, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{ApplicationID: id, Channel: ch, OTP: req.OTP})
}

// ResendStatus tells the client whether a new code may be requested yet.
func (h *HTTPEndpoint) ResendStatus(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ResendStatus(r.Context(), usecase.ResendStatusInput{
		ApplicationID: id,
		Channel:       entity.Channel(r.GetParam("purpose")),
	})
	if err != nil {
		return nil, err
	}

	return ResendStatusResponse{Allowed: out.Allowed, WaitSeconds: out.WaitSeconds}, nil
}

func (h *HTTPEndpoint) SubmitApplication(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	app, err := h.uc.SubmitApplication(r.Context(), usecase.SubmitApplicationInput{ApplicationID: id})
	if err != nil {
		return nil, err
	}

	resp := SubmitApplicationResponse{Status: app.Status.String(), ApplicationID: app.ID}
	if app.SubmittedAt != nil {
		resp.SubmittedAt = *app.SubmittedAt
	}

	return resp, nil
}

func (h *HTTPEndpoint) CompleteProfile(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	p, err := h.uc.CompleteProfile(r.Context(), usecase.CompleteProfileInput{
		ApplicationID: id,
		Name:          req.Name,
		Email:         req.Email,
		LinkedinURL:   req.LinkedinURL,
		ProfileImage:  req.ProfileImage,
	})
	if err != nil {
		return nil, err
	}

	return CompleteProfileResponse{ProfileCompleted: p.IsProfileCompleted, UserProfile: newUserProfile(p)}, nil
}

func (h *HTTPEndpoint) GetProfile(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	p, err := h.uc.GetProfile(r.Context(), usecase.GetProfileInput{ApplicationID: id})
	if err != nil {
		return nil, err
	}

	return ProfileResponse{UserProfile: newUserProfile(p), message: "Profile retrieved successfully"}, nil
}

func (h *HTTPEndpoint) ProfileCompletion(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.ProfileCompletion(r.Context(), usecase.GetProfileInput{ApplicationID: id})
	if err != nil {
		return nil, err
	}

	return ProfileCompletionResponse{
		HasProfile:         out.HasProfile,
		IsProfileCompleted: out.IsProfileCompleted,
		UserProfile:        newUserProfile(out.Profile),
	}, nil
}

// UpdateProfile patches the profile of the signed-in ambassador.
func (h *HTTPEndpoint) UpdateProfile(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	p, err := h.uc.UpdateProfile(r.Context(), usecase.UpdateProfileInput{
		ApplicationID: id,
		Name:          req.Name,
		Email:         req.Email,
		LinkedinURL:   req.LinkedinURL,
		ProfileImage:  req.ProfileImage,
	})
	if err != nil {
		return nil, err
	}

	return ProfileResponse{UserProfile: newUserProfile(p), message: "Profile updated successfully"}, nil
}

func (h *HTTPEndpoint) CheckPhone(r *router.Request) (any, error) {
	var req PhoneRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.CheckPhone(r.Context(), usecase.CheckPhoneInput{Phone: req.Phone})
	if err != nil {
		return nil, err
	}

	resp := CheckPhoneResponse{Exists: out.Exists, CanLogin: out.CanLogin, ProfileCompleted: out.ProfileCompleted}
	if out.ApplicationID > 0 {
		resp.ApplicationID = strconv.FormatInt(out.ApplicationID, 10)
	}

	return resp, nil
}

func (h *HTTPEndpoint) LoginRequestOTP(r *router.Request) (any, error) {
	var req PhoneRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.LoginRequestOTP(r.Context(), usecase.LoginRequestOTPInput{Phone: req.Phone})
	if err != nil {
		return nil, err
	}

	return LoginRequestOTPResponse{ApplicationID: out.ApplicationID, Phone: out.Phone}, nil
}

// LoginVerifyOTP exchanges a phone code for a bearer token.
func (h *HTTPEndpoint) LoginVerifyOTP(r *router.Request) (any, error) {
	var req LoginVerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.LoginVerifyOTP(r.Context(), usecase.LoginVerifyOTPInput{Phone: req.Phone, OTP: req.OTP})
	if err != nil {
		return nil, err
	}

	return LoginVerifyOTPResponse{
		LoginSuccess:  true,
		Token:         out.Token,
		ApplicationID: out.Application.ID,
		UserProfile:   newUserProfile(out.Profile),
	}, nil
}
