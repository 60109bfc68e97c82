package inbound

import (
	"net/http"

	"github.com/shandysiswandi/ambassador/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Application
	r.POST("/api/v1/applications", end.CreateApplication)
	r.GET("/api/v1/applications/:id", end.GetApplication)
	r.GET("/api/v1/applications/:id/completion", end.Completion)
	r.PUT("/api/v1/applications/:id/video", end.UploadVideo)
	r.GETRaw("/api/v1/applications/:id/video", http.HandlerFunc(end.StreamVideo))
	r.PATCH("/api/v1/applications/:id/phone", end.UpdatePhone)
	r.POST("/api/v1/applications/:id/phone/request-otp", end.RequestPhoneOTP)
	r.POST("/api/v1/applications/:id/phone/verify-otp", end.VerifyPhoneOTP)
	r.PATCH("/api/v1/applications/:id/email", end.UpdateEmail)
	r.POST("/api/v1/applications/:id/email/request-otp", end.RequestEmailOTP)
	r.POST("/api/v1/applications/:id/email/verify-otp", end.VerifyEmailOTP)
	r.GET("/api/v1/applications/:id/otp/:purpose/resend", end.ResendStatus)
	r.POST("/api/v1/applications/:id/submit", end.SubmitApplication)

	// Profile
	r.POST("/api/v1/applications/:id/complete-profile", end.CompleteProfile)
	r.GET("/api/v1/applications/:id/profile", end.GetProfile)
	r.GET("/api/v1/applications/:id/profile/completion", end.ProfileCompletion)
	r.PATCH("/api/v1/applications/:id/profile", end.UpdateProfile) // need authenticated

	// Login
	r.POST("/api/v1/login/check-phone", end.CheckPhone)
	r.POST("/api/v1/login/request-otp", end.LoginRequestOTP)
	r.POST("/api/v1/login/verify-otp", end.LoginVerifyOTP)
}
