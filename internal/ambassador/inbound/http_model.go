package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
)

type CreateApplicationResponse struct {
	ApplicationID int64           `json:"applicationId,string"`
	Progress      entity.Progress `json:"progress"`
}

func (CreateApplicationResponse) Message() string {
	return "Application started successfully"
}

func (CreateApplicationResponse) StatusCode() int {
	return http.StatusCreated
}

type ApplicationResponse struct {
	ApplicationID int64           `json:"applicationId,string"`
	Progress      entity.Progress `json:"progress"`
	VideoUploaded bool            `json:"videoUploaded"`
	PhoneVerified bool            `json:"phoneVerified"`
	EmailVerified bool            `json:"emailVerified"`
	Status        string          `json:"status"`
}

func (ApplicationResponse) Message() string {
	return "Application retrieved"
}

type CompletionResponse struct {
	ApplicationResponse
	AllCompleted bool `json:"allCompleted"`
}

func (CompletionResponse) Message() string {
	return "Completion status checked"
}

func newApplicationResponse(app *entity.Application) ApplicationResponse {
	return ApplicationResponse{
		ApplicationID: app.ID,
		Progress:      app.Progress,
		VideoUploaded: app.VideoUploaded,
		PhoneVerified: app.PhoneVerified,
		EmailVerified: app.EmailVerified,
		Status:        app.Status.String(),
	}
}

type UploadVideoResponse struct {
	VideoUploaded bool            `json:"videoUploaded"`
	Progress      entity.Progress `json:"progress"`
}

func (UploadVideoResponse) Message() string {
	return "Video uploaded successfully"
}

type UpdatePhoneRequest struct {
	Phone string `json:"phone"`
}

type UpdatePhoneResponse struct {
	Phone    string          `json:"phone"`
	Progress entity.Progress `json:"progress"`
}

func (UpdatePhoneResponse) Message() string {
	return "Phone number added successfully"
}

type UpdateEmailRequest struct {
	Email string `json:"email"`
}

type UpdateEmailResponse struct {
	Email    string          `json:"email"`
	Progress entity.Progress `json:"progress"`
}

func (UpdateEmailResponse) Message() string {
	return "Email address added successfully"
}

type OTPSentResponse struct {
	channel entity.Channel
}

func (r OTPSentResponse) Message() string {
	if r.channel == entity.ChannelEmail {
		return "OTP sent to your email address"
	}
	return "OTP sent to your phone number"
}

type VerifyOTPRequest struct {
	OTP string `json:"otp"`
}

type PhoneVerifiedResponse struct {
	PhoneVerified bool            `json:"phoneVerified"`
	Progress      entity.Progress `json:"progress"`
}

func (PhoneVerifiedResponse) Message() string {
	return "Phone number verified successfully"
}

type EmailVerifiedResponse struct {
	EmailVerified bool            `json:"emailVerified"`
	Progress      entity.Progress `json:"progress"`
}

func (EmailVerifiedResponse) Message() string {
	return "Email verified successfully"
}

type ResendStatusResponse struct {
	Allowed     bool `json:"allowed"`
	WaitSeconds int  `json:"waitSeconds"`
}

func (ResendStatusResponse) Message() string {
	return "Resend status checked"
}

type SubmitApplicationResponse struct {
	Status        string    `json:"status"`
	ApplicationID int64     `json:"applicationId,string"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

func (SubmitApplicationResponse) Message() string {
	return "Application submitted successfully. It will be reviewed shortly."
}

type ProfileRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	LinkedinURL  string `json:"linkedinUrl"`
	ProfileImage string `json:"profileImage"`
}

type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	LinkedinURL  *string `json:"linkedinUrl"`
	ProfileImage *string `json:"profileImage"`
}

type UserProfile struct {
	ID                 int64      `json:"id,string"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	LinkedinURL        string     `json:"linkedinUrl"`
	ProfileImage       string     `json:"profileImage"`
	QRCodeData         string     `json:"qrCodeData"`
	IsProfileCompleted bool       `json:"isProfileCompleted"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
}

func newUserProfile(p *entity.Profile) *UserProfile {
	if p == nil {
		return nil
	}

	return &UserProfile{
		ID:                 p.ID,
		Name:               p.Name,
		Email:              p.Email,
		LinkedinURL:        p.LinkedinURL,
		ProfileImage:       p.ProfileImage,
		QRCodeData:         p.QRCodeData,
		IsProfileCompleted: p.IsProfileCompleted,
		CompletedAt:        p.CompletedAt,
	}
}

type CompleteProfileResponse struct {
	ProfileCompleted bool         `json:"profileCompleted"`
	UserProfile      *UserProfile `json:"userProfile"`
}

func (CompleteProfileResponse) Message() string {
	return "Profile completed successfully"
}

type ProfileResponse struct {
	UserProfile *UserProfile `json:"userProfile"`
	message     string
}

func (r ProfileResponse) Message() string {
	return r.message
}

type ProfileCompletionResponse struct {
	HasProfile         bool         `json:"hasProfile"`
	IsProfileCompleted bool         `json:"isProfileCompleted"`
	UserProfile        *UserProfile `json:"userProfile"`
}

func (ProfileCompletionResponse) Message() string {
	return "Profile completion status checked"
}

type PhoneRequest struct {
	Phone string `json:"phone"`
}

type CheckPhoneResponse struct {
	Exists           bool   `json:"exists"`
	CanLogin         bool   `json:"canLogin"`
	ProfileCompleted bool   `json:"profileCompleted"`
	ApplicationID    string `json:"applicationId,omitempty"`
}

func (r CheckPhoneResponse) Message() string {
	if !r.Exists {
		return "Phone number not found"
	}
	return "Phone number check completed"
}

type LoginRequestOTPResponse struct {
	ApplicationID int64  `json:"applicationId,string"`
	Phone         string `json:"phone"`
}

func (LoginRequestOTPResponse) Message() string {
	return "OTP sent to your phone number"
}

type LoginVerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type LoginVerifyOTPResponse struct {
	LoginSuccess  bool         `json:"loginSuccess"`
	Token         string       `json:"token"`
	ApplicationID int64        `json:"applicationId,string"`
	UserProfile   *UserProfile `json:"userProfile"`
}

func (LoginVerifyOTPResponse) Message() string {
	return "Login successful"
}
