package entity

import (
	"strconv"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
)

// Progress tracks the three steps an applicant must finish before submitting.
type Progress struct {
	Video bool `json:"video"`
	Phone bool `json:"phone"`
	Email bool `json:"email"`
}

// Completed reports whether every step is done.
func (p Progress) Completed() bool {
	return p.Video && p.Phone && p.Email
}

// Application is an ambassador application moving from draft to submitted.
type Application struct {
	ID                int64
	Phone             string
	Email             string
	PhoneVerified     bool
	EmailVerified     bool
	VideoKey          string
	VideoFilename     string
	VideoContentType  string
	VideoUploaded     bool
	VideoReviewStatus VideoReviewStatus
	Status            ApplicationStatus
	Progress          Progress
	PushSubscription  valueobject.JSONMap
	SubmittedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// SubjectID is the identifier the OTP engine scopes codes to.
func (a Application) SubjectID() string {
	return strconv.FormatInt(a.ID, 10)
}

// ReadyToSubmit reports whether every step is completed and verified.
func (a Application) ReadyToSubmit() bool {
	return a.Progress.Completed() && a.PhoneVerified && a.EmailVerified && a.VideoUploaded
}

// IsSubmitted reports whether the application left the draft stage and was
// not rejected.
func (a Application) IsSubmitted() bool {
	switch a.Status {
	case ApplicationStatusSubmitted, ApplicationStatusUnderReview, ApplicationStatusApproved:
		return true
	default:
		return false
	}
}

// VideoUpload describes a stored application video.
type VideoUpload struct {
	Key         string
	Filename    string
	ContentType string
}
