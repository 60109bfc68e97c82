package entity

import (
	"encoding/json"
	"strconv"
	"time"
)

// Profile is the public ambassador card completed after submission.
type Profile struct {
	ID                 int64
	ApplicationID      int64
	Name               string
	Email              string
	LinkedinURL        string
	ProfileImage       string
	QRCodeData         string
	IsProfileCompleted bool
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ProfilePatch carries the fields a profile update may change. Nil leaves
// the field untouched; an empty name or email is ignored as well.
type ProfilePatch struct {
	Name         *string
	Email        *string
	LinkedinURL  *string
	ProfileImage *string
}

// Apply copies the set fields onto p.
func (pp ProfilePatch) Apply(p *Profile) {
	if pp.Name != nil && *pp.Name != "" {
		p.Name = *pp.Name
	}
	if pp.Email != nil && *pp.Email != "" {
		p.Email = *pp.Email
	}
	if pp.LinkedinURL != nil {
		p.LinkedinURL = *pp.LinkedinURL
	}
	if pp.ProfileImage != nil {
		p.ProfileImage = *pp.ProfileImage
	}
}

type qrCodePayload struct {
	ApplicationID string `json:"applicationId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	LinkedinURL   string `json:"linkedinUrl,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// QRCodeData renders the payload encoded in the ambassador's QR code.
func QRCodeData(p Profile, phone string) (string, error) {
	b, err := json.Marshal(qrCodePayload{
		ApplicationID: strconv.FormatInt(p.ApplicationID, 10),
		Name:          p.Name,
		Email:         p.Email,
		LinkedinURL:   p.LinkedinURL,
		Phone:         phone,
	})
	if err != nil {
		return "", err
	}

	return string(b), nil
}
