package entity

import "time"

// Purpose names the contact channel a code proves ownership of.
type Purpose string

const (
	PurposePhone Purpose = "phone"
	PurposeEmail Purpose = "email"
)

func (p Purpose) String() string {
	return string(p)
}

func (p Purpose) IsValid() bool {
	return p == PurposePhone || p == PurposeEmail
}

// OTP is one issued code. The plaintext code never reaches storage; only
// CodeHash and Salt do.
type OTP struct {
	ID        string
	SubjectID string
	Purpose   Purpose
	CodeHash  string
	Salt      string
	ExpiresAt time.Time
	Verified  bool
	Attempts  int
	CreatedAt time.Time
}

// Usable reports whether the record can still be redeemed at now.
func (o OTP) Usable(now time.Time) bool {
	return !o.Verified && now.Before(o.ExpiresAt)
}
