package entity

import "time"

type Status string

const (
	StatusInitiated Status = "initiated"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusInitiated, StatusCompleted, StatusMissed:
		return true
	}
	return false
}

// Call is one logged phone call from an ambassador to a contact.
type Call struct {
	ID            int64
	ApplicationID int64
	// ContactID is zero once the contact was deleted; the log entry stays.
	ContactID       int64
	ContactName     string
	CalledAt        time.Time
	DurationSeconds int
	Notes           string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
