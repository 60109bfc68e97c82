package entity

import "time"

// Event is an ambassador gathering that applications can sign up for.
type Event struct {
	ID          int64
	Title       string
	Description string
	Location    string
	Image       string
	Date        time.Time
	// Time is the free-form start time shown next to the date, e.g. "10:00AM".
	Time          string
	AttendeeCount int
	// Joined reports whether the viewing application is attending.
	Joined    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attendee is an application signed up for an event.
type Attendee struct {
	ApplicationID int64
	Name          string
	ProfileImage  string
	JoinedAt      time.Time
}
