package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/ambassador/internal/event/entity"
	"github.com/shandysiswandi/ambassador/internal/event/usecase"
)

type EventResponse struct {
	ID            int64  `json:"id,string"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	Image         string `json:"image"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	AttendeeCount int    `json:"attendeeCount"`
	Joined        bool   `json:"joined"`
}

func newEventResponse(e entity.Event) EventResponse {
	return EventResponse{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Location:      e.Location,
		Image:         e.Image,
		Date:          e.Date.Format(time.DateOnly),
		Time:          e.Time,
		AttendeeCount: e.AttendeeCount,
		Joined:        e.Joined,
	}
}

type AttendeeResponse struct {
	ApplicationID int64     `json:"applicationId,string"`
	Name          string    `json:"name"`
	ProfileImage  string    `json:"profileImage"`
	JoinedAt      time.Time `json:"joinedAt"`
}

type EventDetail struct {
	EventResponse
	Attendees []AttendeeResponse `json:"attendees"`
}

func newEventDetail(d *usecase.EventDetail) EventDetail {
	return EventDetail{
		EventResponse: newEventResponse(d.Event),
		Attendees: lo.Map(d.Attendees, func(a entity.Attendee, _ int) AttendeeResponse {
			return AttendeeResponse{ApplicationID: a.ApplicationID, Name: a.Name, ProfileImage: a.ProfileImage, JoinedAt: a.JoinedAt}
		}),
	}
}

type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}

func newListEventsResponse(items []entity.Event) ListEventsResponse {
	return ListEventsResponse{Events: lo.Map(items, func(e entity.Event, _ int) EventResponse {
		return newEventResponse(e)
	})}
}

func (ListEventsResponse) Message() string { return "Events retrieved" }

type EventDetailResponse struct {
	Event EventDetail `json:"event"`
}

func (EventDetailResponse) Message() string { return "Event retrieved" }

type EventJoinedResponse struct {
	Event EventDetail `json:"event"`
}

func (EventJoinedResponse) Message() string { return "Joined event" }

type EventLeftResponse struct {
	Event EventDetail `json:"event"`
}

func (EventLeftResponse) Message() string { return "Left event" }

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Image       string `json:"image"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

type EventCreatedResponse struct {
	Event EventResponse `json:"event"`
}

func (EventCreatedResponse) Message() string { return "Event created" }
func (EventCreatedResponse) StatusCode() int { return http.StatusCreated }
