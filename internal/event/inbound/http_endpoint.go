package inbound

import (
	"github.com/shandysiswandi/ambassador/internal/event/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	items, err := h.uc.ListEvents(r.Context())
	if err != nil {
		return nil, err
	}

	return newListEventsResponse(items), nil
}

func (h *HTTPEndpoint) Get(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("eventId")
	if err != nil {
		return nil, err
	}

	d, err := h.uc.GetEvent(r.Context(), usecase.GetEventInput{ID: id})
	if err != nil {
		return nil, err
	}

	return EventDetailResponse{Event: newEventDetail(d)}, nil
}

func (h *HTTPEndpoint) Join(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("eventId")
	if err != nil {
		return nil, err
	}

	d, err := h.uc.JoinEvent(r.Context(), usecase.AttendInput{EventID: id})
	if err != nil {
		return nil, err
	}

	return EventJoinedResponse{Event: newEventDetail(d)}, nil
}

func (h *HTTPEndpoint) Leave(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("eventId")
	if err != nil {
		return nil, err
	}

	d, err := h.uc.LeaveEvent(r.Context(), usecase.AttendInput{EventID: id})
	if err != nil {
		return nil, err
	}

	return EventLeftResponse{Event: newEventDetail(d)}, nil
}

func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateEventRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	e, err := h.uc.CreateEvent(r.Context(), usecase.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Image:       req.Image,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		return nil, err
	}

	return EventCreatedResponse{Event: newEventResponse(*e)}, nil
}
