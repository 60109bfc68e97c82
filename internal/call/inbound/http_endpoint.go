package inbound

import (
	"github.com/shandysiswandi/ambassador/internal/call/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	contactID, err := r.GetQueryInt64("contactId", 0)
	if err != nil {
		return nil, err
	}

	items, err := h.uc.ListCalls(r.Context(), usecase.ListCallsInput{ContactID: contactID})
	if err != nil {
		return nil, err
	}

	return newListCallsResponse(items), nil
}

func (h *HTTPEndpoint) Log(r *router.Request) (any, error) {
	var req LogCallRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	c, err := h.uc.LogCall(r.Context(), usecase.LogCallInput{
		ContactID:       req.ContactID,
		CalledAt:        req.CalledAt,
		DurationSeconds: req.DurationSeconds,
		Notes:           req.Notes,
		Status:          req.Status,
	})
	if err != nil {
		return nil, err
	}

	return CallLoggedResponse{Call: newCallResponse(*c)}, nil
}
