package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/ambassador/internal/call/entity"
)

type CallResponse struct {
	ID              int64     `json:"id,string"`
	ContactID       int64     `json:"contactId,string"`
	ContactName     string    `json:"contactName"`
	CalledAt        time.Time `json:"calledAt"`
	DurationSeconds int       `json:"durationSeconds"`
	Notes           string    `json:"notes"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func newCallResponse(c entity.Call) CallResponse {
	return CallResponse{
		ID:              c.ID,
		ContactID:       c.ContactID,
		ContactName:     c.ContactName,
		CalledAt:        c.CalledAt,
		DurationSeconds: c.DurationSeconds,
		Notes:           c.Notes,
		Status:          c.Status.String(),
		CreatedAt:       c.CreatedAt,
	}
}

type ListCallsResponse struct {
	Calls []CallResponse `json:"calls"`
}

func newListCallsResponse(items []entity.Call) ListCallsResponse {
	return ListCallsResponse{Calls: lo.Map(items, func(c entity.Call, _ int) CallResponse {
		return newCallResponse(c)
	})}
}

func (ListCallsResponse) Message() string { return "Calls retrieved" }

// LogCallRequest accepts contactId as a JSON string, matching how ids are
// rendered in responses.
type LogCallRequest struct {
	ContactID       int64  `json:"contactId,string"`
	CalledAt        string `json:"calledAt"`
	DurationSeconds int    `json:"durationSeconds"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}

type CallLoggedResponse struct {
	Call CallResponse `json:"call"`
}

func (CallLoggedResponse) Message() string { return "Call logged" }
func (CallLoggedResponse) StatusCode() int { return http.StatusCreated }
