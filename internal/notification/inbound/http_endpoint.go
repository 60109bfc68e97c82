package inbound

import (
	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/notification/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) ListNotifications(r *router.Request) (any, error) {
	out, err := h.uc.ListNotifications(r.Context())
	if err != nil {
		return nil, err
	}

	return newListNotificationsResponse(out), nil
}

func (h *HTTPEndpoint) CreateNotification(r *router.Request) (any, error) {
	var req CreateNotificationRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	n, err := h.uc.CreateNotification(r.Context(), usecase.CreateNotificationInput{
		Type:        entity.Type(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}

	return CreateNotificationResponse{Notification: newNotificationResponse(*n)}, nil
}

func (h *HTTPEndpoint) MarkRead(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.MarkRead(r.Context(), usecase.MarkReadInput{ID: id}); err != nil {
		return nil, err
	}

	return MarkReadResponse{ID: id}, nil
}

func (h *HTTPEndpoint) MarkAllRead(r *router.Request) (any, error) {
	n, err := h.uc.MarkAllRead(r.Context())
	if err != nil {
		return nil, err
	}

	return MarkAllReadResponse{Updated: n}, nil
}

func (h *HTTPEndpoint) SavePushSubscription(r *router.Request) (any, error) {
	var req PushSubscriptionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.SavePushSubscription(r.Context(), usecase.SavePushSubscriptionInput{Subscription: req.Subscription}); err != nil {
		return nil, err
	}

	return PushSubscriptionResponse{}, nil
}
