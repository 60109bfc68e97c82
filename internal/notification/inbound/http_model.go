package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/ambassador/internal/notification/entity"
	"github.com/shandysiswandi/ambassador/internal/notification/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/valueobject"
)

type NotificationResponse struct {
	ID          int64               `json:"id,string"`
	Type        string              `json:"type"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Read        bool                `json:"read"`
	Metadata    valueobject.JSONMap `json:"metadata"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func newNotificationResponse(n entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Type:        n.Type.String(),
		Title:       n.Title,
		Description: n.Description,
		Read:        n.Read,
		Metadata:    n.Metadata,
		CreatedAt:   n.CreatedAt,
	}
}

type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	unread        int64
}

func newListNotificationsResponse(out *usecase.ListNotificationsOutput) ListNotificationsResponse {
	return ListNotificationsResponse{
		Notifications: lo.Map(out.Items, func(n entity.Notification, _ int) NotificationResponse {
			return newNotificationResponse(n)
		}),
		unread: out.UnreadCount,
	}
}

func (ListNotificationsResponse) Message() string {
	return "Notifications retrieved"
}

func (r ListNotificationsResponse) Meta() map[string]any {
	return map[string]any{"unreadCount": r.unread}
}

type CreateNotificationRequest struct {
	Type        string              `json:"type"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Metadata    valueobject.JSONMap `json:"metadata"`
}

type CreateNotificationResponse struct {
	Notification NotificationResponse `json:"notification"`
}

func (CreateNotificationResponse) Message() string {
	return "Notification created"
}

func (CreateNotificationResponse) StatusCode() int {
	return http.StatusCreated
}

type MarkReadResponse struct {
	ID int64 `json:"id,string"`
}

func (MarkReadResponse) Message() string {
	return "Notification marked as read"
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

func (MarkAllReadResponse) Message() string {
	return "All notifications marked as read"
}

type PushSubscriptionRequest struct {
	Subscription valueobject.JSONMap `json:"subscription"`
}

type PushSubscriptionResponse struct{}

func (PushSubscriptionResponse) Message() string {
	return "Push subscription saved"
}
