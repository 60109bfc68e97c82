package inbound

import "github.com/shandysiswandi/ambassador/internal/pkg/router"

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/notifications", end.ListNotifications)
	r.POST("/api/v1/notifications", end.CreateNotification)
	r.PATCH("/api/v1/notifications/:id/read", end.MarkRead)
	r.POST("/api/v1/notifications/read-all", end.MarkAllRead)
	r.POST("/api/v1/notifications/push-subscription", end.SavePushSubscription)
}
