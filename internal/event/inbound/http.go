package inbound

import (
	"net/http"

	"github.com/shandysiswandi/ambassador/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/events", end.List)
	r.GET("/api/v1/events/:eventId", end.Get)
	r.POST("/api/v1/events/:eventId/join", end.Join)
	r.POST("/api/v1/events/:eventId/leave", end.Leave)

	r.Admin(http.MethodPost, "/api/v1/admin/events", end.Create)
}
