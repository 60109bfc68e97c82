package inbound

import "github.com/shandysiswandi/ambassador/internal/pkg/router"

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/contacts", end.List)
	r.POST("/api/v1/contacts", end.Create)
	r.GET("/api/v1/contacts/:contactId", end.Get)
	r.PUT("/api/v1/contacts/:contactId", end.Update)
	r.DELETE("/api/v1/contacts/:contactId", end.Delete)
	r.PATCH("/api/v1/contacts/:contactId/star", end.ToggleStar)
}
