package inbound

import "github.com/shandysiswandi/ambassador/internal/pkg/router"

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/calls", end.List)
	r.POST("/api/v1/calls", end.Log)
}
