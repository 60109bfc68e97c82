package inbound

import (
	"net/http"

	"github.com/shandysiswandi/ambassador/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/me/reimbursements", end.List)
	r.POST("/api/v1/me/reimbursements", end.Create)
	r.GET("/api/v1/me/reimbursements/stats", end.Stats)

	r.Admin(http.MethodGet, "/api/v1/admin/reimbursements", end.ListAll)
	r.Admin(http.MethodPatch, "/api/v1/admin/reimbursements/:reimbursementId/status", end.UpdateStatus)
}
