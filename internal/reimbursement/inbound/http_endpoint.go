package inbound

import (
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	items, err := h.uc.ListReimbursements(r.Context(), usecase.ListReimbursementsInput{Status: r.GetQuery("status")})
	if err != nil {
		return nil, err
	}

	return newListReimbursementsResponse(items), nil
}

func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateReimbursementRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.CreateReimbursement(r.Context(), usecase.CreateReimbursementInput{
		Event:       req.Event,
		Date:        req.Date,
		ExpenseType: req.ExpenseType,
		AmountCents: req.AmountCents,
		ReceiptURL:  req.ReceiptURL,
		Note:        req.Note,
	})
	if err != nil {
		return nil, err
	}

	return ReimbursementCreatedResponse{Reimbursement: newReimbursementResponse(*out)}, nil
}

func (h *HTTPEndpoint) Stats(r *router.Request) (any, error) {
	st, err := h.uc.ReimbursementStats(r.Context())
	if err != nil {
		return nil, err
	}

	return ReimbursementStatsResponse{
		PendingCents:  st.PendingCents,
		ApprovedCents: st.ApprovedCents,
		PaidCents:     st.PaidCents,
		RejectedCents: st.RejectedCents,
	}, nil
}

func (h *HTTPEndpoint) ListAll(r *router.Request) (any, error) {
	items, err := h.uc.ListAllReimbursements(r.Context(), usecase.ListAllReimbursementsInput{Status: r.GetQuery("status")})
	if err != nil {
		return nil, err
	}

	return ListAllReimbursementsResponse{Reimbursements: newListReimbursementsResponse(items).Reimbursements}, nil
}

func (h *HTTPEndpoint) UpdateStatus(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("reimbursementId")
	if err != nil {
		return nil, err
	}

	var req UpdateStatusRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.UpdateStatus(r.Context(), usecase.UpdateStatusInput{ID: id, Status: req.Status, AdminNote: req.AdminNote})
	if err != nil {
		return nil, err
	}

	return ReimbursementStatusResponse{Reimbursement: newReimbursementResponse(*out)}, nil
}
