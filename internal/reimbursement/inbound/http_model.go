package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
)

type ReimbursementResponse struct {
	ID            int64     `json:"id,string"`
	ApplicationID int64     `json:"applicationId,string"`
	Event         string    `json:"event"`
	Date          string    `json:"date"`
	ExpenseType   string    `json:"expenseType"`
	AmountCents   int64     `json:"amountCents"`
	Status        string    `json:"status"`
	ReceiptURL    string    `json:"receiptUrl"`
	Note          string    `json:"note"`
	AdminNote     string    `json:"adminNote"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newReimbursementResponse(r entity.Reimbursement) ReimbursementResponse {
	return ReimbursementResponse{
		ID:            r.ID,
		ApplicationID: r.ApplicationID,
		Event:         r.Event,
		Date:          r.Date.Format(time.DateOnly),
		ExpenseType:   r.ExpenseType,
		AmountCents:   r.AmountCents,
		Status:        r.Status.String(),
		ReceiptURL:    r.ReceiptURL,
		Note:          r.Note,
		AdminNote:     r.AdminNote,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type ListReimbursementsResponse struct {
	Reimbursements []ReimbursementResponse `json:"reimbursements"`
}

func newListReimbursementsResponse(items []entity.Reimbursement) ListReimbursementsResponse {
	return ListReimbursementsResponse{Reimbursements: lo.Map(items, func(r entity.Reimbursement, _ int) ReimbursementResponse {
		return newReimbursementResponse(r)
	})}
}

func (ListReimbursementsResponse) Message() string { return "Reimbursements retrieved" }

type ListAllReimbursementsResponse struct {
	Reimbursements []ReimbursementResponse `json:"reimbursements"`
}

func (ListAllReimbursementsResponse) Message() string { return "All reimbursements retrieved" }

type CreateReimbursementRequest struct {
	Event       string `json:"event"`
	Date        string `json:"date"`
	ExpenseType string `json:"expenseType"`
	AmountCents int64  `json:"amountCents"`
	ReceiptURL  string `json:"receiptUrl"`
	Note        string `json:"note"`
}

type ReimbursementCreatedResponse struct {
	Reimbursement ReimbursementResponse `json:"reimbursement"`
}

func (ReimbursementCreatedResponse) Message() string { return "Reimbursement request created" }
func (ReimbursementCreatedResponse) StatusCode() int { return http.StatusCreated }

type ReimbursementStatsResponse struct {
	PendingCents  int64 `json:"totalPendingCents"`
	ApprovedCents int64 `json:"totalApprovedCents"`
	PaidCents     int64 `json:"totalPaidCents"`
	RejectedCents int64 `json:"totalRejectedCents"`
}

func (ReimbursementStatsResponse) Message() string { return "Reimbursement stats retrieved" }

type UpdateStatusRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"adminNote"`
}

type ReimbursementStatusResponse struct {
	Reimbursement ReimbursementResponse `json:"reimbursement"`
}

func (ReimbursementStatusResponse) Message() string { return "Reimbursement status updated" }
