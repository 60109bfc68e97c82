package inbound

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/usecase"
)

type uc interface {
	CreateReimbursement(ctx context.Context, in usecase.CreateReimbursementInput) (*entity.Reimbursement, error)
	ListReimbursements(ctx context.Context, in usecase.ListReimbursementsInput) ([]entity.Reimbursement, error)
	ReimbursementStats(ctx context.Context) (*entity.Stats, error)
	ListAllReimbursements(ctx context.Context, in usecase.ListAllReimbursementsInput) ([]entity.Reimbursement, error)
	UpdateStatus(ctx context.Context, in usecase.UpdateStatusInput) (*entity.Reimbursement, error)
}
