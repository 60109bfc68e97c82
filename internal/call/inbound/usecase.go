package inbound

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/call/entity"
	"github.com/shandysiswandi/ambassador/internal/call/usecase"
)

type uc interface {
	LogCall(ctx context.Context, in usecase.LogCallInput) (*entity.Call, error)
	ListCalls(ctx context.Context, in usecase.ListCallsInput) ([]entity.Call, error)
}
