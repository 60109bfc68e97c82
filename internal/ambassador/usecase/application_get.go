package usecase

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/ambassador/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type GetApplicationInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) GetApplication(ctx context.Context, in GetApplicationInput) (*entity.Application, error) {
	ctx, span := s.startSpan(ctx, "GetApplication")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	return s.getApplication(ctx, in.ID)
}
