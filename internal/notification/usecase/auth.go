package usecase

import (
	"context"
	"strconv"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
)

// requireAuth returns the caller's application id.
func (s *Usecase) requireAuth(ctx context.Context) (int64, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return 0, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	id, err := strconv.ParseInt(clm.ApplicationID, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return id, nil
}
