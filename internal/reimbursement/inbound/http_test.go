package inbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/config"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/pkg/instrument"
	"github.com/shandysiswandi/ambassador/internal/pkg/jwt"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsecase struct {
	uc

	gotCreate usecase.CreateReimbursementInput
	gotList   usecase.ListReimbursementsInput
	gotUpdate usecase.UpdateStatusInput
	updateErr error
}

func (s *stubUsecase) CreateReimbursement(_ context.Context, in usecase.CreateReimbursementInput) (*entity.Reimbursement, error) {
	s.gotCreate = in
	return &entity.Reimbursement{ID: 5, ApplicationID: 1, Date: time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC), Status: entity.StatusPending, AmountCents: in.AmountCents}, nil
}

func (s *stubUsecase) ListReimbursements(_ context.Context, in usecase.ListReimbursementsInput) ([]entity.Reimbursement, error) {
	s.gotList = in
	return []entity.Reimbursement{{ID: 5, Status: entity.StatusPending}}, nil
}

func (s *stubUsecase) ReimbursementStats(context.Context) (*entity.Stats, error) {
	return &entity.Stats{PendingCents: 50, PaidCents: 2500}, nil
}

func (s *stubUsecase) UpdateStatus(_ context.Context, in usecase.UpdateStatusInput) (*entity.Reimbursement, error) {
	s.gotUpdate = in
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &entity.Reimbursement{ID: in.ID, Status: entity.Status(in.Status)}, nil
}

type fixedJWT struct{}

func (fixedJWT) Generate(string, string) (string, error) { return "", nil }
func (fixedJWT) Verify(string) (jwt.Claims, error)      { return jwt.Claims{ApplicationID: "1"}, nil }

type staticID string

func (s staticID) Generate() string { return string(s) }

func serve(t *testing.T, stub *stubUsecase, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  admin_key: back-office\n"))
	require.NoError(t, err)

	r := router.NewRouter(router.Config{Config: cfg, UUID: staticID("cid-1"), JWT: fixedJWT{}, Instrument: instrument.NewNoop()})
	RegisterHTTPEndpoint(r, stub)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func withBearer(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer t")
	return req
}

func TestCreate(t *testing.T) {
	// Arrange
	stub := &stubUsecase{}
	body := `{"event":"Expo","date":"2025-02-27","expenseType":"meals","amountCents":125050}`

	// Act
	rec := serve(t, stub, withBearer(httptest.NewRequest(http.MethodPost, "/api/v1/me/reimbursements", strings.NewReader(body))))

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(125050), stub.gotCreate.AmountCents)
	assert.Equal(t, "2025-02-27", stub.gotCreate.Date)
	assert.Contains(t, rec.Body.String(), `"date":"2025-02-27"`)
	assert.Contains(t, rec.Body.String(), "Reimbursement request created")
}

func TestList_StatusFilterAndAuth(t *testing.T) {
	stub := &stubUsecase{}

	rec := serve(t, stub, httptest.NewRequest(http.MethodGet, "/api/v1/me/reimbursements", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, stub, withBearer(httptest.NewRequest(http.MethodGet, "/api/v1/me/reimbursements?status=approved", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "approved", stub.gotList.Status)
	assert.Contains(t, rec.Body.String(), `"id":"5"`)
}

func TestStats(t *testing.T) {
	rec := serve(t, &stubUsecase{}, withBearer(httptest.NewRequest(http.MethodGet, "/api/v1/me/reimbursements/stats", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalPendingCents":50`)
	assert.Contains(t, rec.Body.String(), `"totalPaidCents":2500`)
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name string
		key  string
		err  error
		code int
	}{
		{name: "bearer only", code: http.StatusUnauthorized},
		{name: "admin key", key: "back-office", code: http.StatusOK},
		{name: "illegal move", key: "back-office", err: goerror.NewBusiness("Cannot change reimbursement from pending to paid", goerror.CodeConflict), code: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubUsecase{updateErr: tt.err}
			req := withBearer(httptest.NewRequest(http.MethodPatch, "/api/v1/admin/reimbursements/9/status", strings.NewReader(`{"status":"paid","adminNote":"sent"}`)))
			if tt.key != "" {
				req.Header.Set(router.HeaderAdminKey, tt.key)
			}

			rec := serve(t, stub, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.key != "" {
				assert.Equal(t, usecase.UpdateStatusInput{ID: 9, Status: "paid", AdminNote: "sent"}, stub.gotUpdate)
			}
		})
	}
}
