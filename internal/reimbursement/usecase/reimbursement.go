package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
	"github.com/shandysiswandi/ambassador/internal/reimbursement/entity"
)

const dateLayout = time.DateOnly

type CreateReimbursementInput struct {
	Event       string `validate:"required,max=200"`
	Date        string `validate:"required,datetime=2006-01-02"`
	ExpenseType string `validate:"required,max=60"`
	AmountCents int64  `validate:"required,gt=0,lte=100000000"`
	ReceiptURL  string `validate:"omitempty,url,max=2048"`
	Note        string `validate:"max=2000"`
}

// CreateReimbursement files a new pending request for the caller.
func (s *Usecase) CreateReimbursement(ctx context.Context, in CreateReimbursementInput) (*entity.Reimbursement, error) {
	ctx, span := s.startSpan(ctx, "CreateReimbursement")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range []*string{&in.Event, &in.Date, &in.ExpenseType, &in.ReceiptURL, &in.Note} {
		*f = strings.TrimSpace(*f)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	r := entity.Reimbursement{
		ID:            s.uid.Generate(),
		ApplicationID: owner,
		Event:         in.Event,
		Date:          date,
		ExpenseType:   in.ExpenseType,
		AmountCents:   in.AmountCents,
		Status:        entity.StatusPending,
		ReceiptURL:    in.ReceiptURL,
		Note:          in.Note,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repoDB.CreateReimbursement(ctx, r); err != nil {
		slog.ErrorContext(ctx, "failed to repo create reimbursement", "application_id", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "reimbursement filed", "reimbursement_id", r.ID, "application_id", owner)

	return &r, nil
}

type ListReimbursementsInput struct {
	Status string `validate:"omitempty,oneof=pending approved paid rejected"`
}

// ListReimbursements returns the caller's requests, newest first.
func (s *Usecase) ListReimbursements(ctx context.Context, in ListReimbursementsInput) ([]entity.Reimbursement, error) {
	ctx, span := s.startSpan(ctx, "ListReimbursements")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	items, err := s.repoDB.ListReimbursements(ctx, owner, entity.Status(in.Status), s.listLimit())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list reimbursements", "application_id", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

// ReimbursementStats sums the caller's requests per status.
func (s *Usecase) ReimbursementStats(ctx context.Context) (*entity.Stats, error) {
	ctx, span := s.startSpan(ctx, "ReimbursementStats")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.repoDB.ReimbursementStats(ctx, owner)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo reimbursement stats", "application_id", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return st, nil
}

type ListAllReimbursementsInput struct {
	Status string `validate:"omitempty,oneof=all pending approved paid rejected"`
}

// ListAllReimbursements is the back-office view across every application.
func (s *Usecase) ListAllReimbursements(ctx context.Context, in ListAllReimbursementsInput) ([]entity.Reimbursement, error) {
	ctx, span := s.startSpan(ctx, "ListAllReimbursements")
	defer span.End()

	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	status := entity.Status(in.Status)
	if in.Status == "all" {
		status = ""
	}

	items, err := s.repoDB.ListReimbursements(ctx, 0, status, s.listLimit())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list all reimbursements", "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

type UpdateStatusInput struct {
	ID        int64  `validate:"required,gt=0"`
	Status    string `validate:"required,oneof=pending approved paid rejected"`
	AdminNote string `validate:"max=2000"`
}

// UpdateStatus moves a request along pending -> approved -> paid, with
// rejection allowed before payment.
func (s *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*entity.Reimbursement, error) {
	ctx, span := s.startSpan(ctx, "UpdateStatus")
	defer span.End()

	in.Status = strings.ToLower(strings.TrimSpace(in.Status))
	in.AdminNote = strings.TrimSpace(in.AdminNote)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	current, err := s.repoDB.GetReimbursement(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, errReimbursementNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get reimbursement", "reimbursement_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	next := entity.Status(in.Status)
	if !current.Status.CanMoveTo(next) {
		return nil, errTransition(current.Status, next)
	}

	out, err := s.repoDB.UpdateReimbursementStatus(ctx, in.ID, current.Status, next, in.AdminNote, s.clock.Now())
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "reimbursement changed during status update", "reimbursement_id", in.ID)
		return nil, goerror.NewBusiness("Reimbursement was updated by someone else, please reload", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update reimbursement status", "reimbursement_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "reimbursement status changed", "reimbursement_id", in.ID, "from", current.Status, "to", next)

	return out, nil
}

func errTransition(from, to entity.Status) error {
	return goerror.NewBusiness(fmt.Sprintf("Cannot change reimbursement from %s to %s", from, to), goerror.CodeConflict)
}
