package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/ambassador/internal/contact/entity"
	"github.com/shandysiswandi/ambassador/internal/pkg/goerror"
)

type ContactInput struct {
	Name        string `validate:"required,max=120"`
	Company     string `validate:"max=120"`
	Avatar      string `validate:"max=2048"`
	Event       string `validate:"max=200"`
	Note        string `validate:"max=2000"`
	Phone       string `validate:"omitempty,phone"`
	Email       string `validate:"omitempty,email_loose"`
	Address     string `validate:"max=500"`
	LinkedinURL string `validate:"omitempty,url"`
	Starred     bool
}

func (in ContactInput) normalize() ContactInput {
	for _, f := range []*string{&in.Name, &in.Company, &in.Avatar, &in.Event, &in.Note, &in.Phone, &in.Email, &in.Address, &in.LinkedinURL} {
		*f = strings.TrimSpace(*f)
	}
	return in
}

func (in ContactInput) contact() entity.Contact {
	return entity.Contact{
		Name:        in.Name,
		Company:     in.Company,
		Avatar:      in.Avatar,
		Event:       in.Event,
		Note:        in.Note,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		LinkedinURL: in.LinkedinURL,
		Starred:     in.Starred,
	}
}

func (s *Usecase) CreateContact(ctx context.Context, in ContactInput) (*entity.Contact, error) {
	ctx, span := s.startSpan(ctx, "CreateContact")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	in = in.normalize()
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	c := in.contact()
	c.ID = s.uid.Generate()
	c.ApplicationID = owner
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repoDB.CreateContact(ctx, c); err != nil {
		slog.ErrorContext(ctx, "failed to repo create contact", "application_id", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &c, nil
}

type GetContactInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) GetContact(ctx context.Context, in GetContactInput) (*entity.Contact, error) {
	ctx, span := s.startSpan(ctx, "GetContact")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	c, err := s.repoDB.GetContact(ctx, owner, in.ID)
	if err != nil {
		return nil, s.mapRepoError(ctx, "get contact", in.ID, err)
	}

	return c, nil
}

type ListContactsInput struct {
	Query string `validate:"max=100"`
}

func (s *Usecase) ListContacts(ctx context.Context, in ListContactsInput) ([]entity.Contact, error) {
	ctx, span := s.startSpan(ctx, "ListContacts")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	in.Query = strings.TrimSpace(in.Query)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	limit := s.cfg.GetInt("modules.contact.list_limit")
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	items, err := s.repoDB.ListContacts(ctx, owner, in.Query, int32(limit)) //nolint:gosec // bounded above
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list contacts", "application_id", owner, "error", err)
		return nil, goerror.NewServer(err)
	}

	return items, nil
}

type UpdateContactInput struct {
	ID    int64 `validate:"required,gt=0"`
	Patch entity.ContactPatch
}

// UpdateContact merges the patch into the stored contact and validates the
// result as a whole.
func (s *Usecase) UpdateContact(ctx context.Context, in UpdateContactInput) (*entity.Contact, error) {
	ctx, span := s.startSpan(ctx, "UpdateContact")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	current, err := s.repoDB.GetContact(ctx, owner, in.ID)
	if err != nil {
		return nil, s.mapRepoError(ctx, "get contact", in.ID, err)
	}

	merged := current.Apply(in.Patch)
	norm := ContactInput{
		Name:        merged.Name,
		Company:     merged.Company,
		Avatar:      merged.Avatar,
		Event:       merged.Event,
		Note:        merged.Note,
		Phone:       merged.Phone,
		Email:       merged.Email,
		Address:     merged.Address,
		LinkedinURL: merged.LinkedinURL,
		Starred:     merged.Starred,
	}.normalize()
	if err := s.validator.Validate(norm); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	next := norm.contact()
	next.ID = current.ID
	next.ApplicationID = owner
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.clock.Now()

	out, err := s.repoDB.UpdateContact(ctx, next)
	if err != nil {
		return nil, s.mapRepoError(ctx, "update contact", in.ID, err)
	}

	return out, nil
}

type ToggleStarInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) ToggleStar(ctx context.Context, in ToggleStarInput) (*entity.Contact, error) {
	ctx, span := s.startSpan(ctx, "ToggleStar")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	out, err := s.repoDB.ToggleContactStar(ctx, owner, in.ID, s.clock.Now())
	if err != nil {
		return nil, s.mapRepoError(ctx, "toggle contact star", in.ID, err)
	}

	return out, nil
}

type DeleteContactInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) DeleteContact(ctx context.Context, in DeleteContactInput) error {
	ctx, span := s.startSpan(ctx, "DeleteContact")
	defer span.End()

	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	deleted, err := s.repoDB.DeleteContact(ctx, owner, in.ID)
	if err != nil {
		return s.mapRepoError(ctx, "delete contact", in.ID, err)
	}
	if !deleted {
		return errContactNotFound
	}

	return nil
}
