package inbound

import (
	"context"

	"github.com/shandysiswandi/ambassador/internal/contact/entity"
	"github.com/shandysiswandi/ambassador/internal/contact/usecase"
)

type uc interface {
	CreateContact(ctx context.Context, in usecase.ContactInput) (*entity.Contact, error)
	GetContact(ctx context.Context, in usecase.GetContactInput) (*entity.Contact, error)
	ListContacts(ctx context.Context, in usecase.ListContactsInput) ([]entity.Contact, error)
	UpdateContact(ctx context.Context, in usecase.UpdateContactInput) (*entity.Contact, error)
	ToggleStar(ctx context.Context, in usecase.ToggleStarInput) (*entity.Contact, error)
	DeleteContact(ctx context.Context, in usecase.DeleteContactInput) error
}
