package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/ambassador/internal/contact/entity"
)

type ContactResponse struct {
	ID          int64     `json:"id,string"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Avatar      string    `json:"avatar"`
	Event       string    `json:"event"`
	Note        string    `json:"note"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	LinkedinURL string    `json:"linkedinUrl"`
	Starred     bool      `json:"starred"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newContactResponse(c entity.Contact) ContactResponse {
	return ContactResponse{
		ID:          c.ID,
		Name:        c.Name,
		Company:     c.Company,
		Avatar:      c.Avatar,
		Event:       c.Event,
		Note:        c.Note,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		LinkedinURL: c.LinkedinURL,
		Starred:     c.Starred,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type ListContactsResponse struct {
	Contacts []ContactResponse `json:"contacts"`
}

func newListContactsResponse(items []entity.Contact) ListContactsResponse {
	return ListContactsResponse{Contacts: lo.Map(items, func(c entity.Contact, _ int) ContactResponse {
		return newContactResponse(c)
	})}
}

func (ListContactsResponse) Message() string { return "Contacts retrieved" }

type CreateContactRequest struct {
	Name        string `json:"name"`
	Company     string `json:"company"`
	Avatar      string `json:"avatar"`
	Event       string `json:"event"`
	Note        string `json:"note"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	LinkedinURL string `json:"linkedinUrl"`
	Starred     bool   `json:"starred"`
}

// UpdateContactRequest leaves absent fields untouched.
type UpdateContactRequest struct {
	Name        *string `json:"name"`
	Company     *string `json:"company"`
	Avatar      *string `json:"avatar"`
	Event       *string `json:"event"`
	Note        *string `json:"note"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	LinkedinURL *string `json:"linkedinUrl"`
	Starred     *bool   `json:"starred"`
}

type ContactCreatedResponse struct {
	Contact ContactResponse `json:"contact"`
}

func (ContactCreatedResponse) Message() string { return "Contact created" }
func (ContactCreatedResponse) StatusCode() int { return http.StatusCreated }

type ContactDetailResponse struct {
	Contact ContactResponse `json:"contact"`
}

func (ContactDetailResponse) Message() string { return "Contact retrieved" }

type ContactUpdatedResponse struct {
	Contact ContactResponse `json:"contact"`
}

func (ContactUpdatedResponse) Message() string { return "Contact updated" }

type ContactDeletedResponse struct {
	ID int64 `json:"id,string"`
}

func (ContactDeletedResponse) Message() string { return "Contact deleted" }
