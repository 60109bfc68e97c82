package inbound

import (
	"github.com/shandysiswandi/ambassador/internal/contact/entity"
	"github.com/shandysiswandi/ambassador/internal/contact/usecase"
	"github.com/shandysiswandi/ambassador/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	items, err := h.uc.ListContacts(r.Context(), usecase.ListContactsInput{Query: r.GetQuery("q")})
	if err != nil {
		return nil, err
	}

	return newListContactsResponse(items), nil
}

func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateContactRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	c, err := h.uc.CreateContact(r.Context(), usecase.ContactInput{
		Name:        req.Name,
		Company:     req.Company,
		Avatar:      req.Avatar,
		Event:       req.Event,
		Note:        req.Note,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		LinkedinURL: req.LinkedinURL,
		Starred:     req.Starred,
	})
	if err != nil {
		return nil, err
	}

	return ContactCreatedResponse{Contact: newContactResponse(*c)}, nil
}

func (h *HTTPEndpoint) Get(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("contactId")
	if err != nil {
		return nil, err
	}

	c, err := h.uc.GetContact(r.Context(), usecase.GetContactInput{ID: id})
	if err != nil {
		return nil, err
	}

	return ContactDetailResponse{Contact: newContactResponse(*c)}, nil
}

func (h *HTTPEndpoint) Update(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("contactId")
	if err != nil {
		return nil, err
	}

	var req UpdateContactRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	c, err := h.uc.UpdateContact(r.Context(), usecase.UpdateContactInput{
		ID: id,
		Patch: entity.ContactPatch{
			Name:        req.Name,
			Company:     req.Company,
			Avatar:      req.Avatar,
			Event:       req.Event,
			Note:        req.Note,
			Phone:       req.Phone,
			Email:       req.Email,
			Address:     req.Address,
			LinkedinURL: req.LinkedinURL,
			Starred:     req.Starred,
		},
	})
	if err != nil {
		return nil, err
	}

	return ContactUpdatedResponse{Contact: newContactResponse(*c)}, nil
}

func (h *HTTPEndpoint) ToggleStar(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("contactId")
	if err != nil {
		return nil, err
	}

	c, err := h.uc.ToggleStar(r.Context(), usecase.ToggleStarInput{ID: id})
	if err != nil {
		return nil, err
	}

	return ContactUpdatedResponse{Contact: newContactResponse(*c)}, nil
}

func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("contactId")
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeleteContact(r.Context(), usecase.DeleteContactInput{ID: id}); err != nil {
		return nil, err
	}

	return ContactDeletedResponse{ID: id}, nil
}
