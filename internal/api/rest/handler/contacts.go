package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dtroode/rolodex/internal/model"
)

// ContactService is the part of the contact store the API exposes.
type ContactService interface {
	Add(ctx context.Context, name, email string) model.Contact
	Edit(ctx context.Context, id int64, name, email string) bool
	Delete(ctx context.Context, id int64) bool
	Get(id int64) (model.Contact, error)
	Search(term string) []model.Contact
}

type Contacts struct {
	Service      ContactService
	ErrorHandler func(context.Context, error)
}

type ContactModel struct {
	ID    int64  `json:"id"    example:"1700000000000" readOnly:"true"`
	Name  string `json:"name"  example:"Ann"`
	Email string `json:"email" example:"ann@x.com"`
}

func newContactModel(c model.Contact) ContactModel {
	return ContactModel{ID: c.ID, Name: c.Name, Email: c.Email}
}

// Register mounts the contact operations on api.
func (h *Contacts) Register(api huma.API) {
	huma.Get(api, "/contacts",
		handlerWithErrorHandler(h.list, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
	huma.Get(api, "/contacts/{id}",
		handlerWithErrorHandler(h.get, h.ErrorHandler),
		opErrors(http.StatusNotFound, http.StatusInternalServerError),
	)
	huma.Post(api, "/contacts",
		handlerWithErrorHandler(h.add, h.ErrorHandler),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
		func(o *huma.Operation) { o.DefaultStatus = http.StatusCreated },
	)
	huma.Put(api, "/contacts/{id}",
		handlerWithErrorHandler(h.put, h.ErrorHandler),
		opErrors(http.StatusUnprocessableEntity, http.StatusInternalServerError),
	)
	huma.Delete(api, "/contacts/{id}",
		handlerWithErrorHandler(h.del, h.ErrorHandler),
		opErrors(http.StatusInternalServerError),
	)
}

type ContactsListOutput struct {
	Body []ContactModel
}

func (h *Contacts) list(_ context.Context, input *struct {
	Q string `query:"q" example:"ann" doc:"Case-insensitive substring of name or email"`
}) (*ContactsListOutput, error) {
	contacts := h.Service.Search(input.Q)

	body := make([]ContactModel, 0, len(contacts))
	for _, c := range contacts {
		body = append(body, newContactModel(c))
	}

	return &ContactsListOutput{Body: body}, nil
}

type ContactsGetOutput struct {
	Body ContactModel
}

func (h *Contacts) get(_ context.Context, input *struct {
	ID int64 `path:"id" example:"1700000000000" doc:"ID of the contact to get"`
}) (*ContactsGetOutput, error) {
	contact, err := h.Service.Get(input.ID)
	switch {
	case err == nil:
		return &ContactsGetOutput{Body: newContactModel(contact)}, nil

	case errors.Is(err, model.ErrNotFound):
		return nil, huma.Error404NotFound("contact not found", err)

	default:
		return nil, err
	}
}

type ContactsAddOutput struct {
	Body ContactModel
}

func (h *Contacts) add(ctx context.Context, input *struct {
	Body struct {
		Name  string `json:"name"  minLength:"1" example:"Ann"`
		Email string `json:"email" minLength:"1" example:"ann@x.com"`
	}
}) (*ContactsAddOutput, error) {
	contact := h.Service.Add(ctx, input.Body.Name, input.Body.Email)

	return &ContactsAddOutput{Body: newContactModel(contact)}, nil
}

// put is a silent no-op for unknown ids.
func (h *Contacts) put(ctx context.Context, input *struct {
	ID   int64 `path:"id" example:"1700000000000" doc:"ID of the contact to edit"`
	Body struct {
		Name  string `json:"name"  example:"Ann"`
		Email string `json:"email" example:"ann@x.com"`
	}
}) (*struct{}, error) {
	h.Service.Edit(ctx, input.ID, input.Body.Name, input.Body.Email)
	return nil, nil
}

// del is a silent no-op for unknown ids.
func (h *Contacts) del(ctx context.Context, input *struct {
	ID int64 `path:"id" example:"1700000000000" doc:"ID of the contact to delete"`
}) (*struct{}, error) {
	h.Service.Delete(ctx, input.ID)
	return nil, nil
}
