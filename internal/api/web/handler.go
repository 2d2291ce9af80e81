package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/dtroode/rolodex/internal/logger"
	"github.com/dtroode/rolodex/internal/model"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

// ContactService is the part of the contact store the page drives.
type ContactService interface {
	Add(ctx context.Context, name, email string) model.Contact
	Edit(ctx context.Context, id int64, name, email string) bool
	Delete(ctx context.Context, id int64) bool
	Get(id int64) (model.Contact, error)
	Search(term string) []model.Contact
}

// Handler serves the single page and the list fragments its script swaps in.
type Handler struct {
	title    string
	contacts ContactService
	logger   *logger.Logger
}

func NewHandler(title string, contacts ContactService, logger *logger.Logger) *Handler {
	return &Handler{
		title:    title,
		contacts: contacts,
		logger:   logger,
	}
}

// Register mounts the page routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.page)
	mux.HandleFunc("GET /list", h.list)
	mux.HandleFunc("POST /contacts", h.add)
	mux.HandleFunc("POST /contacts/{id}/edit", h.edit)
	mux.HandleFunc("POST /contacts/{id}/delete", h.delete)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	h.render(w, "page", Page{
		Title:  h.title,
		Search: term,
		List:   NewContactList(h.contacts.Search(term)),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r.URL.Query().Get("q"))
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := AddContactForm{
		Name:  r.PostForm.Get("name"),
		Email: r.PostForm.Get("email"),
	}
	added := form.Submit(func(name, email string) {
		h.contacts.Add(r.Context(), name, email)
	})
	if !added {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	h.renderList(w, r.Form.Get("q"))
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if c, err := h.contacts.Get(id); err == nil {
		row := ContactRow{ID: c.ID, Name: c.Name, Email: c.Email}
		row.Edit(func(id int64, name, email string) {
			h.contacts.Edit(r.Context(), id, name, email)
		})
	}

	h.renderList(w, r.URL.Query().Get("q"))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ContactRow{ID: id}.Delete(func(id int64) {
		h.contacts.Delete(r.Context(), id)
	})

	h.renderList(w, r.URL.Query().Get("q"))
}

func (h *Handler) renderList(w http.ResponseWriter, term string) {
	h.render(w, "list", NewContactList(h.contacts.Search(term)))
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid contact id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
