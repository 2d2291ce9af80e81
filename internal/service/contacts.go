package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dtroode/rolodex/internal/logger"
	"github.com/dtroode/rolodex/internal/model"
)

// Contacts is the authoritative ordered contact list. Every mutation is
// written through the persister before it returns.
type Contacts struct {
	mu        sync.Mutex
	contacts  []model.Contact
	ids       *idSequence
	persister model.ContactsPersister
	logger    *logger.Logger
}

// ContactsOption configures Contacts.
type ContactsOption func(*contactsOptions)

type contactsOptions struct {
	now func() time.Time
}

// WithClock replaces the clock IDs are derived from.
func WithClock(now func() time.Time) ContactsOption {
	return func(o *contactsOptions) {
		o.now = now
	}
}

// NewContacts loads the persisted list and returns a store over it.
func NewContacts(
	ctx context.Context,
	persister model.ContactsPersister,
	logger *logger.Logger,
	opts ...ContactsOption,
) (*Contacts, error) {
	var o contactsOptions
	for _, opt := range opts {
		opt(&o)
	}

	loaded, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	var maxID int64
	for _, c := range loaded {
		maxID = max(maxID, c.ID)
	}

	logger.Info("contacts loaded", "count", len(loaded))

	return &Contacts{
		contacts:  slices.Clone(loaded),
		ids:       newIDSequence(o.now, maxID),
		persister: persister,
		logger:    logger,
	}, nil
}

// Add appends a new contact and returns it.
func (s *Contacts) Add(ctx context.Context, name, email string) model.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := model.Contact{
		ID:    s.ids.next(),
		Name:  name,
		Email: email,
	}
	s.contacts = append(s.contacts, c)
	s.persist(ctx)

	s.logger.Debug("contact added", "id", c.ID)
	return c
}

// Edit replaces name and email of the contact with the given id, keeping its
// position. It reports whether the contact existed; unknown ids are ignored.
func (s *Contacts) Edit(ctx context.Context, id int64, name, email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.contacts[i].Name = name
	s.contacts[i].Email = email
	s.persist(ctx)

	s.logger.Debug("contact edited", "id", id)
	return true
}

// Delete removes the contact with the given id. It reports whether the
// contact existed; unknown ids are ignored.
func (s *Contacts) Delete(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.contacts = slices.Delete(s.contacts, i, i+1)
	s.persist(ctx)

	s.logger.Debug("contact deleted", "id", id)
	return true
}

// Get returns the contact with the given id or model.ErrNotFound.
func (s *Contacts) Get(id int64) (model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Contact{}, model.ErrNotFound
	}
	return s.contacts[i], nil
}

// List returns a copy of the whole sequence.
func (s *Contacts) List() []model.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append(make([]model.Contact, 0, len(s.contacts)), s.contacts...)
}

// Search returns the contacts matching term, see Filter.
func (s *Contacts) Search(term string) []model.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Filter(s.contacts, term)
}

// Len returns the number of contacts.
func (s *Contacts) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.contacts)
}

func (s *Contacts) indexOf(id int64) int {
	return slices.IndexFunc(s.contacts, func(c model.Contact) bool { return c.ID == id })
}

// persist must be called with mu held.
func (s *Contacts) persist(ctx context.Context) {
	if err := s.persister.Save(ctx, slices.Clone(s.contacts)); err != nil {
		s.logger.Error("failed to persist contacts", "error", err, "count", len(s.contacts))
	}
}
