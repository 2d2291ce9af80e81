package model

import "context"

// Contact is a single rolodex entry.
type Contact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ContactsPersister loads and saves the whole contact sequence.
type ContactsPersister interface {
	Load(ctx context.Context) ([]Contact, error)
	Save(ctx context.Context, contacts []Contact) error
}
