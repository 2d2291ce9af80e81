package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dtroode/rolodex/internal/logger"
	"github.com/dtroode/rolodex/internal/model"
)

// DefaultKey is the key the contact list lives under unless configured otherwise.
const DefaultKey = "contacts"

var _ model.ContactsPersister = (*Adapter)(nil)

// Adapter serializes the whole contact sequence as one JSON array under a
// single key of a key-value store.
type Adapter struct {
	kv     model.KeyValueStore
	key    string
	logger *logger.Logger
}

func NewAdapter(kv model.KeyValueStore, key string, logger *logger.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

// Key returns the persistence key.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the persisted sequence. A missing key or a value that is not a
// JSON array of contacts yields an empty sequence; only backend failures are errors.
func (a *Adapter) Load(ctx context.Context) ([]model.Contact, error) {
	raw, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, model.ErrNotFound) {
		return []model.Contact{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", a.key, err)
	}

	var contacts []model.Contact
	if err := json.Unmarshal(raw, &contacts); err != nil {
		a.logger.Warn("persisted contacts are malformed, starting empty",
			"key", a.key,
			"error", err)
		return []model.Contact{}, nil
	}
	if contacts == nil {
		// stored literal null
		contacts = []model.Contact{}
	}

	return contacts, nil
}

// Save overwrites the key with the full sequence.
func (a *Adapter) Save(ctx context.Context, contacts []model.Contact) error {
	if contacts == nil {
		contacts = []model.Contact{}
	}

	raw, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("failed to marshal contacts: %w", err)
	}

	if err := a.kv.Set(ctx, a.key, raw); err != nil {
		return fmt.Errorf("failed to write %q: %w", a.key, err)
	}

	return nil
}
