package service

import (
	"strings"

	"github.com/dtroode/rolodex/internal/model"
)

// Filter returns the contacts whose name or email contains term, ignoring
// case. Order is preserved; an empty term matches everything.
func Filter(contacts []model.Contact, term string) []model.Contact {
	out := make([]model.Contact, 0, len(contacts))
	if term == "" {
		return append(out, contacts...)
	}

	needle := strings.ToLower(term)
	for _, c := range contacts {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) {
			out = append(out, c)
		}
	}
	return out
}
