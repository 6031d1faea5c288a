package domain

import (
	"errors"
	"strings"
)

// ErrRaterEmailRequired is returned when the authenticated principal carries no email.
var ErrRaterEmailRequired = errors.New("an email address is required to submit a rating")

// Rater identifies the authenticated author of a rating.
type Rater struct {
	ID    string
	Email string
	Name  string
}

// NewRater normalises the principal. The email is lower-cased so lookups by user are stable.
func NewRater(id, email, name string) (Rater, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Rater{}, ErrRaterEmailRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = email
	}
	return Rater{ID: strings.TrimSpace(id), Email: email, Name: name}, nil
}

// Explanation is the AI-generated narrative for a store.
// Generated is false when the fallback text was returned.
type Explanation struct {
	StoreID   string
	Text      string
	Generated bool
}
