// Package contact holds the assistant's contact directory and the spoken
// contact-name resolver.
//
// The directory is a [Store] (in-memory or PostgreSQL-backed) of [Contact]
// records; the resolver maps a spoken utterance like "call lucy" to the best
// matching directory entry using the fuzzy primitives from internal/match.
package contact

import (
	"context"
	"errors"
)

// Sentinel errors shared by all Store implementations.
var (
	// ErrNotFound is returned when a contact id does not exist.
	ErrNotFound = errors.New("contact: not found")

	// ErrDuplicateID is returned when adding a contact whose id already exists.
	ErrDuplicateID = errors.New("contact: duplicate id")
)

// Contact is a single directory entry.
type Contact struct {
	// ID uniquely identifies the contact. When empty on Add, the store
	// assigns one.
	ID string `yaml:"id"`

	// Name is the contact's display name (e.g., "UWIMANA Lucy").
	Name string `yaml:"name"`

	// Number is the telephone number dialled for this contact.
	Number string `yaml:"number"`

	// SpokenForms lists additional spoken aliases for the contact (e.g.,
	// "lucy", "mum"). The name matcher compares candidate strings whole,
	// so multi-word display names often need short spoken forms to be
	// reachable by voice.
	SpokenForms []string `yaml:"spoken_forms"`
}

// Store is the contact directory abstraction. Implementations must be safe
// for concurrent use.
type Store interface {
	// Add inserts a contact, assigning an ID when none is set, and returns
	// the stored record. Returns ErrDuplicateID when the id exists.
	Add(ctx context.Context, c Contact) (Contact, error)

	// Get returns the contact with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (Contact, error)

	// List returns all contacts ordered by name.
	List(ctx context.Context) ([]Contact, error)

	// Remove deletes the contact with the given id or returns ErrNotFound.
	Remove(ctx context.Context, id string) error

	// BulkImport adds contacts one at a time and returns the count added
	// before the first error.
	BulkImport(ctx context.Context, contacts []Contact) (int, error)
}
