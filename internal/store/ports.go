// Package store defines the document-store ports the rest of the system
// is written against, plus the change events that drive live queries.
// Two backends implement them: the SQLite repository and the in-memory
// store used for tests and development.
package store

import (
	"context"
	"errors"
	"time"

	"budget/internal/core"
)

const (
	CollectionTransactions Collection = "transactions"
	CollectionCategories   Collection = "categories"
)

const (
	OpCreate Op = "create"
	OpDelete Op = "delete"
)

type (
	Collection string

	Op string

	// Change describes a single mutation of a user-scoped document set.
	// Consumers treat it as an invalidation signal only: the authoritative
	// state is always re-read from the store, never patched from the event.
	Change struct {
		Collection Collection `json:"collection"`
		Op         Op         `json:"op"`
		UserID     string     `json:"user_id"`
		DocID      string     `json:"doc_id"`
		At         time.Time  `json:"at"`
	}

	// User is an account record owned by the identity subsystem.
	User struct {
		ID           string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
	}
)

var (
	ErrNotFound   = errors.New("document not found")
	ErrEmailTaken = errors.New("email already registered")
)

// TransactionStore persists transaction documents. Every operation is
// scoped by userID; that scoping is the sole isolation boundary between
// accounts.
type TransactionStore interface {
	// CreateTransaction assigns ID and CreatedAt and persists the record.
	CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	// ListTransactions returns all of the user's transactions ordered by
	// date descending. Ties fall back to the store's natural order.
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	// DeleteTransaction removes a single document. Deleting an id that is
	// absent (or owned by someone else) returns ErrNotFound.
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// CategoryStore persists category documents. Categories are never
// updated or deleted by the application.
type CategoryStore interface {
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
}

// UserStore persists account records.
type UserStore interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// ChangeSink receives change events after successful writes. Publish
// failures never fail the originating write; callers log and move on.
type ChangeSink interface {
	Publish(ctx context.Context, ch Change) error
}

// NewChange stamps a change event with the current time.
func NewChange(collection Collection, op Op, userID, docID string) Change {
	return Change{
		Collection: collection,
		Op:         op,
		UserID:     userID,
		DocID:      docID,
		At:         time.Now().UTC(),
	}
}

// MultiSink fans a change out to several sinks, returning the first
// error after attempting all of them.
type MultiSink []ChangeSink

func (m MultiSink) Publish(ctx context.Context, ch Change) error {
	var first error
	for _, s := range m {
		if err := s.Publish(ctx, ch); err != nil && first == nil {
			first = err
		}
	}
	return first
}
