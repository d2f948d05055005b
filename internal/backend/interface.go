// Package backend selects and constructs the persistence layer from
// configuration.
package backend

import (
	"budget/internal/store"
)

// Store is the unified persistence surface the application runs on.
type Store interface {
	store.TransactionStore
	store.CategoryStore
	store.UserStore
	Close() error
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result contains the constructed store and its cleanup function.
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}

// Type represents the kind of backend to construct.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
