package txstore

import (
	"errors"
)

var (
	// ErrNoActiveTransaction indicates that an operation requiring an open
	// transaction was called while the overlay stack was empty
	ErrNoActiveTransaction = errors.New("no active transaction")
)

// Store is a key-value store with nested transactions. Keys
// are opaque and only need to be comparable. Values are opaque.
// Implementations are not safe for concurrent use.
type Store[K comparable, V any] interface {
	// Begin starts a new transaction nested inside the current one,
	// if any. It never fails and there is no limit on nesting depth.
	Begin()
	// Count returns the number of keys in the base table. Writes that
	// have not been committed are never counted.
	Count() int
	// Get returns the value for key from the innermost transaction
	// that wrote it. If no open transaction wrote key it returns the
	// committed value. ok is false if key exists in neither. A value
	// stored explicitly is returned even if it is the zero value of V.
	Get(key K) (value V, ok bool)
	// Set writes key in the innermost transaction only. It must
	// return ErrNoActiveTransaction if there is no open transaction.
	Set(key K, value V) error
	// Commit applies every open transaction to the base table, oldest
	// first, and closes all of them. It must return ErrNoActiveTransaction
	// if there is no open transaction and leave the store unchanged.
	Commit() error
	// Rollback discards the innermost transaction. Older transactions and
	// the base table are untouched. It must return ErrNoActiveTransaction
	// if there is no open transaction.
	Rollback() error
	// Depth returns the number of open transactions
	Depth() int
}
