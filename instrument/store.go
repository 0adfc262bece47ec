// Package instrument profiles calls made to a transaction store without
// the store itself depending on any logging or metrics package.
package instrument

import (
	"github.com/jrife/txstore/storage/txstore"
	"github.com/jrife/txstore/utils/uuid"
	"go.uber.org/zap"
)

var _ txstore.Store[string, int] = (*Store[string, int])(nil)

// Store decorates a txstore.Store. Set and Commit are
// profiled, every other call goes straight to the wrapped
// store. Arguments, return values and errors are never altered.
type Store[K comparable, V any] struct {
	store    txstore.Store[K, V]
	profiler *Profiler
	id       string
	commit   func() error
}

// Instrument wraps store so that its Set and Commit calls are profiled
func Instrument[K comparable, V any](store txstore.Store[K, V], profiler *Profiler) *Store[K, V] {
	id := uuid.New()
	profiler = profiler.With(zap.String("store_id", id))

	return &Store[K, V]{
		store:    store,
		profiler: profiler,
		id:       id,
		commit:   profiler.Wrap("commit", store.Commit),
	}
}

// ID returns the identifier attached to this store's log entries
func (store *Store[K, V]) ID() string {
	return store.id
}

// Unwrap returns the decorated store
func (store *Store[K, V]) Unwrap() txstore.Store[K, V] {
	return store.store
}

// Begin implements txstore.Store.Begin
func (store *Store[K, V]) Begin() {
	store.store.Begin()
}

// Count implements txstore.Store.Count
func (store *Store[K, V]) Count() int {
	return store.store.Count()
}

// Get implements txstore.Store.Get
func (store *Store[K, V]) Get(key K) (V, bool) {
	return store.store.Get(key)
}

// Set implements txstore.Store.Set
func (store *Store[K, V]) Set(key K, value V) error {
	return store.profiler.Wrap("set", func() error {
		return store.store.Set(key, value)
	})()
}

// Commit implements txstore.Store.Commit
func (store *Store[K, V]) Commit() error {
	return store.commit()
}

// Rollback implements txstore.Store.Rollback
func (store *Store[K, V]) Rollback() error {
	return store.store.Rollback()
}

// Depth implements txstore.Store.Depth
func (store *Store[K, V]) Depth() int {
	return store.store.Depth()
}
