package txstore

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

var _ Store[string, int] = (*MemoryStore[string, int])(nil)

// MemoryStore is the in-memory implementation of Store.
// The zero value is not usable, use New.
type MemoryStore[K comparable, V any] struct {
	// base is the committed table. Only Commit writes to it.
	base map[K]V
	// overlays holds one map[K]V per open transaction.
	// The top of the stack is the innermost transaction.
	overlays *arraystack.Stack
}

// New creates an empty store with no open transactions
func New[K comparable, V any]() *MemoryStore[K, V] {
	return &MemoryStore[K, V]{
		base:     map[K]V{},
		overlays: arraystack.New(),
	}
}

// Begin implements Store.Begin
func (store *MemoryStore[K, V]) Begin() {
	store.overlays.Push(map[K]V{})
}

// Count implements Store.Count
func (store *MemoryStore[K, V]) Count() int {
	return len(store.base)
}

// Get implements Store.Get
func (store *MemoryStore[K, V]) Get(key K) (V, bool) {
	// Stack iterators run from the top of the stack down
	iter := store.overlays.Iterator()

	for iter.Next() {
		if value, ok := iter.Value().(map[K]V)[key]; ok {
			return value, true
		}
	}

	value, ok := store.base[key]

	return value, ok
}

// Set implements Store.Set
func (store *MemoryStore[K, V]) Set(key K, value V) error {
	overlay, ok := store.innermost()

	if !ok {
		return ErrNoActiveTransaction
	}

	overlay[key] = value

	return nil
}

// Commit implements Store.Commit
func (store *MemoryStore[K, V]) Commit() error {
	if store.overlays.Empty() {
		return ErrNoActiveTransaction
	}

	// Values are returned top first. Walk them backwards so
	// newer overlays overwrite older ones.
	overlays := store.overlays.Values()

	for i := len(overlays) - 1; i >= 0; i-- {
		for key, value := range overlays[i].(map[K]V) {
			store.base[key] = value
		}
	}

	store.overlays.Clear()

	return nil
}

// Rollback implements Store.Rollback
func (store *MemoryStore[K, V]) Rollback() error {
	if _, ok := store.overlays.Pop(); !ok {
		return ErrNoActiveTransaction
	}

	return nil
}

// Depth implements Store.Depth
func (store *MemoryStore[K, V]) Depth() int {
	return store.overlays.Size()
}

// Committed returns a copy of the base table
func (store *MemoryStore[K, V]) Committed() map[K]V {
	committed := make(map[K]V, len(store.base))

	for key, value := range store.base {
		committed[key] = value
	}

	return committed
}

// Pending returns a copy of every open transaction's writes,
// outermost first. It returns an empty slice if there are no
// open transactions.
func (store *MemoryStore[K, V]) Pending() []map[K]V {
	overlays := store.overlays.Values()
	pending := make([]map[K]V, len(overlays))

	for i, overlay := range overlays {
		m := overlay.(map[K]V)
		c := make(map[K]V, len(m))

		for key, value := range m {
			c[key] = value
		}

		pending[len(overlays)-1-i] = c
	}

	return pending
}

func (store *MemoryStore[K, V]) innermost() (map[K]V, bool) {
	top, ok := store.overlays.Peek()

	if !ok {
		return nil, false
	}

	return top.(map[K]V), true
}
