// Package model contains a deliberately simple implementation of the
// transaction store semantics that tests can use as an oracle.
package model

import (
	"github.com/jrife/txstore/storage/txstore"
)

// Response is the observable outcome of one store operation
type Response struct {
	Value int
	OK    bool
	Count int
	Err   string
}

// StoreModel models a txstore.Store[string, int]
type StoreModel struct {
	committed map[string]int
	pending   []map[string]int
	response  Response
}

// NewStoreModel returns a model of an empty store
func NewStoreModel() *StoreModel {
	return &StoreModel{
		committed: map[string]int{},
		pending:   []map[string]int{},
	}
}

// Clone returns a deep copy of the model
func (storeModel *StoreModel) Clone() *StoreModel {
	clone := &StoreModel{
		committed: copyMap(storeModel.committed),
		pending:   make([]map[string]int, len(storeModel.pending)),
		response:  storeModel.response,
	}

	for i, overlay := range storeModel.pending {
		clone.pending[i] = copyMap(overlay)
	}

	return clone
}

// LastResponse returns the response of the last applied operation
func (storeModel *StoreModel) LastResponse() Response {
	return storeModel.response
}

func (storeModel *StoreModel) ApplyBegin() {
	storeModel.pending = append(storeModel.pending, map[string]int{})
	storeModel.response = Response{}
}

func (storeModel *StoreModel) ApplySet(key string, value int) {
	if len(storeModel.pending) == 0 {
		storeModel.response = Response{Err: txstore.ErrNoActiveTransaction.Error()}
		return
	}

	storeModel.pending[len(storeModel.pending)-1][key] = value
	storeModel.response = Response{}
}

func (storeModel *StoreModel) ApplyCommit() {
	if len(storeModel.pending) == 0 {
		storeModel.response = Response{Err: txstore.ErrNoActiveTransaction.Error()}
		return
	}

	for _, overlay := range storeModel.pending {
		for key, value := range overlay {
			storeModel.committed[key] = value
		}
	}

	storeModel.pending = []map[string]int{}
	storeModel.response = Response{}
}

func (storeModel *StoreModel) ApplyRollback() {
	if len(storeModel.pending) == 0 {
		storeModel.response = Response{Err: txstore.ErrNoActiveTransaction.Error()}
		return
	}

	storeModel.pending = storeModel.pending[:len(storeModel.pending)-1]
	storeModel.response = Response{}
}

func (storeModel *StoreModel) ApplyGet(key string) {
	value, ok := storeModel.Get(key)
	storeModel.response = Response{Value: value, OK: ok}
}

func (storeModel *StoreModel) ApplyCount() {
	storeModel.response = Response{Count: storeModel.Count()}
}

// Get resolves key the same way txstore.Store.Get does
func (storeModel *StoreModel) Get(key string) (int, bool) {
	for i := len(storeModel.pending) - 1; i >= 0; i-- {
		if value, ok := storeModel.pending[i][key]; ok {
			return value, true
		}
	}

	value, ok := storeModel.committed[key]

	return value, ok
}

func (storeModel *StoreModel) Count() int {
	return len(storeModel.committed)
}

func (storeModel *StoreModel) Depth() int {
	return len(storeModel.pending)
}

// Committed returns a copy of the committed table
func (storeModel *StoreModel) Committed() map[string]int {
	return copyMap(storeModel.committed)
}

// Pending returns a copy of the open transactions, outermost first
func (storeModel *StoreModel) Pending() []map[string]int {
	return storeModel.Clone().pending
}

func copyMap(m map[string]int) map[string]int {
	c := make(map[string]int, len(m))

	for key, value := range m {
		c[key] = value
	}

	return c
}
