package gen

import (
	"github.com/jrife/txstore/storage/txstore"
)

// Store is the system under test. It must expose
// its committed table and open transactions so its
// full state can be compared against the model.
type Store interface {
	txstore.Store[string, int]
	Committed() map[string]int
	Pending() []map[string]int
}
