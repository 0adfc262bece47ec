// Package txstore provides an in-memory key-value store with nested,
// uncommitted transactions.
//
// A store is made of a committed base table and a stack of overlays. Each
// call to Begin pushes an empty overlay and every write lands in the newest
// overlay. Reads look through the overlays from newest to oldest before
// falling back to the base table.
//
//  - Overlay 2 (innermost)   a: 3
//  - Overlay 1               b: 2
//  - Overlay 0 (outermost)   a: 1
//  - Base table              c: 7
//
// In the example above Get("a") returns 3, Get("b") returns 2, Get("c")
// returns 7 and any other key is not found.
//
// Commit resolves every nesting level at once: the overlays are folded into
// the base table from oldest to newest, so newer writes win, and the stack is
// left empty. Rollback discards only the innermost overlay.
//
// Stores hold no locks. A store must only be used by one goroutine at a time.
// Nothing in this package logs or records metrics; see package instrument for
// a decorator that does.
package txstore
