package settings

import (
	"sync"
	"sync/atomic"
)

var (
	// instance is the shared store, nil until first access.
	instance atomic.Pointer[Store]
	// creationMu serializes construction only; readers never take it.
	creationMu sync.Mutex
	// constructions counts how many shared stores were ever built.
	constructions atomic.Int64
)

// Instance returns the process-wide store, creating it on first use.
//
// The pointer is checked without locking; only when it is still nil does the
// caller take creationMu, check again and construct. Two goroutines that both
// see nil on the fast path therefore still produce a single store.
func Instance() *Store {
	if s := instance.Load(); s != nil {
		return s
	}

	creationMu.Lock()
	defer creationMu.Unlock()

	if s := instance.Load(); s != nil {
		return s
	}

	s := New()
	constructions.Add(1)
	instance.Store(s)
	return s
}

// Constructions reports how many times Instance built a store. It stays at
// one for the life of the process.
func Constructions() int64 {
	return constructions.Load()
}
