// Package settings provides the process-wide key/value settings store.
//
// A single Store is shared by the whole process and is obtained with
// Instance, which creates it lazily and exactly once even when many
// goroutines ask for it at the same time. Reads and writes go through a
// sync.Map and never take the creation lock. The store can be persisted to
// and loaded from a flat text file holding one key=value pair per line.
package settings

import (
	"sort"
	"sync"
	"time"

	"github.com/conneroisu/patterns/internal/errors"
)

// Store is a concurrent string-to-string mapping.
type Store struct {
	// values maps setting key to value.
	values sync.Map // map[string]string

	createdAt time.Time

	// mutex guards watchers only.
	mutex    sync.RWMutex
	watchers []chan Event
}

// Event represents a change in the store
type Event struct {
	Type      EventType
	Key       string
	Value     string
	Timestamp time.Time
}

// EventType represents the type of store event
type EventType int

const (
	EventTypeSet EventType = iota
	EventTypeDeleted
	EventTypeLoaded
)

// String returns the string representation of the EventType
func (e EventType) String() string {
	switch e {
	case EventTypeSet:
		return "set"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// New creates an empty store that is independent of the shared instance.
func New() *Store {
	return &Store{
		createdAt: time.Now(),
		watchers:  make([]chan Event, 0),
	}
}

// CreatedAt reports when the store was constructed.
func (s *Store) CreatedAt() time.Time {
	return s.createdAt
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) {
	s.values.Store(key, value)
	s.notify(Event{Type: EventTypeSet, Key: key, Value: value, Timestamp: time.Now()})
}

// Get returns the value stored under key. A key that was never set yields a
// not-found error rather than an empty string.
func (s *Store) Get(key string) (string, error) {
	v, ok := s.values.Load(key)
	if !ok {
		return "", errors.ErrSettingNotFound(key).WithComponent("settings")
	}
	return v.(string), nil
}

// Delete removes key. It reports whether the key was present.
func (s *Store) Delete(key string) bool {
	_, existed := s.values.LoadAndDelete(key)
	if existed {
		s.notify(Event{Type: EventTypeDeleted, Key: key, Timestamp: time.Now()})
	}
	return existed
}

// Clear removes every pair, emitting a delete event for each.
func (s *Store) Clear() {
	for _, key := range s.Keys() {
		s.Delete(key)
	}
}

// Replace makes pairs the full contents of the store: keys missing from
// pairs are deleted and every pair is set.
func (s *Store) Replace(pairs map[string]string) {
	for _, key := range s.Keys() {
		if _, keep := pairs[key]; !keep {
			s.Delete(key)
		}
	}
	for key, value := range pairs {
		s.Set(key, value)
	}
}

// Keys returns every key in ascending order.
func (s *Store) Keys() []string {
	keys := make([]string, 0)
	s.values.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of every pair. Later writes do not affect it.
func (s *Store) Snapshot() map[string]string {
	out := make(map[string]string)
	s.values.Range(func(k, v any) bool {
		out[k.(string)] = v.(string)
		return true
	})
	return out
}

// Len returns the number of stored pairs.
func (s *Store) Len() int {
	n := 0
	s.values.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// LoadSimulatedDatabase seeds the store with the demo database credentials,
// standing in for an external configuration source.
func (s *Store) LoadSimulatedDatabase() {
	s.Set("db_user", "admin")
	s.Set("db_password", "1234")
}

// Watch returns a channel that receives store events
func (s *Store) Watch() <-chan Event {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ch := make(chan Event, 100)
	s.watchers = append(s.watchers, ch)
	return ch
}

// UnWatch removes a watcher channel and closes it
func (s *Store) UnWatch(ch <-chan Event) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, watcher := range s.watchers {
		if watcher == ch {
			close(watcher)
			s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
			break
		}
	}
}

func (s *Store) notify(event Event) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, watcher := range s.watchers {
		select {
		case watcher <- event:
		default:
			// Skip if channel is full
		}
	}
}
