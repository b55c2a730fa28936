//go:build property

package watcher

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestDebouncerProperties validates the batching done before handlers run
func TestDebouncerProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(9876)
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	newDebouncer := func() *Debouncer {
		return &Debouncer{
			delay:   time.Hour,
			events:  make(chan ChangeEvent, 1),
			output:  make(chan []ChangeEvent, 1),
			pending: make([]ChangeEvent, 0),
		}
	}

	// Property: one flushed event per distinct path, and the last one wins
	properties.Property("flush deduplicates by path", prop.ForAll(
		func(paths []string) bool {
			if len(paths) == 0 {
				return true
			}

			d := newDebouncer()
			last := make(map[string]EventType)
			for i, p := range paths {
				typ := EventType(i % 4)
				d.pending = append(d.pending, ChangeEvent{Type: typ, Path: p})
				last[p] = typ
			}
			d.flush()

			batch := <-d.output
			if len(batch) != len(last) {
				return false
			}
			for _, ev := range batch {
				if last[ev.Path] != ev.Type {
					return false
				}
			}
			return len(d.pending) == 0
		},
		gen.SliceOf(gen.IntRange(0, 4).Map(func(i int) string {
			return []string{"config.txt", "a.txt", "b.txt", "c.txt", "d.txt"}[i]
		})),
	))

	// Property: flushing with nothing pending emits nothing
	properties.Property("empty flush is silent", prop.ForAll(
		func(_ int) bool {
			d := newDebouncer()
			d.flush()
			select {
			case <-d.output:
				return false
			default:
				return true
			}
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}
