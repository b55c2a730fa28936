package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeCreated, "created"},
		{EventTypeModified, "modified"},
		{EventTypeDeleted, "deleted"},
		{EventTypeRenamed, "renamed"},
		{EventType(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestNewFileWatcher(t *testing.T) {
	watcher, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	assert.NotNil(t, watcher.watcher)
	assert.NotNil(t, watcher.debouncer)
	assert.Empty(t, watcher.filters)
	assert.Empty(t, watcher.handlers)
}

func TestAddPathRejectsEmpty(t *testing.T) {
	watcher, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	assert.Error(t, watcher.AddPath(""))
}

func TestBaseNameFilter(t *testing.T) {
	filter := BaseNameFilter("config.txt")

	assert.True(t, filter("/tmp/x/config.txt"))
	assert.True(t, filter("config.txt"))
	assert.False(t, filter("/tmp/x/config.txt.swp"))
	assert.False(t, filter("/tmp/x/other.txt"))
}

func TestDebouncerDeduplicates(t *testing.T) {
	d := &Debouncer{
		delay:   10 * time.Millisecond,
		events:  make(chan ChangeEvent, 10),
		output:  make(chan []ChangeEvent, 10),
		pending: make([]ChangeEvent, 0),
	}

	d.addEvent(ChangeEvent{Type: EventTypeCreated, Path: "a"})
	d.addEvent(ChangeEvent{Type: EventTypeModified, Path: "a"})
	d.addEvent(ChangeEvent{Type: EventTypeModified, Path: "b"})

	select {
	case batch := <-d.output:
		assert.Len(t, batch, 2)
		for _, ev := range batch {
			if ev.Path == "a" {
				assert.Equal(t, EventTypeModified, ev.Type)
			}
		}
	case <-time.After(time.Second):
		t.Fatal("debouncer did not flush")
	}
}

func TestFileWatcherDeliversWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "config.txt")
	require.NoError(t, os.WriteFile(target, []byte("a=1\n"), 0o600))

	watcher, err := NewFileWatcher(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	var mu sync.Mutex
	var got []ChangeEvent
	done := make(chan struct{}, 1)

	watcher.AddFilter(BaseNameFilter(target))
	watcher.AddHandler(func(events []ChangeEvent) error {
		mu.Lock()
		got = append(got, events...)
		mu.Unlock()
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})
	require.NoError(t, watcher.AddPath(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(target, []byte("a=2\n"), 0o600))

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("no change event delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, got)
	for _, ev := range got {
		assert.Equal(t, "config.txt", filepath.Base(ev.Path))
	}
}
