package settings

import (
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetInstance forgets the shared store so a test can race first access again.
func resetInstance() {
	creationMu.Lock()
	defer creationMu.Unlock()
	instance.Store(nil)
	constructions.Store(0)
}

func TestInstanceReturnsSamePointer(t *testing.T) {
	resetInstance()
	t.Cleanup(resetInstance)

	a := Instance()
	b := Instance()

	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Equal(t, int64(1), Constructions())
}

// TestInstanceConcurrentFirstAccess releases many goroutines at once against
// an empty slot and checks that exactly one store is ever built.
func TestInstanceConcurrentFirstAccess(t *testing.T) {
	t.Cleanup(resetInstance)

	workers := runtime.GOMAXPROCS(0) * 8
	for round := 0; round < 50; round++ {
		resetInstance()

		start := make(chan struct{})
		results := make([]*Store, workers)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func(id int) {
				defer wg.Done()
				<-start
				results[id] = Instance()
			}(w)
		}
		close(start)
		wg.Wait()

		require.Equal(t, int64(1), Constructions(), "round %d", round)
		for i, s := range results {
			require.Same(t, results[0], s, "round %d worker %d", round, i)
		}
	}
}

func TestInstanceStateVisibleAcrossCallers(t *testing.T) {
	resetInstance()
	t.Cleanup(resetInstance)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		Instance().Set("theme", "dark")
	}()
	go func() {
		defer wg.Done()
		Instance().Set("locale", "en")
	}()
	wg.Wait()

	theme, err := Instance().Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	locale, err := Instance().Get("locale")
	require.NoError(t, err)
	assert.Equal(t, "en", locale)
}

func TestNewIsIndependentOfInstance(t *testing.T) {
	resetInstance()
	t.Cleanup(resetInstance)

	fresh := New()
	fresh.Set("only", "here")

	assert.NotSame(t, Instance(), fresh)
	_, err := Instance().Get("only")
	assert.Error(t, err)
	assert.Equal(t, int64(1), Constructions(), "New must not count as a shared construction")
}
