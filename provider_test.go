package entropy

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderCellResolvesOnce(t *testing.T) {
	t.Parallel()

	var resolves, releases atomic.Int32
	cell := &providerCell{
		resolve: func() *provider {
			resolves.Add(1)
			p := &provider{
				fill: func([]byte) error { return nil },
			}
			p.release = func() {
				releases.Add(1)
			}
			return p
		},
	}

	const workers = 64
	results := make([]*provider, workers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(workers)
	for i := 0; i < workers; i++ {
		i := i
		go func() {
			defer done.Done()
			start.Wait()
			results[i] = cell.get()
		}()
	}
	start.Done()
	done.Wait()

	// All callers must observe the identical published provider.
	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i], "caller %d observed a different provider", i)
	}
	assert.True(t, results[0].present())

	// Every resolution that lost the publish race released its handle.
	assert.Equal(t, resolves.Load()-1, releases.Load(), "all but the winning resolution must be released")

	// Later calls reuse the cache without resolving again.
	resolved := resolves.Load()
	assert.Same(t, results[0], cell.get())
	assert.Equal(t, resolved, resolves.Load())
}

func TestProviderCellAbsent(t *testing.T) {
	t.Parallel()

	var resolves atomic.Int32
	cell := &providerCell{
		resolve: func() *provider {
			resolves.Add(1)
			return nil
		},
	}

	// Absence is cached just like presence: resolved once, never again.
	p := cell.get()
	assert.False(t, p.present())
	assert.Same(t, p, cell.get())
	assert.Same(t, p, cell.get())
	assert.Equal(t, int32(1), resolves.Load())
}
