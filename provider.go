package entropy

import "sync/atomic"

// provider is the result of resolving an optional platform RNG API.
// A provider with a nil fill function records permanent absence.
type provider struct {
	fill    func([]byte) error
	release func()
}

var absentProvider = &provider{}

func (p *provider) present() bool {
	return p.fill != nil
}

// providerCell caches the one-time resolution of an optional platform RNG
// API. Resolution happens at most once per process: the result of the
// first resolve to finish is published with a single compare-and-swap and
// every later call returns the cached value. Racing resolvers that lose
// the publish release their own handle and adopt the winner's result, so
// no duplicate handles persist. The cell never transitions back to
// unresolved.
type providerCell struct {
	resolved atomic.Pointer[provider]
	resolve  func() *provider
}

// get returns the resolved provider, resolving it on first use.
// It is safe for concurrent use and never blocks on another thread.
func (c *providerCell) get() *provider {
	if p := c.resolved.Load(); p != nil {
		return p
	}

	p := c.resolve()
	if p == nil {
		p = absentProvider
	}
	if !c.resolved.CompareAndSwap(nil, p) {
		// Another thread published first, discard our own result.
		if p.release != nil {
			p.release()
		}
		p = c.resolved.Load()
	}
	return p
}
