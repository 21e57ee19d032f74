package entropy

import (
	"log/slog"

	"github.com/tevino/abool"
)

// Pool is the seed pool an acquisition call fills.
// Implemented by pool.SeedPool.
type Pool interface {
	// BytesNeeded returns how many bytes a source must deliver to cover
	// the remaining entropy deficit at the given entropy factor.
	BytesNeeded(entropyFactor int) int
	// AddBegin reserves a write region of n bytes, returning nil if the
	// pool cannot accept a reservation.
	AddBegin(n int) []byte
	// AddEnd commits the open reservation with the written bytes and the
	// credited entropy bits. It must be called for every open reservation.
	AddEnd(written, bits int)
	// Add appends data directly, crediting the given entropy bits.
	Add(data []byte, bits int) error
	// EntropyAvailable returns the entropy bits collected so far.
	EntropyAvailable() int
}

// Source is a single entropy source in the fallback chain.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	// Attempt tries to fill the pool from this source and returns the
	// entropy bits it credited. A failed attempt credits zero bits and
	// must leave no open reservation on the pool.
	Attempt(p Pool) int
}

// sources is the configured fallback chain, strongest and cheapest first.
// It is assembled once at startup from the platform and build
// configuration; the chain itself carries no platform branching.
var sources = configuredSources()

func configuredSources() []Source {
	return append(cpuSources(), osSources()...)
}

var seeded = abool.New()

// SourceNames returns the names of the configured sources in the order
// they are tried.
func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name())
	}
	return names
}

// AcquireEntropy fills the pool from the configured sources, trying them
// strictly in priority order and stopping at the first source that credits
// entropy. It returns the pool's entropy bit count. A return value of zero
// means every source failed; whether that is fatal is up to the caller.
func AcquireEntropy(p Pool) int {
	for _, src := range sources {
		src.Attempt(p)
		if bits := p.EntropyAvailable(); bits > 0 {
			seeded.Set()
			return bits
		}
	}
	return p.EntropyAvailable()
}

// entropyFactor is applied uniformly to every source: one delivered byte
// is assumed to be worth at most one byte of entropy credit.
const entropyFactor = 1

// fillFromSource runs one attempt of the reserve/fill/commit protocol
// against the pool. Full credit (8 bits per byte) is given only when fill
// reports explicit success; on failure the reservation is still committed
// with zero bytes and zero bits, so it is never left open.
func fillFromSource(p Pool, name string, fill func([]byte) error) int {
	n := p.BytesNeeded(entropyFactor)
	buf := p.AddBegin(n)
	if buf == nil {
		return 0
	}

	written := 0
	if err := fill(buf); err == nil {
		written = len(buf)
	} else {
		slog.Debug("entropy source failed", "source", name, "err", err)
	}

	p.AddEnd(written, 8*written)
	return 8 * written
}
