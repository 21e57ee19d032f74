// Package pool provides the seed pool that entropy sources fill.
//
// A SeedPool accumulates seed material from multiple sources and keeps a
// running, deliberately conservative estimate of how many bits of real
// entropy it holds. Sources write through a reserve/commit protocol, so a
// failed source can release its reservation without crediting anything.
package pool

import (
	"errors"

	"github.com/safing/structures/container"
)

// capacityFactor is how much bigger the byte capacity is than the raw
// entropy request, leaving room for zero-credit filler data.
const capacityFactor = 4

// ErrPoolFull is returned when added data does not fit into the pool anymore.
var ErrPoolFull = errors.New("seed pool is full")

// SeedPool collects seed material and accounts the entropy it contains.
// A SeedPool is owned by a single acquisition call and is not safe for
// concurrent use.
type SeedPool struct {
	buffer  *container.Container
	pending []byte

	requested int // bits of entropy requested
	entropy   int // bits of entropy collected so far
	length    int // bytes collected so far
	maxLen    int // cap on collected bytes
}

// New returns a seed pool requesting the given amount of entropy bits.
func New(requiredBits int) *SeedPool {
	if requiredBits < 0 {
		requiredBits = 0
	}
	return &SeedPool{
		buffer:    container.New(),
		requested: requiredBits,
		maxLen:    (requiredBits/8 + 1) * capacityFactor,
	}
}

// BytesNeeded returns how many bytes a source must deliver to cover the
// remaining entropy deficit, given the source's entropy factor (how many
// bytes it takes to yield one byte worth of entropy). The result is clamped
// to the remaining byte capacity and is zero when the pool is satisfied.
func (p *SeedPool) BytesNeeded(entropyFactor int) int {
	if entropyFactor < 1 {
		entropyFactor = 1
	}
	deficit := p.requested - p.entropy
	if deficit <= 0 {
		return 0
	}
	bytes := (deficit*entropyFactor + 7) / 8
	if room := p.maxLen - p.length; bytes > room {
		bytes = room
	}
	if bytes < 0 {
		return 0
	}
	return bytes
}

// AddBegin reserves a write region of n bytes and returns it for a source
// to fill. It returns nil when n is not positive, when another reservation
// is still open, or when the pool has no room left. A successful AddBegin
// must be paired with exactly one AddEnd.
func (p *SeedPool) AddBegin(n int) []byte {
	switch {
	case n <= 0:
		return nil
	case p.pending != nil:
		return nil
	case p.length+n > p.maxLen:
		return nil
	}
	p.pending = make([]byte, n)
	return p.pending
}

// AddEnd commits the open reservation: the first written bytes of the
// reserved region are appended to the seed material and bits entropy is
// credited. Committing zero bytes releases the reservation but keeps the
// zeroed region as zero-credit filler, so a failed source still leaves a
// trace in the seed material without inflating the entropy estimate.
// AddEnd without an open reservation is a no-op.
func (p *SeedPool) AddEnd(written, bits int) {
	if p.pending == nil {
		return
	}
	if written > len(p.pending) {
		written = len(p.pending)
	}
	if written <= 0 {
		written = len(p.pending)
		bits = 0
	}
	p.buffer.Append(p.pending[:written])
	p.length += written
	if bits > 0 {
		p.entropy += bits
	}
	p.pending = nil
}

// Add appends data directly to the seed material, crediting the given
// amount of entropy bits. It is used for uniqueness filler such as nonce
// data, which is credited zero bits.
func (p *SeedPool) Add(data []byte, bits int) error {
	if p.length+len(data) > p.maxLen {
		return ErrPoolFull
	}
	if len(data) > 0 {
		p.buffer.Append(data)
		p.length += len(data)
	}
	if bits > 0 {
		p.entropy += bits
	}
	return nil
}

// EntropyAvailable returns the entropy bits collected so far.
func (p *SeedPool) EntropyAvailable() int {
	return p.entropy
}

// EntropyRequested returns the entropy bits this pool was created for.
func (p *SeedPool) EntropyRequested() int {
	return p.requested
}

// Length returns the amount of seed material bytes collected so far.
func (p *SeedPool) Length() int {
	return p.length
}

// SeedMaterial returns the collected seed material.
func (p *SeedPool) SeedMaterial() []byte {
	return p.buffer.CompileData()
}
