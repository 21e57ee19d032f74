package entropy

import (
	"encoding/binary"
	"errors"

	"github.com/klauspost/cpuid/v2"
)

// cpuSources returns the hardware sources enabled at build time. They sit
// in front of the OS sources and receive full entropy credit on success,
// so both are opt-in via the seedtsc and seedcpu build tags.
func cpuSources() []Source {
	var srcs []Source
	if seedTSCEnabled {
		srcs = append(srcs, tscSource{})
	}
	if seedCPURNGEnabled && cpuid.CPU.Supports(cpuid.RDRAND) {
		srcs = append(srcs, rdrandSource{})
	}
	return srcs
}

// Implemented in cpu_amd64.s.
func rdtsc() uint64
func rdrand() (val uint64, ok bool)

type tscSource struct{}

func (tscSource) Name() string { return "tsc" }

func (s tscSource) Attempt(p Pool) int {
	return fillFromSource(p, s.Name(), tscFill)
}

// tscFill samples the low byte of the timestamp counter once per
// requested byte. The jitter between consecutive reads is what carries
// the entropy.
func tscFill(buf []byte) error {
	for i := range buf {
		buf[i] = byte(rdtsc())
	}
	return nil
}

type rdrandSource struct{}

func (rdrandSource) Name() string { return "rdrand" }

func (s rdrandSource) Attempt(p Pool) int {
	return fillFromSource(p, s.Name(), rdrandFill)
}

var errRDRAND = errors.New("rdrand returned no valid data")

// rdrandRetries is the customary retry allowance for a transiently
// exhausted on-chip RNG.
const rdrandRetries = 10

func rdrandFill(buf []byte) error {
	for len(buf) > 0 {
		val, ok := rdrandWithRetry()
		if !ok {
			return errRDRAND
		}
		var chunk [8]byte
		binary.LittleEndian.PutUint64(chunk[:], val)
		buf = buf[copy(buf, chunk[:]):]
	}
	return nil
}

func rdrandWithRetry() (uint64, bool) {
	for i := 0; i < rdrandRetries; i++ {
		if val, ok := rdrand(); ok {
			return val, true
		}
	}
	return 0, false
}
