//go:build !linux && !windows

package entropy

import (
	"crypto/rand"
	"io"
	"time"
)

// Platforms without a dedicated seeding path use the Go runtime's own OS
// RNG wiring as the single source.
func osSources() []Source {
	return []Source{osRandSource{}}
}

type osRandSource struct{}

func (osRandSource) Name() string { return "os" }

func (s osRandSource) Attempt(p Pool) int {
	return fillFromSource(p, s.Name(), func(buf []byte) error {
		_, err := io.ReadFull(rand.Reader, buf)
		return err
	})
}

// No persistent device handles on this platform.
func closeDeviceHandles() {}

// No portable thread id on this platform; the pid and clock fields carry
// the uniqueness of the nonce records.
func currentThreadID() uint32 {
	return 0
}

var processStart = time.Now()

func performanceCounter() int64 {
	return time.Since(processStart).Nanoseconds()
}
