package entropy

import "github.com/tevino/abool"

// keepDeviceHandles controls whether platform random device handles are
// kept open between acquisition calls. On platforms without persistent
// device handles the flag is accepted but has no effect.
var keepDeviceHandles = abool.New()

// Init prepares the entropy collection. It always succeeds on this
// platform and is kept for interface compatibility with platforms that
// need setup work.
func Init() error {
	return nil
}

// Cleanup releases any platform resources held open for entropy
// collection. It is idempotent and safe to call even if Init was never
// called.
func Cleanup() {
	closeDeviceHandles()
}

// KeepRandomDevicesOpen controls whether random device handles are held
// open between acquisition calls. Disabling it closes handles that are
// currently cached. The call is accepted on every platform.
func KeepRandomDevicesOpen(keep bool) {
	keepDeviceHandles.SetTo(keep)
	if !keep {
		closeDeviceHandles()
	}
}

// Poll gathers entropy from the configured sources into the pool and
// reports whether any entropy was credited.
//
// Deprecated: use AcquireEntropy, which also returns the credited bits.
func Poll(p Pool) bool {
	return AcquireEntropy(p) > 0
}

// Seeded reports whether any acquisition call in this process has
// credited entropy.
//
// Deprecated: inspect the return value of AcquireEntropy instead.
func Seeded() bool {
	return seeded.IsSet()
}
