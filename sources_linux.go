package entropy

import (
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

func osSources() []Source {
	return []Source{
		getrandomSource{},
		urandomDevice,
		hwrngDevice,
	}
}

// getrandomCell resolves the getrandom syscall once per process. Kernels
// before 3.17 lack it, in which case the chain permanently falls back to
// the device sources without probing again.
var getrandomCell = &providerCell{resolve: resolveGetrandom}

func resolveGetrandom() *provider {
	var probe [1]byte
	for {
		_, err := unix.Getrandom(probe[:], unix.GRND_NONBLOCK)
		switch err {
		case nil, unix.EAGAIN:
			// EAGAIN means the entropy pool is not initialized yet,
			// but the syscall itself is there.
			return &provider{fill: getrandomFill}
		case unix.EINTR:
			continue
		default:
			return nil
		}
	}
}

func getrandomFill(buf []byte) error {
	for len(buf) > 0 {
		n, err := unix.Getrandom(buf, 0)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		buf = buf[n:]
	}
	return nil
}

type getrandomSource struct{}

func (getrandomSource) Name() string { return "getrandom" }

func (s getrandomSource) Attempt(p Pool) int {
	prov := getrandomCell.get()
	if !prov.present() {
		return 0
	}
	return fillFromSource(p, s.Name(), prov.fill)
}

var (
	// urandomDevice is the legacy OS source for kernels without getrandom.
	urandomDevice = &deviceSource{name: "urandom", path: "/dev/urandom"}
	// hwrngDevice taps a dedicated hardware RNG where one is exposed.
	hwrngDevice = &deviceSource{name: "hwrng", path: "/dev/hwrng"}
)

// deviceSource reads entropy from a random character device. The open
// handle is cached between calls when KeepRandomDevicesOpen is set.
type deviceSource struct {
	name string
	path string

	lock sync.Mutex
	file *os.File
}

func (s *deviceSource) Name() string { return s.name }

func (s *deviceSource) Attempt(p Pool) int {
	return fillFromSource(p, s.name, s.fill)
}

func (s *deviceSource) fill(buf []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	file := s.file
	if file == nil {
		var err error
		file, err = os.Open(s.path)
		if err != nil {
			return err
		}
	}

	if keepDeviceHandles.IsSet() {
		s.file = file
	} else {
		s.file = nil
		defer func() { _ = file.Close() }()
	}

	_, err := io.ReadFull(file, buf)
	return err
}

func (s *deviceSource) close() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
}

func closeDeviceHandles() {
	urandomDevice.close()
	hwrngDevice.close()
}

func currentThreadID() uint32 {
	return uint32(unix.Gettid())
}

// performanceCounter reads the raw monotonic clock, the closest analogue
// to a hardware performance counter the kernel exposes.
func performanceCounter() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC_RAW, &ts); err != nil {
		return 0
	}
	return ts.Nano()
}
