package entropy

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

func osSources() []Source {
	return []Source{
		bcryptSource{},
		&cspSource{name: "cryptoapi", provType: provRSAFull},
		&cspSource{name: "intelcsp", provType: provIntelSec, provider: intelDefaultProvider},
	}
}

const (
	bcryptUseSystemPreferredRNG = 0x00000002
	statusSuccess               = 0

	provRSAFull  = 1
	provIntelSec = 22
	cryptSilent  = 0x00000040

	intelDefaultProvider = "Intel Hardware Cryptographic Service Provider"
)

// bcryptCell resolves BCryptGenRandom once per process. Systems before
// Vista do not ship CNG, in which case the chain permanently falls back
// to the CryptoAPI sources.
var bcryptCell = &providerCell{resolve: resolveBCrypt}

func resolveBCrypt() *provider {
	// Restrict the search to the system directory, so a same-named
	// library placed elsewhere can never be loaded instead.
	lib, err := windows.LoadLibraryEx("bcrypt.dll", 0, windows.LOAD_LIBRARY_SEARCH_SYSTEM32)
	if err != nil {
		return nil
	}
	proc, err := windows.GetProcAddress(lib, "BCryptGenRandom")
	if err != nil {
		_ = windows.FreeLibrary(lib)
		return nil
	}

	return &provider{
		fill: func(buf []byte) error {
			if len(buf) == 0 {
				return nil
			}
			status, _, _ := syscall.SyscallN(
				proc,
				0, // no algorithm handle, use the system preferred RNG
				uintptr(unsafe.Pointer(&buf[0])),
				uintptr(len(buf)),
				bcryptUseSystemPreferredRNG,
			)
			if status != statusSuccess {
				return fmt.Errorf("BCryptGenRandom: status %#x", status)
			}
			return nil
		},
		release: func() {
			_ = windows.FreeLibrary(lib)
		},
	}
}

type bcryptSource struct{}

func (bcryptSource) Name() string { return "bcrypt" }

func (s bcryptSource) Attempt(p Pool) int {
	prov := bcryptCell.get()
	if !prov.present() {
		return 0
	}
	return fillFromSource(p, s.Name(), prov.fill)
}

// cspSource polls a legacy cryptographic service provider, acquiring a
// fresh verify-only context for every attempt.
type cspSource struct {
	name     string
	provider string
	provType uint32
}

func (s *cspSource) Name() string { return s.name }

func (s *cspSource) Attempt(p Pool) int {
	return fillFromSource(p, s.name, s.fill)
}

func (s *cspSource) fill(buf []byte) error {
	var providerName *uint16
	if s.provider != "" {
		var err error
		providerName, err = syscall.UTF16PtrFromString(s.provider)
		if err != nil {
			return err
		}
	}

	var prov syscall.Handle
	err := syscall.CryptAcquireContext(
		&prov, nil, providerName, s.provType,
		syscall.CRYPT_VERIFYCONTEXT|cryptSilent,
	)
	if err != nil {
		return fmt.Errorf("acquire context: %w", err)
	}
	defer func() {
		_ = syscall.CryptReleaseContext(prov, 0)
	}()

	if len(buf) == 0 {
		return nil
	}
	if err := syscall.CryptGenRandom(prov, uint32(len(buf)), &buf[0]); err != nil {
		return fmt.Errorf("generate random: %w", err)
	}
	return nil
}

// No persistent device handles on this platform.
func closeDeviceHandles() {}

func currentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}

func performanceCounter() int64 {
	return windows.QueryPerformanceCounter()
}
