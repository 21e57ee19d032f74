//go:build !amd64

package entropy

// No hardware source support on this architecture.
func cpuSources() []Source {
	return nil
}
