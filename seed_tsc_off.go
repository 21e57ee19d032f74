//go:build !seedtsc

package entropy

const seedTSCEnabled = false
