//go:build seedtsc

package entropy

const seedTSCEnabled = true
