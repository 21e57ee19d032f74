//go:build !seedcpu

package entropy

const seedCPURNGEnabled = false
