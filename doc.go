// Package entropy gathers seed entropy for a CSPRNG from the operating
// system and the hardware.
//
// Sources are tried in a fixed priority order and the chain stops at the
// first source that credits entropy, so the estimate stays conservative:
// no source is ever double counted. Besides real entropy, the package can
// mix in non-entropic uniqueness data (process id, thread id, high
// resolution clocks) to decorrelate concurrently seeded generators.
package entropy
