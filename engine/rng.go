package engine

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// indexSalt offsets the seed for index selection so it does not correlate
// with the percent roll made from the same seed.
const indexSalt = 999

// StableHash is a pure, non-cryptographic hash of (seed, key). The same
// inputs always produce the same value across runs and platforms.
func StableHash(seed uint64, key string) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(key)
	return d.Sum64()
}

// RollPercent returns a value in [0, 100).
func RollPercent(seed uint64, key string) uint64 {
	return StableHash(seed, key) % 100
}

// Index returns a value in [0, n). It returns 0 when n is not positive.
func Index(seed uint64, key string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(StableHash(seed+indexSalt, key) % uint64(n))
}

// chanceHits reports whether a percent roll succeeds for the given chance.
func chanceHits(seed uint64, key string, chance int) bool {
	if chance <= 0 {
		return false
	}
	return RollPercent(seed, key) < uint64(chance)
}
