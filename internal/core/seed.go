package core

import (
	"math"

	"lukechampine.com/frand"
)

// NewSeed returns a fresh non-zero seed for a session's random source.
func NewSeed() int64 {
	return int64(frand.Uint64n(math.MaxInt64-1)) + 1
}

// ResolveSeed returns seed unless it is zero, in which case a fresh seed is drawn.
func ResolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return NewSeed()
}
