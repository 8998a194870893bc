package platform

import (
	"math/rand/v2"

	"github.com/yanqian/trafficai/internal/domain/dashboard"
)

// Random draws from the runtime's global generator, which is safe for
// concurrent use and seeded per process.
type Random struct{}

// NewRandom constructs the default random source.
func NewRandom() Random {
	return Random{}
}

// IntN implements dashboard.RandomSource.
func (Random) IntN(n int) int {
	return rand.IntN(n)
}

// Float64 implements dashboard.RandomSource.
func (Random) Float64() float64 {
	return rand.Float64()
}

var _ dashboard.RandomSource = Random{}
