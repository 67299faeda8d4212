package wake

import (
	"math/rand"
	"time"
)

// Rand is the source of randomness for spawning. Injecting it keeps spawn
// positions and class draws reproducible under a fixed seed; *math/rand.Rand
// satisfies the interface.
type Rand interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64

	// Intn returns a number in [0, n).
	Intn(n int) int
}

func defaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
