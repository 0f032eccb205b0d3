package reconcile

import "math/rand/v2"

// Bounds of the GDP multiplier, inclusive.
const (
	MinMultiplier = 1000
	MaxMultiplier = 2000
)

// Multiplier supplies the random factor applied to each GDP estimate.
type Multiplier interface {
	Draw() int64
}

// RandomMultiplier draws uniformly from [MinMultiplier, MaxMultiplier].
type RandomMultiplier struct{}

// Draw implements Multiplier.
func (RandomMultiplier) Draw() int64 {
	return MinMultiplier + rand.Int64N(MaxMultiplier-MinMultiplier+1)
}

// FixedMultiplier always returns the same value.
type FixedMultiplier int64

// Draw implements Multiplier.
func (f FixedMultiplier) Draw() int64 {
	return int64(f)
}

// MultiplierFunc adapts a function to Multiplier.
type MultiplierFunc func() int64

// Draw implements Multiplier.
func (f MultiplierFunc) Draw() int64 {
	return f()
}
