package coo

import "math/rand"

// ValueFunc draws the value of one non-zero entry from the given source.
// The benchmark consumers only care about structural density, so the
// distribution is a caller choice rather than a baked-in constant.
type ValueFunc func(rng *rand.Rand) float64

// Uniform draws values uniformly from [0, 1).
func Uniform(rng *rand.Rand) float64 {
	return rng.Float64()
}

// Normal returns a ValueFunc drawing from a normal distribution with the
// given mean and standard deviation.
func Normal(mean, stddev float64) ValueFunc {
	return func(rng *rand.Rand) float64 {
		return rng.NormFloat64()*stddev + mean
	}
}
