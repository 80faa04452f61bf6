package utils

import (
	"math/rand"
	"time"
)

// Uniform 在 [min, max] 内均匀取值
func Uniform(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// UniformDuration 在 [min, max] 内均匀取一个时长
func UniformDuration(rng *rand.Rand, min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rng.Int63n(int64(max-min)+1))
}
