package generator

import (
	"math"
	"math/rand/v2"
)

// MaxCount bounds every count ProbabilisticCount returns. It fits an int on
// 32-bit platforms.
const MaxCount = math.MaxInt32

// ProbabilisticCount turns a fractional average into an integer whose
// expected value is the average: floor(avg), plus one with probability
// equal to the fractional part. Negative and non-finite averages count as
// zero; averages at or above MaxCount saturate to MaxCount.
//
// Exactly one uniform sample is taken from rng in every case, so draws
// made after it stay aligned whatever the average is.
func ProbabilisticCount(rng *rand.Rand, average float64) int {
	u := rng.Float64()
	if average <= 0 || math.IsNaN(average) || math.IsInf(average, 0) {
		return 0
	}
	if average >= MaxCount {
		return MaxCount
	}
	base := math.Floor(average)
	count := int(base)
	if u < average-base {
		count++
	}
	return count
}
