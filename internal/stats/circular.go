package stats

import (
	"math"

	"sleepcli/pkg/contracts/domain"
)

// CircularMeanMinutes returns the circular mean of clock-of-day minute
// samples. Each sample is mapped onto the unit circle, the mean
// direction is taken with atan2, and the result is mapped back to
// [0, 1440). The second return is false when there are no samples.
//
// Samples clustered around midnight average near midnight instead of
// near noon: {1439, 1} yields 0.
func CircularMeanMinutes(samples []int) (int, bool) {
	if len(samples) == 0 {
		return 0, false
	}

	var sumSin, sumCos float64
	for _, m := range samples {
		theta := 2 * math.Pi * float64(m) / domain.MinutesPerDay
		sumSin += math.Sin(theta)
		sumCos += math.Cos(theta)
	}

	n := float64(len(samples))
	theta := math.Atan2(sumSin/n, sumCos/n)
	if theta < 0 {
		theta += 2 * math.Pi
	}

	minute := int(math.Round(theta * domain.MinutesPerDay / (2 * math.Pi)))
	return minute % domain.MinutesPerDay, true
}

// scalarMean returns the arithmetic mean of the finite samples. NaN and
// infinite values are ignored rather than poisoning the mean.
func scalarMean(samples []float64) (float64, bool) {
	var sum float64
	n := 0
	for _, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
