package metric

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoSamples  = errors.New("metric: no valid bootstrap samples")
	ErrConfidence = errors.New("metric: confidence must be in (0, 1)")
)

// Interval is the confidence interval estimated by Bootstrap.
type Interval struct {
	Lower   float64 // Lower bound of the confidence interval
	Upper   float64 // Upper bound of the confidence interval
	StdDev  float64 // Standard deviation of the resampled measures
	Mean    float64 // Mean of the resampled measures
	Samples int     // Resamples that produced a finite measure
}

// Bootstrap estimates the confidence interval of measure over values by
// resampling with replacement.
// Parameters:
//   - values: The original sample data
//   - measure: The statistic computed on each resample
//   - samples: Number of resamples to draw
//   - confidence: Confidence level (e.g., 0.95 for 95% confidence)
//
// Resamples whose measure is NaN or infinite (a regression over points that
// all share one x, for instance) are discarded.
func Bootstrap[T any](values []T, measure func([]T) float64, samples int, confidence float64) (Interval, error) {
	if confidence <= 0 || confidence >= 1 {
		return Interval{}, fmt.Errorf("%w: got %v", ErrConfidence, confidence)
	}

	if len(values) == 0 || samples <= 0 {
		return Interval{}, ErrNoSamples
	}

	data := resample(values, measure, samples)
	if len(data) == 0 {
		return Interval{}, ErrNoSamples
	}

	tail := 1 - confidence
	sort.Float64s(data)

	mean, stdDev := stat.MeanStdDev(data, nil)
	if len(data) == 1 {
		stdDev = 0
	}

	return Interval{
		Lower:   stat.Quantile(tail/2, stat.LinInterp, data, nil),
		Upper:   stat.Quantile(1-tail/2, stat.LinInterp, data, nil),
		StdDev:  stdDev,
		Mean:    mean,
		Samples: len(data),
	}, nil
}

// resample draws samples resamples of values and applies measure to each,
// keeping finite results only.
func resample[T any](values []T, measure func([]T) float64, samples int) []float64 {
	data := make([]float64, 0, samples)
	draw := make([]T, len(values))

	for i := 0; i < samples; i++ {
		for j := range draw {
			draw[j] = lo.Sample(values)
		}

		m := measure(draw)
		if math.IsNaN(m) || math.IsInf(m, 0) {
			continue
		}
		data = append(data, m)
	}

	return data
}
