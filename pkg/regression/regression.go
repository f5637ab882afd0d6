package regression

import (
	"errors"
	"fmt"
	"math"

	"github.com/raykavin/gochartjs/pkg/axis"
	"github.com/raykavin/gochartjs/pkg/metric"
	"github.com/raykavin/gochartjs/pkg/series"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Number is any value a regression can be fitted over.
type Number interface {
	constraints.Integer | constraints.Float
}

// residualTolerance is the sum of squared residuals still treated as an exact
// fit when the observed y values are all equal.
const residualTolerance = 1e-9

var lines = series.MustCodec[float64, float64](axis.NewRegistry())

// Result is an ordinary least squares fit of y = Intercept + Slope*x.
type Result struct {
	// Fitted holds one point per input point, in input order, with the input x
	// and the predicted y.
	Fitted    *series.Pairs[float64, float64]
	Residuals []float64
	RSquared  float64
	Slope     float64
	Intercept float64
}

// Fit computes the least squares line through points.
//
// An empty input yields an empty fit with R² = 0. Inputs whose x values are
// all equal (including a single point) have no unique line and fail with a
// *NumericError wrapping ErrSingular, as do ill-conditioned designs.
func Fit[X, Y Number](points []series.Pair[X, Y]) (*Result, error) {
	n := len(points)
	if n == 0 {
		return &Result{Fitted: lines.Pairs(), Residuals: []float64{}}, nil
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range points {
		xs[i], ys[i] = float64(p.X), float64(p.Y)
		if !finite(xs[i]) || !finite(ys[i]) {
			return nil, &NumericError{Op: "fit", Err: fmt.Errorf("%w at point %d", ErrNonFinite, i)}
		}
	}

	if floats.Min(xs) == floats.Max(xs) {
		return nil, &NumericError{Op: "fit", Err: fmt.Errorf("%w: every point has x = %g", ErrSingular, xs[0])}
	}

	// intercept column of ones, then x centred on its mean so that closely
	// spaced values far from zero stay well conditioned
	mean := stat.Mean(xs, nil)
	design := mat.NewDense(n, 2, nil)
	for i, x := range xs {
		design.Set(i, 0, 1)
		design.Set(i, 1, x-mean)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(design, mat.NewVecDense(n, ys)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, &NumericError{Op: "solve", Err: fmt.Errorf("%w: condition number %g", ErrSingular, float64(cond))}
		}
		return nil, &NumericError{Op: "solve", Err: err}
	}

	slope := beta.AtVec(1)
	intercept := beta.AtVec(0) - slope*mean
	if !finite(intercept) || !finite(slope) {
		return nil, &NumericError{Op: "solve", Err: ErrNonFinite}
	}

	var predicted mat.VecDense
	predicted.MulVec(design, &beta)

	line := make([]series.Pair[float64, float64], n)
	residuals := make([]float64, n)
	yHat := make([]float64, n)
	for i := range xs {
		yHat[i] = predicted.AtVec(i)
		line[i] = series.P(xs[i], yHat[i])
		residuals[i] = ys[i] - yHat[i]
	}

	return &Result{
		Fitted:    lines.Pairs(line...),
		Residuals: residuals,
		RSquared:  RSquared(ys, yHat),
		Slope:     slope,
		Intercept: intercept,
	}, nil
}

// FitSeries fits the (x, y) view of any series. Radius and tooltip values
// take no part in the fit.
func FitSeries[X, Y Number](s series.Series[X, Y]) (*Result, error) {
	return Fit(s.XY())
}

// RSquared returns the coefficient of determination 1 - SS_res/SS_tot.
//
// It is 0 for empty input. When every observed value is equal SS_tot is 0
// and the result is 1 for an exact prediction, 0 otherwise. Inputs of
// different lengths yield NaN.
func RSquared(yTrue, yPred []float64) float64 {
	if len(yTrue) != len(yPred) {
		return math.NaN()
	}

	if len(yTrue) == 0 {
		return 0
	}

	mean := stat.Mean(yTrue, nil)

	var ssRes, ssTot float64
	for i, y := range yTrue {
		ssRes += (y - yPred[i]) * (y - yPred[i])
		ssTot += (y - mean) * (y - mean)
	}

	// a constant series has SS_tot = 0, though the rounded mean can leave
	// a tiny positive sum
	if ssTot == 0 || floats.Min(yTrue) == floats.Max(yTrue) {
		if scalar.EqualWithinAbs(ssRes, 0, residualTolerance) {
			return 1
		}
		return 0
	}

	return 1 - ssRes/ssTot
}

// SlopeInterval bootstraps a confidence interval for the fitted slope.
// Resamples that cannot be fitted are skipped.
func SlopeInterval[X, Y Number](points []series.Pair[X, Y], samples int, confidence float64) (metric.Interval, error) {
	return metric.Bootstrap(points, func(sample []series.Pair[X, Y]) float64 {
		result, err := Fit(sample)
		if err != nil || result.Fitted.Len() == 0 {
			return math.NaN()
		}
		return result.Slope
	}, samples, confidence)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
